package app

import (
	jsoniter "github.com/json-iterator/go"

	"pinoymahjong/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// EncodeSnapshot serializes the full game state for persistence or transport.
// The aggregate carries its own JSON tags; nothing is redacted here, so
// callers exposing snapshots to players must filter opposing hands themselves.
func EncodeSnapshot(game *domain.Game) ([]byte, error) {
	return json.Marshal(game)
}

// DecodeSnapshot restores a game state produced by EncodeSnapshot.
func DecodeSnapshot(data []byte) (*domain.Game, error) {
	var game domain.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, err
	}
	return &game, nil
}
