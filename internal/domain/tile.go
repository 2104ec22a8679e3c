package domain

import (
	"fmt"
	"math/rand"
	"sort"
)

// Suit identifies the family a tile belongs to.
type Suit string

const (
	SuitCircles    Suit = "circles"
	SuitBamboos    Suit = "bamboos"
	SuitCharacters Suit = "characters"
	SuitWinds      Suit = "winds"
	SuitDragons    Suit = "dragons"
	SuitFlowers    Suit = "flowers"
	SuitSeasons    Suit = "seasons"
)

// Wind is the discriminator for wind tiles.
type Wind string

const (
	WindEast  Wind = "east"
	WindSouth Wind = "south"
	WindWest  Wind = "west"
	WindNorth Wind = "north"
)

// Dragon is the discriminator for dragon tiles.
type Dragon string

const (
	DragonRed   Dragon = "red"
	DragonGreen Dragon = "green"
	DragonWhite Dragon = "white"
)

// Flower is the discriminator for flower bonus tiles.
type Flower string

const (
	FlowerPlum          Flower = "plum"
	FlowerOrchid        Flower = "orchid"
	FlowerChrysanthemum Flower = "chrysanthemum"
	FlowerBamboo        Flower = "bamboo"
)

// Season is the discriminator for season bonus tiles.
type Season string

const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonAutumn Season = "autumn"
	SeasonWinter Season = "winter"
)

// Tile is one physical tile. Only the discriminator matching the suit is set:
// Value for the three numbered suits, Wind/Dragon/Flower/Season otherwise.
// Copy distinguishes the physical copies of the same tile type, so Tile is
// comparable and two copies of "5 circles" are distinct instances.
type Tile struct {
	Suit   Suit   `json:"suit"`
	Value  int    `json:"value,omitempty"`
	Wind   Wind   `json:"wind,omitempty"`
	Dragon Dragon `json:"dragon,omitempty"`
	Flower Flower `json:"flower,omitempty"`
	Season Season `json:"season,omitempty"`
	Copy   int    `json:"copy"`
}

// IsBonus reports whether the tile is a flower or season, which never plays
// from hand and is auto-exposed on draw.
func (t Tile) IsBonus() bool {
	return t.Suit == SuitFlowers || t.Suit == SuitSeasons
}

// IsSuited reports whether the tile belongs to a numbered suit and can take
// part in sequences.
func (t Tile) IsSuited() bool {
	return t.Suit == SuitCircles || t.Suit == SuitBamboos || t.Suit == SuitCharacters
}

// IsHonor reports whether the tile is a wind or dragon.
func (t Tile) IsHonor() bool {
	return t.Suit == SuitWinds || t.Suit == SuitDragons
}

// Name returns a human-readable tile name for logs and events.
func (t Tile) Name() string {
	switch t.Suit {
	case SuitCircles:
		return fmt.Sprintf("%d Circles", t.Value)
	case SuitBamboos:
		return fmt.Sprintf("%d Bamboos", t.Value)
	case SuitCharacters:
		return fmt.Sprintf("%d Characters", t.Value)
	case SuitWinds:
		return title(string(t.Wind)) + " Wind"
	case SuitDragons:
		return title(string(t.Dragon)) + " Dragon"
	case SuitFlowers:
		return title(string(t.Flower)) + " Flower"
	case SuitSeasons:
		return title(string(t.Season)) + " Season"
	}
	return "Unknown Tile"
}

func title(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}

// NewTileSet builds the full 144-tile Filipino Mahjong set: 108 suited tiles,
// 16 winds, 12 dragons, 4 flowers and 4 seasons. Composition is deterministic;
// shuffling is a separate step.
func NewTileSet() []Tile {
	tiles := make([]Tile, 0, 144)

	for _, suit := range []Suit{SuitCircles, SuitBamboos, SuitCharacters} {
		for value := 1; value <= 9; value++ {
			for c := 0; c < 4; c++ {
				tiles = append(tiles, Tile{Suit: suit, Value: value, Copy: c})
			}
		}
	}

	for _, wind := range []Wind{WindEast, WindSouth, WindWest, WindNorth} {
		for c := 0; c < 4; c++ {
			tiles = append(tiles, Tile{Suit: SuitWinds, Wind: wind, Copy: c})
		}
	}

	for _, dragon := range []Dragon{DragonRed, DragonGreen, DragonWhite} {
		for c := 0; c < 4; c++ {
			tiles = append(tiles, Tile{Suit: SuitDragons, Dragon: dragon, Copy: c})
		}
	}

	for _, flower := range []Flower{FlowerPlum, FlowerOrchid, FlowerChrysanthemum, FlowerBamboo} {
		tiles = append(tiles, Tile{Suit: SuitFlowers, Flower: flower})
	}

	for _, season := range []Season{SeasonSpring, SeasonSummer, SeasonAutumn, SeasonWinter} {
		tiles = append(tiles, Tile{Suit: SuitSeasons, Season: season})
	}

	return tiles
}

// ShuffleTiles returns a uniformly shuffled copy of the given tiles.
func ShuffleTiles(rng *rand.Rand, tiles []Tile) []Tile {
	out := make([]Tile, len(tiles))
	copy(out, tiles)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// TilesMatch reports whether two tiles are the same type, ignoring which
// physical copy they are. This is the single definition of "matching" used by
// pung/kong detection, pair detection and danger evaluation.
func TilesMatch(a, b Tile) bool {
	return a.Suit == b.Suit &&
		a.Value == b.Value &&
		a.Wind == b.Wind &&
		a.Dragon == b.Dragon &&
		a.Flower == b.Flower &&
		a.Season == b.Season
}

var suitOrder = map[Suit]int{
	SuitCircles:    0,
	SuitBamboos:    1,
	SuitCharacters: 2,
	SuitWinds:      3,
	SuitDragons:    4,
	SuitFlowers:    5,
	SuitSeasons:    6,
}

var windOrder = map[Wind]int{WindEast: 0, WindSouth: 1, WindWest: 2, WindNorth: 3}
var dragonOrder = map[Dragon]int{DragonRed: 0, DragonGreen: 1, DragonWhite: 2}
var flowerOrder = map[Flower]int{FlowerPlum: 0, FlowerOrchid: 1, FlowerChrysanthemum: 2, FlowerBamboo: 3}
var seasonOrder = map[Season]int{SeasonSpring: 0, SeasonSummer: 1, SeasonAutumn: 2, SeasonWinter: 3}

// SortTiles returns a copy of tiles in display order. Display only; game
// legality never depends on hand order.
func SortTiles(tiles []Tile) []Tile {
	out := make([]Tile, len(tiles))
	copy(out, tiles)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if suitOrder[a.Suit] != suitOrder[b.Suit] {
			return suitOrder[a.Suit] < suitOrder[b.Suit]
		}
		switch a.Suit {
		case SuitWinds:
			return windOrder[a.Wind] < windOrder[b.Wind]
		case SuitDragons:
			return dragonOrder[a.Dragon] < dragonOrder[b.Dragon]
		case SuitFlowers:
			return flowerOrder[a.Flower] < flowerOrder[b.Flower]
		case SuitSeasons:
			return seasonOrder[a.Season] < seasonOrder[b.Season]
		default:
			return a.Value < b.Value
		}
	})
	return out
}

// IsValidSequence reports whether three tiles form a same-suit run of
// consecutive values.
func IsValidSequence(tiles []Tile) bool {
	if len(tiles) != 3 {
		return false
	}
	suit := tiles[0].Suit
	if !tiles[0].IsSuited() {
		return false
	}
	values := make([]int, 0, 3)
	for _, t := range tiles {
		if t.Suit != suit || t.Value == 0 {
			return false
		}
		values = append(values, t.Value)
	}
	sort.Ints(values)
	return values[1] == values[0]+1 && values[2] == values[1]+1
}

// IsValidTriplet reports whether three tiles are all the same type.
func IsValidTriplet(tiles []Tile) bool {
	if len(tiles) != 3 {
		return false
	}
	return TilesMatch(tiles[0], tiles[1]) && TilesMatch(tiles[1], tiles[2])
}

// IsValidQuad reports whether four tiles are all the same type.
func IsValidQuad(tiles []Tile) bool {
	if len(tiles) != 4 {
		return false
	}
	for _, t := range tiles[1:] {
		if !TilesMatch(tiles[0], t) {
			return false
		}
	}
	return true
}

// CountMatching returns how many tiles in the slice match the given tile type.
func CountMatching(tiles []Tile, target Tile) int {
	count := 0
	for _, t := range tiles {
		if TilesMatch(t, target) {
			count++
		}
	}
	return count
}

// RemoveTile removes the first tile equal to target (the exact physical copy)
// from the slice and reports whether it was present.
func RemoveTile(tiles []Tile, target Tile) ([]Tile, bool) {
	for i, t := range tiles {
		if t == target {
			out := make([]Tile, 0, len(tiles)-1)
			out = append(out, tiles[:i]...)
			out = append(out, tiles[i+1:]...)
			return out, true
		}
	}
	return tiles, false
}

// RemoveMatching removes up to n tiles matching the target type and returns
// the removed tiles alongside the remainder.
func RemoveMatching(tiles []Tile, target Tile, n int) (removed, rest []Tile) {
	rest = make([]Tile, 0, len(tiles))
	for _, t := range tiles {
		if len(removed) < n && TilesMatch(t, target) {
			removed = append(removed, t)
			continue
		}
		rest = append(rest, t)
	}
	return removed, rest
}
