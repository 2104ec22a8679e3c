package domain

import (
	"testing"
)

// claimFixture builds a playing game with empty hands and seat 0 active, so
// tests can place tiles precisely before discarding.
func claimFixture() *Game {
	players := make([]*Player, 4)
	for i := range players {
		players[i] = &Player{ID: string(rune('a' + i)), Seat: i}
	}
	return &Game{
		ID:                "test",
		Players:           players,
		CurrentPlayer:     0,
		Dealer:            0,
		LastDiscardPlayer: NoSeat,
		SkippedPlayer:     NoSeat,
		Winner:            NoSeat,
		Phase:             PhaseDiscard,
		Status:            StatusPlaying,
		ClaimDuration:     DefaultClaimDuration,
	}
}

func mustDiscard(t *testing.T, g *Game, seat int, tile Tile) {
	t.Helper()
	g.Players[seat].Hand = append(g.Players[seat].Hand, tile)
	if err := g.DiscardTile(seat, tile); err != nil {
		t.Fatalf("discard failed: %v", err)
	}
}

func TestIsValidClaimChowSeatRestriction(t *testing.T) {
	g := claimFixture()
	discard := suited(SuitCircles, 5)
	chowTiles := []Tile{suited(SuitCircles, 4), suited(SuitCircles, 6)}

	g.Players[1].Hand = append([]Tile{}, chowTiles...)
	g.Players[2].Hand = append([]Tile{}, chowTiles...)
	mustDiscard(t, g, 0, discard)

	if !IsValidClaim(g, Claim{Type: ClaimChow, Seat: 1}) {
		t.Error("seat 1 (left of discarder) should be able to chow")
	}
	if IsValidClaim(g, Claim{Type: ClaimChow, Seat: 2}) {
		t.Error("seat 2 should not be able to chow")
	}
}

func TestIsValidClaimTileRequirements(t *testing.T) {
	g := claimFixture()
	discard := Tile{Suit: SuitDragons, Dragon: DragonRed}

	g.Players[2].Hand = pair(discard)
	g.Players[3].Hand = []Tile{{Suit: SuitDragons, Dragon: DragonRed, Copy: 2}}
	mustDiscard(t, g, 0, discard)

	if !IsValidClaim(g, Claim{Type: ClaimPung, Seat: 2}) {
		t.Error("two matching tiles should allow pung")
	}
	if IsValidClaim(g, Claim{Type: ClaimKong, Seat: 2}) {
		t.Error("two matching tiles should not allow kong")
	}
	if IsValidClaim(g, Claim{Type: ClaimPung, Seat: 3}) {
		t.Error("one matching tile should not allow pung")
	}

	g.Players[2].Hand = trip(discard)
	if IsValidClaim(g, Claim{Type: ClaimKong, Seat: 2}) {
		t.Error("kong with an empty wall should fail: no replacement tile to draw")
	}
	g.Wall = []Tile{suited(SuitBamboos, 1)}
	if !IsValidClaim(g, Claim{Type: ClaimKong, Seat: 2}) {
		t.Error("three matching tiles should allow kong")
	}
}

func TestIsValidClaimRejections(t *testing.T) {
	g := claimFixture()
	discard := Tile{Suit: SuitDragons, Dragon: DragonRed}
	g.Players[2].Hand = pair(discard)

	// No live discard yet.
	if IsValidClaim(g, Claim{Type: ClaimPung, Seat: 2}) {
		t.Error("claim with no live discard should fail")
	}

	mustDiscard(t, g, 0, discard)

	// The discarder cannot claim its own tile.
	g.Players[0].Hand = pair(discard)
	if IsValidClaim(g, Claim{Type: ClaimPung, Seat: 0}) {
		t.Error("discarder should not claim its own discard")
	}

	// Once the next player has drawn, the window is gone.
	g.HasDrawnThisTurn = true
	if IsValidClaim(g, Claim{Type: ClaimPung, Seat: 2}) {
		t.Error("claim after a draw should fail")
	}
	g.HasDrawnThisTurn = false

	g.Status = StatusFinished
	if IsValidClaim(g, Claim{Type: ClaimPung, Seat: 2}) {
		t.Error("claim on a finished game should fail")
	}
}

func TestAllPossibleSequences(t *testing.T) {
	hand := []Tile{
		suited(SuitCircles, 3), suited(SuitCircles, 4),
		suited(SuitCircles, 6), suited(SuitCircles, 7),
		suited(SuitBamboos, 4), suited(SuitBamboos, 6),
	}

	tests := []struct {
		name    string
		discard Tile
		want    int
	}{
		{name: "middle tile completes three runs", discard: suited(SuitCircles, 5), want: 3},
		{name: "edge tile", discard: suited(SuitCircles, 2), want: 1},
		{name: "wrong suit neighbors", discard: suited(SuitCharacters, 5), want: 0},
		{name: "honor tile never runs", discard: Tile{Suit: SuitWinds, Wind: WindEast}, want: 0},
		{name: "bamboos gap", discard: suited(SuitBamboos, 5), want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AllPossibleSequences(hand, tt.discard)
			if len(got) != tt.want {
				t.Fatalf("expected %d sequences, got %d: %v", tt.want, len(got), got)
			}
			for _, seq := range got {
				if !IsValidSequence(seq) {
					t.Errorf("returned sequence is not a valid run: %v", seq)
				}
			}
		})
	}
}

func TestProcessClaimPung(t *testing.T) {
	g := claimFixture()
	discard := Tile{Suit: SuitDragons, Dragon: DragonRed, Copy: 3}
	g.Players[2].Hand = concat(pair(Tile{Suit: SuitDragons, Dragon: DragonRed}), run3(SuitCircles, 1))
	mustDiscard(t, g, 0, discard)

	if !ProcessClaim(g, Claim{Type: ClaimPung, Seat: 2}) {
		t.Fatal("pung claim should succeed")
	}

	claimant := g.Players[2]
	if len(claimant.Melds) != 1 || claimant.Melds[0].Type != MeldPung {
		t.Fatalf("expected one pung meld, got %v", claimant.Melds)
	}
	if claimant.Melds[0].ClaimedFrom != 0 {
		t.Errorf("meld should record discarder seat 0, got %d", claimant.Melds[0].ClaimedFrom)
	}
	if len(claimant.Hand) != 3 {
		t.Errorf("two tiles should leave the hand, got %d left", len(claimant.Hand))
	}
	if len(g.DiscardPile) != 0 {
		t.Error("claimed discard should leave the pile")
	}
	if g.CurrentPlayer != 2 || g.Phase != PhaseDiscard {
		t.Errorf("control should jump to claimant in discard phase, got seat %d phase %s", g.CurrentPlayer, g.Phase)
	}
	if g.SkippedPlayer != 1 {
		t.Errorf("seat 1 should be marked skipped, got %d", g.SkippedPlayer)
	}
	if g.LastDiscard != nil || g.ClaimWindow != nil {
		t.Error("claim window state should be cleared")
	}

	// The discard is gone; a second claim against it must fail.
	if ProcessClaim(g, Claim{Type: ClaimPung, Seat: 3}) {
		t.Error("second claim against a cleared discard should fail")
	}

	// One ambition: kang for the claimed pung.
	if len(g.Ambitions) != 1 || g.Ambitions[0].Type != AmbitionKang {
		t.Errorf("expected a kang ambition, got %v", g.Ambitions)
	}
}

func TestProcessClaimChowExplicitSelection(t *testing.T) {
	g := claimFixture()
	discard := suited(SuitCircles, 5)
	low := suited(SuitCircles, 4)
	high := suited(SuitCircles, 6)
	g.Players[1].Hand = []Tile{low, high, suited(SuitCircles, 7), suited(SuitBamboos, 9)}
	mustDiscard(t, g, 0, discard)

	claim := Claim{Type: ClaimChow, Seat: 1, Tiles: []Tile{low, discard, high}}
	if !ProcessClaim(g, claim) {
		t.Fatal("explicit chow claim should succeed")
	}

	meld := g.Players[1].Melds[0]
	if meld.Type != MeldChow {
		t.Fatalf("expected chow meld, got %s", meld.Type)
	}
	for i, want := range []int{4, 5, 6} {
		if meld.Tiles[i].Value != want {
			t.Errorf("meld tile %d: expected value %d, got %d", i, want, meld.Tiles[i].Value)
		}
	}
	// Claimant is the seat after the discarder; no skip needed.
	if g.SkippedPlayer != NoSeat {
		t.Errorf("no seat should be skipped, got %d", g.SkippedPlayer)
	}
}

func TestProcessClaimChowBadSelection(t *testing.T) {
	g := claimFixture()
	discard := suited(SuitCircles, 5)
	g.Players[1].Hand = []Tile{suited(SuitCircles, 4), suited(SuitCircles, 6)}
	mustDiscard(t, g, 0, discard)

	claim := Claim{Type: ClaimChow, Seat: 1, Tiles: []Tile{
		suited(SuitCircles, 4), suited(SuitCircles, 5), suited(SuitCircles, 7),
	}}
	if ProcessClaim(g, claim) {
		t.Error("a non-run selection should be rejected")
	}
	if g.LastDiscard == nil {
		t.Error("failed claim must not consume the discard")
	}
}

func TestProcessClaimKongDrawsReplacement(t *testing.T) {
	g := claimFixture()
	discard := Tile{Suit: SuitWinds, Wind: WindEast, Copy: 3}
	g.Players[2].Hand = concat(trip(Tile{Suit: SuitWinds, Wind: WindEast}), run3(SuitBamboos, 1))
	g.Wall = []Tile{suited(SuitCharacters, 8)}
	mustDiscard(t, g, 0, discard)

	if !ProcessClaim(g, Claim{Type: ClaimKong, Seat: 2}) {
		t.Fatal("kong claim should succeed")
	}

	claimant := g.Players[2]
	if len(claimant.Melds) != 1 || claimant.Melds[0].Type != MeldKong {
		t.Fatalf("expected one kong meld, got %v", claimant.Melds)
	}
	if len(claimant.Melds[0].Tiles) != 4 {
		t.Errorf("kong meld should hold 4 tiles, got %d", len(claimant.Melds[0].Tiles))
	}
	// Replacement draw: hand lost 3 tiles to the meld and gained 1 back.
	if len(claimant.Hand) != 4 {
		t.Errorf("expected 4 tiles in hand after replacement, got %d", len(claimant.Hand))
	}
	if len(g.Wall) != 0 {
		t.Error("replacement draw should consume the wall tile")
	}
	if g.Phase != PhaseDiscard || g.CurrentPlayer != 2 {
		t.Errorf("claimant should be discarding, got seat %d phase %s", g.CurrentPlayer, g.Phase)
	}
}

func TestProcessClaimWin(t *testing.T) {
	g := claimFixture()
	discard := suited(SuitBamboos, 5)
	// Sixteen tiles one 5-bamboos short of five sets and a pair.
	g.Players[3].Hand = concat(
		run3(SuitCircles, 1), run3(SuitCircles, 4), run3(SuitCircles, 7),
		trip(suited(SuitCharacters, 2)),
		pair(suited(SuitBamboos, 9)),
		pair(suited(SuitBamboos, 5)),
	)
	mustDiscard(t, g, 0, discard)

	if !ProcessClaim(g, Claim{Type: ClaimWin, Seat: 3}) {
		t.Fatal("win claim should succeed")
	}
	if !g.Finished() || g.Winner != 3 {
		t.Fatalf("game should finish with seat 3 winning, got winner %d", g.Winner)
	}
	if g.WinType != HandTypeStandard {
		t.Errorf("WinType = %q, want %q", g.WinType, HandTypeStandard)
	}
	if g.WinningHand == nil || len(g.WinningHand.Tiles) != 17 {
		t.Fatal("winning hand snapshot should hold the full 17 tiles")
	}
	// The winning tile stays in the pile so the tile ledger balances.
	if len(g.DiscardPile) != 1 {
		t.Errorf("discard pile should keep the winning tile, got %d tiles", len(g.DiscardPile))
	}
}
