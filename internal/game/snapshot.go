package game

import "literature/internal/player"

// Snapshot is the wire representation of a Game within a room broadcast.
type Snapshot struct {
	GameID          string            `json:"gameId"`
	Players         []player.View     `json:"players"`
	CurrentPlayerID *string           `json:"currentPlayerId"`
	ClaimedSets     map[string]int    `json:"claimedSets"`
	Scores          map[string]int    `json:"scores"`
	State           State             `json:"state"`
	WinningTeam     *int              `json:"winningTeam"`
	LastAsk         *Ask              `json:"lastAsk"`
}

// ToDict renders the game for recipient askerID. Per the privacy rule, a
// player's hand is included only for the recipient's own entry, and only
// while the game is in progress; everyone else's hand field is empty with
// card_count carrying the size.
func (g *Game) ToDict(askerID string) Snapshot {
	players := make([]player.View, 0, len(g.Players))
	for _, id := range g.order {
		p := g.Players[id]
		includeHand := p.ID == askerID && g.State == InProgress
		players = append(players, p.ToDict(includeHand))
	}

	var currentPlayerID *string
	if g.CurrentTurnPlayerID != "" {
		id := g.CurrentTurnPlayerID
		currentPlayerID = &id
	}

	claimed := make(map[string]int, len(g.ClaimedSets))
	for set, team := range g.ClaimedSets {
		claimed[itoa(set)] = int(team)
	}

	scores := map[string]int{
		"1": g.Scores[player.Team1],
		"2": g.Scores[player.Team2],
	}

	var winningTeam *int
	if g.State == Ended && g.WinningTeam != player.NoTeam {
		wt := int(g.WinningTeam)
		winningTeam = &wt
	}

	return Snapshot{
		GameID:          g.ID,
		Players:         players,
		CurrentPlayerID: currentPlayerID,
		ClaimedSets:     claimed,
		Scores:          scores,
		State:           g.State,
		WinningTeam:     winningTeam,
		LastAsk:         g.LastAsk,
	}
}

func itoa(n int) string {
	if n < 10 {
		return string(rune('0' + n))
	}
	// not reached for set numbers (1..9), kept for safety.
	digits := []byte{}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}
