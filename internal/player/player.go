// Package player holds the Player record: identity plus, in-game, team and
// hand. Hand operations here are pure mutations of a Player's own state;
// rule enforcement (whose turn, which set, which team) lives in
// internal/game, not here — mirroring the teacher's domain.Player, which is
// a plain struct mutated by internal/app/service.go rather than an actor in
// its own right.
package player

import "literature/internal/cards"

// Team identifies one of the two partnership teams.
type Team int

const (
	// NoTeam marks a player not yet assigned to a team (lobby-only state).
	NoTeam Team = 0
	Team1  Team = 1
	Team2  Team = 2
)

// Player is a participant: server-assigned identity plus, once a game is
// underway, team and hand.
type Player struct {
	ID    string
	Name  string
	Token string
	Team  Team
	Hand  map[cards.Card]struct{}
}

// New constructs a Player with an empty hand.
func New(id, name, token string) *Player {
	return &Player{
		ID:    id,
		Name:  name,
		Token: token,
		Hand:  make(map[cards.Card]struct{}),
	}
}

// AddCard adds a card to the player's hand.
func (p *Player) AddCard(c cards.Card) {
	p.Hand[c] = struct{}{}
}

// RemoveCard removes a card from the player's hand, if present.
func (p *Player) RemoveCard(c cards.Card) {
	delete(p.Hand, c)
}

// HasCard reports whether the player currently holds c.
func (p *Player) HasCard(c cards.Card) bool {
	_, ok := p.Hand[c]
	return ok
}

// HandCards returns the player's hand as a slice, in no particular order.
func (p *Player) HandCards() []cards.Card {
	out := make([]cards.Card, 0, len(p.Hand))
	for c := range p.Hand {
		out = append(out, c)
	}
	return out
}

// View is the wire representation of a Player within a game snapshot.
// The Token field is intentionally absent: it is never serialized.
type View struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Team      Team          `json:"team"`
	Hand      []cards.Card  `json:"hand"`
	CardCount int           `json:"card_count"`
}

// ToDict serializes the player. It always exposes id, name, team, and
// card_count; the literal hand is included only when includeHand is true.
func (p *Player) ToDict(includeHand bool) View {
	v := View{
		ID:        p.ID,
		Name:      p.Name,
		Team:      p.Team,
		Hand:      []cards.Card{},
		CardCount: len(p.Hand),
	}
	if includeHand {
		v.Hand = p.HandCards()
	}
	return v
}
