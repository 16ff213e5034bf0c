// Package game implements the rule-enforcing state machine for a single
// Literature game: dealing, asking, claiming, turn passing, and end
// detection. It is the hard-engineering core of the server; everything
// else (Room, Registry, Session Consumer) exists to get actions to this
// package in serial order and broadcast the result.
//
// The shape — a State enum, a struct of authoritative fields, and a set of
// methods that validate preconditions in order before mutating anything —
// is grounded on the teacher's internal/domain + internal/app/service.go
// pair, generalized from Tien Len's trick-taking rules to Literature's
// ask/claim rules.
package game

import (
	"math/rand"

	"literature/internal/apperr"
	"literature/internal/cards"
	"literature/internal/player"
)

// State is the lifecycle stage of a Literature game.
type State string

const (
	NotStarted State = "not_started"
	InProgress State = "in_progress"
	Ended      State = "ended"
)

const maxPlayers = 6
const playersPerTeam = 3
const handSize = 9

// Ask records the outcome of the most recent ask_for_card call, kept for
// client replay/animation.
type Ask struct {
	AskingPlayerID string      `json:"askingPlayerId"`
	AskedPlayerID  string      `json:"askedPlayerId"`
	Card           cards.Card  `json:"card"`
	Success        bool        `json:"success"`
}

// Game is the authoritative state for one Literature game instance.
type Game struct {
	ID                 string
	Players            map[string]*player.Player // player id -> Player
	order               []string                 // insertion order, for deterministic team assignment
	CurrentTurnPlayerID string
	ClaimedSets         map[int]player.Team // set index -> winning team
	Scores              map[player.Team]int
	State               State
	WinningTeam         player.Team // player.NoTeam means tie
	LastAsk             *Ask
}

// New constructs an empty, not-yet-started game.
func New(id string) *Game {
	return &Game{
		ID:          id,
		Players:     make(map[string]*player.Player),
		ClaimedSets: make(map[int]player.Team),
		Scores:      map[player.Team]int{player.Team1: 0, player.Team2: 0},
		State:       NotStarted,
	}
}

// AddPlayer registers a new player. Permitted only before the game starts.
// Team is assigned by parity of join order (even index -> team 1, odd ->
// team 2) so that six calls produce the required 3/3 split by default.
func (g *Game) AddPlayer(id, name, token string) (*player.Player, error) {
	if g.State != NotStarted {
		return nil, apperr.New(apperr.IllegalState, "cannot add players once the game has started")
	}
	if len(g.Players) >= maxPlayers {
		return nil, apperr.New(apperr.PreconditionFailed, "room already has %d players", maxPlayers)
	}
	p := player.New(id, name, token)
	if len(g.order)%2 == 0 {
		p.Team = player.Team1
	} else {
		p.Team = player.Team2
	}
	g.Players[id] = p
	g.order = append(g.order, id)
	return p, nil
}

// RemovePlayer drops a player from the roster. Permitted only before the
// game starts; no-ops silently if id is absent.
func (g *Game) RemovePlayer(id string) error {
	if g.State != NotStarted {
		return apperr.New(apperr.IllegalState, "cannot remove players once the game has started")
	}
	if _, ok := g.Players[id]; !ok {
		return nil
	}
	delete(g.Players, id)
	for i, pid := range g.order {
		if pid == id {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
	if g.CurrentTurnPlayerID == id {
		g.CurrentTurnPlayerID = ""
	}
	return nil
}

// StartGame transitions NOT_STARTED -> IN_PROGRESS: validates the roster,
// shuffles and deals, and picks a starting player uniformly at random.
func (g *Game) StartGame(rng *rand.Rand) error {
	if g.State != NotStarted {
		return apperr.New(apperr.IllegalState, "game has already started or ended")
	}
	if len(g.Players) != maxPlayers {
		return apperr.New(apperr.PreconditionFailed, "exactly %d players are required, have %d", maxPlayers, len(g.Players))
	}
	team1, team2 := 0, 0
	for _, p := range g.Players {
		switch p.Team {
		case player.Team1:
			team1++
		case player.Team2:
			team2++
		default:
			return apperr.New(apperr.PreconditionFailed, "player %s has no team assigned", p.ID)
		}
	}
	if team1 != playersPerTeam || team2 != playersPerTeam {
		return apperr.New(apperr.PreconditionFailed, "each team must have exactly %d players (team 1: %d, team 2: %d)", playersPerTeam, team1, team2)
	}

	deck := shuffledDeck(rng)
	idx := 0
	for _, id := range g.order {
		p := g.Players[id]
		for i := 0; i < handSize; i++ {
			p.AddCard(deck[idx])
			idx++
		}
	}

	g.CurrentTurnPlayerID = g.order[rng.Intn(len(g.order))]
	g.State = InProgress
	return nil
}

// PlayerOrder returns player ids in join order, the same order used for
// dealing and team-parity assignment. The returned slice is a fresh copy.
func (g *Game) PlayerOrder() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

func shuffledDeck(rng *rand.Rand) []cards.Card {
	deck := cards.AllCards()
	rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
	return deck
}
