// Package room implements the Room: the authorization layer and single
// serialization point for one Literature game in progress. It owns a
// *game.Game, a lobby of connected players, and host bookkeeping, and
// broadcasts a privacy-filtered snapshot to every connected recipient after
// each accepted action.
//
// The per-room mutex held across Dispatch and the snapshot capture realizes
// the "all mutations to a Room serialize" invariant of spec.md §5 — one of
// the three sanctioned strategies there, chosen over a channel-actor loop
// (as the teacher's match_handler.go and Neldev2000's room.go both use) for
// the same reason the teacher's own service layer favors direct calls: the
// critical section here is pure CPU-bound state mutation with no blocking
// I/O inside it, so a mutex is strictly simpler than a goroutine + channel
// pair that does the identical job.
package room

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"literature/internal/apperr"
	"literature/internal/game"
)

// Recipient is anything that can receive a successful broadcast. The
// session consumer implements it over a websocket connection; tests use a
// simple in-memory stub.
type Recipient interface {
	Deliver(CurrentState)
}

// Room is one lobby-plus-game instance.
type Room struct {
	ID       string
	GameType string
	Game     *game.Game

	mu               sync.Mutex
	connectedPlayers map[string]string // token -> player id, for players currently "in" the room
	recipients       map[string]Recipient
	hostToken        string
	rng              *rand.Rand
	lastActivity     time.Time
}

// New constructs an empty room with a fresh, crypto-seeded game.
func New(id, gameType string) *Room {
	return &Room{
		ID:               id,
		GameType:         gameType,
		Game:             game.New(id),
		connectedPlayers: make(map[string]string),
		recipients:       make(map[string]Recipient),
		rng:              newFairRand(),
		lastActivity:     time.Now(),
	}
}

// RegisterRecipient attaches a live writer for token. Must be called before
// dispatching that token's add_player action so the connecting client
// receives the broadcast its own join causes.
func (r *Room) RegisterRecipient(token string, recipient Recipient) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recipients[token] = recipient
}

// UnregisterRecipient detaches token's live writer, e.g. on socket close.
// It does not itself remove the player from the room; callers dispatch an
// ExitRoom action for that.
func (r *Room) UnregisterRecipient(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.recipients, token)
}

// ConnectedCount reports the number of tokens currently bound to a
// recipient.
func (r *Room) ConnectedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.recipients)
}

// IsReclaimable reports whether the room has no live recipients and its
// game has ended (or never started), per spec.md §3's lifecycle note that
// reclamation of an empty, finished room is implementation-defined.
func (r *Room) IsReclaimable() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.recipients) > 0 {
		return false
	}
	return r.Game.State == game.Ended || (r.Game.State == game.NotStarted && len(r.connectedPlayers) == 0)
}

// LastActivity reports when the room last accepted a mutating action.
func (r *Room) LastActivity() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastActivity
}

// Dispatch authorizes and applies action on behalf of token, then — on
// success — broadcasts a fresh snapshot to every connected recipient while
// still holding the room's lock, so broadcast order matches acceptance
// order (spec.md §5).
func (r *Room) Dispatch(token string, action Action) error {
	if token == "" {
		return apperr.New(apperr.InvalidArgument, "missing action token")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.apply(token, action); err != nil {
		return err
	}
	r.lastActivity = time.Now()
	r.broadcastLocked()
	return nil
}

func (r *Room) apply(token string, action Action) error {
	switch a := action.(type) {
	case AddPlayer:
		return r.addPlayer(token, a.Username)
	case ExitRoom:
		actorID, ok := r.connectedPlayers[token]
		if !ok {
			return apperr.New(apperr.NotFound, "token is not connected to this room")
		}
		return r.removePlayer(token, actorID)
	case RemovePlayer:
		return r.dispatchRemovePlayer(token, a.PlayerID)
	case ChangeHost:
		return r.changeHost(token, a.NewHostID)
	case StartGame:
		if token != r.hostToken {
			return apperr.New(apperr.RuleViolation, "only the host can start the game")
		}
		return r.Game.StartGame(r.rng)
	case PreGame:
		actorID, ok := r.connectedPlayers[token]
		if !ok {
			return apperr.New(apperr.NotFound, "token is not connected to this room")
		}
		return r.Game.RegisterPreGameAction(actorID, token == r.hostToken, a.Action)
	case InGame:
		actorID, ok := r.connectedPlayers[token]
		if !ok {
			return apperr.New(apperr.NotFound, "token is not connected to this room")
		}
		return r.Game.RegisterInGameAction(actorID, a.Action)
	default:
		return apperr.New(apperr.InvalidArgument, "unknown room action")
	}
}

func (r *Room) addPlayer(token, username string) error {
	if token == "" || username == "" {
		return apperr.New(apperr.InvalidArgument, "add_player requires a token and a username")
	}
	if existingID := r.findPlayerByToken(token); existingID != "" {
		// Reconnect: the token already names a player in the game roster,
		// whether or not they are still listed as connected.
		r.connectedPlayers[token] = existingID
		r.ensureHost(token)
		return nil
	}
	if r.Game.State != game.NotStarted {
		return apperr.New(apperr.RuleViolation, "game already in progress; token does not belong to an existing player")
	}
	p, err := r.Game.AddPlayer(uuid.NewString(), username, token)
	if err != nil {
		return err
	}
	r.connectedPlayers[token] = p.ID
	r.ensureHost(token)
	return nil
}

func (r *Room) ensureHost(token string) {
	if r.hostToken == "" {
		r.hostToken = token
	}
}

func (r *Room) findPlayerByToken(token string) string {
	for id, p := range r.Game.Players {
		if p.Token == token {
			return id
		}
	}
	return ""
}

func (r *Room) dispatchRemovePlayer(actingToken, targetPlayerID string) error {
	targetToken := r.tokenForPlayer(targetPlayerID)
	if targetToken == "" {
		return apperr.New(apperr.NotFound, "unknown player %q", targetPlayerID)
	}
	isSelf := targetToken == actingToken
	isHost := actingToken == r.hostToken
	if !isSelf && !isHost {
		return apperr.New(apperr.RuleViolation, "only the player themselves or the host may remove a player")
	}
	return r.removePlayer(targetToken, targetPlayerID)
}

func (r *Room) removePlayer(token, playerID string) error {
	delete(r.connectedPlayers, token)
	if r.Game.State == game.NotStarted {
		if err := r.Game.RemovePlayer(playerID); err != nil {
			return err
		}
	}
	if token == r.hostToken {
		r.hostToken = r.pickArbitraryRemainingHost()
	}
	return nil
}

func (r *Room) pickArbitraryRemainingHost() string {
	for tok := range r.connectedPlayers {
		return tok
	}
	return ""
}

func (r *Room) tokenForPlayer(playerID string) string {
	for tok, id := range r.connectedPlayers {
		if id == playerID {
			return tok
		}
	}
	return ""
}

func (r *Room) changeHost(actingToken, newHostPlayerID string) error {
	if actingToken != r.hostToken {
		return apperr.New(apperr.RuleViolation, "only the current host may transfer hostship")
	}
	newHostToken := r.tokenForPlayer(newHostPlayerID)
	if newHostToken == "" {
		return apperr.New(apperr.NotFound, "unknown player %q", newHostPlayerID)
	}
	if newHostToken == actingToken {
		return apperr.New(apperr.RuleViolation, "cannot transfer hostship to yourself")
	}
	r.hostToken = newHostToken
	return nil
}

func (r *Room) broadcastLocked() {
	for token, recipient := range r.recipients {
		recipient.Deliver(r.snapshotLocked(token))
	}
}
