// Package registry implements the process-wide Room Registry: a map from
// room code to *room.Room, crypto-random code generation with
// collision-retry, public-room pre-seeding, and idle-room reclamation.
//
// The shape is grounded on the teacher corpus's Seednode-partybox
// GameManager: a mutex-guarded map, newGameID's collision-retry loop, and a
// reaperLoop ticker goroutine — adapted from a single celebrity-game hub to
// a registry of Literature rooms.
package registry

import (
	"crypto/rand"
	"sync"
	"time"

	"literature/internal/apperr"
	"literature/internal/game"
	"literature/internal/room"
)

const roomCodeLength = 6
const roomCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const literatureGameType = "literature"

// Descriptor is the lightweight view returned by ListAvailableRooms.
type Descriptor struct {
	RoomID   string `json:"room_id"`
	GameType string `json:"game_type"`
}

// Registry owns every live Room for this process.
type Registry struct {
	mu    sync.Mutex
	rooms map[string]*room.Room

	idleTimeout time.Duration
	stop        chan struct{}
}

// Option configures a Registry at construction.
type Option func(*Registry)

// WithIdleTimeout enables the reaper goroutine, reclaiming rooms idle
// longer than d with no connected recipients. A zero duration (the
// zero-value Option set) disables reclamation, matching spec.md §9's note
// that the reference design keeps pre-seeded public rooms indefinitely.
func WithIdleTimeout(d time.Duration) Option {
	return func(r *Registry) { r.idleTimeout = d }
}

// New constructs an empty Registry and, if seedCount > 0, pre-seeds that
// many public rooms of the literature game type.
func New(seedCount int, opts ...Option) *Registry {
	r := &Registry{
		rooms: make(map[string]*room.Room),
		stop:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	for i := 0; i < seedCount; i++ {
		if _, err := r.CreateRoom(literatureGameType, ""); err != nil {
			// Collision-retry inside newRoomCodeLocked makes this effectively
			// unreachable; a panic here would indicate a broken PRNG.
			panic("registry: failed to pre-seed room: " + err.Error())
		}
	}
	if r.idleTimeout > 0 {
		go r.reapLoop()
	}
	return r
}

// Close stops the reaper goroutine, if running. Safe to call on a Registry
// built without WithIdleTimeout.
func (r *Registry) Close() {
	select {
	case <-r.stop:
	default:
		close(r.stop)
	}
}

// CreateRoom allocates a fresh Room. If roomID is empty, a 6-character
// uppercase-alphanumeric code is generated with collision-retry.
func (r *Registry) CreateRoom(gameType, roomID string) (*room.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if roomID == "" {
		roomID = r.newRoomCodeLocked()
	} else if _, exists := r.rooms[roomID]; exists {
		return nil, apperr.New(apperr.InvalidArgument, "room %q already exists", roomID)
	}

	rm := room.New(roomID, gameType)
	r.rooms[roomID] = rm
	return rm, nil
}

// GetRoom looks up a room by code. Returns NOT_FOUND if absent.
func (r *Registry) GetRoom(roomID string) (*room.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rm, ok := r.rooms[roomID]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "no room with code %q", roomID)
	}
	return rm, nil
}

// RegisterAction is a convenience that looks up roomID and dispatches
// action on token's behalf against it.
func (r *Registry) RegisterAction(roomID, token string, action room.Action) error {
	rm, err := r.GetRoom(roomID)
	if err != nil {
		return err
	}
	return rm.Dispatch(token, action)
}

// ListAvailableRooms returns a descriptor for every room not yet started,
// per the policy note in spec.md §4.5.
func (r *Registry) ListAvailableRooms() []Descriptor {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Descriptor, 0, len(r.rooms))
	for id, rm := range r.rooms {
		if rm.Game.State != game.NotStarted {
			continue
		}
		out = append(out, Descriptor{RoomID: id, GameType: rm.GameType})
	}
	return out
}

func (r *Registry) newRoomCodeLocked() string {
	for {
		buf := make([]byte, roomCodeLength)
		if _, err := rand.Read(buf); err != nil {
			panic("registry: crypto/rand failure: " + err.Error())
		}
		code := make([]byte, roomCodeLength)
		for i, b := range buf {
			code[i] = roomCodeAlphabet[int(b)%len(roomCodeAlphabet)]
		}
		id := string(code)
		if _, exists := r.rooms[id]; !exists {
			return id
		}
	}
}

func (r *Registry) reapLoop() {
	ticker := time.NewTicker(r.idleTimeout / 2)
	defer ticker.Stop()
	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			r.reapOnce()
		}
	}
}

func (r *Registry) reapOnce() {
	cutoff := time.Now().Add(-r.idleTimeout)
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, rm := range r.rooms {
		if rm.IsReclaimable() && rm.LastActivity().Before(cutoff) {
			delete(r.rooms, id)
		}
	}
}
