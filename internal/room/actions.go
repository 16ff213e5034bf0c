package room

import "literature/internal/game"

// Action is the closed set of messages a Room's Dispatch accepts, modeled
// as a sum type per the design note in spec.md §9 so the switch in
// Dispatch is exhaustive at review time.
type Action interface {
	isRoomAction()
}

// AddPlayer synthesizes either a fresh game roster entry or a reconnect,
// depending on whether the dispatching token already resolves to an
// existing player.
type AddPlayer struct {
	Username string
}

// ExitRoom is an alias for RemovePlayer(self), synthesized on disconnect.
type ExitRoom struct{}

// RemovePlayer drops PlayerID from the room. Legal for PlayerID's own
// token or for the current host.
type RemovePlayer struct {
	PlayerID string
}

// ChangeHost transfers host_token to NewHostID, a different connected
// player. Legal only for the current host.
type ChangeHost struct {
	NewHostID string
}

// StartGame delegates to the embedded Game. Legal only for the host.
type StartGame struct{}

// PreGame wraps a lobby-phase Game action (currently only change_team).
type PreGame struct {
	Action game.PreGameAction
}

// InGame wraps an in-progress Game action (ask_card, claim_set, pass_turn).
type InGame struct {
	Action game.InGameAction
}

func (AddPlayer) isRoomAction()    {}
func (ExitRoom) isRoomAction()     {}
func (RemovePlayer) isRoomAction() {}
func (ChangeHost) isRoomAction()   {}
func (StartGame) isRoomAction()    {}
func (PreGame) isRoomAction()      {}
func (InGame) isRoomAction()       {}
