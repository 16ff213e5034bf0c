package game

import (
	"literature/internal/apperr"
	"literature/internal/cards"
	"literature/internal/player"
)

// PreGameAction is the closed set of actions legal while a game is
// NOT_STARTED. Modeled as a sum type per the design note in spec.md §9: a
// type switch over its variants gives exhaustiveness at review time, unlike
// a loosely-typed map of fields.
type PreGameAction interface {
	isPreGameAction()
}

// ChangeTeam moves PlayerID to NewTeam. The only pre-game action today.
type ChangeTeam struct {
	PlayerID string
	NewTeam  player.Team
}

func (ChangeTeam) isPreGameAction() {}

// InGameAction is the closed set of actions legal while a game is
// IN_PROGRESS.
type InGameAction interface {
	isInGameAction()
}

type AskCard struct {
	AskedPlayerID string
	Card          cards.Card
}

type ClaimSetAction struct {
	SetNumber int
}

type PassTurn struct {
	TeammateID string
}

func (AskCard) isInGameAction()        {}
func (ClaimSetAction) isInGameAction() {}
func (PassTurn) isInGameAction()       {}

// RegisterPreGameAction authorizes and applies a lobby-phase action.
// Authorization: only the acting player themselves or the host may change
// that player's team.
func (g *Game) RegisterPreGameAction(actorID string, actorIsHost bool, action PreGameAction) error {
	if g.State != NotStarted {
		return apperr.New(apperr.IllegalState, "game has already started or ended")
	}
	switch a := action.(type) {
	case ChangeTeam:
		if actorID != a.PlayerID && !actorIsHost {
			return apperr.New(apperr.RuleViolation, "only the player or the host can change team")
		}
		if a.NewTeam != player.Team1 && a.NewTeam != player.Team2 {
			return apperr.New(apperr.InvalidArgument, "team must be 1 or 2")
		}
		p, ok := g.Players[a.PlayerID]
		if !ok {
			return apperr.New(apperr.NotFound, "unknown player %q", a.PlayerID)
		}
		p.Team = a.NewTeam
		return nil
	default:
		return apperr.New(apperr.InvalidArgument, "unknown pre-game action")
	}
}

// RegisterInGameAction authorizes and dispatches an in-progress action.
// Only the current turn holder may act; claim_set is not exempt from this
// check in this implementation (see spec.md §9 open question).
func (g *Game) RegisterInGameAction(actorID string, action InGameAction) error {
	if g.State != InProgress {
		return apperr.New(apperr.IllegalState, "game is not in progress")
	}
	if actorID != g.CurrentTurnPlayerID {
		return apperr.New(apperr.RuleViolation, "it is not %s's turn", actorID)
	}
	switch a := action.(type) {
	case AskCard:
		return g.AskForCard(actorID, a.AskedPlayerID, a.Card)
	case ClaimSetAction:
		return g.ClaimSet(a.SetNumber, actorID)
	case PassTurn:
		return g.PassTurnToTeammate(actorID, a.TeammateID)
	default:
		return apperr.New(apperr.InvalidArgument, "unknown in-game action")
	}
}
