package session

import (
	"encoding/json"

	"literature/internal/apperr"
	"literature/internal/cards"
	"literature/internal/game"
	"literature/internal/player"
	"literature/internal/room"
)

// inboundEnvelope mirrors the client message shapes of spec.md §6. The
// server appends action_token and room_id itself; clients never set them.
type inboundEnvelope struct {
	Type          string           `json:"type"`
	InGameAction  *inGameActionMsg `json:"in_game_action,omitempty"`
	PreGameAction *preGameActionMsg `json:"pre_game_action,omitempty"`
	NewHostID     string           `json:"new_host_id,omitempty"`
	PlayerID      string           `json:"player_id,omitempty"`
}

type inGameActionMsg struct {
	Type          string      `json:"type"`
	AskedPlayerID string      `json:"asked_player_id,omitempty"`
	Card          cards.Card  `json:"card,omitempty"`
	SetNumber     int         `json:"set_number,omitempty"`
	TeammateID    string      `json:"teammate_id,omitempty"`
}

type preGameActionMsg struct {
	Type     string `json:"type"`
	PlayerID string `json:"player_id,omitempty"`
	NewTeam  int    `json:"new_team,omitempty"`
}

// successEnvelope is the outbound broadcast shape.
type successEnvelope struct {
	Success      bool              `json:"success"`
	CurrentState room.CurrentState `json:"currentState"`
}

// errorEnvelope is the outbound per-originator failure shape.
type errorEnvelope struct {
	Success    bool   `json:"success"`
	Error      string `json:"error"`
	Disconnect bool   `json:"disconnect"`
}

// parseAction decodes a client text frame into a room.Action. Unknown or
// malformed content returns an apperr with Kind INVALID_ARGUMENT.
func parseAction(raw []byte) (room.Action, error) {
	var env inboundEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, apperr.New(apperr.InvalidArgument, "malformed message: %v", err)
	}

	switch env.Type {
	case "in_game_action":
		return parseInGameAction(env.InGameAction)
	case "pre_game_action":
		return parsePreGameAction(env.PreGameAction)
	case "start_game":
		return room.StartGame{}, nil
	case "change_host":
		return room.ChangeHost{NewHostID: env.NewHostID}, nil
	case "remove_player":
		return room.RemovePlayer{PlayerID: env.PlayerID}, nil
	case "exit_room":
		return room.ExitRoom{}, nil
	default:
		return nil, apperr.New(apperr.InvalidArgument, "unknown action type %q", env.Type)
	}
}

func parseInGameAction(a *inGameActionMsg) (room.Action, error) {
	if a == nil {
		return nil, apperr.New(apperr.InvalidArgument, "missing in_game_action payload")
	}
	switch a.Type {
	case "ask_card":
		return room.InGame{Action: game.AskCard{AskedPlayerID: a.AskedPlayerID, Card: a.Card}}, nil
	case "claim_set":
		return room.InGame{Action: game.ClaimSetAction{SetNumber: a.SetNumber}}, nil
	case "pass_turn":
		return room.InGame{Action: game.PassTurn{TeammateID: a.TeammateID}}, nil
	default:
		return nil, apperr.New(apperr.InvalidArgument, "unknown in_game_action type %q", a.Type)
	}
}

func parsePreGameAction(a *preGameActionMsg) (room.Action, error) {
	if a == nil {
		return nil, apperr.New(apperr.InvalidArgument, "missing pre_game_action payload")
	}
	switch a.Type {
	case "change_team":
		return room.PreGame{Action: game.ChangeTeam{PlayerID: a.PlayerID, NewTeam: player.Team(a.NewTeam)}}, nil
	default:
		return nil, apperr.New(apperr.InvalidArgument, "unknown pre_game_action type %q", a.Type)
	}
}
