package game

import (
	"literature/internal/apperr"
	"literature/internal/cards"
	"literature/internal/player"
)

// cardsHeldByTeam returns the union of hands of every player on team t.
func (g *Game) cardsHeldByTeam(t player.Team) map[cards.Card]struct{} {
	held := make(map[cards.Card]struct{})
	for _, p := range g.Players {
		if p.Team != t {
			continue
		}
		for c := range p.Hand {
			held[c] = struct{}{}
		}
	}
	return held
}

// AskForCard is the central Literature rule: asking names a card the
// asking player believes the asked player holds. Preconditions are checked
// in the order listed in the spec; a card outside the deck raises
// INVALID_ARGUMENT, any other rule violation raises RULE_VIOLATION, and a
// rejected ask mutates nothing.
func (g *Game) AskForCard(askingID, askedID string, card cards.Card) error {
	if g.State != InProgress {
		return apperr.New(apperr.IllegalState, "game is not in progress")
	}
	asker, ok := g.Players[askingID]
	if !ok {
		return apperr.New(apperr.NotFound, "unknown asking player %q", askingID)
	}
	askee, ok := g.Players[askedID]
	if !ok {
		return apperr.New(apperr.NotFound, "unknown asked player %q", askedID)
	}

	if !cards.IsValid(card) {
		return apperr.New(apperr.InvalidArgument, "invalid card %q", card)
	}
	if asker.HasCard(card) {
		return apperr.New(apperr.RuleViolation, "%s already holds %s", askingID, card)
	}
	setNumber, err := cards.SetOf(card)
	if err != nil {
		return err
	}
	if _, claimed := g.ClaimedSets[setNumber]; claimed {
		return apperr.New(apperr.RuleViolation, "set %d has already been claimed", setNumber)
	}
	setCards, _ := cards.CardsInSet(setNumber)
	holdsFromSet := false
	for _, c := range setCards {
		if asker.HasCard(c) {
			holdsFromSet = true
			break
		}
	}
	if !holdsFromSet {
		return apperr.New(apperr.RuleViolation, "%s must hold a card from set %d to ask for %s", askingID, setNumber, card)
	}
	if asker.Team == askee.Team {
		return apperr.New(apperr.RuleViolation, "cannot ask a teammate for a card")
	}
	if len(askee.Hand) == 0 {
		return apperr.New(apperr.RuleViolation, "%s has no cards", askedID)
	}

	success := askee.HasCard(card)
	if success {
		askee.RemoveCard(card)
		asker.AddCard(card)
	} else {
		g.CurrentTurnPlayerID = askedID
	}
	g.LastAsk = &Ask{
		AskingPlayerID: askingID,
		AskedPlayerID:  askedID,
		Card:           card,
		Success:        success,
	}
	return nil
}

// ClaimSet resolves a team's declaration that they collectively hold every
// card of setNumber. Every card in the set is purged from every hand
// regardless of whether the claim was correct.
func (g *Game) ClaimSet(setNumber int, declaringID string) error {
	if g.State != InProgress {
		return apperr.New(apperr.IllegalState, "game is not in progress")
	}
	if setNumber < 1 || setNumber > cards.NumSets() {
		return apperr.New(apperr.InvalidArgument, "set number must be between 1 and %d", cards.NumSets())
	}
	if _, claimed := g.ClaimedSets[setNumber]; claimed {
		return apperr.New(apperr.RuleViolation, "set %d has already been claimed", setNumber)
	}
	declarant, ok := g.Players[declaringID]
	if !ok {
		return apperr.New(apperr.NotFound, "unknown declaring player %q", declaringID)
	}

	needed, _ := cards.CardsInSet(setNumber)
	held := g.cardsHeldByTeam(declarant.Team)

	allHeld := true
	for _, c := range needed {
		if _, ok := held[c]; !ok {
			allHeld = false
			break
		}
	}

	var winningTeam player.Team
	if allHeld {
		winningTeam = declarant.Team
	} else if declarant.Team == player.Team1 {
		winningTeam = player.Team2
	} else {
		winningTeam = player.Team1
	}

	for _, c := range needed {
		for _, p := range g.Players {
			p.RemoveCard(c)
		}
	}

	g.ClaimedSets[setNumber] = winningTeam
	g.Scores[winningTeam]++

	if len(g.ClaimedSets) == cards.NumSets() {
		g.State = Ended
		if g.Scores[player.Team1] > g.Scores[player.Team2] {
			g.WinningTeam = player.Team1
		} else if g.Scores[player.Team2] > g.Scores[player.Team1] {
			g.WinningTeam = player.Team2
		} else {
			g.WinningTeam = player.NoTeam
		}
	}
	return nil
}

// PassTurnToTeammate hands the turn to a teammate. Legal only when the
// passer's hand is empty, the two are distinct, and they share a team.
func (g *Game) PassTurnToTeammate(passerID, teammateID string) error {
	if g.State != InProgress {
		return apperr.New(apperr.IllegalState, "game is not in progress")
	}
	passer, ok := g.Players[passerID]
	if !ok {
		return apperr.New(apperr.NotFound, "unknown player %q", passerID)
	}
	teammate, ok := g.Players[teammateID]
	if !ok {
		return apperr.New(apperr.NotFound, "unknown player %q", teammateID)
	}
	if passerID == teammateID {
		return apperr.New(apperr.RuleViolation, "cannot pass turn to yourself")
	}
	if passer.Team != teammate.Team {
		return apperr.New(apperr.RuleViolation, "cannot pass turn to a player on a different team")
	}
	if len(passer.Hand) > 0 {
		return apperr.New(apperr.RuleViolation, "cannot pass turn while holding cards")
	}
	g.CurrentTurnPlayerID = teammateID
	return nil
}
