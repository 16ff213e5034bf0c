package game

import (
	"testing"

	"literature/internal/apperr"
	"literature/internal/cards"
	"literature/internal/player"
)

// newInProgressGame builds a 6-player game already IN_PROGRESS with empty
// hands, bypassing StartGame's randomness so tests can assign exact hands.
// This mirrors the teacher's own tests, which construct domain structs
// directly rather than stubbing the PRNG.
func newInProgressGame(t *testing.T) (*Game, []string) {
	t.Helper()
	g, ids := newSixPlayerGame(t)
	g.State = InProgress
	return g, ids
}

func TestAskForCardSuccessTransfersCardAndKeepsTurn(t *testing.T) {
	g, ids := newInProgressGame(t)
	asker, askee := g.Players[ids[0]], g.Players[ids[1]]
	asker.Team, askee.Team = player.Team1, player.Team2
	asker.AddCard("AC1")
	askee.AddCard("2C1")
	g.CurrentTurnPlayerID = asker.ID

	err := g.AskForCard(asker.ID, askee.ID, "2C1")
	if err != nil {
		t.Fatalf("AskForCard: %v", err)
	}
	if !asker.HasCard("2C1") || askee.HasCard("2C1") {
		t.Fatal("expected card to transfer to asker")
	}
	if g.CurrentTurnPlayerID != asker.ID {
		t.Fatal("turn should not change on a successful ask")
	}
	if g.LastAsk == nil || !g.LastAsk.Success {
		t.Fatal("expected LastAsk recorded as success")
	}
}

func TestAskForCardFailurePassesTurnToAskee(t *testing.T) {
	g, ids := newInProgressGame(t)
	asker, askee := g.Players[ids[0]], g.Players[ids[1]]
	asker.Team, askee.Team = player.Team1, player.Team2
	asker.AddCard("AC1")
	askee.AddCard("3C1") // askee has a card, just not the one asked for
	g.CurrentTurnPlayerID = asker.ID

	err := g.AskForCard(asker.ID, askee.ID, "2C1")
	if err != nil {
		t.Fatalf("AskForCard: %v", err)
	}
	if g.CurrentTurnPlayerID != askee.ID {
		t.Fatal("turn should pass to askee on a failed ask")
	}
	if g.LastAsk == nil || g.LastAsk.Success {
		t.Fatal("expected LastAsk recorded as failure")
	}
}

func TestAskForCardRejectsWithoutSetMembership(t *testing.T) {
	g, ids := newInProgressGame(t)
	asker, askee := g.Players[ids[0]], g.Players[ids[1]]
	asker.Team, askee.Team = player.Team1, player.Team2
	askee.AddCard("2C1")

	err := g.AskForCard(asker.ID, askee.ID, "2C1")
	if apperr.KindOf(err) != apperr.RuleViolation {
		t.Fatalf("expected RULE_VIOLATION, got %v", err)
	}
}

func TestAskForCardRejectsSameTeam(t *testing.T) {
	g, ids := newInProgressGame(t)
	asker, teammate := g.Players[ids[0]], g.Players[ids[2]]
	asker.Team, teammate.Team = player.Team1, player.Team1
	asker.AddCard("AC1")
	teammate.AddCard("2C1")

	err := g.AskForCard(asker.ID, teammate.ID, "2C1")
	if apperr.KindOf(err) != apperr.RuleViolation {
		t.Fatalf("expected RULE_VIOLATION, got %v", err)
	}
}

func TestAskForCardRejectsInvalidCard(t *testing.T) {
	g, ids := newInProgressGame(t)
	asker, askee := g.Players[ids[0]], g.Players[ids[1]]
	asker.AddCard("AC1")

	err := g.AskForCard(asker.ID, askee.ID, "ZZ9")
	if apperr.KindOf(err) != apperr.InvalidArgument {
		t.Fatalf("expected INVALID_ARGUMENT, got %v", err)
	}
}

func TestAskForCardRejectsAlreadyClaimedSet(t *testing.T) {
	g, ids := newInProgressGame(t)
	asker, askee := g.Players[ids[0]], g.Players[ids[1]]
	asker.Team, askee.Team = player.Team1, player.Team2
	asker.AddCard("AC1")
	askee.AddCard("2C1")
	g.ClaimedSets[1] = player.Team1

	err := g.AskForCard(asker.ID, askee.ID, "2C1")
	if apperr.KindOf(err) != apperr.RuleViolation {
		t.Fatalf("expected RULE_VIOLATION, got %v", err)
	}
}

func TestAskForCardRejectsWhenAskerAlreadyHoldsCard(t *testing.T) {
	g, ids := newInProgressGame(t)
	asker, askee := g.Players[ids[0]], g.Players[ids[1]]
	asker.Team, askee.Team = player.Team1, player.Team2
	asker.AddCard("AC1")
	asker.AddCard("2C1")

	err := g.AskForCard(asker.ID, askee.ID, "2C1")
	if apperr.KindOf(err) != apperr.RuleViolation {
		t.Fatalf("expected RULE_VIOLATION, got %v", err)
	}
}

func TestAskForCardRejectsEmptyHandedAskee(t *testing.T) {
	g, ids := newInProgressGame(t)
	asker, askee := g.Players[ids[0]], g.Players[ids[1]]
	asker.Team, askee.Team = player.Team1, player.Team2
	asker.AddCard("AC1")

	err := g.AskForCard(asker.ID, askee.ID, "2C1")
	if apperr.KindOf(err) != apperr.RuleViolation {
		t.Fatalf("expected RULE_VIOLATION, got %v", err)
	}
}

func TestAskForCardRequiresInProgress(t *testing.T) {
	g, ids := newSixPlayerGame(t)
	err := g.AskForCard(ids[0], ids[1], "AC1")
	if apperr.KindOf(err) != apperr.IllegalState {
		t.Fatalf("expected ILLEGAL_STATE, got %v", err)
	}
}

func dealSetToTeam(g *Game, set int, teamPlayerIDs []string) {
	cardsInSet, _ := cards.CardsInSet(set)
	for i, c := range cardsInSet {
		g.Players[teamPlayerIDs[i%len(teamPlayerIDs)]].AddCard(c)
	}
}

func TestClaimSetCorrectClaimScoresDeclarantTeam(t *testing.T) {
	g, ids := newInProgressGame(t)
	team1IDs := []string{ids[0], ids[2], ids[4]}
	for _, id := range team1IDs {
		g.Players[id].Team = player.Team1
	}
	for _, id := range []string{ids[1], ids[3], ids[5]} {
		g.Players[id].Team = player.Team2
	}
	dealSetToTeam(g, 1, team1IDs)

	err := g.ClaimSet(1, ids[0])
	if err != nil {
		t.Fatalf("ClaimSet: %v", err)
	}
	if g.ClaimedSets[1] != player.Team1 {
		t.Fatalf("expected team1 to win set 1, got %v", g.ClaimedSets[1])
	}
	if g.Scores[player.Team1] != 1 {
		t.Fatalf("expected team1 score 1, got %d", g.Scores[player.Team1])
	}
	for _, id := range team1IDs {
		if len(g.Players[id].Hand) != 0 {
			t.Fatalf("expected set cards purged from %s", id)
		}
	}
}

func TestClaimSetIncorrectClaimAwardsOpponents(t *testing.T) {
	g, ids := newInProgressGame(t)
	team1IDs := []string{ids[0], ids[2], ids[4]}
	team2IDs := []string{ids[1], ids[3], ids[5]}
	for _, id := range team1IDs {
		g.Players[id].Team = player.Team1
	}
	for _, id := range team2IDs {
		g.Players[id].Team = player.Team2
	}
	// Give team1 only 5 of the 6 cards; the last lands on team2.
	setCards, _ := cards.CardsInSet(1)
	for i, c := range setCards[:5] {
		g.Players[team1IDs[i%len(team1IDs)]].AddCard(c)
	}
	g.Players[team2IDs[0]].AddCard(setCards[5])

	err := g.ClaimSet(1, team1IDs[0])
	if err != nil {
		t.Fatalf("ClaimSet: %v", err)
	}
	if g.ClaimedSets[1] != player.Team2 {
		t.Fatalf("expected team2 to be awarded the incorrect claim, got %v", g.ClaimedSets[1])
	}
	if g.Scores[player.Team2] != 1 {
		t.Fatalf("expected team2 score 1, got %d", g.Scores[player.Team2])
	}
	// Cards are purged regardless of correctness.
	if len(g.Players[team2IDs[0]].Hand) != 0 {
		t.Fatal("expected the stray card purged from team2 as well")
	}
}

func TestClaimSetRejectsOutOfRange(t *testing.T) {
	g, ids := newInProgressGame(t)
	err := g.ClaimSet(0, ids[0])
	if apperr.KindOf(err) != apperr.InvalidArgument {
		t.Fatalf("expected INVALID_ARGUMENT, got %v", err)
	}
	err = g.ClaimSet(10, ids[0])
	if apperr.KindOf(err) != apperr.InvalidArgument {
		t.Fatalf("expected INVALID_ARGUMENT, got %v", err)
	}
}

func TestClaimSetRejectsAlreadyClaimed(t *testing.T) {
	g, ids := newInProgressGame(t)
	g.ClaimedSets[1] = player.Team1
	err := g.ClaimSet(1, ids[0])
	if apperr.KindOf(err) != apperr.RuleViolation {
		t.Fatalf("expected RULE_VIOLATION, got %v", err)
	}
}

func TestClaimSetNinthClaimEndsGameWithWinner(t *testing.T) {
	g, ids := newInProgressGame(t)
	team1IDs := []string{ids[0], ids[2], ids[4]}
	team2IDs := []string{ids[1], ids[3], ids[5]}
	for _, id := range team1IDs {
		g.Players[id].Team = player.Team1
	}
	for _, id := range team2IDs {
		g.Players[id].Team = player.Team2
	}
	for set := 1; set <= 8; set++ {
		g.ClaimedSets[set] = player.Team1
		g.Scores[player.Team1]++
	}
	dealSetToTeam(g, 9, team2IDs)

	err := g.ClaimSet(9, team2IDs[0])
	if err != nil {
		t.Fatalf("ClaimSet: %v", err)
	}
	if g.State != Ended {
		t.Fatalf("expected game ended after the 9th claim, got %v", g.State)
	}
	if g.WinningTeam != player.Team1 {
		t.Fatalf("expected team1 (8 sets) to win over team2 (1 set), got %v", g.WinningTeam)
	}
}

// Nine sets cannot split evenly: from a 4/4 score the ninth claim decides
// the winner.
func TestClaimSetNinthClaimBreaksFourFourScore(t *testing.T) {
	g, ids := newInProgressGame(t)
	team1IDs := []string{ids[0], ids[2], ids[4]}
	team2IDs := []string{ids[1], ids[3], ids[5]}
	for _, id := range team1IDs {
		g.Players[id].Team = player.Team1
	}
	for _, id := range team2IDs {
		g.Players[id].Team = player.Team2
	}
	for set := 1; set <= 4; set++ {
		g.ClaimedSets[set] = player.Team1
		g.Scores[player.Team1]++
	}
	for set := 5; set <= 8; set++ {
		g.ClaimedSets[set] = player.Team2
		g.Scores[player.Team2]++
	}
	dealSetToTeam(g, 9, team2IDs)

	if err := g.ClaimSet(9, team2IDs[0]); err != nil {
		t.Fatalf("ClaimSet: %v", err)
	}
	if g.WinningTeam != player.Team2 {
		t.Fatalf("expected team2 (5 sets) to win over team1 (4 sets), got %v", g.WinningTeam)
	}
}

func TestPassTurnToTeammateRejectsNonEmptyHand(t *testing.T) {
	g, ids := newInProgressGame(t)
	passer, teammate := g.Players[ids[0]], g.Players[ids[2]]
	passer.Team, teammate.Team = player.Team1, player.Team1
	passer.AddCard("AC1")

	err := g.PassTurnToTeammate(passer.ID, teammate.ID)
	if apperr.KindOf(err) != apperr.RuleViolation {
		t.Fatalf("expected RULE_VIOLATION, got %v", err)
	}
}

func TestPassTurnToTeammateRejectsSelf(t *testing.T) {
	g, ids := newInProgressGame(t)
	p := g.Players[ids[0]]
	err := g.PassTurnToTeammate(p.ID, p.ID)
	if apperr.KindOf(err) != apperr.RuleViolation {
		t.Fatalf("expected RULE_VIOLATION, got %v", err)
	}
}

func TestPassTurnToTeammateRejectsDifferentTeam(t *testing.T) {
	g, ids := newInProgressGame(t)
	passer, other := g.Players[ids[0]], g.Players[ids[1]]
	passer.Team, other.Team = player.Team1, player.Team2

	err := g.PassTurnToTeammate(passer.ID, other.ID)
	if apperr.KindOf(err) != apperr.RuleViolation {
		t.Fatalf("expected RULE_VIOLATION, got %v", err)
	}
}

func TestPassTurnToTeammateSucceedsWithEmptyHand(t *testing.T) {
	g, ids := newInProgressGame(t)
	passer, teammate := g.Players[ids[0]], g.Players[ids[2]]
	passer.Team, teammate.Team = player.Team1, player.Team1

	err := g.PassTurnToTeammate(passer.ID, teammate.ID)
	if err != nil {
		t.Fatalf("PassTurnToTeammate: %v", err)
	}
	if g.CurrentTurnPlayerID != teammate.ID {
		t.Fatal("expected turn to move to teammate")
	}
}
