// Package cards holds the static 54-card Literature deck: the card id
// encoding, the 9 six-card sets, and pure lookup helpers. There is no
// mutable state in this package — every function is a pure computation
// over the fixed catalog built at init time, mirroring the teacher's
// domain.NewDeck/domain.ShuffleDeck pair of pure deck helpers.
package cards

import "literature/internal/apperr"

// Card is the compact 3-character identifier "RST": rank, suit/color, set
// index. Rank is one of A,2-9,1 (ten),J,Q,K; suit is one of C,D,H,S, or R/B
// for the red/black joker; the set index (1-9) is encoded directly into the
// id so set_of is O(1).
type Card string

const numSets = 9

// setNames labels each of the 9 six-card sets for client display.
var setNames = [numSets + 1]string{
	"", // unused, sets are 1-indexed
	"Low Clubs", "High Clubs",
	"Low Diamonds", "High Diamonds",
	"Low Hearts", "High Hearts",
	"Low Spades", "High Spades",
	"Sevens and Jokers",
}

var (
	lowRanks  = []string{"A", "2", "3", "4", "5", "6"}
	highRanks = []string{"8", "9", "1", "J", "Q", "K"}
	suits     = []string{"C", "D", "H", "S"}
)

// deck is the full 54-card universe, built once at package init.
// setOf maps each card to its set index; sets maps each set index (1-9)
// to its 6 member cards.
var (
	deck  []Card
	setOf = map[Card]int{}
	sets  = map[int][]Card{}
)

func init() {
	setIdx := 1
	for _, suit := range suits {
		for _, ranks := range [][]string{lowRanks, highRanks} {
			var set []Card
			for _, rank := range ranks {
				c := Card(rank + suit + itoa(setIdx))
				set = append(set, c)
				setOf[c] = setIdx
				deck = append(deck, c)
			}
			sets[setIdx] = set
			setIdx++
		}
	}

	// Set 9: the four sevens plus the red and black jokers.
	var sevensAndJokers []Card
	for _, suit := range suits {
		c := Card("7" + suit + itoa(numSets))
		sevensAndJokers = append(sevensAndJokers, c)
		setOf[c] = numSets
		deck = append(deck, c)
	}
	for _, color := range []string{"R", "B"} {
		c := Card("J" + color + itoa(numSets))
		sevensAndJokers = append(sevensAndJokers, c)
		setOf[c] = numSets
		deck = append(deck, c)
	}
	sets[numSets] = sevensAndJokers
}

// itoa avoids importing strconv for a single-digit conversion.
func itoa(n int) string {
	return string(rune('0' + n))
}

// AllCards returns every card in the 54-card universe. The returned slice
// is a fresh copy; callers may mutate it freely.
func AllCards() []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	return out
}

// CardsInSet returns the 6 cards belonging to set n (1..9). A fresh copy is
// returned on each call.
func CardsInSet(n int) ([]Card, error) {
	set, ok := sets[n]
	if !ok {
		return nil, apperr.New(apperr.InvalidArgument, "invalid set number: %d", n)
	}
	out := make([]Card, len(set))
	copy(out, set)
	return out, nil
}

// SetOf returns the set index (1..9) a card belongs to.
func SetOf(card Card) (int, error) {
	n, ok := setOf[card]
	if !ok {
		return 0, apperr.New(apperr.InvalidArgument, "invalid card: %q", card)
	}
	return n, nil
}

// SetName returns a human-readable label for set n (1..9).
func SetName(n int) (string, error) {
	if n < 1 || n > numSets {
		return "", apperr.New(apperr.InvalidArgument, "invalid set number: %d", n)
	}
	return setNames[n], nil
}

// IsValid reports whether card belongs to the 54-card universe.
func IsValid(card Card) bool {
	_, ok := setOf[card]
	return ok
}

// NumSets is the number of sets the 54-card deck is partitioned into.
func NumSets() int {
	return numSets
}
