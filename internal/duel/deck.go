package duel

import (
	rand "math/rand/v2"
)

// shapeAdjust perturbs a character's base deck shape for a difficulty tier.
// Adjustments move cards between kinds, never change the total.
type shapeAdjust func(DeckShape, *rand.Rand) DeckShape

var shapeAdjusts = map[Difficulty]shapeAdjust{
	Easy: func(s DeckShape, rng *rand.Rand) DeckShape {
		// Shift one card between attack and defend in a random direction.
		if rng.IntN(2) == 0 {
			moveCards(&s.Attack, &s.Defend, 1)
		} else {
			moveCards(&s.Defend, &s.Attack, 1)
		}
		return s
	},
	Medium: func(s DeckShape, _ *rand.Rand) DeckShape { return s },
	Hard: func(s DeckShape, _ *rand.Rand) DeckShape {
		moveCards(&s.Heal, &s.Attack, 1)
		return s
	},
	Expert: func(s DeckShape, _ *rand.Rand) DeckShape {
		moveCards(&s.Heal, &s.Attack, 2)
		return s
	},
}

// moveCards transfers up to n cards from one kind count to another.
func moveCards(from, to *int, n int) {
	if *from < n {
		n = *from
	}
	*from -= n
	*to += n
}

// ShapeFor returns the deck shape for a character at a difficulty, scaled so
// its counts sum exactly to deckSize.
func ShapeFor(c Character, d Difficulty, deckSize int, rng *rand.Rand) DeckShape {
	shape := baseShapes[c]
	if adjust, ok := shapeAdjusts[d]; ok {
		shape = adjust(shape, rng)
	}
	return scaleShape(shape, deckSize)
}

// scaleShape proportionally resizes a shape to sum to deckSize. Rounding
// remainders land on attack so the invariant holds for any target size.
func scaleShape(s DeckShape, deckSize int) DeckShape {
	total := s.Total()
	if total == deckSize {
		return s
	}
	scaled := DeckShape{
		Attack: s.Attack * deckSize / total,
		Defend: s.Defend * deckSize / total,
		Heal:   s.Heal * deckSize / total,
		Curse:  s.Curse * deckSize / total,
	}
	scaled.Attack += deckSize - scaled.Total()
	return scaled
}

// GenerateDeck builds and shuffles a deck for a character at a difficulty.
// The returned slice always has exactly rules.DeckSize cards.
func GenerateDeck(c Character, d Difficulty, rules Rules, rng *rand.Rand) []Card {
	shape := ShapeFor(c, d, rules.DeckSize, rng)

	deck := make([]Card, 0, rules.DeckSize)
	for i := 0; i < shape.Attack; i++ {
		deck = append(deck, Attack)
	}
	for i := 0; i < shape.Defend; i++ {
		deck = append(deck, Defend)
	}
	for i := 0; i < shape.Heal; i++ {
		deck = append(deck, Heal)
	}
	for i := 0; i < shape.Curse; i++ {
		deck = append(deck, Curse)
	}

	shuffle(deck, rng)
	return deck
}

// shuffle applies a uniform Fisher-Yates permutation in place.
func shuffle(cards []Card, rng *rand.Rand) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}
