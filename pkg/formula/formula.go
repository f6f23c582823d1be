package formula

import (
	"slices"
	"strconv"
	"strings"
)

// Formula holds the five canonical composition strings.
type Formula struct {
	Descriptive string `json:"descriptive,omitempty"`
	Reduced     string `json:"reduced,omitempty"`
	IUPAC       string `json:"iupac,omitempty"`
	Hill        string `json:"hill,omitempty"`
	Anonymous   string `json:"anonymous,omitempty"`
}

// Build derives every formula of c. It returns false for an empty composition.
func Build(c Composition) (Formula, bool) {
	if c.Empty() {
		return Formula{}, false
	}
	return Formula{
		Descriptive: Descriptive(c),
		Reduced:     Reduced(c),
		IUPAC:       IUPAC(c),
		Hill:        Hill(c),
		Anonymous:   Anonymous(c),
	}, true
}

type term struct {
	symbol string
	count  int
}

func (c Composition) terms(divisor int) []term {
	out := make([]term, 0, len(c.order))
	for _, s := range c.order {
		out = append(out, term{symbol: s, count: c.counts[s] / divisor})
	}
	return out
}

func (c Composition) gcd() int {
	g := 0
	for _, n := range c.counts {
		g = gcd(g, n)
	}
	if g == 0 {
		return 1
	}
	return g
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func render(terms []term) string {
	var b strings.Builder
	for _, t := range terms {
		b.WriteString(t.symbol)
		if t.count != 1 {
			b.WriteString(strconv.Itoa(t.count))
		}
	}
	return b.String()
}

// Descriptive lists elements in first-appearance order with their full counts.
func Descriptive(c Composition) string {
	return render(c.terms(1))
}

// Reduced lists elements alphabetically with counts divided by their common divisor.
func Reduced(c Composition) string {
	terms := c.terms(c.gcd())
	slices.SortFunc(terms, func(a, b term) int { return strings.Compare(a.symbol, b.symbol) })
	return render(terms)
}

// IUPAC orders elements by the IUPAC element sequence with reduced counts.
// Symbols outside the periodic table sort last, alphabetically.
func IUPAC(c Composition) string {
	terms := c.terms(c.gcd())
	slices.SortStableFunc(terms, func(a, b term) int {
		ra, oka := iupacRank[a.symbol]
		rb, okb := iupacRank[b.symbol]
		switch {
		case oka && okb:
			return ra - rb
		case oka:
			return -1
		case okb:
			return 1
		}
		return strings.Compare(a.symbol, b.symbol)
	})
	return render(terms)
}

// Hill puts carbon first and hydrogen next, followed by the other elements
// alphabetically, with reduced counts.
func Hill(c Composition) string {
	terms := c.terms(c.gcd())
	rank := func(s string) int {
		switch s {
		case "C":
			return 0
		case "H":
			return 1
		}
		return 2
	}
	slices.SortFunc(terms, func(a, b term) int {
		if d := rank(a.symbol) - rank(b.symbol); d != 0 {
			return d
		}
		return strings.Compare(a.symbol, b.symbol)
	})
	return render(terms)
}

// Anonymous replaces elements, sorted by descending count, with A, B, C and so on.
// Ties keep first-appearance order. Past Z the placeholders continue as Aa, Ab, ...
func Anonymous(c Composition) string {
	terms := c.terms(1)
	slices.SortStableFunc(terms, func(a, b term) int { return b.count - a.count })
	for i := range terms {
		terms[i].symbol = placeholder(i)
	}
	return render(terms)
}

func placeholder(i int) string {
	if i < 26 {
		return string(rune('A' + i))
	}
	return string(rune('A'+i/26-1)) + string(rune('a'+i%26))
}
