// Package formula builds canonical chemical-formula strings from an atom composition.
package formula

// Composition counts atoms per element, remembering the order in which elements first
// appear. The zero value is an empty composition.
type Composition struct {
	order  []string
	counts map[string]int
}

// NewComposition counts symbols in encounter order. Empty symbols are skipped.
func NewComposition(symbols []string) Composition {
	c := Composition{counts: make(map[string]int)}
	for _, s := range symbols {
		c.Add(s, 1)
	}
	return c
}

// Add adds n atoms of symbol.
func (c *Composition) Add(symbol string, n int) {
	if symbol == "" || n <= 0 {
		return
	}
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	if _, seen := c.counts[symbol]; !seen {
		c.order = append(c.order, symbol)
	}
	c.counts[symbol] += n
}

// Elements returns the element symbols in first-appearance order.
func (c Composition) Elements() []string {
	return append([]string(nil), c.order...)
}

// Count returns the number of atoms of symbol.
func (c Composition) Count(symbol string) int { return c.counts[symbol] }

// Empty reports whether the composition has no atoms.
func (c Composition) Empty() bool { return len(c.order) == 0 }

// Atoms returns the total number of atoms.
func (c Composition) Atoms() int {
	total := 0
	for _, n := range c.counts {
		total += n
	}
	return total
}
