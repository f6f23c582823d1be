package quantum

import (
	"math"
	"slices"
)

// Selection tags which quantum numbers constrain an orbital state. Degeneracy is a
// function of the selection alone, so callers branch on it instead of probing fields.
type Selection int

const (
	// SelectNone means l is unset: degeneracy is undefined.
	SelectNone Selection = iota
	// SelectL is a whole shell: 2(2l+1) states.
	SelectL
	// SelectLMl fixes the orbital but not the spin: 2 states.
	SelectLMl
	// SelectLMs fixes the spin but not the orbital: 2l+1 states.
	SelectLMs
	// SelectLMlMs fixes a single spin-orbital: 1 state.
	SelectLMlMs
	// SelectJ lists total angular momenta without projections.
	SelectJ
	// SelectJMj lists total angular momenta and their projections.
	SelectJMj
)

func (s Selection) String() string {
	switch s {
	case SelectL:
		return "l"
	case SelectLMl:
		return "l+ml"
	case SelectLMs:
		return "l+ms"
	case SelectLMlMs:
		return "l+ml+ms"
	case SelectJ:
		return "j"
	case SelectJMj:
		return "j+mj"
	default:
		return "none"
	}
}

// Classify returns the selection made by the populated numbers of o.
func Classify(o Orbital) Selection {
	if o.L == nil {
		return SelectNone
	}
	switch {
	case len(o.J) > 0 && len(o.Mj) > 0:
		return SelectJMj
	case len(o.J) > 0:
		return SelectJ
	case o.Ml != nil && o.Ms != nil:
		return SelectLMlMs
	case o.Ml != nil:
		return SelectLMl
	case o.Ms != nil:
		return SelectLMs
	default:
		return SelectL
	}
}

// JCouplingRule counts the states selected by total angular momenta j and, optionally,
// their projections mj. It returns false when no state is selected.
type JCouplingRule interface {
	Degeneracy(j, mj []float64) (int, bool)
}

// Calculator computes orbital degeneracies. A nil JCoupling ignores j and mj and applies
// the ml/ms rule only.
type Calculator struct {
	JCoupling JCouplingRule
}

var (
	// Default applies MultiplicityRule when j is populated.
	Default = Calculator{JCoupling: MultiplicityRule{}}
	// BaselineOnly never lets j or mj override the ml/ms rule.
	BaselineOnly = Calculator{}
)

// Degeneracy returns the number of states compatible with o, or false when l is unset.
func (c Calculator) Degeneracy(o Orbital) (int, bool) {
	switch sel := Classify(o); sel {
	case SelectNone:
		return 0, false
	case SelectJ, SelectJMj:
		if c.JCoupling != nil {
			return c.JCoupling.Degeneracy(o.J, o.Mj)
		}
		o.J, o.Mj = nil, nil
		return baselineDegeneracy(Classify(o), *o.L)
	default:
		return baselineDegeneracy(sel, *o.L)
	}
}

func baselineDegeneracy(sel Selection, l int) (int, bool) {
	switch sel {
	case SelectLMlMs:
		return 1, true
	case SelectLMl:
		return 2, true
	case SelectLMs:
		return 2*l + 1, true
	case SelectL:
		return 2 * (2*l + 1), true
	}
	return 0, false
}

// halfIntegerTolerance absorbs float noise in j and mj values such as 1.5000000001.
const halfIntegerTolerance = 1e-9

// MultiplicityRule is the default j-coupled accounting.
//
// Without mj, every distinct j contributes its 2j+1 projections. With mj, the listed
// projections are counted with multiplicity, keeping only those compatible with every
// listed j (|mj| <= min j).
type MultiplicityRule struct{}

func (MultiplicityRule) Degeneracy(j, mj []float64) (int, bool) {
	if len(j) == 0 {
		return 0, false
	}
	total := 0
	if len(mj) == 0 {
		distinct := slices.Clone(j)
		slices.Sort(distinct)
		distinct = slices.CompactFunc(distinct, func(a, b float64) bool {
			return math.Abs(a-b) < halfIntegerTolerance
		})
		for _, jj := range distinct {
			if jj < 0 {
				continue
			}
			total += int(math.Round(2*jj)) + 1
		}
	} else {
		jMin := slices.Min(j)
		for _, m := range mj {
			if math.Abs(m) <= jMin+halfIntegerTolerance {
				total++
			}
		}
	}
	if total == 0 {
		return 0, false
	}
	return total, true
}
