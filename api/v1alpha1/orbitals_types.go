package v1alpha1

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-logr/logr"

	"github.com/matsim-io/simnorm/internal/logging"
	"github.com/matsim-io/simnorm/pkg/diagnostics"
	"github.com/matsim-io/simnorm/pkg/quantum"
)

// OrbitalsState is the quantum state of one orbital of an atom.
type OrbitalsState struct {
	// N is the principal quantum number (n >= 1).
	N *int `json:"n_quantum_number,omitempty"`

	// L is the azimuthal quantum number (0 <= l <= n-1).
	L *int `json:"l_quantum_number,omitempty"`
	// LSymbol is the spectroscopic letter of l (s, p, d, f).
	LSymbol string `json:"l_quantum_symbol,omitempty"`

	// Ml is the magnetic quantum number (-l <= ml <= l). Requires L.
	Ml *int `json:"ml_quantum_number,omitempty"`
	// MlSymbol is the real-orbital label of ml (x, z, y for the p shell).
	MlSymbol string `json:"ml_quantum_symbol,omitempty"`

	// Ms is the spin projection (+-0.5).
	Ms *float64 `json:"ms_quantum_number,omitempty"`
	// MsSymbol is the spin label of ms (up, down).
	MsSymbol string `json:"ms_quantum_symbol,omitempty"`

	// J lists the total angular momenta, l-0.5 and/or l+0.5.
	J []float64 `json:"j_quantum_number,omitempty"`
	// Mj lists projections of the total angular momentum.
	Mj []float64 `json:"mj_quantum_number,omitempty"`

	// Degeneracy is the number of states compatible with the populated numbers.
	Degeneracy *int `json:"degeneracy,omitempty"`
	// Occupation is the number of electrons in the orbital. It is written by the core
	// hole excited from this orbital.
	Occupation *float64 `json:"occupation,omitempty"`

	// mu serializes writes from the orbital itself and from core holes referencing it.
	mu sync.Mutex
}

func (o *OrbitalsState) orbital() quantum.Orbital {
	return quantum.Orbital{
		N: o.N, L: o.L, Ml: o.Ml, Ms: o.Ms, J: o.J, Mj: o.Mj,
		LSymbol: o.LSymbol, MlSymbol: o.MlSymbol, MsSymbol: o.MsSymbol,
	}
}

// ResolveNumberAndSymbol returns the number or symbol side of quantum number name; nil
// means undefined.
func (o *OrbitalsState) ResolveNumberAndSymbol(name quantum.Name, kind quantum.Kind) any {
	o.mu.Lock()
	defer o.mu.Unlock()
	return quantum.Resolve(name, kind, o.orbital())
}

// ResolveDegeneracy returns the degeneracy of the orbital under the resolvers of ctx.
func (o *OrbitalsState) ResolveDegeneracy(ctx context.Context) *int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.resolveDegeneracy(ResolversFrom(ctx).Degeneracy)
}

func (o *OrbitalsState) resolveDegeneracy(calc quantum.Calculator) *int {
	d, ok := calc.Degeneracy(o.orbital())
	if !ok {
		return nil
	}
	return &d
}

// Normalize validates the quantum numbers, fills each number from its symbol and each
// symbol from its number, and derives the degeneracy.
func (o *OrbitalsState) Normalize(ctx context.Context, logger logr.Logger) {
	o.mu.Lock()
	defer o.mu.Unlock()

	// Numbers first: ml symbols are only meaningful once l is known.
	o.L = resolveInt(o.L, o.LSymbol, quantum.NameL, o, logger)
	o.Ml = resolveInt(o.Ml, o.MlSymbol, quantum.NameMl, o, logger)
	if o.Ms == nil && o.MsSymbol != "" {
		if ms, ok := quantum.MsNumber(o.MsSymbol); ok {
			o.Ms = &ms
		} else {
			logger.Error(fmt.Errorf("%w: ms symbol %q", diagnostics.ErrOutOfRange, o.MsSymbol), "Unknown quantum symbol")
		}
	}

	for _, err := range quantum.Check(o.orbital()) {
		logger.Error(err, "Invalid quantum number")
	}

	o.LSymbol = o.symbol(quantum.NameL, o.LSymbol, logger)
	o.MlSymbol = o.symbol(quantum.NameMl, o.MlSymbol, logger)
	o.MsSymbol = o.symbol(quantum.NameMs, o.MsSymbol, logger)

	if d := o.resolveDegeneracy(ResolversFrom(ctx).Degeneracy); d != nil {
		o.Degeneracy = d
	} else {
		logger.V(logging.DEBUG).Info("Orbital degeneracy undefined, l is not set")
	}
}

func resolveInt(current *int, symbol string, name quantum.Name, o *OrbitalsState, logger logr.Logger) *int {
	if current != nil || symbol == "" {
		return current
	}
	if v, ok := quantum.Resolve(name, quantum.KindNumber, o.orbital()).(int); ok {
		return &v
	}
	logger.Error(fmt.Errorf("%w: %s symbol %q", diagnostics.ErrOutOfRange, name, symbol), "Unknown quantum symbol")
	return nil
}

// symbol returns the symbol matching the number of name, or "" when the number is unset
// or outside the lookup table. The number wins over a disagreeing supplied symbol.
func (o *OrbitalsState) symbol(name quantum.Name, supplied string, logger logr.Logger) string {
	orb := o.orbital()
	orb.LSymbol, orb.MlSymbol, orb.MsSymbol = "", "", ""
	if !hasNumber(name, orb) {
		return ""
	}
	derived, _ := quantum.Resolve(name, quantum.KindSymbol, orb).(string)
	if derived == "" {
		logger.V(logging.DEBUG).Info("No symbol for quantum number", "quantumNumber", string(name))
		return ""
	}
	if supplied != "" && supplied != derived {
		logger.Error(fmt.Errorf("%w: %s symbol %q disagrees with its number", diagnostics.ErrInconsistentDualAttribute, name, supplied),
			"Replacing quantum symbol", "symbol", derived)
	}
	return derived
}

func hasNumber(name quantum.Name, o quantum.Orbital) bool {
	switch name {
	case quantum.NameL:
		return o.L != nil
	case quantum.NameMl:
		return o.Ml != nil
	case quantum.NameMs:
		return o.Ms != nil
	}
	return false
}

// lockedOrbital is the core-hole view of an orbital whose mutex is already held.
type lockedOrbital struct {
	o    *OrbitalsState
	calc quantum.Calculator
}

func (h lockedOrbital) ResolveDegeneracy() *int {
	return h.o.resolveDegeneracy(h.calc)
}

func (h lockedOrbital) RecordOccupation(degeneracy int, occupation float64) {
	h.o.Degeneracy = &degeneracy
	h.o.Occupation = &occupation
}
