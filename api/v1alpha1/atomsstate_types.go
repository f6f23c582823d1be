package v1alpha1

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/matsim-io/simnorm/internal/logging"
	"github.com/matsim-io/simnorm/pkg/diagnostics"
	"github.com/matsim-io/simnorm/pkg/elements"
)

// AtomsState is the state of one atom: its element, orbitals, core hole and Hubbard
// interactions.
type AtomsState struct {
	// ChemicalSymbol is the element symbol, e.g. "Fe".
	ChemicalSymbol string `json:"chemical_symbol,omitempty"`

	// AtomicNumber is Z, 1..118. Zero means unset.
	AtomicNumber int `json:"atomic_number,omitempty"`

	// OrbitalsState lists the orbitals of the atom.
	OrbitalsState []*OrbitalsState `json:"orbitals_state,omitempty"`

	// CoreHole is an optional core-hole excitation out of one of OrbitalsState.
	CoreHole *CoreHole `json:"core_hole,omitempty"`

	// HubbardInteractions are the optional on-site interactions of the atom.
	HubbardInteractions *HubbardInteractions `json:"hubbard_interactions,omitempty"`
}

// ResolveAtomicNumber returns the atomic number of ChemicalSymbol, or 0 when it is unset
// or unknown.
func (a *AtomsState) ResolveAtomicNumber(logger logr.Logger) int {
	if a.ChemicalSymbol == "" {
		return 0
	}
	z, ok := elements.AtomicNumber(a.ChemicalSymbol)
	if !ok {
		logger.Error(fmt.Errorf("%w: chemical symbol %q", diagnostics.ErrOutOfRange, a.ChemicalSymbol),
			"Unknown chemical symbol")
		return 0
	}
	return z
}

// ResolveChemicalSymbol returns the symbol of AtomicNumber, or "" when it is unset or
// outside 1..118.
func (a *AtomsState) ResolveChemicalSymbol(logger logr.Logger) string {
	if a.AtomicNumber == 0 {
		return ""
	}
	s, ok := elements.Symbol(a.AtomicNumber)
	if !ok {
		logger.Error(fmt.Errorf("%w: atomic number %d", diagnostics.ErrOutOfRange, a.AtomicNumber),
			"Unknown atomic number")
		return ""
	}
	return s
}

// resolveIdentity keeps symbol and atomic number consistent. The symbol wins when both
// are supplied and disagree.
func (a *AtomsState) resolveIdentity(logger logr.Logger) {
	if a.ChemicalSymbol == "" {
		a.ChemicalSymbol = a.ResolveChemicalSymbol(logger)
		return
	}
	z := a.ResolveAtomicNumber(logger)
	if z == 0 {
		return
	}
	if a.AtomicNumber != 0 && a.AtomicNumber != z {
		logger.Error(fmt.Errorf("%w: symbol %s has atomic number %d, got %d",
			diagnostics.ErrInconsistentDualAttribute, a.ChemicalSymbol, z, a.AtomicNumber),
			"Overwriting atomic number from chemical symbol")
	}
	a.AtomicNumber = z
}

// linkCoreHole points the core hole at the orbital selected by its OrbitalRefIndex.
func (a *AtomsState) linkCoreHole(logger logr.Logger) {
	ch := a.CoreHole
	if ch == nil {
		return
	}
	if ch.OrbitalRef != nil {
		for i, o := range a.OrbitalsState {
			if o == ch.OrbitalRef {
				ch.OrbitalRefIndex = &i
				return
			}
		}
		return
	}
	if ch.OrbitalRefIndex == nil {
		return
	}
	i := *ch.OrbitalRefIndex
	if i < 0 || i >= len(a.OrbitalsState) {
		logger.Error(fmt.Errorf("%w: core hole orbital_ref %d, atom has %d orbitals",
			diagnostics.ErrOutOfRange, i, len(a.OrbitalsState)), "Ignoring core hole orbital reference")
		return
	}
	ch.OrbitalRef = a.OrbitalsState[i]
}

// Normalize resolves the element identity and normalizes orbitals, then the core hole,
// then the Hubbard interactions.
func (a *AtomsState) Normalize(ctx context.Context, logger logr.Logger) {
	a.resolveIdentity(logger)
	logger = logger.WithValues("chemicalSymbol", a.ChemicalSymbol)

	for _, o := range a.OrbitalsState {
		if o != nil {
			o.Normalize(ctx, logger)
		}
	}
	a.linkCoreHole(logger)
	if a.CoreHole != nil {
		a.CoreHole.Normalize(ctx, logger)
	}
	if a.HubbardInteractions != nil {
		a.HubbardInteractions.Normalize(ctx, logger)
	}
	logger.V(logging.TRACE).Info("Normalized atom state", "orbitals", len(a.OrbitalsState))
}
