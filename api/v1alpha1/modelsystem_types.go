package v1alpha1

import (
	"context"

	"github.com/go-logr/logr"

	"github.com/matsim-io/simnorm/internal/logging"
	"github.com/matsim-io/simnorm/pkg/formula"
)

// ChemicalFormula holds the canonical formulas of a cell composition. Empty strings are
// undefined.
type ChemicalFormula struct {
	formula.Formula
}

// ResolveFromCell derives every formula from the composition of cell. All formulas are
// undefined when the cell has no valid atoms snapshot.
func (f *ChemicalFormula) ResolveFromCell(cell *AtomicCell, logger logr.Logger) {
	f.Formula = formula.Formula{}
	if cell == nil {
		return
	}
	atoms := cell.ToAtoms(logger)
	if atoms == nil {
		logger.V(logging.DEBUG).Info("Chemical formula undefined, cell has no atoms")
		return
	}
	if built, ok := formula.Build(atoms.Composition()); ok {
		f.Formula = built
	}
}

// ModelSystem is a system modelled by a simulation. Systems form a tree through
// ModelSystem.
type ModelSystem struct {
	Name string `json:"name,omitempty"`

	// Type is a free-form classification such as bulk, surface or molecule.
	Type string `json:"type,omitempty"`

	// IsRepresentative marks the system that represents the whole simulation.
	IsRepresentative bool `json:"is_representative,omitempty"`

	// BranchLabel names the branch of the system tree.
	BranchLabel string `json:"branch_label,omitempty"`

	// BranchDepth is 0 for top-level systems and the parent depth plus 1 otherwise.
	BranchDepth int `json:"branch_depth"`

	// AtomicCell lists the cells of the system. The first is used for the formula.
	AtomicCell []*AtomicCell `json:"cell,omitempty"`

	ChemicalFormula *ChemicalFormula `json:"chemical_formula,omitempty"`

	// ModelSystem lists the child systems.
	ModelSystem []*ModelSystem `json:"model_system,omitempty"`
}

// SetBranchDepth assigns depth to m and depth+1, depth+2, ... to its descendants.
func (m *ModelSystem) SetBranchDepth(depth int) {
	m.BranchDepth = depth
	for _, child := range m.ModelSystem {
		if child != nil {
			child.SetBranchDepth(depth + 1)
		}
	}
}

// Walk calls fn for m and every descendant, parents first.
func (m *ModelSystem) Walk(fn func(*ModelSystem)) {
	fn(m)
	for _, child := range m.ModelSystem {
		if child != nil {
			child.Walk(fn)
		}
	}
}

// NormalizeFormula derives the chemical formula from the first cell.
func (m *ModelSystem) NormalizeFormula(logger logr.Logger) {
	if len(m.AtomicCell) == 0 {
		return
	}
	if m.ChemicalFormula == nil {
		m.ChemicalFormula = &ChemicalFormula{}
	}
	m.ChemicalFormula.ResolveFromCell(m.AtomicCell[0], logger)
}

// Normalize normalizes the cells, the formula and every child system.
func (m *ModelSystem) Normalize(ctx context.Context, logger logr.Logger) {
	logger = logger.WithValues("modelSystem", m.Name, "branchDepth", m.BranchDepth)
	for _, c := range m.AtomicCell {
		if c != nil {
			c.Normalize(ctx, logger)
		}
	}
	m.NormalizeFormula(logger)
	for _, child := range m.ModelSystem {
		if child != nil {
			child.Normalize(ctx, logger)
		}
	}
}
