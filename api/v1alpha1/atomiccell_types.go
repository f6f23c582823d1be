package v1alpha1

import (
	"context"

	"github.com/go-logr/logr"
	"k8s.io/utils/ptr"

	"github.com/matsim-io/simnorm/internal/logging"
	"github.com/matsim-io/simnorm/pkg/geometry"
	"github.com/matsim-io/simnorm/pkg/units"
)

// CellType classifies an atomic cell.
type CellType string

const (
	// CellOriginal is the cell as reported by the program.
	CellOriginal CellType = "original"
	// CellPrimitive is a primitive cell derived from the original one.
	CellPrimitive CellType = "primitive"
	// CellConventional is a conventional cell derived from the original one.
	CellConventional CellType = "conventional"
)

// GeometricSpace holds the metrics derived from the lattice of a cell.
type GeometricSpace struct {
	LengthVectorA *units.Length `json:"length_vector_a,omitempty"`
	LengthVectorB *units.Length `json:"length_vector_b,omitempty"`
	LengthVectorC *units.Length `json:"length_vector_c,omitempty"`

	// AngleVectorsBC is the angle between b and c.
	AngleVectorsBC *units.Angle `json:"angle_vectors_b_c,omitempty"`
	// AngleVectorsAC is the angle between a and c.
	AngleVectorsAC *units.Angle `json:"angle_vectors_a_c,omitempty"`
	// AngleVectorsAB is the angle between a and b.
	AngleVectorsAB *units.Angle `json:"angle_vectors_a_b,omitempty"`

	Volume *units.Volume `json:"volume,omitempty"`
}

func (g *GeometricSpace) set(s geometry.Space) {
	g.LengthVectorA = ptr.To(s.LengthA)
	g.LengthVectorB = ptr.To(s.LengthB)
	g.LengthVectorC = ptr.To(s.LengthC)
	g.AngleVectorsBC = ptr.To(s.AngleBC)
	g.AngleVectorsAC = ptr.To(s.AngleAC)
	g.AngleVectorsAB = ptr.To(s.AngleAB)
	g.Volume = ptr.To(s.Volume)
}

// Defined reports whether the metrics have been derived.
func (g *GeometricSpace) Defined() bool {
	return g.Volume != nil
}

// AtomicCell is a periodic cell of atoms.
type AtomicCell struct {
	GeometricSpace

	// Name optionally labels the cell.
	Name string `json:"name,omitempty"`

	// Type is one of original, primitive or conventional.
	Type CellType `json:"type,omitempty"`

	// LatticeVectors holds a, b and c as rows.
	LatticeVectors *units.Vectors `json:"lattice_vectors,omitempty"`

	// Positions holds one position per atom state.
	Positions *units.Vectors `json:"positions,omitempty"`

	// PeriodicBoundaryConditions along a, b and c.
	PeriodicBoundaryConditions []bool `json:"periodic_boundary_conditions,omitempty"`

	// AtomsState lists the atoms, one per position.
	AtomsState []*AtomsState `json:"atoms_state,omitempty"`
}

// ChemicalSymbols returns the chemical symbols of the atom states that have one, in
// order.
func (c *AtomicCell) ChemicalSymbols() []string {
	out := make([]string, 0, len(c.AtomsState))
	for _, a := range c.AtomsState {
		if a != nil && a.ChemicalSymbol != "" {
			out = append(out, a.ChemicalSymbol)
		}
	}
	return out
}

// AtomicNumbers returns the atomic numbers of the atom states that have one, in order.
func (c *AtomicCell) AtomicNumbers() []int {
	out := make([]int, 0, len(c.AtomsState))
	for _, a := range c.AtomsState {
		if a != nil && a.AtomicNumber != 0 {
			out = append(out, a.AtomicNumber)
		}
	}
	return out
}

func (c *AtomicCell) geometryInput() geometry.Input {
	in := geometry.Input{
		Symbols:   c.ChemicalSymbols(),
		Numbers:   c.AtomicNumbers(),
		AtomCount: len(c.AtomsState),
	}
	if len(in.Numbers) != len(in.Symbols) {
		in.Numbers = nil
	}
	if c.Positions != nil {
		in.Positions = *c.Positions
	}
	if c.LatticeVectors != nil {
		in.Lattice = *c.LatticeVectors
	}
	copy(in.PBC[:], c.PeriodicBoundaryConditions)
	return in
}

// ToAtoms returns a structural snapshot of the cell, or nil when the atom identities,
// positions and atom states do not agree.
func (c *AtomicCell) ToAtoms(logger logr.Logger) *geometry.Atoms {
	return geometry.ToAtoms(c.geometryInput(), logger)
}

// NormalizeGeometry derives the GeometricSpace metrics. They are cleared when the atom
// identities, positions and atom states do not agree.
func (c *AtomicCell) NormalizeGeometry(logger logr.Logger) {
	if n := len(c.PeriodicBoundaryConditions); n != 0 && n != 3 {
		logger.V(logging.DEBUG).Info("Periodic boundary conditions should have 3 entries", "count", n)
	}
	space, ok := geometry.Analyze(c.geometryInput(), logger)
	if !ok {
		c.GeometricSpace = GeometricSpace{}
		return
	}
	c.set(space)
}

// Normalize normalizes every atom state and then the cell geometry.
func (c *AtomicCell) Normalize(ctx context.Context, logger logr.Logger) {
	for _, a := range c.AtomsState {
		if a != nil {
			a.Normalize(ctx, logger)
		}
	}
	c.NormalizeGeometry(logger)
}
