package geometry

import (
	"github.com/go-logr/logr"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matsim-io/simnorm/internal/logging"
	"github.com/matsim-io/simnorm/pkg/formula"
)

// Atoms is a structural snapshot of a cell handed to downstream geometry code.
// Positions and cell are in metres.
type Atoms struct {
	Symbols   []string
	Numbers   []int
	Positions []r3.Vec
	// Cell has the lattice vectors as rows; nil for a cell without lattice.
	Cell *r3.Mat
	PBC  [3]bool
}

// ToAtoms converts the cell into an Atoms snapshot. It returns nil under the same
// validity gate as Analyze, but an absent lattice yields a nil Cell instead of the zero
// lattice.
func ToAtoms(in Input, logger logr.Logger) *Atoms {
	if err := in.Valid(); err != nil {
		logger.V(logging.DEBUG).Info("Cannot build atoms snapshot", "reason", err.Error())
		return nil
	}
	positions, err := in.Positions.Vecs()
	if err != nil {
		logger.Error(err, "Cannot build atoms snapshot")
		return nil
	}
	atoms := &Atoms{
		Symbols:   append([]string(nil), in.Symbols...),
		Numbers:   append([]int(nil), in.Numbers...),
		Positions: positions,
		PBC:       in.PBC,
	}
	if rows, ok := in.lattice(logger); ok {
		atoms.Cell = r3.NewMat([]float64{
			rows[0].X, rows[0].Y, rows[0].Z,
			rows[1].X, rows[1].Y, rows[1].Z,
			rows[2].X, rows[2].Y, rows[2].Z,
		})
	}
	return atoms
}

// Len returns the number of atoms.
func (a *Atoms) Len() int { return len(a.Symbols) }

// Composition counts the atoms per element in encounter order.
func (a *Atoms) Composition() formula.Composition {
	return formula.NewComposition(a.Symbols)
}

// Periodic reports whether any direction is periodic.
func (a *Atoms) Periodic() bool {
	return a.PBC[0] || a.PBC[1] || a.PBC[2]
}
