/*
Copyright 2025 The simnorm Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package geometry derives cell metrics of a periodic atomic cell and converts the cell
// into a plain atoms snapshot for downstream geometry code.
package geometry

import (
	"fmt"
	"math"

	"github.com/go-logr/logr"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matsim-io/simnorm/internal/logging"
	"github.com/matsim-io/simnorm/pkg/diagnostics"
	"github.com/matsim-io/simnorm/pkg/units"
)

// Input is the populated geometry of a cell.
type Input struct {
	// Symbols holds one chemical symbol per atom.
	Symbols []string
	// Numbers optionally holds one atomic number per atom.
	Numbers []int
	// Positions holds one position per atom.
	Positions units.Vectors
	// AtomCount is the number of atom states owned by the cell.
	AtomCount int
	// Lattice holds the lattice vectors a, b, c as rows. Empty means no lattice.
	Lattice units.Vectors
	// PBC holds the periodic boundary conditions along a, b, c.
	PBC [3]bool
}

// Space holds the derived metrics of a cell.
type Space struct {
	LengthA units.Length
	LengthB units.Length
	LengthC units.Length
	// AngleBC is the angle between b and c; AngleAC and AngleAB follow the same naming.
	AngleBC units.Angle
	AngleAC units.Angle
	AngleAB units.Angle
	Volume  units.Volume
}

// right is the angle reported between vectors of zero length.
const right = 90 * units.Degree

// Valid reports whether the atom identities, positions and atom states agree in count
// and are non-empty. Derivations are skipped entirely when they do not.
func (in Input) Valid() error {
	n := len(in.Symbols)
	if n == 0 || in.Positions.Empty() {
		return fmt.Errorf("%w: cell has %d symbols and %d positions", diagnostics.ErrArityMismatch, n, in.Positions.Len())
	}
	if in.Positions.Len() != n || in.AtomCount != n {
		return fmt.Errorf("%w: cell has %d symbols, %d positions and %d atom states",
			diagnostics.ErrArityMismatch, n, in.Positions.Len(), in.AtomCount)
	}
	if len(in.Numbers) != 0 && len(in.Numbers) != n {
		return fmt.Errorf("%w: cell has %d symbols and %d atomic numbers", diagnostics.ErrArityMismatch, n, len(in.Numbers))
	}
	return nil
}

// lattice returns the lattice rows in metres, or false when no usable lattice is set.
func (in Input) lattice(logger logr.Logger) ([3]r3.Vec, bool) {
	var rows [3]r3.Vec
	if in.Lattice.Empty() {
		return rows, false
	}
	if in.Lattice.Len() != 3 {
		logger.Error(fmt.Errorf("%w: lattice has %d vectors, want 3", diagnostics.ErrArityMismatch, in.Lattice.Len()),
			"Ignoring lattice vectors")
		return rows, false
	}
	vecs, err := in.Lattice.Vecs()
	if err != nil {
		logger.Error(err, "Ignoring lattice vectors")
		return rows, false
	}
	copy(rows[:], vecs)
	return rows, true
}

// Analyze derives lengths, angles and volume of the cell. It returns false, leaving every
// metric undefined, when the validity gate fails. A valid cell without lattice vectors
// uses the zero lattice: zero lengths, right angles and zero volume.
func Analyze(in Input, logger logr.Logger) (Space, bool) {
	if err := in.Valid(); err != nil {
		logger.V(logging.DEBUG).Info("Skipping cell geometry", "reason", err.Error())
		return Space{}, false
	}
	rows, ok := in.lattice(logger)
	if !ok {
		logger.V(logging.DEBUG).Info("No lattice vectors, using the zero lattice")
	}
	a, b, c := rows[0], rows[1], rows[2]
	return Space{
		LengthA: units.Length(r3.Norm(a)),
		LengthB: units.Length(r3.Norm(b)),
		LengthC: units.Length(r3.Norm(c)),
		AngleBC: angle(b, c),
		AngleAC: angle(a, c),
		AngleAB: angle(a, b),
		Volume:  units.Volume(math.Abs(r3.Dot(a, r3.Cross(b, c)))),
	}, true
}

func angle(p, q r3.Vec) units.Angle {
	if r3.Norm(p) == 0 || r3.Norm(q) == 0 {
		return right
	}
	// Clamp rounding overshoot before arccos.
	cos := math.Max(-1, math.Min(1, r3.Cos(p, q)))
	return units.Angle(math.Acos(cos))
}
