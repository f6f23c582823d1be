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

// Package hubbard derives on-site Hubbard interaction parameters.
package hubbard

import (
	"fmt"
	"math"

	"github.com/matsim-io/simnorm/pkg/diagnostics"
	"github.com/matsim-io/simnorm/pkg/units"
)

// SlaterIntegralCount is the number of Slater integrals (F0, F2, F4) a parametrization consumes.
const SlaterIntegralCount = 3

// Interactions is the (U, U', J) triple derived from Slater integrals.
type Interactions struct {
	// U is the intra-orbital Coulomb interaction.
	U units.Energy
	// UPrime is the inter-orbital Coulomb interaction.
	UPrime units.Energy
	// J is the Hund's coupling.
	J units.Energy
}

// Parametrization maps the Slater integrals F0, F2, F4 of a shell to (U, U', J).
type Parametrization interface {
	Name() string
	Interactions(f0, f2, f4 units.Energy) Interactions
}

// SlaterCondon is the default parametrization. With the prefactor c = (2/7)^2 / 4π:
//
//	U  = c (F0 + 5 F2 + 9 F4)
//	U' = c (F0 - 5 F2 + 3/2 F4)
//	J  = c (5 F2 + 15/4 F4)
type SlaterCondon struct{}

func (SlaterCondon) Name() string { return "slater-condon" }

func (SlaterCondon) Interactions(f0, f2, f4 units.Energy) Interactions {
	const c = (2.0 / 7.0) * (2.0 / 7.0) / (4 * math.Pi)
	return Interactions{
		U:      c * (f0 + 5*f2 + 9*f4),
		UPrime: c * (f0 - 5*f2 + 1.5*f4),
		J:      c * (5*f2 + 3.75*f4),
	}
}

// DShell is the d-shell parametrization: U = F0, J = (F2 + F4) / 14 and the
// rotationally invariant Kanamori relation U' = U - 2J.
type DShell struct{}

func (DShell) Name() string { return "d-shell" }

func (DShell) Interactions(f0, f2, f4 units.Energy) Interactions {
	j := (f2 + f4) / 14
	return Interactions{U: f0, UPrime: f0 - 2*j, J: j}
}

var parametrizations = map[string]Parametrization{
	SlaterCondon{}.Name(): SlaterCondon{},
	DShell{}.Name():       DShell{},
}

// Lookup returns a registered parametrization by name. The empty name selects SlaterCondon.
func Lookup(name string) (Parametrization, error) {
	if name == "" {
		return SlaterCondon{}, nil
	}
	p, ok := parametrizations[name]
	if !ok {
		return nil, fmt.Errorf("unknown Hubbard parametrization %q", name)
	}
	return p, nil
}

// FromSlater derives (U, U', J) from exactly three Slater integrals. Any other count is
// an arity mismatch and yields false along with an error wrapping ErrArityMismatch;
// absent integrals yield false with a nil error. A nil p selects SlaterCondon.
func FromSlater(integrals []units.Energy, p Parametrization) (Interactions, bool, error) {
	if len(integrals) == 0 {
		return Interactions{}, false, nil
	}
	if len(integrals) != SlaterIntegralCount {
		return Interactions{}, false, fmt.Errorf("%w: got %d Slater integrals, want %d",
			diagnostics.ErrArityMismatch, len(integrals), SlaterIntegralCount)
	}
	if p == nil {
		p = SlaterCondon{}
	}
	return p.Interactions(integrals[0], integrals[1], integrals[2]), true, nil
}

// Effective returns U - J when both operands are present.
func Effective(u, j *units.Energy) *units.Energy {
	if u == nil || j == nil {
		return nil
	}
	eff := *u - *j
	return &eff
}
