package v1alpha1

import (
	"context"

	"github.com/matsim-io/simnorm/pkg/hubbard"
	"github.com/matsim-io/simnorm/pkg/quantum"
)

// DefaultTolerance is the relative tolerance used when comparing supplied and derived
// energies.
const DefaultTolerance = 1e-9

// Resolvers bundles the pluggable conventions used during normalization.
type Resolvers struct {
	// Degeneracy counts orbital states.
	Degeneracy quantum.Calculator
	// Slater maps Slater integrals to Hubbard interactions.
	Slater hubbard.Parametrization
	// Tolerance is the relative tolerance for energy comparisons.
	Tolerance float64
}

// DefaultResolvers returns the conventions used when none are configured.
func DefaultResolvers() Resolvers {
	return Resolvers{
		Degeneracy: quantum.Default,
		Slater:     hubbard.SlaterCondon{},
		Tolerance:  DefaultTolerance,
	}
}

type resolversKey struct{}

// WithResolvers returns a context carrying r for Normalize calls.
func WithResolvers(ctx context.Context, r Resolvers) context.Context {
	return context.WithValue(ctx, resolversKey{}, r)
}

// ResolversFrom returns the resolvers carried by ctx, or DefaultResolvers.
func ResolversFrom(ctx context.Context) Resolvers {
	if ctx != nil {
		if r, ok := ctx.Value(resolversKey{}).(Resolvers); ok {
			if r.Slater == nil {
				r.Slater = hubbard.SlaterCondon{}
			}
			if r.Tolerance <= 0 {
				r.Tolerance = DefaultTolerance
			}
			return r
		}
	}
	return DefaultResolvers()
}
