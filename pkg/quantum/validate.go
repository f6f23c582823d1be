package quantum

import (
	"fmt"
	"math"

	"github.com/matsim-io/simnorm/pkg/diagnostics"
)

// Check validates the populated numbers of o against the physical ranges: n >= 1,
// 0 <= l <= n-1, |ml| <= l, ms = ±1/2, j = l ± 1/2 and mj a half-integer within ±max(j).
// The numbers are never rejected; each problem is returned for the caller to log.
func Check(o Orbital) []error {
	var errs []error
	if o.N != nil && *o.N < 1 {
		errs = append(errs, fmt.Errorf("%w: n_quantum_number=%d must be >= 1", diagnostics.ErrOutOfRange, *o.N))
	}
	if o.L != nil {
		l := *o.L
		switch {
		case l < 0:
			errs = append(errs, fmt.Errorf("%w: l_quantum_number=%d must be >= 0", diagnostics.ErrOutOfRange, l))
		case o.N != nil && *o.N >= 1 && l > *o.N-1:
			errs = append(errs, fmt.Errorf("%w: l_quantum_number=%d must be <= n-1=%d", diagnostics.ErrOutOfRange, l, *o.N-1))
		}
	}
	if o.Ml != nil {
		if o.L == nil {
			errs = append(errs, fmt.Errorf("%w: ml_quantum_number requires l_quantum_number", diagnostics.ErrMissingDependency))
		} else if abs(*o.Ml) > *o.L {
			errs = append(errs, fmt.Errorf("%w: ml_quantum_number=%d must be within -l..l (l=%d)", diagnostics.ErrOutOfRange, *o.Ml, *o.L))
		}
	}
	if o.Ms != nil {
		if _, ok := MsSymbol(*o.Ms); !ok {
			errs = append(errs, fmt.Errorf("%w: ms_quantum_number=%g must be -0.5 or 0.5", diagnostics.ErrOutOfRange, *o.Ms))
		}
	}
	jMax := math.Inf(-1)
	for _, j := range o.J {
		jMax = math.Max(jMax, j)
		if o.L == nil {
			continue
		}
		l := float64(*o.L)
		if (!near(j, l-0.5) && !near(j, l+0.5)) || j < 0.5-halfIntegerTolerance {
			errs = append(errs, fmt.Errorf("%w: j_quantum_number=%g must be l-0.5 or l+0.5 (l=%d)", diagnostics.ErrOutOfRange, j, *o.L))
		}
	}
	if len(o.Mj) > 0 && len(o.J) == 0 {
		errs = append(errs, fmt.Errorf("%w: mj_quantum_number requires j_quantum_number", diagnostics.ErrMissingDependency))
	}
	for _, mj := range o.Mj {
		if !isHalfInteger(mj) || (len(o.J) > 0 && math.Abs(mj) > jMax+halfIntegerTolerance) {
			errs = append(errs, fmt.Errorf("%w: mj_quantum_number=%g must be a half-integer within -j..j", diagnostics.ErrOutOfRange, mj))
		}
	}
	return errs
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func near(a, b float64) bool {
	return math.Abs(a-b) < halfIntegerTolerance
}

func isHalfInteger(v float64) bool {
	twice := 2 * v
	return near(twice, math.Round(twice)) && int(math.Round(twice))%2 != 0
}
