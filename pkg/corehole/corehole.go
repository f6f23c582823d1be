// Package corehole resolves the excited-electron occupation of a core-hole excitation.
package corehole

import (
	"fmt"
	"strings"

	"github.com/go-logr/logr"
	"k8s.io/utils/ptr"

	"github.com/matsim-io/simnorm/internal/logging"
	"github.com/matsim-io/simnorm/pkg/diagnostics"
)

// DSCFState is the delta-SCF convention of a core-hole calculation.
type DSCFState string

const (
	// DSCFNone means no delta-SCF convention applies.
	DSCFNone DSCFState = "none"
	// DSCFInitial is the unrelaxed initial-state convention. One electron is always excited.
	DSCFInitial DSCFState = "initial"
	// DSCFFinal is the relaxed final-state convention.
	DSCFFinal DSCFState = "final"
)

// ParseDSCFState maps a document token to a DSCFState. The empty token is DSCFNone.
func ParseDSCFState(token string) (DSCFState, error) {
	switch s := DSCFState(strings.ToLower(strings.TrimSpace(token))); s {
	case "", DSCFNone:
		return DSCFNone, nil
	case DSCFInitial, DSCFFinal:
		return s, nil
	}
	return DSCFNone, fmt.Errorf("%w: dscf state %q", diagnostics.ErrOutOfRange, token)
}

// OrbitalHandle is the mutable view of the orbital a core hole is excited from.
// Resolve reads the orbital degeneracy through it and, when an occupation can be
// computed, writes the degeneracy and the occupation back.
type OrbitalHandle interface {
	// ResolveDegeneracy returns the orbital degeneracy, or nil when it is undefined.
	ResolveDegeneracy() *int
	// RecordOccupation stores the degeneracy and occupation computed for the orbital.
	RecordOccupation(degeneracy int, occupation float64)
}

// Input is the populated state of a core hole.
type Input struct {
	State             DSCFState
	NExcitedElectrons *float64
}

// Result holds the derived core-hole state.
type Result struct {
	NExcitedElectrons *float64
	// Occupation of the referenced orbital after excitation; nil when undefined.
	Occupation *float64
}

// Resolve derives the excited-electron count and orbital occupation. orbital may be nil.
//
// With DSCFInitial the excited-electron count is forced to 1 and the orbital is not
// touched. Otherwise the supplied count is kept as is and, when the orbital degeneracy
// resolves, the occupation degeneracy - n is recorded on the orbital.
func Resolve(in Input, orbital OrbitalHandle, logger logr.Logger) Result {
	if in.State == DSCFInitial {
		if in.NExcitedElectrons != nil && *in.NExcitedElectrons != 1 {
			logger.V(logging.DEBUG).Info("Initial-state core hole excites exactly one electron, overriding input",
				"nExcitedElectrons", *in.NExcitedElectrons)
		}
		return Result{NExcitedElectrons: ptr.To(1.0)}
	}

	res := Result{NExcitedElectrons: in.NExcitedElectrons}
	if in.NExcitedElectrons != nil && *in.NExcitedElectrons < 0 {
		logger.Error(fmt.Errorf("%w: n_excited_electrons %g is negative", diagnostics.ErrOutOfRange, *in.NExcitedElectrons),
			"Accepting unphysical excited-electron count")
	}
	if orbital == nil {
		logger.V(logging.DEBUG).Info("Core hole has no orbital reference, occupation undefined")
		return res
	}
	if in.NExcitedElectrons == nil {
		return res
	}
	degeneracy := orbital.ResolveDegeneracy()
	if degeneracy == nil {
		logger.V(logging.DEBUG).Info("Referenced orbital degeneracy undefined, occupation undefined")
		return res
	}
	occupation := float64(*degeneracy) - *in.NExcitedElectrons
	orbital.RecordOccupation(*degeneracy, occupation)
	res.Occupation = ptr.To(occupation)
	return res
}
