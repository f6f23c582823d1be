package v1alpha1

import (
	"context"

	"github.com/go-logr/logr"

	"github.com/matsim-io/simnorm/pkg/corehole"
)

// CoreHole describes a core-hole excitation out of one orbital of its atom.
type CoreHole struct {
	// OrbitalRef is the orbital the electrons are excited from. It does not own the
	// orbital; the atom state does.
	OrbitalRef *OrbitalsState `json:"-"`

	// OrbitalRefIndex points into the orbitals of the owning atom state and is used to
	// link OrbitalRef when documents are loaded.
	OrbitalRefIndex *int `json:"orbital_ref,omitempty"`

	// NExcitedElectrons is the number of excited electrons, nominally between 0 and the
	// orbital degeneracy.
	NExcitedElectrons *float64 `json:"n_excited_electrons,omitempty"`

	// DSCFState is one of none, initial or final.
	DSCFState string `json:"dscf_state,omitempty"`
}

func (c *CoreHole) dscfState(logger logr.Logger) corehole.DSCFState {
	state, err := corehole.ParseDSCFState(c.DSCFState)
	if err != nil {
		logger.Error(err, "Unknown dscf state, treating it as none")
	}
	return state
}

// ResolveOccupation returns the occupation of the referenced orbital after excitation and
// records it, together with the orbital degeneracy, on the orbital. It returns nil when
// the occupation is undefined.
func (c *CoreHole) ResolveOccupation(ctx context.Context, logger logr.Logger) *float64 {
	return c.resolve(ctx, logger).Occupation
}

func (c *CoreHole) resolve(ctx context.Context, logger logr.Logger) corehole.Result {
	in := corehole.Input{State: c.dscfState(logger), NExcitedElectrons: c.NExcitedElectrons}
	if c.OrbitalRef == nil {
		return corehole.Resolve(in, nil, logger)
	}
	c.OrbitalRef.mu.Lock()
	defer c.OrbitalRef.mu.Unlock()
	return corehole.Resolve(in, lockedOrbital{o: c.OrbitalRef, calc: ResolversFrom(ctx).Degeneracy}, logger)
}

// Normalize derives the excited-electron count and writes the occupation onto the
// referenced orbital.
func (c *CoreHole) Normalize(ctx context.Context, logger logr.Logger) {
	res := c.resolve(ctx, logger)
	c.NExcitedElectrons = res.NExcitedElectrons
}
