package v1alpha1

import (
	"context"
	"math"

	"github.com/go-logr/logr"

	"github.com/matsim-io/simnorm/internal/logging"
	"github.com/matsim-io/simnorm/pkg/hubbard"
	"github.com/matsim-io/simnorm/pkg/units"
)

// HubbardInteractions holds the on-site interactions of an atom in a Hubbard model.
type HubbardInteractions struct {
	// SlaterIntegrals are F0, F2 and F4.
	SlaterIntegrals []units.Energy `json:"slater_integrals,omitempty"`

	// UInteraction is the intra-orbital Coulomb interaction U.
	UInteraction *units.Energy `json:"u_interaction,omitempty"`

	// UInterorbitalInteraction is the inter-orbital Coulomb interaction U'.
	UInterorbitalInteraction *units.Energy `json:"u_interorbital_interaction,omitempty"`

	// JHundsCoupling is the Hund's coupling J.
	JHundsCoupling *units.Energy `json:"j_hunds_coupling,omitempty"`

	// JLocalExchangeInteraction is the local exchange interaction used for U_eff.
	JLocalExchangeInteraction *units.Energy `json:"j_local_exchange_interaction,omitempty"`

	// UEffective is U - J_local.
	UEffective *units.Energy `json:"u_effective,omitempty"`
}

// ResolveUInteractions derives (U, U', J) from the Slater integrals. All three are nil
// when the integrals are absent or not exactly three.
func (h *HubbardInteractions) ResolveUInteractions(ctx context.Context, logger logr.Logger) (u, uPrime, j *units.Energy) {
	res, ok, err := hubbard.FromSlater(h.SlaterIntegrals, ResolversFrom(ctx).Slater)
	if err != nil {
		logger.Error(err, "Cannot derive Hubbard interactions from Slater integrals")
	}
	if !ok {
		return nil, nil, nil
	}
	return &res.U, &res.UPrime, &res.J
}

// ResolveUEffective returns U - J_local, or nil when either is unset.
func (h *HubbardInteractions) ResolveUEffective() *units.Energy {
	return hubbard.Effective(h.UInteraction, h.JLocalExchangeInteraction)
}

// Normalize derives (U, U', J) from the Slater integrals when none of them is supplied
// and computes U_eff. Slater integrals are cleared once directly supplied (U, U', J)
// disagree with them.
func (h *HubbardInteractions) Normalize(ctx context.Context, logger logr.Logger) {
	if h.UInteraction == nil && h.UInterorbitalInteraction == nil && h.JHundsCoupling == nil {
		h.UInteraction, h.UInterorbitalInteraction, h.JHundsCoupling = h.ResolveUInteractions(ctx, logger)
	} else if len(h.SlaterIntegrals) > 0 && h.supersedesSlater(ctx) {
		logger.V(logging.DEBUG).Info("Directly supplied interactions replace Slater integrals")
		h.SlaterIntegrals = nil
	}

	if eff := h.ResolveUEffective(); eff != nil {
		h.UEffective = eff
	}
}

// supersedesSlater reports whether any supplied interaction differs from what the
// Slater integrals give.
func (h *HubbardInteractions) supersedesSlater(ctx context.Context) bool {
	r := ResolversFrom(ctx)
	res, ok, _ := hubbard.FromSlater(h.SlaterIntegrals, r.Slater)
	if !ok {
		return true
	}
	for _, pair := range [][2]*units.Energy{
		{h.UInteraction, &res.U},
		{h.UInterorbitalInteraction, &res.UPrime},
		{h.JHundsCoupling, &res.J},
	} {
		if pair[0] != nil && !closeEnergy(*pair[0], *pair[1], r.Tolerance) {
			return true
		}
	}
	return false
}

func closeEnergy(a, b units.Energy, tol float64) bool {
	scale := math.Max(math.Abs(float64(a)), math.Abs(float64(b)))
	return math.Abs(float64(a-b)) <= tol*scale
}
