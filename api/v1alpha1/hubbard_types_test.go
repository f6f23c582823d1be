package v1alpha1

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/go-logr/logr"

	"github.com/matsim-io/simnorm/pkg/hubbard"
	"github.com/matsim-io/simnorm/pkg/quantum"
	"github.com/matsim-io/simnorm/pkg/units"
)

var _ = Describe("HubbardInteractions", func() {
	DescribeTable("ResolveUEffective",
		func(u, j *units.Energy, want *float64) {
			h := &HubbardInteractions{UInteraction: u, JLocalExchangeInteraction: j}
			got := h.ResolveUEffective()
			if want == nil {
				Expect(got).To(BeNil())
				return
			}
			Expect(got).NotTo(BeNil())
			Expect(inEV(got)).To(BeNumerically("~", *want, 1e-12))
		},
		Entry("positive", eV(3), eV(1), ptrFloat(2)),
		Entry("negative", eV(-3), eV(1), ptrFloat(-4)),
		Entry("j missing", eV(3), nil, nil),
		Entry("u missing", nil, eV(1), nil),
	)

	Context("ResolveUInteractions", func() {
		It("should derive U, U' and J from three Slater integrals", func() {
			h := &HubbardInteractions{SlaterIntegrals: []units.Energy{*eV(3), *eV(2), *eV(1)}}
			u, up, j := h.ResolveUInteractions(ctx, logr.Discard())
			Expect(inEV(u)).To(BeNumerically("~", 0.1429146, 1e-7))
			Expect(inEV(up)).To(BeNumerically("~", -0.0357286, 1e-7))
			Expect(inEV(j)).To(BeNumerically("~", 0.0893216, 1e-7))
		})

		It("should use the configured parametrization", func() {
			dshell := WithResolvers(ctx, Resolvers{Degeneracy: quantum.Default, Slater: hubbard.DShell{}})
			h := &HubbardInteractions{SlaterIntegrals: []units.Energy{*eV(8), *eV(7), *eV(7)}}
			u, up, j := h.ResolveUInteractions(dshell, logr.Discard())
			Expect(inEV(u)).To(BeNumerically("~", 8, 1e-12))
			Expect(inEV(up)).To(BeNumerically("~", 6, 1e-12))
			Expect(inEV(j)).To(BeNumerically("~", 1, 1e-12))
		})

		It("should leave everything undefined for a wrong number of integrals", func() {
			c := &capture{}
			h := &HubbardInteractions{SlaterIntegrals: []units.Energy{*eV(3), *eV(2), *eV(1), *eV(0.5)}}
			u, up, j := h.ResolveUInteractions(ctx, c.logger())
			Expect(u).To(BeNil())
			Expect(up).To(BeNil())
			Expect(j).To(BeNil())
			Expect(c.contains("arity mismatch")).To(BeTrue())
		})

		It("should leave everything undefined without integrals", func() {
			u, up, j := (&HubbardInteractions{}).ResolveUInteractions(ctx, logr.Discard())
			Expect(u).To(BeNil())
			Expect(up).To(BeNil())
			Expect(j).To(BeNil())
		})
	})

	Context("Normalize", func() {
		It("should prefer directly supplied values and clear the Slater integrals", func() {
			h := &HubbardInteractions{
				SlaterIntegrals:           []units.Energy{*eV(3), *eV(2), *eV(1)},
				UInteraction:              eV(3),
				JLocalExchangeInteraction: eV(2),
				UInterorbitalInteraction:  eV(1),
				JHundsCoupling:            eV(2),
			}
			h.Normalize(ctx, logr.Discard())
			Expect(inEV(h.UEffective)).To(BeNumerically("~", 1, 1e-12))
			Expect(inEV(h.UInteraction)).To(BeNumerically("~", 3, 1e-12))
			Expect(h.SlaterIntegrals).To(BeNil())
		})

		It("should derive from Slater integrals and stay stable on a second pass", func() {
			h := &HubbardInteractions{SlaterIntegrals: []units.Energy{*eV(3), *eV(2), *eV(1)}}
			h.Normalize(ctx, logr.Discard())
			Expect(inEV(h.UInteraction)).To(BeNumerically("~", 0.1429146, 1e-7))
			Expect(h.UEffective).To(BeNil())
			Expect(h.SlaterIntegrals).To(HaveLen(3))

			h.Normalize(ctx, logr.Discard())
			Expect(inEV(h.UInterorbitalInteraction)).To(BeNumerically("~", -0.0357286, 1e-7))
			Expect(h.SlaterIntegrals).To(HaveLen(3))
		})

		It("should keep the Slater integrals when only the local exchange is supplied", func() {
			h := &HubbardInteractions{
				SlaterIntegrals:           []units.Energy{*eV(3), *eV(2), *eV(1)},
				JLocalExchangeInteraction: eV(0.1),
			}
			h.Normalize(ctx, logr.Discard())
			Expect(h.SlaterIntegrals).To(HaveLen(3))
			Expect(inEV(h.UInteraction)).To(BeNumerically("~", 0.1429146, 1e-7))
			Expect(inEV(h.UEffective)).To(BeNumerically("~", 0.0429146, 1e-7))

			h.Normalize(ctx, logr.Discard())
			Expect(h.SlaterIntegrals).To(HaveLen(3))
		})

		It("should keep Slater integrals that agree with the supplied interactions", func() {
			h := &HubbardInteractions{SlaterIntegrals: []units.Energy{*eV(3), *eV(2), *eV(1)}}
			u, up, j := h.ResolveUInteractions(ctx, logr.Discard())
			h.UInteraction, h.UInterorbitalInteraction, h.JHundsCoupling = u, up, j
			h.Normalize(ctx, logr.Discard())
			Expect(h.SlaterIntegrals).To(HaveLen(3))
		})
	})
})

func ptrFloat(v float64) *float64 { return &v }
