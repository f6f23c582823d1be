package v1alpha1

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/go-logr/logr"
	"k8s.io/utils/ptr"

	"github.com/matsim-io/simnorm/pkg/quantum"
)

var _ = Describe("OrbitalsState", func() {
	Context("Normalize", func() {
		It("should derive symbols and degeneracy from numbers", func() {
			o := &OrbitalsState{N: ptr.To(2), L: ptr.To(1), Ml: ptr.To(-1)}
			o.Normalize(ctx, logr.Discard())
			Expect(o.LSymbol).To(Equal("p"))
			Expect(o.MlSymbol).To(Equal("x"))
			Expect(o.MsSymbol).To(BeEmpty())
			Expect(o.Degeneracy).To(HaveValue(Equal(2)))
		})

		It("should leave the ml symbol undefined outside the p shell", func() {
			o := &OrbitalsState{N: ptr.To(3), L: ptr.To(2), Ml: ptr.To(-2)}
			o.Normalize(ctx, logr.Discard())
			Expect(o.LSymbol).To(Equal("d"))
			Expect(o.MlSymbol).To(BeEmpty())
			Expect(o.Degeneracy).To(HaveValue(Equal(2)))
		})

		It("should derive numbers from symbols", func() {
			o := &OrbitalsState{LSymbol: "p", MlSymbol: "z", MsSymbol: "up"}
			o.Normalize(ctx, logr.Discard())
			Expect(o.L).To(HaveValue(Equal(1)))
			Expect(o.Ml).To(HaveValue(Equal(0)))
			Expect(o.Ms).To(HaveValue(Equal(0.5)))
			Expect(o.Degeneracy).To(HaveValue(Equal(1)))
		})

		It("should let the number win over a disagreeing symbol", func() {
			c := &capture{}
			o := &OrbitalsState{L: ptr.To(2), LSymbol: "p"}
			o.Normalize(ctx, c.logger())
			Expect(o.LSymbol).To(Equal("d"))
			Expect(c.contains("inconsistent")).To(BeTrue())
		})

		It("should log out-of-range numbers without rejecting them", func() {
			c := &capture{}
			o := &OrbitalsState{N: ptr.To(2), L: ptr.To(4)}
			o.Normalize(ctx, c.logger())
			Expect(o.L).To(HaveValue(Equal(4)))
			Expect(o.LSymbol).To(BeEmpty())
			Expect(o.Degeneracy).To(HaveValue(Equal(18)))
			Expect(c.contains("out of range")).To(BeTrue())
		})

		It("should leave degeneracy undefined without l", func() {
			o := &OrbitalsState{N: ptr.To(1)}
			o.Normalize(ctx, logr.Discard())
			Expect(o.Degeneracy).To(BeNil())
		})

		It("should honour the configured degeneracy calculator", func() {
			o := &OrbitalsState{L: ptr.To(1), Ml: ptr.To(-1), J: []float64{0.5, 1.5}}
			o.Normalize(WithResolvers(ctx, Resolvers{Degeneracy: quantum.BaselineOnly}), logr.Discard())
			Expect(o.Degeneracy).To(HaveValue(Equal(2)))

			o.Normalize(ctx, logr.Discard())
			Expect(o.Degeneracy).To(HaveValue(Equal(6)))
		})
	})

	Context("ResolveNumberAndSymbol", func() {
		It("should resolve both sides", func() {
			o := &OrbitalsState{L: ptr.To(3)}
			Expect(o.ResolveNumberAndSymbol(quantum.NameL, quantum.KindSymbol)).To(Equal("f"))
			Expect(o.ResolveNumberAndSymbol(quantum.NameL, quantum.KindNumber)).To(Equal(3))
			Expect(o.ResolveNumberAndSymbol(quantum.Name("no_attribute"), quantum.KindNumber)).To(BeNil())
		})
	})
})
