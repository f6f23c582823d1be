package v1alpha1

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/go-logr/logr"
	"k8s.io/utils/ptr"
)

var _ = Describe("CoreHole", func() {
	DescribeTable("Normalize",
		func(orbital *OrbitalsState, n float64, dscf string, wantN float64, wantDeg *int, wantOcc *float64) {
			ch := &CoreHole{OrbitalRef: orbital, NExcitedElectrons: ptr.To(n), DSCFState: dscf}
			ch.Normalize(ctx, logr.Discard())
			Expect(ch.NExcitedElectrons).To(HaveValue(Equal(wantN)))
			if orbital == nil {
				return
			}
			if wantDeg == nil {
				Expect(orbital.Degeneracy).To(BeNil())
			} else {
				Expect(orbital.Degeneracy).To(HaveValue(Equal(*wantDeg)))
			}
			if wantOcc == nil {
				Expect(orbital.Occupation).To(BeNil())
			} else {
				Expect(orbital.Occupation).To(HaveValue(BeNumerically("~", *wantOcc, 1e-12)))
			}
		},
		Entry("negative count accepted", &OrbitalsState{L: ptr.To(1)}, -0.5, "", -0.5, ptr.To(6), ptr.To(6.5)),
		Entry("p shell", &OrbitalsState{L: ptr.To(1)}, 0.5, "", 0.5, ptr.To(6), ptr.To(5.5)),
		Entry("single p orbital", &OrbitalsState{L: ptr.To(1), Ml: ptr.To(-1)}, 0.5, "none", 0.5, ptr.To(2), ptr.To(1.5)),
		Entry("initial state", &OrbitalsState{L: ptr.To(1)}, 0.5, "initial", 1.0, nil, nil),
		Entry("final state", &OrbitalsState{L: ptr.To(1)}, 0.5, "final", 0.5, ptr.To(6), ptr.To(5.5)),
		Entry("no orbital", nil, 0.5, "", 0.5, nil, nil),
	)

	It("should return the occupation", func() {
		ch := &CoreHole{OrbitalRef: &OrbitalsState{L: ptr.To(1)}, NExcitedElectrons: ptr.To(0.5)}
		Expect(ch.ResolveOccupation(ctx, logr.Discard())).To(HaveValue(BeNumerically("~", 5.5, 1e-12)))
		Expect((&CoreHole{NExcitedElectrons: ptr.To(0.5)}).ResolveOccupation(ctx, logr.Discard())).To(BeNil())
	})

	It("should treat an unknown dscf state as none", func() {
		c := &capture{}
		orbital := &OrbitalsState{L: ptr.To(0)}
		ch := &CoreHole{OrbitalRef: orbital, NExcitedElectrons: ptr.To(1.0), DSCFState: "relaxed"}
		ch.Normalize(ctx, c.logger())
		Expect(orbital.Occupation).To(HaveValue(BeNumerically("~", 1.0, 1e-12)))
		Expect(c.contains("out of range")).To(BeTrue())
	})
})
