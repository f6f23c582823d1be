package v1alpha1

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/go-logr/logr"

	"github.com/matsim-io/simnorm/pkg/units"
)

func atoms(symbols ...string) []*AtomsState {
	out := make([]*AtomsState, len(symbols))
	for i, s := range symbols {
		out[i] = &AtomsState{ChemicalSymbol: s}
	}
	return out
}

func cubicCell(lattice *units.Vectors) *AtomicCell {
	positions := units.NewVectors("angstrom", [3]float64{0, 0, 0}, [3]float64{0.5, 0.5, 0}, [3]float64{0.5, 0, 0.5})
	return &AtomicCell{
		LatticeVectors:             lattice,
		Positions:                  &positions,
		PeriodicBoundaryConditions: []bool{true, true, true},
		AtomsState:                 atoms("H", "H", "O"),
	}
}

func unitLattice() *units.Vectors {
	v := units.NewVectors("angstrom", [3]float64{1, 0, 0}, [3]float64{0, 1, 0}, [3]float64{0, 0, 1})
	return &v
}

var _ = Describe("AtomicCell", func() {
	It("should derive the metrics of a unit cube", func() {
		cell := cubicCell(unitLattice())
		cell.Normalize(ctx, logr.Discard())

		Expect(cell.Defined()).To(BeTrue())
		for _, l := range []*units.Length{cell.LengthVectorA, cell.LengthVectorB, cell.LengthVectorC} {
			Expect(l.In(units.Angstrom)).To(BeNumerically("~", 1, 1e-9))
		}
		for _, a := range []*units.Angle{cell.AngleVectorsBC, cell.AngleVectorsAC, cell.AngleVectorsAB} {
			Expect(a.Degrees()).To(BeNumerically("~", 90, 1e-9))
		}
		Expect(cell.Volume.In(units.CubicAngstrom)).To(BeNumerically("~", 1, 1e-9))
	})

	It("should fall back to the zero lattice when lattice vectors are empty", func() {
		cell := cubicCell(nil)
		cell.Normalize(ctx, logr.Discard())

		Expect(float64(*cell.LengthVectorA)).To(BeZero())
		Expect(cell.AngleVectorsAB.Degrees()).To(BeNumerically("~", 90, 1e-9))
		Expect(float64(*cell.Volume)).To(BeZero())
	})

	It("should leave the metrics undefined when symbols and positions disagree", func() {
		cell := cubicCell(unitLattice())
		cell.AtomsState = atoms("H", "O")
		cell.Normalize(ctx, logr.Discard())

		Expect(cell.Defined()).To(BeFalse())
		Expect(cell.LengthVectorA).To(BeNil())
		Expect(cell.AngleVectorsBC).To(BeNil())
		Expect(cell.ToAtoms(logr.Discard())).To(BeNil())
	})

	It("should clear supplied metrics when symbols and positions disagree", func() {
		cell := cubicCell(unitLattice())
		cell.AtomsState = atoms("H", "O")
		volume := 5 * units.CubicAngstrom
		cell.Volume = &volume
		cell.Normalize(ctx, logr.Discard())

		Expect(cell.Volume).To(BeNil())
		Expect(cell.Defined()).To(BeFalse())
	})

	It("should clear metrics from an earlier pass once an atom state is dropped", func() {
		cell := cubicCell(unitLattice())
		cell.Normalize(ctx, logr.Discard())
		Expect(cell.Defined()).To(BeTrue())

		cell.AtomsState = cell.AtomsState[:2]
		cell.Normalize(ctx, logr.Discard())
		Expect(cell.Volume).To(BeNil())
		Expect(cell.LengthVectorA).To(BeNil())
	})

	It("should count atom states without an identity against the gate", func() {
		cell := cubicCell(unitLattice())
		cell.AtomsState[2] = &AtomsState{}
		cell.Normalize(ctx, logr.Discard())
		Expect(cell.Defined()).To(BeFalse())
	})

	It("should expose symbols and atomic numbers after normalization", func() {
		cell := cubicCell(unitLattice())
		cell.Normalize(ctx, logr.Discard())
		Expect(cell.ChemicalSymbols()).To(Equal([]string{"H", "H", "O"}))
		Expect(cell.AtomicNumbers()).To(Equal([]int{1, 1, 8}))
	})

	It("should build an atoms snapshot without a lattice", func() {
		cell := cubicCell(nil)
		cell.PeriodicBoundaryConditions = nil
		a := cell.ToAtoms(logr.Discard())
		Expect(a).NotTo(BeNil())
		Expect(a.Cell).To(BeNil())
		Expect(a.Periodic()).To(BeFalse())
		Expect(a.Len()).To(Equal(3))
	})
})
