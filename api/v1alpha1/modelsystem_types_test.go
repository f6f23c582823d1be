package v1alpha1

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/go-logr/logr"

	"github.com/matsim-io/simnorm/pkg/formula"
	"github.com/matsim-io/simnorm/pkg/units"
)

func cuprate() *AtomicCell {
	positions := units.NewVectors("angstrom",
		[3]float64{0, 0, 0}, [3]float64{0.5, 0, 0}, [3]float64{0, 0.5, 0}, [3]float64{0.5, 0.5, 0},
		[3]float64{0, 0, 0.5}, [3]float64{0.5, 0, 0.5}, [3]float64{0, 0.5, 0.5})
	return &AtomicCell{
		LatticeVectors: unitLattice(),
		Positions:      &positions,
		AtomsState:     atoms("La", "Cu", "Cu", "O", "O", "O", "O"),
	}
}

var _ = Describe("ModelSystem", func() {
	It("should derive the chemical formula from the first cell", func() {
		m := &ModelSystem{Name: "LCO", AtomicCell: []*AtomicCell{cuprate(), cubicCell(unitLattice())}}
		m.Normalize(ctx, logr.Discard())
		Expect(m.ChemicalFormula).NotTo(BeNil())
		Expect(m.ChemicalFormula.Formula).To(Equal(formula.Formula{
			Descriptive: "LaCu2O4",
			Reduced:     "Cu2LaO4",
			IUPAC:       "LaCu2O4",
			Hill:        "Cu2LaO4",
			Anonymous:   "A4B2C",
		}))
	})

	It("should leave every formula undefined for a cell without atoms", func() {
		m := &ModelSystem{AtomicCell: []*AtomicCell{{LatticeVectors: unitLattice()}}}
		m.Normalize(ctx, logr.Discard())
		Expect(m.ChemicalFormula.Formula).To(Equal(formula.Formula{}))
	})

	It("should not create a formula without cells", func() {
		m := &ModelSystem{}
		m.Normalize(ctx, logr.Discard())
		Expect(m.ChemicalFormula).To(BeNil())
	})

	It("should assign branch depths recursively", func() {
		leaf := &ModelSystem{Name: "leaf"}
		mid := &ModelSystem{Name: "mid", ModelSystem: []*ModelSystem{leaf}}
		root := &ModelSystem{Name: "root", ModelSystem: []*ModelSystem{mid}}
		root.SetBranchDepth(0)
		Expect(root.BranchDepth).To(Equal(0))
		Expect(mid.BranchDepth).To(Equal(1))
		Expect(leaf.BranchDepth).To(Equal(2))

		var names []string
		root.Walk(func(m *ModelSystem) { names = append(names, m.Name) })
		Expect(names).To(Equal([]string{"root", "mid", "leaf"}))
	})
})
