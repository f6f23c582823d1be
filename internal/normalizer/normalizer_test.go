package normalizer

import (
	"context"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"k8s.io/utils/ptr"

	"github.com/matsim-io/simnorm/api/v1alpha1"
	"github.com/matsim-io/simnorm/internal/config"
	"github.com/matsim-io/simnorm/internal/metrics"
	"github.com/matsim-io/simnorm/pkg/units"
)

func waterCell(program string, jRule bool) *v1alpha1.Simulation {
	positions := units.NewVectors("angstrom", [3]float64{0, 0, 0}, [3]float64{0.76, 0.59, 0}, [3]float64{-0.76, 0.59, 0})
	lattice := units.NewVectors("angstrom", [3]float64{10, 0, 0}, [3]float64{0, 10, 0}, [3]float64{0, 0, 10})
	oxygen := &v1alpha1.AtomsState{
		ChemicalSymbol: "O",
		OrbitalsState:  []*v1alpha1.OrbitalsState{{N: ptr.To(1), L: ptr.To(0)}},
		CoreHole:       &v1alpha1.CoreHole{OrbitalRefIndex: ptr.To(0), NExcitedElectrons: ptr.To(1.0)},
	}
	if jRule {
		oxygen.OrbitalsState = append(oxygen.OrbitalsState,
			&v1alpha1.OrbitalsState{N: ptr.To(2), L: ptr.To(1), Ml: ptr.To(0), J: []float64{0.5, 1.5}})
	}
	return &v1alpha1.Simulation{
		Program: &v1alpha1.Program{Name: program},
		ModelSystem: []*v1alpha1.ModelSystem{{
			Name: "water",
			AtomicCell: []*v1alpha1.AtomicCell{{
				LatticeVectors: &lattice,
				Positions:      &positions,
				AtomsState:     []*v1alpha1.AtomsState{oxygen, {AtomicNumber: 1}, {ChemicalSymbol: "H"}},
			}},
			ModelSystem: []*v1alpha1.ModelSystem{{Name: "fragment"}},
		}},
	}
}

var _ = Describe("Normalizer", func() {
	var (
		cfg config.NormalizerConfig
		m   *metrics.Metrics
		n   *Normalizer
	)

	BeforeEach(func() {
		cfg = config.Default()
		cfg.Workers = 4
		m = metrics.New()
		n = New(cfg, m, logr.Discard())
	})

	It("should normalize a batch like sequential normalization", func() {
		var parallel, sequential []*v1alpha1.Simulation
		for i := 0; i < 8; i++ {
			parallel = append(parallel, waterCell(fmt.Sprintf("code-%d", i), true))
			sequential = append(sequential, waterCell(fmt.Sprintf("code-%d", i), true))
		}
		Expect(n.NormalizeSimulations(context.Background(), parallel)).To(Succeed())
		for i, s := range sequential {
			s.Normalize(context.Background(), logr.Discard())
			got, want := parallel[i].ModelSystem[0], s.ModelSystem[0]
			Expect(got.ChemicalFormula.Formula).To(Equal(want.ChemicalFormula.Formula))
			Expect(*got.AtomicCell[0].Volume).To(Equal(*want.AtomicCell[0].Volume))
			Expect(got.IsRepresentative).To(BeTrue())
			Expect(got.ModelSystem[0].BranchDepth).To(Equal(1))
		}

		water := parallel[0].ModelSystem[0]
		Expect(water.ChemicalFormula.Hill).To(Equal("H2O"))
		oxygen := water.AtomicCell[0].AtomsState[0]
		Expect(oxygen.OrbitalsState[0].Occupation).To(HaveValue(BeNumerically("~", 1, 1e-12)))
		Expect(oxygen.OrbitalsState[1].Degeneracy).To(HaveValue(Equal(6)))
		Expect(water.AtomicCell[0].AtomsState[1].ChemicalSymbol).To(Equal("H"))
	})

	It("should count entities and diagnostics", func() {
		sims := []*v1alpha1.Simulation{waterCell("a", false), {Program: &v1alpha1.Program{Name: "empty"}}}
		Expect(n.NormalizeSimulations(context.Background(), sims)).To(Succeed())

		Expect(testutil.ToFloat64(m.Entities().WithLabelValues(metrics.EntityAtomsState))).To(Equal(3.0))
		Expect(testutil.ToFloat64(m.Entities().WithLabelValues(metrics.EntityModelSystem))).To(Equal(2.0))
		Expect(testutil.ToFloat64(m.Diagnostics().WithLabelValues("missing_dependency"))).To(Equal(1.0))
	})

	It("should apply per-program resolver overrides", func() {
		cfg.Overrides = config.ProgramOverrides{
			"baseline": {Program: "baseline", JCouplingRule: config.JCouplingNone},
		}
		n = New(cfg, nil, logr.Discard())
		sims := []*v1alpha1.Simulation{waterCell("baseline", true), waterCell("other", true)}
		Expect(n.NormalizeSimulations(context.Background(), sims)).To(Succeed())

		p := func(s *v1alpha1.Simulation) *v1alpha1.OrbitalsState {
			return s.ModelSystem[0].AtomicCell[0].AtomsState[0].OrbitalsState[1]
		}
		Expect(p(sims[0]).Degeneracy).To(HaveValue(Equal(2)))
		Expect(p(sims[1]).Degeneracy).To(HaveValue(Equal(6)))
	})

	It("should return the context error when cancelled before starting", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		sim := waterCell("a", false)
		Expect(n.NormalizeSimulations(ctx, []*v1alpha1.Simulation{sim})).To(MatchError(context.Canceled))
		Expect(sim.ModelSystem[0].ChemicalFormula).To(BeNil())
	})

	It("should skip nil simulations", func() {
		Expect(n.NormalizeSimulations(context.Background(), []*v1alpha1.Simulation{nil})).To(Succeed())
	})
})
