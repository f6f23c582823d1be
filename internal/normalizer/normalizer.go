/*
Copyright 2025 The simnorm Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package normalizer normalizes batches of simulations in parallel.
//
// Simulations are independent and run concurrently. Inside a cell, atom states run
// concurrently and the cell geometry and chemical formula follow once all of them are
// done. Each atom state keeps the orbitals, core hole, Hubbard order, and core-hole
// writes to an orbital are serialized by the orbital's own lock.
package normalizer

import (
	"context"
	"fmt"
	"time"

	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"

	"github.com/matsim-io/simnorm/api/v1alpha1"
	"github.com/matsim-io/simnorm/internal/config"
	"github.com/matsim-io/simnorm/internal/logging"
	"github.com/matsim-io/simnorm/internal/metrics"
)

// Normalizer normalizes simulations under one configuration.
type Normalizer struct {
	cfg     config.NormalizerConfig
	metrics *metrics.Metrics
	logger  logr.Logger
}

// New returns a Normalizer. m may be nil.
func New(cfg config.NormalizerConfig, m *metrics.Metrics, logger logr.Logger) *Normalizer {
	if m != nil {
		logger = m.WrapLogger(logger)
	}
	return &Normalizer{cfg: cfg, metrics: m, logger: logger}
}

// NormalizeSimulations normalizes sims with at most cfg.Workers running at once. It
// returns ctx.Err() if ctx is cancelled before every simulation has started.
func (n *Normalizer) NormalizeSimulations(ctx context.Context, sims []*v1alpha1.Simulation) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(n.cfg.EffectiveWorkers())
	for i, sim := range sims {
		if sim == nil {
			continue
		}
		if gctx.Err() != nil {
			break
		}
		i, sim := i, sim
		g.Go(func() error {
			return n.NormalizeSimulation(gctx, sim, n.logger.WithValues("simulation", i))
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// NormalizeSimulation normalizes one simulation with the resolvers configured for its
// program.
func (n *Normalizer) NormalizeSimulation(ctx context.Context, sim *v1alpha1.Simulation, logger logr.Logger) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()

	program := ""
	if sim.Program != nil {
		program = sim.Program.Name
		logger = logger.WithValues("program", program)
	}
	resolvers, err := n.cfg.ResolversFor(program)
	if err != nil {
		return fmt.Errorf("resolvers for program %q: %w", program, err)
	}
	ctx = v1alpha1.WithResolvers(ctx, resolvers)

	if !sim.Prepare(logger) {
		return nil
	}
	for _, root := range sim.ModelSystem {
		if root == nil {
			continue
		}
		var systems []*v1alpha1.ModelSystem
		root.Walk(func(m *v1alpha1.ModelSystem) { systems = append(systems, m) })
		for _, m := range systems {
			if err := n.normalizeSystem(ctx, m, logger); err != nil {
				return err
			}
		}
	}

	n.observe(sim, time.Since(start))
	logger.V(logging.DEBUG).Info("Normalized simulation", "duration", time.Since(start).String())
	return nil
}

func (n *Normalizer) normalizeSystem(ctx context.Context, m *v1alpha1.ModelSystem, logger logr.Logger) error {
	logger = logger.WithValues("modelSystem", m.Name, "branchDepth", m.BranchDepth)
	for _, cell := range m.AtomicCell {
		if cell == nil {
			continue
		}
		if err := n.normalizeCell(ctx, cell, logger); err != nil {
			return err
		}
	}
	m.NormalizeFormula(logger)
	return nil
}

func (n *Normalizer) normalizeCell(ctx context.Context, cell *v1alpha1.AtomicCell, logger logr.Logger) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(n.cfg.EffectiveWorkers())
	for _, atom := range cell.AtomsState {
		if atom == nil {
			continue
		}
		atom := atom
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			atom.Normalize(gctx, logger)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	cell.NormalizeGeometry(logger)
	return nil
}

func (n *Normalizer) observe(sim *v1alpha1.Simulation, d time.Duration) {
	if n.metrics == nil {
		return
	}
	var systems, cells, atoms, orbitals int
	for _, root := range sim.ModelSystem {
		if root == nil {
			continue
		}
		root.Walk(func(m *v1alpha1.ModelSystem) {
			systems++
			for _, c := range m.AtomicCell {
				if c == nil {
					continue
				}
				cells++
				atoms += len(c.AtomsState)
				for _, a := range c.AtomsState {
					if a != nil {
						orbitals += len(a.OrbitalsState)
					}
				}
			}
		})
	}
	n.metrics.ObserveEntities(metrics.EntitySimulation, 1)
	n.metrics.ObserveEntities(metrics.EntityModelSystem, systems)
	n.metrics.ObserveEntities(metrics.EntityAtomicCell, cells)
	n.metrics.ObserveEntities(metrics.EntityAtomsState, atoms)
	n.metrics.ObserveEntities(metrics.EntityOrbitalsState, orbitals)
	n.metrics.ObserveDuration(d)
}
