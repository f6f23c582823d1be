package v1alpha1

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/matsim-io/simnorm/pkg/diagnostics"
)

// Program identifies the program that ran a simulation.
type Program struct {
	Name    string `json:"name,omitempty"`
	Version string `json:"version,omitempty"`
	// Link is a website of the program.
	Link string `json:"link,omitempty"`
	// VersionInternal is an internal tag such as a commit hash.
	VersionInternal string `json:"version_internal,omitempty"`
	CompilationHost string `json:"compilation_host,omitempty"`
}

// Simulation is the root of a document: a program run over one or more model systems.
type Simulation struct {
	Program *Program `json:"program,omitempty"`

	ModelSystem []*ModelSystem `json:"model_system,omitempty"`
}

// RepresentativeSystem returns the system marked representative, or nil.
func (s *Simulation) RepresentativeSystem() *ModelSystem {
	for i := len(s.ModelSystem) - 1; i >= 0; i-- {
		if m := s.ModelSystem[i]; m != nil && m.IsRepresentative {
			return m
		}
	}
	return nil
}

// Prepare marks the representative system and assigns branch depths. Unless a top-level
// system is already marked, the last one becomes representative.
func (s *Simulation) Prepare(logger logr.Logger) bool {
	if len(s.ModelSystem) == 0 {
		logger.Error(fmt.Errorf("%w: model_system", diagnostics.ErrMissingDependency), "No system information reported")
		return false
	}
	if s.RepresentativeSystem() == nil {
		if last := s.ModelSystem[len(s.ModelSystem)-1]; last != nil {
			last.IsRepresentative = true
		}
	}
	for _, m := range s.ModelSystem {
		if m != nil {
			m.SetBranchDepth(0)
		}
	}
	return true
}

// Normalize prepares the system tree and normalizes every model system.
func (s *Simulation) Normalize(ctx context.Context, logger logr.Logger) {
	if s.Program != nil {
		logger = logger.WithValues("program", s.Program.Name)
	}
	if !s.Prepare(logger) {
		return
	}
	for _, m := range s.ModelSystem {
		if m != nil {
			m.Normalize(ctx, logger)
		}
	}
}
