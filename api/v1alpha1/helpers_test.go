package v1alpha1

import (
	"context"
	"strings"
	"sync"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"

	"github.com/matsim-io/simnorm/pkg/units"
)

// capture records every log line written through its logger.
type capture struct {
	mu    sync.Mutex
	lines []string
}

func (c *capture) logger() logr.Logger {
	return funcr.New(func(prefix, args string) {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.lines = append(c.lines, args)
	}, funcr.Options{Verbosity: 2})
}

func (c *capture) contains(s string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, l := range c.lines {
		if strings.Contains(l, s) {
			return true
		}
	}
	return false
}

func eV(v float64) *units.Energy {
	e := units.Energy(v) * units.ElectronVolt
	return &e
}

func inEV(e *units.Energy) float64 { return e.In(units.ElectronVolt) }

var ctx = context.Background()
