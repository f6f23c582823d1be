package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/matsim-io/simnorm/api/v1alpha1"
	"github.com/matsim-io/simnorm/internal/config"
	"github.com/matsim-io/simnorm/internal/document"
	"github.com/matsim-io/simnorm/internal/logging"
	"github.com/matsim-io/simnorm/internal/metrics"
	"github.com/matsim-io/simnorm/internal/normalizer"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// stdout is the --output value that writes documents to standard output.
const stdout = "-"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "simnorm",
		Short:        "Normalize atomistic simulation documents",
		Long:         "simnorm derives quantum-number symbols, degeneracies, core-hole occupations,\nHubbard interactions, cell metrics and chemical formulas for simulation documents.",
		SilenceUsage: true,
	}
	root.AddCommand(newNormalizeCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the simnorm version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "simnorm %s\n", version)
		},
	}
}

type normalizeOptions struct {
	configPath string
	output     string
	strict     bool
}

func newNormalizeCmd() *cobra.Command {
	opts := &normalizeOptions{}
	cmd := &cobra.Command{
		Use:   "normalize <file>...",
		Short: "Normalize simulation documents (YAML or JSON)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNormalize(cmd, opts, args)
		},
	}
	cmd.Flags().StringVar(&opts.configPath, "config", "", "configuration file (also SIMNORM_CONFIG)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", stdout, `output directory, or "-" for standard output`)
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "reject unknown fields in documents")
	config.Flags(cmd.Flags())
	return cmd
}

func runNormalize(cmd *cobra.Command, opts *normalizeOptions, paths []string) error {
	cfg, err := config.Load(opts.configPath, cmd.Flags(), logr.Discard())
	if err != nil {
		return err
	}
	logger, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	m := metrics.New()

	sims := make([]*v1alpha1.Simulation, len(paths))
	var errs []error
	for i, path := range paths {
		sim, err := document.DecodeFile(path, opts.strict)
		if err != nil {
			m.ObserveFailure()
			errs = append(errs, err)
			continue
		}
		sims[i] = sim
	}

	n := normalizer.New(cfg, m, logger)
	if err := n.NormalizeSimulations(cmd.Context(), sims); err != nil {
		return err
	}

	if opts.output != stdout {
		if err := os.MkdirAll(opts.output, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	for i, sim := range sims {
		if sim == nil {
			continue
		}
		if err := write(cmd.OutOrStdout(), opts.output, paths[i], sim, i > 0); err != nil {
			m.ObserveFailure()
			errs = append(errs, err)
		}
	}

	if cfg.MetricsFile != "" {
		if err := m.WriteTextfile(cfg.MetricsFile); err != nil {
			errs = append(errs, err)
		}
	}
	logger.V(logging.DEBUG).Info("Normalization finished", "documents", len(paths), "failures", len(errs))
	return errors.Join(errs...)
}

// write emits sim either to out, separating documents, or to the output directory under
// the input file name.
func write(out io.Writer, output, path string, sim *v1alpha1.Simulation, separate bool) error {
	format := document.FormatFromPath(path)
	if output != stdout {
		return document.EncodeFile(filepath.Join(output, filepath.Base(path)), sim)
	}
	data, err := document.Encode(sim, format)
	if err != nil {
		return err
	}
	if separate && format == document.FormatYAML {
		if _, err := io.WriteString(out, "---\n"); err != nil {
			return err
		}
	}
	_, err = out.Write(data)
	return err
}
