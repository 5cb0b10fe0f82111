package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mahdiidarabi/sigma-proofs/pkg/verifier"
)

// errInvalid makes the process exit non-zero without printing usage.
var errInvalid = errors.New("invalid signature")

type app struct {
	log      *zap.Logger
	registry *prometheus.Registry
	metrics  *verifier.Metrics
}

func main() {
	a := &app{}
	root := &cobra.Command{
		Use:           "sigmaverify",
		Short:         "Parses and verifies Sigma-protocol proofs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			return a.setup(c.Flags())
		},
	}
	AddGlobalFlags(root.PersistentFlags())
	root.AddCommand(
		parseCommand(a),
		verifyCommand(a),
		batchCommand(a),
	)

	err := root.Execute()
	if a.log != nil {
		if ferr := a.teardown(root.PersistentFlags()); err == nil {
			err = ferr
		}
	}
	if err != nil {
		if !errors.Is(err, errInvalid) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func (a *app) setup(flags *pflag.FlagSet) error {
	levelStr, err := flags.GetString(LogLevelKey)
	if err != nil {
		return err
	}
	level, err := zapcore.ParseLevel(levelStr)
	if err != nil {
		return errors.Wrapf(err, "invalid --%s", LogLevelKey)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	a.log, err = cfg.Build()
	if err != nil {
		return errors.Wrap(err, "failed to build logger")
	}

	a.registry = prometheus.NewRegistry()
	a.metrics, err = verifier.NewMetrics(a.registry)
	return err
}

func (a *app) config() verifier.Config {
	return verifier.DefaultConfig().
		WithLogger(a.log).
		WithMetrics(a.metrics)
}

// teardown flushes the logger and dumps metrics when asked to, including
// after a failed command.
func (a *app) teardown(flags *pflag.FlagSet) error {
	defer func() { _ = a.log.Sync() }()

	dump, err := flags.GetBool(MetricsKey)
	if err != nil || !dump {
		return err
	}
	return a.dumpMetrics()
}

func (a *app) dumpMetrics() error {
	families, err := a.registry.Gather()
	if err != nil {
		return errors.Wrap(err, "failed to gather metrics")
	}
	enc := expfmt.NewEncoder(os.Stderr, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return errors.Wrap(err, "failed to encode metrics")
		}
	}
	return nil
}
