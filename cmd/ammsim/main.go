// Command ammsim drives the Monte Carlo prop-AMM competition engine: it
// validates a set of strategies, runs them against each other across many
// replications, and reports each strategy's risk-adjusted edge relative
// to the built-in normalizer baseline.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Avatazjoe/Prop-AMM-Multi-Strategy-Competition-Engine/internal/config"
	"github.com/Avatazjoe/Prop-AMM-Multi-Strategy-Competition-Engine/internal/replication"
	"github.com/Avatazjoe/Prop-AMM-Multi-Strategy-Competition-Engine/internal/strategy"
	"github.com/Avatazjoe/Prop-AMM-Multi-Strategy-Competition-Engine/pkg/mathx"
	"github.com/Avatazjoe/Prop-AMM-Multi-Strategy-Competition-Engine/strategies/fixedfee"
)

// ============================================================================
// STRATEGY REGISTRY
// ============================================================================

// strategySpec names a built-in strategy and the fee (basis points) to
// construct it with, parsed from a "name:feeBps" CLI token such as
// "fixed:70" or "fixed:5".
type strategySpec struct {
	name   string
	feeBps uint32
}

func parseStrategySpecs(raw string) ([]strategySpec, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("provide at least one strategy spec, e.g. -strategies=fixed:70,fixed:5")
	}
	var specs []strategySpec
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		parts := strings.SplitN(tok, ":", 2)
		name := parts[0]
		feeBps := uint32(70)
		if len(parts) == 2 {
			v, err := strconv.Atoi(parts[1])
			if err != nil {
				return nil, fmt.Errorf("invalid fee in strategy spec %q: %w", tok, err)
			}
			feeBps = uint32(v)
		}
		specs = append(specs, strategySpec{name: name, feeBps: feeBps})
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("no usable strategy specs parsed from %q", raw)
	}
	return specs, nil
}

// buildStrategies instantiates one fresh strategy set from specs. It is
// called once per replication so concurrent replications never share a
// strategy instance.
func buildStrategies(specs []strategySpec) []strategy.Strategy {
	out := make([]strategy.Strategy, 0, len(specs))
	for _, s := range specs {
		switch strings.ToLower(s.name) {
		case "fixed", "fixedfee":
			out = append(out, fixedfee.New(s.feeBps))
		default:
			out = append(out, fixedfee.New(s.feeBps))
		}
	}
	return out
}

// ============================================================================
// MAIN
// ============================================================================

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	config.InitLogger("info", "console")

	switch os.Args[1] {
	case "validate":
		runValidate(os.Args[2:])
	case "run":
		runSimulate(os.Args[2:], false)
	case "submit":
		runSimulate(os.Args[2:], true)
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: ammsim <validate|run|submit> [flags] -strategies=name:feeBps,...")
}

// ============================================================================
// VALIDATE
// ============================================================================

func runValidate(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	strategiesFlag := fs.String("strategies", "", "Comma-separated strategy specs, e.g. fixed:70,fixed:5")
	_ = fs.Parse(args)

	specs, err := parseStrategySpecs(*strategiesFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid strategy specs")
	}

	if err := validateSpecs(specs); err != nil {
		log.Fatal().Err(err).Msg("strategy validation failed")
	}
}

// validateSpecs mirrors the sanity checks every submitted strategy must
// clear before it is trusted in a competition run: it must produce a
// nonzero, monotonically increasing quote as input size grows.
func validateSpecs(specs []strategySpec) error {
	rx := 100 * mathx.Scale
	ry := 10_000 * mathx.Scale

	for i, spec := range specs {
		strategies := buildStrategies([]strategySpec{spec})
		s := strategies[0]

		small := s.Quote(strategy.SwapContext{IsBuy: true, InputAmount: 1 * mathx.Scale, ReserveX: rx, ReserveY: ry})
		large := s.Quote(strategy.SwapContext{IsBuy: true, InputAmount: 5 * mathx.Scale, ReserveX: rx, ReserveY: ry})

		if small == 0 || large == 0 {
			return fmt.Errorf("strategy #%d (%s) produced zero output on validation quotes", i, s.Name())
		}
		if large <= small {
			return fmt.Errorf("strategy #%d (%s) failed monotonicity check", i, s.Name())
		}
		fmt.Printf("[PASS] %s\n", s.Name())
	}
	return nil
}

// ============================================================================
// RUN / SUBMIT
// ============================================================================

func runSimulate(args []string, submitMode bool) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	strategiesFlag := fs.String("strategies", "", "Comma-separated strategy specs, e.g. fixed:70,fixed:5")
	simulations := fs.Int("simulations", 100, "Number of Monte Carlo replications")
	steps := fs.Int("steps", 10_000, "Steps per replication")
	epochLen := fs.Int("epoch-len", 1_000, "Steps between capital rebalances")
	seedStart := fs.Uint64("seed-start", 0, "Starting RNG seed")
	maxParallel := fs.Int("max-parallel", 0, "Max concurrent replications (0 = unlimited)")
	_ = fs.Parse(args)

	specs, err := parseStrategySpecs(*strategiesFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid strategy specs")
	}
	if err := validateSpecs(specs); err != nil {
		log.Fatal().Err(err).Msg("strategy validation failed")
	}

	cfg := config.Default()
	cfg.TotalSteps = *steps
	cfg.EpochLen = *epochLen
	cfg.Seed = *seedStart
	cfg.Replications = *simulations
	cfg.MaxParallel = *maxParallel
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid simulation config")
	}

	log.Info().
		Int("simulations", cfg.Replications).
		Int("steps", cfg.TotalSteps).
		Int("epoch_len", cfg.EpochLen).
		Uint64("seed_start", cfg.Seed).
		Msg("starting competition run")

	results, err := replication.Run(context.Background(), func() []strategy.Strategy {
		return buildStrategies(specs)
	}, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("replication run failed")
	}

	printReport(results)

	if submitMode {
		log.Info().Msg("submit mode: results recorded; no external submission surface in this engine")
	}
}

func printReport(results []replication.AggregatedResult) {
	fmt.Println()
	fmt.Printf("%-34s %10s %10s %9s %9s %10s\n", "Strategy", "Mean Edge", "Std Edge", "vs Norm", "Sharpe", "Final Cap%")
	fmt.Println(strings.Repeat("-", 95))
	for _, r := range results {
		fmt.Printf("%-34s %10.2f %10.2f %9.2f %9.3f %10.2f\n",
			r.Name, r.MeanEdge, r.StdEdge, r.EdgeVsNormalizer, r.Sharpe, r.MeanFinalCapitalWeight*100)
	}
}
