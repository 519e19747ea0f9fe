// Package config loads and validates the simulation's tunables: epoch
// structure, seeding, initial liquidity, and the capital-allocation
// coefficients, from an optional YAML file with environment overrides.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/Avatazjoe/Prop-AMM-Multi-Strategy-Competition-Engine/pkg/mathx"
)

// SimConfig governs the shape and risk parameters of one simulation run.
type SimConfig struct {
	// TotalSteps is the number of price/order steps in the simulation.
	TotalSteps int `mapstructure:"total_steps"`
	// EpochLen is the number of steps between capital rebalances.
	EpochLen int `mapstructure:"epoch_len"`
	// Seed seeds the deterministic RNG stream for replication 0; later
	// replications derive their seed from this plus their index.
	Seed uint64 `mapstructure:"seed"`
	// BaseReserveX/BaseReserveY are each strategy pool's starting
	// reserves before capital-weight scaling, in scaled units.
	BaseReserveX uint64 `mapstructure:"base_reserve_x"`
	BaseReserveY uint64 `mapstructure:"base_reserve_y"`
	// Lambda is the risk-aversion coefficient for capital allocation.
	Lambda float64 `mapstructure:"lambda"`
	// MinCapitalWeight floors every strategy's capital share.
	MinCapitalWeight float64 `mapstructure:"min_capital_weight"`
	// SoftmaxTemperature scales the epoch-rebalance softmax.
	SoftmaxTemperature float64 `mapstructure:"softmax_temperature"`
	// ArbProfitFloor is the minimum profit (unscaled Y) an arbitrage
	// trade must clear to execute.
	ArbProfitFloor float64 `mapstructure:"arb_profit_floor"`
	// Replications is the number of independent Monte Carlo replications
	// to run for this configuration.
	Replications int `mapstructure:"replications"`
	// MaxParallel caps how many replications run concurrently; 0 means
	// no limit.
	MaxParallel int `mapstructure:"max_parallel"`
}

// ValidationError mirrors the field/message shape used throughout the
// rest of the ambient stack's configuration validation.
type ValidationError struct {
	Field   string
	Message string
}

// ValidationErrors is a collection of validation failures, reported
// together rather than failing fast on the first one.
type ValidationErrors []ValidationError

// Error renders every validation failure as one multi-line message.
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ""
	}
	msg := fmt.Sprintf("simulation config validation failed with %d error(s):\n", len(ve))
	for i, e := range ve {
		msg += fmt.Sprintf("  %d. %s: %s\n", i+1, e.Field, e.Message)
	}
	return msg
}

// Default returns the engine's baseline configuration.
func Default() SimConfig {
	return SimConfig{
		TotalSteps:         10_000,
		EpochLen:           1_000,
		Seed:               0,
		BaseReserveX:       100 * mathx.Scale,
		BaseReserveY:       10_000 * mathx.Scale,
		Lambda:             2.0,
		MinCapitalWeight:   0.02,
		SoftmaxTemperature: 1.0,
		ArbProfitFloor:     0.01,
		Replications:       1,
		MaxParallel:        0,
	}
}

// Load reads a SimConfig from an optional YAML file, applying
// AMMSIM_-prefixed environment overrides on top of the baked-in
// defaults, and validates the result.
func Load(configPath string) (SimConfig, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("ammsim")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.AutomaticEnv()
	v.SetEnvPrefix("AMMSIM")

	def := Default()
	v.SetDefault("total_steps", def.TotalSteps)
	v.SetDefault("epoch_len", def.EpochLen)
	v.SetDefault("seed", def.Seed)
	v.SetDefault("base_reserve_x", def.BaseReserveX)
	v.SetDefault("base_reserve_y", def.BaseReserveY)
	v.SetDefault("lambda", def.Lambda)
	v.SetDefault("min_capital_weight", def.MinCapitalWeight)
	v.SetDefault("softmax_temperature", def.SoftmaxTemperature)
	v.SetDefault("arb_profit_floor", def.ArbProfitFloor)
	v.SetDefault("replications", def.Replications)
	v.SetDefault("max_parallel", def.MaxParallel)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return SimConfig{}, fmt.Errorf("read simulation config: %w", err)
		}
	}

	var cfg SimConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return SimConfig{}, fmt.Errorf("unmarshal simulation config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return SimConfig{}, err
	}
	return cfg, nil
}

// Validate checks that every tunable is in a usable range.
func (c SimConfig) Validate() error {
	var errs ValidationErrors

	if c.TotalSteps <= 0 {
		errs = append(errs, ValidationError{"total_steps", "must be positive"})
	}
	if c.EpochLen <= 0 {
		errs = append(errs, ValidationError{"epoch_len", "must be positive"})
	}
	if c.EpochLen > 0 && c.TotalSteps > 0 && c.EpochLen > c.TotalSteps {
		errs = append(errs, ValidationError{"epoch_len", "must not exceed total_steps"})
	}
	if c.BaseReserveX == 0 || c.BaseReserveY == 0 {
		errs = append(errs, ValidationError{"base_reserve_x/base_reserve_y", "must be positive"})
	}
	if c.Lambda < 0 {
		errs = append(errs, ValidationError{"lambda", "must be non-negative"})
	}
	if c.MinCapitalWeight < 0 || c.MinCapitalWeight >= 1 {
		errs = append(errs, ValidationError{"min_capital_weight", "must be in [0, 1)"})
	}
	if c.SoftmaxTemperature <= 0 {
		errs = append(errs, ValidationError{"softmax_temperature", "must be positive"})
	}
	if c.ArbProfitFloor < 0 {
		errs = append(errs, ValidationError{"arb_profit_floor", "must be non-negative"})
	}
	if c.Replications <= 0 {
		errs = append(errs, ValidationError{"replications", "must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
