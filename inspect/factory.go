package inspect

import (
	"fmt"

	"github.com/mevtrace/engine/types"
)

// Config selects which inspectors a Factory builds and their tunables.
type Config struct {
	EnableSandwich      bool
	EnableJit           bool
	EnableCexDex        bool
	EnableCexDexMarkout bool
	EnableAtomicArb     bool
	EnableLiquidation   bool

	CexDexMinSpreadBps        int64
	CexDexMarkoutMinSpreadBps int64
	CexDexMarkoutExchange     types.CexExchange
}

// Factory builds the set of Inspectors enabled by Config, the single place
// that knows how to wire each inspector's dependencies.
type Factory struct {
	cfg Config
}

// NewFactory constructs a Factory from cfg.
func NewFactory(cfg Config) *Factory {
	return &Factory{cfg: cfg}
}

// Build returns every inspector enabled by the Factory's Config.
func (f *Factory) Build() []Inspector {
	var out []Inspector
	if f.cfg.EnableSandwich {
		out = append(out, NewSandwichInspector())
	}
	if f.cfg.EnableJit {
		out = append(out, NewJitInspector())
	}
	if f.cfg.EnableCexDex {
		out = append(out, NewCexDexInspector(f.cfg.CexDexMinSpreadBps))
	}
	if f.cfg.EnableCexDexMarkout {
		out = append(out, NewCexDexMarkoutInspector(f.cfg.CexDexMarkoutMinSpreadBps, f.cfg.CexDexMarkoutExchange))
	}
	if f.cfg.EnableAtomicArb {
		out = append(out, NewAtomicArbInspector())
	}
	if f.cfg.EnableLiquidation {
		out = append(out, NewLiquidationInspector())
	}
	return out
}

// DefaultConfig enables every inspector with reasonable defaults, the
// engine's out-of-the-box configuration.
func DefaultConfig() Config {
	return Config{
		EnableSandwich:            true,
		EnableJit:                 true,
		EnableCexDex:              true,
		EnableCexDexMarkout:       true,
		EnableAtomicArb:           true,
		EnableLiquidation:         true,
		CexDexMinSpreadBps:        15,
		CexDexMarkoutMinSpreadBps: 15,
		CexDexMarkoutExchange:     types.Binance,
	}
}

// inspectorNames is the --inspectors flag's vocabulary.
var inspectorNames = []string{"sandwich", "jit", "cexdex", "cexdex_markout", "atomic_arb", "liquidation"}

// ConfigFromNames builds a Config enabling only the named inspectors,
// starting from DefaultConfig's tunables, the --inspectors flag's
// comma-separated subset. An empty names list enables every inspector,
// matching DefaultConfig.
func ConfigFromNames(names []string) (Config, error) {
	cfg := DefaultConfig()
	if len(names) == 0 {
		return cfg, nil
	}
	cfg.EnableSandwich = false
	cfg.EnableJit = false
	cfg.EnableCexDex = false
	cfg.EnableCexDexMarkout = false
	cfg.EnableAtomicArb = false
	cfg.EnableLiquidation = false

	for _, name := range names {
		switch name {
		case "sandwich":
			cfg.EnableSandwich = true
		case "jit":
			cfg.EnableJit = true
		case "cexdex":
			cfg.EnableCexDex = true
		case "cexdex_markout":
			cfg.EnableCexDexMarkout = true
		case "atomic_arb":
			cfg.EnableAtomicArb = true
		case "liquidation":
			cfg.EnableLiquidation = true
		default:
			return Config{}, fmt.Errorf("inspect: unknown inspector %q, want one of %v", name, inspectorNames)
		}
	}
	return cfg, nil
}
