package compiler

import "github.com/evmc-go/evmc/opcodes"

// OptimizationLevel mirrors the backend optimization tiers a codegen
// backend accepts.
type OptimizationLevel int

const (
	OptNone OptimizationLevel = iota
	OptLess
	OptDefault
	OptAggressive
)

func (o OptimizationLevel) String() string {
	switch o {
	case OptNone:
		return "none"
	case OptLess:
		return "less"
	case OptDefault:
		return "default"
	case OptAggressive:
		return "aggressive"
	default:
		return "unknown"
	}
}

// Config enumerates the compiler's configurable options.
type Config struct {
	OptimizationLevel OptimizationLevel
	AOT               bool
	SpecID            opcodes.SpecID
	DumpTo            string
	DebugAssertions   bool
}

// DefaultConfig returns the compiler's default configuration: JIT,
// default optimization, the latest activated hardfork, no dumps, no
// extra assertions.
func DefaultConfig() Config {
	return Config{
		OptimizationLevel: OptDefault,
		AOT:               false,
		SpecID:            opcodes.Cancun,
		DumpTo:            "",
		DebugAssertions:   false,
	}
}
