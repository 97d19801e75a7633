// Package compiler ties together the bytecode analyzer, IR translator,
// backend, and linker into the single entry point a host embeds. It is
// infallible on the bytecode axis -- every byte sequence compiles to
// something callable -- and fails only on backend setup errors, which it
// surfaces verbatim.
package compiler

import (
	"errors"
	"fmt"

	"github.com/evmc-go/evmc/backend"
	"github.com/evmc-go/evmc/execctx"
	"github.com/evmc-go/evmc/linker"
	"github.com/evmc-go/evmc/log"
	"github.com/evmc-go/evmc/translator"
)

var logger = log.Default().Module("compiler")

// ErrBackendUnavailable is returned when the configured backend factory
// itself fails to construct a builder.
var ErrBackendUnavailable = errors.New("compiler: backend unavailable")

// NewBuilderFunc constructs a fresh backend.Builder for one compilation.
// Each call to Compiler.Compile gets its own builder, since a Builder is
// single-function, single-use.
type NewBuilderFunc func() (backend.Builder, error)

// Compiler is the long-lived object a host constructs once and reuses
// across many Compile calls; it owns the Linker and therefore the
// lifetime of every function pointer it has ever handed out.
type Compiler struct {
	cfg        Config
	newBuilder NewBuilderFunc
	link       *linker.Linker
}

// New constructs a Compiler with cfg and the given backend factory.
func New(cfg Config, newBuilder NewBuilderFunc) *Compiler {
	return &Compiler{cfg: cfg, newBuilder: newBuilder, link: linker.New()}
}

// Compile translates code into a callable function, reusing the Linker's
// cache when code has already been compiled since the last Clear.
func (c *Compiler) Compile(code []byte) (*linker.Entry, error) {
	if entry, ok := c.link.JIT(code); ok {
		logger.Debug("compile cache hit", "size", len(code))
		return entry, nil
	}

	b, err := c.newBuilder()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	mod := translator.Translate(code, c.cfg.SpecID, b)
	if c.cfg.DumpTo != "" {
		c.dump(code, mod)
	}

	entry := c.link.Put(code, mod.Func)
	logger.Info("compiled contract", "size", len(code), "blocks", len(mod.Blocks), "hash", entry.Hash.Hex())
	return entry, nil
}

// Clear invalidates every function this Compiler has produced. Calling a Func obtained before Clear is undefined behavior
// thereafter.
func (c *Compiler) Clear() {
	c.link.Clear()
}

// Call invokes fn once against ctx. fn defends itself against calls made
// after the Linker that produced it was Clear'd (see linker.Compiled.Call)
// when DebugAssertions is set; Call then checks the calling contract's own
// invariants before returning: stack length never exceeds its capacity,
// and GasRemaining never goes negative. Compiled code checks every charge
// before deducting it, so an OutOfGas return leaves GasRemaining at its
// value before the failing charge.
func (c *Compiler) Call(fn *linker.Compiled, ctx *execctx.Context) execctx.Reason {
	reason := fn.Call(ctx, c.cfg.DebugAssertions)
	if c.cfg.DebugAssertions {
		c.assert(ctx, reason)
	}
	return reason
}

func (c *Compiler) assert(ctx *execctx.Context, reason execctx.Reason) {
	if ctx.Stack.Len < 0 || ctx.Stack.Len > execctx.StackSlots {
		panic(fmt.Sprintf("compiler: stack length %d out of bounds", ctx.Stack.Len))
	}
	if ctx.GasRemaining < 0 {
		panic(fmt.Sprintf("compiler: negative GasRemaining %d after %v", ctx.GasRemaining, reason))
	}
}
