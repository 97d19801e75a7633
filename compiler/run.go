package compiler

import (
	"github.com/evmc-go/evmc/execctx"
	"github.com/evmc-go/evmc/linker"
)

// SubcallResolver performs the host-side half of a suspension: given the
// NextAction a compiled function left in ctx, it carries out the
// CALL/CREATE/etc. and reports back the values the resumed function
// expects.
type SubcallResolver interface {
	Resolve(ctx *execctx.Context, action execctx.NextAction) (success bool, returnData []byte)
}

// Run drives fn to completion, resolving every CallOrCreate suspension
// through resolver and re-invoking fn until it returns a non-suspending
// reason. It is a convenience for hosts and tests that don't need to
// interleave other work between suspensions; a host with its own event
// loop instead calls Compiler.Call directly and handles CallOrCreate on
// its own schedule.
func (c *Compiler) Run(fn *linker.Compiled, ctx *execctx.Context, resolver SubcallResolver) execctx.Reason {
	for {
		reason := c.Call(fn, ctx)
		if !reason.IsSuspend() {
			return reason
		}
		action := ctx.NextAction
		ctx.NextAction = execctx.NextAction{}
		success, returnData := resolver.Resolve(ctx, action)
		ctx.ReturnData = returnData
		result := execctx.Word{}
		if success {
			result.SetOne()
		}
		ctx.Stack.Push(&result)
	}
}
