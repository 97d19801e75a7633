package compiler

import (
	"errors"
	"os"
	"testing"

	"github.com/evmc-go/evmc/backend"
	"github.com/evmc-go/evmc/backend/refvm"
	"github.com/evmc-go/evmc/core/types"
	"github.com/evmc-go/evmc/execctx"
	"github.com/evmc-go/evmc/opcodes"
)

func refvmBuilder() (backend.Builder, error) { return refvm.New(), nil }

// callHost answers the callee warm/cold query the CALL lowering makes
// through Host.Balance. The CALL test's bytecode reaches no other Host
// method, so the embedded nil Host is never called.
type callHost struct{ execctx.Host }

func (callHost) Balance(types.Address) (execctx.Word, bool) { return execctx.Word{}, true }

type stubResolver struct{ calls int }

func (r *stubResolver) Resolve(ctx *execctx.Context, action execctx.NextAction) (bool, []byte) {
	r.calls++
	return true, []byte("ok")
}

func TestRunResolvesSuspensionAndResumes(t *testing.T) {
	c := New(DefaultConfig(), refvmBuilder)
	// CALL with all-zero operands, then STOP.
	code := []byte{
		byte(opcodes.PUSH1), 0, // retSize
		byte(opcodes.PUSH1), 0, // retOffset
		byte(opcodes.PUSH1), 0, // argsSize
		byte(opcodes.PUSH1), 0, // argsOffset
		byte(opcodes.PUSH1), 0, // value
		byte(opcodes.PUSH1), 0, // to
		byte(opcodes.PUSH1), 0, // gas
		byte(opcodes.CALL),
		byte(opcodes.STOP),
	}
	entry, err := c.Compile(code)
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	ctx := execctx.NewContext(1000000, callHost{}, execctx.Env{})
	resolver := &stubResolver{}

	reason := c.Run(entry.Func, ctx, resolver)
	if reason != execctx.ReasonStop {
		t.Fatalf("reason = %v, want Stop", reason)
	}
	if resolver.calls != 1 {
		t.Errorf("resolver.Resolve called %d times, want 1", resolver.calls)
	}
	if got := ctx.Stack.Pop().Uint64(); got != 1 {
		t.Errorf("success flag left on stack = %d, want 1", got)
	}
}

func TestCompileAndCall(t *testing.T) {
	c := New(DefaultConfig(), refvmBuilder)
	code := []byte{
		byte(opcodes.PUSH1), 3,
		byte(opcodes.PUSH1), 4,
		byte(opcodes.ADD),
		byte(opcodes.STOP),
	}
	entry, err := c.Compile(code)
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}

	ctx := execctx.NewContext(1000, nil, execctx.Env{})
	reason := c.Call(entry.Func, ctx)
	if reason != execctx.ReasonStop {
		t.Fatalf("reason = %v, want Stop", reason)
	}
	if got := ctx.Stack.Pop().Uint64(); got != 7 {
		t.Errorf("result = %d, want 7", got)
	}
}

func TestCompileCachesByContent(t *testing.T) {
	c := New(DefaultConfig(), refvmBuilder)
	code := []byte{byte(opcodes.STOP)}

	first, err := c.Compile(code)
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	second, err := c.Compile(append([]byte(nil), code...))
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	if first.Hash != second.Hash {
		t.Errorf("hashes differ for identical code: %v vs %v", first.Hash, second.Hash)
	}
}

func TestClearInvalidatesCompilerCache(t *testing.T) {
	c := New(DefaultConfig(), refvmBuilder)
	code := []byte{byte(opcodes.STOP)}
	c.Compile(code)
	c.Clear()

	// a second Compile after Clear must not panic trying to re-populate a
	// cleared Linker -- Compile always goes through a fresh miss path.
	if _, err := c.Compile(code); err != nil {
		t.Errorf("Compile after Clear returned error: %v", err)
	}
}

func TestCompileSurfacesBackendUnavailable(t *testing.T) {
	failing := func() (backend.Builder, error) { return nil, errors.New("boom") }
	c := New(DefaultConfig(), failing)
	_, err := c.Compile([]byte{byte(opcodes.STOP)})
	if !errors.Is(err, ErrBackendUnavailable) {
		t.Errorf("err = %v, want ErrBackendUnavailable", err)
	}
}

func TestDebugAssertionsPassOnWellFormedHalt(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DebugAssertions = true
	c := New(cfg, refvmBuilder)
	code := []byte{byte(opcodes.STOP)}
	entry, err := c.Compile(code)
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	ctx := execctx.NewContext(1000, nil, execctx.Env{})

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Call panicked on a well-formed halt: %v", r)
		}
	}()
	c.Call(entry.Func, ctx)
}

func TestDumpWritesOneFilePerContract(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.DumpTo = dir
	c := New(cfg, refvmBuilder)

	code := []byte{
		byte(opcodes.PUSH1), 1,
		byte(opcodes.STOP),
	}
	if _, err := c.Compile(code); err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d files in dump dir, want 1", len(entries))
	}
}
