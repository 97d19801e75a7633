// Package linker implements the JIT/AOT facade: it turns a backend-compiled
// Module into a callable function pointer, or links a batch of them into
// an in-process Artifact. It does not understand EVM semantics; it only
// manages the lifetime of compiled functions and the content-addressed
// cache (keyed by crypto.Keccak256Hash) that lets a host skip recompiling
// bytecode it has already seen.
package linker

import (
	"fmt"
	"sync"

	"github.com/evmc-go/evmc/backend"
	"github.com/evmc-go/evmc/core/types"
	"github.com/evmc-go/evmc/crypto"
	"github.com/evmc-go/evmc/execctx"
	"github.com/evmc-go/evmc/log"
)

var logger = log.Default().Module("linker")

// Entry is a single linked function together with the code hash it was
// compiled from, returned by JIT and stored in the cache.
type Entry struct {
	Hash types.Hash
	Func *Compiled
}

// Compiled is a function produced by one generation of a Linker -- the
// span between construction (or the last Clear) and the next Clear.
// Calling it after that Linker has been Cleared is undefined behavior per
// Clear's documented contract; Call defends against exactly that mistake
// when asked to, rather than silently running code the Linker considers
// invalidated.
type Compiled struct {
	fn         backend.Func
	generation uint64
	linker     *Linker
}

// Call invokes the compiled function. When debugAssertions is true, Call
// first checks that the Linker that produced this Compiled has not since
// been Cleared; if it has, Call returns ReasonInvalidOpcode instead of
// invoking fn. Without debugAssertions, Call always invokes fn, matching
// the documented UB contract: a stale Func is the caller's mistake to
// avoid, not the linker's to catch.
func (c *Compiled) Call(ctx *execctx.Context, debugAssertions bool) execctx.Reason {
	if debugAssertions && c.linker.currentGeneration() != c.generation {
		return execctx.ReasonInvalidOpcode
	}
	return c.fn(ctx)
}

// Linker owns the set of functions produced by one compiler instance.
// Every fn-pointer it hands out remains valid only until Clear is
// called; after Clear, calling a previously returned Func is undefined
// behavior -- the caller is trusted not to do so, though Compiled.Call
// can defend against it when the compiler asks it to.
type Linker struct {
	mu         sync.RWMutex
	generation uint64
	cache      map[types.Hash]*Entry
}

// New returns an empty Linker.
func New() *Linker {
	return &Linker{cache: make(map[types.Hash]*Entry)}
}

func (l *Linker) currentGeneration() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.generation
}

// JIT returns the cached Entry for code if one exists, else reports a
// cache miss via ok=false. A Clear empties the cache, so code compiled in
// an earlier generation always misses here rather than handing back a
// Compiled from before the clear. Callers compile on a miss and register
// the result with Put.
func (l *Linker) JIT(code []byte) (entry *Entry, ok bool) {
	hash := crypto.Keccak256Hash(code)
	l.mu.RLock()
	defer l.mu.RUnlock()
	e, ok := l.cache[hash]
	return e, ok
}

// Put registers fn as the compiled function for code, keyed by its
// Keccak256 hash, and returns the Entry. The Compiled it wraps fn in
// remembers the Linker's current generation.
func (l *Linker) Put(code []byte, fn backend.Func) *Entry {
	hash := crypto.Keccak256Hash(code)
	l.mu.Lock()
	defer l.mu.Unlock()
	e := &Entry{Hash: hash, Func: &Compiled{fn: fn, generation: l.generation, linker: l}}
	l.cache[hash] = e
	logger.Debug("linked function", "hash", hash.Hex())
	return e
}

// Clear invalidates every function pointer this Linker has ever handed
// out and empties the cache so the Linker is immediately reusable for a
// fresh compilation cycle. This is unsafe by contract, not by Go's memory
// model -- nothing stops a caller from still holding and invoking a Func
// value obtained before Clear; doing so is documented undefined behavior,
// though Compiled.Call can catch it under debug assertions since every
// Compiled remembers the generation it was produced in and Clear advances
// the Linker's current one.
func (l *Linker) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[types.Hash]*Entry)
	l.generation++
	logger.Debug("linker cleared")
}

// Artifact is the result of linking a batch of modules into a single AOT
// unit: one callable entrypoint per code hash, held in memory in the
// process that called Link. Nothing is written to disk, so an Artifact
// cannot be loaded back in another process.
type Artifact struct {
	Entries map[types.Hash]backend.Func
}

// Link combines modules (code hash -> compiled Func) into a single
// Artifact. The real AOT path would serialize backend object code to a
// shared object on disk and reload it as native pointers; since this
// module's only shipped backend is refvm, a pure-Go in-process stand-in,
// Link keeps the functions as Go closures rather than writing machine
// code to outpath -- see DESIGN.md.
func Link(modules map[types.Hash]backend.Func, outpath string) (*Artifact, error) {
	if outpath == "" {
		return nil, fmt.Errorf("linker: Link requires a non-empty outpath")
	}
	entries := make(map[types.Hash]backend.Func, len(modules))
	for h, fn := range modules {
		entries[h] = fn
	}
	logger.Info("linked AOT artifact", "outpath", outpath, "functions", len(entries))
	return &Artifact{Entries: entries}, nil
}

// Lookup returns the function for hash, if present in the artifact.
func (a *Artifact) Lookup(hash types.Hash) (backend.Func, bool) {
	fn, ok := a.Entries[hash]
	return fn, ok
}
