package compiler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/evmc-go/evmc/crypto"
	"github.com/evmc-go/evmc/translator"
)

// dump writes a human-readable block listing for mod to cfg.DumpTo,
// named by the code's hash. It has no effect on compiled semantics
// -- it runs only as a debugging aid.
func (c *Compiler) dump(code []byte, mod *translator.Module) {
	hash := crypto.Keccak256Hash(code)
	if err := os.MkdirAll(c.cfg.DumpTo, 0o755); err != nil {
		logger.Warn("dump: mkdir failed", "err", err)
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "; contract %s, %d bytes, %d blocks\n", hash.Hex(), len(code), len(mod.Blocks))
	for i, blk := range mod.Blocks {
		fmt.Fprintf(&sb, "block %d: [%d,%d] stack[%d,%d] gas=%d dynamicGas=%v term=%s\n",
			i, blk.Start, blk.End, blk.MinIn, blk.MaxIn, blk.StaticGas, blk.HasDynamicGas, blk.Terminator)
	}

	path := filepath.Join(c.cfg.DumpTo, hash.Hex()+".txt")
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		logger.Warn("dump: write failed", "path", path, "err", err)
	}
}
