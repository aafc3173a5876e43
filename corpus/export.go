package corpus

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/unkn0wn-root/arbitrary"
)

const goFuzzHeader = "go test fuzz v1\n"

// GoFuzzFile renders data as a single-argument Go fuzz corpus file, the
// format `go test` reads from testdata/fuzz/<FuzzName>/.
func GoFuzzFile(data []byte) []byte {
	return fmt.Appendf([]byte(goFuzzHeader), "[]byte(%q)\n", data)
}

func (c *corpus[V]) ExportGoFuzz(ctx context.Context, dir string) (int, error) {
	ids, err := c.IDs(ctx)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, err
	}
	n := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		data, ok, err := c.GetRaw(ctx, id)
		if err != nil {
			return n, err
		}
		if !ok {
			continue // dropped since the index was read
		}
		if err := os.WriteFile(filepath.Join(dir, id), GoFuzzFile(data), 0o644); err != nil {
			return n, err
		}
		n++
	}
	c.log.Info("corpus exported", arbitrary.Fields{"ns": c.ns, "dir": dir, "files": n})
	return n, nil
}
