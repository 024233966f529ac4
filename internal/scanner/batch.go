package scanner

import (
	"context"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/redactyl/sanitizer/internal/cache"
	"github.com/redactyl/sanitizer/internal/ignore"
)

func workerCount(threads int) int {
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}
	if threads > 32 {
		threads = 32
	}
	return threads
}

// ScanBatch scans every input with s using up to cfg.Threads workers. The
// returned slice is aligned with inputs. Inputs with identical content are
// scanned once. Cancelling ctx stops scheduling new inputs; scans already
// running finish.
func ScanBatch(ctx context.Context, s Scanner, inputs []Input, cfg Config) ([]Output, error) {
	out := make([]Output, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount(cfg.Threads))

	memo := cache.New()
	var mu sync.Mutex
	for i, in := range inputs {
		i, in := i, in
		if err := gctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			k := cache.KeyOf(in.Data)
			r, ok := memo.Get(k)
			if !ok {
				r = s.Scan(string(in.Data), cfg.Trust)
				memo.Put(k, r)
			}
			out[i] = Output{Path: in.Path, ScanResult: r}
			if cfg.Progress != nil {
				mu.Lock()
				cfg.Progress()
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ScanTree walks cfg.Root and scans every eligible file.
func ScanTree(ctx context.Context, s Scanner, cfg Config) (Result, error) {
	var res Result
	started := time.Now()

	ign, _ := ignore.Load(filepath.Join(cfg.Root, ignore.FileName))
	var inputs []Input
	err := Walk(ctx, cfg, ign, func(p string, data []byte) {
		inputs = append(inputs, Input{Path: p, Data: data})
	})
	if err != nil {
		return res, err
	}

	outs, err := ScanBatch(ctx, s, inputs, cfg)
	if err != nil {
		return res, err
	}
	res.Outputs = outs
	res.FilesScanned = len(outs)
	res.Duration = time.Since(started)
	return res, nil
}
