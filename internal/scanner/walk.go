package scanner

import (
	"bytes"
	"context"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/redactyl/sanitizer/internal/ignore"
)

// Walk traverses cfg.Root and invokes handle for each eligible file with
// its slash-separated path relative to the root. Unreadable entries are
// skipped. Walk stops early with ctx.Err() when ctx is cancelled.
func Walk(ctx context.Context, cfg Config, ign ignore.Matcher, handle func(path string, data []byte)) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return filepath.WalkDir(cfg.Root, func(p string, d fs.DirEntry, err error) error {
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if p != cfg.Root && cfg.DefaultExcludes && isDefaultDirExcluded(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		rel, ok := eligible(p, d, cfg, ign)
		if !ok {
			return nil
		}
		b, err := os.ReadFile(p)
		if err != nil {
			return nil
		}
		if bytes.Contains(b, []byte(IgnoreDirective)) {
			return nil
		}
		if looksBinary(b) || looksNonTextMIME(rel, b) {
			return nil
		}
		handle(rel, b)
		return nil
	})
}

// eligible applies every filter that does not need the file's content.
func eligible(p string, d fs.DirEntry, cfg Config, ign ignore.Matcher) (string, bool) {
	rel, err := filepath.Rel(cfg.Root, p)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if !allowedByGlobs(rel, cfg) || ign.Match(rel) {
		return "", false
	}
	if cfg.MaxBytes > 0 {
		if info, _ := d.Info(); info != nil && info.Size() > cfg.MaxBytes {
			return "", false
		}
	}
	if cfg.DefaultExcludes && isDefaultFileExcluded(strings.ToLower(rel)) {
		return "", false
	}
	return rel, true
}

func looksBinary(b []byte) bool {
	const sniff = 800
	n := min(len(b), sniff)
	return bytes.IndexByte(b[:n], 0) >= 0
}

// looksNonTextMIME skips content that is clearly not text by extension or
// by a short magic-number check.
func looksNonTextMIME(path string, b []byte) bool {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		if strings.HasPrefix(ct, "image/") || strings.HasPrefix(ct, "video/") || strings.HasPrefix(ct, "audio/") {
			return true
		}
		if strings.Contains(ct, "zip") || strings.Contains(ct, "tar") || strings.Contains(ct, "gzip") {
			return true
		}
	}
	if bytes.HasPrefix(b, []byte("\x89PNG\r\n\x1a\n")) {
		return true
	}
	return bytes.HasPrefix(b, []byte("PK\x03\x04"))
}

// CountTargets estimates how many files Walk would hand out, without
// reading content. Files later dropped by the content sniff are counted.
func CountTargets(cfg Config) (int, error) {
	ign, _ := ignore.Load(filepath.Join(cfg.Root, ignore.FileName))
	count := 0
	err := filepath.WalkDir(cfg.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if p != cfg.Root && cfg.DefaultExcludes && isDefaultDirExcluded(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if _, ok := eligible(p, d, cfg, ign); ok {
			count++
		}
		return nil
	})
	return count, err
}
