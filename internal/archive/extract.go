// Package archive unpacks zip archives with per-entry progress,
// path-traversal protection, and cooperative cancellation.
package archive

import (
	"archive/zip"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/extpack-labs/extpack/internal/faults"
)

const copyChunkSize = 32 * 1024

// ProgressFunc receives extraction progress in [0,1].
type ProgressFunc func(fraction float64)

// Extract unpacks the zip archive at zipPath into destDir, creating
// parent directories as needed even for archives that carry no explicit
// directory entries. Progress is reported as entriesProcessed/totalEntries.
//
// Every entry's resolved path is verified to lie strictly inside destDir;
// an entry escaping the destination aborts the whole extraction with a
// security fault and nothing further is written. Cancellation is checked
// between chunk copies; partially written files are left in place.
func Extract(ctx context.Context, zipPath, destDir string, onProgress ProgressFunc) error {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return faults.IO(err, "opening archive %s", zipPath)
	}
	defer r.Close()

	destRoot, err := filepath.Abs(destDir)
	if err != nil {
		return faults.IO(err, "resolving destination %s", destDir)
	}

	total := len(r.File)
	for i, f := range r.File {
		if err := extractEntry(ctx, f, destRoot); err != nil {
			return err
		}
		if onProgress != nil {
			onProgress(float64(i+1) / float64(total))
		}
	}
	return nil
}

func extractEntry(ctx context.Context, f *zip.File, destRoot string) error {
	target, err := secureJoin(destRoot, f.Name)
	if err != nil {
		return err
	}

	if f.FileInfo().IsDir() {
		if err := os.MkdirAll(target, 0o755); err != nil {
			return faults.IO(err, "creating directory %s", target)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return faults.IO(err, "creating parent directory for %s", target)
	}

	src, err := f.Open()
	if err != nil {
		return faults.IO(err, "opening archive entry %s", f.Name)
	}
	defer src.Close()

	dst, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return faults.IO(err, "creating %s", target)
	}
	defer dst.Close()

	buf := make([]byte, copyChunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return faults.Canceled(err)
		}
		n, readErr := src.Read(buf)
		if n > 0 {
			if _, writeErr := dst.Write(buf[:n]); writeErr != nil {
				return faults.IO(writeErr, "writing %s", target)
			}
		}
		if readErr == io.EOF {
			return nil
		}
		if readErr != nil {
			return faults.IO(readErr, "reading archive entry %s", f.Name)
		}
	}
}

// secureJoin resolves name under root and rejects entries that escape it.
func secureJoin(root, name string) (string, error) {
	target := filepath.Join(root, filepath.FromSlash(name))
	if target != root && !strings.HasPrefix(target, root+string(os.PathSeparator)) {
		return "", faults.Security("archive entry %q resolves outside destination", name)
	}
	return target, nil
}

// IsZip reports whether path names a zip archive that should be unpacked
// after download. Jar files are zip-format too but are kept packed for
// the loader, so only the .zip extension counts.
func IsZip(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".zip")
}
