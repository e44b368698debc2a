package cli

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// computeInputsHash folds the pack settings that affect the output
// (texture size, spacing, rotation, alpha-keying) together with every
// sprite's content hash, size, and relative path into one digest. Folding
// in the settings, not just the file contents, means a cached manifest is
// correctly invalidated when only a flag like --width or --rotate
// changes between runs, even though no source file was touched.
func computeInputsHash(opts *CmdPack, sprites []spriteFile) (uint64, error) {
	root, err := filepath.Abs(opts.Args.Input)
	if err != nil {
		return 0, fmt.Errorf("resolve input path: %w", err)
	}

	lines := make([]string, 0, len(sprites))
	for _, s := range sprites {
		absPath, err := filepath.Abs(s.path)
		if err != nil {
			return 0, fmt.Errorf("resolve file path %q: %w", s.path, err)
		}

		rel, err := filepath.Rel(root, absPath)
		if err != nil {
			return 0, fmt.Errorf("resolve relative path for %q: %w", absPath, err)
		}

		digest, size, err := hashFileXX(absPath)
		if err != nil {
			return 0, err
		}

		lines = append(lines, fmt.Sprintf("%s\x00%s\x00%d", filepath.ToSlash(rel), digest, size))
	}
	sort.Strings(lines)

	h := xxhash.New()
	if _, err := fmt.Fprintf(h, "cfg\x00%dx%d\x00%d\x00%v\x00%s\x00%v\x00%v\n",
		opts.Width, opts.Height, opts.Spacing, opts.Rotate, opts.AlphaKey, opts.AlphaKeyOff, opts.AlphaKeyAll,
	); err != nil {
		return 0, err
	}
	for _, line := range lines {
		if _, err := h.WriteString(line); err != nil {
			return 0, err
		}
		if _, err := h.Write([]byte{'\n'}); err != nil {
			return 0, err
		}
	}

	return h.Sum64(), nil
}

// shouldSkipPack reports whether a previous pack run already produced the
// manifest for this exact set of inputs and settings.
func shouldSkipPack(cachePath, manifestPath string, nextHash uint64) bool {
	prevHash, ok, err := readCacheHash(cachePath)
	if err != nil || !ok {
		return false
	}
	if prevHash != nextHash {
		return false
	}
	if _, err := os.Stat(manifestPath); err != nil {
		return false
	}

	return true
}

func readCacheHash(path string) (uint64, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("read cache: %w", err)
	}

	if len(data) != 8 {
		return 0, false, nil
	}

	return binary.LittleEndian.Uint64(data), true, nil
}

func writeCacheHash(path string, hash uint64) error {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, hash)
	if err := os.WriteFile(path, buf, 0o600); err != nil {
		return fmt.Errorf("write cache: %w", err)
	}

	return nil
}

func hashFileXX(path string) (string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("open %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return "", 0, fmt.Errorf("stat %q: %w", path, err)
	}

	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", 0, fmt.Errorf("hash %q: %w", path, err)
	}

	return fmt.Sprintf("%016x", h.Sum64()), info.Size(), nil
}
