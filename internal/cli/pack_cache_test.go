package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestComputeInputsHashStableRegardlessOfDiscoveryOrder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFixture(t, filepath.Join(dir, "a.png"), []byte("aaa"))
	writeFixture(t, filepath.Join(dir, "b.png"), []byte("bbb"))

	opts := &CmdPack{}
	opts.Args.Input = dir

	forward := []spriteFile{{path: filepath.Join(dir, "a.png")}, {path: filepath.Join(dir, "b.png")}}
	reverse := []spriteFile{{path: filepath.Join(dir, "b.png")}, {path: filepath.Join(dir, "a.png")}}

	h1, err := computeInputsHash(opts, forward)
	if err != nil {
		t.Fatalf("computeInputsHash: %v", err)
	}
	h2, err := computeInputsHash(opts, reverse)
	if err != nil {
		t.Fatalf("computeInputsHash: %v", err)
	}

	if h1 != h2 {
		t.Fatalf("hash depends on discovery order: %x != %x", h1, h2)
	}
}

func TestComputeInputsHashChangesWithContent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "a.png")
	writeFixture(t, path, []byte("aaa"))

	opts := &CmdPack{}
	opts.Args.Input = dir

	before, err := computeInputsHash(opts, []spriteFile{{path: path}})
	if err != nil {
		t.Fatalf("computeInputsHash: %v", err)
	}

	writeFixture(t, path, []byte("changed"))

	after, err := computeInputsHash(opts, []spriteFile{{path: path}})
	if err != nil {
		t.Fatalf("computeInputsHash: %v", err)
	}

	if before == after {
		t.Fatalf("hash did not change after content change")
	}
}

func TestComputeInputsHashChangesWithPackSettings(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "a.png")
	writeFixture(t, path, []byte("aaa"))
	sprites := []spriteFile{{path: path}}

	base := &CmdPack{Width: 1024, Height: 1024}
	base.Args.Input = dir
	withRotate := &CmdPack{Width: 1024, Height: 1024, Rotate: true}
	withRotate.Args.Input = dir

	h1, err := computeInputsHash(base, sprites)
	if err != nil {
		t.Fatalf("computeInputsHash: %v", err)
	}
	h2, err := computeInputsHash(withRotate, sprites)
	if err != nil {
		t.Fatalf("computeInputsHash: %v", err)
	}

	if h1 == h2 {
		t.Fatalf("hash unchanged after --rotate flipped, want cache invalidated")
	}
}

func TestCacheHashRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "x.rectbinhash")
	if err := writeCacheHash(path, 0xdeadbeef); err != nil {
		t.Fatalf("writeCacheHash: %v", err)
	}

	got, ok, err := readCacheHash(path)
	if err != nil || !ok {
		t.Fatalf("readCacheHash: got=%v ok=%v err=%v", got, ok, err)
	}
	if got != 0xdeadbeef {
		t.Fatalf("readCacheHash = %x, want deadbeef", got)
	}
}

func TestReadCacheHashMissingFile(t *testing.T) {
	t.Parallel()

	_, ok, err := readCacheHash(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("readCacheHash on missing file returned error: %v", err)
	}
	if ok {
		t.Fatalf("readCacheHash on missing file reported ok=true")
	}
}

func TestShouldSkipPackRequiresManifestPresent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cachePath := filepath.Join(dir, "x.rectbinhash")
	manifestPath := filepath.Join(dir, "x.rectbin.yaml")

	if err := writeCacheHash(cachePath, 42); err != nil {
		t.Fatalf("writeCacheHash: %v", err)
	}

	if shouldSkipPack(cachePath, manifestPath, 42) {
		t.Fatalf("shouldSkipPack returned true before manifest exists")
	}

	writeFixture(t, manifestPath, []byte("name: x\n"))

	if !shouldSkipPack(cachePath, manifestPath, 42) {
		t.Fatalf("shouldSkipPack returned false once manifest and hash match")
	}
	if shouldSkipPack(cachePath, manifestPath, 43) {
		t.Fatalf("shouldSkipPack returned true for a mismatched hash")
	}
}

func writeFixture(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write fixture %q: %v", path, err)
	}
}
