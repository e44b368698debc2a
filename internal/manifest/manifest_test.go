package manifest

import (
	"bytes"
	"path/filepath"
	"testing"
)

func TestWriteReadRoundTrip(t *testing.T) {
	t.Parallel()

	m := &Manifest{
		Name:        "ui",
		TextureSize: [2]int{512, 512},
		Textures:    []TextureEntry{{Path: "ui.png"}},
		Sprites: []SpriteEntry{
			{Name: "button_ok", Texture: 0, Position: [2]int{0, 0}, Size: [2]int{64, 32}},
			{Name: "button_cancel", Texture: 0, Position: [2]int{64, 0}, Size: [2]int{64, 32}, Rotated: true},
		},
		Groups: []SpriteGroup{
			{Name: "icons", Sprites: []SpriteEntry{
				{Name: "icon_a", Texture: 0, Position: [2]int{0, 32}, Size: [2]int{16, 16}},
			}},
		},
	}

	path := filepath.Join(t.TempDir(), "ui.rectbin.yaml")
	if err := WriteFile(path, m); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	if got.Name != m.Name || got.TextureSize != m.TextureSize {
		t.Fatalf("round-tripped header = %+v, want name=%q size=%v", got, m.Name, m.TextureSize)
	}
	if len(got.Sprites) != len(m.Sprites) || got.Sprites[1].Rotated != true {
		t.Fatalf("round-tripped sprites = %+v", got.Sprites)
	}
	if len(got.Groups) != 1 || len(got.Groups[0].Sprites) != 1 {
		t.Fatalf("round-tripped groups = %+v", got.Groups)
	}
}

func TestWriteEmitsNameField(t *testing.T) {
	t.Parallel()

	m := &Manifest{Name: "x", TextureSize: [2]int{2, 2}}

	var buf bytes.Buffer
	if err := Write(&buf, m); err != nil {
		t.Fatalf("Write: %v", err)
	}

	if !bytes.Contains(buf.Bytes(), []byte("name: x")) {
		t.Fatalf("yaml output missing expected field: %s", buf.String())
	}
}
