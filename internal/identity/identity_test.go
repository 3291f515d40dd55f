package identity

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/statsmc/mcstats/internal/remote"
)

// writeFile creates path (and parents) under root.
func writeFile(t *testing.T, root, rel string, data []byte) {
	t.Helper()
	full := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, data, 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadNames(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "usercache.json", []byte(`[
		{"name": "Steve", "uuid": "01234567-89ab-cdef-0123-456789abcdef", "expiresOn": "2026-01-01"},
		{"name": "Alex", "uuid": "deadbeefdeadbeefdeadbeefdeadbeef"}
	]`))

	src := remote.DirSource(root)
	defer src.Close()

	names, status, err := LoadNames(src, "/usercache.json")
	if status != Loaded || err != nil {
		t.Fatalf("status %v, err %v", status, err)
	}
	// Dashed and undashed ids resolve to the same entry.
	if got := names.Resolve("01234567-89ab-cdef-0123-456789abcdef"); got != "Steve" {
		t.Errorf("dashed id resolved to %q", got)
	}
	if got := names.Resolve("0123456789abcdef0123456789abcdef"); got != "Steve" {
		t.Errorf("undashed id resolved to %q", got)
	}
	if got := names.Resolve("deadbeefdeadbeefdeadbeefdeadbeef"); got != "Alex" {
		t.Errorf("second entry resolved to %q", got)
	}
}

func TestResolveFallback(t *testing.T) {
	names := NameTable{}
	id := "ffffffffffffffffffffffffffffffff"
	if got := names.Resolve(id); got != id {
		t.Errorf("Resolve fallback = %q, want the raw id", got)
	}
}

func TestLoadNamesAbsent(t *testing.T) {
	src := remote.DirSource(t.TempDir())
	defer src.Close()

	names, status, err := LoadNames(src, "/usercache.json")
	if status != Absent {
		t.Errorf("status = %v, want Absent", status)
	}
	if err == nil {
		t.Error("expected underlying read error")
	}
	if len(names) != 0 {
		t.Errorf("expected empty table, got %d entries", len(names))
	}
}

func TestLoadNamesMalformed(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "usercache.json", []byte(`{"oops": true}`))

	src := remote.DirSource(root)
	defer src.Close()

	_, status, err := LoadNames(src, "/usercache.json")
	if status != Malformed {
		t.Errorf("status = %v, want Malformed", status)
	}
	if err == nil {
		t.Error("expected decode error")
	}
}

// skinDoc builds a SkinRestorer-style file declaring the given texture URL.
func skinDoc(t *testing.T, url string) []byte {
	t.Helper()
	inner, err := json.Marshal(map[string]any{
		"textures": map[string]any{
			"SKIN": map[string]any{"url": url},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	outer, err := json.Marshal(map[string]any{
		"value": map[string]any{
			"value": base64.StdEncoding.EncodeToString(inner),
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return outer
}

func TestLoadSkins(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "world/skinrestorer/01234567-89ab-cdef-0123-456789abcdef.json",
		skinDoc(t, "http://textures.minecraft.net/texture/abc123hash"))
	writeFile(t, root, "world/skinrestorer/broken.json", []byte(`not json`))
	writeFile(t, root, "world/skinrestorer/readme.txt", []byte(`ignored`))

	src := remote.DirSource(root)
	defer src.Close()

	skins, status, skipped := LoadSkins(src, "/world/skinrestorer")
	if status != Loaded {
		t.Fatalf("status = %v, want Loaded", status)
	}
	if skipped != 1 {
		t.Errorf("skipped = %d, want 1 (the broken file)", skipped)
	}
	if got := skins["0123456789abcdef0123456789abcdef"]; got != "abc123hash" {
		t.Errorf("texture hash = %q, want abc123hash", got)
	}
}

func TestLoadSkinsAbsent(t *testing.T) {
	src := remote.DirSource(t.TempDir())
	defer src.Close()

	skins, status, _ := LoadSkins(src, "/world/skinrestorer")
	if status != Absent || len(skins) != 0 {
		t.Errorf("status = %v with %d entries, want Absent and empty", status, len(skins))
	}
}

func TestAvatarURL(t *testing.T) {
	skins := SkinTable{"0123456789abcdef0123456789abcdef": "texhash"}

	withSkin := skins.AvatarURL("01234567-89ab-cdef-0123-456789abcdef", "Steve", 80)
	if want := "https://mc-heads.net/avatar/texhash/80"; withSkin != want {
		t.Errorf("AvatarURL = %q, want %q", withSkin, want)
	}

	fallback := skins.AvatarURL("ffffffffffffffffffffffffffffffff", "Alex", 64)
	if want := fmt.Sprintf("https://mc-heads.net/avatar/%s/%d", "Alex", 64); fallback != want {
		t.Errorf("fallback AvatarURL = %q, want %q", fallback, want)
	}
}
