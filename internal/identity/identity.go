// Package identity resolves player UUIDs to display names and skin textures.
// Both lookups are best effort: a missing or corrupt source yields an empty
// table plus a status the caller can log, never an aborted run.
package identity

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/statsmc/mcstats/internal/model"
	"github.com/statsmc/mcstats/internal/remote"
)

// Status distinguishes "source not present" from "present but corrupt" for
// the optional identity sources.
type Status int

const (
	Loaded Status = iota
	Absent
	Malformed
)

func (s Status) String() string {
	switch s {
	case Loaded:
		return "loaded"
	case Absent:
		return "absent"
	case Malformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// NameTable maps normalized player UUIDs to display names.
type NameTable map[string]string

// Resolve returns the display name for id, falling back to the raw id when
// the cache has no entry.
func (t NameTable) Resolve(id string) string {
	if name, ok := t[model.NormalizeID(id)]; ok {
		return name
	}
	return id
}

// cacheEntry is one element of the server's usercache.json array.
type cacheEntry struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
}

// LoadNames reads the player-name cache at cachePath. An unreadable file
// reports Absent; a file that is not a JSON array of {uuid,name} reports
// Malformed. Both return an empty table.
func LoadNames(src remote.Source, cachePath string) (NameTable, Status, error) {
	data, err := src.ReadFile(cachePath)
	if err != nil {
		return NameTable{}, Absent, err
	}
	var entries []cacheEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return NameTable{}, Malformed, fmt.Errorf("decode %s: %w", cachePath, err)
	}
	table := make(NameTable, len(entries))
	for _, e := range entries {
		if e.UUID == "" || e.Name == "" {
			continue
		}
		table[model.NormalizeID(e.UUID)] = e.Name
	}
	return table, Loaded, nil
}

// SkinTable maps normalized player UUIDs to skin texture hashes.
type SkinTable map[string]string

// AvatarURL returns the avatar URL for a player: texture-keyed when the skin
// metadata declared one, otherwise name-keyed so the avatar service falls
// back to the account's default skin.
func (t SkinTable) AvatarURL(id, name string, size int) string {
	if hash, ok := t[model.NormalizeID(id)]; ok {
		return fmt.Sprintf("https://mc-heads.net/avatar/%s/%d", hash, size)
	}
	return fmt.Sprintf("https://mc-heads.net/avatar/%s/%d", name, size)
}

// skinFile is the outer SkinRestorer document: the meaningful payload is a
// base64-encoded JSON blob under value.value.
type skinFile struct {
	Value struct {
		Value string `json:"value"`
	} `json:"value"`
}

// textureBlob is the decoded inner payload.
type textureBlob struct {
	Textures struct {
		Skin struct {
			URL string `json:"url"`
		} `json:"SKIN"`
	} `json:"textures"`
}

// LoadSkins reads every per-player skin metadata file in dir and extracts the
// texture hash (the final path segment of the declared skin URL). The whole
// directory being unavailable reports Absent; individual bad files are
// counted and skipped, and the table still reports Loaded.
func LoadSkins(src remote.Source, dir string) (SkinTable, Status, int) {
	names, err := src.ListJSON(dir)
	if err != nil {
		return SkinTable{}, Absent, 0
	}
	table := make(SkinTable)
	skipped := 0
	for _, name := range names {
		uuid := strings.TrimSuffix(name, ".json")
		hash, err := textureHash(src, path.Join(dir, name))
		if err != nil {
			skipped++
			continue
		}
		table[model.NormalizeID(uuid)] = hash
	}
	return table, Loaded, skipped
}

func textureHash(src remote.Source, filePath string) (string, error) {
	data, err := src.ReadFile(filePath)
	if err != nil {
		return "", err
	}
	var outer skinFile
	if err := json.Unmarshal(data, &outer); err != nil {
		return "", fmt.Errorf("decode outer skin document: %w", err)
	}
	decoded, err := base64.StdEncoding.DecodeString(outer.Value.Value)
	if err != nil {
		return "", fmt.Errorf("decode texture payload: %w", err)
	}
	var inner textureBlob
	if err := json.Unmarshal(decoded, &inner); err != nil {
		return "", fmt.Errorf("decode texture JSON: %w", err)
	}
	url := inner.Textures.Skin.URL
	if url == "" {
		return "", fmt.Errorf("no SKIN texture URL")
	}
	segs := strings.Split(url, "/")
	return segs[len(segs)-1], nil
}
