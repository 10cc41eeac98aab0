package gen

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/vmihailenco/msgpack/v5"
)

// ManifestFile is the name of the manifest written to the target directory
// when FeatureManifest is enabled.
const ManifestFile = ".tablegen.manifest"

// manifestVersion is bumped when the manifest encoding changes. Manifests of
// another version are ignored.
const manifestVersion = 1

// ManifestEntry describes one generated file.
type ManifestEntry struct {
	// Name is the slash separated path relative to the target directory.
	Name   string `msgpack:"name"`
	Digest uint64 `msgpack:"digest"`
	Size   int    `msgpack:"size"`
}

// Manifest lists the files of a generation run.
type Manifest struct {
	Version int             `msgpack:"version"`
	Files   []ManifestEntry `msgpack:"files"`
}

// Digest returns the digest of generated source.
func Digest(src []byte) uint64 {
	return xxhash.Sum64(src)
}

// ReadManifest reads the manifest of dir. A missing manifest, or one of
// another version, reads as an empty manifest.
func ReadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if errors.Is(err, fs.ErrNotExist) {
		return &Manifest{Version: manifestVersion}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	m := &Manifest{}
	if err := msgpack.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	if m.Version != manifestVersion {
		return &Manifest{Version: manifestVersion}, nil
	}
	return m, nil
}

// Write stores the manifest in dir, with its files sorted by name.
func (m *Manifest) Write(dir string) error {
	m.Version = manifestVersion
	slices.SortFunc(m.Files, func(a, b ManifestEntry) int {
		return strings.Compare(a.Name, b.Name)
	})
	data, err := msgpack.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestFile), data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// Lookup returns the entry of the named file.
func (m *Manifest) Lookup(name string) (ManifestEntry, bool) {
	for _, e := range m.Files {
		if e.Name == name {
			return e, true
		}
	}
	return ManifestEntry{}, false
}

// Stale returns the files of m that next does not list.
func (m *Manifest) Stale(next *Manifest) []string {
	var stale []string
	for _, e := range m.Files {
		if _, ok := next.Lookup(e.Name); !ok {
			stale = append(stale, e.Name)
		}
	}
	return stale
}

// removeStale deletes the stale files of previous from dir. Files that were
// edited since they were generated are kept.
func removeStale(dir string, previous, next *Manifest) (removed []string, err error) {
	for _, name := range previous.Stale(next) {
		path := filepath.Join(dir, filepath.FromSlash(name))
		src, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return removed, err
		}
		if e, _ := previous.Lookup(name); Digest(src) != e.Digest {
			continue
		}
		if err := os.Remove(path); err != nil {
			return removed, err
		}
		removed = append(removed, name)
	}
	return removed, nil
}
