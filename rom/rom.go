// Package rom loads arcade ROM images into the byte slices a board needs,
// matching files by CRC32 first and falling back to filename, the way MAME
// ROM sets (and the emulator this module is modeled on) do it.
package rom

import (
	"archive/zip"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/patsoffice/arcadecore/errors"
)

// LoadError is returned by Region.Load and carries enough detail for a
// front-end to tell the user exactly which file is the problem.
type LoadError struct {
	Region string
	Entry  string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Entry != "" {
		return fmt.Sprintf("region %s, entry %s: %v", e.Region, e.Entry, e.Err)
	}
	return fmt.Sprintf("region %s: %v", e.Region, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Sentinel errors wrapped by LoadError.Err.
var (
	ErrMissingFile       = errors.Errorf("missing ROM file")
	ErrSizeMismatch      = errors.Errorf("ROM size mismatch")
	ErrChecksumMismatch  = errors.Errorf("ROM checksum mismatch")
)

// Set is a case-insensitive filename -> bytes map, the unit a board loads
// its RomRegions out of. It can be built from a directory, a MAME-style
// ZIP, or programmatically (tests construct one from literal byte slices).
type Set struct {
	files map[string][]byte // key: lower-cased filename
}

// NewSet creates an empty Set; use Put to populate it programmatically.
func NewSet() *Set {
	return &Set{files: make(map[string][]byte)}
}

// Put adds or replaces a named file in the set.
func (s *Set) Put(name string, data []byte) {
	s.files[strings.ToLower(name)] = data
}

// FromDirectory builds a Set from every regular file directly inside dir.
func FromDirectory(dir string) (*Set, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading rom directory: %w", err)
	}
	s := NewSet()
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading rom file %s: %w", e.Name(), err)
		}
		s.Put(e.Name(), data)
	}
	return s, nil
}

// FromZip builds a Set from every file in a MAME-style ZIP archive.
func FromZip(path string) (*Set, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening rom zip: %w", err)
	}
	defer zr.Close()

	s := NewSet()
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening zip entry %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading zip entry %s: %w", f.Name, err)
		}
		s.Put(filepath.Base(f.Name), data)
	}
	return s, nil
}

// FileNames returns every filename held in the set, in no particular order.
func (s *Set) FileNames() []string {
	names := make([]string, 0, len(s.files))
	for name := range s.files {
		names = append(names, name)
	}
	return names
}

// Get returns the bytes for name (case-insensitive), or false if absent.
func (s *Set) Get(name string) ([]byte, bool) {
	data, ok := s.files[strings.ToLower(name)]
	return data, ok
}

// FindByCRC32 returns the first file in the set whose CRC32 matches want.
func (s *Set) FindByCRC32(want uint32) ([]byte, bool) {
	for _, data := range s.files {
		if crc32.ChecksumIEEE(data) == want {
			return data, true
		}
	}
	return nil, false
}

// Entry describes one ROM chip's placement within a region: its canonical
// filename, expected size, byte offset inside the assembled region, and the
// CRC32 values considered acceptable (several revisions of a board often
// share a region layout with different chip contents).
type Entry struct {
	Name   string
	Size   int
	Offset int
	CRC32  []uint32
}

// Region describes one contiguous block of ROM assembled from one or more
// Entries, e.g. a banked program ROM built from several EPROMs.
type Region struct {
	Size    int
	Entries []Entry
}

func matchesCRC32(data []byte, want []uint32) bool {
	if len(want) == 0 {
		return true
	}
	got := crc32.ChecksumIEEE(data)
	for _, w := range want {
		if got == w {
			return true
		}
	}
	return false
}

// Load assembles r's bytes out of set, matching each Entry by CRC32 first
// and falling back to filename if no CRC32 match is found anywhere in the
// set. verifyChecksums controls whether a name-fallback match that fails
// CRC32 is accepted (false) or rejected as ErrChecksumMismatch (true).
func (r *Region) Load(name string, set *Set, verifyChecksums bool) ([]byte, error) {
	out := make([]byte, r.Size)

	for _, entry := range r.Entries {
		data, ok := set.FindByCRC32FromList(entry.CRC32)
		if !ok {
			data, ok = set.Get(entry.Name)
			if !ok {
				return nil, &LoadError{Region: name, Entry: entry.Name, Err: ErrMissingFile}
			}
			if verifyChecksums && !matchesCRC32(data, entry.CRC32) {
				return nil, &LoadError{Region: name, Entry: entry.Name, Err: ErrChecksumMismatch}
			}
		}
		if len(data) != entry.Size {
			return nil, &LoadError{Region: name, Entry: entry.Name, Err: ErrSizeMismatch}
		}
		copy(out[entry.Offset:entry.Offset+entry.Size], data)
	}

	return out, nil
}

// FindByCRC32FromList returns the first file in the set matching any of
// wants, or false if wants is empty or nothing matches.
func (s *Set) FindByCRC32FromList(wants []uint32) ([]byte, bool) {
	if len(wants) == 0 {
		return nil, false
	}
	for _, w := range wants {
		if data, ok := s.FindByCRC32(w); ok {
			return data, ok
		}
	}
	return nil, false
}
