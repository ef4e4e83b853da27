// Package saves keeps the battery-backed RAM of a cartridge in a file.
//
// A Save holds an in-memory image of the cartridge RAM which is updated
// on every RAM write, and written to disk on Flush. Files are named
// after the cartridge title and a hash of the ROM, so that two ROMs
// sharing a title never share a save:
//
//	<dir>/<title>-<xxhash64 of ROM>.sav
package saves

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cespare/xxhash"
	"github.com/thelolagemann/gomeboy-core/pkg/utils"
)

const (
	// Ext is the extension of save files.
	Ext = ".sav"

	bankSize = 0x2000
)

// ErrSize is returned when an existing save file does not match the RAM
// size of the cartridge.
var ErrSize = errors.New("saves: save file size mismatch")

// Save is the battery RAM image of one cartridge.
type Save struct {
	b     []byte
	dirty bool

	// Path is the location of the save file.
	Path string
}

// Name returns the file name used for the given ROM.
func Name(title string, rom []byte) string {
	title = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '_'
		}
		return -1
	}, title)
	if title == "" {
		title = "untitled"
	}
	return fmt.Sprintf("%s-%016x%s", title, xxhash.Sum64(rom), Ext)
}

// Open returns the save for rom in dir, creating dir if needed. An
// existing file is loaded; otherwise the save starts zeroed and nothing
// is written until the first Flush.
func Open(dir string, rom []byte, title string, size int) (*Save, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	s := &Save{Path: filepath.Join(dir, Name(title, rom))}
	b, err := utils.LoadFile(s.Path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		s.b = make([]byte, size)
	case err != nil:
		return nil, err
	case len(b) != size:
		return nil, fmt.Errorf("%w: %s is %d bytes, expected %d", ErrSize, s.Path, len(b), size)
	default:
		s.b = b
	}
	return s, nil
}

// Bytes returns the RAM image. The slice is shared with the save.
func (s *Save) Bytes() []byte {
	return s.b
}

// Dirty reports whether the image changed since the last Flush.
func (s *Save) Dirty() bool {
	return s.dirty
}

// OnRAMChanged records a write to cartridge RAM. Its signature matches
// cartridge.RAMChangedFunc.
func (s *Save) OnRAMChanged(bank, offset int, value uint8) {
	i := bank*bankSize + offset
	if i >= len(s.b) || s.b[i] == value {
		return
	}
	s.b[i] = value
	s.dirty = true
}

// Flush writes the image to disk if it changed. The file is replaced
// atomically, so a crash never leaves a partial save behind.
func (s *Save) Flush() error {
	if !s.dirty {
		return nil
	}
	if err := utils.WriteFileAtomic(s.Path, s.b); err != nil {
		return fmt.Errorf("saves: writing %s: %w", s.Path, err)
	}
	s.dirty = false
	return nil
}

// Close flushes the save.
func (s *Save) Close() error {
	return s.Flush()
}

// List returns the save files in dir, newest first.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	type file struct {
		path    string
		modTime int64
	}
	var files []file
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != Ext {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, err
		}
		files = append(files, file{filepath.Join(dir, e.Name()), info.ModTime().UnixNano()})
	}
	sort.SliceStable(files, func(i, j int) bool {
		return files[i].modTime > files[j].modTime
	})

	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.path
	}
	return paths, nil
}
