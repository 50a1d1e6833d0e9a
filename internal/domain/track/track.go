// Package track provides the Track domain entity.
package track

import "path/filepath"

// Track represents a playable entry in the library directory.
// The player receives Name as its argument, relative to the library directory.
type Track struct {
	Name  string // Entry name inside the library directory
	Dir   string // Library directory the entry was listed from
	IsDir bool   // Entry is a subdirectory
}

// New creates a track for the entry name listed from dir.
func New(dir, name string, isDir bool) Track {
	return Track{
		Name:  name,
		Dir:   dir,
		IsDir: isDir,
	}
}

// Path returns the track location joined with its library directory.
func (t Track) Path() string {
	if t.Dir == "" {
		return t.Name
	}
	return filepath.Join(t.Dir, t.Name)
}

// Ext returns the file extension of the entry name, including the dot.
func (t Track) Ext() string {
	return filepath.Ext(t.Name)
}

// IsHidden reports whether the entry is a dot-entry.
func (t Track) IsHidden() bool {
	return len(t.Name) > 0 && t.Name[0] == '.'
}
