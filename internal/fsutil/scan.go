package fsutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// SortPolicy controls sibling ordering within a directory listing.
// Directories always sort before files regardless of policy.
type SortPolicy uint8

const (
	SortByName SortPolicy = iota
	SortBySize
	SortByTime
)

// Entry is one directory entry returned by Scan, with metadata already
// resolved so callers never have to stat again.
type Entry struct {
	Name      string
	Path      string // absolute
	Info      fs.FileInfo
	IsLink    bool
	TargetDir bool // symlink points at a directory
}

// IsDir reports whether the entry behaves as a directory, following
// symlinks so that a link to a directory can be expanded in the tree.
func (e Entry) IsDir() bool {
	return e.Info.IsDir() || (e.IsLink && e.TargetDir)
}

// Scan lists dir and returns its entries sorted directories-first.
// Names starting with a dot are filtered out unless showIgnored is set.
// Any error aborts the scan; partial listings are never returned.
func Scan(dir string, showIgnored bool, policy SortPolicy) ([]Entry, error) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(dirents))
	for _, de := range dirents {
		name := de.Name()
		if !showIgnored && len(name) > 0 && name[0] == '.' {
			continue
		}
		info, err := de.Info()
		if err != nil {
			return nil, err
		}
		e := Entry{
			Name:   name,
			Path:   filepath.Join(dir, name),
			Info:   info,
			IsLink: info.Mode()&fs.ModeSymlink != 0,
		}
		if e.IsLink {
			if target, err := os.Stat(e.Path); err == nil && target.IsDir() {
				e.TargetDir = true
			}
		}
		entries = append(entries, e)
	}

	sortEntries(entries, policy)
	return entries, nil
}

func sortEntries(entries []Entry, policy SortPolicy) {
	sort.SliceStable(entries, func(i, j int) bool {
		di, dj := entries[i].IsDir(), entries[j].IsDir()
		if di != dj {
			return di
		}
		switch policy {
		case SortBySize:
			if entries[i].Info.Size() != entries[j].Info.Size() {
				return entries[i].Info.Size() < entries[j].Info.Size()
			}
		case SortByTime:
			ti, tj := entries[i].Info.ModTime(), entries[j].Info.ModTime()
			if !ti.Equal(tj) {
				return ti.After(tj)
			}
		}
		// Byte-wise comparison, deliberately not locale- or case-folded.
		return entries[i].Name < entries[j].Name
	})
}
