// Package git maintains the optional git-status overlay for a tree root:
// a repository handle discovered once per root, and a path -> status map
// rebuilt wholesale on demand. A root outside any repository is not an
// error; the overlay is simply absent and every lookup yields StatusNone.
package git

// Status is the working-tree state of one path.
type Status uint8

const (
	StatusNone Status = iota
	StatusUntracked
	StatusModified
	StatusStaged
	StatusRenamed
	StatusIgnored
	StatusUnmerged
	StatusDeleted
	StatusUnknown
)

var statusNames = [...]string{
	StatusNone:      "none",
	StatusUntracked: "untracked",
	StatusModified:  "modified",
	StatusStaged:    "staged",
	StatusRenamed:   "renamed",
	StatusIgnored:   "ignored",
	StatusUnmerged:  "unmerged",
	StatusDeleted:   "deleted",
	StatusUnknown:   "unknown",
}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "unknown"
}
