// Package clipboard holds the copy/move staging area shared by every tree
// instance. It is an explicit service object rather than package state so
// the orchestrator owns its lifetime, and Do lets paste read the mode, read
// the contents and perform the consuming filesystem work inside a single
// critical section.
package clipboard

import "sync"

// Mode tags how staged paths should be consumed by paste.
type Mode uint8

const (
	ModeNone Mode = iota
	ModeCopy
	ModeMove
)

func (m Mode) String() string {
	switch m {
	case ModeCopy:
		return "copy"
	case ModeMove:
		return "move"
	default:
		return "none"
	}
}

// Service is the shared clipboard.
type Service struct {
	mu    sync.Mutex
	paths []string
	mode  Mode
}

// New returns an empty clipboard service.
func New() *Service { return &Service{} }

// Set replaces the staged paths and mode.
func (s *Service) Set(paths []string, mode Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paths = append([]string(nil), paths...)
	s.mode = mode
}

// Snapshot returns a copy of the staged paths and the current mode.
func (s *Service) Snapshot() ([]string, Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.paths...), s.mode
}

// Do runs fn with the staged paths and mode while holding the clipboard
// lock, so no concurrent Set can change the mode between the snapshot and
// its use. A move consumes the clipboard when fn succeeds.
func (s *Service) Do(fn func(paths []string, mode Mode) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(append([]string(nil), s.paths...), s.mode); err != nil {
		return err
	}
	if s.mode == ModeMove {
		s.paths = nil
		s.mode = ModeNone
	}
	return nil
}

// Clear empties the clipboard.
func (s *Service) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paths = nil
	s.mode = ModeNone
}
