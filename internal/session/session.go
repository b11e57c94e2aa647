// Package session holds the interactive application state: the loaded
// archive plus the user's current run/file selections, in one explicit
// state object. Front ends bind to it through observer callbacks instead
// of reaching into shared variables.
package session

import (
	"fmt"

	"github.com/couchcryptid/wxplot/internal/domain"
)

// SelectionError reports a selection with no available data. It surfaces
// to the user as an "invalid selection" message, never as a fatal error.
type SelectionError struct {
	Run  string
	File string
}

func (e *SelectionError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("no data for run %q", e.Run)
	}
	return fmt.Sprintf("no data for %s/%s", e.Run, e.File)
}

// Listener is notified after any selection change.
type Listener func(s *Session)

// Session is the explicit application state object.
type Session struct {
	archive   *domain.Archive
	run       string
	file      string
	listeners []Listener
}

// New wraps a loaded archive with empty selections.
func New(archive *domain.Archive) *Session {
	return &Session{archive: archive}
}

// Subscribe registers a listener for selection changes. Listeners run
// synchronously on the selecting goroutine, in registration order.
func (s *Session) Subscribe(fn Listener) {
	s.listeners = append(s.listeners, fn)
}

func (s *Session) notify() {
	for _, fn := range s.listeners {
		fn(s)
	}
}

// Runs returns the selectable run names.
func (s *Session) Runs() []string { return s.archive.Runs() }

// Files returns the selectable files for the current run.
func (s *Session) Files() []string {
	files, ok := s.archive.Files(s.run)
	if !ok {
		return nil
	}
	return files
}

// Run returns the current run selection, empty when unset.
func (s *Session) Run() string { return s.run }

// File returns the current file selection, empty when unset.
func (s *Session) File() string { return s.file }

// SelectRun validates and applies a run selection, clearing any file
// selection that no longer applies.
func (s *Session) SelectRun(run string) error {
	if _, ok := s.archive.Files(run); !ok {
		return &SelectionError{Run: run}
	}
	s.run = run
	s.file = ""
	s.notify()
	return nil
}

// SelectFile validates and applies a file selection within the current run.
func (s *Session) SelectFile(file string) error {
	if _, ok := s.archive.Get(s.run, file); !ok {
		return &SelectionError{Run: s.run, File: file}
	}
	s.file = file
	s.notify()
	return nil
}

// Sheets returns the sheets of the current selection.
func (s *Session) Sheets() ([]domain.Sheet, error) {
	sheets, ok := s.archive.Get(s.run, s.file)
	if !ok {
		return nil, &SelectionError{Run: s.run, File: s.file}
	}
	return sheets, nil
}

// Lookup fetches sheets for an arbitrary run/file pair without touching
// the current selection. Multi-variable charts use it for their secondary
// selections.
func (s *Session) Lookup(run, file string) ([]domain.Sheet, error) {
	sheets, ok := s.archive.Get(run, file)
	if !ok {
		return nil, &SelectionError{Run: run, File: file}
	}
	return sheets, nil
}
