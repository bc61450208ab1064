// Package source indexes source buffers, mapping byte offsets to
// (file, line, column) triples and interning file paths so the rest
// of the pipeline can carry a cheap identifier instead of a string.
package source

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// File is an interned source buffer: its text plus a precomputed
// table of line-start offsets used for fast offset -> (line, column)
// lookups.
type File struct {
	ID         uuid.UUID
	Name       string
	Text       string
	lineStarts []int
}

func newFile(name, text string) *File {
	f := &File{ID: uuid.New(), Name: name, Text: text}
	f.lineStarts = []int{0}
	for i, r := range text {
		if r == '\n' {
			f.lineStarts = append(f.lineStarts, i+1)
		}
	}
	return f
}

// Position returns the 1-based line and column for a byte offset.
func (f *File) Position(offset int) (line, column int) {
	lo, hi := 0, len(f.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if f.lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	line = lo + 1
	column = offset - f.lineStarts[lo] + 1
	return
}

// Line returns the full text of the given 1-based line number, with
// any trailing newline stripped. Used to render caret diagnostics.
func (f *File) Line(n int) string {
	if n < 1 || n > len(f.lineStarts) {
		return ""
	}
	start := f.lineStarts[n-1]
	end := len(f.Text)
	if n < len(f.lineStarts) {
		end = f.lineStarts[n] - 1
	}
	if end < start {
		end = start
	}
	return strings.TrimSuffix(f.Text[start:end], "\r")
}

// Manager interns source files by name, giving each File a stable
// uuid. Token locations and the #env/#list commands refer to files by
// name.
type Manager struct {
	mu    sync.RWMutex
	files map[string]*File
}

func NewManager() *Manager {
	return &Manager{files: make(map[string]*File)}
}

// Intern registers (or returns the cached) File for name+text. Re-adding
// the same name with different text replaces the cached entry, matching
// a REPL's "redefine this buffer" use case.
func (m *Manager) Intern(name, text string) *File {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f, ok := m.files[name]; ok && f.Text == text {
		return f
	}
	f := newFile(name, text)
	m.files[name] = f
	return f
}

func (m *Manager) Lookup(name string) (*File, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.files[name]
	return f, ok
}

func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.files))
	for n := range m.files {
		out = append(out, n)
	}
	return out
}
