package shell

import (
	"os"
	"sync"
)

// Workdir is the process-wide working-directory value used in prompt
// rendering.  The underlying directory really is process-wide (cd runs
// os.Chdir), so all sessions share one Workdir; unlike the unguarded
// global it replaces, reads and refreshes are serialized by a mutex so
// concurrent sessions always observe a consistent string.
type Workdir struct {
	mu   sync.RWMutex
	path string
}

// NewWorkdir returns a Workdir primed with the current directory.
func NewWorkdir() *Workdir {
	w := &Workdir{}
	w.Refresh()
	return w
}

// Path returns the last refreshed directory string.
func (w *Workdir) Path() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.path
}

// Refresh re-reads the process working directory.  Sessions call this
// when a handler returns DirChanged.
func (w *Workdir) Refresh() {
	wd, err := os.Getwd()
	if err != nil {
		wd = ""
	}
	w.mu.Lock()
	w.path = wd
	w.mu.Unlock()
}
