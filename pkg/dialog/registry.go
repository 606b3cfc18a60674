// Package dialog tracks which named dialogs are open.
package dialog

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Hook runs after a dialog is opened
type Hook func(name string)

// Registry is a set of open dialogs with per-dialog open hooks
type Registry struct {
	mu    sync.RWMutex
	open  map[string]bool
	hooks map[string][]Hook
}

func NewRegistry() *Registry {
	return &Registry{
		open:  make(map[string]bool),
		hooks: make(map[string][]Hook),
	}
}

// On registers a hook for the named dialog
func (r *Registry) On(name string, hook Hook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks[name] = append(r.hooks[name], hook)
}

// Open marks the dialog open and runs its hooks. Opening an open dialog is a
// no-op.
func (r *Registry) Open(name string) {
	r.mu.Lock()
	if r.open[name] {
		r.mu.Unlock()
		return
	}
	r.open[name] = true
	hooks := append([]Hook(nil), r.hooks[name]...)
	r.mu.Unlock()

	for _, hook := range hooks {
		hook(name)
	}
}

// Close marks the dialog closed
func (r *Registry) Close(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.open, name)
}

// IsOpen reports whether the dialog is open
func (r *Registry) IsOpen(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.open[name]
}

// Confirm asks a yes/no question on out and reads the answer from in.
// Anything but "y" or "yes" is a no.
func Confirm(in io.Reader, out io.Writer, question string) bool {
	reader := bufio.NewReader(in)
	fmt.Fprintf(out, "\n%s (y/N): ", question)

	response, err := reader.ReadString('\n')
	if err != nil && response == "" {
		return false
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
