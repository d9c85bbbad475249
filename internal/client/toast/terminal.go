package toast

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// TerminalRenderer prints each toast once, when it becomes visible:
//
//	[SUCCESS] Success: User created successfully
type TerminalRenderer struct {
	mu sync.Mutex
	w  io.Writer
}

func NewTerminalRenderer(w io.Writer) *TerminalRenderer {
	return &TerminalRenderer{w: w}
}

func (r *TerminalRenderer) Show(t Toast) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.w, "[%s] %s: %s\n", strings.ToUpper(string(t.Kind)), t.Title, t.Message)
}

func (r *TerminalRenderer) Hide(Toast) {}
