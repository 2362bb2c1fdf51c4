package ipc

import "strings"

// CommandBuffer implements the buffering behavior spec.md §4.1 requires of
// every Client: while buffering is enabled, Send appends to an ordered
// list instead of issuing the command; disabling (or an explicit flush)
// joins the buffer with ";" and clears it. Embed this in a Client
// implementation and call Flush from the embedder's Send/DisableBuffering.
type CommandBuffer struct {
	enabled bool
	pending []string
}

// Enable turns buffering on.
func (b *CommandBuffer) Enable() {
	b.enabled = true
}

// Enabled reports whether buffering is currently on.
func (b *CommandBuffer) Enabled() bool {
	return b.enabled
}

// Append queues a command string while buffering is enabled. Callers must
// check Enabled() first.
func (b *CommandBuffer) Append(cmd string) {
	b.pending = append(b.pending, cmd)
}

// Flush disables buffering and returns the ";"-joined pending commands (or
// "" if nothing was queued), clearing the queue.
func (b *CommandBuffer) Flush() string {
	b.enabled = false
	if len(b.pending) == 0 {
		return ""
	}
	joined := strings.Join(b.pending, ";")
	b.pending = nil
	return joined
}
