package engine

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// handleCounter generates process-wide unique style handle ids. Ids start
// at 1 and are never reused, so a stale handle from a destroyed window can
// never alias a newer window's handle.
var handleCounter atomic.Int64

// StyleHandle is the per-window mutable style resource the host reads when
// laying out the tab strip. It carries the height multiplier: the number of
// text lines the strip should occupy.
type StyleHandle struct {
	mu     sync.RWMutex
	id     int64
	name   string
	height float64
}

// NewStyleHandle creates a handle with a fresh process-wide id and the
// minimum height of one text line.
func NewStyleHandle() *StyleHandle {
	id := handleCounter.Add(1)
	return &StyleHandle{
		id:     id,
		name:   fmt.Sprintf("notchtab_%d", id),
		height: 1.0,
	}
}

// ID returns the handle's unique identifier.
func (h *StyleHandle) ID() int64 {
	return h.id
}

// Name returns the handle's style resource name.
func (h *StyleHandle) Name() string {
	return h.name
}

// Height returns the stored height multiplier.
func (h *StyleHandle) Height() float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.height
}

// SetHeight stores a new height multiplier.
func (h *StyleHandle) SetHeight(v float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.height = v
}
