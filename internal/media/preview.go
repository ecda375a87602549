package media

import (
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/alimikegami/point-of-sales/admin-console/internal/domain"
)

// Preview is a local handle to a selected file, valid until released.
type Preview struct {
	ID   string
	Name string
}

// PreviewRegistry tracks the live preview handles of the authoring workflow.
type PreviewRegistry struct {
	mu   sync.Mutex
	live map[string]domain.Blob
}

func NewPreviewRegistry() *PreviewRegistry {
	return &PreviewRegistry{live: make(map[string]domain.Blob)}
}

func (r *PreviewRegistry) Acquire(blob domain.Blob) Preview {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := ulid.Make().String()
	r.live[id] = blob
	return Preview{ID: id, Name: blob.Name}
}

func (r *PreviewRegistry) Release(previews ...Preview) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range previews {
		delete(r.live, p.ID)
	}
}

// Lookup returns the blob behind a live handle.
func (r *PreviewRegistry) Lookup(id string) (domain.Blob, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	blob, ok := r.live[id]
	return blob, ok
}

func (r *PreviewRegistry) Live() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.live)
}
