package daily

import (
	"sync"
	"time"
)

// ComponentStatus is the reported health of one component.
type ComponentStatus struct {
	Healthy   bool      `json:"healthy"`
	Message   string    `json:"message"`
	LastCheck time.Time `json:"lastCheck"`
}

// Health tracks per-component health for the liveness endpoint.
type Health struct {
	mu         sync.RWMutex
	components map[string]ComponentStatus
}

// NewHealth creates a new health tracker.
func NewHealth() *Health {
	return &Health{components: make(map[string]ComponentStatus)}
}

// SetHealthy marks a component as healthy.
func (h *Health) SetHealthy(component, message string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.components[component] = ComponentStatus{
		Healthy:   true,
		Message:   message,
		LastCheck: time.Now(),
	}
}

// SetUnhealthy marks a component as unhealthy.
func (h *Health) SetUnhealthy(component string, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.components[component] = ComponentStatus{
		Healthy:   false,
		Message:   err.Error(),
		LastCheck: time.Now(),
	}
}

// Snapshot returns a copy of all component statuses.
func (h *Health) Snapshot() map[string]ComponentStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()
	snapshot := make(map[string]ComponentStatus, len(h.components))
	for name, status := range h.components {
		snapshot[name] = status
	}
	return snapshot
}
