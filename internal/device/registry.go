package device

import (
	"context"
	"sort"
	"sync"
)

// Registry holds the controllers for the devices configured on this
// install. One controller per device type.
//
// All methods are safe for concurrent use.
type Registry struct {
	mu          sync.RWMutex
	controllers map[string]Controller
}

// NewRegistry creates an empty device registry.
func NewRegistry() *Registry {
	return &Registry{controllers: make(map[string]Controller)}
}

// Register adds a controller, replacing any previous controller of the
// same type.
func (r *Registry) Register(c Controller) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.controllers[c.Type()] = c
}

// Resolve returns the controller for a device type.
func (r *Registry) Resolve(deviceType string) (Controller, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.controllers[deviceType]
	if !ok {
		return nil, ErrDeviceNotFound
	}
	return c, nil
}

// All returns the registered controllers, ordered by device type.
func (r *Registry) All() []Controller {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.controllers))
	for t := range r.controllers {
		types = append(types, t)
	}
	sort.Strings(types)

	out := make([]Controller, 0, len(types))
	for _, t := range types {
		out = append(out, r.controllers[t])
	}
	return out
}

// Statuses queries every registered device concurrently and returns their
// states keyed by device type. Unreachable devices report an error entry
// instead of failing the whole call.
func (r *Registry) Statuses(ctx context.Context) map[string]any {
	controllers := r.All()

	var wg sync.WaitGroup
	var mu sync.Mutex
	out := make(map[string]any, len(controllers))

	for _, c := range controllers {
		wg.Add(1)
		go func(c Controller) {
			defer wg.Done()
			status, err := c.Status(ctx)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				out[c.Type()] = map[string]any{"error": err.Error()}
				return
			}
			out[c.Type()] = status
		}(c)
	}
	wg.Wait()

	return out
}
