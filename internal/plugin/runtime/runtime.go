package runtime

import (
	"fmt"
	"sort"
	"sync"
)

// Feature defines the activation lifecycle for a runtime plugin feature.
type Feature interface {
	Activate() error
	Deactivate() error
}

// Runtime coordinates activation and deactivation of runtime features.
type Runtime struct {
	mu       sync.Mutex
	features map[string]Feature
	active   map[string]bool
}

// New creates a new runtime registry.
func New() *Runtime {
	return &Runtime{
		features: make(map[string]Feature),
		active:   make(map[string]bool),
	}
}

// Register adds a feature implementation for the provided slug.
func (r *Runtime) Register(slug string, feature Feature) {
	if r == nil || feature == nil {
		return
	}

	r.mu.Lock()
	if r.features == nil {
		r.features = make(map[string]Feature)
	}
	r.features[slug] = feature
	r.mu.Unlock()
}

// Activate enables the feature identified by slug. Activating an active feature
// is a no-op.
func (r *Runtime) Activate(slug string) error {
	if r == nil {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	feature, ok := r.features[slug]
	if !ok || feature == nil {
		return fmt.Errorf("feature %q is not registered", slug)
	}
	if r.active[slug] {
		return nil
	}

	if err := feature.Activate(); err != nil {
		return fmt.Errorf("failed to activate %s: %w", slug, err)
	}
	if r.active == nil {
		r.active = make(map[string]bool)
	}
	r.active[slug] = true
	return nil
}

// Deactivate disables the feature identified by slug if it is active.
func (r *Runtime) Deactivate(slug string) error {
	if r == nil {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	feature, ok := r.features[slug]
	if !ok || feature == nil || !r.active[slug] {
		return nil
	}

	if err := feature.Deactivate(); err != nil {
		return fmt.Errorf("failed to deactivate %s: %w", slug, err)
	}
	delete(r.active, slug)
	return nil
}

// IsActive reports whether slug has been activated.
func (r *Runtime) IsActive(slug string) bool {
	if r == nil {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active[slug]
}

// Active lists the active slugs in sorted order.
func (r *Runtime) Active() []string {
	if r == nil {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	slugs := make([]string, 0, len(r.active))
	for slug := range r.active {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}

// DeactivateAll disables every active feature and returns the first error.
func (r *Runtime) DeactivateAll() error {
	var firstErr error
	for _, slug := range r.Active() {
		if err := r.Deactivate(slug); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// FeatureFunc is a helper to adapt plain functions to the Feature interface.
type FeatureFunc struct {
	ActivateFunc   func() error
	DeactivateFunc func() error
}

// Activate executes the configured activate callback if present.
func (f FeatureFunc) Activate() error {
	if f.ActivateFunc == nil {
		return nil
	}
	return f.ActivateFunc()
}

// Deactivate executes the configured deactivate callback if present.
func (f FeatureFunc) Deactivate() error {
	if f.DeactivateFunc == nil {
		return nil
	}
	return f.DeactivateFunc()
}
