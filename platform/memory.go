package platform

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/hashicorp/go-multierror"
)

// Memory is a Service backed by in-process state. It is safe for concurrent
// use and serves tests, dry runs and hosts without a native backend.
type Memory struct {
	mu           sync.RWMutex
	outputs      []Output
	apps         []Application
	routed       map[string]struct{}
	systemRouted bool
	duplications []Duplication
}

var _ Service = (*Memory)(nil)

// NewMemory creates a service that knows the given outputs and applications.
func NewMemory(outputs []Output, apps []Application) *Memory {
	return &Memory{
		outputs: slices.Clone(outputs),
		apps:    slices.Clone(apps),
		routed:  make(map[string]struct{}),
	}
}

// AddOutput registers an output, replacing one with the same name.
func (m *Memory) AddOutput(o Output) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outputs = slices.DeleteFunc(m.outputs, func(e Output) bool { return e.Name == o.Name })
	m.outputs = append(m.outputs, o)
}

// RemoveOutput forgets an output. Active duplications that use it fail to
// stop cleanly.
func (m *Memory) RemoveOutput(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outputs = slices.DeleteFunc(m.outputs, func(e Output) bool { return e.Name == name })
}

// AddApplication registers an application, replacing one with the same id.
func (m *Memory) AddApplication(a Application) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.apps = slices.DeleteFunc(m.apps, func(e Application) bool { return e.ID == a.ID })
	m.apps = append(m.apps, a)
}

// ListOutputs implements Service.
func (m *Memory) ListOutputs(ctx context.Context) ([]Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.outputs), nil
}

// ListApplications implements Service.
func (m *Memory) ListApplications(ctx context.Context) ([]Application, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.apps), nil
}

// RouteApplication implements Service. Routing twice is a no-op.
func (m *Memory) RouteApplication(ctx context.Context, appID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.hasApplication(appID) {
		return fmt.Errorf("%w: %q", ErrUnknownApplication, appID)
	}
	m.routed[appID] = struct{}{}
	return nil
}

// RouteSystemAudio implements Service.
func (m *Memory) RouteSystemAudio(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.systemRouted = true
	return nil
}

// UnrouteApplication implements Service.
func (m *Memory) UnrouteApplication(ctx context.Context, appID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.routed[appID]; !ok {
		return fmt.Errorf("%w: %q", ErrNotRouted, appID)
	}
	delete(m.routed, appID)
	return nil
}

// DuplicateOutput implements Service.
func (m *Memory) DuplicateOutput(ctx context.Context, source, target string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if source == target {
		return fmt.Errorf("%w: %q", ErrSameOutput, source)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, name := range []string{source, target} {
		if !m.hasOutput(name) {
			return fmt.Errorf("%w: %q", ErrUnknownOutput, name)
		}
	}

	d := Duplication{Source: source, Target: target}
	if slices.Contains(m.duplications, d) {
		return fmt.Errorf("%w: %s -> %s", ErrDuplicationExists, source, target)
	}
	m.duplications = append(m.duplications, d)
	return nil
}

// StopAllDuplications implements Service. Every duplication is removed; the
// returned error aggregates those whose outputs vanished in the meantime.
func (m *Memory) StopAllDuplications(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var result *multierror.Error
	for _, d := range m.duplications {
		for _, name := range []string{d.Source, d.Target} {
			if !m.hasOutput(name) {
				result = multierror.Append(result,
					fmt.Errorf("stop %s -> %s: %w: %q", d.Source, d.Target, ErrUnknownOutput, name))
			}
		}
	}
	m.duplications = nil
	return result.ErrorOrNil()
}

// Routed returns the ids of routed applications, sorted.
func (m *Memory) Routed() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.routed))
	for id := range m.routed {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// SystemRouted reports whether RouteSystemAudio was called.
func (m *Memory) SystemRouted() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.systemRouted
}

// Duplications returns the active duplications in creation order.
func (m *Memory) Duplications() []Duplication {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.duplications)
}

func (m *Memory) hasApplication(id string) bool {
	return slices.ContainsFunc(m.apps, func(a Application) bool { return a.ID == id })
}

func (m *Memory) hasOutput(name string) bool {
	return slices.ContainsFunc(m.outputs, func(o Output) bool { return o.Name == name })
}
