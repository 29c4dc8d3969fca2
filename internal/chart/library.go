package chart

import (
	"fmt"

	"go.uber.org/zap"
)

// Handle is a live chart instance owned by a Library.
type Handle interface {
	Canvas() string
	Spec() Spec
}

// Library creates and releases chart instances on a canvas.
type Library interface {
	Create(canvasID string, spec Spec) (Handle, error)
	Destroy(handle Handle) error
}

// Registry tracks the current chart of each canvas. Replacing a chart always
// destroys the previous instance first, so a canvas never has more than one
// live chart.
type Registry struct {
	library Library
	charts  map[string]Handle
	logger  *zap.Logger
}

// NewRegistry creates a registry backed by the given library.
func NewRegistry(library Library, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		library: library,
		charts:  make(map[string]Handle),
		logger:  logger,
	}
}

// Replace destroys the chart currently drawn on canvasID, if any, and creates
// a new one from spec.
func (r *Registry) Replace(canvasID string, spec Spec) (Handle, error) {
	if err := r.Destroy(canvasID); err != nil {
		return nil, err
	}

	handle, err := r.library.Create(canvasID, spec)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s chart on %s: %w", spec.Type, canvasID, err)
	}
	r.charts[canvasID] = handle

	r.logger.Debug("chart created",
		zap.String("op", "chart.Replace"),
		zap.String("canvas", canvasID),
		zap.String("type", string(spec.Type)),
	)
	return handle, nil
}

// Destroy releases the chart on canvasID. Destroying an empty canvas is a
// no-op.
func (r *Registry) Destroy(canvasID string) error {
	handle, ok := r.charts[canvasID]
	if !ok {
		return nil
	}
	delete(r.charts, canvasID)
	if err := r.library.Destroy(handle); err != nil {
		return fmt.Errorf("failed to destroy chart on %s: %w", canvasID, err)
	}
	return nil
}

// Get returns the live chart on canvasID.
func (r *Registry) Get(canvasID string) (Handle, bool) {
	handle, ok := r.charts[canvasID]
	return handle, ok
}

// Len reports how many canvases currently hold a chart.
func (r *Registry) Len() int {
	return len(r.charts)
}

// Close destroys every chart in the registry.
func (r *Registry) Close() error {
	var firstErr error
	for canvasID := range r.charts {
		if err := r.Destroy(canvasID); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
