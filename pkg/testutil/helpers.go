// Package testutil provides common utility functions for testing.
package testutil

import (
	"errors"
	"fmt"

	"github.com/iwvelando/fincalc/internal/chart"
)

// ErrCanvasLost is returned by ChartLibrary.Create while Fail is set.
var ErrCanvasLost = errors.New("canvas lost")

// ChartHandle is the handle ChartLibrary hands out.
type ChartHandle struct {
	ID     int
	canvas string
	spec   chart.Spec
}

// Canvas implements chart.Handle.
func (h *ChartHandle) Canvas() string { return h.canvas }

// Spec implements chart.Handle.
func (h *ChartHandle) Spec() chart.Spec { return h.spec }

// ChartLibrary is a chart.Library that draws nothing and records how many
// charts are live on each canvas.
type ChartLibrary struct {
	// Fail makes Create return ErrCanvasLost.
	Fail bool

	created int
	live    map[string]map[int]bool
}

// NewChartLibrary creates an empty recording library.
func NewChartLibrary() *ChartLibrary {
	return &ChartLibrary{live: make(map[string]map[int]bool)}
}

// Create implements chart.Library.
func (l *ChartLibrary) Create(canvasID string, spec chart.Spec) (chart.Handle, error) {
	if l.Fail {
		return nil, ErrCanvasLost
	}
	l.created++
	if l.live[canvasID] == nil {
		l.live[canvasID] = make(map[int]bool)
	}
	l.live[canvasID][l.created] = true
	return &ChartHandle{ID: l.created, canvas: canvasID, spec: spec}, nil
}

// Destroy implements chart.Library. Destroying a handle twice is an error.
func (l *ChartLibrary) Destroy(handle chart.Handle) error {
	h, ok := handle.(*ChartHandle)
	if !ok {
		return fmt.Errorf("%w: %T", chart.ErrUnknownHandle, handle)
	}
	if !l.live[h.canvas][h.ID] {
		return fmt.Errorf("%w: chart %d on %s", chart.ErrUnknownHandle, h.ID, h.canvas)
	}
	delete(l.live[h.canvas], h.ID)
	if len(l.live[h.canvas]) == 0 {
		delete(l.live, h.canvas)
	}
	return nil
}

// Created reports how many charts were ever created.
func (l *ChartLibrary) Created() int {
	return l.created
}

// Live reports how many charts are live on canvasID.
func (l *ChartLibrary) Live(canvasID string) int {
	return len(l.live[canvasID])
}

// Canvases reports how many canvases hold at least one live chart.
func (l *ChartLibrary) Canvases() int {
	return len(l.live)
}
