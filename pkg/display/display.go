// Package display configures monitors through the compositor.
package display

import (
	"context"
	"fmt"
)

// Monitor is a connected output as reported by the compositor.
type Monitor struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	RefreshRate float64 `json:"refreshRate"`
	X           int     `json:"x"`
	Y           int     `json:"y"`
	Scale       float64 `json:"scale"`
	// Transform is the rotation in 90° steps, flipped variants
	// use 4-7.
	Transform int  `json:"transform"`
	Focused   bool `json:"focused"`
}

// Geometry is the mode, position and scale of a monitor.
type Geometry struct {
	// Mode is resolution and refresh rate, e.g. 1920x1080@144.
	Mode     string
	Position string
	Scale    string
}

// Rule formats the monitor rule for name.
func (g Geometry) Rule(name string) string {
	return fmt.Sprintf("%s,%s,%s,%s", name, g.Mode, g.Position, g.Scale)
}

// Service lists and reconfigures monitors.
type Service interface {
	Monitors(ctx context.Context) ([]Monitor, error)
	SetTransform(ctx context.Context, name string, transform int) error
	SetGeometry(ctx context.Context, name string, g Geometry) error
}

// Find returns the monitor with the given name.
func Find(monitors []Monitor, name string) (Monitor, bool) {
	for _, m := range monitors {
		if m.Name == name {
			return m, true
		}
	}
	return Monitor{}, false
}
