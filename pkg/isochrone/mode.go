// Package isochrone models the reachability polygons returned for one
// transport mode and a set of time budgets.
package isochrone

import (
	"errors"
	"fmt"
	"strings"
)

// Mode is a transport mode.
type Mode string

const (
	Walk Mode = "walk"
	Bike Mode = "bike"
	Car  Mode = "car"
)

// ModeInfo describes how the routing backend treats a mode.
type ModeInfo struct {
	Name      string  `json:"name"`
	SpeedKmh  float64 `json:"speed_kmh"`
	CostField string  `json:"cost_field"`
	Icon      string  `json:"icon"`
}

// Modes is the backend's transport-mode table.
var Modes = map[Mode]ModeInfo{
	Walk: {Name: "Walking", SpeedKmh: 5, CostField: "cost_walk", Icon: "walk"},
	Bike: {Name: "Cycling", SpeedKmh: 15, CostField: "cost_bike", Icon: "bicycle"},
	Car:  {Name: "Driving", SpeedKmh: 40, CostField: "cost", Icon: "car"},
}

// ErrUnknownMode is returned by ParseMode for unrecognised modes.
var ErrUnknownMode = errors.New("unknown transport mode")

// ParseMode parses a mode name, case-insensitively.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := Modes[m]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
	return m, nil
}

// ReachMeters is the distance covered in the given minutes at the mode's
// nominal speed.
func (m Mode) ReachMeters(minutes int) float64 {
	return Modes[m].SpeedKmh * float64(minutes) * 1000 / 60
}
