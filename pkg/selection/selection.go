// Package selection tracks the origin and destination a user picks on the
// map before a route is requested.
package selection

import "github.com/paulmach/orb"

// State is the selection progress.
type State int

const (
	Empty State = iota
	OriginSet
	OriginAndDestinationSet
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case OriginSet:
		return "origin_set"
	case OriginAndDestinationSet:
		return "origin_and_destination_set"
	}
	return "unknown"
}

// Selection is a two-slot origin/destination picker. The zero value is
// Empty. Clicks fill the origin first, then the destination; once both are
// set further clicks are ignored until Clear.
type Selection struct {
	origin, destination *orb.Point
}

// State returns the current state.
func (s *Selection) State() State {
	switch {
	case s.origin != nil && s.destination != nil:
		return OriginAndDestinationSet
	case s.origin != nil:
		return OriginSet
	}
	return Empty
}

// Click records a map click and returns the resulting state. It reports
// false when the click was ignored because both slots are already set.
func (s *Selection) Click(p orb.Point) (State, bool) {
	switch s.State() {
	case Empty:
		s.origin = &p
	case OriginSet:
		s.destination = &p
	default:
		return OriginAndDestinationSet, false
	}
	return s.State(), true
}

// SetOrigin replaces the origin slot directly.
func (s *Selection) SetOrigin(p orb.Point) { s.origin = &p }

// SetDestination replaces the destination slot directly. Without an origin
// the point is taken as the origin instead, keeping the slots ordered.
func (s *Selection) SetDestination(p orb.Point) {
	if s.origin == nil {
		s.origin = &p
		return
	}
	s.destination = &p
}

// Clear resets to Empty.
func (s *Selection) Clear() {
	s.origin = nil
	s.destination = nil
}

// Origin returns the origin, if set.
func (s *Selection) Origin() (orb.Point, bool) {
	if s.origin == nil {
		return orb.Point{}, false
	}
	return *s.origin, true
}

// Destination returns the destination, if set.
func (s *Selection) Destination() (orb.Point, bool) {
	if s.destination == nil {
		return orb.Point{}, false
	}
	return *s.destination, true
}

// Ready reports whether both endpoints are set and a route can be requested.
func (s *Selection) Ready() bool {
	return s.State() == OriginAndDestinationSet
}
