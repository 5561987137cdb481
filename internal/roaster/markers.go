package roaster

import (
	"math"

	"coffee_roaster"

	"github.com/google/uuid"
)

// MarkerTimeline is the ordered collection of operator and system
// annotations for the current roast. It is not safe for concurrent use
// on its own; the owning Session serializes all access.
type MarkerTimeline struct {
	markers []coffee_roaster.Marker
}

// NewMarkerTimeline returns an empty timeline.
func NewMarkerTimeline() *MarkerTimeline {
	return &MarkerTimeline{}
}

// Add appends a new marker with a fresh id and returns it.
func (t *MarkerTimeline) Add(time, temp float64, label, color, notes string) coffee_roaster.Marker {
	m := coffee_roaster.Marker{
		ID:          uuid.NewString(),
		Time:        time,
		Temperature: temp,
		Label:       label,
		Color:       color,
		Notes:       notes,
	}
	t.markers = append(t.markers, m)
	return m
}

// Remove deletes the marker with the given id and reports whether a
// marker was removed.
func (t *MarkerTimeline) Remove(id string) bool {
	for i, m := range t.markers {
		if m.ID == id {
			t.markers = append(t.markers[:i], t.markers[i+1:]...)
			return true
		}
	}
	return false
}

// All returns a copy of the markers in insertion order. Mutating the
// returned slice does not affect the timeline.
func (t *MarkerTimeline) All() []coffee_roaster.Marker {
	out := make([]coffee_roaster.Marker, len(t.markers))
	copy(out, t.markers)
	return out
}

// Len returns the number of markers.
func (t *MarkerTimeline) Len() int { return len(t.markers) }

// Clear drops all markers.
func (t *MarkerTimeline) Clear() {
	t.markers = nil
}

// Restore wholesale-replaces the timeline from an external source,
// copying the input so later caller mutation cannot leak in.
func (t *MarkerTimeline) Restore(markers []coffee_roaster.Marker) {
	t.markers = make([]coffee_roaster.Marker, len(markers))
	copy(t.markers, markers)
}

// CorrelateToSamples annotates each marker's nearest sample by |Δt|,
// breaking ties toward the earliest sample index. A sample carries at
// most one annotation: when two markers resolve to the same sample the
// later marker in iteration order overwrites the earlier one. That
// loss is a known, accepted property of the export format.
func CorrelateToSamples(samples []coffee_roaster.TemperaturePoint, markers []coffee_roaster.Marker) []coffee_roaster.AnnotatedPoint {
	out := make([]coffee_roaster.AnnotatedPoint, len(samples))
	for i, p := range samples {
		out[i] = coffee_roaster.AnnotatedPoint{Time: p.Time, Temperature: p.Temperature}
	}

	for _, m := range markers {
		closest := -1
		minDiff := math.Inf(1)
		for i, p := range samples {
			if diff := math.Abs(p.Time - m.Time); diff < minDiff {
				minDiff = diff
				closest = i
			}
		}
		if closest < 0 {
			continue
		}
		out[closest].Marker = m.Label
		out[closest].MarkerID = m.ID
		out[closest].MarkerColor = m.Color
		out[closest].MarkerNotes = m.Notes
	}

	return out
}
