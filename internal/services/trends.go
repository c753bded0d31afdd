package services

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/vladimiradmaev/medscan/internal/domain"
)

// Direction is the sign of a trend delta.
type Direction string

const (
	DirectionRising  Direction = "rising"
	DirectionFalling Direction = "falling"
	DirectionStable  Direction = "stable"
)

// TrendPoint is one numeric observation of a parameter.
type TrendPoint struct {
	Date   string
	Value  float64
	Status string
}

// TrendDelta compares the two most recent observations of a parameter.
type TrendDelta struct {
	Parameter  string
	Latest     float64
	Previous   float64
	Difference float64
	Direction  Direction
}

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// ParseNumeric reads the number at the start of a value, so "145 mg/dL"
// yields 145. ok is false when the value does not start with a number.
func ParseNumeric(value string) (float64, bool) {
	m := leadingNumber.FindString(strings.TrimSpace(value))
	if m == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

var reportDateLayouts = []string{
	time.RFC3339,
	time.DateOnly,
	time.DateTime,
	"2006/01/02",
	"02.01.2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
}

// sortTime is the chronological key of an entry: its report date when it
// parses, otherwise the time it was recorded.
func sortTime(entry domain.HistoryEntry) time.Time {
	date := strings.TrimSpace(entry.Date)
	for _, layout := range reportDateLayouts {
		if t, err := time.Parse(layout, date); err == nil {
			return t
		}
	}
	return entry.CreatedAt
}

func chronological(entries []domain.HistoryEntry) []domain.HistoryEntry {
	sorted := append([]domain.HistoryEntry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sortTime(sorted[i]).Before(sortTime(sorted[j]))
	})
	return sorted
}

// ParametersTracked returns every parameter name seen in the history, in
// first-seen order. Names are compared case-insensitively.
func ParametersTracked(entries []domain.HistoryEntry) []string {
	seen := make(map[string]bool)
	var names []string
	for _, entry := range chronological(entries) {
		for _, p := range entry.Parameters {
			key := domain.ParameterKey(p.Name)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			names = append(names, p.Name)
		}
	}
	return names
}

// Series returns the numeric observations of name in ascending date order.
// Observations whose value has no leading number are skipped; within one
// entry the first numeric observation of name is used.
func Series(entries []domain.HistoryEntry, name string) []TrendPoint {
	key := domain.ParameterKey(name)
	var points []TrendPoint
	for _, entry := range chronological(entries) {
		for _, p := range entry.Parameters {
			if domain.ParameterKey(p.Name) != key {
				continue
			}
			if value, ok := ParseNumeric(p.Value); ok {
				points = append(points, TrendPoint{Date: entry.Date, Value: value, Status: p.Status})
				break
			}
		}
	}
	return points
}

// Delta compares the last two points of the series. ok is false when the
// parameter has fewer than two numeric observations.
func Delta(entries []domain.HistoryEntry, name string) (TrendDelta, bool) {
	points := Series(entries, name)
	if len(points) < 2 {
		return TrendDelta{}, false
	}
	latest, previous := points[len(points)-1], points[len(points)-2]
	diff := latest.Value - previous.Value

	direction := DirectionStable
	switch {
	case diff > 0:
		direction = DirectionRising
	case diff < 0:
		direction = DirectionFalling
	}

	return TrendDelta{
		Parameter:  name,
		Latest:     latest.Value,
		Previous:   previous.Value,
		Difference: diff,
		Direction:  direction,
	}, true
}
