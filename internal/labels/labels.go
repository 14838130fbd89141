// Package labels maps integer category codes to display labels.
//
// Two sources produce the same Labels type: location labels derived from the trip
// table itself, and fixed maps (transport mode, trip motive) taken from configuration.
package labels

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/KaramelBytes/odpanel/internal/dataset"
)

// Lookup is the label lookup shared by every code map.
type Lookup interface {
	// Lookup returns the mapped label, if any.
	Lookup(code int) (string, bool)
	// Label returns the mapped label or the map's fallback rendering.
	Label(code int) string
}

// Fallback renders a label for a code that is not in the map.
type Fallback func(code int) string

// OtherID renders unmapped codes as "Other (ID n)".
func OtherID(code int) string { return fmt.Sprintf("Other (ID %d)", code) }

// RawCode renders unmapped codes as the bare number.
func RawCode(code int) string { return strconv.Itoa(code) }

// Labels is an immutable code to label map with a fallback.
type Labels struct {
	byCode   map[int]string
	fallback Fallback
}

var _ Lookup = (*Labels)(nil)

// Static wraps a fixed map. The map is copied; a nil fallback means OtherID.
func Static(m map[int]string, fallback Fallback) *Labels {
	if fallback == nil {
		fallback = OtherID
	}
	cp := make(map[int]string, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return &Labels{byCode: cp, fallback: fallback}
}

// FromTrips derives location labels from the origin columns of the trip table.
// Rows are scanned in order; an empty label never overwrites a known one and the
// last non-empty label seen for a code wins. Rows whose code does not parse are ignored.
// Unmapped codes render as their raw number.
func FromTrips(trips *dataset.Table) *Labels {
	return FromColumns(trips, dataset.ColOriginCity, dataset.ColOriginCityLabel)
}

// FromColumns derives a label map from any code/label column pair.
func FromColumns(t *dataset.Table, codeCol, labelCol string) *Labels {
	out := &Labels{byCode: map[int]string{}, fallback: RawCode}
	ci, ok1 := t.ColumnIndex(codeCol)
	li, ok2 := t.ColumnIndex(labelCol)
	if !ok1 || !ok2 {
		return out
	}
	for _, row := range t.Rows {
		label := strings.TrimSpace(row[li])
		if label == "" {
			continue
		}
		code, ok := dataset.ParseCode(row[ci])
		if !ok {
			continue
		}
		out.byCode[code] = label
	}
	return out
}

// Lookup returns the label mapped to code.
func (l *Labels) Lookup(code int) (string, bool) {
	s, ok := l.byCode[code]
	return s, ok
}

// Label returns the mapped label or the fallback rendering.
func (l *Labels) Label(code int) string {
	if s, ok := l.byCode[code]; ok {
		return s
	}
	if l.fallback == nil {
		return OtherID(code)
	}
	return l.fallback(code)
}

// Len returns the number of mapped codes.
func (l *Labels) Len() int { return len(l.byCode) }

// Codes lists mapped codes in ascending order.
func (l *Labels) Codes() []int {
	codes := make([]int, 0, len(l.byCode))
	for c := range l.byCode {
		codes = append(codes, c)
	}
	sort.Ints(codes)
	return codes
}

// Option is one entry of a filter control.
type Option struct {
	Code  int    `json:"code"`
	Label string `json:"label"`
}

func (o Option) String() string { return fmt.Sprintf("%d - %s", o.Code, o.Label) }

// Options lists the mapped codes as filter options, ascending by code.
func (l *Labels) Options() []Option {
	codes := l.Codes()
	out := make([]Option, len(codes))
	for i, c := range codes {
		out[i] = Option{Code: c, Label: l.byCode[c]}
	}
	return out
}

// ParseOption recovers the code from a rendered option ("6 - Guará") or a bare code ("6").
func ParseOption(s string) (int, error) {
	head, _, _ := strings.Cut(strings.TrimSpace(s), " - ")
	code, ok := dataset.ParseCode(head)
	if !ok {
		return 0, fmt.Errorf("invalid option %q", s)
	}
	return code, nil
}

// ParseMap reads a configuration map whose keys are codes ("13": "Car").
func ParseMap(m map[string]string) (map[int]string, error) {
	out := make(map[int]string, len(m))
	for k, v := range m {
		code, ok := dataset.ParseCode(k)
		if !ok {
			return nil, fmt.Errorf("invalid label code %q", k)
		}
		out[code] = v
	}
	return out, nil
}

// DefaultModes is the built-in transport mode map.
var DefaultModes = map[int]string{
	0:  "Not informed / other",
	1:  "On foot",
	10: "Public bus",
	13: "Car (driver)",
}

// DefaultMotives is the built-in trip motive map.
var DefaultMotives = map[int]string{
	0: "Home (return)",
	1: "Work",
	2: "School / education",
	5: "Shopping",
	6: "Health",
	8: "Leisure",
}
