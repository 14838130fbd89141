// Package odmatrix builds origin-destination count matrices from trip records.
package odmatrix

import (
	"errors"
	"fmt"

	"github.com/KaramelBytes/odpanel/internal/dataset"
	"github.com/KaramelBytes/odpanel/internal/labels"
)

var (
	// ErrEmptySelection is returned when no location codes are selected.
	ErrEmptySelection = errors.New("odmatrix: empty selection")
	// ErrDuplicateCode is returned when a code appears twice in the selection.
	ErrDuplicateCode = errors.New("odmatrix: duplicate code in selection")
)

// Matrix is a dense k×k count matrix. Counts[i][j] is the number of trips from
// Codes[i] to Codes[j]; both axes follow the selection order.
type Matrix struct {
	Codes  []int
	Counts [][]int
	Total  int
}

// Build counts trips whose origin and destination are both in selected.
// Rows with an unparsable origin or destination never match. The trip table is
// expected to exclude invalid-surveyor rows already.
func Build(trips *dataset.Table, selected []int) (*Matrix, error) {
	if len(selected) == 0 {
		return nil, ErrEmptySelection
	}
	pos := make(map[int]int, len(selected))
	for i, c := range selected {
		if _, dup := pos[c]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateCode, c)
		}
		pos[c] = i
	}

	k := len(selected)
	m := &Matrix{Codes: append([]int(nil), selected...), Counts: make([][]int, k)}
	for i := range m.Counts {
		m.Counts[i] = make([]int, k)
	}

	oi, ok1 := trips.ColumnIndex(dataset.ColOriginCity)
	di, ok2 := trips.ColumnIndex(dataset.ColDestCity)
	if !ok1 || !ok2 {
		return m, nil
	}
	for _, row := range trips.Rows {
		o, ok := dataset.ParseCode(row[oi])
		if !ok {
			continue
		}
		d, ok := dataset.ParseCode(row[di])
		if !ok {
			continue
		}
		r, inO := pos[o]
		c, inD := pos[d]
		if !inO || !inD {
			continue
		}
		m.Counts[r][c]++
		m.Total++
	}
	return m, nil
}

// LabeledMatrix is a Matrix with display labels on both axes, ready for a heatmap.
type LabeledMatrix struct {
	Codes  []int    `json:"codes"`
	Rows   []string `json:"rows"`
	Cols   []string `json:"cols"`
	Values [][]int  `json:"values"`
	Total  int      `json:"total"`
}

// Labeled relabels both axes through lookup. Counts are copied unchanged; codes
// without a label fall back to lookup's own rendering.
func (m *Matrix) Labeled(lookup labels.Lookup) LabeledMatrix {
	names := make([]string, len(m.Codes))
	for i, c := range m.Codes {
		names[i] = lookup.Label(c)
	}
	values := make([][]int, len(m.Counts))
	for i, row := range m.Counts {
		values[i] = append([]int(nil), row...)
	}
	return LabeledMatrix{
		Codes:  append([]int(nil), m.Codes...),
		Rows:   names,
		Cols:   append([]string(nil), names...),
		Values: values,
		Total:  m.Total,
	}
}
