package render

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/KaramelBytes/odpanel/internal/analysis"
	"github.com/KaramelBytes/odpanel/internal/odmatrix"
	"github.com/KaramelBytes/odpanel/internal/views"
)

func TestMatrix(t *testing.T) {
	var buf bytes.Buffer
	Matrix(&buf, &odmatrix.LabeledMatrix{
		Codes:  []int{6, 14},
		Rows:   []string{"Guará", "14"},
		Cols:   []string{"Guará", "14"},
		Values: [][]int{{0, 2}, {1, 0}},
		Total:  3,
	})
	out := buf.String()
	assert.Contains(t, out, "Guará")
	assert.Contains(t, out, "Origin \\ Destination")
	assert.Contains(t, out, "Total trips between selected cities: 3")
}

func TestCountsShare(t *testing.T) {
	var buf bytes.Buffer
	Counts(&buf, "Modal split", []analysis.CategoryCount{{Value: "Public bus", Count: 3}, {Value: "Other (ID 99)", Count: 1}})
	out := buf.String()
	assert.Contains(t, out, "Modal split")
	assert.Contains(t, out, "75.0%")
	assert.Contains(t, out, "Other (ID 99)")

	buf.Reset()
	Counts(&buf, "Empty", nil)
	assert.Contains(t, buf.String(), "(no data)")
}

func TestTripsPrompt(t *testing.T) {
	var buf bytes.Buffer
	Trips(&buf, &views.TripsView{Selected: []int{}, Prompt: views.SelectionPrompt})
	assert.Contains(t, buf.String(), views.SelectionPrompt)
	assert.NotContains(t, buf.String(), "Origin-destination matrix")
}

func TestPyramidColumns(t *testing.T) {
	var buf bytes.Buffer
	Pyramid(&buf, []analysis.PyramidRow{
		{Band: "0-4", Sex: "FEMININO", Count: 2, Signed: 2},
		{Band: "0-4", Sex: "MASCULINO", Count: 1, Signed: -1},
	})
	out := buf.String()
	assert.Contains(t, out, "FEMININO")
	assert.Contains(t, out, "MASCULINO")
	assert.Contains(t, out, "0-4")
}

func TestHomeNotLoaded(t *testing.T) {
	var buf bytes.Buffer
	Home(&buf, views.HomeView{Error: "boom"})
	assert.Equal(t, "No data loaded: boom\n", buf.String())
}

func TestHomeLoadedAt(t *testing.T) {
	var buf bytes.Buffer
	Home(&buf, views.HomeView{
		Loaded:   true,
		LoadedAt: time.Date(2024, 3, 21, 14, 5, 0, 0, time.UTC),
		Tables:   []views.TableInfo{{Name: "Socio", Kind: "socio", Rows: 2, Columns: 5}},
	})
	assert.Contains(t, buf.String(), "Loaded at 2024-03-21 14:05:00")
	assert.Contains(t, buf.String(), "Socio")
}

func TestDwellingsMeanMissing(t *testing.T) {
	var buf bytes.Buffer
	Dwellings(&buf, &views.DwellingsView{})
	assert.Contains(t, buf.String(), "n/a")
}
