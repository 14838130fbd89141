package labels

import (
	"testing"

	"github.com/KaramelBytes/odpanel/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trips(rows ...[]string) *dataset.Table {
	return dataset.NewTable("Deslocamentos", []string{"cidadeori", "cidadeoritabulada", "cidadedes"}, rows)
}

func TestFromTrips_KeepsLastNonEmpty(t *testing.T) {
	tbl := trips(
		[]string{"6", "Guará", "14"},
		[]string{"6", "", "14"},
		[]string{"6", "   ", "14"},
	)
	l := FromTrips(tbl)
	got, ok := l.Lookup(6)
	require.True(t, ok)
	assert.Equal(t, "Guará", got)
}

func TestFromTrips_LastWinsAndTrims(t *testing.T) {
	l := FromTrips(trips(
		[]string{"14", "Taguatinga", "6"},
		[]string{"14.0", " Taguatinga Sul ", "6"},
		[]string{"x", "Nowhere", "6"},
		[]string{"", "Blank", "6"},
	))
	assert.Equal(t, "Taguatinga Sul", l.Label(14))
	assert.Equal(t, []int{14}, l.Codes())
}

func TestFromTrips_IsDeterministic(t *testing.T) {
	tbl := trips(
		[]string{"6", "Guará", "14"},
		[]string{"14", "Taguatinga", "6"},
		[]string{"3", "Ceilândia", "6"},
	)
	assert.Equal(t, FromTrips(tbl).Options(), FromTrips(tbl).Options())
}

func TestFromTrips_MissingColumns(t *testing.T) {
	tbl := dataset.NewTable("x", []string{"cidadeori"}, [][]string{{"6"}})
	l := FromTrips(tbl)
	assert.Equal(t, 0, l.Len())
	assert.Equal(t, "6", l.Label(6))
}

func TestStatic_OtherFallback(t *testing.T) {
	modes := Static(DefaultModes, nil)
	assert.Equal(t, "Car (driver)", modes.Label(13))
	assert.Equal(t, "Other (ID 99)", modes.Label(99))
	_, ok := modes.Lookup(99)
	assert.False(t, ok)

	raw := Static(DefaultModes, RawCode)
	assert.Equal(t, "99", raw.Label(99))
}

func TestStatic_CopiesInput(t *testing.T) {
	m := map[int]string{1: "Work"}
	l := Static(m, OtherID)
	m[1] = "changed"
	assert.Equal(t, "Work", l.Label(1))
}

func TestOptions_RoundTrip(t *testing.T) {
	l := FromTrips(trips(
		[]string{"14", "Taguatinga", "6"},
		[]string{"6", "Guará", "14"},
	))
	opts := l.Options()
	require.Len(t, opts, 2)
	assert.Equal(t, "6 - Guará", opts[0].String())
	assert.Equal(t, "14 - Taguatinga", opts[1].String())

	for _, o := range opts {
		code, err := ParseOption(o.String())
		require.NoError(t, err)
		assert.Equal(t, o.Code, code)
	}

	code, err := ParseOption("14")
	require.NoError(t, err)
	assert.Equal(t, 14, code)

	_, err = ParseOption("Guará")
	assert.Error(t, err)
}

func TestParseMap(t *testing.T) {
	m, err := ParseMap(map[string]string{"13": "Car", "1": "Walk"})
	require.NoError(t, err)
	assert.Equal(t, map[int]string{13: "Car", 1: "Walk"}, m)

	_, err = ParseMap(map[string]string{"car": "Car"})
	assert.Error(t, err)
}
