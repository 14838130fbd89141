package dataset

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	a := NewTable("A", []string{"x", "y"}, [][]string{{"1", "2"}})
	b := NewTable("B", []string{"cidadeori", "cidadedes"}, [][]string{{"6", "14"}, {"14", "6"}})
	reg, err := NewRegistry(
		Entry{Name: "A", Kind: KindSocio, Table: a},
		Entry{Name: "B", Kind: KindTrips, Table: b},
	)
	require.NoError(t, err)
	return reg
}

func TestResolve_FindsTableByColumn(t *testing.T) {
	reg := testRegistry(t)

	tbl, err := reg.Resolve("cidadeori")
	require.NoError(t, err)
	assert.Equal(t, "B", tbl.Name)
	assert.Equal(t, 2, tbl.Len())
}

func TestResolve_NotFound(t *testing.T) {
	reg := testRegistry(t)

	_, err := reg.Resolve("escolaridadetabulada")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTableNotFound))

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "escolaridadetabulada", nf.Column)
	assert.Contains(t, err.Error(), "escolaridadetabulada")
}

func TestResolve_EarliestTableWins(t *testing.T) {
	first := NewTable("first", []string{"shared", "a"}, [][]string{{"1", "1"}})
	second := NewTable("second", []string{"shared", "b"}, [][]string{{"2", "2"}, {"3", "3"}})
	reg, err := NewRegistry(
		Entry{Name: "first", Kind: KindDwellings, Table: first},
		Entry{Name: "second", Kind: KindTrips, Table: second},
	)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		tbl, err := reg.Resolve("shared")
		require.NoError(t, err)
		assert.Equal(t, "first", tbl.Name)
	}
}

func TestResolve_ReturnsIndependentCopy(t *testing.T) {
	reg := testRegistry(t)

	tbl, err := reg.Resolve("cidadeori")
	require.NoError(t, err)
	tbl.Rows[0][0] = "999"
	tbl.Rows = tbl.Rows[:1]

	again, err := reg.Resolve("cidadeori")
	require.NoError(t, err)
	assert.Equal(t, "6", again.Rows[0][0])
	assert.Equal(t, 2, again.Len())
}

func TestRequire_ExplicitIdentity(t *testing.T) {
	reg := testRegistry(t)

	tbl, err := reg.Require(KindTrips, "cidadeori", "cidadedes")
	require.NoError(t, err)
	assert.Equal(t, "B", tbl.Name)

	_, err = reg.Require(KindTrips, "cidadeori", "modo")
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, []string{"modo"}, nf.Missing)
	assert.ErrorIs(t, err, ErrTableNotFound)

	_, err = reg.Require(KindDwellings)
	require.True(t, errors.As(err, &nf))
	require.NotNil(t, nf.Kind)
	assert.Equal(t, KindDwellings, *nf.Kind)
	assert.Contains(t, err.Error(), "Urbanisticos")
}

func TestNewRegistry_RejectsDuplicates(t *testing.T) {
	tbl := NewTable("t", []string{"a"}, nil)

	_, err := NewRegistry(
		Entry{Name: "same", Kind: KindTrips, Table: tbl},
		Entry{Name: "same", Kind: KindSocio, Table: tbl},
	)
	assert.Error(t, err)

	_, err = NewRegistry(
		Entry{Name: "one", Kind: KindTrips, Table: tbl},
		Entry{Name: "two", Kind: KindTrips, Table: tbl},
	)
	assert.Error(t, err)

	_, err = NewRegistry(Entry{Name: "nil", Kind: KindTrips})
	assert.Error(t, err)
}

func TestEntries_PreserveInsertionOrder(t *testing.T) {
	reg := testRegistry(t)
	entries := reg.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "A", entries[0].Name)
	assert.Equal(t, "B", entries[1].Name)

	entries[0] = Entry{}
	assert.Equal(t, "A", reg.Entries()[0].Name)
}

func TestParseCode(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"6", 6, true},
		{" 14 ", 14, true},
		{"6.0", 6, true},
		{"-1", -1, true},
		{"6.5", 0, false},
		{"", 0, false},
		{"abc", 0, false},
		{"NaN", 0, false},
	}
	for _, c := range cases {
		got, ok := ParseCode(c.in)
		assert.Equal(t, c.ok, ok, c.in)
		if c.ok {
			assert.Equal(t, c.want, got, c.in)
		}
	}
}

func TestTable_WhereAndColumn(t *testing.T) {
	tbl := NewTable("d", []string{"\ufeffstatus ", "name"}, [][]string{
		{"Pesquisa concluída", "Ana"},
		{"Recusa", "Bia"},
		{" Pesquisa concluída ", "Caio"},
		{"Pesquisa concluída"},
	})
	assert.Equal(t, []string{"status", "name"}, tbl.Columns)

	done := tbl.Where("status", StatusCompleted)
	assert.Equal(t, 3, done.Len())
	names, ok := done.Column("name")
	require.True(t, ok)
	assert.Equal(t, []string{"Ana", "Caio", ""}, names)

	assert.Equal(t, 0, tbl.Where("missing", "x").Len())
	assert.Equal(t, "", tbl.Value(10, "name"))
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("Deslocamentos")
	require.NoError(t, err)
	assert.Equal(t, KindTrips, k)

	k, err = ParseKind("DWELLINGS")
	require.NoError(t, err)
	assert.Equal(t, KindDwellings, k)

	_, err = ParseKind("cars")
	assert.Error(t, err)
}
