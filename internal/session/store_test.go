package session

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/KaramelBytes/odpanel/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countingLoader(t *testing.T) (LoadFunc, *int32) {
	t.Helper()
	var calls int32
	return func(context.Context) (*dataset.Registry, error) {
		n := atomic.AddInt32(&calls, 1)
		tbl := dataset.NewTable("Deslocamentos", []string{"cidadeori"}, [][]string{{"6"}})
		tbl.Skipped = int(n)
		return dataset.NewRegistry(dataset.Entry{Name: "Deslocamentos", Kind: dataset.KindTrips, Table: tbl})
	}, &calls
}

func TestStore_SessionsHaveIndependentRegistries(t *testing.T) {
	load, calls := countingLoader(t)
	st := NewStore(load, 8, time.Minute)

	a, err := st.Create(context.Background())
	require.NoError(t, err)
	b, err := st.Create(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
	assert.EqualValues(t, 2, atomic.LoadInt32(calls))

	ra, err := a.Registry()
	require.NoError(t, err)
	rb, err := b.Registry()
	require.NoError(t, err)
	assert.NotSame(t, ra, rb)
	assert.Equal(t, 2, st.Len())
}

func TestStore_GetReloadDelete(t *testing.T) {
	load, _ := countingLoader(t)
	st := NewStore(load, 8, time.Minute)
	s, err := st.Create(context.Background())
	require.NoError(t, err)
	before, _ := s.Registry()

	got, err := st.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	_, err = st.Reload(context.Background(), s.ID)
	require.NoError(t, err)
	after, err := s.Registry()
	require.NoError(t, err)
	assert.NotSame(t, before, after)

	assert.True(t, st.Delete(s.ID))
	assert.False(t, st.Delete(s.ID))
	_, err = st.Get(s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = st.Reload(context.Background(), s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_FailedLoadIsKeptInSession(t *testing.T) {
	boom := errors.New("boom")
	st := NewStore(func(context.Context) (*dataset.Registry, error) {
		return nil, boom
	}, 8, time.Minute)

	s, err := st.Create(context.Background())
	require.NoError(t, err)
	assert.False(t, s.LoadedAt().IsZero())

	_, err = s.Registry()
	assert.ErrorIs(t, err, ErrNotLoaded)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "boom")
}

func TestStore_Expiration(t *testing.T) {
	load, _ := countingLoader(t)
	st := NewStore(load, 8, 20*time.Millisecond)
	s, err := st.Create(context.Background())
	require.NoError(t, err)

	time.Sleep(60 * time.Millisecond)
	_, err = st.Get(s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSession_FailedReloadDropsRegistry(t *testing.T) {
	reg, err := dataset.NewRegistry()
	require.NoError(t, err)
	s := FromRegistry("cli", reg)
	got, err := s.Registry()
	require.NoError(t, err)
	assert.Same(t, reg, got)

	err = s.Load(context.Background(), func(context.Context) (*dataset.Registry, error) {
		return nil, dataset.ErrMissingFile
	})
	assert.ErrorIs(t, err, dataset.ErrMissingFile)
	_, err = s.Registry()
	assert.ErrorIs(t, err, ErrNotLoaded)
}
