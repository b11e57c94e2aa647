package domain

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewArchiveStampsBuiltAt(t *testing.T) {
	at := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(at))
	defer SetClock(nil)

	a := NewArchive()
	assert.Equal(t, at, a.BuiltAt)
}

func TestArchiveAddFile(t *testing.T) {
	sheets := []Sheet{
		{Name: "f000", Values: []float64{1, 2}},
		{Name: "f012", Values: []float64{3}},
	}

	t.Run("valid insert", func(t *testing.T) {
		a := NewArchive()
		require.NoError(t, a.AddFile("run_01", "member_01.xlsx", sheets))

		got, ok := a.Get("run_01", "member_01.xlsx")
		require.True(t, ok)
		assert.Equal(t, sheets, got)
		assert.Equal(t, 1, a.NumFiles())
	})

	t.Run("empty run name", func(t *testing.T) {
		a := NewArchive()
		assert.Error(t, a.AddFile("", "member_01.xlsx", sheets))
	})

	t.Run("empty file name", func(t *testing.T) {
		a := NewArchive()
		assert.Error(t, a.AddFile("run_01", "", sheets))
	})

	t.Run("duplicate file", func(t *testing.T) {
		a := NewArchive()
		require.NoError(t, a.AddFile("run_01", "member_01.xlsx", sheets))
		assert.Error(t, a.AddFile("run_01", "member_01.xlsx", sheets))
	})

	t.Run("duplicate sheet name", func(t *testing.T) {
		a := NewArchive()
		dup := []Sheet{
			{Name: "f000", Values: []float64{1}},
			{Name: "f000", Values: []float64{2}},
		}
		assert.Error(t, a.AddFile("run_01", "member_01.xlsx", dup))
	})

	t.Run("nil series", func(t *testing.T) {
		a := NewArchive()
		assert.Error(t, a.AddFile("run_01", "member_01.xlsx", []Sheet{{Name: "f000"}}))
	})

	t.Run("empty sheet list is fine", func(t *testing.T) {
		a := NewArchive()
		require.NoError(t, a.AddFile("run_01", "member_01.xlsx", []Sheet{}))
		got, ok := a.Get("run_01", "member_01.xlsx")
		require.True(t, ok)
		assert.Empty(t, got)
	})
}

func TestArchiveSortedIteration(t *testing.T) {
	a := NewArchive()
	sheets := []Sheet{{Name: "f000", Values: []float64{1}}}

	// Insert out of order on purpose.
	require.NoError(t, a.AddFile("run_03", "b.xlsx", sheets))
	require.NoError(t, a.AddFile("run_01", "z.xlsx", sheets))
	require.NoError(t, a.AddFile("run_02", "a.xlsx", sheets))
	require.NoError(t, a.AddFile("run_01", "a.xlsx", sheets))

	assert.Equal(t, []string{"run_01", "run_02", "run_03"}, a.Runs())

	files, ok := a.Files("run_01")
	require.True(t, ok)
	assert.Equal(t, []string{"a.xlsx", "z.xlsx"}, files)

	var visited []string
	a.Walk(func(run, file string, _ []Sheet) {
		visited = append(visited, run+"/"+file)
	})
	assert.Equal(t, []string{
		"run_01/a.xlsx",
		"run_01/z.xlsx",
		"run_02/a.xlsx",
		"run_03/b.xlsx",
	}, visited)
}

func TestArchiveLookupMisses(t *testing.T) {
	a := NewArchive()
	require.NoError(t, a.AddFile("run_01", "a.xlsx", []Sheet{{Name: "f000", Values: []float64{1}}}))

	_, ok := a.Get("run_09", "a.xlsx")
	assert.False(t, ok)
	_, ok = a.Get("run_01", "missing.xlsx")
	assert.False(t, ok)
	_, ok = a.Files("run_09")
	assert.False(t, ok)
}

func TestFileEntrySheetLookup(t *testing.T) {
	fe := FileEntry{Name: "a.xlsx", Sheets: []Sheet{
		{Name: "f000", Values: []float64{1, 2}},
		{Name: "f012", Values: []float64{3}},
	}}

	values, ok := fe.Sheet("f012")
	require.True(t, ok)
	assert.Equal(t, []float64{3}, values)

	_, ok = fe.Sheet("f999")
	assert.False(t, ok)

	assert.Equal(t, []string{"f000", "f012"}, fe.SheetNames())
}

func TestArchiveEqual(t *testing.T) {
	build := func() *Archive {
		a := NewArchive()
		require.NoError(t, a.AddFile("run_01", "a.xlsx", []Sheet{{Name: "f000", Values: []float64{1, 2}}}))
		require.NoError(t, a.AddFile("run_02", "b.xlsx", []Sheet{{Name: "f000", Values: []float64{3}}}))
		return a
	}

	t.Run("identical content", func(t *testing.T) {
		a, b := build(), build()
		b.BuiltAt = b.BuiltAt.Add(time.Hour)
		assert.True(t, a.Equal(b))
	})

	t.Run("differing value", func(t *testing.T) {
		a, b := build(), build()
		sheets, _ := b.Get("run_01", "a.xlsx")
		sheets[0].Values[1] = 99
		assert.False(t, a.Equal(b))
	})

	t.Run("missing file", func(t *testing.T) {
		a := build()
		b := NewArchive()
		require.NoError(t, b.AddFile("run_01", "a.xlsx", []Sheet{{Name: "f000", Values: []float64{1, 2}}}))
		assert.False(t, a.Equal(b))
	})
}
