package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type namedItem struct {
	Name    string
	Kind    string
	Created string
}

func newNamedStore(items []namedItem) *ListStore[namedItem] {
	store := NewListStore("test",
		func(context.Context) ([]namedItem, error) { return items, nil },
		func(i namedItem) []string { return []string{i.Name, i.Kind} },
	)
	store.SetItems(items)
	return store
}

var sampleItems = []namedItem{
	{Name: "Emerald Ring", Kind: "ring", Created: "2024-01-03 10:00:00"},
	{Name: "gold bangle", Kind: "bangle", Created: "2024-01-01 10:00:00"},
	{Name: "Silver Chain", Kind: "chain", Created: "2024-01-02 10:00:00"},
	{Name: "Anklet", Kind: "anklet", Created: "2024-01-04 10:00:00"},
}

func TestVisibleIsAlwaysSubsetOfSource(t *testing.T) {
	store := newNamedStore(sampleItems)

	inSource := func(item namedItem) bool {
		for _, s := range sampleItems {
			if s == item {
				return true
			}
		}
		return false
	}

	views := []View[namedItem]{
		{},
		{Search: "ring"},
		{Search: "GOLD"},
		{Filter: func(i namedItem) bool { return i.Kind == "chain" }},
		{Search: "a", Filter: func(i namedItem) bool { return i.Name != "Anklet" },
			Less: func(a, b namedItem) bool { return CompareNames(a.Name, b.Name) < 0 }},
	}
	for _, view := range views {
		visible := store.Apply(view)
		assert.LessOrEqual(t, len(visible), len(sampleItems))
		for _, item := range visible {
			assert.True(t, inSource(item), "visible item %v not in source", item)
		}
	}
}

func TestApplyIsDeterministic(t *testing.T) {
	store := newNamedStore(sampleItems)

	view := View[namedItem]{
		Search: "a",
		Less:   func(a, b namedItem) bool { return CompareNames(a.Name, b.Name) < 0 },
	}
	first := store.Apply(view)
	second := store.Apply(view)
	assert.Equal(t, first, second)
}

func TestSearchIsCaseInsensitiveSubstring(t *testing.T) {
	store := newNamedStore(sampleItems)

	visible := store.Apply(View[namedItem]{Search: "SILVER"})
	require.Len(t, visible, 1)
	assert.Equal(t, "Silver Chain", visible[0].Name)
}

func TestNameSortDescendingReversesAscending(t *testing.T) {
	store := newNamedStore(sampleItems)

	asc := store.Apply(View[namedItem]{Less: func(a, b namedItem) bool {
		return CompareNames(a.Name, b.Name) < 0
	}})
	desc := store.Apply(View[namedItem]{Less: func(a, b namedItem) bool {
		return CompareNames(a.Name, b.Name) > 0
	}})

	require.Len(t, desc, len(asc))
	for i := range asc {
		assert.Equal(t, asc[i], desc[len(desc)-1-i])
	}
}

func TestNameSortIgnoresCase(t *testing.T) {
	store := newNamedStore(sampleItems)

	asc := store.Apply(View[namedItem]{Less: func(a, b namedItem) bool {
		return CompareNames(a.Name, b.Name) < 0
	}})

	// "gold bangle" sorts between Emerald and Silver despite the lowercase g.
	names := make([]string, len(asc))
	for i, item := range asc {
		names[i] = item.Name
	}
	assert.Equal(t, []string{"Anklet", "Emerald Ring", "gold bangle", "Silver Chain"}, names)
}

func TestFailedFetchYieldsEmptyCollection(t *testing.T) {
	fetchErr := errors.New("backend down")
	store := NewListStore("failing",
		func(context.Context) ([]namedItem, error) { return nil, fetchErr },
		func(i namedItem) []string { return []string{i.Name} },
	)
	store.SetItems(sampleItems)

	store.Refresh(context.Background())

	assert.Empty(t, store.Visible())
	assert.ErrorIs(t, store.LastError(), fetchErr)

	// A later successful SetItems clears the error.
	store.SetItems(sampleItems[:1])
	assert.NoError(t, store.LastError())
	assert.Len(t, store.Visible(), 1)
}

func TestSettersRecomputeIncrementally(t *testing.T) {
	store := newNamedStore(sampleItems)

	store.SetSearch("n")
	store.SetFilter(func(i namedItem) bool { return i.Kind != "anklet" })
	store.SetSort(func(a, b namedItem) bool { return a.Created < b.Created })

	visible := store.Visible()
	require.Len(t, visible, 3)
	assert.Equal(t, "gold bangle", visible[0].Name)
	assert.Equal(t, "Silver Chain", visible[1].Name)
	assert.Equal(t, "Emerald Ring", visible[2].Name)
}
