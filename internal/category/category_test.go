package category_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/spendly/internal/category"
)

func TestDirectory_Match(t *testing.T) {
	dir := category.Directory{
		{ID: "c-groceries", Name: "Groceries", LocalizedName: new("Alimentari")},
		{ID: "c-transport", Name: "Transport"},
		{ID: "c-other", Name: "Other", LocalizedName: new("Altro")},
	}

	type testCase struct {
		name   string
		label  string
		wantID string
		wantOK bool
	}

	tests := []testCase{
		{name: "Name ignoring case", label: "groceries", wantID: "c-groceries", wantOK: true},
		{name: "Localized name fallback", label: "ALIMENTARI", wantID: "c-groceries", wantOK: true},
		{name: "Label is trimmed", label: "  Transport  ", wantID: "c-transport", wantOK: true},
		{name: "No match", label: "restaurants", wantOK: false},
		{name: "Empty label", label: "", wantOK: false},
		{name: "Whitespace label", label: "   ", wantOK: false},
		{name: "Partial names do not match", label: "Groc", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := dir.Match(tt.label)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}

func TestDirectory_Match_NamePassBeforeLocalizedPass(t *testing.T) {
	// "Altro" is the localized name of the first category and the display
	// name of the second; the name pass must win.
	dir := category.Directory{
		{ID: "c-1", Name: "Other", LocalizedName: new("Altro")},
		{ID: "c-2", Name: "Altro"},
	}

	got, ok := dir.Match("altro")
	assert.True(t, ok)
	assert.Equal(t, "c-2", got.ID)
}

func TestDirectory_Match_FirstInDirectoryOrderWins(t *testing.T) {
	dir := category.Directory{
		{ID: "c-old", Name: "Food"},
		{ID: "c-new", Name: "food"},
	}

	got, ok := dir.Match("FOOD")
	assert.True(t, ok)
	assert.Equal(t, "c-old", got.ID)

	reversed := category.Directory{dir[1], dir[0]}

	got, ok = reversed.Match("FOOD")
	assert.True(t, ok)
	assert.Equal(t, "c-new", got.ID)
}

func TestDirectory_GetAndNamed(t *testing.T) {
	dir := category.Directory{
		{ID: "c-1", Name: "Non classificato"},
		{ID: "c-2", Name: "Groceries"},
	}

	c, ok := dir.Get("c-2")
	assert.True(t, ok)
	assert.Equal(t, "Groceries", c.Name)

	_, ok = dir.Get("c-3")
	assert.False(t, ok)

	c, ok = dir.Named("non CLASSIFICATO")
	assert.True(t, ok)
	assert.Equal(t, "c-1", c.ID)
}
