package category

import (
	"strings"
	"time"
)

// Category is an entry of the user's category directory.
type Category struct {
	ID   string
	Name string
	// LocalizedName is an optional alternate display name used as a second
	// matching pass.
	LocalizedName *string
	Color         string
	Icon          string
	CreatedAt     time.Time
}

// Directory is a read-only snapshot of categories in stable order (creation
// time, then id). Matching depends on this order when names collide.
type Directory []Category

// Match resolves a free-text label to a category by case-insensitive exact
// comparison: first against Name, then against LocalizedName. The first
// category in directory order wins within each pass.
func (d Directory) Match(label string) (Category, bool) {
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" {
		return Category{}, false
	}

	for _, c := range d {
		if strings.ToLower(c.Name) == label {
			return c, true
		}
	}

	for _, c := range d {
		if c.LocalizedName == nil {
			continue
		}

		if strings.ToLower(*c.LocalizedName) == label {
			return c, true
		}
	}

	return Category{}, false
}

// Get returns the category with the given id.
func (d Directory) Get(id string) (Category, bool) {
	for _, c := range d {
		if c.ID == id {
			return c, true
		}
	}

	return Category{}, false
}

// Named returns the first category whose name equals name, ignoring case.
func (d Directory) Named(name string) (Category, bool) {
	for _, c := range d {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}

	return Category{}, false
}
