package domain

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const (
	DefaultCategoryID = "default"

	// AllCategories is the statistics filter sentinel that matches every category.
	AllCategories = "all"
)

// Category is a user-defined tag attached to sessions for grouping.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// DefaultCategories returns a fresh copy of the built-in category list.
func DefaultCategories() []Category {
	return []Category{
		{ID: DefaultCategoryID, Name: "General", Color: "#0d9488"},
		{ID: "meeting", Name: "Meetings", Color: "#10b981"},
		{ID: "project", Name: "Project", Color: "#f59e0b"},
	}
}

func defaultCategory() Category {
	return DefaultCategories()[0]
}

var (
	hexColor   = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	namedColor = regexp.MustCompile(`^[a-zA-Z]+$`)
	rgbColor   = regexp.MustCompile(`^rgba?\(\s*\d{1,3}\s*,\s*\d{1,3}\s*,\s*\d{1,3}\s*(?:,\s*(?:0|1|0?\.\d+)\s*)?\)$`)
)

// ValidColor reports whether c is a hex, named, rgb() or rgba() color.
// Anything else (quotes, url(), declarations) is rejected.
func ValidColor(c string) bool {
	return hexColor.MatchString(c) || namedColor.MatchString(c) || rgbColor.MatchString(c)
}

// NewCategory builds a category with a generated id.
func NewCategory(name, color string) (Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Category{}, fmt.Errorf("category name is required")
	}
	if !ValidColor(color) {
		return Category{}, fmt.Errorf("%q: %w", color, ErrInvalidColor)
	}
	return Category{
		ID:    "cat_" + uuid.NewString(),
		Name:  name,
		Color: color,
	}, nil
}

// Categories is the ordered category registry.
type Categories []Category

// Lookup returns the category with id. Unknown ids fall back to the first
// category; an empty registry falls back to the built-in default.
func (cs Categories) Lookup(id string) Category {
	for _, c := range cs {
		if c.ID == id {
			return c
		}
	}
	if len(cs) > 0 {
		return cs[0]
	}
	return defaultCategory()
}

// Has reports whether a category with id exists.
func (cs Categories) Has(id string) bool {
	for _, c := range cs {
		if c.ID == id {
			return true
		}
	}
	return false
}

// Without returns the registry minus id. The default category is protected.
func (cs Categories) Without(id string) (Categories, error) {
	if id == DefaultCategoryID {
		return cs, ErrProtectedCategory
	}
	if !cs.Has(id) {
		return cs, fmt.Errorf("category %q: %w", id, ErrNotFound)
	}

	out := make(Categories, 0, len(cs)-1)
	for _, c := range cs {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return out, nil
}

// Merge appends the categories of other whose ids are not yet present.
func (cs Categories) Merge(other []Category) Categories {
	out := append(Categories(nil), cs...)
	for _, c := range other {
		if c.ID == "" || out.Has(c.ID) {
			continue
		}
		out = append(out, c)
	}
	return out
}
