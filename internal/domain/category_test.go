package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestValidColor(t *testing.T) {
	tests := []struct {
		color string
		want  bool
	}{
		{"#0d9488", true},
		{"#fff", true},
		{"#11223344", true},
		{"teal", true},
		{"rgb(1, 2, 3)", true},
		{"rgba(10,20,30,0.5)", true},
		{"", false},
		{"#12345", false},
		{"red; background: url(x)", false},
		{`"red"`, false},
		{"rgb(1,2)", false},
	}
	for _, tt := range tests {
		t.Run(tt.color, func(t *testing.T) {
			if got := ValidColor(tt.color); got != tt.want {
				t.Errorf("ValidColor(%q) = %v, want %v", tt.color, got, tt.want)
			}
		})
	}
}

func TestNewCategory(t *testing.T) {
	c, err := NewCategory("  Support ", "#abcdef")
	if err != nil {
		t.Fatalf("NewCategory: %v", err)
	}
	if !strings.HasPrefix(c.ID, "cat_") || c.Name != "Support" {
		t.Errorf("category = %+v", c)
	}

	if _, err := NewCategory("", "#abcdef"); err == nil {
		t.Error("empty name should fail")
	}
	if _, err := NewCategory("x", "url(evil)"); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("err = %v, want ErrInvalidColor", err)
	}
}

func TestCategories_Lookup(t *testing.T) {
	cs := Categories(DefaultCategories())
	if got := cs.Lookup("project"); got.Name != "Project" {
		t.Errorf("Lookup(project) = %+v", got)
	}
	if got := cs.Lookup("missing"); got.ID != DefaultCategoryID {
		t.Errorf("unknown id should fall back to the first category, got %+v", got)
	}
	if got := Categories(nil).Lookup("x"); got.ID != DefaultCategoryID {
		t.Errorf("empty registry should fall back to default, got %+v", got)
	}
}

func TestCategories_Without(t *testing.T) {
	cs := Categories(DefaultCategories())

	if _, err := cs.Without(DefaultCategoryID); !errors.Is(err, ErrProtectedCategory) {
		t.Errorf("err = %v, want ErrProtectedCategory", err)
	}
	if _, err := cs.Without("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}

	out, err := cs.Without("meeting")
	if err != nil {
		t.Fatalf("Without: %v", err)
	}
	if len(out) != 2 || out.Has("meeting") {
		t.Errorf("Without(meeting) = %+v", out)
	}
	if len(cs) != 3 {
		t.Error("Without must not modify the receiver")
	}
}

func TestCategories_Merge(t *testing.T) {
	cs := Categories(DefaultCategories())
	merged := cs.Merge([]Category{
		{ID: "meeting", Name: "Other name", Color: "#000"},
		{ID: "cat_x", Name: "X", Color: "#111"},
	})
	if len(merged) != 4 {
		t.Fatalf("len = %d, want 4", len(merged))
	}
	if merged.Lookup("meeting").Name != "Meetings" {
		t.Error("existing categories must win on id collision")
	}
}
