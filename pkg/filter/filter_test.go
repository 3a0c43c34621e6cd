package filter

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wronai/repodash/pkg/catalog"
)

var sample = catalog.Catalog{
	{Name: "a", Language: "Python"},
	{Name: "b", Language: "Go"},
	{Name: "c"},
	{Name: "d", Language: "Python"},
	{Name: "e", Language: "python"},
}

func TestLanguages(t *testing.T) {
	tests := []struct {
		name string
		in   catalog.Catalog
		want []string
	}{
		{"mixed", sample, []string{"Go", "Python", "python"}},
		{"empty", catalog.Catalog{}, []string{}},
		{"no languages", catalog.Catalog{{Name: "x"}}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Languages(tt.in)); diff != "" {
				t.Errorf("Languages mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		selector string
		want     []string
	}{
		{All, []string{"a", "b", "c", "d", "e"}},
		{"Python", []string{"a", "d"}},
		{"python", []string{"e"}},
		{"Go", []string{"b"}},
		{"Rust", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			got := Apply(sample, tt.selector).Names()
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Apply(%q) mismatch (-want +got):\n%s", tt.selector, diff)
			}
		})
	}
}

func TestState(t *testing.T) {
	s := New(sample)
	if !s.IsActive(All) {
		t.Fatalf("new state should start at %q, got %q", All, s.Active())
	}

	if !s.Select("Go") || s.Active() != "Go" {
		t.Errorf("Select(Go) failed, active=%q", s.Active())
	}
	if s.Select("Rust") {
		t.Error("Select should reject a language missing from the catalog")
	}
	if s.Active() != "Go" {
		t.Errorf("rejected selection changed active to %q", s.Active())
	}
	if !s.Select(All) || !s.IsActive(All) {
		t.Error("Select(all) should always succeed")
	}

	langs := s.Languages()
	langs[0] = "mutated"
	if s.Languages()[0] != "Go" {
		t.Error("Languages should return a copy")
	}

	want := []string{All, "Go", "Python", "python"}
	if diff := cmp.Diff(want, s.Selectors()); diff != "" {
		t.Errorf("Selectors mismatch (-want +got):\n%s", diff)
	}
}
