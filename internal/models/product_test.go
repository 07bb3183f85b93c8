package models

import (
	"errors"
	"testing"
)

func TestParseProductField(t *testing.T) {
	for _, f := range ProductFields {
		t.Run(string(f), func(t *testing.T) {
			got, err := ParseProductField(string(f))
			if err != nil {
				t.Fatalf("ParseProductField(%q): unexpected error: %v", f, err)
			}
			if got != f {
				t.Errorf("got %q, want %q", got, f)
			}
		})
	}

	if _, err := ParseProductField("price"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("unknown field: got %v, want ErrUnknownField", err)
	}
}

// TestProductRecordSetGet verifies that every field written through Set is
// read back unchanged through Get and lands in the matching struct field.
func TestProductRecordSetGet(t *testing.T) {
	p := NewProductRecord()
	for _, f := range ProductFields {
		if err := p.Set(f, "value-"+string(f)); err != nil {
			t.Fatalf("Set(%q): %v", f, err)
		}
	}
	for _, f := range ProductFields {
		got, err := p.Get(f)
		if err != nil {
			t.Fatalf("Get(%q): %v", f, err)
		}
		if want := "value-" + string(f); got != want {
			t.Errorf("Get(%q) = %q, want %q", f, got, want)
		}
	}
	if p.DestinationURL != "value-destination_url" {
		t.Errorf("DestinationURL = %q", p.DestinationURL)
	}
	if p.CTALabel != "value-cta_label" {
		t.Errorf("CTALabel = %q", p.CTALabel)
	}
}

func TestProductRecordSetUnknown(t *testing.T) {
	p := NewProductRecord()
	if err := p.Set(ProductField("price"), "10"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("got %v, want ErrUnknownField", err)
	}
}

func TestProductRecordClear(t *testing.T) {
	p := NewProductRecord()
	id := p.ID
	p.Title = "Honey"
	p.Description = "Raw"
	p.DestinationURL = "https://shopee.co.id/x"

	p.Clear()

	if p.ID != id {
		t.Errorf("ID changed: got %s, want %s", p.ID, id)
	}
	if p.Title != "" || p.Description != "" || p.DestinationURL != "" {
		t.Errorf("fields not cleared: %+v", p)
	}
	if p.Kind != "website" {
		t.Errorf("Kind = %q, want website", p.Kind)
	}
}

func TestArticleParametersHasWidget(t *testing.T) {
	tests := []struct {
		name     string
		fragment string
		want     bool
	}{
		{name: "empty", fragment: "", want: false},
		{name: "whitespace", fragment: "  \n\t", want: false},
		{name: "fragment", fragment: "<div>w</div>", want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ArticleParameters{WidgetFragment: tt.fragment}
			if got := p.HasWidget(); got != tt.want {
				t.Errorf("HasWidget() = %v, want %v", got, tt.want)
			}
		})
	}
}
