// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrUnknownField is returned when a product field name is not recognised.
var ErrUnknownField = errors.New("models: unknown product field")

// ProductRecord is one affiliate product card in the widget editor.
// Records are owned by the editing session and replaced wholesale on save.
type ProductRecord struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	ImageURL       string    `json:"image_url"`
	DestinationURL string    `json:"destination_url"`
	CTALabel       string    `json:"cta_label"`
	SiteName       string    `json:"site_name"`
	Kind           string    `json:"kind"`
}

// NewProductRecord returns an empty record with a fresh identity.
func NewProductRecord() ProductRecord {
	return ProductRecord{ID: uuid.New(), Kind: "website"}
}

// ProductField names one editable field of a ProductRecord.
type ProductField string

const (
	FieldTitle          ProductField = "title"
	FieldDescription    ProductField = "description"
	FieldImageURL       ProductField = "image_url"
	FieldDestinationURL ProductField = "destination_url"
	FieldCTALabel       ProductField = "cta_label"
	FieldSiteName       ProductField = "site_name"
	FieldKind           ProductField = "kind"
)

// ProductFields lists every editable field in display order.
var ProductFields = []ProductField{
	FieldTitle,
	FieldDescription,
	FieldImageURL,
	FieldDestinationURL,
	FieldCTALabel,
	FieldSiteName,
	FieldKind,
}

// ParseProductField converts a wire name into a ProductField.
func ParseProductField(name string) (ProductField, error) {
	for _, f := range ProductFields {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// Set assigns value to the named field.
func (p *ProductRecord) Set(field ProductField, value string) error {
	switch field {
	case FieldTitle:
		p.Title = value
	case FieldDescription:
		p.Description = value
	case FieldImageURL:
		p.ImageURL = value
	case FieldDestinationURL:
		p.DestinationURL = value
	case FieldCTALabel:
		p.CTALabel = value
	case FieldSiteName:
		p.SiteName = value
	case FieldKind:
		p.Kind = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// Get returns the current value of the named field.
func (p *ProductRecord) Get(field ProductField) (string, error) {
	switch field {
	case FieldTitle:
		return p.Title, nil
	case FieldDescription:
		return p.Description, nil
	case FieldImageURL:
		return p.ImageURL, nil
	case FieldDestinationURL:
		return p.DestinationURL, nil
	case FieldCTALabel:
		return p.CTALabel, nil
	case FieldSiteName:
		return p.SiteName, nil
	case FieldKind:
		return p.Kind, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, field)
}

// Clear resets the editable content while keeping the identity.
func (p *ProductRecord) Clear() {
	*p = ProductRecord{ID: p.ID, Kind: p.Kind}
}
