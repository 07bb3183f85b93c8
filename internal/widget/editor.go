// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package widget

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"autoblog/internal/models"
)

// ErrRecordNotFound is returned when an edit targets an unknown record id.
var ErrRecordNotFound = errors.New("widget: product record not found")

// Draft is the editable state of a widget before it is saved: the ordered
// product records and the chosen layout.
type Draft struct {
	Products []models.ProductRecord `json:"products"`
	Options  Options                `json:"options"`
}

// NewDraft returns a draft holding one empty record, which is what the
// editor shows when nothing has been entered yet.
func NewDraft() Draft {
	return Draft{
		Products: []models.ProductRecord{models.NewProductRecord()},
		Options:  DefaultOptions,
	}
}

// Add appends rec (assigning an id if it has none) and returns the stored copy.
// Going from one to two vertical cards switches a single-column layout to two
// columns.
func (d *Draft) Add(rec models.ProductRecord) models.ProductRecord {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.Kind == "" {
		rec.Kind = "website"
	}
	d.Products = append(d.Products, rec)

	opts := d.Options.Normalize()
	if len(d.Products) > 1 && opts.Columns == 1 && opts.Orientation == Vertical {
		opts.Columns = 2
	}
	d.Options = opts
	return rec
}

// Remove deletes the record with the given id. The last remaining record is
// cleared rather than removed so the draft never becomes empty.
func (d *Draft) Remove(id uuid.UUID) error {
	idx := d.index(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}
	if len(d.Products) == 1 {
		d.Products[0].Clear()
		return nil
	}
	d.Products = append(d.Products[:idx], d.Products[idx+1:]...)
	return nil
}

// Update sets one field on the record with the given id.
func (d *Draft) Update(id uuid.UUID, field models.ProductField, value string) (models.ProductRecord, error) {
	idx := d.index(id)
	if idx < 0 {
		return models.ProductRecord{}, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}
	if err := d.Products[idx].Set(field, value); err != nil {
		return models.ProductRecord{}, err
	}
	return d.Products[idx], nil
}

// Find returns a pointer to the record with the given id.
func (d *Draft) Find(id uuid.UUID) (*models.ProductRecord, error) {
	idx := d.index(id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}
	return &d.Products[idx], nil
}

func (d *Draft) index(id uuid.UUID) int {
	for i := range d.Products {
		if d.Products[i].ID == id {
			return i
		}
	}
	return -1
}
