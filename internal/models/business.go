package models

import "strings"

// Business is one row of the fair-price business catalog.
// Records are built by the catalog loader and never modified afterwards.
type Business struct {
	// Name is the registered business name.
	Name string `json:"name"`
	// CategoryCode is the raw category code, empty when the column is absent.
	CategoryCode string `json:"category_code,omitempty"`
	// Category is the human-readable category name (e.g. "한식").
	Category string `json:"category"`
	// Address is the street address as published.
	Address string `json:"address"`
	// Phone is the contact number, or the "-" placeholder when missing.
	Phone string `json:"phone"`
	// Pride is the business's self-description ("자랑거리"). May be empty.
	Pride string `json:"pride"`
	// District is derived from Address: one of the 25 Seoul districts or "기타".
	District string `json:"district"`
	// Extra keeps every other column of the source row, keyed by trimmed header.
	Extra map[string]string `json:"extra,omitempty"`
}

// MissingInfo reports whether the business has no usable self-description.
func (b Business) MissingInfo() bool {
	return strings.TrimSpace(b.Pride) == ""
}
