// package models defines the data model for the song list service
package models

import (
	"time"
)

// Model defines the base interface for all persistent models in the song list service.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	UpdatedAt() time.Time // UpdatedAt returns when this model was last updated
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// OrderKey names the column a song list is sorted by.
type OrderKey string

const (
	OrderByName OrderKey = "name"
	OrderByBand OrderKey = "band"
	OrderByYear OrderKey = "year"
)

// DefaultOrder is used whenever a requested order key is missing or unknown.
const DefaultOrder = OrderByBand

// ParseOrderKey maps s to a known [OrderKey], falling back to [DefaultOrder].
func ParseOrderKey(s string) OrderKey {
	switch k := OrderKey(s); k {
	case OrderByName, OrderByBand, OrderByYear:
		return k
	default:
		return DefaultOrder
	}
}

// Column returns the songs table column for k.
func (k OrderKey) Column() string {
	return string(ParseOrderKey(string(k)))
}

// UploadResult is returned after a CSV upload has been stored.
type UploadResult struct {
	OK    bool `json:"ok"`
	Total int  `json:"total"`
}

// ClearResult is returned after all songs have been deleted.
type ClearResult struct {
	OK bool `json:"ok"`
}
