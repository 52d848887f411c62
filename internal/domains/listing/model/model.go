package model

import "nyumba/shared/model"

const (
	TableName  = "listings"
	EntityName = "listing"

	FieldID           = "id"
	FieldHostID       = "host_id"
	FieldTitle        = "title"
	FieldLocation     = "location"
	FieldPropertyType = "property_type"
	FieldNightlyPrice = "nightly_price"
	FieldMaxGuests    = "max_guests"
	FieldActive       = "active"
)

type Listing struct {
	ID           string  `db:"id"`
	HostID       string  `db:"host_id"`
	Title        string  `db:"title"`
	Location     string  `db:"location"`
	PropertyType string  `db:"property_type"`
	NightlyPrice float64 `db:"nightly_price"`
	MaxGuests    int     `db:"max_guests"`
	Active       bool    `db:"active"`
	model.Metadata
}
