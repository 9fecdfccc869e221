package model

import "innstay/shared/model"

const (
	TableName  = "hotels"
	EntityName = "hotel"

	FieldID          = "id"
	FieldOwnerID     = "owner_id"
	FieldName        = "name"
	FieldAddress     = "address"
	FieldDescription = "description"
	FieldImage       = "image"
	FieldRentalMode  = "rental_mode"
	FieldNightlyRate = "nightly_rate"
	FieldActive      = "active"
)

// Rental modes. A property is either booked room by room or as a whole
// villa, never both at once.
const (
	RentalModeIndividualRooms = "individual_rooms"
	RentalModeWholeProperty   = "whole_property"
)

type Hotel struct {
	ID          string   `db:"id"`
	OwnerID     string   `db:"owner_id"`
	Name        string   `db:"name"`
	Address     string   `db:"address"`
	Description string   `db:"description"`
	Image       string   `db:"image"`
	RentalMode  string   `db:"rental_mode"`
	NightlyRate *float64 `db:"nightly_rate"`
	Active      bool     `db:"active"`
	model.Metadata
}
