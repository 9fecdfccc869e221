package model

import "innstay/shared/model"

const (
	FacilityTableName  = "facilities"
	FacilityEntityName = "facility"

	FacilityFieldID   = "id"
	FacilityFieldName = "name"

	HotelFacilityTableName  = "hotel_facilities"
	HotelFacilityEntityName = "hotel_facility"

	HotelFacilityFieldHotelID    = "hotel_id"
	HotelFacilityFieldFacilityID = "facility_id"
)

type Facility struct {
	ID   string `db:"id"`
	Name string `db:"name"`
	model.Metadata
}

type HotelFacility struct {
	HotelID    string `db:"hotel_id"`
	FacilityID string `db:"facility_id"`
}
