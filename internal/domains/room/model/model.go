package model

import "innstay/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID             = "id"
	FieldHotelID        = "hotel_id"
	FieldNumber         = "number"
	FieldRoomType       = "room_type"
	FieldAirConditioned = "air_conditioned"
	FieldNightlyRate    = "nightly_rate"
	FieldImage          = "image"
	FieldActive         = "active"
)

const (
	RoomTypeSingle = "single"
	RoomTypeDouble = "double"
	RoomTypeSuite  = "suite"
	RoomTypeFamily = "family"
)

type Room struct {
	ID             string  `db:"id"`
	HotelID        string  `db:"hotel_id"`
	Number         string  `db:"number"`
	RoomType       string  `db:"room_type"`
	AirConditioned bool    `db:"air_conditioned"`
	NightlyRate    float64 `db:"nightly_rate"`
	Image          string  `db:"image"`
	Active         bool    `db:"active"`
	model.Metadata
}
