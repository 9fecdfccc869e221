package dto

import (
	"mime/multipart"

	"innstay/internal/domains/room/model"
	"innstay/shared"
	gDto "innstay/shared/dto"
	gModel "innstay/shared/model"
	"innstay/shared/timezone"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	Number         string                `json:"number"          validate:"required,max=20"`
	RoomType       string                `json:"room_type"       validate:"required,oneof=single double suite family"`
	AirConditioned bool                  `json:"air_conditioned"`
	NightlyRate    float64               `json:"nightly_rate"    validate:"required,gt=0"`
	Image          *multipart.FileHeader `json:"image"           validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile      multipart.File        `json:"-"`
}

func (c *CreateRoomRequest) ToModel(user, hotelID, imageURL string) model.Room {
	return model.Room{
		ID:             uuid.NewString(),
		HotelID:        hotelID,
		Number:         c.Number,
		RoomType:       c.RoomType,
		AirConditioned: c.AirConditioned,
		NightlyRate:    c.NightlyRate,
		Image:          imageURL,
		Active:         true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRoomRequest struct {
	Number         string                `db:"number"          json:"number"          validate:"omitempty,max=20"`
	RoomType       string                `db:"room_type"       json:"room_type"       validate:"omitempty,oneof=single double suite family"`
	AirConditioned *bool                 `db:"air_conditioned" json:"air_conditioned" validate:"omitempty"`
	NightlyRate    *float64              `db:"nightly_rate"    json:"nightly_rate"    validate:"omitempty,gt=0"`
	Image          *multipart.FileHeader `json:"image"         validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile      multipart.File        `json:"-"`
	Active         *bool                 `db:"active"          json:"active"          validate:"omitempty"`
}

type RoomResponse struct {
	ID             string  `json:"id"`
	HotelID        string  `json:"hotel_id"`
	Number         string  `json:"number"`
	RoomType       string  `json:"room_type"`
	AirConditioned bool    `json:"air_conditioned"`
	NightlyRate    float64 `json:"nightly_rate"`
	Image          string  `json:"image"`
	Active         bool    `json:"active"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.HotelID = model.HotelID
	r.Number = model.Number
	r.RoomType = model.RoomType
	r.AirConditioned = model.AirConditioned
	r.NightlyRate = model.NightlyRate
	r.Image = model.Image
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
