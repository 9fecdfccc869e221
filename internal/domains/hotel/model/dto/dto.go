package dto

import (
	"mime/multipart"

	"innstay/internal/domains/hotel/model"
	"innstay/shared"
	gDto "innstay/shared/dto"
	gModel "innstay/shared/model"
	"innstay/shared/timezone"

	"github.com/google/uuid"
)

type CreateHotelRequest struct {
	Name        string                `json:"name"         validate:"required,max=150"`
	Address     string                `json:"address"      validate:"required,max=255"`
	Description string                `json:"description"  validate:"omitempty,max=2000"`
	RentalMode  string                `json:"rental_mode"  validate:"required,oneof=individual_rooms whole_property"`
	NightlyRate *float64              `json:"nightly_rate" validate:"omitempty,gt=0"`
	FacilityIDs []string              `json:"facility_ids" validate:"omitempty,dive,uuid4"`
	Image       *multipart.FileHeader `json:"image"        validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile   multipart.File        `json:"-"`
}

func (c *CreateHotelRequest) ToModel(ownerID string, imageURL string) model.Hotel {
	return model.Hotel{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Name:        c.Name,
		Address:     c.Address,
		Description: c.Description,
		Image:       imageURL,
		RentalMode:  c.RentalMode,
		NightlyRate: c.NightlyRate,
		Active:      true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  ownerID,
			ModifiedBy: ownerID,
		},
	}
}

type UpdateHotelRequest struct {
	Name        string                `db:"name"         json:"name"         validate:"omitempty,max=150"`
	Address     string                `db:"address"      json:"address"      validate:"omitempty,max=255"`
	Description string                `db:"description"  json:"description"  validate:"omitempty,max=2000"`
	NightlyRate *float64              `db:"nightly_rate" json:"nightly_rate" validate:"omitempty,gt=0"`
	FacilityIDs []string              `json:"facility_ids" validate:"omitempty,dive,uuid4"`
	Image       *multipart.FileHeader `json:"image"        validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile   multipart.File        `json:"-"`
	Active      *bool                 `db:"active" json:"active" validate:"omitempty"`
}

type FacilityResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (f *FacilityResponse) FromModel(model model.Facility) {
	f.ID = model.ID
	f.Name = model.Name
}

type HotelResponse struct {
	ID          string             `json:"id"`
	OwnerID     string             `json:"owner_id"`
	Name        string             `json:"name"`
	Address     string             `json:"address"`
	Description string             `json:"description"`
	Image       string             `json:"image"`
	RentalMode  string             `json:"rental_mode"`
	NightlyRate *float64           `json:"nightly_rate,omitempty"`
	Facilities  []FacilityResponse `json:"facilities,omitempty"`
	Active      bool               `json:"active"`
	gDto.Metadata
}

func (r *HotelResponse) FromModel(model model.Hotel) {
	r.ID = model.ID
	r.OwnerID = model.OwnerID
	r.Name = model.Name
	r.Address = model.Address
	r.Description = model.Description
	r.Image = model.Image
	r.RentalMode = model.RentalMode
	r.NightlyRate = model.NightlyRate
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

func (r *HotelResponse) WithFacilities(facilities []model.Facility) {
	r.Facilities = make([]FacilityResponse, len(facilities))
	for i, facility := range facilities {
		r.Facilities[i].FromModel(facility)
	}
}

type GetHotelsResponse struct {
	Hotels    []HotelResponse `json:"hotels"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetHotelsResponse) FromModels(models []model.Hotel, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Hotels = make([]HotelResponse, len(models))
	for i, mod := range models {
		r.Hotels[i].FromModel(mod)
	}
}
