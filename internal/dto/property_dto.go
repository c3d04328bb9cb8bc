// Package dto holds the JSON shapes of requests and responses.
package dto

import (
	"rental-service/internal/model"
	"rental-service/internal/service"
)

// PropertyRequest is the body of property create and update
type PropertyRequest struct {
	Address      string  `json:"address" validate:"required,max=150"`
	Description  *string `json:"description"`
	PropertyType string  `json:"property_type" validate:"required,oneof=apartment room office industrial town_house bungalow"`
	Status       string  `json:"status" validate:"omitempty,oneof=available rented under_renovation"`
	Area         float64 `json:"area" validate:"gte=1"`
	NumOfRooms   int     `json:"num_of_rooms" validate:"gte=1"`
}

func (r PropertyRequest) ToInput() service.PropertyInput {
	return service.PropertyInput{
		Address:      r.Address,
		Description:  r.Description,
		PropertyType: model.PropertyType(r.PropertyType),
		Status:       model.PropertyStatus(r.Status),
		Area:         r.Area,
		NumOfRooms:   r.NumOfRooms,
	}
}

type PropertyResponse struct {
	ID           uint    `json:"id"`
	Address      string  `json:"address"`
	Description  *string `json:"description"`
	PropertyType string  `json:"property_type"`
	Status       string  `json:"status"`
	Area         float64 `json:"area"`
	NumOfRooms   int     `json:"num_of_rooms"`
}

func NewPropertyResponse(p model.Property) PropertyResponse {
	return PropertyResponse{
		ID:           p.ID,
		Address:      p.Address,
		Description:  p.Description,
		PropertyType: string(p.PropertyType),
		Status:       string(p.Status),
		Area:         p.Area,
		NumOfRooms:   p.NumOfRooms,
	}
}

func NewPropertyList(properties []model.Property) []PropertyResponse {
	out := make([]PropertyResponse, 0, len(properties))
	for _, p := range properties {
		out = append(out, NewPropertyResponse(p))
	}
	return out
}
