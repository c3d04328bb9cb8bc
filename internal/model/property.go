package model

import (
	"time"
)

// PropertyType enumerates the kinds of rentable property
type PropertyType string

const (
	PropertyApartment  PropertyType = "apartment"
	PropertyRoom       PropertyType = "room"
	PropertyOffice     PropertyType = "office"
	PropertyIndustrial PropertyType = "industrial"
	PropertyTownHouse  PropertyType = "town_house"
	PropertyBungalow   PropertyType = "bungalow"
)

// PropertyTypes lists every accepted property type
var PropertyTypes = []PropertyType{
	PropertyApartment,
	PropertyRoom,
	PropertyOffice,
	PropertyIndustrial,
	PropertyTownHouse,
	PropertyBungalow,
}

// Valid reports whether t is one of PropertyTypes
func (t PropertyType) Valid() bool {
	for _, known := range PropertyTypes {
		if t == known {
			return true
		}
	}
	return false
}

// PropertyStatus is the occupancy state of a property
type PropertyStatus string

const (
	StatusAvailable       PropertyStatus = "available"
	StatusRented          PropertyStatus = "rented"
	StatusUnderRenovation PropertyStatus = "under_renovation"
)

// Valid reports whether s is a known status
func (s PropertyStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusRented, StatusUnderRenovation:
		return true
	}
	return false
}

// Property represents a rentable unit owned by a user
type Property struct {
	ID           uint           `gorm:"primaryKey"`
	Address      string         `gorm:"type:varchar(150);uniqueIndex;not null"`
	Description  *string        `gorm:"type:text"`
	OwnerID      *uint          `gorm:"index"`
	Owner        *User          `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	PropertyType PropertyType   `gorm:"type:varchar(30);not null"`
	Status       PropertyStatus `gorm:"type:varchar(30);not null;default:'available'"`
	Area         float64        `gorm:"not null"`
	NumOfRooms   int            `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
