package specification

import (
	"strings"

	"gorm.io/gorm"
)

// WithImage keeps rooms that reference an image file
type WithImage struct{}

func (s WithImage) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("rooms.image IS NOT NULL AND rooms.image <> ''")
}

type ByHotelID struct {
	HotelID uint
}

func (s ByHotelID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("rooms.hotel_id = ?", s.HotelID)
}

// NameContains is a case-insensitive substring match. LIKE wildcards in
// the input are matched literally.
type NameContains struct {
	Name string
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (s NameContains) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("rooms.name ILIKE ?", "%"+likeEscaper.Replace(s.Name)+"%")
}

type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("rooms.status = ?", s.Status)
}

// ManagedByAdmin resolves rooms -> hotels -> admin_hotels for one admin user
type ManagedByAdmin struct {
	AdminID uint
}

func (s ManagedByAdmin) Apply(db *gorm.DB) *gorm.DB {
	return db.
		Joins("JOIN hotels ON hotels.id = rooms.hotel_id").
		Joins("JOIN admin_hotels ON admin_hotels.hotel_id = hotels.id").
		Where("admin_hotels.user_id = ?", s.AdminID)
}

type WithReservation struct{}

func (s WithReservation) Apply(db *gorm.DB) *gorm.DB {
	return db.Preload("Reservation")
}
