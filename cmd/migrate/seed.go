package main

import (
	"errors"

	"hotel-rooms-be/internal/model"

	"github.com/fatih/color"
	"gorm.io/gorm"
)

const demoHotelName = "Demo Hotel"

// seedDemo is idempotent: it does nothing when the demo hotel already exists.
func seedDemo(db *gorm.DB) error {
	var existing model.Hotel
	err := db.Where("name = ?", demoHotelName).First(&existing).Error
	if err == nil {
		color.Yellow("Demo hotel already exists (id %d), skipping...", existing.Id)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		admin := model.User{Name: "Demo Admin", Email: "admin@demo-hotel.local"}
		if err := tx.Where(model.User{Email: admin.Email}).FirstOrCreate(&admin).Error; err != nil {
			return err
		}

		hotel := model.Hotel{Name: demoHotelName}
		if err := tx.Create(&hotel).Error; err != nil {
			return err
		}

		if err := tx.Create(&model.AdminHotel{HotelId: hotel.Id, UserId: admin.Id}).Error; err != nil {
			return err
		}

		rooms := []model.Room{
			{Name: "Deluxe Suite 101", Status: "available", HotelId: &hotel.Id},
			{Name: "Standard 102", Status: "occupied", HotelId: &hotel.Id},
			{Name: "Standard 103", Status: "maintenance", HotelId: &hotel.Id},
		}
		if err := tx.Create(&rooms).Error; err != nil {
			return err
		}

		color.Green("Created %s (id %d) with %d rooms, admin user id %d", hotel.Name, hotel.Id, len(rooms), admin.Id)
		return nil
	})
}
