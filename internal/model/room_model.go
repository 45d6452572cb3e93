package model

import "time"

type Room struct {
	Id          uint         `gorm:"primaryKey;autoIncrement"`
	Name        string       `gorm:"type:varchar(255);not null"`
	Status      string       `gorm:"type:varchar(32);not null;default:'available';index"`
	Image       string       `gorm:"type:varchar(255);not null;default:''"`
	HotelId     *uint        `gorm:"index"`
	Hotel       *Hotel       `gorm:"foreignKey:HotelId;constraint:OnDelete:SET NULL"`
	Reservation *Reservation `gorm:"foreignKey:RoomId"`
	CreatedAt   time.Time    `gorm:"autoCreateTime"`
	UpdatedAt   time.Time    `gorm:"autoUpdateTime"`
}

func (Room) TableName() string {
	return "rooms"
}
