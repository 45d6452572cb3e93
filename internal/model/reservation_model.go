package model

import "time"

type Reservation struct {
	Id        uint      `gorm:"primaryKey;autoIncrement"`
	RoomId    uint      `gorm:"not null;uniqueIndex"`
	GuestName string    `gorm:"type:varchar(255);not null"`
	CheckIn   time.Time `gorm:"not null"`
	CheckOut  time.Time `gorm:"not null"`
	Status    string    `gorm:"type:varchar(32);not null;default:'confirmed'"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Reservation) TableName() string {
	return "reservations"
}
