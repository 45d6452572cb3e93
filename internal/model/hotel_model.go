package model

type Hotel struct {
	Id         uint        `gorm:"primaryKey;autoIncrement"`
	Name       string      `gorm:"type:varchar(255);not null"`
	AdminHotel *AdminHotel `gorm:"foreignKey:HotelId"`
}

func (Hotel) TableName() string {
	return "hotels"
}

type AdminHotel struct {
	Id      uint  `gorm:"primaryKey;autoIncrement"`
	HotelId uint  `gorm:"not null;uniqueIndex"`
	UserId  uint  `gorm:"not null;index"`
	User    *User `gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
}

func (AdminHotel) TableName() string {
	return "admin_hotels"
}
