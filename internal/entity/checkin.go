package entity

import "github.com/nasalinha/backend/pkg/enum"

type CheckInStatus string

var (
	CheckInPending  = enum.New(CheckInStatus("PENDING"))
	CheckInApproved = enum.New(CheckInStatus("APPROVED"))
	CheckInRejected = enum.New(CheckInStatus("REJECTED"))
)

// CheckIn records one proof-of-presence event. Points is frozen at creation
// from the season rate; later season rate changes never touch past rows.
type CheckIn struct {
	Base

	UserID string `gorm:"index;not null"`
	User   User   `gorm:"foreignKey:UserID"`

	SeasonID string `gorm:"index;not null"`
	Season   Season `gorm:"foreignKey:SeasonID"`

	PhotoURL string
	Status   CheckInStatus `gorm:"default:PENDING"`
	Points   int
	Notes    string
}
