package entity

import "time"

// RefreshToken stores one token family per login. Family is the sha256 of
// the client-held family id; Counter increases on every rotation and a
// mismatch revokes the whole family.
type RefreshToken struct {
	Family string `gorm:"primaryKey"`

	UserID string `gorm:"not null"`
	User   User   `gorm:"foreignKey:UserID"`

	Counter    uint64
	Expiration time.Time
}
