package entity

import "time"

// Migration tracks which schema versions were applied to this database.
type Migration struct {
	Version   string `gorm:"primaryKey"`
	CreatedAt time.Time
}
