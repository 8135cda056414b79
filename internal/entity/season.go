package entity

import "time"

// Season is a bounded period accepting check-ins. At most one season is
// active at any time; the flip is enforced transactionally by the season
// domain, not by this model.
type Season struct {
	Base
	Name             string `gorm:"not null"`
	Description      string
	StartDate        time.Time
	EndDate          time.Time
	PointsPerCheckIn int  `gorm:"default:10"`
	IsActive         bool `gorm:"index;default:false"`
}
