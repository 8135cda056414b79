package entity

// Point is the per-(user, season) ledger row. The pair is unique; accrual
// goes through a single upsert-with-increment statement. Admin edits of
// check-ins do not reconcile this aggregate.
type Point struct {
	Base

	UserID string `gorm:"uniqueIndex:idx_points_user_season;not null"`
	User   User   `gorm:"foreignKey:UserID"`

	SeasonID string `gorm:"uniqueIndex:idx_points_user_season;not null"`
	Season   Season `gorm:"foreignKey:SeasonID"`

	TotalPoints   int
	CheckInsCount int
}
