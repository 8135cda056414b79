package model

import (
	"time"

	"github.com/nasalinha/backend/internal/entity"
)

func ConvertUser(user *entity.User) User {
	if user == nil {
		return User{}
	}

	return User{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      string(user.Role),
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}

func ConvertShortUser(user *entity.User) ShortUser {
	if user == nil {
		return ShortUser{}
	}

	return ShortUser{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  string(user.Role),
	}
}

func ConvertSeason(season *entity.Season) Season {
	if season == nil {
		return Season{}
	}

	return Season{
		ID:               season.ID,
		Name:             season.Name,
		Description:      season.Description,
		StartDate:        season.StartDate.Format(time.RFC3339),
		EndDate:          season.EndDate.Format(time.RFC3339),
		PointsPerCheckIn: season.PointsPerCheckIn,
		IsActive:         season.IsActive,
		CreatedAt:        season.CreatedAt.Format(time.RFC3339),
	}
}

func ConvertCheckIn(checkIn *entity.CheckIn) CheckIn {
	if checkIn == nil {
		return CheckIn{}
	}

	return CheckIn{
		ID:        checkIn.ID,
		User:      ConvertShortUser(&checkIn.User),
		SeasonID:  checkIn.SeasonID,
		Season:    checkIn.Season.Name,
		PhotoURL:  checkIn.PhotoURL,
		Status:    string(checkIn.Status),
		Points:    checkIn.Points,
		Notes:     checkIn.Notes,
		CreatedAt: checkIn.CreatedAt.Format(time.RFC3339),
	}
}

func ConvertPoint(point *entity.Point) Point {
	if point == nil {
		return Point{}
	}

	return Point{
		ID:            point.ID,
		User:          ConvertShortUser(&point.User),
		SeasonID:      point.SeasonID,
		TotalPoints:   point.TotalPoints,
		CheckInsCount: point.CheckInsCount,
		CreatedAt:     point.CreatedAt.Format(time.RFC3339),
	}
}
