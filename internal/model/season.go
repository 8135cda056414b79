package model

type Season struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	PointsPerCheckIn int    `json:"points_per_check_in"`
	IsActive         bool   `json:"is_active"`
	CreatedAt        string `json:"created_at"`
}

type CreateSeasonRequest struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	PointsPerCheckIn int    `json:"points_per_check_in"`
}

type CreateSeasonResponse struct {
	Season Season `json:"season"`
}

type GetSeasonsRequest struct{}

type GetSeasonsResponse struct {
	Seasons []Season `json:"seasons"`
}

type GetSeasonRequest struct {
	ID string `json:"id"`
}

type GetSeasonResponse struct {
	Season Season `json:"season"`
}

type GetActiveSeasonRequest struct{}

type GetActiveSeasonResponse struct {
	Season Season `json:"season"`
}

// UpdateSeasonRequest carries only the fields to change; omitted fields keep
// their stored value. The rate is a pointer so an explicit zero is
// distinguishable from an omitted field.
type UpdateSeasonRequest struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	PointsPerCheckIn *int   `json:"points_per_check_in"`
}

type UpdateSeasonResponse struct{}

type ActivateSeasonRequest struct {
	ID string `json:"id"`
}

type ActivateSeasonResponse struct{}

type DeactivateSeasonRequest struct {
	ID string `json:"id"`
}

type DeactivateSeasonResponse struct{}

type ToggleSeasonActiveRequest struct {
	ID string `json:"id"`
}

type ToggleSeasonActiveResponse struct {
	IsActive bool `json:"is_active"`
}

type DeleteSeasonRequest struct {
	ID string `json:"id"`
}

type DeleteSeasonResponse struct{}
