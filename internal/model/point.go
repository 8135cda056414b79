package model

type Point struct {
	ID            string    `json:"id"`
	User          ShortUser `json:"user"`
	SeasonID      string    `json:"season_id"`
	TotalPoints   int       `json:"total_points"`
	CheckInsCount int       `json:"check_ins_count"`
	CreatedAt     string    `json:"created_at"`
}

type CreatePointRequest struct {
	UserID        string `json:"user_id"`
	SeasonID      string `json:"season_id"`
	TotalPoints   int    `json:"total_points"`
	CheckInsCount int    `json:"check_ins_count"`
}

type CreatePointResponse struct {
	Point Point `json:"point"`
}

type GetPointsRequest struct{}

type GetPointsResponse struct {
	Points []Point `json:"points"`
}

type GetPointRequest struct {
	ID string `json:"id"`
}

type GetPointResponse struct {
	Point Point `json:"point"`
}

type GetPointByUserAndSeasonRequest struct {
	UserID   string `json:"user_id"`
	SeasonID string `json:"season_id"`
}

type GetPointByUserAndSeasonResponse struct {
	Point Point `json:"point"`
}

type UpdatePointRequest struct {
	ID            string `json:"id"`
	TotalPoints   int    `json:"total_points"`
	CheckInsCount int    `json:"check_ins_count"`
}

type UpdatePointResponse struct{}

type DeletePointRequest struct {
	ID string `json:"id"`
}

type DeletePointResponse struct{}
