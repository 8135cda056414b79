package model

type CheckIn struct {
	ID        string    `json:"id"`
	User      ShortUser `json:"user"`
	SeasonID  string    `json:"season_id"`
	Season    string    `json:"season"`
	PhotoURL  string    `json:"photo_url"`
	Status    string    `json:"status"`
	Points    int       `json:"points"`
	Notes     string    `json:"notes"`
	CreatedAt string    `json:"created_at"`
}

// CreateCheckInRequest arrives as multipart form data; the photo is read
// from the "photo" part and Notes from a form value.
type CreateCheckInRequest struct{}

type CreateCheckInResponse struct {
	CheckIn CheckIn `json:"check_in"`
}

type GetCheckInsRequest struct {
	UserID   string `json:"user_id"`
	SeasonID string `json:"season_id"`
	Offset   int    `json:"offset"`
	Limit    int    `json:"limit"`
}

type GetCheckInsResponse struct {
	CheckIns []CheckIn `json:"check_ins"`
}

type GetMyCheckInsRequest struct {
	SeasonID string `json:"season_id"`
}

type GetMyCheckInsResponse struct {
	CheckIns []CheckIn `json:"check_ins"`
}

type UpdateCheckInRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Points int    `json:"points"`
	Notes  string `json:"notes"`
}

type UpdateCheckInResponse struct{}

type DeleteCheckInRequest struct {
	ID string `json:"id"`
}

type DeleteCheckInResponse struct{}
