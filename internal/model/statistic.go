package model

// UserStatistic is one row of a season ranking. Position is 1-based; ties
// keep the order the store returned them in.
type UserStatistic struct {
	User          ShortUser `json:"user"`
	TotalPoints   int       `json:"total_points"`
	CheckInsCount int       `json:"check_ins_count"`
	Position      int       `json:"position"`
}

type GetRankingRequest struct {
	SeasonID string `json:"season_id"`
	Offset   int    `json:"offset"`
	Limit    int    `json:"limit"`
}

type GetRankingResponse struct {
	Ranking []UserStatistic `json:"ranking"`
}

type GetMyRankRequest struct {
	SeasonID string `json:"season_id"`
}

type GetMyRankResponse struct {
	Statistic UserStatistic `json:"statistic"`
}
