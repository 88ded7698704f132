package model

type LeaderboardEntry struct {
	Rank    int    `json:"rank"`
	User    User   `json:"user"`
	Value   int64  `json:"value"`
	Display string `json:"display"`
	Detail  string `json:"detail"`
}
