package models

// Leaderboard categories and scopes. Entries are derived views, never
// persisted; rank is recomputed on every query.
const (
	LeaderboardCategoryGlobal = "global"
	LeaderboardCategoryEvent  = "event"

	LeaderboardScopeAllTime = "all_time"
)

// LeaderboardEntry is one row of a ranked standings view
type LeaderboardEntry struct {
	Rank int `json:"rank"`

	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url,omitempty"`

	TotalPoints  int     `json:"total_points"`
	Accuracy     float64 `json:"accuracy"`
	PicksTotal   int     `json:"picks_total"`
	PicksCorrect int     `json:"picks_correct"`
	PerfectPicks int     `json:"perfect_picks"`

	Category string `json:"category"`
	Scope    string `json:"scope"`
}

// UserRank is a user's position within a scoped leaderboard.
// Rank is nil when the user has picks but fell outside the ranked window.
type UserRank struct {
	Rank  *int             `json:"rank"`
	Entry LeaderboardEntry `json:"entry"`
}
