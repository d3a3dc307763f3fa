package models

// Pick result values for betting-pool games
const (
	PickResultWin  = "win"
	PickResultLoss = "loss"
	PickResultPush = "push"
)

// PickRecord is a user's aggregated pick outcomes for a season,
// as produced by the picks aggregate query.
type PickRecord struct {
	UserID string `db:"user_id"`
	Name   string `db:"name"`
	Wins   int    `db:"wins"`
	Losses int    `db:"losses"`
	Pushes int    `db:"pushes"`
}

// WeekPenalty is a forfeiture charged to a user for a missed week in a
// survivor pool. Penalty points are folded into the user's aggregate before
// ranking, never applied after ranks are assigned.
type WeekPenalty struct {
	UserID string  `db:"user_id"`
	Name   string  `db:"name"`
	Week   int     `db:"week"`
	Points float64 `db:"points"`
}
