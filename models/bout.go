package models

import "time"

// Corner identifies one of the two sides of a bout
type Corner string

const (
	CornerRed  Corner = "red"
	CornerBlue Corner = "blue"
)

// IsValid returns true for the two recognized corners
func (c Corner) IsValid() bool {
	return c == CornerRed || c == CornerBlue
}

// BoutStatus represents the lifecycle state of a bout
type BoutStatus string

const (
	BoutStatusScheduled BoutStatus = "scheduled"
	BoutStatusCompleted BoutStatus = "completed"
)

// FighterRecord is the fighter's win/loss/draw record at fight time
type FighterRecord struct {
	Wins   int `bson:"wins" json:"wins"`
	Losses int `bson:"losses" json:"losses"`
	Draws  int `bson:"draws" json:"draws"`
}

// FighterSnapshot is the historical state of a fighter for a specific bout.
// Populated by the ingestion process, read-only here.
type FighterSnapshot struct {
	FighterName string `bson:"fighter_name" json:"fighter_name"`
	Nickname    string `bson:"nickname,omitempty" json:"nickname,omitempty"`

	Ranking       map[string]interface{} `bson:"ranking,omitempty" json:"ranking,omitempty"`
	RecordAtFight *FighterRecord         `bson:"record_at_fight,omitempty" json:"record_at_fight,omitempty"`
	Last5Fights   []string               `bson:"last_5_fights,omitempty" json:"last_5_fights,omitempty"`

	Nationality    string `bson:"nationality,omitempty" json:"nationality,omitempty"`
	FightingOutOf  string `bson:"fighting_out_of,omitempty" json:"fighting_out_of,omitempty"`
	AgeAtFightYrs  int    `bson:"age_at_fight_years,omitempty" json:"age_at_fight_years,omitempty"`
	HeightCm       int    `bson:"height_cm,omitempty" json:"height_cm,omitempty"`
	ReachCm        int    `bson:"reach_cm,omitempty" json:"reach_cm,omitempty"`
	TitleStatus    string `bson:"title_status,omitempty" json:"title_status,omitempty"`
	ProfileImageURL string `bson:"profile_image_url,omitempty" json:"profile_image_url,omitempty"`
}

// BoutResult is the official outcome of a contested bout.
// A nil Winner encodes a draw or no contest. Method is free text as
// entered by an admin; it is normalized only at scoring time.
type BoutResult struct {
	Winner *Corner `bson:"winner" json:"winner"`
	Method string  `bson:"method" json:"method"`
	Round  *int    `bson:"round,omitempty" json:"round,omitempty"`
	Time   string  `bson:"time,omitempty" json:"time,omitempty"`
}

// IsDecisive returns true when the result names a winning corner
func (r *BoutResult) IsDecisive() bool {
	return r != nil && r.Winner != nil
}

// Bout represents a single contest between two corners within an event
type Bout struct {
	ID      int `bson:"id" json:"id"`
	EventID int `bson:"event_id" json:"event_id"`

	Source string `bson:"source,omitempty" json:"-"`
	URL    string `bson:"url,omitempty" json:"-"`
	Slug   string `bson:"slug,omitempty" json:"slug,omitempty"`

	WeightClass     string `bson:"weight_class" json:"weight_class"`
	Gender          string `bson:"gender,omitempty" json:"gender,omitempty"`
	RoundsScheduled int    `bson:"rounds_scheduled" json:"rounds_scheduled"`
	IsTitleFight    bool   `bson:"is_title_fight" json:"is_title_fight"`

	Status      BoutStatus `bson:"status" json:"status"`
	PicksLocked bool       `bson:"picks_locked" json:"picks_locked"`

	Fighters map[Corner]FighterSnapshot `bson:"fighters" json:"fighters"`

	Result *BoutResult `bson:"result,omitempty" json:"result,omitempty"`

	ScrapedAt   time.Time `bson:"scraped_at" json:"-"`
	LastUpdated time.Time `bson:"last_updated" json:"last_updated"`
}

// HasResult returns true if an official result has been recorded
func (b *Bout) HasResult() bool {
	return b.Result != nil
}

// IsCompleted returns true if the bout has been contested
func (b *Bout) IsCompleted() bool {
	return b.Status == BoutStatusCompleted
}
