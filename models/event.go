package models

import "time"

// EventStatus represents the lifecycle state of an event
type EventStatus string

const (
	EventStatusScheduled EventStatus = "scheduled"
	EventStatusCompleted EventStatus = "completed"
	EventStatusCancelled EventStatus = "cancelled"
)

// Location describes where an event takes place
type Location struct {
	Venue   string `bson:"venue,omitempty" json:"venue,omitempty"`
	City    string `bson:"city,omitempty" json:"city,omitempty"`
	Country string `bson:"country,omitempty" json:"country,omitempty"`
}

// Event represents a fight card (e.g. a numbered event or a fight night).
// Events are owned by the ingestion process; this service only mutates
// status, picks_locked, and timing fields through admin actions.
type Event struct {
	ID        int    `bson:"id" json:"id"`
	Source    string `bson:"source,omitempty" json:"-"`
	Promotion string `bson:"promotion" json:"promotion"`

	Name     string `bson:"name" json:"name"`
	Subtitle string `bson:"subtitle,omitempty" json:"subtitle,omitempty"`
	Slug     string `bson:"slug" json:"slug"`
	URL      string `bson:"url,omitempty" json:"-"`

	Date     time.Time `bson:"date" json:"date"`
	Timezone string    `bson:"timezone,omitempty" json:"timezone,omitempty"`

	Location *Location `bson:"location,omitempty" json:"location,omitempty"`

	Status      EventStatus `bson:"status" json:"status"`
	PicksLocked bool        `bson:"picks_locked" json:"picks_locked"`

	TotalBouts      int    `bson:"total_bouts" json:"total_bouts"`
	MainEventBoutID *int   `bson:"main_event_bout_id,omitempty" json:"main_event_bout_id,omitempty"`
	PosterImageURL  string `bson:"poster_image_url,omitempty" json:"poster_image_url,omitempty"`

	ScrapedAt   time.Time `bson:"scraped_at" json:"-"`
	LastUpdated time.Time `bson:"last_updated" json:"last_updated"`
}

// PicksClosed reports whether the event itself prevents further pick
// mutation: a completed or cancelled event locks implicitly, and the
// picks_locked flag is the admin override.
func (e *Event) PicksClosed() bool {
	if e.Status == EventStatusCompleted || e.Status == EventStatusCancelled {
		return true
	}
	return e.PicksLocked
}

// IsCompleted returns true if the event has finished
func (e *Event) IsCompleted() bool {
	return e.Status == EventStatusCompleted
}

// EventCardSlot places a bout within an event's running order
type EventCardSlot struct {
	ID string `bson:"_id" json:"id"` // event_id:bout_id

	EventID int `bson:"event_id" json:"event_id"`
	BoutID  int `bson:"bout_id" json:"bout_id"`

	CardSection string `bson:"card_section" json:"card_section"` // main | prelim | early_prelim

	OrderOverall int `bson:"order_overall" json:"order_overall"`
	OrderSection int `bson:"order_section" json:"order_section"`

	IsMainEvent bool `bson:"is_main_event" json:"is_main_event"`
	IsCoMain    bool `bson:"is_co_main" json:"is_co_main"`
}
