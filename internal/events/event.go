package events

import "time"

const (
	UserSignedIn        = "user_signed_in"
	UserSignedOut       = "user_signed_out"
	UserPasswordChanged = "user_password_changed"
	UserCreated         = "user_created"
	UserDeleted         = "user_deleted"

	ComicCreated = "comic_created"
	ComicUpdated = "comic_updated"
	ComicDeleted = "comic_deleted"
)

type Event struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data,omitempty"`
}

func New(typ string, data any) Event {
	return Event{Type: typ, OccurredAt: time.Now().UTC(), Data: data}
}

type UserEvent struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

type ComicEvent struct {
	ComicID string `json:"comic_id"`
	Slug    string `json:"slug"`
	UserID  string `json:"user_id,omitempty"`
}
