// Package queue defines message payloads exchanged over the message broker
// and the background consumer that processes them.
package queue

// GameJoinedEvent is published when a user successfully joins a game. It
// carries enough context for downstream consumers to log or notify without
// querying the primary database.
type GameJoinedEvent struct {
	GameID         string `json:"game_id"`
	UserID         uint64 `json:"user_id"`
	FieldID        uint64 `json:"field_id"`
	FieldName      string `json:"field_name"`
	CityName       string `json:"city_name"`
	Date           string `json:"date"`
	Time           int    `json:"time"`
	PlacesLeft     int    `json:"places_left"`
	TotalCapacity  int    `json:"total_capacity"`
	OrganizerPhone string `json:"organizer_phone"`
	JoinedAt       string `json:"joined_at"`
}
