package model

// Game is a scheduled match at a field, stored in the `games` table.  The
// primary key is a UUID string rather than an auto-increment integer.  The
// Places column caches the remaining open slots; the authoritative value is
// always NumberOfPlayers minus the count of joined users and read paths
// recompute it (see GameRepo.Details).
//
// Fields:
//  ID              – UUID primary key.
//  FieldID         – field the game is played on.
//  Date            – match date in YYYY-MM-DD form.
//  Time            – starting hour, bounded 10..24.
//  NumberOfPlayers – total player capacity.
//  Places          – remaining open slots (cached, derived).
//  Ball            – a ball is provided.
//  Jerseys         – jerseys are provided.
//  Goalkeeper      – a goalkeeper is arranged.
//  FacebookURL     – event page link.
//  Description     – free-text description.
//  PhoneNumber     – organizer contact phone.
//  AdminID         – admin who created the game.
//  CreatedAt       – timestamp when the row was created.
type Game struct {
	ID              string // games.id
	FieldID         uint64 // games.field_id
	Date            string // games.date
	Time            int    // games.time
	NumberOfPlayers int    // games.number_of_players
	Places          int    // games.places
	Ball            bool   // games.ball
	Jerseys         bool   // games.jerseys
	Goalkeeper      bool   // games.goalkeeper
	FacebookURL     string // games.facebook_url
	Description     string // games.description
	PhoneNumber     string // games.phone_number
	AdminID         uint64 // games.admin_id
	CreatedAt       string // games.created_at
}

// HasPlaces reports whether the game still has open slots.
func (g Game) HasPlaces() bool { return g.Places > 0 }

// UserGame is a membership row in the `user_games` join table.  One row per
// (user, game) pair; a user may join a given game at most once.  Deleting
// the row represents the user leaving the game.
type UserGame struct {
	ID     uint64 // user_games.id
	UserID uint64 // user_games.user_id
	GameID string // user_games.game_id
}
