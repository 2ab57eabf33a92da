package model

import "time"

// User represents an application user record as stored in the `users`
// table.  Authentication fields live next to the public profile used on
// player lists.  The json tags are omitted here because these structs are
// used internally by the repository layer; handlers define separate
// response types with appropriate JSON tags.
//
// Fields:
//  ID           – primary key identifier.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  Role         – role name (USER or ADMIN).
//  FirstName    – profile first name.
//  LastName     – profile last name.
//  Nickname     – display nickname.
//  PhoneNumber  – contact phone.
//  ImageURL     – avatar URL.
//  IsActive     – whether the account is active.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	FirstName    string    // users.first_name
	LastName     string    // users.last_name
	Nickname     string    // users.nickname
	PhoneNumber  string    // users.phone_number
	ImageURL     string    // users.image_url
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// Admin is a privileged role record wrapping a user identity, stored in the
// `admins` table.  Fields and games reference their creator through the
// admin id, not the user id.
type Admin struct {
	ID     uint64 // admins.id
	UserID uint64 // admins.user_id
}

// RefreshToken models an entry in the `refresh_tokens` table.  Only the
// SHA-256 hash of the token is stored; the plain value never touches the
// database.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
