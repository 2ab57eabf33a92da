package database

import (
	"context"
	"database/sql"
)

// schema holds the MySQL DDL for all tables, executed idempotently at
// startup. Field uniqueness per (name, country, city) and the
// one-game-per-slot rule are NOT database constraints; they are enforced
// by explicit pre-create checks in the repository layer.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS countries (
		id   BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(100) NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS cities (
		id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name       VARCHAR(100) NOT NULL,
		country_id BIGINT UNSIGNED NOT NULL,
		CONSTRAINT fk_cities_country FOREIGN KEY (country_id) REFERENCES countries(id)
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		email         VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		role          VARCHAR(16)  NOT NULL DEFAULT 'USER',
		first_name    VARCHAR(50)  NOT NULL DEFAULT '',
		last_name     VARCHAR(50)  NOT NULL DEFAULT '',
		nickname      VARCHAR(50)  NOT NULL DEFAULT '',
		phone_number  VARCHAR(20)  NOT NULL DEFAULT '',
		image_url     VARCHAR(2048) NOT NULL DEFAULT '',
		is_active     TINYINT(1)   NOT NULL DEFAULT 1,
		created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id    BIGINT UNSIGNED NOT NULL,
		token_hash CHAR(64) NOT NULL,
		expires_at TIMESTAMP NOT NULL,
		revoked_at TIMESTAMP NULL DEFAULT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT fk_tokens_user FOREIGN KEY (user_id) REFERENCES users(id),
		INDEX idx_tokens_hash (token_hash)
	)`,
	`CREATE TABLE IF NOT EXISTS admins (
		id      BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT UNSIGNED NOT NULL UNIQUE,
		CONSTRAINT fk_admins_user FOREIGN KEY (user_id) REFERENCES users(id)
	)`,
	`CREATE TABLE IF NOT EXISTS fields (
		id            BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name          VARCHAR(20)  NOT NULL,
		country_id    BIGINT UNSIGNED NOT NULL,
		city_id       BIGINT UNSIGNED NOT NULL,
		address       VARCHAR(100) NOT NULL,
		image_url     VARCHAR(2048) NOT NULL,
		phone_number  VARCHAR(20)  NOT NULL,
		parking       TINYINT(1) NOT NULL DEFAULT 0,
		shower        TINYINT(1) NOT NULL DEFAULT 0,
		changing_room TINYINT(1) NOT NULL DEFAULT 0,
		cafe          TINYINT(1) NOT NULL DEFAULT 0,
		description   VARCHAR(1000) NOT NULL,
		admin_id      BIGINT UNSIGNED NOT NULL,
		created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		CONSTRAINT fk_fields_country FOREIGN KEY (country_id) REFERENCES countries(id),
		CONSTRAINT fk_fields_city    FOREIGN KEY (city_id)    REFERENCES cities(id),
		CONSTRAINT fk_fields_admin   FOREIGN KEY (admin_id)   REFERENCES admins(id)
	)`,
	`CREATE TABLE IF NOT EXISTS games (
		id                CHAR(36) PRIMARY KEY,
		field_id          BIGINT UNSIGNED NOT NULL,
		date              CHAR(10) NOT NULL,
		time              INT NOT NULL,
		number_of_players INT NOT NULL,
		places            INT NOT NULL,
		ball              TINYINT(1) NOT NULL DEFAULT 0,
		jerseys           TINYINT(1) NOT NULL DEFAULT 0,
		goalkeeper        TINYINT(1) NOT NULL DEFAULT 0,
		facebook_url      VARCHAR(2048) NOT NULL DEFAULT '',
		description       VARCHAR(1000) NOT NULL,
		phone_number      VARCHAR(20) NOT NULL DEFAULT '',
		admin_id          BIGINT UNSIGNED NOT NULL,
		created_at        TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT fk_games_field FOREIGN KEY (field_id) REFERENCES fields(id),
		CONSTRAINT fk_games_admin FOREIGN KEY (admin_id) REFERENCES admins(id),
		INDEX idx_games_slot (field_id, date, time)
	)`,
	`CREATE TABLE IF NOT EXISTS user_games (
		id      BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT UNSIGNED NOT NULL,
		game_id CHAR(36) NOT NULL,
		CONSTRAINT fk_ug_user FOREIGN KEY (user_id) REFERENCES users(id),
		CONSTRAINT fk_ug_game FOREIGN KEY (game_id) REFERENCES games(id),
		INDEX idx_ug_game (game_id)
	)`,
}

// Migrate creates any missing tables.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
