package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema holds the DDL for every table the service needs, in dependency
// order. DATE columns carry the inclusive rental range; all money columns
// are integer cents. Statements are idempotent so Migrate can run on every
// startup.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name VARCHAR(255) NOT NULL,
		handle VARCHAR(64) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_customers_handle (handle)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS vehicles (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		make VARCHAR(64) NOT NULL,
		model VARCHAR(64) NOT NULL,
		category VARCHAR(32) NOT NULL,
		transmission VARCHAR(32) NOT NULL,
		kind VARCHAR(32) NOT NULL,
		seats INT UNSIGNED NOT NULL,
		image VARCHAR(255) NOT NULL,
		daily_rate_cents BIGINT NOT NULL,
		last_service DATE NOT NULL,
		next_service DATE NOT NULL,
		last_inspection DATE NOT NULL,
		PRIMARY KEY (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS reservations (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		customer_id BIGINT UNSIGNED NOT NULL,
		vehicle_id BIGINT UNSIGNED NOT NULL,
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		total_cents BIGINT NOT NULL,
		status VARCHAR(16) NOT NULL DEFAULT 'Active',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_reservations_customer (customer_id),
		KEY idx_reservations_vehicle_end (vehicle_id, end_date),
		CONSTRAINT fk_reservations_customer FOREIGN KEY (customer_id) REFERENCES customers (id),
		CONSTRAINT fk_reservations_vehicle FOREIGN KEY (vehicle_id) REFERENCES vehicles (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS payments (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		reservation_id BIGINT UNSIGNED NOT NULL,
		card_number VARCHAR(32) NOT NULL,
		cardholder VARCHAR(255) NOT NULL,
		expiry VARCHAR(8) NOT NULL,
		security_code VARCHAR(8) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_payments_reservation (reservation_id),
		CONSTRAINT fk_payments_reservation FOREIGN KEY (reservation_id) REFERENCES reservations (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		customer_id BIGINT UNSIGNED NOT NULL,
		token_hash CHAR(64) NOT NULL,
		expires_at DATETIME NOT NULL,
		revoked_at DATETIME NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_refresh_tokens_hash (token_hash),
		KEY idx_refresh_tokens_customer (customer_id),
		CONSTRAINT fk_refresh_tokens_customer FOREIGN KEY (customer_id) REFERENCES customers (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate creates any missing tables. It is safe to call on every startup.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
