package model

import "time"

// Customer represents a registered account as stored in the
// `customers` table. Each field corresponds to a column in the
// database. The json tags are omitted here because these structs
// are used internally by the repository layer; handlers define
// separate response types with appropriate JSON tags.
//
// Fields:
//  ID           – primary key identifier of the customer.
//  Name         – display name shown in views and logs.
//  Handle       – unique login handle.
//  PasswordHash – bcrypt hashed credential.
//  CreatedAt    – timestamp of registration.
//  UpdatedAt    – timestamp of last update.
type Customer struct {
	ID           uint64    // customers.id
	Name         string    // customers.name
	Handle       string    // customers.handle
	PasswordHash string    // customers.password_hash
	CreatedAt    time.Time // customers.created_at
	UpdatedAt    time.Time // customers.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table. Each
// refresh token belongs to a customer and contains metadata for
// expiry and revocation. The plain token is not stored; only its
// SHA-256 hash.
//
// Fields:
//  ID         – primary key identifier.
//  CustomerID – owner of the token.
//  TokenHash  – SHA-256 hex digest of the token value.
//  ExpiresAt  – expiration timestamp of the token.
//  RevokedAt  – when the token was revoked (null if still active).
//  CreatedAt  – timestamp of creation.
type RefreshToken struct {
	ID         uint64     // refresh_tokens.id
	CustomerID uint64     // refresh_tokens.customer_id
	TokenHash  string     // refresh_tokens.token_hash
	ExpiresAt  time.Time  // refresh_tokens.expires_at
	RevokedAt  *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt  time.Time  // refresh_tokens.created_at
}
