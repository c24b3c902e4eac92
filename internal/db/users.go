package db

import (
	"context"

	"github.com/tgienger/taskmate/internal/models"
)

const userColumns = "id, name, email, password, created_at"

// CreateUser creates a new user. passwordHash must already be hashed.
func (db *DB) CreateUser(ctx context.Context, name, email, passwordHash string) (*models.User, error) {
	result, err := db.ExecContext(ctx, `
		INSERT INTO users (name, email, password) VALUES (?, ?, ?)
	`, name, email, passwordHash)
	if err != nil {
		return nil, mapConstraint(err, ErrEmailTaken)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return db.GetUser(ctx, id)
}

// GetUser retrieves a user by ID
func (db *DB) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return get[models.User](ctx, db, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
}

// GetUserByEmail retrieves a user by email
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return get[models.User](ctx, db, "SELECT "+userColumns+" FROM users WHERE email = ?", email)
}
