package db

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

var (
	// ErrEmailTaken is returned when a user with the same email already exists
	ErrEmailTaken = errors.New("email already registered")

	// ErrTagExists is returned when the user already has a tag with that name
	ErrTagExists = errors.New("tag already exists")

	// ErrConstraint is returned for any other constraint violation
	ErrConstraint = errors.New("constraint violation")
)

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}

// mapConstraint turns a sqlite constraint failure into one of the package
// sentinels. uniqueErr is used for unique violations.
func mapConstraint(err, uniqueErr error) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return uniqueErr
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		return errors.Join(ErrConstraint, err)
	}
	return err
}
