package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

// seedUser is one demo account.
type seedUser struct {
	Email    string
	FullName string
	Role     string
}

// demoUsers covers every role so each permission tier can be exercised
// right after seeding.
var demoUsers = []seedUser{
	{Email: "admin@credtrail.local", FullName: "Avery Whitfield", Role: "admin"},
	{Email: "jordan@credtrail.local", FullName: "Jordan Reyes", Role: "coordinator"},
	{Email: "casey@credtrail.local", FullName: "Casey Morgan", Role: "viewer"},
}

// insertUsers creates the demo accounts, hashing the shared password once.
// Accounts whose email already exists are skipped.
func insertUsers(ctx context.Context, tx pgx.Tx, password string) (created, skipped int, err error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, 0, fmt.Errorf("hash password: %w", err)
	}

	for _, u := range demoUsers {
		tag, err := tx.Exec(ctx,
			`INSERT INTO users (email, password_hash, full_name, role)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (lower(email)) DO NOTHING`,
			u.Email, string(hash), u.FullName, u.Role)
		if err != nil {
			return created, skipped, fmt.Errorf("insert user %s: %w", u.Email, err)
		}
		if tag.RowsAffected() == 0 {
			skipped++
			continue
		}
		created++
	}
	return created, skipped, nil
}
