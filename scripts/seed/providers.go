package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// seedProvider is one demo practitioner.
type seedProvider struct {
	Name      string
	NPI       string
	Specialty string
	Email     string
	Phone     string
	Status    string
	DEA       string
	Notes     string
}

// demoProviders spreads across specialties and pipeline stages so lists,
// filters, and the stats endpoint all have something to show.
var demoProviders = []seedProvider{
	{
		Name: "Dr. Sarah Chen", NPI: "1932806054", Specialty: "Cardiology",
		Email: "sarah.chen@example.org", Phone: "555-0101",
		Status: "Approved", DEA: "BC1234563",
		Notes: "Recredentialing due next spring.",
	},
	{
		Name: "Dr. Marcus Webb", NPI: "1528431077", Specialty: "Orthopedics",
		Email: "marcus.webb@example.org", Phone: "555-0102",
		Status: "Approved", DEA: "BW5551237",
	},
	{
		Name: "Dr. Priya Raman", NPI: "1740259318", Specialty: "Pediatrics",
		Email: "priya.raman@example.org", Phone: "555-0103",
		Status: "In Review",
		Notes:  "Waiting on TX license verification.",
	},
	{
		Name: "Dr. Elena Vasquez", NPI: "1356914820", Specialty: "Dermatology",
		Email: "elena.vasquez@example.org", Phone: "555-0104",
		Status: "In Review", DEA: "BV9081726",
	},
	{
		Name: "Dr. Thomas Osei", NPI: "1681237456", Specialty: "Family Medicine",
		Email: "thomas.osei@example.org", Phone: "555-0105",
		Status: "Pending",
	},
	{
		Name: "Dr. Hannah Lindqvist", NPI: "1209745831", Specialty: "Neurology",
		Email: "hannah.lindqvist@example.org", Phone: "555-0106",
		Status: "Pending",
		Notes:  "Introduced at the March onboarding fair.",
	},
	{
		Name: "Dr. Robert Kaminski", NPI: "1473568209", Specialty: "Anesthesiology",
		Email: "robert.kaminski@example.org", Phone: "555-0107",
		Status: "Denied",
		Notes:  "Board certification lapsed; may reapply.",
	},
	{
		Name: "Dr. Aisha Bello", NPI: "1867092345", Specialty: "Internal Medicine",
		Email: "aisha.bello@example.org", Phone: "555-0108",
		Status: "Expired", DEA: "BB3141592",
	},
}

// insertProviders creates the demo roster, encrypting DEA numbers the same
// way the API does. Providers whose NPI already exists are skipped.
func insertProviders(ctx context.Context, tx pgx.Tx, enc *encryptor) (created, skipped int, err error) {
	for _, p := range demoProviders {
		deaEncrypted := ""
		if p.DEA != "" {
			deaEncrypted, err = enc.encrypt([]byte(p.DEA))
			if err != nil {
				return created, skipped, fmt.Errorf("encrypt dea for %s: %w", p.Name, err)
			}
		}

		tag, err := tx.Exec(ctx,
			`INSERT INTO providers (name, npi_number, specialty, email, phone, status, notes, dea_encrypted)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 ON CONFLICT (npi_number) DO NOTHING`,
			p.Name, p.NPI, p.Specialty, p.Email, p.Phone, p.Status, p.Notes, deaEncrypted)
		if err != nil {
			return created, skipped, fmt.Errorf("insert provider %s: %w", p.Name, err)
		}
		if tag.RowsAffected() == 0 {
			skipped++
			continue
		}
		created++
	}
	return created, skipped, nil
}
