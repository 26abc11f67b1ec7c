package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// seedFacility is one demo clinic or hospital.
type seedFacility struct {
	Name    string
	State   string
	Tier    int
	Address string
	Status  string
}

var demoFacilities = []seedFacility{
	{Name: "Mercy General Hospital", State: "CA", Tier: 1, Address: "1200 Harbor Blvd, Sacramento, CA 95814", Status: "Active"},
	{Name: "St. Luke's Medical Center", State: "TX", Tier: 1, Address: "6720 Bertner Ave, Houston, TX 77030", Status: "Active"},
	{Name: "Lakeview Surgical Center", State: "IL", Tier: 2, Address: "450 W Fullerton Pkwy, Chicago, IL 60614", Status: "Active"},
	{Name: "Northside Community Clinic", State: "NY", Tier: 3, Address: "88 Greenpoint Ave, Brooklyn, NY 11222", Status: "Pending"},
	{Name: "Pine Ridge Family Practice", State: "OR", Tier: 3, Address: "2150 SE Division St, Portland, OR 97202", Status: "Inactive"},
}

// insertFacilities creates the demo facilities. The table has no natural
// unique key, so existing name+state pairs are skipped explicitly.
func insertFacilities(ctx context.Context, tx pgx.Tx) (created, skipped int, err error) {
	for _, f := range demoFacilities {
		tag, err := tx.Exec(ctx,
			`INSERT INTO facilities (name, state, tier, address, status)
			 SELECT $1, $2, $3, $4, $5
			 WHERE NOT EXISTS (
			     SELECT 1 FROM facilities WHERE lower(name) = lower($1) AND state = $2
			 )`,
			f.Name, f.State, f.Tier, f.Address, f.Status)
		if err != nil {
			return created, skipped, fmt.Errorf("insert facility %s: %w", f.Name, err)
		}
		if tag.RowsAffected() == 0 {
			skipped++
			continue
		}
		created++
	}
	return created, skipped, nil
}
