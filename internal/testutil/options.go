package testutil

import "time"

// plateData holds all data for a plate row to be inserted.
type plateData struct {
	id        string
	plate     string
	owner     string
	createdAt time.Time
}

func defaultPlate(plate string) plateData {
	return plateData{
		id:        "id-" + plate,
		plate:     plate,
		owner:     "Owner " + plate,
		createdAt: time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

// PlateOption configures a plate row.
type PlateOption func(*plateData)

// ID sets the document id.
func ID(id string) PlateOption {
	return func(p *plateData) { p.id = id }
}

// Owner sets the owner name.
func Owner(owner string) PlateOption {
	return func(p *plateData) { p.owner = owner }
}

// CreatedAt sets the registration time.
func CreatedAt(t time.Time) PlateOption {
	return func(p *plateData) { p.createdAt = t }
}
