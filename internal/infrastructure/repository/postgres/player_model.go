package postgres

import "database/sql"

type playerTableModel struct {
	ID          int64          `db:"id"`
	Slug        string         `db:"player_slug"`
	Name        string         `db:"name"`
	FullName    sql.NullString `db:"full_name"`
	Rating      int            `db:"overall_rating"`
	Position    string         `db:"best_position"`
	Value       sql.NullString `db:"value"`
	ClubName    sql.NullString `db:"club_name"`
	CountryName sql.NullString `db:"country_name"`
	Image       sql.NullString `db:"image"`
}

type playerInsertModel struct {
	Slug        string `db:"player_slug"`
	Name        string `db:"name"`
	FullName    string `db:"full_name"`
	Rating      int    `db:"overall_rating"`
	Position    string `db:"best_position"`
	Value       string `db:"value"`
	ClubName    string `db:"club_name"`
	CountryName string `db:"country_name"`
	Image       string `db:"image"`
}
