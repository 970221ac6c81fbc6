package models

import "time"

// Resident represents one penduduk record in the village register.
type Resident struct {
	ID            string     `db:"id" json:"id"`
	NIK           string     `db:"nik" json:"nik"`
	FullName      string     `db:"full_name" json:"full_name"`
	Gender        string     `db:"gender" json:"gender"`
	BirthPlace    string     `db:"birth_place" json:"birth_place"`
	BirthDate     *time.Time `db:"birth_date" json:"birth_date,omitempty"`
	Religion      string     `db:"religion" json:"religion"`
	MaritalStatus string     `db:"marital_status" json:"marital_status"`
	Occupation    string     `db:"occupation" json:"occupation"`
	Address       string     `db:"address" json:"address"`
	RT            string     `db:"rt" json:"rt"`
	RW            string     `db:"rw" json:"rw"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

// ResidentFilter encapsulates allowed search parameters for listing residents.
type ResidentFilter struct {
	Search   string
	RT       string
	RW       string
	Page     int
	PageSize int
}
