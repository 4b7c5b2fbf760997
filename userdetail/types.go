package userdetail

import "time"

// Detail is a student's extended profile, keyed by user id. One
// detail record per user.
type Detail struct {
	UserID               string
	Fullname             string
	Age                  int
	Gender               string
	MotherTongue         []string
	LanguagesKnown       []string
	HighestQualification string
	Section              string
	Residence            string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
