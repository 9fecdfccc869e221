package model

import "time"

// Metadata carries the audit columns every table has. CreatedAt and
// ModifiedAt are filled by column defaults, so they carry no db tag and
// custom selects must not include them.
type Metadata struct {
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
	CreatedBy  string    `db:"created_by"`
	ModifiedBy string    `db:"modified_by"`
}
