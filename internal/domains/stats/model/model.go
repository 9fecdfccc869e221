package model

const (
	TableName  = "site_stats"
	EntityName = "site_stats"

	FieldID         = "id"
	FieldTotalViews = "total_views"

	// SingletonID pins the stats to one row; every increment lands on it.
	SingletonID = 1
)

type SiteStats struct {
	ID         int   `db:"id"`
	TotalViews int64 `db:"total_views"`
}
