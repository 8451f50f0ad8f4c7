package models

import "gorm.io/gorm"

// ProgressSummary is the same-day view of a project's task completion.
type ProgressSummary struct {
	Day         string `json:"day"`
	Completions []bool `json:"completions"`
	Done        int    `json:"done"`
	Total       int    `json:"total"`
	Percent     int    `json:"percent"`
}

// ProjectWithProgress pairs a project with today's summary.
type ProjectWithProgress struct {
	*Project
	Progress ProgressSummary `json:"progress"`
}

// AutoMigrate creates or updates every table the service owns.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Project{},
		&WalletType{},
		&SocialType{},
	)
}
