package models

// AllModels returns all model types for GORM operations.
// Postgres migrations are handled by golang-migrate; the sqlite path uses
// AutoMigrate over this list.
func AllModels() []interface{} {
	return []interface{}{
		&Session{},
		&Pass{},
	}
}
