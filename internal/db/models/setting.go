// Package models contains database model definitions.
package models

// Setting is a named value kept next to the profile record, e.g. the schema version.
type Setting struct {
	ID    uint64 `gorm:"primaryKey"`
	Name  string `gorm:"unique;size:100"`
	Value []byte
}
