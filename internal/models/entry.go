package models

import "time"

// Entry is one row of the key/value blob store.
type Entry struct {
	Key       string `gorm:"column:name;primaryKey;size:191"`
	Value     []byte `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName pins the table name independent of gorm's pluralizer.
func (Entry) TableName() string {
	return "kv_entries"
}
