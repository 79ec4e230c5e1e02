package persistence

import (
	"time"
)

// PreferenceModel represents the preferences table: one JSON value per
// namespaced key
type PreferenceModel struct {
	Key       string    `gorm:"column:pref_key;primaryKey"`
	Value     string    `gorm:"column:value;type:text;not null"` // JSON as text
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (PreferenceModel) TableName() string {
	return "preferences"
}

// ProjectSnapshotModel represents the project_snapshots table: the last
// project payload seen per build, served when the backend is unreachable
type ProjectSnapshotModel struct {
	BuildID   string    `gorm:"column:build_id;primaryKey"`
	BuildName string    `gorm:"column:build_name"`
	Payload   string    `gorm:"column:payload;type:text;not null"` // JSON as text
	FetchedAt time.Time `gorm:"column:fetched_at;not null;index"`
}

func (ProjectSnapshotModel) TableName() string {
	return "project_snapshots"
}
