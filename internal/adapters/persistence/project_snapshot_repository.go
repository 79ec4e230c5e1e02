package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrescamacho/colonial-go/internal/domain/project"
	"github.com/andrescamacho/colonial-go/internal/domain/shared"
)

// GormProjectSnapshotRepository keeps the last-known-good project per build
type GormProjectSnapshotRepository struct {
	db    *gorm.DB
	clock shared.Clock
}

// NewGormProjectSnapshotRepository creates a repository. If clock is nil, uses RealClock
func NewGormProjectSnapshotRepository(db *gorm.DB, clock shared.Clock) *GormProjectSnapshotRepository {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GormProjectSnapshotRepository{db: db, clock: clock}
}

// Save stores p as the latest snapshot of its build
func (r *GormProjectSnapshotRepository) Save(ctx context.Context, p *project.Project) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode project %s: %w", p.BuildID, err)
	}
	model := ProjectSnapshotModel{
		BuildID:   p.BuildID,
		BuildName: p.BuildName,
		Payload:   string(data),
		FetchedAt: r.clock.Now(),
	}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "build_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"build_name", "payload", "fetched_at"}),
	}).Create(&model)
	if result.Error != nil {
		return fmt.Errorf("failed to save snapshot of %s: %w", p.BuildID, result.Error)
	}
	return nil
}

// Find returns the latest snapshot of a build and when it was fetched
func (r *GormProjectSnapshotRepository) Find(ctx context.Context, buildID string) (*project.Project, time.Time, error) {
	var model ProjectSnapshotModel
	result := r.db.WithContext(ctx).Where("build_id = ?", buildID).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, time.Time{}, fmt.Errorf("%w: no snapshot of %s", project.ErrProjectNotFound, buildID)
		}
		return nil, time.Time{}, fmt.Errorf("failed to read snapshot of %s: %w", buildID, result.Error)
	}
	var p project.Project
	if err := json.Unmarshal([]byte(model.Payload), &p); err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to decode snapshot of %s: %w", buildID, err)
	}
	return &p, model.FetchedAt, nil
}
