package match

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/crease/internal/models"
	"github.com/DhavalSuthar-24/crease/internal/scoring"
)

// MatchRepository stores match aggregates as single versioned documents.
type MatchRepository interface {
	CreateMatch(ctx context.Context, m *scoring.Match) error
	// LoadMatch returns the aggregate together with the version it was read at.
	LoadMatch(ctx context.Context, id uint) (*scoring.Match, uint, error)
	// SaveMatch writes m only if the stored version still equals expectedVersion,
	// otherwise it returns ErrVersionConflict.
	SaveMatch(ctx context.Context, m *scoring.Match, expectedVersion uint) error
	ListMatches(ctx context.Context, filter ListFilter) ([]*scoring.Match, int64, error)
}

// GormMatchRepository implements MatchRepository using GORM
type GormMatchRepository struct {
	db *gorm.DB
}

func NewGormMatchRepository(db *gorm.DB) *GormMatchRepository {
	return &GormMatchRepository{db: db}
}

func (r *GormMatchRepository) CreateMatch(ctx context.Context, m *scoring.Match) error {
	rec := newRecord(m)
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("create match: %w", err)
	}
	m.ID = rec.ID
	return nil
}

func (r *GormMatchRepository) LoadMatch(ctx context.Context, id uint) (*scoring.Match, uint, error) {
	var rec MatchRecord
	err := r.db.WithContext(ctx).First(&rec, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrMatchNotFound
		}
		return nil, 0, fmt.Errorf("load match %d: %w", id, err)
	}
	return rec.toMatch(), rec.Version, nil
}

func (r *GormMatchRepository) SaveMatch(ctx context.Context, m *scoring.Match, expectedVersion uint) error {
	db := r.db.WithContext(ctx)
	var rec MatchRecord
	rec.fill(m)
	result := db.Model(&MatchRecord{}).
		Where("id = ? AND version = ?", m.ID, expectedVersion).
		Updates(map[string]interface{}{
			"version":      gorm.Expr("version + 1"),
			"status":       rec.Status,
			"venue":        rec.Venue,
			"scheduled_at": rec.ScheduledAt,
			"result":       rec.Result,
			"document":     models.NewJSON(*m),
		})
	if result.Error != nil {
		return fmt.Errorf("save match %d: %w", m.ID, result.Error)
	}
	if result.RowsAffected == 1 {
		return nil
	}

	var count int64
	if err := db.Model(&MatchRecord{}).Where("id = ?", m.ID).Count(&count).Error; err != nil {
		return fmt.Errorf("save match %d: %w", m.ID, err)
	}
	if count == 0 {
		return ErrMatchNotFound
	}
	return ErrVersionConflict
}

// ListMatches returns matches newest first with the total before pagination.
func (r *GormMatchRepository) ListMatches(ctx context.Context, filter ListFilter) ([]*scoring.Match, int64, error) {
	var total int64
	query := r.db.WithContext(ctx).Model(&MatchRecord{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.TeamID != 0 {
		query = query.Where("team_a_id = ? OR team_b_id = ?", filter.TeamID, filter.TeamID)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count matches: %w", err)
	}

	var records []MatchRecord
	offset := (filter.Page - 1) * filter.PageSize
	if err := query.Order("scheduled_at DESC, id DESC").Offset(offset).Limit(filter.PageSize).Find(&records).Error; err != nil {
		return nil, 0, fmt.Errorf("list matches: %w", err)
	}

	matches := make([]*scoring.Match, 0, len(records))
	for i := range records {
		matches = append(matches, records[i].toMatch())
	}
	return matches, total, nil
}
