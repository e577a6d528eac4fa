package match

import (
	"errors"
	"time"

	"github.com/DhavalSuthar-24/crease/internal/models"
	"github.com/DhavalSuthar-24/crease/internal/scoring"
)

var (
	ErrMatchNotFound    = errors.New("match not found")
	// ErrVersionConflict means another writer committed since the match was loaded.
	ErrVersionConflict  = errors.New("match was modified concurrently")
	// ErrConcurrentUpdate is returned once the retry budget for a write is spent.
	ErrConcurrentUpdate = errors.New("match is being updated by another scorer, try again")
)

// KindOf extends scoring.KindOf with the store errors of this package.
func KindOf(err error) scoring.Kind {
	switch {
	case errors.Is(err, ErrMatchNotFound):
		return scoring.KindNotFound
	case errors.Is(err, ErrConcurrentUpdate), errors.Is(err, ErrVersionConflict):
		return scoring.KindConflict
	}
	return scoring.KindOf(err)
}

// MatchRecord is the stored form of a match. The whole aggregate lives in Document;
// the other columns are copies kept for listing and filtering.
type MatchRecord struct {
	models.BaseModel
	Version     uint                       `gorm:"not null;default:1"`
	Status      scoring.MatchStatus        `gorm:"type:varchar(20);not null;index"`
	TeamAID     uint                       `gorm:"column:team_a_id;not null;index"`
	TeamBID     uint                       `gorm:"column:team_b_id;not null;index"`
	TotalOvers  int                        `gorm:"not null"`
	Venue       string                     `gorm:"type:varchar(255)"`
	ScheduledAt time.Time                  `gorm:"index"`
	Result      string                     `gorm:"type:varchar(255)"`
	Document    models.JSON[scoring.Match] `gorm:"type:jsonb;not null"`
}

func (MatchRecord) TableName() string {
	return "matches"
}

func newRecord(m *scoring.Match) *MatchRecord {
	rec := &MatchRecord{Version: 1}
	rec.fill(m)
	return rec
}

func (r *MatchRecord) fill(m *scoring.Match) {
	r.Status = m.Status
	r.TeamAID = m.TeamA.ID
	r.TeamBID = m.TeamB.ID
	r.TotalOvers = m.TotalOvers
	r.Venue = m.Venue
	r.ScheduledAt = m.ScheduledAt
	r.Result = m.Result
	r.Document = models.NewJSON(*m)
}

// toMatch returns the aggregate with its id taken from the row.
func (r *MatchRecord) toMatch() *scoring.Match {
	m := r.Document.Data
	m.ID = r.ID
	return &m
}

// ListFilter narrows ListMatches. Zero values mean no filter.
type ListFilter struct {
	Status   scoring.MatchStatus
	TeamID   uint
	Page     int
	PageSize int
}
