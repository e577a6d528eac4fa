package match

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/DhavalSuthar-24/crease/internal/scoring"
)

// Event types pushed to live subscribers after a committed write.
const (
	EventBallProcessed  = "BALL_PROCESSED"
	EventOverStarted    = "OVER_STARTED"
	EventBatsmenUpdated = "BATSMEN_UPDATED"
	EventMatchUpdated   = "MATCH_UPDATED"
)

const DefaultMaxRetries = 3

// Publisher fans committed match state out to live subscribers.
type Publisher interface {
	Publish(matchID uint, eventType string, payload interface{})
}

// Update is the payload of every live event.
type Update struct {
	Match *scoring.Match      `json:"match"`
	Ball  *scoring.BallResult `json:"ball,omitempty"`
}

// DetailsUpdate carries the administrative fields that may change at any time.
type DetailsUpdate struct {
	Venue       *string
	ScheduledAt *time.Time
}

// MatchService is the single write path for matches. Every mutation loads the aggregate,
// applies one engine operation and saves it with a version check, retrying on conflict.
type MatchService struct {
	repo       MatchRepository
	engine     *scoring.Engine
	publisher  Publisher
	maxRetries int
}

func NewMatchService(repo MatchRepository, engine *scoring.Engine, publisher Publisher, maxRetries int) *MatchService {
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}
	return &MatchService{
		repo:       repo,
		engine:     engine,
		publisher:  publisher,
		maxRetries: maxRetries,
	}
}

// mutate runs apply against a freshly loaded match until the save wins the version check.
// apply must be free of side effects outside m because it may run more than once.
func (s *MatchService) mutate(ctx context.Context, id uint, apply func(m *scoring.Match) error) (*scoring.Match, error) {
	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		m, version, err := s.repo.LoadMatch(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := apply(m); err != nil {
			return nil, err
		}
		err = s.repo.SaveMatch(ctx, m, version)
		if err == nil {
			return m, nil
		}
		if !errors.Is(err, ErrVersionConflict) {
			return nil, err
		}
		log.Printf("match %d: version %d conflict on attempt %d/%d, retrying", id, version, attempt, s.maxRetries)
	}
	return nil, fmt.Errorf("match %d: %w", id, ErrConcurrentUpdate)
}

func (s *MatchService) publish(m *scoring.Match, eventType string, ball *scoring.BallResult) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(m.ID, eventType, Update{Match: m, Ball: ball})
}

// CreateMatch stores a new upcoming match.
func (s *MatchService) CreateMatch(ctx context.Context, p scoring.NewMatchParams) (*scoring.Match, error) {
	m, err := scoring.NewMatch(p)
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreateMatch(ctx, m); err != nil {
		return nil, err
	}
	log.Printf("match %d created: %s v %s, %d overs", m.ID, m.TeamA.Name, m.TeamB.Name, m.TotalOvers)
	return m, nil
}

func (s *MatchService) GetMatch(ctx context.Context, id uint) (*scoring.Match, error) {
	m, _, err := s.repo.LoadMatch(ctx, id)
	return m, err
}

func (s *MatchService) ListMatches(ctx context.Context, filter ListFilter) ([]*scoring.Match, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 10
	}
	return s.repo.ListMatches(ctx, filter)
}

// ProcessBall scores one delivery.
func (s *MatchService) ProcessBall(ctx context.Context, id uint, d scoring.BallDelivery) (*scoring.Match, *scoring.BallResult, error) {
	var res *scoring.BallResult
	m, err := s.mutate(ctx, id, func(m *scoring.Match) error {
		var err error
		res, err = s.engine.ProcessBall(m, d)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	if res.OverCompleted {
		log.Printf("match %d: over completed by bowler %d", m.ID, res.Summary.BowlerID)
	}
	if res.InningsCompleted {
		log.Printf("match %d: innings completed", m.ID)
	}
	if res.MatchCompleted {
		log.Printf("match %d completed: %s", m.ID, m.Result)
	}
	s.publish(m, EventBallProcessed, res)
	return m, res, nil
}

// GetBowlerRotation advises who may bowl the next over. It never writes.
func (s *MatchService) GetBowlerRotation(ctx context.Context, id uint) (scoring.RotationAdvice, error) {
	m, _, err := s.repo.LoadMatch(ctx, id)
	if err != nil {
		return scoring.RotationAdvice{}, err
	}
	return scoring.AdviseBowlers(m), nil
}

func (s *MatchService) StartNewOver(ctx context.Context, id, bowlerID uint) (*scoring.Match, error) {
	m, err := s.mutate(ctx, id, func(m *scoring.Match) error {
		return s.engine.StartNewOver(m, bowlerID)
	})
	if err != nil {
		return nil, err
	}
	s.publish(m, EventOverStarted, nil)
	return m, nil
}

func (s *MatchService) UpdateBatsmen(ctx context.Context, id, onStrikeID, offStrikeID uint) (*scoring.Match, error) {
	m, err := s.mutate(ctx, id, func(m *scoring.Match) error {
		return s.engine.UpdateBatsmen(m, onStrikeID, offStrikeID)
	})
	if err != nil {
		return nil, err
	}
	s.publish(m, EventBatsmenUpdated, nil)
	return m, nil
}

func (s *MatchService) AbandonMatch(ctx context.Context, id uint, reason string) (*scoring.Match, error) {
	m, err := s.mutate(ctx, id, func(m *scoring.Match) error {
		return s.engine.Abandon(m, reason)
	})
	if err != nil {
		return nil, err
	}
	s.publish(m, EventMatchUpdated, nil)
	return m, nil
}

// UpdateDetails edits venue and schedule. It goes through the same version check as
// scoring so an admin edit can never overwrite a ball.
func (s *MatchService) UpdateDetails(ctx context.Context, id uint, u DetailsUpdate) (*scoring.Match, error) {
	m, err := s.mutate(ctx, id, func(m *scoring.Match) error {
		if u.Venue != nil {
			m.Venue = *u.Venue
		}
		if u.ScheduledAt != nil {
			m.ScheduledAt = *u.ScheduledAt
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.publish(m, EventMatchUpdated, nil)
	return m, nil
}
