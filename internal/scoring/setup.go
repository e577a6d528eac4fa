package scoring

import (
	"fmt"
	"time"
)

// NewMatchParams describes a fixture before the first ball.
type NewMatchParams struct {
	TeamA             TeamRef
	TeamB             TeamRef
	TotalOvers        int
	TossWinnerID      uint
	TossDecision      TossDecision
	MaxPlayersPerSide int
	Venue             string
	ScheduledAt       time.Time
}

// NewMatch builds an upcoming match whose first innings follows the toss.
func NewMatch(p NewMatchParams) (*Match, error) {
	verr := newValidationError(ErrInvalidMatch)
	if p.TeamA.ID == 0 || p.TeamB.ID == 0 {
		verr.add("teams", "both teams are required")
	} else if p.TeamA.ID == p.TeamB.ID {
		verr.add("teams", "a team cannot play itself")
	}
	if p.TotalOvers < 1 {
		verr.add("total_overs", "total overs must be at least 1")
	}
	if p.TossWinnerID != p.TeamA.ID && p.TossWinnerID != p.TeamB.ID {
		verr.add("toss_winner_id", "toss winner must be one of the two teams")
	}
	if p.TossDecision != TossBat && p.TossDecision != TossBowl {
		verr.add("toss_decision", "toss decision must be bat or bowl")
	}

	settings := DefaultSettings(p.TotalOvers)
	if p.MaxPlayersPerSide > 0 {
		settings.MaxPlayersPerSide = p.MaxPlayersPerSide
	}
	for field, team := range map[string]TeamRef{"team_a.players": p.TeamA, "team_b.players": p.TeamB} {
		if len(team.Players) > settings.MaxPlayersPerSide {
			verr.add(field, fmt.Sprintf("a squad may have at most %d players", settings.MaxPlayersPerSide))
		}
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	var battingFirst, bowlingFirst uint
	tossLoser := p.TeamA.ID
	if p.TossWinnerID == p.TeamA.ID {
		tossLoser = p.TeamB.ID
	}
	if p.TossDecision == TossBat {
		battingFirst, bowlingFirst = p.TossWinnerID, tossLoser
	} else {
		battingFirst, bowlingFirst = tossLoser, p.TossWinnerID
	}

	return &Match{
		TeamA:        p.TeamA,
		TeamB:        p.TeamB,
		TotalOvers:   p.TotalOvers,
		Status:       StatusUpcoming,
		TossWinnerID: p.TossWinnerID,
		TossDecision: p.TossDecision,
		Innings:      []*Innings{newInnings(1, battingFirst, bowlingFirst)},
		Settings:     settings,
		Venue:        p.Venue,
		ScheduledAt:  p.ScheduledAt,
	}, nil
}
