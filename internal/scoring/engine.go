package scoring

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	pv "github.com/DhavalSuthar-24/crease/pkg/validator"
)

const DefaultRecentBalls = 12

// Engine applies scoring operations to a Match held in memory. It never performs I/O;
// callers load the aggregate, apply one operation and persist the result as one unit.
// Every operation validates before mutating, so a returned error leaves the match untouched.
type Engine struct {
	recentBalls int
	validate    *validator.Validate
}

// NewEngine returns an engine keeping the last recentBalls deliveries for commentary.
func NewEngine(recentBalls int) *Engine {
	if recentBalls <= 0 {
		recentBalls = DefaultRecentBalls
	}
	return &Engine{
		recentBalls: recentBalls,
		validate:    pv.New(),
	}
}

// BallResult reports the boundary events a delivery triggered.
type BallResult struct {
	Summary          BallSummary `json:"ball"`
	OverCompleted    bool        `json:"over_completed"`
	InningsCompleted bool        `json:"innings_completed"`
	MatchCompleted   bool        `json:"match_completed"`
}

// ProcessBall applies one delivery to the current innings.
func (e *Engine) ProcessBall(m *Match, d BallDelivery) (*BallResult, error) {
	if m.Status != StatusInProgress && m.Status != StatusUpcoming {
		return nil, ErrMatchNotActive
	}
	if err := validateDelivery(e.validate, d); err != nil {
		return nil, err
	}
	inn := m.Current()
	if inn == nil || inn.IsCompleted {
		return nil, ErrInningsCompleted
	}
	st := &inn.State
	if !st.full() {
		return nil, ErrNoActiveBatter
	}
	if d.BatsmanID != 0 && d.BatsmanID != st.OnStrikeID {
		return nil, fmt.Errorf("%w: player %d", ErrBatterNotOnStrike, d.BatsmanID)
	}
	bowlerID := st.CurrentBowlerID
	if bowlerID == 0 {
		return nil, ErrNoActiveBowler
	}
	if d.BowlerID != 0 && d.BowlerID != bowlerID {
		return nil, fmt.Errorf("%w: player %d", ErrBowlerMismatch, d.BowlerID)
	}
	outID, err := playerOut(st.StrikePair, d)
	if err != nil {
		return nil, err
	}

	// Validation is complete; everything below mutates.
	if m.Status == StatusUpcoming {
		m.Status = StatusInProgress
	}

	legal := d.IsLegal()
	overIndex := st.CurrentOver
	overCompleted := false
	if legal {
		inn.Balls++
		st.CurrentBall++
		overCompleted = st.CurrentBall == BallsPerOver
	}

	strikerID := st.OnStrikeID
	striker, _ := inn.Batting.GetOrCreate(strikerID)
	striker.Runs += d.Runs
	if legal {
		striker.Balls++
	}
	switch d.Runs {
	case 4:
		striker.Fours++
	case 6:
		striker.Sixes++
	}

	bowler, _ := inn.Bowling.GetOrCreate(bowlerID)
	conceded := d.conceded()
	bowler.Runs += conceded
	st.OverRunsConceded += conceded
	if legal {
		bowler.Balls++
		if conceded == 0 {
			bowler.Dots++
		}
	}
	if d.Extras != nil {
		switch d.Extras.Type {
		case ExtraWide:
			bowler.Wides++
		case ExtraNoBall:
			bowler.NoBalls++
		}
		inn.Extras.add(d.Extras.Type, d.Extras.Runs)
	}
	inn.TotalRuns += d.Runs + d.extraRuns()

	if d.IsWicket {
		e.recordWicket(inn, d, outID, bowler)
	}
	bowler.refresh()
	inn.refreshRates()

	if overCompleted {
		if st.OverRunsConceded == 0 {
			bowler.Maidens++
		}
		st.CurrentOver++
		st.CurrentBall = 0
		st.OverRunsConceded = 0
		st.CurrentBowlerID = 0
		m.Rotation.LastBowlerID = bowlerID
	}

	RotateStrike(&st.StrikePair, d.Runs, overCompleted)
	inn.syncStrikeFlags()
	st.LastBallRuns = d.Runs
	st.LastExtraType = ""
	if d.Extras != nil {
		st.LastExtraType = d.Extras.Type
	}

	summary := BallSummary{
		Over:      overIndex,
		Ball:      inn.Balls - overIndex*BallsPerOver,
		BowlerID:  bowlerID,
		BatsmanID: strikerID,
		Runs:      d.Runs,
		Extra:     d.Extras,
		IsWicket:  d.IsWicket,
		Label:     d.label(),
	}
	e.appendBall(inn, summary, overCompleted)

	inningsDone, matchDone := evaluate(m)
	return &BallResult{
		Summary:          summary,
		OverCompleted:    overCompleted,
		InningsCompleted: inningsDone,
		MatchCompleted:   matchDone,
	}, nil
}

// playerOut resolves who is dismissed. Only a run out can dismiss the non-striker.
func playerOut(p StrikePair, d BallDelivery) (uint, error) {
	if !d.IsWicket || d.PlayerOutID == nil || *d.PlayerOutID == p.OnStrikeID {
		return p.OnStrikeID, nil
	}
	verr := newValidationError(ErrInvalidDelivery)
	switch *d.PlayerOutID {
	case p.OffStrikeID:
		if d.DismissalType == DismissalRunOut {
			return p.OffStrikeID, nil
		}
		verr.add("player_out_id", "only a run out can dismiss the non-striker")
	default:
		verr.add("player_out_id", "player out must be one of the batters at the crease")
	}
	return 0, verr
}

func (e *Engine) recordWicket(inn *Innings, d BallDelivery, outID uint, bowler *BowlingStats) {
	st := &inn.State
	out, _ := inn.Batting.GetOrCreate(outID)
	out.IsOut = true
	out.DismissalType = d.DismissalType
	out.DismissedByID = bowler.PlayerID
	if d.FielderID != nil {
		out.FielderID = *d.FielderID
	}
	if d.DismissalType.CreditsBowler() {
		bowler.Wickets++
	}
	inn.Wickets++
	inn.FallOfWickets = append(inn.FallOfWickets, FallOfWicket{
		WicketNumber: inn.Wickets,
		PlayerOutID:  outID,
		Score:        inn.TotalRuns,
		Overs:        ToOversNotation(inn.Balls),
	})

	// The incoming batter takes the dismissed batter's slot via UpdateBatsmen.
	if outID == st.OnStrikeID {
		st.OnStrikeID = 0
	} else {
		st.OffStrikeID = 0
	}
}

func (e *Engine) appendBall(inn *Innings, b BallSummary, overCompleted bool) {
	inn.CurrentOverBalls = append(inn.CurrentOverBalls, b)
	if overCompleted {
		inn.PreviousOverBalls = inn.CurrentOverBalls
		inn.CurrentOverBalls = []BallSummary{}
	}
	inn.RecentBalls = append(inn.RecentBalls, b)
	if n := len(inn.RecentBalls); n > e.recentBalls {
		inn.RecentBalls = append([]BallSummary(nil), inn.RecentBalls[n-e.recentBalls:]...)
	}
}

// StartNewOver assigns the bowler for the next over.
func (e *Engine) StartNewOver(m *Match, bowlerID uint) error {
	if m.Status.IsTerminal() {
		return ErrMatchNotActive
	}
	inn := m.Current()
	if inn == nil || inn.IsCompleted {
		return ErrInningsCompleted
	}
	st := &inn.State
	if st.CurrentBall != 0 || len(inn.CurrentOverBalls) > 0 {
		return ErrOverInProgress
	}
	if err := checkBowler(m, inn, bowlerID); err != nil {
		return err
	}
	st.CurrentBowlerID = bowlerID
	st.CurrentBall = 0
	st.OverRunsConceded = 0
	return nil
}

// UpdateBatsmen sets the striker and non-striker, e.g. at innings start or after a wicket.
func (e *Engine) UpdateBatsmen(m *Match, onStrikeID, offStrikeID uint) error {
	if m.Status.IsTerminal() {
		return ErrMatchNotActive
	}
	inn := m.Current()
	if inn == nil || inn.IsCompleted {
		return ErrInningsCompleted
	}

	verr := newValidationError(ErrInvalidBatsmen)
	if onStrikeID == 0 {
		verr.add("on_strike_id", "on-strike batter is required")
	}
	if offStrikeID == 0 {
		verr.add("off_strike_id", "off-strike batter is required")
	}
	if onStrikeID != 0 && onStrikeID == offStrikeID {
		verr.add("off_strike_id", "striker and non-striker must be different players")
	}
	squad := m.Team(inn.BattingTeamID)
	for field, id := range map[string]uint{"on_strike_id": onStrikeID, "off_strike_id": offStrikeID} {
		if id == 0 {
			continue
		}
		if row, ok := inn.Batting.Get(id); ok && row.IsOut {
			verr.add(field, fmt.Sprintf("player %d is already out", id))
		}
		if len(squad.Players) > 0 && !squad.hasPlayer(id) {
			verr.add(field, fmt.Sprintf("player %d is not in the %s squad", id, squad.Name))
		}
	}
	if err := verr.orNil(); err != nil {
		return err
	}

	inn.State.StrikePair = StrikePair{OnStrikeID: onStrikeID, OffStrikeID: offStrikeID}
	// Batters join the card when they walk in, so the card keeps batting order.
	inn.Batting.GetOrCreate(onStrikeID)
	inn.Batting.GetOrCreate(offStrikeID)
	inn.syncStrikeFlags()
	return nil
}

// Abandon ends the match without a result.
func (e *Engine) Abandon(m *Match, reason string) error {
	if m.Status.IsTerminal() {
		return ErrMatchNotActive
	}
	m.Status = StatusAbandoned
	m.Result = "Match abandoned"
	if reason != "" {
		m.Result += ": " + reason
	}
	if inn := m.Current(); inn != nil {
		inn.State.CurrentBowlerID = 0
	}
	return nil
}
