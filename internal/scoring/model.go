package scoring

import (
	"math"
	"time"
)

type MatchStatus string

const (
	StatusUpcoming   MatchStatus = "upcoming"
	StatusInProgress MatchStatus = "in_progress"
	StatusCompleted  MatchStatus = "completed"
	StatusAbandoned  MatchStatus = "abandoned"
)

// IsTerminal reports whether no further scoring is accepted.
func (s MatchStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusAbandoned
}

type TossDecision string

const (
	TossBat  TossDecision = "bat"
	TossBowl TossDecision = "bowl"
)

// ExtraType for runs not scored off the bat
type ExtraType string

const (
	ExtraWide   ExtraType = "wide"
	ExtraNoBall ExtraType = "no_ball"
	ExtraBye    ExtraType = "bye"
	ExtraLegBye ExtraType = "leg_bye"
)

// IsLegal reports whether a delivery carrying this extra counts toward the over.
func (t ExtraType) IsLegal() bool {
	return t != ExtraWide && t != ExtraNoBall
}

// chargedToBowler reports whether runs of this extra count against the bowler.
func (t ExtraType) chargedToBowler() bool {
	return t == ExtraWide || t == ExtraNoBall
}

// DismissalType for cricket wickets
type DismissalType string

const (
	DismissalBowled    DismissalType = "bowled"
	DismissalCaught    DismissalType = "caught"
	DismissalRunOut    DismissalType = "run_out"
	DismissalStumped   DismissalType = "stumped"
	DismissalLBW       DismissalType = "lbw"
	DismissalHitWicket DismissalType = "hit_wicket"
)

// CreditsBowler reports whether the bowler is credited with the wicket.
func (d DismissalType) CreditsBowler() bool {
	return d != DismissalRunOut
}

const (
	BallsPerOver      = 6
	MaxWickets        = 10
	DefaultMaxPlayers = 11
)

// TeamRef identifies a side in a match. Players is the optional squad in batting order.
type TeamRef struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Players []uint `json:"players,omitempty"`
}

func (t TeamRef) hasPlayer(id uint) bool {
	for _, p := range t.Players {
		if p == id {
			return true
		}
	}
	return false
}

// Settings are fixed when the match is created.
type Settings struct {
	OversPerBowler    int `json:"overs_per_bowler"`
	MaxPlayersPerSide int `json:"max_players_per_side"`
}

// DefaultSettings caps each bowler at a fifth of the innings, between 1 and 4 overs.
func DefaultSettings(totalOvers int) Settings {
	perBowler := int(math.Round(float64(totalOvers) * 0.2))
	if perBowler < 1 {
		perBowler = 1
	}
	if perBowler > 4 {
		perBowler = 4
	}
	return Settings{
		OversPerBowler:    perBowler,
		MaxPlayersPerSide: DefaultMaxPlayers,
	}
}

// WicketLimit is the number of wickets that bowls a side out.
func (s Settings) WicketLimit() int {
	limit := s.MaxPlayersPerSide - 1
	if s.MaxPlayersPerSide <= 0 || limit > MaxWickets {
		return MaxWickets
	}
	if limit < 1 {
		return 1
	}
	return limit
}

// BowlerRotationState remembers who bowled the last completed over of the current innings.
// Per-bowler over counts are derived from the innings bowling card, see Innings.BowlerLoads.
type BowlerRotationState struct {
	LastBowlerID uint `json:"last_bowler_id,omitempty"`
}

// Match is the root aggregate for live scoring.
type Match struct {
	ID             uint                `json:"id"`
	TeamA          TeamRef             `json:"team_a"`
	TeamB          TeamRef             `json:"team_b"`
	TotalOvers     int                 `json:"total_overs"`
	Status         MatchStatus         `json:"status"`
	TossWinnerID   uint                `json:"toss_winner_id"`
	TossDecision   TossDecision        `json:"toss_decision"`
	Innings        []*Innings          `json:"innings"`
	CurrentInnings int                 `json:"current_innings"`
	Result         string              `json:"result,omitempty"`
	WinningTeamID  *uint               `json:"winning_team_id,omitempty"`
	Settings       Settings            `json:"settings"`
	Rotation       BowlerRotationState `json:"bowler_rotation"`

	// Administrative fields, never read by the engine.
	Venue       string    `json:"venue,omitempty"`
	ScheduledAt time.Time `json:"scheduled_at"`
}

// Current returns the active innings, or nil when none exists.
func (m *Match) Current() *Innings {
	if m.CurrentInnings < 0 || m.CurrentInnings >= len(m.Innings) {
		return nil
	}
	return m.Innings[m.CurrentInnings]
}

// Team returns the side with the given id.
func (m *Match) Team(id uint) TeamRef {
	if m.TeamB.ID == id {
		return m.TeamB
	}
	return m.TeamA
}

// Extras is the per-innings breakdown of runs not scored off the bat.
type Extras struct {
	Wides   int `json:"wides"`
	NoBalls int `json:"no_balls"`
	Byes    int `json:"byes"`
	LegByes int `json:"leg_byes"`
	Total   int `json:"total"`
}

func (e *Extras) add(t ExtraType, runs int) {
	switch t {
	case ExtraWide:
		e.Wides += runs
	case ExtraNoBall:
		e.NoBalls += runs
	case ExtraBye:
		e.Byes += runs
	case ExtraLegBye:
		e.LegByes += runs
	}
	e.Total += runs
}

// CurrentState is the position of play inside an innings.
type CurrentState struct {
	CurrentOver int `json:"current_over"`
	CurrentBall int `json:"current_ball"` // legal balls in the current over, 0-5
	StrikePair
	CurrentBowlerID  uint      `json:"current_bowler_id"`
	LastBallRuns     int       `json:"last_ball_runs"`
	LastExtraType    ExtraType `json:"last_extra_type,omitempty"`
	OverRunsConceded int       `json:"over_runs_conceded"`
}

// BallSummary is one entry of the ball-by-ball buffers.
type BallSummary struct {
	Over      int            `json:"over"` // 0-indexed
	Ball      int            `json:"ball"` // legal balls bowled in the over after this delivery
	BowlerID  uint           `json:"bowler_id"`
	BatsmanID uint           `json:"batsman_id"`
	Runs      int            `json:"runs"`
	Extra     *DeliveryExtra `json:"extra,omitempty"`
	IsWicket  bool           `json:"is_wicket"`
	Label     string         `json:"label"`
}

// FallOfWicket records when and how a wicket fell.
type FallOfWicket struct {
	WicketNumber int    `json:"wicket_number"`
	PlayerOutID  uint   `json:"player_out_id"`
	Score        int    `json:"score"`
	Overs        string `json:"overs"`
}

// Innings represents one team's batting turn.
type Innings struct {
	Number        int     `json:"number"` // 1 or 2
	BattingTeamID uint    `json:"batting_team_id"`
	BowlingTeamID uint    `json:"bowling_team_id"`
	TotalRuns     int     `json:"total_runs"`
	Wickets       int     `json:"wickets"`
	Balls         int     `json:"balls"`
	Overs         string  `json:"overs"`
	RunRate       float64 `json:"run_rate"`
	Target        int     `json:"target,omitempty"`
	Extras        Extras  `json:"extras"`

	Batting BattingCard `json:"batting"`
	Bowling BowlingCard `json:"bowling"`

	State             CurrentState   `json:"current_state"`
	CurrentOverBalls  []BallSummary  `json:"current_over_balls"`
	PreviousOverBalls []BallSummary  `json:"previous_over_balls,omitempty"`
	RecentBalls       []BallSummary  `json:"recent_balls"`
	FallOfWickets     []FallOfWicket `json:"fall_of_wickets,omitempty"`
	IsCompleted       bool           `json:"is_completed"`
}

func newInnings(number int, batting, bowling uint) *Innings {
	return &Innings{
		Number:           number,
		BattingTeamID:    batting,
		BowlingTeamID:    bowling,
		Overs:            ToOversNotation(0),
		CurrentOverBalls: []BallSummary{},
		RecentBalls:      []BallSummary{},
	}
}

func (inn *Innings) refreshRates() {
	inn.Overs = ToOversNotation(inn.Balls)
	inn.RunRate = perOver(inn.TotalRuns, inn.Balls)
}

// syncStrikeFlags keeps BattingStats.IsOnStrike aligned with the current state.
func (inn *Innings) syncStrikeFlags() {
	for _, row := range inn.Batting.Rows() {
		row.IsOnStrike = row.PlayerID == inn.State.OnStrikeID
	}
}

// perOver returns runs per six balls rounded to two places, zero for no balls.
func perOver(runs, balls int) float64 {
	if balls == 0 {
		return 0
	}
	return math.Round(float64(runs)*float64(BallsPerOver)/float64(balls)*100) / 100
}
