package scoring

import (
	"encoding/json"
	"math"
)

// BattingStats is one row of the batting card.
type BattingStats struct {
	PlayerID      uint          `json:"player_id"`
	Runs          int           `json:"runs"`
	Balls         int           `json:"balls"`
	Fours         int           `json:"fours"`
	Sixes         int           `json:"sixes"`
	IsOut         bool          `json:"is_out"`
	DismissalType DismissalType `json:"dismissal_type,omitempty"`
	DismissedByID uint          `json:"dismissed_by_id,omitempty"`
	FielderID     uint          `json:"fielder_id,omitempty"`
	IsOnStrike    bool          `json:"is_on_strike"`
}

// StrikeRate is runs per hundred balls faced.
func (b *BattingStats) StrikeRate() float64 {
	if b.Balls == 0 {
		return 0
	}
	return math.Round(float64(b.Runs)/float64(b.Balls)*10000) / 100
}

// BowlingStats is one row of the bowling card.
type BowlingStats struct {
	PlayerID uint    `json:"player_id"`
	Balls    int     `json:"balls"`
	Overs    string  `json:"overs"`
	Runs     int     `json:"runs"`
	Wickets  int     `json:"wickets"`
	Wides    int     `json:"wides"`
	NoBalls  int     `json:"no_balls"`
	Dots     int     `json:"dots"`
	Maidens  int     `json:"maidens"`
	Economy  float64 `json:"economy"`
}

// CompletedOvers is the whole overs bowled.
func (b *BowlingStats) CompletedOvers() int {
	return b.Balls / BallsPerOver
}

func (b *BowlingStats) refresh() {
	b.Overs = ToOversNotation(b.Balls)
	b.Economy = perOver(b.Runs, b.Balls)
}

// BattingCard keys batting rows by player while keeping first-appearance order.
type BattingCard struct {
	order []uint
	rows  map[uint]*BattingStats
}

// Get returns the row for a player who already appears on the card.
func (c *BattingCard) Get(playerID uint) (*BattingStats, bool) {
	row, ok := c.rows[playerID]
	return row, ok
}

// GetOrCreate returns the player's row, adding it on first appearance.
func (c *BattingCard) GetOrCreate(playerID uint) (row *BattingStats, created bool) {
	if row, ok := c.rows[playerID]; ok {
		return row, false
	}
	if c.rows == nil {
		c.rows = make(map[uint]*BattingStats)
	}
	row = &BattingStats{PlayerID: playerID}
	c.rows[playerID] = row
	c.order = append(c.order, playerID)
	return row, true
}

// Rows returns the card in order of first appearance.
func (c *BattingCard) Rows() []*BattingStats {
	out := make([]*BattingStats, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.rows[id])
	}
	return out
}

func (c *BattingCard) Len() int { return len(c.order) }

func (c BattingCard) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Rows())
}

func (c *BattingCard) UnmarshalJSON(data []byte) error {
	var rows []*BattingStats
	if err := json.Unmarshal(data, &rows); err != nil {
		return err
	}
	*c = BattingCard{}
	for _, r := range rows {
		if r == nil {
			continue
		}
		row, _ := c.GetOrCreate(r.PlayerID)
		*row = *r
	}
	return nil
}

// BowlingCard keys bowling rows by player while keeping first-appearance order.
type BowlingCard struct {
	order []uint
	rows  map[uint]*BowlingStats
}

func (c *BowlingCard) Get(playerID uint) (*BowlingStats, bool) {
	row, ok := c.rows[playerID]
	return row, ok
}

// GetOrCreate returns the bowler's row, adding it on the bowler's first ball.
func (c *BowlingCard) GetOrCreate(playerID uint) (row *BowlingStats, created bool) {
	if row, ok := c.rows[playerID]; ok {
		return row, false
	}
	if c.rows == nil {
		c.rows = make(map[uint]*BowlingStats)
	}
	row = &BowlingStats{PlayerID: playerID, Overs: ToOversNotation(0)}
	c.rows[playerID] = row
	c.order = append(c.order, playerID)
	return row, true
}

func (c *BowlingCard) Rows() []*BowlingStats {
	out := make([]*BowlingStats, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.rows[id])
	}
	return out
}

func (c *BowlingCard) Len() int { return len(c.order) }

func (c BowlingCard) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Rows())
}

func (c *BowlingCard) UnmarshalJSON(data []byte) error {
	var rows []*BowlingStats
	if err := json.Unmarshal(data, &rows); err != nil {
		return err
	}
	*c = BowlingCard{}
	for _, r := range rows {
		if r == nil {
			continue
		}
		row, _ := c.GetOrCreate(r.PlayerID)
		*row = *r
	}
	return nil
}
