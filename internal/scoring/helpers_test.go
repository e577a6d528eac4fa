package scoring

import (
	"encoding/json"
	"testing"
)

const (
	lionsID  uint = 1
	tigersID uint = 2
)

func squad(first uint) []uint {
	ids := make([]uint, 0, DefaultMaxPlayers)
	for i := uint(0); i < DefaultMaxPlayers; i++ {
		ids = append(ids, first+i)
	}
	return ids
}

// newTestMatch returns an upcoming match with Lions (101-111) batting first against
// Tigers (201-211), openers 101/102 at the crease and 201 opening the bowling.
func newTestMatch(t *testing.T, overs int) (*Engine, *Match) {
	t.Helper()
	m, err := NewMatch(NewMatchParams{
		TeamA:        TeamRef{ID: lionsID, Name: "Lions", Players: squad(101)},
		TeamB:        TeamRef{ID: tigersID, Name: "Tigers", Players: squad(201)},
		TotalOvers:   overs,
		TossWinnerID: lionsID,
		TossDecision: TossBat,
	})
	if err != nil {
		t.Fatalf("NewMatch: %v", err)
	}
	e := NewEngine(0)
	if err := e.UpdateBatsmen(m, 101, 102); err != nil {
		t.Fatalf("UpdateBatsmen: %v", err)
	}
	if err := e.StartNewOver(m, 201); err != nil {
		t.Fatalf("StartNewOver: %v", err)
	}
	return e, m
}

func bowl(t *testing.T, e *Engine, m *Match, d BallDelivery) *BallResult {
	t.Helper()
	res, err := e.ProcessBall(m, d)
	if err != nil {
		t.Fatalf("ProcessBall(%+v): %v", d, err)
	}
	return res
}

// play bowls d, first filling any vacant batting slot from the squad and starting a
// new over with the advisor's recommendation when needed.
func play(t *testing.T, e *Engine, m *Match, d BallDelivery) *BallResult {
	t.Helper()
	inn := m.Current()
	st := inn.State
	if !st.full() {
		on, off := st.OnStrikeID, st.OffStrikeID
		if on == 0 {
			on = nextBatter(m, inn, off)
		}
		if off == 0 {
			off = nextBatter(m, inn, on)
		}
		if err := e.UpdateBatsmen(m, on, off); err != nil {
			t.Fatalf("UpdateBatsmen(%d, %d): %v", on, off, err)
		}
	}
	if inn.State.CurrentBowlerID == 0 {
		advice := AdviseBowlers(m)
		if advice.RecommendedBowler == nil {
			t.Fatalf("no bowler available: %s", advice.Reason)
		}
		if err := e.StartNewOver(m, *advice.RecommendedBowler); err != nil {
			t.Fatalf("StartNewOver: %v", err)
		}
	}
	return bowl(t, e, m, d)
}

func nextBatter(m *Match, inn *Innings, atCrease uint) uint {
	for _, id := range m.Team(inn.BattingTeamID).Players {
		if _, seen := inn.Batting.Get(id); seen {
			continue
		}
		if id == atCrease {
			continue
		}
		return id
	}
	return 0
}

func snapshot(t *testing.T, m *Match) string {
	t.Helper()
	b, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(b)
}

func runs(n int) BallDelivery { return BallDelivery{Runs: n} }

func extra(typ ExtraType, n int) BallDelivery {
	return BallDelivery{Extras: &DeliveryExtra{Type: typ, Runs: n}}
}

func wicket(how DismissalType) BallDelivery {
	return BallDelivery{IsWicket: true, DismissalType: how}
}
