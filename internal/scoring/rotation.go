package scoring

import "fmt"

const reasonNoBowlers = "No bowlers available within rotation rules"

// RotationAdvice is the legal set of bowlers for the next over.
type RotationAdvice struct {
	AvailableBowlers  []uint `json:"available_bowlers"`
	RecommendedBowler *uint  `json:"recommended_bowler"`
	CanBowl           bool   `json:"can_bowl"`
	Reason            string `json:"reason,omitempty"`
}

// BowlerLoad is a bowler's workload in the current innings.
type BowlerLoad struct {
	BowlerID    uint `json:"bowler_id"`
	Balls       int  `json:"balls"`
	OversBowled int  `json:"overs_bowled"`
}

// BowlerLoads derives per-bowler workload from the bowling card.
func (inn *Innings) BowlerLoads() map[uint]BowlerLoad {
	loads := make(map[uint]BowlerLoad, inn.Bowling.Len())
	for _, row := range inn.Bowling.Rows() {
		loads[row.PlayerID] = BowlerLoad{
			BowlerID:    row.PlayerID,
			Balls:       row.Balls,
			OversBowled: row.CompletedOvers(),
		}
	}
	return loads
}

// candidatePool is the bowling side's squad when known, otherwise everyone who has bowled
// this innings. Order is squad order or first-appearance order.
func candidatePool(m *Match, inn *Innings) []uint {
	if squad := m.Team(inn.BowlingTeamID).Players; len(squad) > 0 {
		return squad
	}
	pool := make([]uint, 0, inn.Bowling.Len())
	for _, row := range inn.Bowling.Rows() {
		pool = append(pool, row.PlayerID)
	}
	return pool
}

// bowlerExclusion explains why a bowler may not bowl the next over, or returns "".
func bowlerExclusion(m *Match, loads map[uint]BowlerLoad, bowlerID uint) string {
	if bowlerID == m.Rotation.LastBowlerID {
		return "bowled the previous over"
	}
	if loads[bowlerID].OversBowled >= m.Settings.OversPerBowler {
		return fmt.Sprintf("has bowled the maximum of %d overs", m.Settings.OversPerBowler)
	}
	return ""
}

// AdviseBowlers lists who may bowl the next over and recommends the least used of them.
func AdviseBowlers(m *Match) RotationAdvice {
	advice := RotationAdvice{AvailableBowlers: []uint{}}
	inn := m.Current()
	if inn == nil || inn.IsCompleted || m.Status.IsTerminal() {
		advice.Reason = reasonNoBowlers
		return advice
	}

	loads := inn.BowlerLoads()
	best := -1
	for _, id := range candidatePool(m, inn) {
		if bowlerExclusion(m, loads, id) != "" {
			continue
		}
		advice.AvailableBowlers = append(advice.AvailableBowlers, id)
		if best < 0 || loads[id].OversBowled < best {
			best = loads[id].OversBowled
			rec := id
			advice.RecommendedBowler = &rec
		}
	}

	advice.CanBowl = len(advice.AvailableBowlers) > 0
	if !advice.CanBowl {
		advice.Reason = reasonNoBowlers
	}
	return advice
}

// checkBowler validates a bowler for the next over. A squad, when known, must contain
// the bowler. Without a squad anyone not excluded may open their spell.
func checkBowler(m *Match, inn *Innings, bowlerID uint) error {
	if bowlerID == 0 {
		return fmt.Errorf("%w: bowler id is required", ErrBowlerNotAvailable)
	}
	squad := m.Team(inn.BowlingTeamID)
	if len(squad.Players) > 0 && !squad.hasPlayer(bowlerID) {
		return fmt.Errorf("%w: player %d is not in the %s squad", ErrBowlerNotAvailable, bowlerID, squad.Name)
	}
	if reason := bowlerExclusion(m, inn.BowlerLoads(), bowlerID); reason != "" {
		return fmt.Errorf("%w: player %d %s", ErrBowlerNotAvailable, bowlerID, reason)
	}
	return nil
}
