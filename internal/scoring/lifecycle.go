package scoring

import "fmt"

// evaluate closes the current innings and, in the chase, the match when a terminal
// condition holds. The first innings never ends the match; it hands over to the second.
func evaluate(m *Match) (inningsDone, matchDone bool) {
	inn := m.Current()
	if inn == nil || m.Status.IsTerminal() {
		return false, false
	}
	limit := m.Settings.WicketLimit()
	if inn.Wickets >= limit || inn.Balls >= m.TotalOvers*BallsPerOver {
		inn.IsCompleted = true
	}

	if inn.Number == 1 {
		if inn.IsCompleted {
			beginSecondInnings(m)
			return true, false
		}
		return false, false
	}

	first := m.Innings[0]
	target := first.TotalRuns + 1
	switch {
	case inn.TotalRuns >= target:
		inn.IsCompleted = true
		winner := m.Team(inn.BattingTeamID)
		complete(m, &winner.ID, fmt.Sprintf("%s won by %s", winner.Name, plural(limit-inn.Wickets, "wicket")))
	case !inn.IsCompleted:
		return false, false
	case inn.TotalRuns == first.TotalRuns:
		complete(m, nil, "Match tied")
	default:
		winner := m.Team(first.BattingTeamID)
		complete(m, &winner.ID, fmt.Sprintf("%s won by %s", winner.Name, plural(first.TotalRuns-inn.TotalRuns, "run")))
	}
	return true, true
}

// beginSecondInnings makes the chase the current innings, appending it if needed.
func beginSecondInnings(m *Match) {
	first := m.Innings[0]
	if len(m.Innings) < 2 {
		m.Innings = append(m.Innings, newInnings(2, first.BowlingTeamID, first.BattingTeamID))
	}
	second := m.Innings[1]
	second.Target = first.TotalRuns + 1
	m.CurrentInnings = 1
	m.Rotation = BowlerRotationState{}
}

func complete(m *Match, winnerID *uint, result string) {
	m.Status = StatusCompleted
	m.Result = result
	m.WinningTeamID = winnerID
	if inn := m.Current(); inn != nil {
		inn.State.CurrentBowlerID = 0
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
