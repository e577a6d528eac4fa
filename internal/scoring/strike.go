package scoring

// StrikePair holds the two batting slots. Zero means the slot is vacant.
type StrikePair struct {
	OnStrikeID  uint `json:"on_strike_id"`
	OffStrikeID uint `json:"off_strike_id"`
}

// Swap exchanges striker and non-striker, vacant slots included.
func (p *StrikePair) Swap() {
	p.OnStrikeID, p.OffStrikeID = p.OffStrikeID, p.OnStrikeID
}

func (p StrikePair) full() bool {
	return p.OnStrikeID != 0 && p.OffStrikeID != 0
}

// RotateStrike applies the odd bat-run crossing and then the end-of-over change of ends.
// Extras never cross the batters. Both swaps are applied in turn, so an odd run off the
// last ball leaves the striker on strike.
func RotateStrike(p *StrikePair, batRuns int, overCompleted bool) {
	if batRuns%2 == 1 {
		p.Swap()
	}
	if overCompleted {
		p.Swap()
	}
}
