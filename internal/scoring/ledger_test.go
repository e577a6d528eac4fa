package scoring

import (
	"encoding/json"
	"testing"
)

func TestBattingCardKeepsArrivalOrder(t *testing.T) {
	var card BattingCard
	for _, id := range []uint{7, 3, 9} {
		card.GetOrCreate(id)
	}
	row, created := card.GetOrCreate(3)
	if created {
		t.Fatal("existing row recreated")
	}
	row.Runs = 42

	b, err := json.Marshal(card)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded BattingCard
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	rows := decoded.Rows()
	if len(rows) != 3 || rows[0].PlayerID != 7 || rows[1].PlayerID != 3 || rows[2].PlayerID != 9 {
		t.Fatalf("order lost: %s", b)
	}
	if got, ok := decoded.Get(3); !ok || got.Runs != 42 {
		t.Errorf("lookup after decode = %+v", got)
	}
	if _, ok := decoded.Get(4); ok {
		t.Error("unknown player found")
	}
}

func TestStrikeRate(t *testing.T) {
	b := BattingStats{Runs: 7, Balls: 3}
	if got := b.StrikeRate(); got != 233.33 {
		t.Errorf("strike rate = %v", got)
	}
	if got := (&BattingStats{Runs: 4}).StrikeRate(); got != 0 {
		t.Errorf("no balls faced: strike rate = %v", got)
	}
}

func TestBowlingFigures(t *testing.T) {
	var card BowlingCard
	row, _ := card.GetOrCreate(11)
	row.Balls, row.Runs = 22, 30
	row.refresh()
	if row.Overs != "3.4" || row.Economy != 8.18 || row.CompletedOvers() != 3 {
		t.Errorf("figures = %+v", row)
	}
}
