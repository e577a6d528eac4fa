package scoring

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	pv "github.com/DhavalSuthar-24/crease/pkg/validator"
)

// DeliveryExtra describes runs not scored off the bat on a delivery.
// For wides and no-balls Runs includes the one-run penalty.
type DeliveryExtra struct {
	Type ExtraType `json:"type" validate:"required,oneof=wide no_ball bye leg_bye"`
	Runs int       `json:"runs" validate:"min=0,max=7"`
}

// BallDelivery is the outcome of a single delivery, the unit of input to the engine.
// BatsmanID and BowlerID are optional cross-checks against the current state.
type BallDelivery struct {
	Runs          int            `json:"runs" validate:"min=0,max=6"`
	Extras        *DeliveryExtra `json:"extras,omitempty"`
	IsWicket      bool           `json:"is_wicket"`
	DismissalType DismissalType  `json:"dismissal_type,omitempty" validate:"omitempty,oneof=bowled caught run_out stumped lbw hit_wicket"`
	FielderID     *uint          `json:"fielder_id,omitempty"`
	PlayerOutID   *uint          `json:"player_out_id,omitempty"`
	BatsmanID     uint           `json:"batsman_id"`
	BowlerID      uint           `json:"bowler_id"`
}

// IsLegal reports whether the delivery counts toward the over and balls faced.
func (d BallDelivery) IsLegal() bool {
	return d.Extras == nil || d.Extras.Type.IsLegal()
}

func (d BallDelivery) extraRuns() int {
	if d.Extras == nil {
		return 0
	}
	return d.Extras.Runs
}

// conceded is what the bowler is charged for: bat runs plus wides and no-balls.
func (d BallDelivery) conceded() int {
	if d.Extras != nil && d.Extras.Type.chargedToBowler() {
		return d.Runs + d.Extras.Runs
	}
	return d.Runs
}

func (d BallDelivery) label() string {
	var s string
	switch {
	case d.Extras == nil:
		s = fmt.Sprintf("%d", d.Runs)
	case d.Extras.Type == ExtraWide:
		s = fmt.Sprintf("%dwd", d.Extras.Runs)
	case d.Extras.Type == ExtraNoBall:
		s = fmt.Sprintf("%dnb", d.Runs+d.Extras.Runs)
	case d.Extras.Type == ExtraBye:
		s = fmt.Sprintf("%db", d.Extras.Runs)
	case d.Extras.Type == ExtraLegBye:
		s = fmt.Sprintf("%dlb", d.Extras.Runs)
	}
	if d.IsWicket {
		if d.Extras == nil && d.Runs == 0 {
			return "W"
		}
		return "W+" + s
	}
	return s
}

func validateDelivery(v *validator.Validate, d BallDelivery) error {
	verr := newValidationError(ErrInvalidDelivery)
	if err := v.Struct(d); err != nil {
		for field, msg := range pv.ParseError(err) {
			verr.add(field, msg)
		}
	}
	if d.Extras != nil {
		switch d.Extras.Type {
		case ExtraWide, ExtraBye, ExtraLegBye:
			if d.Runs != 0 {
				verr.add("runs", fmt.Sprintf("runs off the bat are not allowed on a %s", d.Extras.Type))
			}
		}
		if d.Extras.Runs < 1 {
			verr.add("extras.runs", fmt.Sprintf("a %s carries at least one run", d.Extras.Type))
		}
	}
	if d.IsWicket && d.DismissalType == "" {
		verr.add("dismissal_type", "dismissal type is required for a wicket")
	}
	if !d.IsWicket && (d.DismissalType != "" || d.PlayerOutID != nil) {
		verr.add("dismissal_type", "dismissal details given without a wicket")
	}
	return verr.orNil()
}
