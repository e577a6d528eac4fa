package scoring

import (
	"fmt"
	"strconv"
	"strings"
)

// ToOversNotation renders a legal ball count in cricket's overs.balls form.
// The part after the dot is a ball count (0-5), never a decimal fraction: 22 balls is "3.4".
func ToOversNotation(balls int) string {
	if balls < 0 {
		balls = 0
	}
	overs, rem := balls/BallsPerOver, balls%BallsPerOver
	if rem == 0 {
		return strconv.Itoa(overs)
	}
	return fmt.Sprintf("%d.%d", overs, rem)
}

// ToBalls parses overs.balls notation back into a legal ball count.
func ToBalls(overs string) (int, error) {
	whole, frac, hasFrac := strings.Cut(strings.TrimSpace(overs), ".")
	n, err := strconv.Atoi(whole)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid overs %q", overs)
	}
	balls := n * BallsPerOver
	if !hasFrac {
		return balls, nil
	}
	if len(frac) != 1 {
		return 0, fmt.Errorf("invalid overs %q: ball part must be a single digit", overs)
	}
	b, err := strconv.Atoi(frac)
	if err != nil || b < 0 || b >= BallsPerOver {
		return 0, fmt.Errorf("invalid overs %q: ball part must be 0-%d", overs, BallsPerOver-1)
	}
	return balls + b, nil
}
