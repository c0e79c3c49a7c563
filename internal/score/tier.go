package score

import (
	"fmt"
	"strings"
)

// Tier is a named band derived from the point total.
type Tier int

// Tiers in ascending order.
const (
	Normies Tier = iota
	Sidekick
	Decent
	Reliable
	TopGrinder
)

// String returns the display name of the tier.
func (t Tier) String() string {
	switch t {
	case Normies:
		return "Normies"
	case Sidekick:
		return "Sidekick"
	case Decent:
		return "Decent"
	case Reliable:
		return "Reliable"
	case TopGrinder:
		return "Top Grinder"
	default:
		return "Unknown"
	}
}

// Threshold is the minimum point total for a tier.
type Threshold struct {
	Tier      Tier
	MinPoints int
}

// thresholds is checked high to low; the first match wins.
var thresholds = [...]Threshold{
	{Tier: TopGrinder, MinPoints: 500},
	{Tier: Reliable, MinPoints: 250},
	{Tier: Decent, MinPoints: 210},
	{Tier: Sidekick, MinPoints: 180},
}

// Thresholds returns the tier cutoffs, highest first. Normies has no cutoff.
func Thresholds() []Threshold {
	out := make([]Threshold, len(thresholds))
	copy(out, thresholds[:])
	return out
}

// TierFor returns the tier a point total falls into.
func TierFor(points int) Tier {
	for _, th := range thresholds {
		if points >= th.MinPoints {
			return th.Tier
		}
	}
	return Normies
}

// NextTier returns the tier above the one points falls into and how many
// more points it needs. ok is false at the top tier.
func NextTier(points int) (next Tier, missing int, ok bool) {
	current := TierFor(points)
	for i := len(thresholds) - 1; i >= 0; i-- {
		th := thresholds[i]
		if th.Tier > current {
			return th.Tier, th.MinPoints - points, true
		}
	}
	return current, 0, false
}

// MarshalText encodes the tier by its display name.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// ParseTier looks a tier up by display name, ignoring case.
func ParseTier(name string) (Tier, error) {
	for t := Normies; t <= TopGrinder; t++ {
		if strings.EqualFold(strings.TrimSpace(name), t.String()) {
			return t, nil
		}
	}
	return Normies, fmt.Errorf("score: unknown tier %q", name)
}

// UnmarshalText decodes a tier from its display name.
func (t *Tier) UnmarshalText(text []byte) error {
	v, err := ParseTier(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
