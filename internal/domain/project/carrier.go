package project

import (
	"fmt"

	"github.com/andrescamacho/colonial-go/internal/domain/cargo"
)

// FleetCarrier is a player-owned mobile depot with its own inventory.
type FleetCarrier struct {
	MarketID int64     `json:"marketId" validate:"required"`
	Name     string    `json:"name"`
	Callsign string    `json:"callsign,omitempty"`
	Cargo    cargo.Map `json:"cargo,omitempty"`
}

func (fc *FleetCarrier) String() string {
	if fc.Callsign != "" {
		return fmt.Sprintf("%s (%s)", fc.Name, fc.Callsign)
	}
	return fc.Name
}

// ApplyDelta adds delta to the carrier inventory. Results below zero clamp to
// zero; unknown counts are replaced by the delta when it is positive.
func ApplyDelta(current, delta cargo.Map) cargo.Map {
	out := current.Clone()
	for id, d := range delta {
		n := out.Known(id) + d
		if n < 0 {
			n = 0
		}
		out[id] = n
	}
	return out
}
