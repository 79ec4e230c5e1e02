package project

import (
	"sort"
	"strings"
	"time"

	"github.com/andrescamacho/colonial-go/internal/domain/cargo"
	"github.com/andrescamacho/colonial-go/internal/domain/shared"
)

// Project is a colonization construction project as reported by the backend.
// Commodities holds the outstanding need per commodity; Unknown entries mean
// the backend has not observed the site yet.
type Project struct {
	BuildID       string        `json:"buildId" validate:"required"`
	BuildName     string        `json:"buildName" validate:"required"`
	BuildType     string        `json:"buildType" validate:"required"`
	MarketID      int64         `json:"marketId" validate:"required"`
	SystemName    string        `json:"systemName"`
	SystemAddress int64         `json:"systemAddress"`
	BodyName      string        `json:"bodyName,omitempty"`
	ArchitectName string        `json:"architectName,omitempty"`
	Commanders    []string      `json:"commanders,omitempty"`
	LinkedFC      []CarrierLink `json:"linkedFC,omitempty" validate:"dive"`
	Commodities   cargo.Map     `json:"commodities"`
	MaxNeed       int           `json:"maxNeed" validate:"gte=0"`
	Complete      bool          `json:"complete"`
	TimeDue       *time.Time    `json:"timeDue,omitempty"`
	Notes         string        `json:"notes,omitempty"`
}

// CarrierLink ties a fleet carrier to a project.
type CarrierLink struct {
	MarketID int64  `json:"marketId" validate:"required"`
	Name     string `json:"name"`
}

// Need returns the outstanding commodity need.
func (p *Project) Need() cargo.Map {
	if p.Commodities == nil {
		return cargo.Map{}
	}
	return p.Commodities
}

// CarrierIDs returns the market ids of linked fleet carriers.
func (p *Project) CarrierIDs() []int64 {
	ids := make([]int64, 0, len(p.LinkedFC))
	for _, fc := range p.LinkedFC {
		ids = append(ids, fc.MarketID)
	}
	return ids
}

// HasCarrier reports whether the carrier is linked.
func (p *Project) HasCarrier(marketID int64) bool {
	for _, fc := range p.LinkedFC {
		if fc.MarketID == marketID {
			return true
		}
	}
	return false
}

// Delivered is how much of MaxNeed has been handed in.
func (p *Project) Delivered() int {
	return max(p.MaxNeed-cargo.TotalNeed(p.Need()), 0)
}

// Progress returns the delivered share of MaxNeed as a percentage (0-100).
func (p *Project) Progress() float64 {
	if p.Complete || p.MaxNeed == 0 {
		return 100.0
	}
	return float64(p.Delivered()) / float64(p.MaxNeed) * 100
}

// HasCommander reports whether cmdr is assigned, case-insensitively.
func (p *Project) HasCommander(cmdr string) bool {
	for _, c := range p.Commanders {
		if strings.EqualFold(c, cmdr) {
			return true
		}
	}
	return false
}

// Ref is the short form used by listings and the recent-projects list.
type Ref struct {
	BuildID    string `json:"buildId" validate:"required"`
	BuildName  string `json:"buildName"`
	SystemName string `json:"systemName"`
}

// Ref returns the short form of the project.
func (p *Project) Ref() Ref {
	return Ref{BuildID: p.BuildID, BuildName: p.BuildName, SystemName: p.SystemName}
}

// Draft is the input for creating a project.
type Draft struct {
	BuildName     string `json:"buildName"`
	BuildType     string `json:"buildType"`
	MarketID      int64  `json:"marketId"`
	SystemName    string `json:"systemName"`
	SystemAddress int64  `json:"systemAddress,omitempty"`
	BodyName      string `json:"bodyName,omitempty"`
	ArchitectName string `json:"architectName,omitempty"`
}

// Validate checks the fields required before a draft may be submitted. All
// failures are reported together so each can be shown next to its field.
func (d Draft) Validate() error {
	var errs shared.ValidationErrors
	if strings.TrimSpace(d.BuildName) == "" {
		errs = append(errs, shared.NewValidationError("buildName", "build name is required"))
	}
	if strings.TrimSpace(d.BuildType) == "" {
		errs = append(errs, shared.NewValidationError("buildType", "build type is required"))
	}
	if d.MarketID <= 0 {
		errs = append(errs, shared.NewValidationError("marketId", "market id is required"))
	}
	return errs.ErrOrNil()
}

// Patch is a partial project update. Nil fields are left unchanged.
type Patch struct {
	BuildName     *string   `json:"buildName,omitempty"`
	ArchitectName *string   `json:"architectName,omitempty"`
	Notes         *string   `json:"notes,omitempty"`
	Commodities   cargo.Map `json:"commodities,omitempty"`
}

// Delivery is one commander's contribution of cargo to a project.
type Delivery struct {
	BuildID string    `json:"buildId"`
	Cmdr    string    `json:"cmdr"`
	Cargo   cargo.Map `json:"cargo"`
}

// Validate rejects deliveries without a commander or without positive cargo.
func (d Delivery) Validate() error {
	var errs shared.ValidationErrors
	if strings.TrimSpace(d.BuildID) == "" {
		errs = append(errs, shared.NewValidationError("buildId", "build id is required"))
	}
	if strings.TrimSpace(d.Cmdr) == "" {
		errs = append(errs, shared.NewValidationError("cmdr", "commander name is required"))
	}
	if len(d.Cargo.Needed()) == 0 {
		errs = append(errs, shared.NewValidationError("cargo", "nothing to deliver"))
	}
	for id, n := range d.Cargo {
		if n < 0 {
			errs = append(errs, shared.NewValidationError("cargo."+id, "delivered amount cannot be negative"))
		}
	}
	return errs.ErrOrNil()
}

// Positive returns the delivery with zero entries dropped.
func (d Delivery) Positive() cargo.Map {
	out := make(cargo.Map)
	for id, n := range d.Cargo {
		if n > 0 {
			out[id] = n
		}
	}
	return out
}

// Stats summarises commander contributions to a project.
type Stats struct {
	BuildID    string         `json:"buildId"`
	Commanders map[string]int `json:"cmdrs"`
	Total      int            `json:"total" validate:"gte=0"`
}

// Contribution is one commander's delivered total.
type Contribution struct {
	Cmdr  string
	Total int
}

// Leaderboard returns contributions sorted by total descending, then name.
func (s *Stats) Leaderboard() []Contribution {
	out := make([]Contribution, 0, len(s.Commanders))
	for cmdr, total := range s.Commanders {
		out = append(out, Contribution{Cmdr: cmdr, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Cmdr < out[j].Cmdr
	})
	return out
}
