package project

import (
	"fmt"
	"strings"
)

// ViewMode is the panel a project view is showing. Exactly one is active.
type ViewMode int

const (
	ViewOverview ViewMode = iota
	ViewEditCargo
	ViewDeliver
	ViewFindMarkets
	ViewLinkCarrier
	ViewEditProject
)

func (m ViewMode) String() string {
	switch m {
	case ViewOverview:
		return "overview"
	case ViewEditCargo:
		return "edit-cargo"
	case ViewDeliver:
		return "deliver"
	case ViewFindMarkets:
		return "find-markets"
	case ViewLinkCarrier:
		return "link-carrier"
	case ViewEditProject:
		return "edit-project"
	default:
		return fmt.Sprintf("ViewMode(%d)", int(m))
	}
}

// ParseViewMode is the inverse of String.
func ParseViewMode(s string) (ViewMode, error) {
	for m := ViewOverview; m <= ViewEditProject; m++ {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return ViewOverview, fmt.Errorf("unknown view mode %q", s)
}

// editsProgress is true for panels that change cargo counts.
func (m ViewMode) editsProgress() bool {
	switch m {
	case ViewEditCargo, ViewDeliver, ViewFindMarkets, ViewLinkCarrier:
		return true
	}
	return false
}

// View tracks the active panel of one project page.
type View struct {
	mode     ViewMode
	complete bool
}

// NewView starts on the overview panel.
func NewView(p *Project) *View {
	return &View{mode: ViewOverview, complete: p != nil && p.Complete}
}

// Mode returns the active panel.
func (v *View) Mode() ViewMode {
	return v.mode
}

// Open switches to a panel. Panels are opened from the overview only, and a
// completed project only offers the overview and project editing.
func (v *View) Open(to ViewMode) error {
	if to == v.mode {
		return nil
	}
	if to < ViewOverview || to > ViewEditProject {
		return fmt.Errorf("%w: %s", ErrInvalidTransition, to)
	}
	if v.mode != ViewOverview && to != ViewOverview {
		return fmt.Errorf("%w: close %s before opening %s", ErrInvalidTransition, v.mode, to)
	}
	if v.complete && to.editsProgress() {
		return fmt.Errorf("%w: project is complete", ErrInvalidTransition)
	}
	v.mode = to
	return nil
}

// Close returns to the overview.
func (v *View) Close() {
	v.mode = ViewOverview
}

// Refresh updates completion state from a freshly fetched project. A panel
// that no longer applies is closed.
func (v *View) Refresh(p *Project) {
	v.complete = p.Complete
	if v.complete && v.mode.editsProgress() {
		v.mode = ViewOverview
	}
}
