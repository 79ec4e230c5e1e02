package prefs

import (
	"context"
	"fmt"

	"github.com/andrescamacho/colonial-go/internal/domain/cargo"
	"github.com/andrescamacho/colonial-go/internal/domain/commodity"
	"github.com/andrescamacho/colonial-go/internal/domain/market"
	"github.com/andrescamacho/colonial-go/internal/domain/project"
)

const (
	namespace = "colonial."

	keyCommander = namespace + "cmdr"
	keyUI        = namespace + "ui"
	keyRecent    = namespace + "recent"
	keyDraft     = namespace + "draft."
	keySearch    = namespace + "search."
)

// MaxRecent bounds the recently viewed project list.
const MaxRecent = 5

// Commander is the local player identity and the cargo capacity of their
// ships.
type Commander struct {
	Name      string `json:"name"`
	LargeMax  int    `json:"largeMax"`
	MediumMax int    `json:"medMax"`
}

// Theme is the colour scheme choice.
type Theme string

const (
	ThemeAuto  Theme = "auto"
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// UI holds display preferences.
type UI struct {
	CargoSort       commodity.SortMode `json:"cargoSort"`
	HideFCColumns   bool               `json:"hideFCColumns"`
	HideDoneRows    bool               `json:"hideDoneRows"`
	Theme           Theme              `json:"theme"`
	MarketColumn    market.Column      `json:"marketColumn"`
	MarketAscending bool               `json:"marketAscending"`
}

// DefaultUI is used until the user changes anything.
func DefaultUI() UI {
	return UI{
		CargoSort:    commodity.SortByCategory,
		Theme:        ThemeAuto,
		MarketColumn: market.DefaultColumn,
	}
}

// SearchState is the market-search panel's last criteria and results.
type SearchState struct {
	Criteria market.Criteria     `json:"criteria"`
	Results  *market.FoundMarkets `json:"results,omitempty"`
}

// Preferences is typed access to persisted client state.
type Preferences struct {
	store Store
}

// New wraps a store.
func New(store Store) *Preferences {
	return &Preferences{store: store}
}

// Commander returns the saved identity, zero value when unset.
func (p *Preferences) Commander(ctx context.Context) (Commander, error) {
	var c Commander
	if _, err := p.store.Get(ctx, keyCommander, &c); err != nil {
		return Commander{}, err
	}
	return c, nil
}

// SetCommander saves the identity.
func (p *Preferences) SetCommander(ctx context.Context, c Commander) error {
	if c.LargeMax < 0 || c.MediumMax < 0 {
		return fmt.Errorf("cargo capacity cannot be negative")
	}
	return p.store.Set(ctx, keyCommander, c)
}

// UI returns display preferences, falling back to DefaultUI.
func (p *Preferences) UI(ctx context.Context) (UI, error) {
	ui := DefaultUI()
	if _, err := p.store.Get(ctx, keyUI, &ui); err != nil {
		return DefaultUI(), err
	}
	return ui, nil
}

// SetUI saves display preferences.
func (p *Preferences) SetUI(ctx context.Context, ui UI) error {
	return p.store.Set(ctx, keyUI, ui)
}

// Recent returns the recently viewed projects, most recent first.
func (p *Preferences) Recent(ctx context.Context) ([]project.Ref, error) {
	var refs []project.Ref
	if _, err := p.store.Get(ctx, keyRecent, &refs); err != nil {
		return nil, err
	}
	return refs, nil
}

// TouchRecent moves ref to the front of the recent list, dropping an older
// entry for the same build and anything beyond MaxRecent.
func (p *Preferences) TouchRecent(ctx context.Context, ref project.Ref) error {
	refs, err := p.Recent(ctx)
	if err != nil {
		return err
	}
	next := make([]project.Ref, 0, MaxRecent)
	next = append(next, ref)
	for _, r := range refs {
		if r.BuildID == ref.BuildID {
			continue
		}
		if len(next) == MaxRecent {
			break
		}
		next = append(next, r)
	}
	return p.store.Set(ctx, keyRecent, next)
}

// ForgetRecent removes a build from the recent list.
func (p *Preferences) ForgetRecent(ctx context.Context, buildID string) error {
	refs, err := p.Recent(ctx)
	if err != nil {
		return err
	}
	next := refs[:0]
	for _, r := range refs {
		if r.BuildID != buildID {
			next = append(next, r)
		}
	}
	return p.store.Set(ctx, keyRecent, next)
}

// Draft returns undelivered cargo entered for a build.
func (p *Preferences) Draft(ctx context.Context, buildID string) (cargo.Map, error) {
	draft := cargo.Map{}
	if _, err := p.store.Get(ctx, keyDraft+buildID, &draft); err != nil {
		return cargo.Map{}, err
	}
	return draft, nil
}

// SaveDraft stores undelivered cargo. An empty draft is removed.
func (p *Preferences) SaveDraft(ctx context.Context, buildID string, draft cargo.Map) error {
	if len(draft.Needed()) == 0 {
		return p.ClearDraft(ctx, buildID)
	}
	return p.store.Set(ctx, keyDraft+buildID, draft)
}

// ClearDraft drops the draft for a build.
func (p *Preferences) ClearDraft(ctx context.Context, buildID string) error {
	return p.store.Delete(ctx, keyDraft+buildID)
}

// Search returns the cached market-search state for a build. Results saved
// for another build are discarded.
func (p *Preferences) Search(ctx context.Context, buildID string) (SearchState, bool, error) {
	var state SearchState
	found, err := p.store.Get(ctx, keySearch+buildID, &state)
	if err != nil || !found {
		return SearchState{}, false, err
	}
	if state.Results != nil && !state.Results.ValidFor(buildID) {
		state.Results = nil
	}
	return state, true, nil
}

// SaveSearch stores the market-search state for a build.
func (p *Preferences) SaveSearch(ctx context.Context, buildID string, state SearchState) error {
	return p.store.Set(ctx, keySearch+buildID, state)
}

// ClearSearch drops the cached search for a build.
func (p *Preferences) ClearSearch(ctx context.Context, buildID string) error {
	return p.store.Delete(ctx, keySearch+buildID)
}

// Drafts lists builds that have a pending draft.
func (p *Preferences) Drafts(ctx context.Context) ([]string, error) {
	keys, err := p.store.Keys(ctx, keyDraft)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(keys))
	for i, k := range keys {
		ids[i] = k[len(keyDraft):]
	}
	return ids, nil
}
