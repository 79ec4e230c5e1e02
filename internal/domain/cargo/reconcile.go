package cargo

// Diff returns have - need for one commodity. Positive is surplus, negative is
// deficit. An unknown need yields 0 and an unknown supply counts as none.
func Diff(need, have Map, id string) int {
	n := need[id]
	if n < 0 {
		return 0
	}
	return have.Known(id) - n
}

// OnHandCount is how much of the positive need is already covered by known
// supply. Each commodity is capped at its own need, so a surplus of one
// never offsets a deficit of another.
func OnHandCount(need, have Map) int {
	total := 0
	for id, n := range need {
		if n <= 0 {
			continue
		}
		total += min(n, have.Known(id))
	}
	return total
}

// TotalNeed sums the positive needs.
func TotalNeed(need Map) int {
	total := 0
	for _, n := range need {
		if n > 0 {
			total += n
		}
	}
	return total
}

// Progress returns OnHandCount as a percentage of TotalNeed. No positive need
// reports 100.
func Progress(need, have Map) float64 {
	total := TotalNeed(need)
	if total == 0 {
		return 100
	}
	return float64(OnHandCount(need, have)) * 100 / float64(total)
}

// Remaining is the outstanding shopping list: positive needs minus known
// supply, with satisfied commodities removed.
func Remaining(need, have Map) Map {
	out := make(Map)
	for id, n := range need {
		if n <= 0 {
			continue
		}
		if left := n - have.Known(id); left > 0 {
			out[id] = left
		}
	}
	return out
}

// Line is one reconciled row of a cargo grid.
type Line struct {
	ID          string `json:"id"`
	Need        int    `json:"need"`
	Have        int    `json:"have"`
	Diff        int    `json:"diff"`
	UnknownNeed bool   `json:"unknownNeed,omitempty"`
	UnknownHave bool   `json:"unknownHave,omitempty"`
}

// Ready reports whether known supply meets the need.
func (l Line) Ready() bool {
	return !l.UnknownNeed && l.Diff >= 0
}

// Reconcile builds a line for every commodity present in either map, sorted
// by id. Need and Have keep the raw values so Unknown can be rendered.
func Reconcile(need, have Map) []Line {
	ids := Merge(need, have).Keys()
	lines := make([]Line, 0, len(ids))
	for _, id := range ids {
		lines = append(lines, Line{
			ID:          id,
			Need:        need[id],
			Have:        have[id],
			Diff:        Diff(need, have, id),
			UnknownNeed: need.IsUnknown(id),
			UnknownHave: have.IsUnknown(id),
		})
	}
	return lines
}
