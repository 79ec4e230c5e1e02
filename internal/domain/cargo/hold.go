package cargo

import "fmt"

// Hold is a ship's cargo capacity, used to turn outstanding need into
// delivery trips.
type Hold struct {
	Name     string
	Capacity int
}

// NewHold creates a hold with validation.
func NewHold(name string, capacity int) (*Hold, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("hold capacity must be positive, got %d", capacity)
	}
	return &Hold{Name: name, Capacity: capacity}, nil
}

// Trips returns how many full loads are needed to move units.
func (h *Hold) Trips(units int) int {
	if units <= 0 {
		return 0
	}
	return (units + h.Capacity - 1) / h.Capacity
}

// TripsFor returns the trips needed to cover the remaining shopping list.
func (h *Hold) TripsFor(need, have Map) int {
	return h.Trips(TotalNeed(Remaining(need, have)))
}

func (h *Hold) String() string {
	return fmt.Sprintf("Hold(%s, %d)", h.Name, h.Capacity)
}
