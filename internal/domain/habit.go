package domain

import "time"

// DayFormat is the canonical layout for check-in dates. A single calendar
// date rule is shared by check-in recording and completion evaluation.
const DayFormat = "2006-01-02"

// PlantType identifies the plant variant a habit grows as.
type PlantType string

const (
	PlantSunflower PlantType = "sunflower"
	PlantRose      PlantType = "rose"
	PlantCactus    PlantType = "cactus"
	PlantFern      PlantType = "fern"
	PlantTulip     PlantType = "tulip"
	PlantOrchid    PlantType = "orchid"
)

// PlantTypes lists every supported plant variant.
var PlantTypes = []PlantType{
	PlantSunflower,
	PlantRose,
	PlantCactus,
	PlantFern,
	PlantTulip,
	PlantOrchid,
}

// Valid reports whether the plant type is one of the fixed variants.
func (p PlantType) Valid() bool {
	for _, known := range PlantTypes {
		if p == known {
			return true
		}
	}
	return false
}

// Position is a 2D placement on the garden canvas. It is opaque to the
// engine; only presentation collaborators interpret it.
type Position struct {
	X int
	Y int
}

// Habit is a tracked practice growing toward a day goal.
type Habit struct {
	ID          string
	Name        string
	Description string
	Duration    int
	PlantType   PlantType
	CheckIns    []string // calendar dates in DayFormat, unique, append order
	CreatedAt   time.Time
	Position    Position
}

// HasCheckIn reports whether the habit was already checked in on the given day.
func (h *Habit) HasCheckIn(day string) bool {
	if h == nil {
		return false
	}

	for _, recorded := range h.CheckIns {
		if recorded == day {
			return true
		}
	}

	return false
}

// Clone returns a deep copy so store-owned habits never leak to callers.
func (h *Habit) Clone() *Habit {
	if h == nil {
		return nil
	}

	copied := *h
	copied.CheckIns = append([]string(nil), h.CheckIns...)
	return &copied
}
