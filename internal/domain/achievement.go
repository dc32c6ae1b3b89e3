package domain

// Achievement is one entry of the fixed, ordered unlock catalog. The engine
// only ever flips Unlocked from false to true.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Requirement string
	Unlocked    bool
}
