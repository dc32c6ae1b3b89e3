package domain

// User represents a member of the garden community.
type User struct {
	ID              string
	Handle          string
	DisplayName     string
	Avatar          string
	Bio             string
	BackgroundColor string
}
