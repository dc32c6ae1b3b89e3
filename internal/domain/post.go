package domain

import "time"

// Comment is owned by its parent post and destroyed with it.
type Comment struct {
	ID        string
	AuthorID  string
	Content   string
	CreatedAt time.Time
}

// Post is a feed entry authored by a user. Likes hold unique user IDs and
// toggle on repeat likes by the same user; comments are append-only.
type Post struct {
	ID        string
	AuthorID  string
	Content   string
	CreatedAt time.Time
	Likes     []string
	Comments  []Comment
}

// LikedBy reports whether the given user currently likes the post.
func (p *Post) LikedBy(userID string) bool {
	if p == nil {
		return false
	}

	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}

	return false
}

// Clone returns a deep copy so store-owned posts never leak to callers.
func (p *Post) Clone() *Post {
	if p == nil {
		return nil
	}

	copied := *p
	copied.Likes = append([]string(nil), p.Likes...)
	copied.Comments = append([]Comment(nil), p.Comments...)
	return &copied
}
