package derive

import "github.com/verdantlab/gardenbot/internal/domain"

// Catalog returns the fixed, ordered achievement catalog with every flag
// locked. The "streak" rules count total check-ins of a single habit, not a
// verified consecutive-day run; that proxy is kept on purpose so unlock
// behavior matches the product's established semantics.
func Catalog() []*domain.Achievement {
	return []*domain.Achievement{
		{ID: "1", Name: "First Seed", Description: "Create your first habit", Icon: "leaf", Requirement: "Create 1 habit"},
		{ID: "2", Name: "Week Warrior", Description: "Complete 7 consecutive check-ins", Icon: "star", Requirement: "Complete 7 consecutive check-ins"},
		{ID: "3", Name: "Garden Master", Description: "Have 5 active habits", Icon: "trophy", Requirement: "Create 5 habits"},
		{ID: "4", Name: "Social Butterfly", Description: "Add 3 friends", Icon: "star", Requirement: "Add 3 friends"},
		{ID: "5", Name: "Consistency King", Description: "Complete 30 check-ins", Icon: "trophy", Requirement: "Complete 30 check-ins"},
		{ID: "6", Name: "Full Bloom", Description: "Grow a plant to maturity", Icon: "leaf", Requirement: "Complete a habit"},
		{ID: "7", Name: "Streak Master", Description: "Maintain a 14-day streak", Icon: "star", Requirement: "Complete 14 consecutive check-ins"},
		{ID: "8", Name: "Habit Champion", Description: "Complete 3 different habits", Icon: "trophy", Requirement: "Complete 3 habits"},
		{ID: "9", Name: "Social Star", Description: "Create 10 posts", Icon: "star", Requirement: "Create 10 posts"},
		{ID: "10", Name: "Community Builder", Description: "Add 5 friends", Icon: "leaf", Requirement: "Add 5 friends"},
		{ID: "11", Name: "Century Club", Description: "Complete 100 total check-ins", Icon: "trophy", Requirement: "Complete 100 check-ins"},
		{ID: "12", Name: "Engagement Expert", Description: "Receive 50 likes on your posts", Icon: "star", Requirement: "Receive 50 likes"},
	}
}

// rules maps catalog ids to their unlock conditions. Each rule reads
// aggregates only and decides for exactly one achievement.
var rules = map[string]func(Stats) bool{
	"1":  func(s Stats) bool { return s.HabitCount >= 1 },
	"2":  func(s Stats) bool { return s.MaxCheckIns >= 7 },
	"3":  func(s Stats) bool { return s.HabitCount >= 5 },
	"4":  func(s Stats) bool { return s.FriendCount >= 3 },
	"5":  func(s Stats) bool { return s.TotalCheckIns >= 30 },
	"6":  func(s Stats) bool { return s.CompletedCount >= 1 },
	"7":  func(s Stats) bool { return s.MaxCheckIns >= 14 },
	"8":  func(s Stats) bool { return s.CompletedCount >= 3 },
	"9":  func(s Stats) bool { return s.PostCount >= 10 },
	"10": func(s Stats) bool { return s.FriendCount >= 5 },
	"11": func(s Stats) bool { return s.TotalCheckIns >= 100 },
	"12": func(s Stats) bool { return s.TotalLikes >= 50 },
}
