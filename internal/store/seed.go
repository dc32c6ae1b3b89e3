package store

import (
	"time"

	"github.com/verdantlab/gardenbot/internal/domain"
)

const day = 24 * time.Hour

// CurrentUserID designates which roster entry owns the session.
const CurrentUserID = "1"

// Roster returns the fixed user catalog seeded at startup.
func Roster() []domain.User {
	return []domain.User{
		{ID: "1", Handle: "sarah_green", DisplayName: "Sarah Green", Avatar: "🌻", Bio: "Nature lover and habit enthusiast", BackgroundColor: "#e8f5e9"},
		{ID: "2", Handle: "mike_bloom", DisplayName: "Mike Bloom", Avatar: "🌿", Bio: "Building better habits one day at a time", BackgroundColor: "#f1f8e9"},
		{ID: "3", Handle: "emma_rose", DisplayName: "Emma Rose", Avatar: "🌹", Bio: "Wellness coach & mindfulness advocate", BackgroundColor: "#fce4ec"},
		{ID: "4", Handle: "alex_leaf", DisplayName: "Alex Leaf", Avatar: "🍃", Bio: "Fitness enthusiast and early riser", BackgroundColor: "#e0f2f1"},
		{ID: "5", Handle: "lily_garden", DisplayName: "Lily Garden", Avatar: "🌺", Bio: "Spreading positivity through daily habits", BackgroundColor: "#f3e5f5"},
		{ID: "6", Handle: "tom_sprout", DisplayName: "Tom Sprout", Avatar: "🌱", Bio: "Growing stronger every day", BackgroundColor: "#e8eaf6"},
		{ID: "7", Handle: "nina_blossom", DisplayName: "Nina Blossom", Avatar: "🌸", Bio: "Mindfulness and meditation enthusiast", BackgroundColor: "#fff3e0"},
	}
}

// Seed populates the garden with the fixed roster and, when withDemo is set,
// the demo habits, friends, posts and friend gardens shipped with the app.
func (g *Garden) Seed(now time.Time, withDemo bool) {
	g.SetUsers(Roster(), CurrentUserID)

	if !withDemo {
		return
	}

	today := now.Format(domain.DayFormat)

	g.InsertHabit(&domain.Habit{
		ID:          "1",
		Name:        "Morning Meditation",
		Description: "Start the day with 10 minutes of mindfulness",
		Duration:    30,
		PlantType:   domain.PlantSunflower,
		CheckIns:    []string{today},
		CreatedAt:   now.Add(-5 * day),
		Position:    domain.Position{X: 150, Y: 200},
	})
	g.InsertHabit(&domain.Habit{
		ID:          "2",
		Name:        "Daily Exercise",
		Description: "30 minutes of physical activity",
		Duration:    21,
		PlantType:   domain.PlantRose,
		CheckIns:    []string{today},
		CreatedAt:   now.Add(-3 * day),
		Position:    domain.Position{X: 400, Y: 250},
	})

	g.AddFriend("2")
	g.AddFriend("3")

	// InsertPost prepends, so the older post goes in first.
	g.InsertPost(&domain.Post{
		ID:        "2",
		AuthorID:  "3",
		Content:   "My morning meditation habit is really helping me stay focused throughout the day 🧘‍♀️",
		CreatedAt: now.Add(-5 * time.Hour),
		Likes:     []string{"1", "2"},
	})
	g.InsertPost(&domain.Post{
		ID:        "1",
		AuthorID:  "2",
		Content:   "Just completed my 7-day streak! 🎉 Feeling amazing!",
		CreatedAt: now.Add(-2 * time.Hour),
		Likes:     []string{"1"},
		Comments: []domain.Comment{
			{ID: "1", AuthorID: "1", Content: "Awesome work! Keep it up!", CreatedAt: now.Add(-1 * time.Hour)},
		},
	})

	g.SetFriendHabits("2", []*domain.Habit{
		{
			ID:          "f1",
			Name:        "Reading",
			Description: "Read for 30 minutes",
			Duration:    21,
			PlantType:   domain.PlantFern,
			CheckIns:    recentDays(now, 15),
			CreatedAt:   now.Add(-15 * day),
			Position:    domain.Position{X: 200, Y: 180},
		},
		{
			ID:          "f2",
			Name:        "Journaling",
			Description: "Write daily reflections",
			Duration:    14,
			PlantType:   domain.PlantTulip,
			CheckIns:    recentDays(now, 10),
			CreatedAt:   now.Add(-10 * day),
			Position:    domain.Position{X: 450, Y: 220},
		},
	})
	g.SetFriendHabits("3", []*domain.Habit{
		{
			ID:          "f3",
			Name:        "Yoga Practice",
			Description: "Daily yoga session",
			Duration:    30,
			PlantType:   domain.PlantOrchid,
			CheckIns:    recentDays(now, 20),
			CreatedAt:   now.Add(-20 * day),
			Position:    domain.Position{X: 300, Y: 200},
		},
	})
}

func recentDays(now time.Time, count int) []string {
	days := make([]string, 0, count)
	for i := 0; i < count; i++ {
		days = append(days, now.Add(-time.Duration(i)*day).Format(domain.DayFormat))
	}

	return days
}
