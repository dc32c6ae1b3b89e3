package flow

import "time"

// State represents a step in a multi-message bot conversation.
type State string

const (
	// StateIdle indicates that the bot is waiting for the next command.
	StateIdle State = "idle"
	// StateHabitName indicates that the user is naming a new habit.
	StateHabitName State = "habit_name"
	// StateHabitDescription indicates that the user is describing the habit.
	StateHabitDescription State = "habit_description"
	// StateHabitDuration indicates that the user is entering the day goal.
	StateHabitDuration State = "habit_duration"
	// StateHabitPlant indicates that the user is picking a plant variant.
	StateHabitPlant State = "habit_plant"
	// StatePosting indicates that the user is composing a feed post.
	StatePosting State = "posting"
	// StateAddingFriend indicates that the user is entering a friend handle.
	StateAddingFriend State = "adding_friend"
	// StateCommenting indicates that the user is writing a comment.
	StateCommenting State = "commenting"
	// StateError indicates that the conversation needs recovery.
	StateError State = "error"
)

// UserState captures the current conversation step for a Telegram user.
type UserState struct {
	UserID       int64                  `json:"user_id"`
	CurrentState State                  `json:"current_state"`
	Context      map[string]interface{} `json:"context"`
	UpdatedAt    time.Time              `json:"updated_at"`
}
