package flow

// validTransitions contains the permitted non-recovery transitions.
var validTransitions = map[State][]State{
	StateIdle: {
		StateHabitName,
		StatePosting,
		StateAddingFriend,
		StateCommenting,
	},
	StateHabitName: {
		StateHabitDescription,
	},
	StateHabitDescription: {
		StateHabitDuration,
	},
	StateHabitDuration: {
		StateHabitPlant,
	},
}

// IsTransitionAllowed reports whether moving from one state to another is
// valid. Returning to idle or dropping into error is always permitted.
func IsTransitionAllowed(from, to State) bool {
	if to == StateError || to == StateIdle {
		return true
	}

	allowed, ok := validTransitions[from]
	if !ok {
		return false
	}

	for _, state := range allowed {
		if state == to {
			return true
		}
	}

	return false
}
