package keyboard_test

import (
	"testing"

	"github.com/verdantlab/gardenbot/internal/bot/keyboard"
	"github.com/verdantlab/gardenbot/internal/testutil"
)

func TestMainMenu(t *testing.T) {
	translator := &mockTranslator{
		translations: map[string]string{
			"menu.garden":       "My Garden",
			"menu.checkin":      "Check In",
			"menu.friends":      "Friends",
			"menu.feed":         "Feed",
			"menu.achievements": "Achievements",
			"menu.profile":      "Profile",
		},
	}

	markup := keyboard.MainMenu(translator)

	if !markup.ResizeKeyboard {
		t.Fatalf("expected ResizeKeyboard to be true")
	}

	expectedRows := [][]string{
		{"My Garden", "Check In"},
		{"Friends", "Feed"},
		{"Achievements", "Profile"},
	}

	testutil.AssertEqual(t, len(expectedRows), len(markup.ReplyKeyboard))

	for i, row := range expectedRows {
		testutil.AssertEqual(t, len(row), len(markup.ReplyKeyboard[i]))
		for j, text := range row {
			testutil.AssertEqual(t, text, markup.ReplyKeyboard[i][j].Text)
		}
	}
}
