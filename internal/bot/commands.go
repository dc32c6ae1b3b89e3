package bot

// Command constants for Telegram bot commands.
const (
	CommandStart        = "/start"
	CommandHelp         = "/help"
	CommandGarden       = "/garden"
	CommandNewHabit     = "/newhabit"
	CommandCheckIn      = "/checkin"
	CommandFriends      = "/friends"
	CommandAddFriend    = "/addfriend"
	CommandFeed         = "/feed"
	CommandPost         = "/post"
	CommandAchievements = "/achievements"
	CommandProfile      = "/profile"
	CommandCancel       = "/cancel"
)

// Callback prefix constants for inline button interactions.
const (
	CallbackCheckIn     = "garden_checkin"
	CallbackDeleteHabit = "garden_delete"
	CallbackPlant       = "habit_plant"
	CallbackLike        = "feed_like"
	CallbackComment     = "feed_comment"
	CallbackFeedPage    = "feed_page"
	CallbackCancel      = "cancel"
)
