package entity

import "time"

// Session is the in-memory state of one authenticated interactive period.
// It exclusively owns the working chat and the loaded profile settings;
// the account store file stays the durable owner of saved chats.
type Session struct {
	Id         string
	AccountId  string
	AccountKey string

	Working    WorkingChat
	Profile    ProfileSettings
	SavedChats []SavedChat

	// EditingIndex points at the message the settings panel is editing,
	// nil when no edit is in progress.
	EditingIndex *int

	CreatedAt time.Time
}
