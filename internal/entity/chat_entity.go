package entity

type MessageRole string

const (
	RoleMe    MessageRole = "me"
	RoleOther MessageRole = "other"
)

// Message is a single chat bubble. Role decides which side it renders on.
type Message struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
}

// ProfileSettings holds the two participants' display names and avatar
// images. Avatars are self-contained data URIs so the store stays a single
// portable file.
type ProfileSettings struct {
	MeName    string `json:"me_name"`
	OtherName string `json:"other_name"`
	MePic     string `json:"me_pic"`
	OtherPic  string `json:"other_pic"`
}

// SavedChat is an immutable copy of a working chat plus the profile settings
// active when it was saved. Date is pre-formatted for display (YY-MM-DD HH:MM).
type SavedChat struct {
	Title     string    `json:"title"`
	Date      string    `json:"date"`
	Messages  []Message `json:"messages"`
	MePic     string    `json:"me_pic"`
	OtherPic  string    `json:"other_pic"`
	MeName    string    `json:"me_name"`
	OtherName string    `json:"other_name"`
}

// AccountStore is the on-disk envelope, one file per session key. Field names
// are the wire contract with existing store files.
type AccountStore struct {
	SavedChats []SavedChat `json:"saved_chats"`
	MePic      string      `json:"me_pic"`
	OtherPic   string      `json:"other_pic"`
	MeName     string      `json:"me_name"`
	OtherName  string      `json:"other_name"`
}

// WorkingChat is the transient, not-yet-saved chat being edited.
type WorkingChat struct {
	Title    string    `json:"title"`
	Messages []Message `json:"messages"`
}

const (
	DefaultMeName    = "나"
	DefaultOtherName = "상대방"
	DefaultChatTitle = "새로운 채팅"
)

// DefaultProfileSettings returns the initial names and placeholder avatars.
func DefaultProfileSettings(placeholderPic string) ProfileSettings {
	return ProfileSettings{
		MeName:    DefaultMeName,
		OtherName: DefaultOtherName,
		MePic:     placeholderPic,
		OtherPic:  placeholderPic,
	}
}
