package domain

// User is a chat participant as reported by the platform. Rank is the
// platform's own permission rank, 0 being a regular user.
type User struct {
	ID          int64
	Username    string
	DisplayName string
	Rank        int
}

type RoomType string

const (
	RoomPM     RoomType = "pm"
	RoomNormal RoomType = "normal"
)

// Room carries the metadata the dispatch pipeline needs: its type and the
// ids of the room staff for moderator checks.
type Room struct {
	ID       int64
	Title    string
	Type     RoomType
	StaffIDs []int64
}

type Message struct {
	ID        int
	Sender    User
	Room      Room
	Text      string
	Mentioned bool
}

// IsPM reports whether the message was received in a private room.
func (m *Message) IsPM() bool {
	return m.Room.Type == RoomPM
}

// IsStaff reports whether the sender appears in the room staff listing.
func (m *Message) IsStaff() bool {
	for _, id := range m.Room.StaffIDs {
		if id == m.Sender.ID {
			return true
		}
	}
	return false
}

// Permission levels are ordered; a caller may hold several at once.
type Permission int

const (
	PermissionUser Permission = iota
	PermissionRoomModerator
	PermissionSiteModerator
)

type Category string

const (
	CategoryUseful     Category = "useful"
	CategoryFun        Category = "fun"
	CategoryManage     Category = "manage"
	CategoryModeration Category = "moderation"
	CategoryInfo       Category = "info"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryUseful, CategoryFun, CategoryManage, CategoryModeration, CategoryInfo:
		return true
	}
	return false
}

// Categories lists all command categories in help order.
func Categories() []Category {
	return []Category{CategoryInfo, CategoryUseful, CategoryFun, CategoryManage, CategoryModeration}
}

type Mode string

const (
	ModeSerious Mode = "serious"
	ModeFun     Mode = "fun"
	ModeQuiet   Mode = "quiet"
	ModeChatty  Mode = "chatty"
)

func (m Mode) Valid() bool {
	switch m {
	case ModeSerious, ModeFun, ModeQuiet, ModeChatty:
		return true
	}
	return false
}
