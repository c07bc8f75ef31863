package telegram

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"cmdbot/internal/core/domain"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

const staffCacheTTL = 5 * time.Minute

// Dispatcher consumes the messages the listener produces.
type Dispatcher interface {
	Dispatch(ctx context.Context, message *domain.Message)
}

// ChatAPI is the slice of the bot client the listener uses.
type ChatAPI interface {
	GetChatAdministrators(ctx context.Context, params *bot.GetChatAdministratorsParams) ([]models.ChatMember, error)
	GetChatMember(ctx context.Context, params *bot.GetChatMemberParams) (*models.ChatMember, error)
	LeaveChat(ctx context.Context, params *bot.LeaveChatParams) (bool, error)
}

// Listener turns Telegram updates into neutral messages and hands them to
// the dispatcher. It also tracks joined rooms and recently seen users, which
// backs the RoomLister and UserAPI ports.
type Listener struct {
	api            ChatAPI
	dispatcher     Dispatcher
	botUsername    string
	siteModerators []int64

	mu    sync.RWMutex
	rooms map[int64]domain.Room
	staff map[int64]staffEntry
	seen  map[int64]map[string]domain.User
}

type staffEntry struct {
	ids     []int64
	fetched time.Time
}

func NewListener(api ChatAPI, dispatcher Dispatcher, botUsername string, siteModerators []int64) *Listener {
	return &Listener{
		api:            api,
		dispatcher:     dispatcher,
		botUsername:    botUsername,
		siteModerators: siteModerators,
		rooms:          make(map[int64]domain.Room),
		staff:          make(map[int64]staffEntry),
		seen:           make(map[int64]map[string]domain.User),
	}
}

// Handle is the bot's default update handler. Dispatch runs in its own
// goroutine so a slow command never blocks the update loop.
func (l *Listener) Handle(ctx context.Context, _ *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	message := l.toDomain(ctx, update.Message)
	l.trackRoom(message.Room)
	l.trackUser(message.Room.ID, message.Sender)

	go l.dispatcher.Dispatch(ctx, message)
}

func (l *Listener) toDomain(ctx context.Context, m *models.Message) *domain.Message {
	room := domain.Room{
		ID:    m.Chat.ID,
		Title: m.Chat.Title,
		Type:  domain.RoomNormal,
	}

	if m.Chat.Type == models.ChatTypePrivate {
		room.Type = domain.RoomPM
		room.Title = m.Chat.FirstName
	} else {
		room.StaffIDs = l.staffIDs(ctx, room.ID)
	}

	text := m.Text
	if text == "" {
		text = m.Caption
	}

	return &domain.Message{
		ID:        m.ID,
		Sender:    l.toUser(m.From),
		Room:      room,
		Text:      text,
		Mentioned: l.isMentioned(text, m.Entities),
	}
}

func (l *Listener) toUser(from *models.User) domain.User {
	rank := 0
	if slices.Contains(l.siteModerators, from.ID) {
		rank = 2
	}

	return domain.User{
		ID:          from.ID,
		Username:    from.Username,
		DisplayName: from.FirstName,
		Rank:        rank,
	}
}

func (l *Listener) isMentioned(text string, entities []models.MessageEntity) bool {
	for _, entity := range entities {
		if entity.Type != models.MessageEntityTypeMention || entity.Offset != 0 {
			continue
		}

		runes := []rune(text)
		if entity.Offset+entity.Length > len(runes) {
			continue
		}

		mention := string(runes[entity.Offset : entity.Offset+entity.Length])
		if strings.EqualFold(mention, "@"+l.botUsername) {
			return true
		}
	}

	return false
}

// staffIDs returns the administrator ids of a room, cached for a few
// minutes to keep the API happy.
func (l *Listener) staffIDs(ctx context.Context, roomID int64) []int64 {
	l.mu.RLock()
	entry, ok := l.staff[roomID]
	l.mu.RUnlock()

	if ok && time.Since(entry.fetched) < staffCacheTTL {
		return entry.ids
	}

	admins, err := l.api.GetChatAdministrators(ctx, &bot.GetChatAdministratorsParams{ChatID: roomID})
	if err != nil {
		log.Error().Err(err).Int64("roomId", roomID).Msg("failed to fetch chat administrators")
		return entry.ids
	}

	ids := make([]int64, 0, len(admins))
	for _, admin := range admins {
		if user := memberUser(admin); user != nil {
			ids = append(ids, user.ID)
		}
	}

	l.mu.Lock()
	l.staff[roomID] = staffEntry{ids: ids, fetched: time.Now()}
	l.mu.Unlock()

	return ids
}

func (l *Listener) trackRoom(room domain.Room) {
	if room.Type == domain.RoomPM {
		return
	}

	l.mu.Lock()
	l.rooms[room.ID] = room
	l.mu.Unlock()
}

func (l *Listener) trackUser(roomID int64, user domain.User) {
	l.mu.Lock()
	defer l.mu.Unlock()

	room, ok := l.seen[roomID]
	if !ok {
		room = make(map[string]domain.User)
		l.seen[roomID] = room
	}

	if user.Username != "" {
		room[strings.ToLower(user.Username)] = user
	}
	room[strings.ToLower(user.DisplayName)] = user
}

// JoinedRooms lists the public rooms the bot has seen traffic in.
func (l *Listener) JoinedRooms(_ context.Context) []domain.Room {
	l.mu.RLock()
	defer l.mu.RUnlock()

	rooms := make([]domain.Room, 0, len(l.rooms))
	for _, room := range l.rooms {
		rooms = append(rooms, room)
	}

	return rooms
}

func (l *Listener) LeaveRoom(ctx context.Context, roomID int64) error {
	if _, err := l.api.LeaveChat(ctx, &bot.LeaveChatParams{ChatID: roomID}); err != nil {
		return err
	}

	l.mu.Lock()
	delete(l.rooms, roomID)
	delete(l.staff, roomID)
	delete(l.seen, roomID)
	l.mu.Unlock()

	return nil
}

// GetUser resolves a user by numeric id or by a recently seen name in the
// room. A miss returns a nil user, not an error.
func (l *Listener) GetUser(ctx context.Context, roomID int64, query string) (*domain.User, error) {
	query = strings.TrimPrefix(query, "@")

	if id, err := strconv.ParseInt(query, 10, 64); err == nil {
		member, err := l.api.GetChatMember(ctx, &bot.GetChatMemberParams{ChatID: roomID, UserID: id})
		if err != nil || member == nil {
			return nil, nil
		}
		if from := memberUser(*member); from != nil {
			user := l.toUser(from)
			return &user, nil
		}
		return nil, nil
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if room, ok := l.seen[roomID]; ok {
		if user, ok := room[strings.ToLower(query)]; ok {
			return &user, nil
		}
	}

	return nil, nil
}

func memberUser(member models.ChatMember) *models.User {
	switch {
	case member.Owner != nil:
		return member.Owner.User
	case member.Administrator != nil:
		return &member.Administrator.User
	case member.Member != nil:
		return member.Member.User
	case member.Restricted != nil:
		return member.Restricted.User
	default:
		return nil
	}
}
