package commands

import (
	"context"
	"strings"

	"cmdbot/internal/core/domain"
)

type MockSender struct {
	Messages []string
	Err      error
}

func (m *MockSender) SendMessageReply(_ context.Context, _ *domain.Message, text string) error {
	m.Messages = append(m.Messages, text)
	return m.Err
}

func (m *MockSender) Last() string {
	if len(m.Messages) == 0 {
		return ""
	}
	return m.Messages[len(m.Messages)-1]
}

type MockGenerator struct {
	Response string
	Prompt   string
	Err      error
}

func (m *MockGenerator) GenerateFromPrompt(_ context.Context, prompt string) (string, error) {
	m.Prompt = prompt
	return m.Response, m.Err
}

type MockRooms struct {
	Rooms  []domain.Room
	LeftID int64
	Err    error
}

func (m *MockRooms) JoinedRooms(_ context.Context) []domain.Room {
	return m.Rooms
}

func (m *MockRooms) LeaveRoom(_ context.Context, roomID int64) error {
	m.LeftID = roomID
	return m.Err
}

type MockUsers struct {
	Users map[string]*domain.User
}

func (m *MockUsers) GetUser(_ context.Context, _ int64, query string) (*domain.User, error) {
	return m.Users[strings.ToLower(query)], nil
}

type MockBlocklist struct {
	RoomBlocks   map[int64][]int64
	GlobalBlocks []int64
	Entries      []string
}

func NewMockBlocklist() *MockBlocklist {
	return &MockBlocklist{RoomBlocks: make(map[int64][]int64)}
}

func (m *MockBlocklist) BlockRoom(_ context.Context, roomID, userID int64) error {
	m.RoomBlocks[roomID] = append(m.RoomBlocks[roomID], userID)
	return nil
}

func (m *MockBlocklist) BlockGlobal(_ context.Context, userID int64) error {
	m.GlobalBlocks = append(m.GlobalBlocks, userID)
	return nil
}

func (m *MockBlocklist) UnblockRoom(_ context.Context, roomID, userID int64) error {
	blocks := m.RoomBlocks[roomID][:0]
	for _, id := range m.RoomBlocks[roomID] {
		if id != userID {
			blocks = append(blocks, id)
		}
	}
	m.RoomBlocks[roomID] = blocks
	return nil
}

func (m *MockBlocklist) UnblockGlobal(_ context.Context, userID int64) error {
	blocks := m.GlobalBlocks[:0]
	for _, id := range m.GlobalBlocks {
		if id != userID {
			blocks = append(blocks, id)
		}
	}
	m.GlobalBlocks = blocks
	return nil
}

func (m *MockBlocklist) RoomEntries(_ context.Context, _ int64) []string {
	return m.Entries
}

type staticPrefix string

func (s staticPrefix) Prefix(_ context.Context, _ int64) string {
	return string(s)
}

type staticMode struct {
	mode domain.Mode
	set  domain.Mode
	err  error
}

func (s *staticMode) CurrentMode(_ context.Context, _ int64) domain.Mode {
	return s.mode
}

func (s *staticMode) SetMode(_ context.Context, _ int64, mode domain.Mode) error {
	if s.err != nil {
		return s.err
	}
	s.set = mode
	return nil
}

func commandMessage(text string) *domain.Message {
	return &domain.Message{
		ID:     1,
		Sender: domain.User{ID: 10, Username: "alice"},
		Room:   domain.Room{ID: 100, Title: "Lobby", Type: domain.RoomNormal},
		Text:   text,
	}
}
