package commands

import (
	"context"
	"testing"
	"time"

	"cmdbot/internal/core/domain"
	"cmdbot/internal/core/domain/command"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPingRepliesPong(t *testing.T) {
	sender := &MockSender{}
	cmd := Ping(sender)
	require.NoError(t, cmd.Validate())

	err := cmd.Handler(context.Background(), commandMessage("!ping"), nil)

	require.NoError(t, err)
	assert.Equal(t, "Pong!", sender.Last())
}

func TestVersionReply(t *testing.T) {
	sender := &MockSender{}
	cmd := Version(sender, "1.4.0")

	err := cmd.Handler(context.Background(), commandMessage("!version"), nil)

	require.NoError(t, err)
	assert.Contains(t, sender.Last(), "1.4.0")
}

func TestUptimeReply(t *testing.T) {
	sender := &MockSender{}
	cmd := Uptime(sender, time.Now().Add(-90*time.Minute))

	err := cmd.Handler(context.Background(), commandMessage("!uptime"), nil)

	require.NoError(t, err)
	assert.Contains(t, sender.Last(), "1h 30m")
}

func TestFormatDuration(t *testing.T) {
	type TestCase struct {
		description string
		duration    time.Duration
		want        string
	}

	testCases := []TestCase{
		{description: "minutes only", duration: 12 * time.Minute, want: "12m"},
		{description: "hours and minutes", duration: 3*time.Hour + 5*time.Minute, want: "3h 5m"},
		{description: "days", duration: 49*time.Hour + 1*time.Minute, want: "2d 1h 1m"},
		{description: "zero", duration: 20 * time.Second, want: "0m"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			assert.Equal(t, testCase.want, formatDuration(testCase.duration))
		})
	}
}

func TestStatsSummary(t *testing.T) {
	sender := &MockSender{}
	rooms := &MockRooms{Rooms: []domain.Room{
		{ID: 100, Title: "Lobby"},
		{ID: 101, Title: "Dev"},
	}}
	registry := command.NewRegistry()
	cmd := Stats(sender, rooms, registry, time.Now().Add(-time.Hour))
	require.NoError(t, registry.Register(cmd, cmd.Name, false))

	err := cmd.Handler(context.Background(), commandMessage("!stats"), nil)

	require.NoError(t, err)
	assert.Contains(t, sender.Last(), "1 commands")
	assert.Contains(t, sender.Last(), "2 rooms")
}

func TestStatsOnlineListsRooms(t *testing.T) {
	sender := &MockSender{}
	rooms := &MockRooms{Rooms: []domain.Room{
		{ID: 100, Title: "Lobby"},
		{ID: 101, Title: "Dev"},
	}}
	cmd := Stats(sender, rooms, command.NewRegistry(), time.Now())

	err := cmd.Handler(context.Background(), commandMessage("!stats online"), []any{"online"})

	require.NoError(t, err)
	assert.Contains(t, sender.Last(), "Lobby, Dev")
}

func TestHelpListsByCategory(t *testing.T) {
	sender := &MockSender{}
	registry := command.NewRegistry()
	ping := Ping(sender)
	require.NoError(t, registry.Register(ping, ping.Name, false))
	mode := Mode(sender, &staticMode{})
	require.NoError(t, registry.Register(mode, mode.Name, false))

	cmd := Help(sender, registry, staticPrefix("!"))
	err := cmd.Handler(context.Background(), commandMessage("!help"), nil)

	require.NoError(t, err)
	assert.Contains(t, sender.Last(), "info: ping")
	assert.Contains(t, sender.Last(), "manage: mode")
	assert.Contains(t, sender.Last(), "!help [command]")
}

func TestHelpDescribesCommand(t *testing.T) {
	sender := &MockSender{}
	registry := command.NewRegistry()
	stats := Stats(sender, &MockRooms{}, registry, time.Now())
	require.NoError(t, registry.Register(stats, stats.Name, false))

	cmd := Help(sender, registry, staticPrefix("?"))
	err := cmd.Handler(context.Background(), commandMessage("?help stats"), []any{"stats"})

	require.NoError(t, err)
	assert.Contains(t, sender.Last(), "stats: Get chat and bot stats.")
	assert.Contains(t, sender.Last(), "Usage: ?stats <online>")
	assert.Contains(t, sender.Last(), "stats online:")
}

func TestHelpUnknownCommand(t *testing.T) {
	sender := &MockSender{}
	cmd := Help(sender, command.NewRegistry(), staticPrefix("!"))

	err := cmd.Handler(context.Background(), commandMessage("!help nope"), []any{"nope"})

	require.NoError(t, err)
	assert.Contains(t, sender.Last(), `No command named "nope"`)
}
