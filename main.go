package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	"cmdbot/internal/adapters/generator"
	"cmdbot/internal/adapters/storage"
	"cmdbot/internal/adapters/telegram"
	"cmdbot/internal/core/domain"
	"cmdbot/internal/core/domain/command"
	"cmdbot/internal/core/domain/commands"
	"cmdbot/internal/core/service"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const version = "1.0.0"

func main() {
	log.Info().Msg("starting cmdbot...")

	viper.AddConfigPath(".")
	viper.SetConfigType("toml")

	log.Info().Msg("reading config file...")
	err := viper.ReadInConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("could not read config file")
	}

	var logLevel zerolog.Level

	switch viper.GetString("bot.log_level") {
	case "info":
		logLevel = zerolog.InfoLevel
	case "debug":
		logLevel = zerolog.DebugLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	store := storage.NewRedis(
		viper.GetString("redis.addr"),
		viper.GetString("redis.password"),
		viper.GetInt("redis.db"))
	if err := store.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed connecting to redis")
	}

	var listener *telegram.Listener
	opts := []bot.Option{
		bot.WithDefaultHandler(func(ctx context.Context, b *bot.Bot, update *models.Update) {
			listener.Handle(ctx, b, update)
		}),
	}

	token := viper.GetString("telegram.bot_token")
	b, err := bot.New(token, opts...)
	if err != nil {
		log.Panic().Err(err).Msg("failed initializing telegram bot")
	}

	me, err := b.GetMe(ctx)
	if err != nil {
		log.Panic().Err(err).Msg("failed fetching bot identity")
	}

	sender := telegram.NewSender(b)
	settings := service.NewSettings(store, viper.GetString("bot.default_prefix"))
	blacklist := service.NewBlacklist(store)
	owners := int64Slice(viper.GetIntSlice("bot.owners"))

	registry := command.NewRegistry()
	dispatcher := service.NewDispatcher(registry, settings, blacklist,
		service.NewPermissions(), sender, owners, me.ID)

	listener = telegram.NewListener(b, dispatcher, me.Username,
		int64Slice(viper.GetIntSlice("bot.site_moderators")))

	askGenerator := generator.NewOpenRouter(
		viper.GetString("openrouter.api_key"),
		viper.GetString("openrouter.model"),
		viper.GetString("openrouter.system_prompt"))

	startedAt := time.Now()
	factories := []command.Factory{
		func() *command.Command { return commands.Ping(sender) },
		func() *command.Command { return commands.Uptime(sender, startedAt) },
		func() *command.Command { return commands.Version(sender, version) },
		func() *command.Command { return commands.Stats(sender, listener, registry, startedAt) },
		func() *command.Command { return commands.Help(sender, registry, settings) },
		func() *command.Command { return commands.Mode(sender, settings) },
		func() *command.Command { return commands.SetPrefix(sender, settings) },
		func() *command.Command { return commands.Reload(sender, registry) },
		func() *command.Command { return commands.Leave(sender, listener) },
		func() *command.Command { return commands.Blacklist(sender, blacklist, listener, listener, owners, me.ID) },
		func() *command.Command { return commands.Whitelist(sender, blacklist, listener, listener, owners) },
		func() *command.Command { return commands.Ask(sender, askGenerator) },
	}

	for _, factory := range factories {
		if err := registry.RegisterFactory(factory); err != nil {
			log.Fatal().Err(err).Msg("failed registering command")
		}
	}

	if calls := viper.GetInt("bot.rate_limit.calls"); calls > 0 {
		window, err := time.ParseDuration(viper.GetString("bot.rate_limit.window"))
		if err != nil {
			log.Fatal().Err(err).Msg("invalid window for global rate limit in config")
		}
		dispatcher.SetGlobalRateLimit(calls, window)
	}

	dispatcher.OnCommand(func(name string, args []any, message *domain.Message) {
		log.Info().
			Str("command", name).
			Int("args", len(args)).
			Int64("roomId", message.Room.ID).
			Int64("userId", message.Sender.ID).
			Msg("command handled")
	})

	log.Info().Str("username", me.Username).Int("commands", registry.Len()).Msg("bot listening")
	b.Start(ctx)
}

func int64Slice(values []int) []int64 {
	converted := make([]int64, 0, len(values))
	for _, value := range values {
		converted = append(converted, int64(value))
	}
	return converted
}
