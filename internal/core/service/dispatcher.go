package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cmdbot/internal/core/domain"
	"cmdbot/internal/core/domain/command"
	"cmdbot/internal/core/port"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const pmOnlyNotice = "This is a pm only command."

// CommandListener is notified after a message resolved to a command, with
// the final argument list, whether or not the handler ran.
type CommandListener func(name string, args []any, message *domain.Message)

// Dispatcher matches inbound messages against the prefix/name grammar and
// runs the gate pipeline before invoking the command handler. Nothing it
// does propagates an error to the message source; every failure mode
// terminates here.
type Dispatcher struct {
	registry      *command.Registry
	settings      *Settings
	blacklist     *Blacklist
	permissions   *Permissions
	sender        port.TextSender
	globalLimiter *command.RateLimiter
	owners        []int64
	botID         int64

	middleware []command.Middleware
	listeners  []CommandListener
}

func NewDispatcher(
	registry *command.Registry,
	settings *Settings,
	blacklist *Blacklist,
	permissions *Permissions,
	sender port.TextSender,
	owners []int64,
	botID int64,
) *Dispatcher {
	return &Dispatcher{
		registry:    registry,
		settings:    settings,
		blacklist:   blacklist,
		permissions: permissions,
		sender:      sender,
		owners:      owners,
		botID:       botID,
	}
}

// SetGlobalRateLimit installs the bot-wide per-user limiter. Call before
// dispatch traffic starts.
func (d *Dispatcher) SetGlobalRateLimit(calls int, window time.Duration) {
	d.globalLimiter = command.NewRateLimiter(calls, window, true)
}

// Use appends middleware that runs before every command's own middleware.
func (d *Dispatcher) Use(mw command.Middleware) *Dispatcher {
	d.middleware = append(d.middleware, mw)
	return d
}

// OnCommand registers a completion listener.
func (d *Dispatcher) OnCommand(listener CommandListener) {
	d.listeners = append(d.listeners, listener)
}

// Dispatch processes one inbound message end to end.
func (d *Dispatcher) Dispatch(ctx context.Context, message *domain.Message) {
	if message.Sender.ID == d.botID {
		return
	}

	l := d.logger(message)

	prefix, ok := d.matchPrefix(ctx, message)
	if !ok {
		return
	}

	name, rest := splitCommandToken(message.Text, prefix)
	cmd := d.registry.FindByNameOrAlias(name)
	if cmd == nil {
		l.Debug().Str("token", name).Msg("no command for token")
		return
	}

	l = l.With().Str("command", cmd.Name).Logger()
	owner := d.isOwner(message.Sender.ID)

	args := splitArgs(rest, cmd.ArgSeparator)
	// listeners fire after the gate sequence whether or not the handler ran
	defer func() {
		d.emit(cmd.Name, args, message)
	}()

	if cmd.PMOnly && !message.IsPM() && !owner {
		d.reply(ctx, l, message, pmOnlyNotice)
		return
	}

	if d.settings.IsQuiet(ctx, message.Room.ID) &&
		cmd.Category != domain.CategoryModeration && cmd.Category != domain.CategoryManage {
		l.Debug().Msg("room is quiet, dropping")
		return
	}

	if d.settings.IsSerious(ctx, message.Room.ID) && cmd.Category == domain.CategoryFun {
		l.Debug().Msg("room is serious, dropping fun command")
		return
	}

	if !d.permissions.Check(cmd, d.permissions.CallerLevels(message)) {
		l.Debug().Msg("caller lacks permission")
		return
	}

	if cmd.OwnerOnly && !owner {
		l.Debug().Msg("owner only command, dropping")
		return
	}

	if !cmd.IgnoreCooldown && !d.checkRateLimits(ctx, l, message, cmd) {
		return
	}

	if d.blacklist.IsBlacklisted(ctx, message.Sender.ID, message.Room.ID) {
		l.Debug().Msg("sender is blacklisted")
		return
	}

	message, args, ok = d.runMiddleware(ctx, l, cmd, message, args)
	if !ok {
		return
	}

	d.invoke(ctx, l, cmd, message, args)
}

// matchPrefix determines the active prefix: the room prefix or the default,
// else the mention token, else the empty prefix in PMs.
func (d *Dispatcher) matchPrefix(ctx context.Context, message *domain.Message) (string, bool) {
	trimmed := strings.TrimSpace(message.Text)

	candidates := []string{d.settings.Prefix(ctx, message.Room.ID), d.settings.DefaultPrefix()}
	for _, prefix := range candidates {
		if prefix != "" && strings.HasPrefix(trimmed, prefix) {
			return prefix, true
		}
	}

	if message.Mentioned {
		if fields := strings.Fields(trimmed); len(fields) > 0 {
			return fields[0], true
		}
	}

	if message.IsPM() {
		return "", true
	}

	return "", false
}

// splitCommandToken strips the prefix and returns the command token and the
// remaining text.
func splitCommandToken(text, prefix string) (string, string) {
	rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), prefix))
	token, rest, _ := strings.Cut(rest, " ")
	return token, strings.TrimSpace(rest)
}

// splitArgs splits on the command's separator, trims each token and drops
// empty ones.
func splitArgs(text, separator string) []any {
	var args []any
	for _, token := range strings.Split(text, separator) {
		token = strings.TrimSpace(token)
		if token != "" {
			args = append(args, token)
		}
	}
	return args
}

// checkRateLimits consults the global and the per-command limiter; both
// must be clear for the call to pass, and a passing call charges both.
func (d *Dispatcher) checkRateLimits(ctx context.Context, l zerolog.Logger, message *domain.Message, cmd *command.Command) bool {
	now := time.Now()

	passedGlobal := d.checkLimiter(ctx, l, message, d.globalLimiter, false, now)
	passedCommand := d.checkLimiter(ctx, l, message, cmd.Limiter(), true, now)
	if !passedGlobal || !passedCommand {
		return false
	}

	charged := true
	if limiter := cmd.Limiter(); limiter != nil {
		charged = limiter.Get(message).Call(now)
	}
	if charged && d.globalLimiter != nil {
		d.globalLimiter.Get(message).Call(now)
	}
	return charged
}

// checkLimiter reports whether the limiter is clear; on a fresh rejection
// it sends exactly one cooldown notice per window. A global rejection that
// was already notified suppresses the per-command notice.
func (d *Dispatcher) checkLimiter(ctx context.Context, l zerolog.Logger, message *domain.Message,
	limiter *command.RateLimiter, perCommand bool, now time.Time) bool {
	if limiter == nil {
		return true
	}

	limit := limiter.Get(message)
	if !limit.IsLimited(now) {
		return true
	}

	if !limit.Notified() {
		if d.globalLimiter != nil {
			global := d.globalLimiter.Get(message)
			if global.IsLimited(now) && global.Notified() {
				return false
			}
		}

		limit.SetNotified()
		remaining := limit.Expires().Sub(now).Truncate(time.Second)
		scope := "Global"
		if perCommand {
			scope = "Command"
		}
		d.reply(ctx, l, message, fmt.Sprintf("%s cooldown. Try again in %s.", scope, remaining))
	}

	l.Debug().Bool("perCommand", perCommand).Msg("rate limited")
	return false
}

// runMiddleware executes the global chain followed by the command's own
// steps. Any failure aborts silently; the step itself decides what the
// user gets to see.
func (d *Dispatcher) runMiddleware(ctx context.Context, l zerolog.Logger, cmd *command.Command,
	message *domain.Message, args []any) (*domain.Message, []any, bool) {
	chain := make([]command.Middleware, 0, len(d.middleware)+len(cmd.Middleware))
	chain = append(chain, d.middleware...)
	chain = append(chain, cmd.Middleware...)

	for _, mw := range chain {
		next, nextArgs, err := mw(ctx, message, args)
		if err != nil {
			l.Debug().Err(err).Msg("middleware aborted dispatch")
			return message, args, false
		}
		message, args = next, nextArgs
	}
	return message, args, true
}

// invoke runs the handler. Errors and panics are logged and stop here.
func (d *Dispatcher) invoke(ctx context.Context, l zerolog.Logger, cmd *command.Command,
	message *domain.Message, args []any) {
	defer func() {
		if r := recover(); r != nil {
			l.Error().Interface("panic", r).Msg("command handler panicked")
		}
	}()

	l.Info().Msg("dispatching command")
	if err := cmd.Handler(ctx, message, args); err != nil {
		l.Error().Err(err).Msg("command handler failed")
	}
}

func (d *Dispatcher) emit(name string, args []any, message *domain.Message) {
	for _, listener := range d.listeners {
		listener(name, args, message)
	}
}

func (d *Dispatcher) isOwner(userID int64) bool {
	for _, owner := range d.owners {
		if owner == userID {
			return true
		}
	}
	return false
}

func (d *Dispatcher) reply(ctx context.Context, l zerolog.Logger, message *domain.Message, text string) {
	if err := d.sender.SendMessageReply(ctx, message, text); err != nil {
		l.Warn().Err(err).Msg("failed to send dispatcher notice")
	}
}

func (d *Dispatcher) logger(message *domain.Message) zerolog.Logger {
	dispatchID, err := uuid.NewV4()
	if err != nil {
		return log.With().Int("messageId", message.ID).Logger()
	}
	return log.With().
		Str("dispatchId", dispatchID.String()).
		Int("messageId", message.ID).
		Int64("roomId", message.Room.ID).
		Int64("userId", message.Sender.ID).
		Logger()
}
