package command

import (
	"sync"
	"time"

	"cmdbot/internal/core/domain"
)

// RateLimit is the mutable counter for one scope key: calls within the
// current window, when the window closes, and whether the user has already
// been told they are on cooldown. The window resets lazily on the first
// call after it expired.
type RateLimit struct {
	mu       sync.Mutex
	limit    int
	window   time.Duration
	count    int
	expires  time.Time
	notified bool
}

func newRateLimit(limit int, window time.Duration) *RateLimit {
	return &RateLimit{limit: limit, window: window}
}

// Call attempts one invocation at the given time. It reports whether the
// call is allowed; the first allowed call in a window arms the expiry.
func (r *RateLimit) Call(now time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !now.Before(r.expires) {
		r.reset()
	}
	if r.count >= r.limit {
		return false
	}
	r.count++
	if r.count == 1 {
		r.expires = now.Add(r.window)
	}
	return true
}

// IsLimited reports whether the scope is inside an exhausted window.
func (r *RateLimit) IsLimited(now time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count >= r.limit && now.Before(r.expires)
}

func (r *RateLimit) Notified() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.notified
}

func (r *RateLimit) SetNotified() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notified = true
}

func (r *RateLimit) Expires() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.expires
}

func (r *RateLimit) reset() {
	r.count = 0
	r.expires = time.Time{}
	r.notified = false
}

// RateLimiter hands out RateLimit states per scope key. A global limiter
// keys by user id only; a non-global one keys by (room, user). Private
// rooms always fall back to the per-user scope, they have no room of their
// own to scope against.
type RateLimiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	global bool
	users  map[int64]*RateLimit
	rooms  map[int64]map[int64]*RateLimit
}

func NewRateLimiter(limit int, window time.Duration, global bool) *RateLimiter {
	return &RateLimiter{
		limit:  limit,
		window: window,
		global: global,
		users:  make(map[int64]*RateLimit),
		rooms:  make(map[int64]map[int64]*RateLimit),
	}
}

// Get returns the state for the message's scope key, creating it on first
// use.
func (l *RateLimiter) Get(message *domain.Message) *RateLimit {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.global || message.IsPM() {
		limit, ok := l.users[message.Sender.ID]
		if !ok {
			limit = newRateLimit(l.limit, l.window)
			l.users[message.Sender.ID] = limit
		}
		return limit
	}

	room, ok := l.rooms[message.Room.ID]
	if !ok {
		room = make(map[int64]*RateLimit)
		l.rooms[message.Room.ID] = room
	}
	limit, ok := room[message.Sender.ID]
	if !ok {
		limit = newRateLimit(l.limit, l.window)
		room[message.Sender.ID] = limit
	}
	return limit
}
