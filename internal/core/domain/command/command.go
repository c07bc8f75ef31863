package command

import (
	"context"
	"fmt"
	"time"

	"cmdbot/internal/core/domain"
)

// Handler is the command body, invoked with the message and the argument
// list after all gates and middleware have run.
type Handler func(ctx context.Context, message *domain.Message, args []any) error

// Throttle is a per-command rate limit: at most Calls invocations per
// rolling Window, keyed by room and user.
type Throttle struct {
	Calls  int
	Window time.Duration
}

// SubHelp describes a sub command for the help listing.
type SubHelp struct {
	Name        string
	Description string
	Usage       string
}

// Command is a plain descriptor: a command author fills in the fields and
// registers the result. Zero-value optionals get defaults on Validate.
type Command struct {
	Name             string
	Description      string
	Usage            string
	Category         domain.Category
	Aliases          []string
	PermissionLevels []domain.Permission
	OwnerOnly        bool
	PMOnly           bool
	IgnoreCooldown   bool
	ArgSeparator     string
	RateLimit        *Throttle
	Middleware       []Middleware
	SubHelp          []SubHelp
	Handler          Handler

	limiter *RateLimiter
}

// Validate checks the required fields and applies defaults. The registry
// calls this on registration; errors name the offending command.
func (c *Command) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("command must have a name")
	}
	if c.Description == "" {
		return fmt.Errorf("a description is required for command %s", c.Name)
	}
	if !c.Category.Valid() {
		return fmt.Errorf("command %s must have a valid category", c.Name)
	}
	if c.Usage == "" {
		return fmt.Errorf("command %s must have a usage", c.Name)
	}
	if c.Handler == nil {
		return fmt.Errorf("command %s must have a handler", c.Name)
	}

	if c.Aliases == nil {
		c.Aliases = []string{}
	}
	if len(c.PermissionLevels) == 0 {
		c.PermissionLevels = []domain.Permission{domain.PermissionUser}
	}
	if c.ArgSeparator == "" {
		c.ArgSeparator = ","
	}
	if c.RateLimit != nil && c.limiter == nil {
		c.limiter = NewRateLimiter(c.RateLimit.Calls, c.RateLimit.Window, false)
	}

	return nil
}

// Use appends a middleware step to the command and returns the command, so
// steps can be chained onto a descriptor literal.
func (c *Command) Use(mw Middleware) *Command {
	c.Middleware = append(c.Middleware, mw)
	return c
}

// Limiter returns the per-command rate limiter, or nil if the command has
// no rate limit configured.
func (c *Command) Limiter() *RateLimiter {
	return c.limiter
}
