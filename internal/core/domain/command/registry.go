package command

import (
	"fmt"
	"strings"

	"cmdbot/internal/core/domain"

	"github.com/rs/zerolog/log"
)

// Factory builds a fresh command instance. The registry keeps factories
// around so commands can be reloaded by name.
type Factory func() *Command

// Registry indexes commands by name and alias. Registration happens at
// load time; dispatch-time access is read-only and takes no lock, so a
// reload racing an in-flight dispatch is an accepted risk.
type Registry struct {
	commands  map[string]*Command
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{
		commands:  make(map[string]*Command),
		factories: make(map[string]Factory),
	}
}

// Register adds a command under key. Registering an existing key without
// reload is a silent no-op. An alias shared with another registered command
// fails without mutating the registry, as does failed validation.
func (r *Registry) Register(cmd *Command, key string, reload bool) error {
	if _, ok := r.commands[key]; ok && !reload {
		log.Debug().Str("command", key).Msg("command already registered, skipping")
		return nil
	}

	for _, alias := range cmd.Aliases {
		for otherKey, other := range r.commands {
			if otherKey == key {
				continue
			}
			for _, existing := range other.Aliases {
				if strings.EqualFold(existing, alias) {
					return fmt.Errorf("command %s may not share alias %q with %s", cmd.Name, alias, other.Name)
				}
			}
		}
	}

	if err := cmd.Validate(); err != nil {
		return err
	}

	log.Info().Str("command", cmd.Name).Str("key", key).Msg("adding command to registry")
	r.commands[key] = cmd
	return nil
}

// RegisterFactory builds the command and registers it under its own name,
// keeping the factory for later reloads.
func (r *Registry) RegisterFactory(factory Factory) error {
	cmd := factory()
	if err := r.Register(cmd, cmd.Name, false); err != nil {
		return err
	}
	r.factories[cmd.Name] = factory
	return nil
}

// FindByNameOrAlias returns the first command whose name matches text
// case-insensitively or whose alias list contains it. Alias matching
// compares the typed token against the lowercased alias, mirroring the
// name/alias asymmetry callers depend on.
func (r *Registry) FindByNameOrAlias(text string) *Command {
	for _, cmd := range r.commands {
		if strings.EqualFold(cmd.Name, text) {
			return cmd
		}
		for _, alias := range cmd.Aliases {
			if strings.ToLower(alias) == text {
				return cmd
			}
		}
	}
	return nil
}

// FindByType returns all commands of the given category.
func (r *Registry) FindByType(category domain.Category) []*Command {
	var found []*Command
	for _, cmd := range r.commands {
		if cmd.Category == category {
			found = append(found, cmd)
		}
	}
	return found
}

// All returns every registered command.
func (r *Registry) All() []*Command {
	all := make([]*Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		all = append(all, cmd)
	}
	return all
}

func (r *Registry) Len() int {
	return len(r.commands)
}

// Reload swaps the registered command for name with a freshly built one,
// or rebuilds every command when passed "all".
func (r *Registry) Reload(name string) error {
	if name == "" {
		return fmt.Errorf("a command name must be provided, or pass 'all' to reload all commands")
	}

	if name == "all" {
		for key, factory := range r.factories {
			if err := r.Register(factory(), key, true); err != nil {
				return err
			}
		}
		return nil
	}

	factory, ok := r.factories[name]
	if !ok {
		return fmt.Errorf("no factory registered for command %s: %w", name, domain.ErrCommandNotFound)
	}
	return r.Register(factory(), name, true)
}
