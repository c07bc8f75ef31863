package command

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"cmdbot/internal/core/domain"
	"cmdbot/internal/core/port"

	"github.com/rs/zerolog/log"
)

// Middleware transforms or validates the message and argument list before
// the handler runs. Returning an error aborts the whole chain and the
// handler is never invoked; on success the returned pair feeds the next
// step.
type Middleware func(ctx context.Context, message *domain.Message, args []any) (*domain.Message, []any, error)

type ArgType string

const (
	ArgUser   ArgType = "User"
	ArgRoom   ArgType = "Room"
	ArgString ArgType = "String"
	ArgNumber ArgType = "Number"
	ArgAny    ArgType = "Any"
)

// Arg declares the expected shape of one positional argument. OneOf, when
// set, restricts the value to an enumerated set instead of a type.
type Arg struct {
	Name  string
	Type  ArgType
	OneOf []string
}

// ValidationError is raised by Expect when an argument does not match its
// declaration.
type ValidationError struct {
	Arg  string
	Want string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("expected type '%s' for argument: %s", e.Want, e.Arg)
}

// Resolve maps positional raw string arguments to domain values. Lookups
// that miss leave a nil user, an untouched room token or a NaN number; they
// never abort the chain, downstream code handles the miss.
func Resolve(users port.UserAPI, rooms port.RoomLister, spec ...Arg) Middleware {
	return func(ctx context.Context, message *domain.Message, args []any) (*domain.Message, []any, error) {
		for i, arg := range spec {
			if i >= len(args) {
				break
			}

			switch arg.Type {
			case ArgAny:
			case ArgUser:
				args[i] = resolveUser(ctx, users, message.Room.ID, args[i])
			case ArgRoom:
				args[i] = resolveRoom(ctx, rooms, args[i])
			case ArgString:
				args[i] = fmt.Sprint(args[i])
			case ArgNumber:
				number, err := strconv.ParseFloat(fmt.Sprint(args[i]), 64)
				if err != nil {
					number = math.NaN()
				}
				args[i] = number
			}
		}
		return message, args, nil
	}
}

func resolveUser(ctx context.Context, users port.UserAPI, roomID int64, arg any) any {
	query := fmt.Sprint(arg)
	if query == "" || users == nil {
		return (*domain.User)(nil)
	}

	user, err := users.GetUser(ctx, roomID, query)
	if err != nil {
		log.Debug().Err(err).Str("query", query).Msg("user lookup failed")
		return (*domain.User)(nil)
	}
	return user
}

func resolveRoom(ctx context.Context, rooms port.RoomLister, arg any) any {
	if rooms == nil {
		return arg
	}
	title := strings.ToLower(fmt.Sprint(arg))
	for _, room := range rooms.JoinedRooms(ctx) {
		if strings.ToLower(room.Title) == title {
			r := room
			return &r
		}
	}
	return arg
}

// Expect validates positional arguments against their declarations without
// transforming them. Any mismatch aborts the chain with a ValidationError
// naming the argument.
func Expect(spec ...Arg) Middleware {
	return func(ctx context.Context, message *domain.Message, args []any) (*domain.Message, []any, error) {
		for i, arg := range spec {
			if arg.Type == ArgAny && len(arg.OneOf) == 0 {
				continue
			}
			if i >= len(args) {
				return nil, nil, &ValidationError{Arg: arg.Name, Want: wantName(arg)}
			}

			if len(arg.OneOf) > 0 {
				if !containsFold(arg.OneOf, fmt.Sprint(args[i])) {
					return nil, nil, &ValidationError{Arg: arg.Name, Want: wantName(arg)}
				}
				continue
			}

			switch arg.Type {
			case ArgUser:
				user, ok := args[i].(*domain.User)
				if !ok || user == nil {
					return nil, nil, &ValidationError{Arg: arg.Name, Want: string(ArgUser)}
				}
			case ArgRoom:
				room, ok := args[i].(*domain.Room)
				if !ok || room == nil {
					return nil, nil, &ValidationError{Arg: arg.Name, Want: string(ArgRoom)}
				}
			case ArgString:
				if _, ok := args[i].(string); !ok {
					return nil, nil, &ValidationError{Arg: arg.Name, Want: string(ArgString)}
				}
			case ArgNumber:
				number, ok := args[i].(float64)
				if !ok || math.IsNaN(number) {
					return nil, nil, &ValidationError{Arg: arg.Name, Want: string(ArgNumber)}
				}
			}
		}
		return message, args, nil
	}
}

func wantName(arg Arg) string {
	if len(arg.OneOf) > 0 {
		return strings.Join(arg.OneOf, ", ")
	}
	return string(arg.Type)
}

func containsFold(set []string, value string) bool {
	for _, item := range set {
		if strings.EqualFold(item, value) {
			return true
		}
	}
	return false
}
