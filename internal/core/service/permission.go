package service

import (
	"cmdbot/internal/core/domain"
	"cmdbot/internal/core/domain/command"
)

// Permissions derives the capability set of a caller and checks it against
// a command's requirements.
type Permissions struct{}

func NewPermissions() *Permissions {
	return &Permissions{}
}

// CallerLevels returns every permission level the sender holds in the
// message's room. Base-rank users hold USER, a platform rank above the
// moderator threshold grants SITE_MODERATOR, and presence in the room
// staff listing grants ROOM_MODERATOR.
func (p *Permissions) CallerLevels(message *domain.Message) []domain.Permission {
	var levels []domain.Permission

	if message.Sender.Rank == 0 {
		levels = append(levels, domain.PermissionUser)
	}
	if message.Sender.Rank > 1 {
		levels = append(levels, domain.PermissionSiteModerator)
	}
	if message.IsStaff() {
		levels = append(levels, domain.PermissionRoomModerator)
	}

	return levels
}

// Check reports whether any held level satisfies any required level. A
// higher level satisfies a lower requirement.
func (p *Permissions) Check(cmd *command.Command, levels []domain.Permission) bool {
	for _, held := range levels {
		for _, required := range cmd.PermissionLevels {
			if held >= required {
				return true
			}
		}
	}
	return false
}
