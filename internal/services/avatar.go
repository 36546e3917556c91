package services

import (
	"strings"

	"technest_backend/internal/models"
)

// Avatar background colors by role (hex, no '#').
const (
	individualAvatarBG = "0d6efd"
	companyAvatarBG    = "0D8ABC"
)

// AvatarURL resolves the display avatar: an uploaded picture is passed
// through as-is, everything else falls back to a generated initials avatar.
func AvatarURL(picPath, displayName string, role models.Role) string {
	if strings.HasPrefix(picPath, "http://") || strings.HasPrefix(picPath, "https://") {
		return picPath
	}

	bg := individualAvatarBG
	if role == models.RoleCompany {
		bg = companyAvatarBG
	}

	name := strings.ReplaceAll(strings.TrimSpace(displayName), " ", "+")
	if name == "" {
		name = "Member"
	}

	return "https://ui-avatars.com/api/?name=" + name + "&background=" + bg + "&color=fff"
}
