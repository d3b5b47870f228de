package workspaces

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const rolePrefix = "workspace:"

type Workspace struct {
	ID        int       `json:"id"`
	CustomID  string    `json:"customId"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Image     *string   `json:"image,omitempty"`
	Role      string    `json:"role"` // e.g. "workspace:admin"
	RoleID    int       `json:"roleId"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
}

// RoleName turns "workspace:admin" into "Admin".
func (w Workspace) RoleName() string {
	role := strings.TrimPrefix(w.Role, rolePrefix)
	if role == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(role)
	return string(unicode.ToUpper(r)) + role[size:]
}
