package domain

import (
	"slices"
	"time"
)

// Role represents a user's role in the storefront.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Permission names granted to users.
const (
	PermViewPosts         = "view_posts"
	PermCreatePost        = "create_post"
	PermEditOwnPosts      = "edit_own_posts"
	PermUserManagement    = "user_management"
	PermPostManagement    = "post_management"
	PermPaymentManagement = "payment_management"
	PermSystemSettings    = "system_settings"
)

// DefaultUserPermissions are granted on signup.
func DefaultUserPermissions() []string {
	return []string{PermViewPosts, PermCreatePost, PermEditOwnPosts}
}

// AdminPermissions are carried by the administrator account.
func AdminPermissions() []string {
	return []string{PermUserManagement, PermPostManagement, PermPaymentManagement, PermSystemSettings}
}

// AdminUserID is the fixed identifier of the configured administrator.
const AdminUserID = "admin-001"

// User is a registered storefront account.
type User struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone,omitempty"`
	PasswordHash string   `json:"-"`
	Role         Role     `json:"role"`
	AdminID      string   `json:"admin_id,omitempty"`
	Permissions  []string `json:"permissions"`
	CanPostAd    bool     `json:"can_post_ad"` // granted by an admin
	IsVerified   bool     `json:"is_verified"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsAdmin returns true for administrator accounts.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// CanSubmitListing reports whether the user may post a listing.
func (u *User) CanSubmitListing() bool {
	return u != nil && (u.CanPostAd || u.IsAdmin())
}

// HasPermission checks a named permission.
func (u *User) HasPermission(perm string) bool {
	return u != nil && slices.Contains(u.Permissions, perm)
}

// Clone returns a deep copy of the user.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.Permissions = slices.Clone(u.Permissions)
	return &c
}
