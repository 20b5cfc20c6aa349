package models

import "time"

// User roles.
const (
	RoleCustomer        = "customer"
	RoleServiceProvider = "service_provider"
	RoleAdmin           = "admin"
)

// User represents a platform account. Providers and admins are users with the
// corresponding role; a service_provider user owns exactly one Provider profile.
type User struct {
	ID             string    `bson:"id" json:"id"`
	FirstName      string    `bson:"firstName" json:"firstName"`
	LastName       string    `bson:"lastName" json:"lastName"`
	Email          string    `bson:"email" json:"email"`
	PasswordHash   string    `bson:"passwordHash" json:"-"`
	Phone          string    `bson:"phone" json:"phone,omitempty"`
	Address        string    `bson:"address" json:"address,omitempty"`
	Role           string    `bson:"role" json:"role"`
	ProfileImage   string    `bson:"profileImage" json:"profileImage,omitempty"`
	IsActive       bool      `bson:"isActive" json:"isActive"`
	TokenHash      string    `bson:"tokenHash" json:"-"`
	ResetTokenHash string    `bson:"resetTokenHash,omitempty" json:"-"`
	ResetExpiresAt time.Time `bson:"resetExpiresAt,omitzero" json:"-"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt" json:"updatedAt"`
}

// UserPatch enumerates the patchable user fields. A nil field means "leave
// unchanged"; a pointer to the zero value clears the field where meaningful.
type UserPatch struct {
	FirstName    *string `json:"firstName,omitempty"`
	LastName     *string `json:"lastName,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Address      *string `json:"address,omitempty"`
	ProfileImage *string `json:"profileImage,omitempty"`
	IsActive     *bool   `json:"isActive,omitempty"`
}

// UserSummary is the public slice of a user embedded in view models.
type UserSummary struct {
	ID           string `bson:"id" json:"id"`
	FirstName    string `bson:"firstName" json:"firstName"`
	LastName     string `bson:"lastName" json:"lastName"`
	Email        string `bson:"email" json:"email,omitempty"`
	ProfileImage string `bson:"profileImage" json:"profileImage,omitempty"`
}

// Summary projects the public fields of a user.
func (u *User) Summary() *UserSummary {
	return &UserSummary{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		ProfileImage: u.ProfileImage,
	}
}
