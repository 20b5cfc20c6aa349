package userRepo

import (
	"fixly/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ListFilter defines criteria for the admin user listing.
type ListFilter struct {
	Role      string // "" or "all" means any role
	Status    string // "active", "inactive", "" or "all"
	Search    string // case-insensitive substring over name/email
	SortField string // defaults to createdAt
	SortDesc  bool
	Page      int
	Limit     int
}

// UserRepository defines methods for user data access. Lookups return
// (nil, nil) when no document matches.
type UserRepository interface {
	// Create inserts a new user record.
	Create(user *models.User) error
	// GetByID retrieves a user by its unique ID.
	GetByID(id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address.
	GetByEmail(email string) (*models.User, error)
	// GetByIDs retrieves the users whose IDs appear in ids.
	GetByIDs(ids []string) ([]models.User, error)
	// GetByResetTokenHash retrieves a user by its pending password-reset token hash.
	GetByResetTokenHash(hash string) (*models.User, error)
	// SearchIDsByNameOrEmail returns IDs of users matching the query, limited to the given role.
	SearchIDsByNameOrEmail(query, role string) ([]string, error)
	// List retrieves users matching the filter with pagination, returning the total match count.
	List(filter ListFilter) ([]models.User, int64, error)
	// CountActiveAdmins counts users with the admin role that are still active.
	CountActiveAdmins() (int64, error)
	// UpdateWithDocument patches a user document with the specified update document.
	UpdateWithDocument(id string, updateDoc bson.M) error
	// Delete removes a user record by its ID.
	Delete(id string) error
}
