package user

import (
	"io"

	providerRepo "fixly/database/repository/provider"
	userRepo "fixly/database/repository/user"
	"fixly/models"
	"fixly/services/storage"
)

// RegisterRequest carries the fields of a new customer or admin account.
type RegisterRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Role      string `json:"role"`
}

// AuthResult is a successful authentication: the account plus a fresh token.
type AuthResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// ListRequest is the admin account listing query.
type ListRequest struct {
	Role   string
	Status string
	Search string
	Page   int
	Limit  int
}

// ListResult is one page of accounts.
type ListResult struct {
	Users      []models.User     `json:"users"`
	Pagination models.Pagination `json:"pagination"`
}

// UserService manages accounts, sessions and the admin account listing.
type UserService interface {
	// Register creates a customer account. Admin accounts can only be minted
	// by an existing admin.
	Register(req RegisterRequest, actor *models.Actor) (*models.User, error)
	// Authenticate verifies credentials and issues a session token.
	Authenticate(email, password string) (*AuthResult, error)
	// Logout revokes the account's current session token.
	Logout(actor models.Actor) error
	// GetByID returns an account visible to the actor.
	GetByID(actor models.Actor, id string) (*models.User, error)
	// Update patches an account owned by the actor.
	Update(actor models.Actor, id string, patch models.UserPatch) (*models.User, error)
	// UploadProfileImage stores a profile image and records its URL.
	UploadProfileImage(actor models.Actor, file io.Reader) (*models.User, error)
	// Delete removes an account, deactivating instead when it owns a
	// provider profile. The last active admin cannot be removed.
	Delete(actor models.Actor, id string) error
	// List runs the admin account listing.
	List(req ListRequest) (*ListResult, error)
	// ForgotPassword issues a reset token and emails it to the account.
	ForgotPassword(email string) error
	// ResetPassword exchanges a valid reset token for a new password.
	ResetPassword(token, newPassword string) error
}

// DefaultUserService is the production implementation of UserService.
type DefaultUserService struct {
	UserRepo     userRepo.UserRepository
	ProviderRepo providerRepo.ProviderRepository
	Storage      storage.StorageService
}
