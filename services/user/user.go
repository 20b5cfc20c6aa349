package user

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	userRepo "fixly/database/repository/user"
	"fixly/models"
	"fixly/services/storage"
	"fixly/utils"
	"fixly/utils/apperr"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const resetTokenTTL = time.Hour

func (s *DefaultUserService) Register(req RegisterRequest, actor *models.Actor) (*models.User, error) {
	role := req.Role
	if role == "" {
		role = models.RoleCustomer
	}
	switch role {
	case models.RoleCustomer:
	case models.RoleAdmin:
		if actor == nil || !actor.IsAdmin() {
			return nil, apperr.New(apperr.Forbidden, "only admins can create admin accounts")
		}
	case models.RoleServiceProvider:
		return nil, apperr.New(apperr.Validation, "use the provider registration flow for provider accounts")
	default:
		return nil, apperr.Newf(apperr.Validation, "unknown role %q", role)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	existing, err := s.UserRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.New(apperr.Conflict, "an account with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to hash password", err)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.NewString(),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        email,
		PasswordHash: string(hash),
		Phone:        req.Phone,
		Address:      req.Address,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *DefaultUserService) Authenticate(email, password string) (*AuthResult, error) {
	user, err := s.UserRepo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.New(apperr.Forbidden, "invalid email or password")
	}
	if !user.IsActive {
		return nil, apperr.New(apperr.Forbidden, "this account has been deactivated")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.New(apperr.Forbidden, "invalid email or password")
	}

	token, err := utils.GenerateToken(user.ID, user.Role, utils.AuthTokenTTL)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to issue token", err)
	}
	tokenHash := utils.HashToken(token)

	update := bson.M{"$set": bson.M{"tokenHash": tokenHash, "updatedAt": time.Now().UTC()}}
	if err := s.UserRepo.UpdateWithDocument(user.ID, update); err != nil {
		return nil, err
	}
	user.TokenHash = tokenHash
	cacheTokenHash(user.ID, tokenHash)

	return &AuthResult{User: user, Token: token}, nil
}

func (s *DefaultUserService) Logout(actor models.Actor) error {
	update := bson.M{"$set": bson.M{"tokenHash": "", "updatedAt": time.Now().UTC()}}
	if err := s.UserRepo.UpdateWithDocument(actor.ID, update); err != nil {
		return err
	}
	dropCachedTokenHash(actor.ID)
	return nil
}

func (s *DefaultUserService) GetByID(actor models.Actor, id string) (*models.User, error) {
	if !actor.IsAdmin() && actor.ID != id {
		return nil, apperr.New(apperr.Forbidden, "you do not have access to this account")
	}
	user, err := s.UserRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.Newf(apperr.NotFound, "user %s not found", id)
	}
	return user, nil
}

func (s *DefaultUserService) Update(actor models.Actor, id string, patch models.UserPatch) (*models.User, error) {
	if !actor.IsAdmin() && actor.ID != id {
		return nil, apperr.New(apperr.Forbidden, "you do not have access to this account")
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.FirstName != nil {
		set["firstName"] = strings.TrimSpace(*patch.FirstName)
	}
	if patch.LastName != nil {
		set["lastName"] = strings.TrimSpace(*patch.LastName)
	}
	if patch.Phone != nil {
		set["phone"] = *patch.Phone
	}
	if patch.Address != nil {
		set["address"] = *patch.Address
	}
	if patch.ProfileImage != nil {
		set["profileImage"] = *patch.ProfileImage
	}
	if patch.IsActive != nil {
		if !actor.IsAdmin() {
			return nil, apperr.New(apperr.Forbidden, "only admins can change account status")
		}
		set["isActive"] = *patch.IsActive
	}

	if err := s.UserRepo.UpdateWithDocument(id, bson.M{"$set": set}); err != nil {
		return nil, err
	}
	return s.UserRepo.GetByID(id)
}

func (s *DefaultUserService) UploadProfileImage(actor models.Actor, file io.Reader) (*models.User, error) {
	user, err := s.UserRepo.GetByID(actor.ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.Newf(apperr.NotFound, "user %s not found", actor.ID)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	url, err := s.Storage.Upload(ctx, file, storage.FolderProfiles)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to upload profile image", err)
	}
	if user.ProfileImage != "" {
		if err := s.Storage.Delete(ctx, user.ProfileImage, storage.FolderProfiles); err != nil {
			utils.GetLogger().Warn("Failed to delete previous profile image",
				zap.String("userId", user.ID), zap.Error(err))
		}
	}

	update := bson.M{"$set": bson.M{"profileImage": url, "updatedAt": time.Now().UTC()}}
	if err := s.UserRepo.UpdateWithDocument(user.ID, update); err != nil {
		return nil, err
	}
	return s.UserRepo.GetByID(user.ID)
}

func (s *DefaultUserService) Delete(actor models.Actor, id string) error {
	if !actor.IsAdmin() && actor.ID != id {
		return apperr.New(apperr.Forbidden, "you do not have access to this account")
	}
	user, err := s.UserRepo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return apperr.Newf(apperr.NotFound, "user %s not found", id)
	}

	if user.Role == models.RoleAdmin && user.IsActive {
		admins, err := s.UserRepo.CountActiveAdmins()
		if err != nil {
			return err
		}
		if admins <= 1 {
			return apperr.New(apperr.Conflict, "cannot remove the last active admin")
		}
	}

	profile, err := s.ProviderRepo.GetByUserID(id)
	if err != nil {
		return err
	}
	if profile != nil {
		// Provider accounts keep their booking and earnings history.
		update := bson.M{"$set": bson.M{
			"isActive":  false,
			"tokenHash": "",
			"updatedAt": time.Now().UTC(),
		}}
		if err := s.UserRepo.UpdateWithDocument(id, update); err != nil {
			return err
		}
		dropCachedTokenHash(id)
		return nil
	}

	if err := s.UserRepo.Delete(id); err != nil {
		return err
	}
	dropCachedTokenHash(id)
	return nil
}

func (s *DefaultUserService) List(req ListRequest) (*ListResult, error) {
	page, limit := req.Page, req.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = utils.DefaultPageSize
	}

	users, total, err := s.UserRepo.List(userListFilter(req, page, limit))
	if err != nil {
		return nil, err
	}
	return &ListResult{
		Users:      users,
		Pagination: models.NewPagination(total, page, limit),
	}, nil
}

func (s *DefaultUserService) ForgotPassword(email string) error {
	user, err := s.UserRepo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return err
	}
	if user == nil {
		// Do not reveal whether the address is registered.
		utils.GetLogger().Info("Password reset requested for unknown email")
		return nil
	}

	token := uuid.NewString()
	update := bson.M{"$set": bson.M{
		"resetTokenHash": utils.HashToken(token),
		"resetExpiresAt": time.Now().UTC().Add(resetTokenTTL),
		"updatedAt":      time.Now().UTC(),
	}}
	if err := s.UserRepo.UpdateWithDocument(user.ID, update); err != nil {
		return err
	}

	body := fmt.Sprintf("Hello %s,\n\nUse this code to reset your password: %s\nIt expires in one hour.\n", user.FirstName, token)
	if err := utils.SendMail(user.Email, "Password reset", body); err != nil {
		return apperr.Wrap(apperr.Unavailable, "failed to send reset email", err)
	}
	return nil
}

func (s *DefaultUserService) ResetPassword(token, newPassword string) error {
	if len(newPassword) < 8 {
		return apperr.New(apperr.Validation, "password must be at least 8 characters")
	}
	user, err := s.UserRepo.GetByResetTokenHash(utils.HashToken(token))
	if err != nil {
		return err
	}
	if user == nil || user.ResetExpiresAt.Before(time.Now().UTC()) {
		return apperr.New(apperr.Validation, "reset token is invalid or expired")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to hash password", err)
	}
	update := bson.M{
		"$set": bson.M{
			"passwordHash": string(hash),
			"tokenHash":    "",
			"updatedAt":    time.Now().UTC(),
		},
		"$unset": bson.M{"resetTokenHash": "", "resetExpiresAt": ""},
	}
	if err := s.UserRepo.UpdateWithDocument(user.ID, update); err != nil {
		return err
	}
	dropCachedTokenHash(user.ID)
	return nil
}

func userListFilter(req ListRequest, page, limit int) userRepo.ListFilter {
	return userRepo.ListFilter{
		Role:     req.Role,
		Status:   req.Status,
		Search:   req.Search,
		SortDesc: true,
		Page:     page,
		Limit:    limit,
	}
}

// cacheTokenHash mirrors the session token hash into Redis. The cache is
// best-effort; the middleware falls back to the user record.
func cacheTokenHash(userID, tokenHash string) {
	if utils.AuthCacheClient == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	key := utils.AuthCachePrefix + userID
	if err := utils.AuthCacheClient.Set(ctx, key, tokenHash, utils.AuthCacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("Failed to cache session token", zap.String("userId", userID), zap.Error(err))
	}
}

func dropCachedTokenHash(userID string) {
	if utils.AuthCacheClient == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	key := utils.AuthCachePrefix + userID
	if err := utils.AuthCacheClient.Del(ctx, key).Err(); err != nil {
		utils.GetLogger().Warn("Failed to drop cached session token", zap.String("userId", userID), zap.Error(err))
	}
}
