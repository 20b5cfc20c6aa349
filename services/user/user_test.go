package user

import (
	"testing"

	providerRepo "fixly/database/repository/provider"
	userRepo "fixly/database/repository/user"
	"fixly/models"
	"fixly/utils/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	f := &fakeUserRepo{users: map[string]*models.User{}}
	for _, u := range users {
		cp := *u
		f.users[u.ID] = &cp
	}
	return f
}

func (f *fakeUserRepo) Create(u *models.User) error {
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(id string) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByIDs(ids []string) ([]models.User, error) { return nil, nil }

func (f *fakeUserRepo) GetByResetTokenHash(hash string) (*models.User, error) {
	for _, u := range f.users {
		if u.ResetTokenHash == hash && hash != "" {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) SearchIDsByNameOrEmail(query, role string) ([]string, error) {
	return nil, nil
}

func (f *fakeUserRepo) List(filter userRepo.ListFilter) ([]models.User, int64, error) {
	return nil, 0, nil
}

func (f *fakeUserRepo) CountActiveAdmins() (int64, error) {
	var n int64
	for _, u := range f.users {
		if u.Role == models.RoleAdmin && u.IsActive {
			n++
		}
	}
	return n, nil
}

func (f *fakeUserRepo) UpdateWithDocument(id string, updateDoc bson.M) error {
	u, ok := f.users[id]
	if !ok {
		return assert.AnError
	}
	if set, ok := updateDoc["$set"].(bson.M); ok {
		if v, ok := set["isActive"].(bool); ok {
			u.IsActive = v
		}
		if v, ok := set["tokenHash"].(string); ok {
			u.TokenHash = v
		}
		if v, ok := set["passwordHash"].(string); ok {
			u.PasswordHash = v
		}
	}
	return nil
}

func (f *fakeUserRepo) Delete(id string) error {
	if _, ok := f.users[id]; !ok {
		return assert.AnError
	}
	delete(f.users, id)
	return nil
}

type fakeProviderRepo struct {
	byUserID map[string]*models.Provider
}

func (f *fakeProviderRepo) Create(p *models.Provider) error { return nil }

func (f *fakeProviderRepo) GetByID(id string) (*models.Provider, error) { return nil, nil }

func (f *fakeProviderRepo) GetByUserID(userID string) (*models.Provider, error) {
	if p, ok := f.byUserID[userID]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeProviderRepo) GetByIDs(ids []string) ([]models.Provider, error) { return nil, nil }

func (f *fakeProviderRepo) Search(criteria providerRepo.SearchCriteria) ([]models.Provider, int64, error) {
	return nil, 0, nil
}

func (f *fakeProviderRepo) UpdateWithDocument(id string, updateDoc bson.M) error { return nil }

func newTestService(users []*models.User, providers map[string]*models.Provider) (*DefaultUserService, *fakeUserRepo) {
	if providers == nil {
		providers = map[string]*models.Provider{}
	}
	repo := newFakeUserRepo(users...)
	svc := &DefaultUserService{
		UserRepo:     repo,
		ProviderRepo: &fakeProviderRepo{byUserID: providers},
	}
	return svc, repo
}

func TestDeleteProviderOwnerDeactivates(t *testing.T) {
	owner := &models.User{ID: "u1", Role: models.RoleServiceProvider, IsActive: true}
	svc, repo := newTestService(
		[]*models.User{owner},
		map[string]*models.Provider{"u1": {ID: "p1", UserID: "u1"}},
	)

	err := svc.Delete(models.Actor{ID: "u1", Role: models.RoleServiceProvider}, "u1")
	require.NoError(t, err)

	stored, _ := repo.GetByID("u1")
	require.NotNil(t, stored, "provider owners must be kept for history")
	assert.False(t, stored.IsActive)
	assert.Empty(t, stored.TokenHash)
}

func TestDeletePlainCustomerRemovesRecord(t *testing.T) {
	customer := &models.User{ID: "u2", Role: models.RoleCustomer, IsActive: true}
	svc, repo := newTestService([]*models.User{customer}, nil)

	err := svc.Delete(models.Actor{ID: "u2", Role: models.RoleCustomer}, "u2")
	require.NoError(t, err)

	stored, _ := repo.GetByID("u2")
	assert.Nil(t, stored)
}

func TestDeleteLastActiveAdminConflicts(t *testing.T) {
	admin := &models.User{ID: "a1", Role: models.RoleAdmin, IsActive: true}
	svc, repo := newTestService([]*models.User{admin}, nil)

	err := svc.Delete(models.Actor{ID: "a1", Role: models.RoleAdmin}, "a1")
	assert.True(t, apperr.Is(err, apperr.Conflict))

	stored, _ := repo.GetByID("a1")
	assert.NotNil(t, stored)
}

func TestDeleteAdminWithAnotherAdminLeft(t *testing.T) {
	a1 := &models.User{ID: "a1", Role: models.RoleAdmin, IsActive: true}
	a2 := &models.User{ID: "a2", Role: models.RoleAdmin, IsActive: true}
	svc, repo := newTestService([]*models.User{a1, a2}, nil)

	err := svc.Delete(models.Actor{ID: "a1", Role: models.RoleAdmin}, "a1")
	require.NoError(t, err)
	stored, _ := repo.GetByID("a1")
	assert.Nil(t, stored)
}

func TestDeleteAuthorization(t *testing.T) {
	u := &models.User{ID: "u1", Role: models.RoleCustomer, IsActive: true}
	svc, _ := newTestService([]*models.User{u}, nil)

	err := svc.Delete(models.Actor{ID: "someone-else", Role: models.RoleCustomer}, "u1")
	assert.True(t, apperr.Is(err, apperr.Forbidden))

	err = svc.Delete(models.Actor{ID: "adm", Role: models.RoleAdmin}, "missing")
	assert.True(t, apperr.Is(err, apperr.NotFound))
}

func TestRegisterRoleRules(t *testing.T) {
	svc, _ := newTestService(nil, nil)

	_, err := svc.Register(RegisterRequest{
		FirstName: "Ada", LastName: "L", Email: "ada@example.com", Password: "secret123",
		Role: models.RoleAdmin,
	}, nil)
	assert.True(t, apperr.Is(err, apperr.Forbidden))

	_, err = svc.Register(RegisterRequest{
		FirstName: "Ada", LastName: "L", Email: "ada@example.com", Password: "secret123",
		Role: models.RoleServiceProvider,
	}, nil)
	assert.True(t, apperr.Is(err, apperr.Validation))

	created, err := svc.Register(RegisterRequest{
		FirstName: "Ada", LastName: "L", Email: "Ada@Example.com", Password: "secret123",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, created.Role)
	assert.Equal(t, "ada@example.com", created.Email)

	_, err = svc.Register(RegisterRequest{
		FirstName: "Ada", LastName: "L", Email: "ada@example.com", Password: "secret123",
	}, nil)
	assert.True(t, apperr.Is(err, apperr.Conflict))
}
