package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"wastehub/internal/admin/application/ports/in"
	"wastehub/internal/admin/application/ports/out"
	"wastehub/internal/admin/domain"
	"wastehub/internal/model"
	"wastehub/internal/shared/logger"
	"wastehub/internal/shared/user"
)

func testLogger() *logger.Logger {
	return logger.NewLogger("admin-test")
}

// mockAdminRepo — ручной мок AdminRepository
type mockAdminRepo struct {
	createUserFn     func(ctx context.Context, u *user.User, districtID int64) error
	findUserFn       func(ctx context.Context, userID string) (*domain.UserSummary, error)
	updateStatusFn   func(ctx context.Context, userID, status string) (int64, error)
	districtExists   bool
	districtExistsFn func(ctx context.Context, districtID int64) (bool, error)
}

func (m *mockAdminRepo) CreateUser(ctx context.Context, u *user.User, districtID int64) error {
	return m.createUserFn(ctx, u, districtID)
}

func (m *mockAdminRepo) FindUserByID(ctx context.Context, userID string) (*domain.UserSummary, error) {
	return m.findUserFn(ctx, userID)
}

func (m *mockAdminRepo) ListUsers(context.Context, out.ListUsersFilters) ([]domain.UserSummary, int, error) {
	return nil, 0, nil
}

func (m *mockAdminRepo) UpdateUserStatus(ctx context.Context, userID, status string) (int64, error) {
	return m.updateStatusFn(ctx, userID, status)
}

func (m *mockAdminRepo) Overview(context.Context) (*domain.Overview, error) {
	return nil, nil
}

func (m *mockAdminRepo) DistrictExists(ctx context.Context, districtID int64) (bool, error) {
	if m.districtExistsFn != nil {
		return m.districtExistsFn(ctx, districtID)
	}
	return m.districtExists, nil
}

func validInput() in.CreateUserInput {
	return in.CreateUserInput{
		Email:      "Ivan.Petrov@example.com",
		Password:   "secret-password",
		FirstName:  "Иван",
		LastName:   "Петров",
		Phone:      "+79990001122",
		Role:       model.RoleClient,
		DistrictID: 7,
	}
}

func TestCreateUser_Client(t *testing.T) {
	var saved *user.User
	var savedDistrict int64

	repo := &mockAdminRepo{
		districtExists: true,
		createUserFn: func(_ context.Context, u *user.User, districtID int64) error {
			saved = u
			savedDistrict = districtID
			return nil
		},
	}

	svc := NewCreateUserService(repo, testLogger())

	output, err := svc.Execute(context.Background(), validInput())

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "ivan.petrov@example.com", saved.Email)
	assert.Equal(t, model.RoleClient, saved.Role)
	assert.Equal(t, model.UserStatusActive, saved.Status)
	assert.Equal(t, int64(7), savedDistrict)
	assert.NotEmpty(t, output.UserID)

	// хэш должен соответствовать исходному паролю
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.PasswordHash), []byte("secret-password")))
}

func TestCreateUser_AdminWithoutDistrict(t *testing.T) {
	repo := &mockAdminRepo{
		createUserFn: func(context.Context, *user.User, int64) error { return nil },
	}

	svc := NewCreateUserService(repo, testLogger())

	input := validInput()
	input.Role = model.RoleAdmin
	input.DistrictID = 0

	output, err := svc.Execute(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, output.Role)
}

func TestCreateUser_Validation(t *testing.T) {
	svc := NewCreateUserService(&mockAdminRepo{districtExists: true}, testLogger())

	tests := []struct {
		name    string
		mutate  func(*in.CreateUserInput)
		wantErr error
	}{
		{
			name:    "bad email",
			mutate:  func(i *in.CreateUserInput) { i.Email = "not-an-email" },
			wantErr: domain.ErrInvalidEmail,
		},
		{
			name:    "short password",
			mutate:  func(i *in.CreateUserInput) { i.Password = "short" },
			wantErr: domain.ErrPasswordTooShort,
		},
		{
			name:    "unknown role",
			mutate:  func(i *in.CreateUserInput) { i.Role = "MANAGER" },
			wantErr: domain.ErrInvalidRole,
		},
		{
			name:    "client without district",
			mutate:  func(i *in.CreateUserInput) { i.DistrictID = 0 },
			wantErr: domain.ErrDistrictRequired,
		},
		{
			name:    "unknown status",
			mutate:  func(i *in.CreateUserInput) { i.Status = "FROZEN" },
			wantErr: domain.ErrInvalidStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(&input)

			_, err := svc.Execute(context.Background(), input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateUser_UnknownDistrict(t *testing.T) {
	svc := NewCreateUserService(&mockAdminRepo{districtExists: false}, testLogger())

	_, err := svc.Execute(context.Background(), validInput())
	assert.ErrorIs(t, err, domain.ErrDistrictRequired)
}

func TestUpdateUserStatus_NotFound(t *testing.T) {
	repo := &mockAdminRepo{
		updateStatusFn: func(context.Context, string, string) (int64, error) {
			return 0, nil
		},
	}

	svc := NewUpdateUserStatusService(repo, testLogger())

	_, err := svc.Execute(context.Background(), in.UpdateUserStatusInput{
		UserID: "missing",
		Status: model.UserStatusBanned,
	})

	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
