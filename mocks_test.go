package identity_test

import (
	"context"
	"database/sql"

	"github.com/goliatone/go-identity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/uptrace/bun"
)

// MockRepositoryManager implements identity.RepositoryManager
type MockRepositoryManager struct {
	mock.Mock
}

func (m *MockRepositoryManager) Validate() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockRepositoryManager) MustValidate() {
	m.Called()
}

func (m *MockRepositoryManager) RunInTx(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context, tx bun.Tx) error) error {
	args := m.Called(ctx, opts, fn)
	return args.Error(0)
}

func (m *MockRepositoryManager) Users() identity.Users {
	args := m.Called()
	return args.Get(0).(identity.Users)
}

func (m *MockRepositoryManager) Permissions() identity.Permissions {
	args := m.Called()
	return args.Get(0).(identity.Permissions)
}

func (m *MockRepositoryManager) UserPermissions() identity.UserPermissions {
	args := m.Called()
	return args.Get(0).(identity.UserPermissions)
}

func (m *MockRepositoryManager) VerificationCodes() identity.VerificationCodes {
	args := m.Called()
	return args.Get(0).(identity.VerificationCodes)
}

// MockUsers implements identity.Users
type MockUsers struct {
	mock.Mock
}

func (m *MockUsers) GetByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUsers) GetByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUsers) Register(ctx context.Context, user *identity.User) (*identity.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUsers) RegisterTx(ctx context.Context, tx bun.IDB, user *identity.User) (*identity.User, error) {
	args := m.Called(ctx, tx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUsers) UpdateUsername(ctx context.Context, id uuid.UUID, username string) error {
	args := m.Called(ctx, id, username)
	return args.Error(0)
}

func (m *MockUsers) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockUsers) MarkVerified(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUsers) MarkVerifiedTx(ctx context.Context, tx bun.IDB, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUsers) DeleteByUsername(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}

// MockPermissions implements identity.Permissions
type MockPermissions struct {
	mock.Mock
}

func (m *MockPermissions) Create(ctx context.Context, name string) (*identity.Permission, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Permission), args.Error(1)
}

func (m *MockPermissions) GetByName(ctx context.Context, name string) (*identity.Permission, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Permission), args.Error(1)
}

func (m *MockPermissions) DeleteByName(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

// MockUserPermissions implements identity.UserPermissions
type MockUserPermissions struct {
	mock.Mock
}

func (m *MockUserPermissions) Grant(ctx context.Context, userID, permissionID uuid.UUID) (*identity.UserPermission, error) {
	args := m.Called(ctx, userID, permissionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.UserPermission), args.Error(1)
}

func (m *MockUserPermissions) Revoke(ctx context.Context, userID, permissionID uuid.UUID) error {
	args := m.Called(ctx, userID, permissionID)
	return args.Error(0)
}

func (m *MockUserPermissions) Exists(ctx context.Context, userID, permissionID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, permissionID)
	return args.Bool(0), args.Error(1)
}

// MockVerificationCodes implements identity.VerificationCodes
type MockVerificationCodes struct {
	mock.Mock
}

func (m *MockVerificationCodes) CreateTx(ctx context.Context, tx bun.IDB, code *identity.VerificationCode) (*identity.VerificationCode, error) {
	args := m.Called(ctx, tx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.VerificationCode), args.Error(1)
}

func (m *MockVerificationCodes) GetByCode(ctx context.Context, code string) (*identity.VerificationCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.VerificationCode), args.Error(1)
}

func (m *MockVerificationCodes) GetByUserID(ctx context.Context, userID uuid.UUID) (*identity.VerificationCode, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.VerificationCode), args.Error(1)
}

func (m *MockVerificationCodes) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockVerificationCodes) DeleteByUserIDTx(ctx context.Context, tx bun.IDB, userID uuid.UUID) error {
	args := m.Called(ctx, tx, userID)
	return args.Error(0)
}

// MockDispatcher implements identity.Dispatcher
type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(ctx context.Context, msg identity.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// MockPasswordAuthenticator implements identity.PasswordAuthenticator
type MockPasswordAuthenticator struct {
	mock.Mock
}

func (m *MockPasswordAuthenticator) HashPassword(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordAuthenticator) ComparePasswordAndHash(password, hash string) error {
	args := m.Called(password, hash)
	return args.Error(0)
}
