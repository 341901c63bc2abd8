package user

import (
	"context"
	"testing"

	"roomstay-backend/internal/domain"
	"roomstay-backend/internal/pkg/constants"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupUsers(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}))
	return &Service{DB: db}, db
}

func TestCreateUser_DefaultsToTenant(t *testing.T) {
	svc, _ := setupUsers(t)
	u, err := svc.CreateUser(context.Background(), CreateUserInput{
		Fullname: "Juan Dela Cruz",
		Email:    "Juan@Example.com",
		Password: "Pass1!word",
	})
	require.NoError(t, err)
	assert.Equal(t, constants.Tenant, u.Role)
	assert.Equal(t, "juan@example.com", u.Email)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("Pass1!word")))
}

func TestCreateUser_OwnerRoleAllowed(t *testing.T) {
	svc, _ := setupUsers(t)
	u, err := svc.CreateUser(context.Background(), CreateUserInput{
		Fullname: "Ana Reyes",
		Email:    "ana@example.com",
		Password: "Pass1!word",
		Role:     constants.Owner,
	})
	require.NoError(t, err)
	assert.Equal(t, constants.Owner, u.Role)
}

// Registration never mints admins.
func TestCreateUser_AdminRoleRejected(t *testing.T) {
	svc, _ := setupUsers(t)
	_, err := svc.CreateUser(context.Background(), CreateUserInput{
		Fullname: "Sneaky",
		Email:    "sneaky@example.com",
		Password: "Pass1!word",
		Role:     constants.Admin,
	})
	require.Error(t, err)
	assert.Equal(t, "Invalid role", err.Error())
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	svc, _ := setupUsers(t)
	ctx := context.Background()
	in := CreateUserInput{Fullname: "First", Email: "dup@example.com", Password: "Pass1!word"}
	_, err := svc.CreateUser(ctx, in)
	require.NoError(t, err)

	in.Fullname = "Second"
	_, err = svc.CreateUser(ctx, in)
	require.Error(t, err)
	assert.Equal(t, "Email already registered", err.Error())
}

func TestCreateUser_Validation(t *testing.T) {
	svc, _ := setupUsers(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, CreateUserInput{Fullname: "  ", Email: "a@b.com", Password: "Pass1!word"})
	require.Error(t, err)
	_, err = svc.CreateUser(ctx, CreateUserInput{Fullname: "Valid Name", Email: "not-an-email", Password: "Pass1!word"})
	require.Error(t, err)
	_, err = svc.CreateUser(ctx, CreateUserInput{Fullname: "Valid Name", Email: "a@b.com", Password: "short"})
	require.Error(t, err)
	_, err = svc.CreateUser(ctx, CreateUserInput{Fullname: "Valid Name", Email: "a@b.com", Password: "Pass1!word", Role: "landlord"})
	require.Error(t, err)
}
