package services

import (
	"testing"

	"utilibill-backend/internal/models"
	"utilibill-backend/internal/utils"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuthTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	db.Migrator().DropTable(&models.User{})
	db.AutoMigrate(&models.User{})
	return db
}

func TestRegisterFirstUserBecomesAdmin(t *testing.T) {
	db := setupAuthTestDB()
	svc := NewAuthService(db, "test-secret")

	first, err := svc.RegisterUser("alice", "password123")
	assert.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, first.Role)

	second, err := svc.RegisterUser("bob", "password123")
	assert.NoError(t, err)
	assert.Equal(t, models.RoleUser, second.Role)

	// Passwords are stored hashed.
	assert.NotEqual(t, "password123", first.Password)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	db := setupAuthTestDB()
	svc := NewAuthService(db, "test-secret")

	_, err := svc.RegisterUser("alice", "password123")
	assert.NoError(t, err)

	_, err = svc.RegisterUser("alice", "different")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestLogin(t *testing.T) {
	db := setupAuthTestDB()
	svc := NewAuthService(db, "test-secret")

	registered, err := svc.RegisterUser("alice", "password123")
	assert.NoError(t, err)

	token, user, err := svc.LoginUser("alice", "password123")
	assert.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	claims, err := utils.ValidateToken("test-secret", token)
	assert.NoError(t, err)
	assert.Equal(t, float64(registered.ID), claims["user_id"])
	assert.Equal(t, models.RoleAdmin, claims["role"])

	_, _, err = svc.LoginUser("alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.LoginUser("nobody", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
