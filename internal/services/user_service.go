package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"utilibill-backend/internal/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService reads and updates accounts. A Redis cache in front of the
// users table is optional; a nil client disables it.
type UserService struct {
	db    *gorm.DB
	cache *redis.Client
}

func NewUserService(db *gorm.DB, cache *redis.Client) *UserService {
	return &UserService{db: db, cache: cache}
}

func (s *UserService) FindUserByID(userID uint) (models.User, error) {
	ctx := context.Background()
	cacheKey := fmt.Sprintf("user:%d", userID)
	if s.cache != nil {
		val, err := s.cache.Get(ctx, cacheKey).Result()
		if err == nil {
			var user models.User
			if err := json.Unmarshal([]byte(val), &user); err == nil {
				return user, nil
			}
		}
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user, ErrUserNotFound
		}
		return user, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(user); err == nil {
			s.cache.Set(ctx, cacheKey, data, time.Hour)
		}
	}

	return user, nil
}

// FindUsers retrieves a paginated list of users.
func (s *UserService) FindUsers(page, limit int) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	offset := (page - 1) * limit

	if err := s.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := s.db.Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// UpdateUser updates a user with optimistic locking and selective fields.
// The balance column is off limits here; only the balance service mutates
// it.
func (s *UserService) UpdateUser(id uint, updates map[string]interface{}, operator string) (*models.User, error) {
	delete(updates, "balance")
	delete(updates, "version")

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var user models.User
	if err := tx.First(&user, id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if password, ok := updates["password"].(string); ok && password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		updates["password"] = string(hashedPassword)
	}

	currentVersion := user.Version
	updates["version"] = currentVersion + 1

	result := tx.Model(&user).Where("version = ?", currentVersion).Updates(updates)
	if result.Error != nil {
		tx.Rollback()
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		return nil, ErrOptimisticLock
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	s.InvalidateCache(id)

	zap.L().Info("user updated",
		zap.Uint("user_id", id),
		zap.String("operator", operator))

	s.db.First(&user, id)
	return &user, nil
}

func (s *UserService) InvalidateCache(id uint) {
	if s.cache != nil {
		s.cache.Del(context.Background(), fmt.Sprintf("user:%d", id))
	}
}
