package user

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mindbridge/mindbridge-backend/internal/platform/database"
	"github.com/mindbridge/mindbridge-backend/pkg/token"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// bcryptCost 是密码散列的强度参数。
const bcryptCost = 10

// normalizeEmail 统一邮箱的存储格式。
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register 创建一个新用户并持久化。
// 邮箱已存在时返回ErrEmailTaken，而不是笼统的存储错误。
func Register(name, email, password string) (*User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("无法散列密码: %w", err)
	}

	newUUID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("无法生成UUID v7: %w", err)
	}

	newUser := User{
		UUID:         newUUID.String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}

	if err := database.DB.Create(&newUser).Error; err != nil {
		// 邮箱列上的唯一约束冲突是预期结果
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("无法创建新用户: %w", err)
	}

	// 尽力把新用户加入Redis缓存；失败不影响注册结果，
	// 中间件在Redis不可用时会回退到SQL查询
	if database.IsRedisHealthy() {
		if err := database.RDB.SAdd(database.Ctx, KnownUsersKey, newUser.UUID).Err(); err != nil {
			fmt.Printf("警告: 无法将新用户 %s 加入Redis缓存: %v\n", newUser.UUID, err)
		}
	}

	return &newUser, nil
}

// Authenticate 校验登录凭证并签发JWT。
func Authenticate(email, password string) (string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", ErrMissingFields
	}

	var u User
	if err := database.DB.Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("无法查询用户: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}

	return token.GenerateToken(u.UUID)
}

// ChangePassword 在校验旧密码后更新用户密码。
func ChangePassword(userID, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return ErrMissingFields
	}

	var u User
	if err := database.DB.Where("uuid = ?", userID).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("无法查询用户: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(oldPassword)) != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("无法散列新密码: %w", err)
	}

	if err := database.DB.Model(&User{}).Where("uuid = ?", userID).
		Update("password_hash", string(hash)).Error; err != nil {
		return fmt.Errorf("无法更新密码: %w", err)
	}
	return nil
}

// Profile 返回用户的公开资料。
func Profile(userID string) (*User, error) {
	var u User
	if err := database.DB.Where("uuid = ?", userID).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("无法查询用户: %w", err)
	}
	return &u, nil
}

// Exists 检查一个UUID是否对应已注册用户。
// Redis健康时查缓存，否则回退到SQL。
func Exists(userID string) (bool, error) {
	if userID == "" {
		return false, nil
	}

	if database.IsRedisHealthy() {
		exists, err := database.RDB.SIsMember(database.Ctx, KnownUsersKey, userID).Result()
		if err == nil {
			return exists, nil
		}
		fmt.Printf("警告: 检查Redis用户缓存时出错，回退到SQL: %v\n", err)
	}

	var count int64
	if err := database.DB.Model(&User{}).Where("uuid = ?", userID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("无法查询用户是否存在: %w", err)
	}
	return count > 0, nil
}
