package user

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// RegisterRequestBody 定义了注册请求体的JSON结构
type RegisterRequestBody struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequestBody 定义了登录请求体的JSON结构
type LoginRequestBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChangePasswordRequestBody 定义了修改密码请求体的JSON结构
type ChangePasswordRequestBody struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// ProfileResponse 是 /me 接口的响应模型
type ProfileResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// RegisterUser 处理用户注册请求
func RegisterUser(c *gin.Context) {
	var body RegisterRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}

	_, err := Register(body.Name, body.Email, body.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields):
			c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		case errors.Is(err, ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"message": "User already exists"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User registered successfully"})
}

// LoginUser 处理用户登录请求，成功时返回JWT
func LoginUser(c *gin.Context) {
	var body LoginRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}

	tokenString, err := Authenticate(body.Email, body.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields):
			c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		case errors.Is(err, ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": tokenString})
}

// ChangeUserPassword 处理修改密码请求（需要认证）
func ChangeUserPassword(c *gin.Context) {
	var body ChangePasswordRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields required"})
		return
	}

	err := ChangePassword(CurrentUserID(c), body.OldPassword, body.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields):
			c.JSON(http.StatusBadRequest, gin.H{"message": "All fields required"})
		case errors.Is(err, ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Old password incorrect"})
		case errors.Is(err, ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update password"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}

// GetProfile 返回当前登录用户的基本资料
func GetProfile(c *gin.Context) {
	u, err := Profile(CurrentUserID(c))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch profile"})
		return
	}

	c.JSON(http.StatusOK, ProfileResponse{
		ID:        u.UUID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	})
}
