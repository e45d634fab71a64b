package token

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// secretKey 存储JWT签名密钥。
// 它要么来自配置，要么在服务器启动时随机生成（此时重启会使所有令牌失效）。
var secretKey []byte

// tokenTTL 是签发令牌的有效期。
var tokenTTL = 2 * time.Hour

// ErrInvalidToken 表示令牌无法通过解析或签名校验。
var ErrInvalidToken = errors.New("无效的登录令牌")

// Claims 定义了登录令牌中携带的数据。
// Subject 字段存放用户的UUID。
type Claims struct {
	jwt.RegisteredClaims
}

// InitializeSecret 设置JWT密钥和令牌有效期。
// 配置中密钥为空时，生成一个密码学安全的32字节随机密钥。
func InitializeSecret(configuredSecret string, ttlMinutes int) {
	if ttlMinutes > 0 {
		tokenTTL = time.Duration(ttlMinutes) * time.Minute
	}

	if configuredSecret != "" {
		secretKey = []byte(configuredSecret)
		fmt.Println("已加载配置中的JWT密钥。")
		return
	}

	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		panic("无法生成安全的密钥: " + err.Error())
	}
	secretKey = []byte(hex.EncodeToString(key))
	fmt.Println("JWT密钥已随机生成（重启后现有令牌将失效）。")
}

// GenerateToken 为指定用户签发一个带有效期的登录令牌。
func GenerateToken(userID string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(secretKey)
	if err != nil {
		return "", fmt.Errorf("无法签发登录令牌: %w", err)
	}
	return signed, nil
}

// ParseToken 验证令牌的签名与有效期，并返回其中的用户UUID。
func ParseToken(tokenString string) (string, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		// 只接受HMAC签名，防止算法替换攻击
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("不支持的签名算法: %v", t.Header["alg"])
		}
		return secretKey, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
