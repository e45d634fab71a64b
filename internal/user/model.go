package user

import (
	"time"

	"gorm.io/gorm"
)

// User 定义了用户在数据库中的持久化模型。
type User struct {
	// UUID 是用户的主键，采用UUIDv7，在注册时生成。
	UUID string `gorm:"primarykey;type:varchar(36)"`

	// Name 是用户的显示名称。
	Name string `gorm:"type:varchar(255);not null"`

	// Email 是登录凭证，全局唯一，始终以小写形式存储。
	Email string `gorm:"uniqueIndex;type:varchar(255);not null"`

	// PasswordHash 是bcrypt散列后的密码，绝不存储明文。
	PasswordHash string `gorm:"type:varchar(255);not null"`

	// 部分gorm.Model，由GORM自动管理
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
