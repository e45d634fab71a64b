package user_test

import (
	"errors"
	"testing"

	"github.com/mindbridge/mindbridge-backend/internal/testutil"
	"github.com/mindbridge/mindbridge-backend/internal/user"
	"github.com/mindbridge/mindbridge-backend/pkg/token"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	testutil.SetupDB(t)
	token.InitializeSecret("test-secret", 60)

	u, err := user.Register("Alice", "  Alice@Example.COM ", "s3cret")
	if err != nil {
		t.Fatalf("Register 返回错误: %v", err)
	}
	if u.UUID == "" {
		t.Fatal("注册后UUID不应为空")
	}
	if u.Email != "alice@example.com" {
		t.Fatalf("Email=%q, 应当被规范化为小写并去除空白", u.Email)
	}
	if u.PasswordHash == "s3cret" || u.PasswordHash == "" {
		t.Fatal("密码必须以散列形式存储")
	}

	// 重复邮箱 -> ErrEmailTaken
	if _, err := user.Register("Alice2", "alice@example.com", "other"); !errors.Is(err, user.ErrEmailTaken) {
		t.Fatalf("err=%v, want ErrEmailTaken", err)
	}

	// 正确凭证 -> 有效令牌
	tok, err := user.Authenticate("alice@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Authenticate 返回错误: %v", err)
	}
	subject, err := token.ParseToken(tok)
	if err != nil {
		t.Fatalf("ParseToken 返回错误: %v", err)
	}
	if subject != u.UUID {
		t.Fatalf("令牌subject=%s, want %s", subject, u.UUID)
	}

	// 错误密码 / 未知邮箱 -> ErrInvalidCredentials
	if _, err := user.Authenticate("alice@example.com", "wrong"); !errors.Is(err, user.ErrInvalidCredentials) {
		t.Fatalf("err=%v, want ErrInvalidCredentials", err)
	}
	if _, err := user.Authenticate("nobody@example.com", "s3cret"); !errors.Is(err, user.ErrInvalidCredentials) {
		t.Fatalf("err=%v, want ErrInvalidCredentials", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	testutil.SetupDB(t)

	cases := []struct {
		name, email, password string
	}{
		{"", "a@example.com", "pw"},
		{"Bob", "", "pw"},
		{"Bob", "b@example.com", ""},
	}
	for _, c := range cases {
		if _, err := user.Register(c.name, c.email, c.password); !errors.Is(err, user.ErrMissingFields) {
			t.Fatalf("Register(%q,%q,...) err=%v, want ErrMissingFields", c.name, c.email, err)
		}
	}
}

func TestChangePassword(t *testing.T) {
	testutil.SetupDB(t)
	token.InitializeSecret("test-secret", 60)

	u, err := user.Register("Carol", "carol@example.com", "old-pw")
	if err != nil {
		t.Fatalf("Register 返回错误: %v", err)
	}

	// 旧密码错误 -> 拒绝
	if err := user.ChangePassword(u.UUID, "bad", "new-pw"); !errors.Is(err, user.ErrInvalidCredentials) {
		t.Fatalf("err=%v, want ErrInvalidCredentials", err)
	}

	if err := user.ChangePassword(u.UUID, "old-pw", "new-pw"); err != nil {
		t.Fatalf("ChangePassword 返回错误: %v", err)
	}

	if _, err := user.Authenticate("carol@example.com", "old-pw"); !errors.Is(err, user.ErrInvalidCredentials) {
		t.Fatal("旧密码在修改后不应再可用")
	}
	if _, err := user.Authenticate("carol@example.com", "new-pw"); err != nil {
		t.Fatalf("新密码登录失败: %v", err)
	}
}

func TestExistsFallsBackToSQL(t *testing.T) {
	testutil.SetupDB(t)

	u, err := user.Register("Dave", "dave@example.com", "pw")
	if err != nil {
		t.Fatalf("Register 返回错误: %v", err)
	}

	// 测试环境没有Redis，Exists应当回退到SQL查询
	exists, err := user.Exists(u.UUID)
	if err != nil {
		t.Fatalf("Exists 返回错误: %v", err)
	}
	if !exists {
		t.Fatal("已注册用户应当存在")
	}

	exists, err = user.Exists("0195c1f0-dead-7000-8000-000000000000")
	if err != nil {
		t.Fatalf("Exists 返回错误: %v", err)
	}
	if exists {
		t.Fatal("未注册的UUID不应存在")
	}
}
