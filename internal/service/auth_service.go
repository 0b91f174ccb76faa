package service

import (
	"context"
	"errors"
	"time"

	"go-customerapi/internal/domain/model"
	"go-customerapi/internal/repository/dao"
	redisrepo "go-customerapi/internal/repository/redis"
	"go-customerapi/internal/security/jwt"
	"go-customerapi/pkg/crypto"

	"github.com/google/uuid"
)

// AuthService 操作员登录/登出; token 的 JTI 写入 redis 作为有效凭证白名单
type AuthService struct {
	Accounts  *dao.AccountDAO
	JWT       *jwt.Manager
	Redis     *redisrepo.Client
	JTIPrefix string
}

func NewAuthService(a *dao.AccountDAO, j *jwt.Manager, r *redisrepo.Client) *AuthService {
	return &AuthService{Accounts: a, JWT: j, Redis: r, JTIPrefix: "jwt:jti:"}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	acct, err := s.Accounts.FindByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if acct == nil || !crypto.VerifyPassword(password, acct.Password) {
		return "", errors.New("invalid credentials")
	}
	if acct.Status != 1 {
		return "", errors.New("account disabled")
	}
	return s.issue(ctx, acct.ID)
}

// Refresh 以旧 token 换新: 旧 JTI 作废，新 JTI 入白名单
func (s *AuthService) Refresh(ctx context.Context, tokenStr string) (string, error) {
	claims, err := s.JWT.Parse(tokenStr)
	if err != nil {
		return "", err
	}
	if s.Redis != nil && s.Redis.Get(ctx, s.JTIPrefix+claims.JTI) == "" {
		return "", errors.New("token revoked")
	}
	_ = s.Logout(ctx, claims.JTI)
	return s.issue(ctx, claims.UserID)
}

// Logout 删除 JTI 使 token 立即失效
func (s *AuthService) Logout(ctx context.Context, jti string) error {
	if jti == "" || s.Redis == nil {
		return nil
	}
	return s.Redis.Client.Del(ctx, s.JTIPrefix+jti).Err()
}

// EnsureAccount 启动引导: 账号不存在时创建, 已存在不动（幂等）
func (s *AuthService) EnsureAccount(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}
	acct, err := s.Accounts.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if acct != nil {
		return nil
	}
	hashed, err := crypto.HashPassword(password)
	if err != nil {
		return err
	}
	now := time.Now().Unix()
	return s.Accounts.Create(ctx, &model.Account{
		Username:   username,
		Nickname:   username,
		Password:   hashed,
		CreateTime: now,
		UpdateTime: now,
		Status:     1,
	})
}

type AccountInfo struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Nickname string `json:"nickname"`
	Status   int8   `json:"status"`
}

func (s *AuthService) Info(ctx context.Context, uid int64) (*AccountInfo, error) {
	acct, err := s.Accounts.FindByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		return nil, errors.New("not found")
	}
	return &AccountInfo{ID: acct.ID, Username: acct.Username, Nickname: acct.Nickname, Status: acct.Status}, nil
}

// ChangePassword 校验旧口令后改存新哈希; 不吊销已签发 token, 下次过期自然失效
func (s *AuthService) ChangePassword(ctx context.Context, uid int64, oldPwd, newPwd string) error {
	if len(newPwd) < 6 {
		return errors.New("password too short")
	}
	acct, err := s.Accounts.FindByID(ctx, uid)
	if err != nil {
		return err
	}
	if acct == nil {
		return errors.New("not found")
	}
	if !crypto.VerifyPassword(oldPwd, acct.Password) {
		return errors.New("old password mismatch")
	}
	hashed, err := crypto.HashPassword(newPwd)
	if err != nil {
		return err
	}
	return s.Accounts.UpdatePassword(ctx, acct.ID, hashed)
}

func (s *AuthService) issue(ctx context.Context, accountID int64) (string, error) {
	jti := uuid.NewString()
	token, err := s.JWT.Generate(accountID, jti)
	if err != nil {
		return "", err
	}
	if s.Redis != nil {
		_ = s.Redis.SetTTL(ctx, s.JTIPrefix+jti, 1, s.JWT.ExpireDuration())
	}
	return token, nil
}
