package services

import (
	"context"
	"fmt"
	"time"

	"libms/pkg/config"

	"github.com/go-redis/redis/v8"
)

// TokenService 令牌吊销服务
// 登出时把令牌的jti写入Redis，TTL为令牌剩余有效期，
// 过期后自动清理，不需要后台任务
type TokenService struct {
	client *redis.Client
	prefix string
}

func NewTokenService(client *redis.Client) *TokenService {
	return &TokenService{
		client: client,
		prefix: config.GetConfig().Redis.Prefix,
	}
}

func (s *TokenService) revokeKey(jti string) string {
	return fmt.Sprintf("%s:token:revoked:%s", s.prefix, jti)
}

// Revoke 吊销令牌
func (s *TokenService) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if jti == "" || ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, s.revokeKey(jti), 1, ttl).Err()
}

// IsRevoked 检查令牌是否已被吊销
// Redis不可用时按未吊销处理并返回错误，由调用方决定是否放行
func (s *TokenService) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	n, err := s.client.Exists(ctx, s.revokeKey(jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
