package repo

import (
	"context"

	"github.com/go-kratos/kratos/v2/errors"

	"github.com/adamamaa/greenscope/app/scope/internal/domain"
)

// ErrSessionNotFound 会话不存在或已被淘汰
var ErrSessionNotFound = errors.NotFound("SESSION_NOT_FOUND", "session not found")

// SessionRepo 会话仓库接口
type SessionRepo interface {
	// Save 保存会话，已存在时覆盖
	Save(ctx context.Context, s *domain.Session) error
	// Get 根据ID获取会话，不存在时返回 ErrSessionNotFound
	Get(ctx context.Context, id string) (*domain.Session, error)
	// Delete 删除会话并停止其加载文本轮换
	Delete(ctx context.Context, id string) error
	// Len 当前会话数
	Len() int
}
