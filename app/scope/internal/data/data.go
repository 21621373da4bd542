package data

import (
	"github.com/go-kratos/kratos/v2/log"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/adamamaa/greenscope/app/scope/internal/conf"
	"github.com/adamamaa/greenscope/app/scope/internal/domain"
)

// DefaultCapacity 未配置容量时最多保留的会话数
const DefaultCapacity = 1024

type Data struct {
	sessions *lru.Cache[string, *domain.Session]
}

// NewData 创建内存会话存储。会话被淘汰或清理时停止其加载文本轮换。
func NewData(c *conf.Session, logger log.Logger) (*Data, func(), error) {
	helper := log.NewHelper(logger)
	capacity := DefaultCapacity
	if c != nil && c.Capacity > 0 {
		capacity = int(c.Capacity)
	}

	sessions, err := lru.NewWithEvict(capacity, func(id string, s *domain.Session) {
		if s.Rotator != nil {
			s.Rotator.Stop()
		}
		helper.Debugf("session evicted: %s", id)
	})
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		helper.Info("closing the session store")
		sessions.Purge()
	}
	return &Data{sessions: sessions}, cleanup, nil
}
