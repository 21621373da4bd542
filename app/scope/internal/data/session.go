package data

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/adamamaa/greenscope/app/scope/internal/domain"
	"github.com/adamamaa/greenscope/app/scope/internal/repo"
)

type sessionRepo struct {
	data *Data
	log  *log.Helper
}

func NewSessionRepo(data *Data, logger log.Logger) repo.SessionRepo {
	return &sessionRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *sessionRepo) Save(_ context.Context, s *domain.Session) error {
	if evicted := r.data.sessions.Add(s.ID, s); evicted {
		r.log.Infof("session store full, evicted the oldest session (size=%d)", r.data.sessions.Len())
	}
	return nil
}

func (r *sessionRepo) Get(_ context.Context, id string) (*domain.Session, error) {
	s, ok := r.data.sessions.Get(id)
	if !ok {
		return nil, repo.ErrSessionNotFound
	}
	return s, nil
}

func (r *sessionRepo) Delete(_ context.Context, id string) error {
	r.data.sessions.Remove(id)
	return nil
}

func (r *sessionRepo) Len() int {
	return r.data.sessions.Len()
}
