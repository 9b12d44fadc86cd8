package store

import (
	"context"
	"time"

	"github.com/kart-io/logger"
	"github.com/panjf2000/ants/v2"
	"gorm.io/gorm"

	"github.com/kart-io/lead-center/internal/model"
)

const (
	loginLogWorkers = 4
	loginLogTimeout = 3 * time.Second
)

// loginLogStore writes audit rows off the request path. When the pool
// is saturated the record is dropped, not queued.
type loginLogStore struct {
	db   *gorm.DB
	pool *ants.Pool
}

func newLoginLogStore(db *gorm.DB) (*loginLogStore, error) {
	pool, err := ants.NewPool(loginLogWorkers, ants.WithNonblocking(true))
	if err != nil {
		return nil, err
	}
	return &loginLogStore{db: db, pool: pool}, nil
}

// Record submits a login log write to the worker pool.
func (s *loginLogStore) Record(log *model.LoginLog) {
	err := s.pool.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), loginLogTimeout)
		defer cancel()
		if err := s.db.WithContext(ctx).Create(log).Error; err != nil {
			logger.Warnw("failed to write login log", "username", log.Username, "error", err)
		}
	})
	if err != nil {
		logger.Warnw("login log pool saturated, record dropped", "username", log.Username, "error", err)
	}
}

// Close drains the pool. Pending writes finish, new submits fail.
func (s *loginLogStore) Close() {
	s.pool.Release()
}
