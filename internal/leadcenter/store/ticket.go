package store

import (
	"context"
	stderrors "errors"

	"gorm.io/gorm"

	"github.com/kart-io/lead-center/internal/model"
	"github.com/kart-io/lead-center/pkg/store"
	"github.com/kart-io/lead-center/pkg/utils/errors"
)

type ticketStore struct {
	db *gorm.DB
}

func newTicketStore(db *gorm.DB) *ticketStore {
	return &ticketStore{db: db}
}

// Create inserts a new ticket record.
func (s *ticketStore) Create(ctx context.Context, ticket *model.Ticket) error {
	if err := s.db.WithContext(ctx).Create(ticket).Error; err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.ErrAlreadyExists.WithMessagef("ticket %q already exists", ticket.Number)
		}
		return errors.ErrDatabase.WithCause(err)
	}
	return nil
}

// Update saves the full ticket record.
func (s *ticketStore) Update(ctx context.Context, ticket *model.Ticket) error {
	if err := s.db.WithContext(ctx).Save(ticket).Error; err != nil {
		return errors.ErrDatabase.WithCause(err)
	}
	return nil
}

// Get retrieves a ticket by primary key.
func (s *ticketStore) Get(ctx context.Context, id uint64) (*model.Ticket, error) {
	var ticket model.Ticket
	if err := s.db.WithContext(ctx).First(&ticket, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound
		}
		return nil, errors.ErrDatabase.WithCause(err)
	}
	return &ticket, nil
}

// List returns tickets matching the given query options.
func (s *ticketStore) List(ctx context.Context, opts ...store.Option) (int64, []*model.Ticket, error) {
	where := store.NewWhere(opts...)
	db := where.Conditions(s.db.WithContext(ctx).Model(&model.Ticket{}))

	var count int64
	if err := db.Count(&count).Error; err != nil {
		return 0, nil, errors.ErrDatabase.WithCause(err)
	}

	var tickets []*model.Ticket
	if err := where.Paginate(db).Order("id desc").Find(&tickets).Error; err != nil {
		return 0, nil, errors.ErrDatabase.WithCause(err)
	}
	return count, tickets, nil
}
