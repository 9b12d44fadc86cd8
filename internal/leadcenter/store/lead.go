package store

import (
	"context"
	stderrors "errors"
	"strconv"

	"gorm.io/gorm"

	"github.com/kart-io/lead-center/internal/model"
	"github.com/kart-io/lead-center/pkg/authz"
	"github.com/kart-io/lead-center/pkg/store"
	"github.com/kart-io/lead-center/pkg/utils/errors"
)

type leadStore struct {
	db *gorm.DB
}

func newLeadStore(db *gorm.DB) *leadStore {
	return &leadStore{db: db}
}

// ApplyVisibilityScope narrows a lead query to the rows the scope allows.
// An empty non-match-all scope compiles to a contradiction so a denied
// caller sees zero rows rather than the whole table.
func ApplyVisibilityScope(db *gorm.DB, scope *authz.Filter) *gorm.DB {
	if scope == nil || scope.MatchAll {
		return db
	}
	if scope.MatchNone() {
		return db.Where("1 = 0")
	}

	tx := db.Session(&gorm.Session{NewDB: true})
	var cond *gorm.DB
	for _, c := range scope.Clauses {
		ids := parseIDs(c.IDs)
		if len(ids) == 0 {
			continue
		}
		var expr *gorm.DB
		switch c.Field {
		case authz.FieldCreatedBy:
			expr = tx.Where("created_by IN ?", ids)
		case authz.FieldTeamLead:
			expr = tx.Where("team_lead_id IN ?", ids)
		case authz.FieldAssignedTo:
			expr = tx.Where("id IN (SELECT lead_id FROM lead_assignees WHERE user_id IN ?)", ids)
		case authz.FieldReportTo:
			expr = tx.Where("id IN (SELECT lead_id FROM lead_reporters WHERE user_id IN ?)", ids)
		default:
			continue
		}
		if cond == nil {
			cond = expr
		} else {
			cond = cond.Or(expr)
		}
	}
	if cond == nil {
		return db.Where("1 = 0")
	}
	return db.Where(cond)
}

// parseIDs converts principal IDs back to primary keys, dropping
// anything that is not numeric.
func parseIDs(raw []string) []uint64 {
	ids := make([]uint64, 0, len(raw))
	for _, r := range raw {
		id, err := strconv.ParseUint(r, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// Create inserts a lead together with its assignee and reporter links.
func (s *leadStore) Create(ctx context.Context, lead *model.Lead, assignees, reporters []uint64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(lead).Error; err != nil {
			return err
		}
		for _, uid := range assignees {
			if err := tx.Create(&model.LeadAssignee{LeadID: lead.ID, UserID: uid}).Error; err != nil {
				return err
			}
		}
		for _, uid := range reporters {
			if err := tx.Create(&model.LeadReporter{LeadID: lead.ID, UserID: uid}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.ErrAlreadyExists.WithMessagef("lead %q already exists", lead.Number)
		}
		return errors.ErrDatabase.WithCause(err)
	}
	return nil
}

// Get retrieves a lead by primary key.
func (s *leadStore) Get(ctx context.Context, id uint64) (*model.Lead, error) {
	var lead model.Lead
	if err := s.db.WithContext(ctx).First(&lead, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrLeadNotFound
		}
		return nil, errors.ErrDatabase.WithCause(err)
	}
	return &lead, nil
}

// Update saves the full lead record.
func (s *leadStore) Update(ctx context.Context, lead *model.Lead) error {
	if err := s.db.WithContext(ctx).Save(lead).Error; err != nil {
		return errors.ErrDatabase.WithCause(err)
	}
	return nil
}

// Delete soft-deletes a lead and removes its membership links.
func (s *leadStore) Delete(ctx context.Context, id uint64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&model.Lead{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("lead_id = ?", id).Delete(&model.LeadAssignee{}).Error; err != nil {
			return err
		}
		return tx.Where("lead_id = ?", id).Delete(&model.LeadReporter{}).Error
	})
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrLeadNotFound
		}
		return errors.ErrDatabase.WithCause(err)
	}
	return nil
}

// List returns the leads visible under the given scope, narrowed
// further by the query options.
func (s *leadStore) List(ctx context.Context, scope *authz.Filter, opts ...store.Option) (int64, []*model.Lead, error) {
	db := s.db.WithContext(ctx).Model(&model.Lead{})
	db = ApplyVisibilityScope(db, scope)
	where := store.NewWhere(opts...)
	db = where.Conditions(db)

	var count int64
	if err := db.Count(&count).Error; err != nil {
		return 0, nil, errors.ErrDatabase.WithCause(err)
	}

	var leads []*model.Lead
	if err := where.Paginate(db).Order("id desc").Find(&leads).Error; err != nil {
		return 0, nil, errors.ErrDatabase.WithCause(err)
	}
	return count, leads, nil
}

// Assignees returns the user IDs assigned to a lead.
func (s *leadStore) Assignees(ctx context.Context, leadID uint64) ([]uint64, error) {
	var ids []uint64
	err := s.db.WithContext(ctx).Model(&model.LeadAssignee{}).
		Where("lead_id = ?", leadID).
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, errors.ErrDatabase.WithCause(err)
	}
	return ids, nil
}

// Reporters returns the user IDs a lead reports to.
func (s *leadStore) Reporters(ctx context.Context, leadID uint64) ([]uint64, error) {
	var ids []uint64
	err := s.db.WithContext(ctx).Model(&model.LeadReporter{}).
		Where("lead_id = ?", leadID).
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, errors.ErrDatabase.WithCause(err)
	}
	return ids, nil
}

// ReplaceAssignees swaps the full assignee set of a lead.
func (s *leadStore) ReplaceAssignees(ctx context.Context, leadID uint64, userIDs []uint64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("lead_id = ?", leadID).Delete(&model.LeadAssignee{}).Error; err != nil {
			return err
		}
		for _, uid := range userIDs {
			if err := tx.Create(&model.LeadAssignee{LeadID: leadID, UserID: uid}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errors.ErrDatabase.WithCause(err)
	}
	return nil
}

// AddNote appends a note to a lead.
func (s *leadStore) AddNote(ctx context.Context, note *model.LeadNote) error {
	if err := s.db.WithContext(ctx).Create(note).Error; err != nil {
		return errors.ErrDatabase.WithCause(err)
	}
	return nil
}

// ListNotes returns all notes on a lead, newest first.
func (s *leadStore) ListNotes(ctx context.Context, leadID uint64) ([]*model.LeadNote, error) {
	var notes []*model.LeadNote
	err := s.db.WithContext(ctx).
		Where("lead_id = ?", leadID).
		Order("id desc").
		Find(&notes).Error
	if err != nil {
		return nil, errors.ErrDatabase.WithCause(err)
	}
	return notes, nil
}
