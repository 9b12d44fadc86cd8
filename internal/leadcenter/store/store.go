package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/kart-io/lead-center/internal/model"
	"github.com/kart-io/lead-center/pkg/authz"
	"github.com/kart-io/lead-center/pkg/store"
)

// Factory creates the stores backing the service.
type Factory interface {
	Users() UserStore
	Roles() RoleStore
	Leads() LeadStore
	Attendances() AttendanceStore
	Warnings() WarningStore
	Tickets() TicketStore
	LoginLogs() LoginLogStore

	// Policy returns the adapters feeding the visibility engine.
	Policy() (authz.RoleStore, authz.PrincipalStore)

	Close() error
}

// UserStore defines the user storage interface.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id uint64) error
	Get(ctx context.Context, username string) (*model.User, error)
	GetByID(ctx context.Context, id uint64) (*model.User, error)
	GetByEmployeeCode(ctx context.Context, code string) (*model.User, error)
	List(ctx context.Context, opts ...store.Option) (int64, []*model.User, error)
	ListByRoleIDs(ctx context.Context, roleIDs []uint64) ([]*model.User, error)
	ListByTeamLead(ctx context.Context, leadID uint64) ([]*model.User, error)
	ListByDepartment(ctx context.Context, department string) ([]*model.User, error)
}

// RoleStore defines the role storage interface.
type RoleStore interface {
	Create(ctx context.Context, role *model.Role) error
	Update(ctx context.Context, role *model.Role) error
	Delete(ctx context.Context, id uint64) error
	Get(ctx context.Context, id uint64) (*model.Role, error)
	List(ctx context.Context, opts ...store.Option) (int64, []*model.Role, error)
	ListAll(ctx context.Context) ([]*model.Role, error)
	CountUsers(ctx context.Context, roleID uint64) (int64, error)
}

// LeadStore defines the lead storage interface. List applies the
// visibility scope produced by the policy engine.
type LeadStore interface {
	Create(ctx context.Context, lead *model.Lead, assignees, reporters []uint64) error
	Get(ctx context.Context, id uint64) (*model.Lead, error)
	Update(ctx context.Context, lead *model.Lead) error
	Delete(ctx context.Context, id uint64) error
	List(ctx context.Context, scope *authz.Filter, opts ...store.Option) (int64, []*model.Lead, error)
	Assignees(ctx context.Context, leadID uint64) ([]uint64, error)
	Reporters(ctx context.Context, leadID uint64) ([]uint64, error)
	ReplaceAssignees(ctx context.Context, leadID uint64, userIDs []uint64) error
	AddNote(ctx context.Context, note *model.LeadNote) error
	ListNotes(ctx context.Context, leadID uint64) ([]*model.LeadNote, error)
}

// AttendanceStore defines the attendance storage interface.
type AttendanceStore interface {
	Create(ctx context.Context, att *model.Attendance) error
	Update(ctx context.Context, att *model.Attendance) error
	GetByUserDay(ctx context.Context, userID uint64, day string) (*model.Attendance, error)
	List(ctx context.Context, userID uint64, fromDay, toDay string, opts ...store.Option) (int64, []*model.Attendance, error)
}

// WarningStore defines the warning storage interface.
type WarningStore interface {
	Create(ctx context.Context, warning *model.Warning) error
	Update(ctx context.Context, warning *model.Warning) error
	Get(ctx context.Context, id uint64) (*model.Warning, error)
	List(ctx context.Context, opts ...store.Option) (int64, []*model.Warning, error)
}

// TicketStore defines the ticket storage interface.
type TicketStore interface {
	Create(ctx context.Context, ticket *model.Ticket) error
	Update(ctx context.Context, ticket *model.Ticket) error
	Get(ctx context.Context, id uint64) (*model.Ticket, error)
	List(ctx context.Context, opts ...store.Option) (int64, []*model.Ticket, error)
}

// LoginLogStore defines the login log storage interface. Record is
// asynchronous; failures are logged, never surfaced.
type LoginLogStore interface {
	Record(log *model.LoginLog)
	Close()
}

// datastore is the gorm-backed Factory.
type datastore struct {
	db        *gorm.DB
	users     *userStore
	roles     *roleStore
	leads     *leadStore
	atts      *attendanceStore
	warnings  *warningStore
	tickets   *ticketStore
	loginLogs *loginLogStore
}

// NewFactory creates a Factory over the given database handle.
func NewFactory(db *gorm.DB) (Factory, error) {
	logs, err := newLoginLogStore(db)
	if err != nil {
		return nil, err
	}
	return &datastore{
		db:        db,
		users:     newUserStore(db),
		roles:     newRoleStore(db),
		leads:     newLeadStore(db),
		atts:      newAttendanceStore(db),
		warnings:  newWarningStore(db),
		tickets:   newTicketStore(db),
		loginLogs: logs,
	}, nil
}

func (ds *datastore) Users() UserStore             { return ds.users }
func (ds *datastore) Roles() RoleStore             { return ds.roles }
func (ds *datastore) Leads() LeadStore             { return ds.leads }
func (ds *datastore) Attendances() AttendanceStore { return ds.atts }
func (ds *datastore) Warnings() WarningStore       { return ds.warnings }
func (ds *datastore) Tickets() TicketStore         { return ds.tickets }
func (ds *datastore) LoginLogs() LoginLogStore     { return ds.loginLogs }

func (ds *datastore) Policy() (authz.RoleStore, authz.PrincipalStore) {
	return &policyRoleStore{roles: ds.roles}, &policyPrincipalStore{users: ds.users}
}

func (ds *datastore) Close() error {
	ds.loginLogs.Close()
	sqlDB, err := ds.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Migrate creates or updates the schema for all models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Role{},
		&model.Lead{},
		&model.LeadAssignee{},
		&model.LeadReporter{},
		&model.LeadNote{},
		&model.Attendance{},
		&model.Warning{},
		&model.Ticket{},
		&model.LoginLog{},
	)
}
