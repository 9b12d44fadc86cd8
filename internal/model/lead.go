package model

import (
	"time"

	"gorm.io/gorm"
)

// Lead represents a sales lead. Ownership relations used by the
// visibility engine: CreatedBy, the lead_assignees and lead_reporters
// join tables, and TeamLeadID.
type Lead struct {
	ID         uint64         `json:"id" gorm:"primaryKey;autoIncrement;comment:线索ID"`
	Number     string         `json:"number" gorm:"size:40;not null;uniqueIndex:uk_number;comment:线索编号"`
	Name       string         `json:"name" gorm:"size:128;not null;comment:客户名称"`
	Contact    string         `json:"contact" gorm:"size:64;comment:联系人"`
	Phone      string         `json:"phone" gorm:"size:20;comment:联系电话"`
	Source     string         `json:"source" gorm:"size:64;index:idx_source;comment:来源"`
	Status     string         `json:"status" gorm:"size:32;default:new;index:idx_lead_status;comment:状态"`
	CreatedBy  uint64         `json:"created_by" gorm:"index:idx_created_by;comment:创建人用户ID"`
	TeamLeadID uint64         `json:"team_lead_id" gorm:"index:idx_lead_team_lead;comment:负责组长用户ID"`
	CreatedAt  int64          `json:"created_at" gorm:"autoCreateTime:milli;comment:创建时间"`
	UpdatedAt  int64          `json:"updated_at" gorm:"autoUpdateTime:milli;comment:更新时间"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index;comment:软删除时间"`
}

// Lead status values.
const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusQualified = "qualified"
	LeadStatusWon       = "won"
	LeadStatusLost      = "lost"
)

// LeadList contains a list of leads and pagination info.
type LeadList struct {
	TotalCount int64   `json:"totalCount"`
	Items      []*Lead `json:"items"`
}

// TableName returns the table name for GORM.
func (l *Lead) TableName() string {
	return "leads"
}

// BeforeCreate sets the CreatedAt and UpdatedAt fields.
func (l *Lead) BeforeCreate(tx *gorm.DB) (err error) {
	now := time.Now().UnixMilli()
	l.CreatedAt = now
	l.UpdatedAt = now
	return
}

// BeforeUpdate sets the UpdatedAt field.
func (l *Lead) BeforeUpdate(tx *gorm.DB) (err error) {
	l.UpdatedAt = time.Now().UnixMilli()
	return
}

// LeadAssignee links a lead to an assigned user.
type LeadAssignee struct {
	ID        uint64 `json:"id" gorm:"primaryKey;autoIncrement"`
	LeadID    uint64 `json:"lead_id" gorm:"uniqueIndex:uk_lead_assignee;index:idx_assignee_lead;not null;comment:线索ID"`
	UserID    uint64 `json:"user_id" gorm:"uniqueIndex:uk_lead_assignee;index:idx_assignee_user;not null;comment:用户ID"`
	CreatedAt int64  `json:"created_at" gorm:"autoCreateTime:milli;comment:创建时间"`
}

// TableName returns the table name for GORM.
func (la *LeadAssignee) TableName() string {
	return "lead_assignees"
}

// BeforeCreate sets the CreatedAt field.
func (la *LeadAssignee) BeforeCreate(_ *gorm.DB) (err error) {
	la.CreatedAt = time.Now().UnixMilli()
	return
}

// LeadReporter links a lead to a user it is reported to.
type LeadReporter struct {
	ID        uint64 `json:"id" gorm:"primaryKey;autoIncrement"`
	LeadID    uint64 `json:"lead_id" gorm:"uniqueIndex:uk_lead_reporter;index:idx_reporter_lead;not null;comment:线索ID"`
	UserID    uint64 `json:"user_id" gorm:"uniqueIndex:uk_lead_reporter;index:idx_reporter_user;not null;comment:用户ID"`
	CreatedAt int64  `json:"created_at" gorm:"autoCreateTime:milli;comment:创建时间"`
}

// TableName returns the table name for GORM.
func (lr *LeadReporter) TableName() string {
	return "lead_reporters"
}

// BeforeCreate sets the CreatedAt field.
func (lr *LeadReporter) BeforeCreate(_ *gorm.DB) (err error) {
	lr.CreatedAt = time.Now().UnixMilli()
	return
}

// LeadNote is a free-form annotation on a lead.
type LeadNote struct {
	ID        uint64 `json:"id" gorm:"primaryKey;autoIncrement;comment:备注ID"`
	LeadID    uint64 `json:"lead_id" gorm:"index:idx_note_lead;not null;comment:线索ID"`
	AuthorID  uint64 `json:"author_id" gorm:"index:idx_note_author;not null;comment:作者用户ID"`
	Content   string `json:"content" gorm:"type:text;not null;comment:内容"`
	CreatedAt int64  `json:"created_at" gorm:"autoCreateTime:milli;comment:创建时间"`
}

// TableName returns the table name for GORM.
func (n *LeadNote) TableName() string {
	return "lead_notes"
}

// BeforeCreate sets the CreatedAt field.
func (n *LeadNote) BeforeCreate(_ *gorm.DB) (err error) {
	n.CreatedAt = time.Now().UnixMilli()
	return
}
