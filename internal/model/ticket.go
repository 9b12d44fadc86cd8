package model

import (
	"time"

	"gorm.io/gorm"
)

// Ticket is an internal support ticket.
type Ticket struct {
	ID          uint64         `json:"id" gorm:"primaryKey;autoIncrement;comment:工单ID"`
	Number      string         `json:"number" gorm:"size:40;not null;uniqueIndex:uk_ticket_number;comment:工单编号"`
	Title       string         `json:"title" gorm:"size:128;not null;comment:标题"`
	Description string         `json:"description" gorm:"type:text;comment:描述"`
	Status      string         `json:"status" gorm:"size:16;default:open;index:idx_ticket_status;comment:状态"`
	OpenedBy    uint64         `json:"opened_by" gorm:"index:idx_ticket_opener;not null;comment:创建人用户ID"`
	AssigneeID  uint64         `json:"assignee_id" gorm:"index:idx_ticket_assignee;comment:处理人用户ID"`
	ResolvedAt  int64          `json:"resolved_at" gorm:"comment:解决时间"`
	ClosedAt    int64          `json:"closed_at" gorm:"comment:关闭时间"`
	CreatedAt   int64          `json:"created_at" gorm:"autoCreateTime:milli;comment:创建时间"`
	UpdatedAt   int64          `json:"updated_at" gorm:"autoUpdateTime:milli;comment:更新时间"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index;comment:软删除时间"`
}

// Ticket status values.
const (
	TicketStatusOpen     = "open"
	TicketStatusAssigned = "assigned"
	TicketStatusResolved = "resolved"
	TicketStatusClosed   = "closed"
)

// TicketList contains tickets and pagination info.
type TicketList struct {
	TotalCount int64     `json:"totalCount"`
	Items      []*Ticket `json:"items"`
}

// TableName returns the table name for GORM.
func (t *Ticket) TableName() string {
	return "tickets"
}

// BeforeCreate sets the CreatedAt and UpdatedAt fields.
func (t *Ticket) BeforeCreate(tx *gorm.DB) (err error) {
	now := time.Now().UnixMilli()
	t.CreatedAt = now
	t.UpdatedAt = now
	return
}

// BeforeUpdate sets the UpdatedAt field.
func (t *Ticket) BeforeUpdate(tx *gorm.DB) (err error) {
	t.UpdatedAt = time.Now().UnixMilli()
	return
}
