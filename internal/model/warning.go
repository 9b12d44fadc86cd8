package model

import (
	"time"

	"gorm.io/gorm"
)

// Warning is a disciplinary warning issued to an employee.
type Warning struct {
	ID             uint64         `json:"id" gorm:"primaryKey;autoIncrement;comment:警告ID"`
	UserID         uint64         `json:"user_id" gorm:"index:idx_warn_user;not null;comment:被警告用户ID"`
	IssuedBy       uint64         `json:"issued_by" gorm:"index:idx_warn_issuer;not null;comment:签发人用户ID"`
	Level          string         `json:"level" gorm:"size:16;default:minor;comment:级别"`
	Reason         string         `json:"reason" gorm:"size:512;not null;comment:原因"`
	Status         string         `json:"status" gorm:"size:16;default:issued;index:idx_warn_status;comment:状态"`
	AcknowledgedAt int64          `json:"acknowledged_at" gorm:"comment:确认时间"`
	CreatedAt      int64          `json:"created_at" gorm:"autoCreateTime:milli;comment:创建时间"`
	UpdatedAt      int64          `json:"updated_at" gorm:"autoUpdateTime:milli;comment:更新时间"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index;comment:软删除时间"`
}

// Warning status values.
const (
	WarningStatusIssued       = "issued"
	WarningStatusAcknowledged = "acknowledged"
)

// WarningList contains warnings and pagination info.
type WarningList struct {
	TotalCount int64      `json:"totalCount"`
	Items      []*Warning `json:"items"`
}

// TableName returns the table name for GORM.
func (w *Warning) TableName() string {
	return "warnings"
}

// BeforeCreate sets the CreatedAt and UpdatedAt fields.
func (w *Warning) BeforeCreate(tx *gorm.DB) (err error) {
	now := time.Now().UnixMilli()
	w.CreatedAt = now
	w.UpdatedAt = now
	return
}

// BeforeUpdate sets the UpdatedAt field.
func (w *Warning) BeforeUpdate(tx *gorm.DB) (err error) {
	w.UpdatedAt = time.Now().UnixMilli()
	return
}
