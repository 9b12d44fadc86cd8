package model

import (
	"time"

	"gorm.io/gorm"
)

// Role represents a permission and hierarchy node. ReportingID names
// the parent role (0 = top of a tree). Permissions holds the JSON
// grant document, e.g. `[{"page":"leads","actions":["show","own"]}]`.
type Role struct {
	ID          uint64         `json:"id" gorm:"primaryKey;autoIncrement;comment:角色ID"`
	Name        string         `json:"name" gorm:"size:64;not null;uniqueIndex:uk_name;comment:角色名称"`
	Description string         `json:"description" gorm:"size:255;comment:描述"`
	ReportingID uint64         `json:"reporting_id" gorm:"index:idx_reporting;comment:上级角色ID"`
	Permissions []byte         `json:"permissions" gorm:"type:json;comment:权限文档"`
	Status      int            `json:"status" gorm:"index:idx_role_status;comment:状态 1启用 0禁用"`
	CreatedAt   int64          `json:"created_at" gorm:"autoCreateTime:milli;comment:创建时间"`
	UpdatedAt   int64          `json:"updated_at" gorm:"autoUpdateTime:milli;comment:更新时间"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index;comment:软删除时间"`
}

// Role status values.
const (
	RoleStatusDisabled = 0
	RoleStatusEnabled  = 1
)

// RoleList contains a list of roles and pagination info.
type RoleList struct {
	TotalCount int64   `json:"totalCount"`
	Items      []*Role `json:"items"`
}

// TableName returns the table name for GORM.
func (r *Role) TableName() string {
	return "roles"
}

// BeforeCreate sets the CreatedAt and UpdatedAt fields.
func (r *Role) BeforeCreate(tx *gorm.DB) (err error) {
	now := time.Now().UnixMilli()
	r.CreatedAt = now
	r.UpdatedAt = now
	return
}

// BeforeUpdate sets the UpdatedAt field.
func (r *Role) BeforeUpdate(tx *gorm.DB) (err error) {
	r.UpdatedAt = time.Now().UnixMilli()
	return
}
