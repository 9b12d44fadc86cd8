package model

import (
	"time"

	"gorm.io/gorm"
)

// User represents an employee account.
type User struct {
	ID           uint64         `json:"id" gorm:"primaryKey;autoIncrement;comment:用户ID"`
	Username     string         `json:"username" gorm:"size:64;not null;uniqueIndex:uk_username;comment:用户名"`
	Email        *string        `json:"email" gorm:"size:128;uniqueIndex:uk_email;comment:邮箱"`
	Password     string         `json:"-" gorm:"size:255;not null;comment:密码Hash"`
	EmployeeCode string         `json:"employee_code" gorm:"size:32;uniqueIndex:uk_employee_code;comment:员工编码"`
	Department   string         `json:"department" gorm:"size:64;index:idx_department;comment:部门"`
	RoleID       uint64         `json:"role_id" gorm:"index:idx_role_id;comment:角色ID"`
	TeamLeadID   uint64         `json:"team_lead_id" gorm:"index:idx_team_lead;comment:直属组长用户ID"`
	Status       int            `json:"status" gorm:"index:idx_user_status;comment:状态 1启用 0禁用"`
	CreatedAt    int64          `json:"created_at" gorm:"autoCreateTime:milli;comment:创建时间"`
	UpdatedAt    int64          `json:"updated_at" gorm:"autoUpdateTime:milli;comment:更新时间"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index;comment:软删除时间"`
}

// User status values.
const (
	UserStatusDisabled = 0
	UserStatusEnabled  = 1
)

// UserList contains a list of users and pagination info.
type UserList struct {
	TotalCount int64   `json:"totalCount"`
	Items      []*User `json:"items"`
}

// TableName returns the table name for GORM.
func (u *User) TableName() string {
	return "users"
}

// BeforeCreate sets the CreatedAt and UpdatedAt fields.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	now := time.Now().UnixMilli()
	u.CreatedAt = now
	u.UpdatedAt = now
	return
}

// BeforeUpdate sets the UpdatedAt field.
func (u *User) BeforeUpdate(tx *gorm.DB) (err error) {
	u.UpdatedAt = time.Now().UnixMilli()
	return
}
