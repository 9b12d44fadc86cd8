package model

import (
	"time"

	"gorm.io/gorm"
)

// LoginLog records one authentication attempt. Written asynchronously
// so login latency does not depend on the audit table.
type LoginLog struct {
	ID        uint64 `json:"id" gorm:"primaryKey;autoIncrement;comment:日志ID"`
	UserID    uint64 `json:"user_id" gorm:"index:idx_login_user;comment:用户ID"`
	Username  string `json:"username" gorm:"size:64;comment:用户名"`
	IP        string `json:"ip" gorm:"size:45;comment:来源IP"`
	UserAgent string `json:"user_agent" gorm:"size:255;comment:UA"`
	Success   bool   `json:"success" gorm:"comment:是否成功"`
	CreatedAt int64  `json:"created_at" gorm:"autoCreateTime:milli;index:idx_login_time;comment:创建时间"`
}

// TableName returns the table name for GORM.
func (l *LoginLog) TableName() string {
	return "login_logs"
}

// BeforeCreate sets the CreatedAt field.
func (l *LoginLog) BeforeCreate(_ *gorm.DB) (err error) {
	l.CreatedAt = time.Now().UnixMilli()
	return
}
