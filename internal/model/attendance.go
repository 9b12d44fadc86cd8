package model

import (
	"time"

	"gorm.io/gorm"
)

// Attendance is one employee's record for one day.
type Attendance struct {
	ID         uint64 `json:"id" gorm:"primaryKey;autoIncrement;comment:考勤ID"`
	UserID     uint64 `json:"user_id" gorm:"uniqueIndex:uk_user_day;index:idx_att_user;not null;comment:用户ID"`
	Day        string `json:"day" gorm:"size:10;uniqueIndex:uk_user_day;not null;comment:日期 YYYY-MM-DD"`
	CheckInAt  int64  `json:"check_in_at" gorm:"comment:签到时间"`
	CheckOutAt int64  `json:"check_out_at" gorm:"comment:签退时间"`
	CreatedAt  int64  `json:"created_at" gorm:"autoCreateTime:milli;comment:创建时间"`
	UpdatedAt  int64  `json:"updated_at" gorm:"autoUpdateTime:milli;comment:更新时间"`
}

// AttendanceList contains attendance records and pagination info.
type AttendanceList struct {
	TotalCount int64         `json:"totalCount"`
	Items      []*Attendance `json:"items"`
}

// TableName returns the table name for GORM.
func (a *Attendance) TableName() string {
	return "attendances"
}

// BeforeCreate sets the CreatedAt and UpdatedAt fields.
func (a *Attendance) BeforeCreate(tx *gorm.DB) (err error) {
	now := time.Now().UnixMilli()
	a.CreatedAt = now
	a.UpdatedAt = now
	return
}

// BeforeUpdate sets the UpdatedAt field.
func (a *Attendance) BeforeUpdate(tx *gorm.DB) (err error) {
	a.UpdatedAt = time.Now().UnixMilli()
	return
}
