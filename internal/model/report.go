package model

import "time"

// Report 举报记录（只追加，供人工审核）
type Report struct {
	ID         string    `gorm:"primaryKey;type:varchar(36)"`
	PostID     string    `gorm:"type:varchar(64);index:idx_report_post;not null"`
	SessionID  string    `gorm:"type:varchar(36);index"`
	ReporterID string    `gorm:"type:varchar(64)"`
	ReportedAt time.Time `gorm:"index"`
	Status     string    `gorm:"type:varchar(16);index"` // pending, reviewed
	CreatedAt  time.Time
}

func (Report) TableName() string { return "reports" }

const (
	ReportStatusPending  = "pending"
	ReportStatusReviewed = "reviewed"
)
