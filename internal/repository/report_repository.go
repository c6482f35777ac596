package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/hostelbuzz/internal/model"
)

// ReportRepository 举报记录仓储
type ReportRepository interface {
	Create(ctx context.Context, r *model.Report) error
	ListByPost(ctx context.Context, postID string, offset, limit int) ([]*model.Report, error)
	Count(ctx context.Context) (int64, error)
	MarkReviewed(ctx context.Context, id string) error
}

type reportRepository struct{ db *gorm.DB }

func NewReportRepository(db *gorm.DB) ReportRepository { return &reportRepository{db: db} }

func (r *reportRepository) Create(ctx context.Context, rep *model.Report) error {
	if rep.ID == "" {
		rep.ID = uuid.New().String()
	}
	if rep.Status == "" {
		rep.Status = model.ReportStatusPending
	}
	return r.db.WithContext(ctx).Create(rep).Error
}

func (r *reportRepository) ListByPost(ctx context.Context, postID string, offset, limit int) ([]*model.Report, error) {
	var res []*model.Report
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("reported_at DESC").
		Offset(offset).Limit(limit).
		Find(&res).Error
	return res, err
}

func (r *reportRepository) Count(ctx context.Context) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&model.Report{}).Count(&cnt).Error
	return cnt, err
}

func (r *reportRepository) MarkReviewed(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&model.Report{}).
		Where("id = ?", id).
		Update("status", model.ReportStatusReviewed).Error
}
