package runsrepo

import (
	"context"

	"github.com/beaverchoice/fulfillment-backend/internal/domain/runs"
	"github.com/beaverchoice/fulfillment-backend/internal/platform/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repo persists the pipeline audit trail.
type Repo interface {
	Create(ctx context.Context, tx *gorm.DB, run *runs.PipelineRun) error
	GetByRequestID(ctx context.Context, tx *gorm.DB, requestID int64) ([]*runs.PipelineRun, error)
}

type repo struct {
	db  *gorm.DB
	log *logger.Logger
}

func New(db *gorm.DB, baseLog *logger.Logger) Repo {
	return &repo{db: db, log: baseLog.With("repo", "PipelineRunRepo")}
}

func (r *repo) Create(ctx context.Context, tx *gorm.DB, run *runs.PipelineRun) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if run == nil {
		return nil
	}
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	return transaction.WithContext(ctx).Create(run).Error
}

func (r *repo) GetByRequestID(ctx context.Context, tx *gorm.DB, requestID int64) ([]*runs.PipelineRun, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*runs.PipelineRun
	if err := transaction.WithContext(ctx).
		Where("request_id = ?", requestID).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
