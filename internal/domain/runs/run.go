package runs

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PipelineRun is the optional audit record of one processed request: the
// four stage artifacts as produced (or null when a stage did not run),
// any per-stage errors, and the final customer message.
type PipelineRun struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	RequestID       int64          `gorm:"column:request_id;index" json:"request_id"`
	RequestDate     string         `gorm:"column:request_date" json:"request_date"`
	Plan            datatypes.JSON `gorm:"column:plan" json:"plan"`
	Inventory       datatypes.JSON `gorm:"column:inventory" json:"inventory"`
	Quote           datatypes.JSON `gorm:"column:quote" json:"quote"`
	Fulfillment     datatypes.JSON `gorm:"column:fulfillment" json:"fulfillment"`
	StageErrors     datatypes.JSON `gorm:"column:stage_errors" json:"stage_errors"`
	CustomerMessage string         `gorm:"column:customer_message;type:text" json:"customer_message"`
	CreatedAt       time.Time      `gorm:"not null" json:"created_at"`
}

func (PipelineRun) TableName() string { return "pipeline_run" }
