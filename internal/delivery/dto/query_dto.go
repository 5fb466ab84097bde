package dto

import (
	"time"

	"patient-record-manager/internal/domain/entity"
)

// Request DTOs

type ExecuteQueryRequest struct {
	Query string `json:"query" validate:"required"`
}

type ExportQueryRequest struct {
	Query  string `json:"query" validate:"required"`
	Format string `json:"format" validate:"required,oneof=csv json xlsx"`
}

type SaveQueryRequest struct {
	Name  string `json:"name" validate:"required"`
	Query string `json:"query" validate:"required"`
}

// Response DTOs

type ColumnResponse struct {
	Name         string `json:"name"`
	DatabaseType string `json:"database_type,omitempty"`
}

type QueryResultResponse struct {
	Columns  []ColumnResponse `json:"columns"`
	Rows     []entity.Row     `json:"rows"`
	RowCount int              `json:"row_count"`
}

type SavedQueryResponse struct {
	Name    string `json:"name"`
	Query   string `json:"query"`
	Builtin bool   `json:"builtin"`
}

type SavedQueryListResponse struct {
	DefaultQuery string               `json:"default_query"`
	Queries      []SavedQueryResponse `json:"queries"`
}

// ExportFile is a rendered query result ready for download.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// LiveSnapshotResponse is one message pushed to a live query client.
type LiveSnapshotResponse struct {
	SubscriptionID string               `json:"subscription_id"`
	At             time.Time            `json:"at"`
	Result         *QueryResultResponse `json:"result,omitempty"`
	Error          string               `json:"error,omitempty"`
}
