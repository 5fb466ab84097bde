package dto

import (
	"patient-record-manager/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// DashboardResponse holds scalar metrics keyed by analytics id and the
// grouped series keyed the same way. Metrics that failed read "N/A".
type DashboardResponse struct {
	Metrics           map[string]string       `json:"metrics"`
	Series            map[string][]entity.Row `json:"series"`
	InsuredPercentage decimal.NullDecimal     `json:"insured_percentage"`
}
