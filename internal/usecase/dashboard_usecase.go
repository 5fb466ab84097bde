package usecase

import (
	"context"

	"patient-record-manager/internal/delivery/dto"
	"patient-record-manager/internal/domain/entity"
	"patient-record-manager/internal/domain/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/iter"
)

// NotAvailable is shown for a metric whose query failed or returned nothing.
const NotAvailable = "N/A"

// scalarMetrics are read from the first row's column of the same name.
var scalarMetrics = map[string]bool{
	entity.AnalyticsTotalPatients:       true,
	entity.AnalyticsRecentRegistrations: true,
	entity.AnalyticsInsuranceStatus:     true,
	entity.AnalyticsMissingInfo:         true,
}

type DashboardUsecase interface {
	Get(ctx context.Context) *dto.DashboardResponse
}

type dashboardUsecase struct {
	log       *logrus.Logger
	dialect   entity.Dialect
	queryRepo repository.QueryRepository
}

func NewDashboardUsecase(log *logrus.Logger, dialect entity.Dialect, queryRepo repository.QueryRepository) DashboardUsecase {
	return &dashboardUsecase{log: log, dialect: dialect, queryRepo: queryRepo}
}

type analyticsOutcome struct {
	query  entity.AnalyticsQuery
	result *entity.QueryResult
}

// Get runs the analytics battery concurrently. A failing query only leaves
// its own slot at the default.
func (u *dashboardUsecase) Get(ctx context.Context) *dto.DashboardResponse {
	outcomes := iter.Map(entity.DashboardQueries(u.dialect), func(q *entity.AnalyticsQuery) analyticsOutcome {
		result, err := u.queryRepo.Execute(ctx, q.Query)
		if err != nil {
			u.log.Warnf("Failed to run dashboard query %s: %+v", q.ID, err)
			return analyticsOutcome{query: *q}
		}
		return analyticsOutcome{query: *q, result: result}
	})

	resp := &dto.DashboardResponse{
		Metrics: make(map[string]string),
		Series:  make(map[string][]entity.Row),
	}
	for _, o := range outcomes {
		if scalarMetrics[o.query.ID] {
			resp.Metrics[o.query.ID] = scalar(o.result, o.query.ID)
			continue
		}
		rows := []entity.Row{}
		if o.result != nil && o.result.Rows != nil {
			rows = o.result.Rows
		}
		resp.Series[o.query.ID] = rows
	}

	resp.InsuredPercentage = insuredPercentage(resp.Metrics[entity.AnalyticsInsuranceStatus], resp.Metrics[entity.AnalyticsTotalPatients])
	return resp
}

func scalar(result *entity.QueryResult, column string) string {
	if result == nil || len(result.Rows) == 0 {
		return NotAvailable
	}
	v, ok := result.Rows[0].Get(column)
	if !ok || v.IsNull() {
		return NotAvailable
	}
	return v.String()
}

// insuredPercentage is insured/total*100 rounded to one place; invalid when
// either metric is unavailable or total is zero.
func insuredPercentage(insured, total string) decimal.NullDecimal {
	i, err := decimal.NewFromString(insured)
	if err != nil {
		return decimal.NullDecimal{}
	}
	t, err := decimal.NewFromString(total)
	if err != nil || t.IsZero() {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(i.Div(t).Mul(decimal.NewFromInt(100)).Round(1))
}
