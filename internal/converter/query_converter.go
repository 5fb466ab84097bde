package converter

import (
	"patient-record-manager/internal/delivery/dto"
	"patient-record-manager/internal/domain/entity"
)

// QueryResultToResponse converts a QueryResult to its DTO, never returning nil slices.
func QueryResultToResponse(result *entity.QueryResult) *dto.QueryResultResponse {
	resp := &dto.QueryResultResponse{
		Columns: []dto.ColumnResponse{},
		Rows:    []entity.Row{},
	}
	if result == nil {
		return resp
	}

	for _, c := range result.Columns {
		resp.Columns = append(resp.Columns, dto.ColumnResponse{Name: c.Name, DatabaseType: c.DatabaseType})
	}
	if result.Rows != nil {
		resp.Rows = result.Rows
	}
	resp.RowCount = len(resp.Rows)
	return resp
}

// SavedQueriesToResponses tags each saved query with whether it is built in.
func SavedQueriesToResponses(queries []entity.SavedQuery, builtin bool) []dto.SavedQueryResponse {
	responses := make([]dto.SavedQueryResponse, 0, len(queries))
	for _, q := range queries {
		responses = append(responses, dto.SavedQueryResponse{Name: q.Name, Query: q.Query, Builtin: builtin})
	}
	return responses
}
