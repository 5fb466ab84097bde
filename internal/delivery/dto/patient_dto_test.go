package dto

import (
	"testing"

	"patient-record-manager/pkg/validator"

	"github.com/stretchr/testify/assert"
)

func TestSeedPatientsRequest_CountBoundMatchesMaxSeedCount(t *testing.T) {
	v := validator.NewValidator()

	assert.NoError(t, v.Validate(&SeedPatientsRequest{Count: 0}))
	assert.NoError(t, v.Validate(&SeedPatientsRequest{Count: MaxSeedCount}))
	assert.Error(t, v.Validate(&SeedPatientsRequest{Count: MaxSeedCount + 1}))
	assert.Error(t, v.Validate(&SeedPatientsRequest{Count: -1}))
}
