package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCode_Valid(t *testing.T) {
	cases := []string{"POC-001", "UC-123456", "PRJABC-0042"}
	for _, code := range cases {
		p := &ProjectCode{Code: code}
		assert.NoError(t, p.ValidateCode(), "should accept %q", code)
	}
}

func TestValidateCode_Empty(t *testing.T) {
	p := &ProjectCode{}
	err := p.ValidateCode()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}

func TestValidateCode_BadFormat(t *testing.T) {
	for _, code := range []string{"poc-001", "POC001", "POC-1", "P-001"} {
		p := &ProjectCode{Code: code}
		assert.Error(t, p.ValidateCode(), "should reject %q", code)
	}
}

func TestProjectCode_DisplayID(t *testing.T) {
	p := &ProjectCode{ID: "550e8400-e29b-41d4-a716-446655440000", Code: "POC-0042"}
	assert.Equal(t, "POC-0042", p.DisplayID())

	p.Code = ""
	assert.Equal(t, "550e8400", p.DisplayID())
}

func TestDailyStatus_WorkedMinutes(t *testing.T) {
	e := &DailyStatusEntry{Hours: 2, Minutes: 45}
	assert.Equal(t, 165, e.WorkedMinutes())
}
