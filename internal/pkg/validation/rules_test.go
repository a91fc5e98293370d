package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Year   string `validate:"academicyear"`
	Level  string `validate:"level"`
	Type   string `validate:"seriestype"`
	Prefix string `validate:"omitempty,codeprefix"`
}

func TestRegister(t *testing.T) {
	v := validator.New()
	require.NoError(t, Register(v))

	assert.NoError(t, v.Struct(sample{Year: "2023-2024", Level: "M1", Type: "td", Prefix: "INF"}))
	assert.Error(t, v.Struct(sample{Year: "2024-2023", Level: "M1", Type: "TD"}))
	assert.Error(t, v.Struct(sample{Year: "2023-2024", Level: "L4", Type: "TD"}))
	assert.Error(t, v.Struct(sample{Year: "2023-2024", Level: "L1", Type: "Quiz"}))
	assert.Error(t, v.Struct(sample{Year: "2023-2024", Level: "L1", Type: "TP", Prefix: "IN1"}))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("student@univ-alger.dz"))
	assert.False(t, IsValidEmail("no-at-sign"))
}
