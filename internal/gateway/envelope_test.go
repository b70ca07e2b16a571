package gateway

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelope_Err(t *testing.T) {
	assert.NoError(t, OK(1).Err())
	assert.ErrorIs(t, NotFound[int]("shop").Err(), ErrNotFound)
	assert.ErrorIs(t, Invalid[int]("bad").Err(), ErrValidation)
	assert.ErrorIs(t, Envelope[int]{}.Err(), ErrNotFound)
}

func TestEnvelope_JSONShape(t *testing.T) {
	data, err := json.Marshal(NotFound[[]string]("product"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":false,"data":null,"message":"product not found","code":"not_found"}`, string(data))

	data, err = json.Marshal(OK([]string{"a"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":true,"data":["a"]}`, string(data))
}

func TestRecast_KeepsFailure(t *testing.T) {
	got := recast[string](Invalid[int]("nope"))

	assert.False(t, got.Status)
	assert.Equal(t, CodeValidation, got.Code)
	assert.Equal(t, "nope", got.Message)
}
