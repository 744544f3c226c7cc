package validation

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbourn/farmstand/internal/apperr"
)

func requireBadRequest(t *testing.T, err error) string {
	t.Helper()
	ae, ok := apperr.As(err)
	require.True(t, ok, "expected *apperr.Error, got %T (%v)", err, err)
	require.Equal(t, http.StatusBadRequest, ae.StatusCode())
	return ae.Message
}

func TestProduct_Valid(t *testing.T) {
	in, err := Product(map[string]any{"name": "Kale", "price": 2.5, "category": "vegetable"})
	require.NoError(t, err)
	assert.Equal(t, "Kale", in.Name)
	assert.Equal(t, 2.5, in.Price)
	assert.Equal(t, "vegetable", in.Category)
}

func TestProduct_ZeroPriceAndNumericString(t *testing.T) {
	in, err := Product(map[string]any{"name": "Free Milk", "price": "0", "category": "dairy", "_method": "PUT"})
	require.NoError(t, err)
	assert.Equal(t, 0.0, in.Price)

	in, err = Product(map[string]any{"name": "Melon", "price": json.Number("4.99"), "category": "fruit"})
	require.NoError(t, err)
	assert.Equal(t, 4.99, in.Price)
}

func TestProduct_NegativePriceRejected(t *testing.T) {
	for _, p := range []any{-1, -0.01, "-5"} {
		_, err := Product(map[string]any{"name": "Kale", "price": p, "category": "vegetable"})
		msg := requireBadRequest(t, err)
		assert.Equal(t, `"price" must be greater than or equal to 0`, msg)
	}
}

func TestProduct_CategoryOutsideEnumRejected(t *testing.T) {
	for _, c := range []string{"meat", "Fruit", "FRUIT", "fruits"} {
		_, err := Product(map[string]any{"name": "Kale", "price": 1, "category": c})
		msg := requireBadRequest(t, err)
		assert.Equal(t, `"category" must be one of [fruit, vegetable, dairy]`, msg)
	}
}

func TestProduct_AggregatesAllViolations(t *testing.T) {
	_, err := Product(map[string]any{"price": "abc", "category": "", "colour": "green"})
	msg := requireBadRequest(t, err)
	assert.Equal(t,
		`"name" is required,"price" must be a number,"category" is not allowed to be empty,"colour" is not allowed`,
		msg)
}

func TestProduct_EmptyPayload(t *testing.T) {
	_, err := Product(map[string]any{})
	msg := requireBadRequest(t, err)
	assert.Equal(t, `"name" is required,"price" is required,"category" is required`, msg)
}

func TestProduct_WrongTypes(t *testing.T) {
	_, err := Product(map[string]any{"name": 12, "price": true, "category": []any{"fruit"}})
	msg := requireBadRequest(t, err)
	assert.Equal(t, `"name" must be a string,"price" must be a number,"category" must be a string`, msg)
}

func TestNumber(t *testing.T) {
	cases := []struct {
		in   any
		want float64
		ok   bool
	}{
		{2.5, 2.5, true},
		{float32(1.5), 1.5, true},
		{3, 3, true},
		{int64(4), 4, true},
		{json.Number("4.99"), 4.99, true},
		{" 1.50 ", 1.5, true},
		{"", 0, false},
		{"abc", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
		{true, 0, false},
		{nil, 0, false},
	}
	for _, tc := range cases {
		got, ok := Number(tc.in)
		assert.Equal(t, tc.ok, ok, "%#v", tc.in)
		assert.InDelta(t, tc.want, got, 1e-9, "%#v", tc.in)
	}
}

func TestFromForm(t *testing.T) {
	form := url.Values{"name": {"Kale", "ignored"}, "price": {"2"}, "empty": {}}
	got := FromForm(form)
	assert.Equal(t, map[string]any{"name": "Kale", "price": "2"}, got)
}
