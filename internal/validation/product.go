// Package validation checks untyped request payloads before they reach the
// services. Schema rules are declared as go-playground/validator tags; this
// package adds the type coercion a form post needs (numeric strings) and
// renders every violation into one aggregated 400.
package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/tbourn/farmstand/internal/apperr"
	"github.com/tbourn/farmstand/internal/domain"
)

// Delimiter joins field messages in the aggregated error.
const Delimiter = ","

// MethodOverrideField is the form/query key used for method override; it is
// never treated as an unknown payload key.
const MethodOverrideField = "_method"

// productSchema mirrors the product payload. Price is a pointer so that a
// missing price and a zero price are distinguishable.
type productSchema struct {
	Name     string   `json:"name"     validate:"required"`
	Price    *float64 `json:"price"    validate:"required,min=0"`
	Category string   `json:"category" validate:"required,oneof=fruit vegetable dairy"`
}

var productFields = []string{"name", "price", "category"}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func engine() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		validate = v
	})
	return validate
}

// Product validates a product payload. On success it returns the typed input;
// otherwise an *apperr.Error with status 400 whose message joins every
// violation with Delimiter.
func Product(payload map[string]any) (domain.ProductInput, error) {
	var (
		schema  productSchema
		present = map[string]bool{}
		msgs    = map[string]string{}
	)

	for _, k := range productFields {
		if _, ok := payload[k]; ok {
			present[k] = true
		}
	}

	if v, ok := payload["name"]; ok {
		if s, ok := v.(string); ok {
			schema.Name = s
		} else {
			msgs["name"] = fmt.Sprintf("%q must be a string", "name")
		}
	}
	if v, ok := payload["price"]; ok {
		if f, ok := Number(v); ok {
			schema.Price = &f
		} else {
			msgs["price"] = fmt.Sprintf("%q must be a number", "price")
		}
	}
	if v, ok := payload["category"]; ok {
		if s, ok := v.(string); ok {
			schema.Category = s
		} else {
			msgs["category"] = fmt.Sprintf("%q must be a string", "category")
		}
	}

	if err := engine().Struct(schema); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return domain.ProductInput{}, err
		}
		for _, fe := range verrs {
			field := fe.Field()
			if _, done := msgs[field]; done {
				continue
			}
			msgs[field] = describe(fe, present[field])
		}
	}

	out := make([]string, 0, len(msgs)+1)
	for _, k := range productFields {
		if m, ok := msgs[k]; ok {
			out = append(out, m)
		}
	}
	out = append(out, unknownKeys(payload)...)

	if len(out) > 0 {
		return domain.ProductInput{}, apperr.BadRequest(strings.Join(out, Delimiter))
	}
	return domain.ProductInput{
		Name:     schema.Name,
		Price:    *schema.Price,
		Category: schema.Category,
	}, nil
}

// FromForm flattens url.Values to a payload map, keeping the first value of
// each key.
func FromForm(form url.Values) map[string]any {
	out := make(map[string]any, len(form))
	for k, vv := range form {
		if len(vv) > 0 {
			out[k] = vv[0]
		}
	}
	return out
}

func describe(fe validator.FieldError, present bool) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		if present {
			return fmt.Sprintf("%q is not allowed to be empty", field)
		}
		return fmt.Sprintf("%q is required", field)
	case "min":
		return fmt.Sprintf("%q must be greater than or equal to %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%q must be one of [%s]", field, strings.Join(strings.Fields(fe.Param()), ", "))
	default:
		return fmt.Sprintf("%q failed on %s", field, fe.Tag())
	}
}

func unknownKeys(payload map[string]any) []string {
	var keys []string
	for k := range payload {
		if k == MethodOverrideField {
			continue
		}
		known := false
		for _, f := range productFields {
			if k == f {
				known = true
				break
			}
		}
		if !known {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, fmt.Sprintf("%q is not allowed", k))
	}
	return out
}

// Number coerces a payload value to a float64 the way Product does: JSON
// numbers pass through and numeric strings are parsed. NaN and ±Inf are
// rejected.
func Number(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		x, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = x
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}
		x, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = x
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
