package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/booking-platform/services/internal/core/domain"
)

// HeaderIdempotencyKey is read on create requests.
const HeaderIdempotencyKey = "Idempotency-Key"

// HeaderIdempotentReplayed is set to "true" when a create was answered from a
// previously used Idempotency-Key.
const HeaderIdempotentReplayed = "Idempotent-Replayed"

var errInvalidPayload = echo.NewHTTPError(http.StatusBadRequest, "invalid payload")

// bindBody decodes the request body into dst. A JSON value of the wrong type
// is reported against its field; any other decoding failure is an invalid
// payload.
func bindBody(c echo.Context, dst any) error {
	err := c.Bind(dst)
	if err == nil {
		return nil
	}
	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) && ute.Field != "" {
		ve := domain.NewValidationError()
		ve.Add(ute.Field, fmt.Sprintf("%s must be a valid %s", ute.Field, jsonKind(ute.Type)))
		return ve
	}
	return errInvalidPayload
}

func jsonKind(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Bool:
		return "boolean"
	case reflect.String:
		return "string"
	default:
		return "value"
	}
}

// pathID parses the :id route parameter. Ids that are not integers cannot
// name a record, so they resolve to 404 like an unknown id.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.ErrNotFound
	}
	return id, nil
}

// isPartial reports whether the request is a PATCH.
func isPartial(c echo.Context) bool {
	return c.Request().Method == http.MethodPatch
}

// errorResponse documents the envelope rendered by the central error handler.
type errorResponse struct {
	Error  string              `json:"error"            example:"validation failed"`
	Fields map[string][]string `json:"fields,omitempty"`
}
