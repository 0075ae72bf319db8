package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/trazia/backend/internal/domain"
	"github.com/trazia/backend/internal/log"
)

// ErrorResponse is the body of every non-2xx API response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	// Line and Field point at the offending ingredient line, when there is one
	Line  *int   `json:"line,omitempty"`
	Field string `json:"field,omitempty"`
}

type errorMapping struct {
	target error
	status int
	code   string
}

// errorMappings is checked in order; the first errors.Is match wins
var errorMappings = []errorMapping{
	{domain.ErrInvalidRequest, http.StatusBadRequest, "INVALID_REQUEST"},
	{domain.ErrEmptyRecipe, http.StatusBadRequest, "EMPTY_RECIPE"},
	{domain.ErrInvalidYield, http.StatusBadRequest, "INVALID_YIELD"},
	{domain.ErrInvalidIngredient, http.StatusBadRequest, "INVALID_INGREDIENT"},
	{domain.ErrUnsupportedRegion, http.StatusBadRequest, "UNSUPPORTED_REGION"},
	{domain.ErrInvalidServingSize, http.StatusBadRequest, "INVALID_SERVING_SIZE"},
	{domain.ErrRetentionFactorNotFound, http.StatusUnprocessableEntity, "RETENTION_FACTOR_NOT_FOUND"},
	{domain.ErrProductNotFound, http.StatusNotFound, "PRODUCT_NOT_FOUND"},
	{domain.ErrRateLimited, http.StatusTooManyRequests, "RATE_LIMITED"},
	{domain.ErrCatalogUnavailable, http.StatusServiceUnavailable, "CATALOG_UNAVAILABLE"},
	{domain.ErrUSDAAPIFailure, http.StatusBadGateway, "UPSTREAM_FAILURE"},
}

// statusForError maps an error to its HTTP status and error code
func statusForError(err error) (int, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.code
		}
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR"
}

// respondError writes err as an ErrorResponse. Internal errors are logged
// and their text is not exposed.
func respondError(c *gin.Context, err error) {
	status, code := statusForError(err)
	body := ErrorResponse{Error: err.Error(), Code: code}

	var lineErr *domain.IngredientError
	if errors.As(err, &lineErr) {
		line := lineErr.Index
		body.Line = &line
		body.Field = lineErr.Field
	}

	if status >= http.StatusInternalServerError {
		log.Error(c.Request.Context(), "request failed",
			"request_id", c.GetString(requestIDKey),
			"path", c.FullPath(),
			"status", status,
			"err", err,
		)
		if status == http.StatusInternalServerError {
			body.Error = "internal server error"
		}
	}
	c.AbortWithStatusJSON(status, body)
}
