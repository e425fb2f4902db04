package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/friendsofgo/errors"
	"github.com/nrfta/criteria-go"
	"github.com/nrfta/criteria-go/mapper"
	"github.com/nrfta/criteria-go/paging"
	"github.com/nrfta/criteria-go/sqlboiler"
)

// Error codes returned in ErrorResponse.Code.
const (
	CodeMalformedFilter   = "malformed_filter"
	CodeUnsupportedFilter = "unsupported_filter"
	CodeInvalidFilter     = "invalid_filter"
	CodeInvalidSort       = "invalid_sort"
	CodeInvalidPageSize   = "invalid_page_size"
	CodeInternal          = "internal_error"
)

// ErrorResponse is the JSON body of a failed request.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// classify maps an error to its status and code. Anything not caused by the
// request itself is an internal error and its message is not exposed.
func classify(err error) (int, ErrorResponse) {
	var sizeErr *paging.PageSizeError

	switch {
	case errors.As(err, &sizeErr):
		return http.StatusBadRequest, ErrorResponse{Code: CodeInvalidPageSize, Message: sizeErr.Error()}
	case errors.Is(err, criteria.ErrMalformedInput):
		return http.StatusBadRequest, ErrorResponse{Code: CodeMalformedFilter, Message: err.Error()}
	case errors.Is(err, criteria.ErrUnsupportedEncoding):
		return http.StatusBadRequest, ErrorResponse{Code: CodeUnsupportedFilter, Message: err.Error()}
	case errors.Is(err, mapper.ErrCoercion):
		return http.StatusBadRequest, ErrorResponse{Code: CodeInvalidFilter, Message: err.Error()}
	case errors.Is(err, sqlboiler.ErrUnknownSort):
		var sortErr *sqlboiler.UnknownSortError
		message := err.Error()
		if errors.As(err, &sortErr) {
			message = sortErr.Error()
		}
		return http.StatusBadRequest, ErrorResponse{Code: CodeInvalidSort, Message: message}
	default:
		return http.StatusInternalServerError, ErrorResponse{
			Code:    CodeInternal,
			Message: http.StatusText(http.StatusInternalServerError),
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(body)
}
