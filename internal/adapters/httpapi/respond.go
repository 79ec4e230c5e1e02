package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/andrescamacho/colonial-go/internal/adapters/api"
	"github.com/andrescamacho/colonial-go/internal/application/common"
	"github.com/andrescamacho/colonial-go/internal/domain/market"
	"github.com/andrescamacho/colonial-go/internal/domain/project"
	"github.com/andrescamacho/colonial-go/internal/domain/shared"
	"github.com/andrescamacho/colonial-go/internal/infrastructure/logging"
)

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Status  int               `json:"status"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// statusFor maps an application error to the HTTP status returned to the
// browser. Backend failures keep the backend's status.
func statusFor(err error) int {
	switch {
	case shared.IsValidationError(err):
		return http.StatusBadRequest
	case errors.Is(err, project.ErrProjectNotFound),
		errors.Is(err, project.ErrCarrierNotFound),
		errors.Is(err, market.ErrNoSearchResults):
		return http.StatusNotFound
	case errors.Is(err, project.ErrProjectExists),
		errors.Is(err, market.ErrStaleResults):
		return http.StatusConflict
	case errors.Is(err, api.ErrCircuitOpen):
		return http.StatusServiceUnavailable
	case errors.Is(err, api.ErrMalformedPayload), errors.Is(err, api.ErrAccepted):
		return http.StatusBadGateway
	}
	if code := api.StatusCode(err); code >= 400 {
		return code
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	resp := ErrorResponse{Status: status, Message: err.Error()}

	var many shared.ValidationErrors
	var one *shared.ValidationError
	switch {
	case errors.As(err, &many):
		resp.Fields = make(map[string]string, len(many))
		for _, e := range many {
			resp.Fields[e.Field] = e.Message
		}
	case errors.As(err, &one):
		resp.Fields = map[string]string{one.Field: one.Message}
	}

	if status >= 500 {
		common.LoggerFromContext(r.Context()).Error("request failed",
			logging.String("path", r.URL.Path), logging.Int("status", status), logging.Err(err))
	}
	writeJSON(w, status, resp)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return shared.NewValidationError("body", err.Error())
	}
	return nil
}
