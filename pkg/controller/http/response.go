package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/crivello-lab/crivello/pkg/domain/types"
	"github.com/crivello-lab/crivello/pkg/utils/errutil"
	"github.com/crivello-lab/crivello/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

type errorResponse struct {
	Error string `json:"error"`
}

// statusFromError maps error tags attached by lower layers to HTTP status
// codes. Untagged errors are internal.
func statusFromError(err error) int {
	switch {
	case goerr.HasTag(err, types.TagValidation):
		return http.StatusBadRequest
	case goerr.HasTag(err, types.TagUnauthorized):
		return http.StatusUnauthorized
	case goerr.HasTag(err, types.TagForbidden):
		return http.StatusForbidden
	case goerr.HasTag(err, types.TagNotFound):
		return http.StatusNotFound
	case goerr.HasTag(err, types.TagNoData):
		return http.StatusBadRequest
	case goerr.HasTag(err, types.TagUnavailable):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// handleError writes a JSON error response. Server-side failures are logged
// with their goerr context and stack; client errors only get a warning.
func handleError(ctx context.Context, w http.ResponseWriter, err error) {
	status := statusFromError(err)

	if status >= http.StatusInternalServerError {
		_ = errutil.Handle(ctx, err, "request failed")
	} else {
		logging.From(ctx).Warn("request rejected",
			"status", status,
			"error", err.Error(),
		)
	}

	writeJSON(ctx, w, status, errorResponse{Error: err.Error()})
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		logging.From(ctx).Error("failed to marshal response", "error", err)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data) //nolint:errcheck // header already committed
}

// decodeJSON parses a request body into dst with a validation error on
// malformed input.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return goerr.Wrap(err, "invalid request body", goerr.T(types.TagValidation))
	}
	return nil
}
