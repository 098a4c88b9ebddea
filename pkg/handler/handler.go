package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/AccelByte/extend-balloon-factory/pkg/common"
	"github.com/AccelByte/extend-balloon-factory/pkg/game"
	"github.com/AccelByte/extend-balloon-factory/pkg/level1"
	"github.com/AccelByte/extend-balloon-factory/pkg/level2"
	"github.com/AccelByte/extend-balloon-factory/pkg/state"
)

const maxBodyBytes = 1 << 16

var errBadRequest = errors.New("bad request")

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Error string `json:"error"`
}

type stepRequest struct {
	Step *int `json:"step"`
}

type temperatureRequest struct {
	Temperature *int `json:"temperature"`
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, game.ErrInvalidInput),
		errors.Is(err, state.ErrInvalidStrategy):
		return http.StatusBadRequest
	case errors.Is(err, game.ErrLevelLocked):
		return http.StatusNotFound
	case errors.Is(err, game.ErrNotRunning),
		errors.Is(err, game.ErrRunning),
		errors.Is(err, level1.ErrLevelFinished),
		errors.Is(err, level1.ErrNoBalloon),
		errors.Is(err, level2.ErrLevelFinished):
		return http.StatusConflict
	case errors.Is(err, game.ErrClosed):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(scope *common.Scope, w http.ResponseWriter, code int, v interface{}) {
	if v == nil {
		w.WriteHeader(code)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		scope.Log.Errorf("failed to write response: %v", err)
	}
}

func writeError(scope *common.Scope, w http.ResponseWriter, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		scope.TraceError(err)
		scope.Log.Errorf("request failed: %v", err)
	} else {
		scope.Log.Debugf("request rejected (%d): %v", code, err)
	}
	writeJSON(scope, w, code, errorResponse{Error: err.Error()})
}

func decodeBody(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: malformed JSON body: %v", errBadRequest, err)
	}
	return nil
}

func pathInt(r *http.Request, name string) (int, error) {
	v, err := strconv.Atoi(r.PathValue(name))
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", errBadRequest, name)
	}
	return v, nil
}
