package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m-mizutani/goerr/v2"

	"github.com/ipai-lab/taskboard/pkg/service/remote"
	"github.com/ipai-lab/taskboard/pkg/usecase"
	"github.com/ipai-lab/taskboard/pkg/utils/errutil"
	"github.com/ipai-lab/taskboard/pkg/utils/safe"
)

func respondJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(r.Context(), w, data)
}

// respondError maps domain sentinels to HTTP status codes
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, usecase.ErrBoardNotFound),
		errors.Is(err, usecase.ErrCardNotFound):
		status = http.StatusNotFound
	case errors.Is(err, usecase.ErrStageNotInBoard),
		errors.Is(err, usecase.ErrTagNotInBoard),
		errors.Is(err, usecase.ErrUnknownPartner),
		errors.Is(err, usecase.ErrUnknownMention),
		errors.Is(err, usecase.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, usecase.ErrPermissionDenied):
		status = http.StatusForbidden
	case errors.Is(err, usecase.ErrStaleMutation):
		status = http.StatusConflict
	case errors.Is(err, remote.ErrContractVersion):
		status = http.StatusInternalServerError
	}

	errutil.HandleHTTP(r.Context(), w, err, status)
}
