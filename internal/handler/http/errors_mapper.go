package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-video-vault/internal/service"
	"github.com/MKhiriev/go-video-vault/internal/store"
	"github.com/MKhiriev/go-video-vault/internal/utils"
	"github.com/MKhiriev/go-video-vault/models"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,

	service.ErrSenderNotFound:       http.StatusBadRequest,
	service.ErrForbiddenOperation:   http.StatusForbidden,
	service.ErrMissingSigningKeys:   http.StatusInternalServerError,
	service.ErrEmptyPayload:         http.StatusBadRequest,
	service.ErrOrderNotFound:        http.StatusNotFound,
	service.ErrNotAuthorized:        http.StatusForbidden,
	service.ErrArtifactMissing:      http.StatusBadRequest,
	service.ErrCorruptArtifact:      http.StatusBadRequest,
	service.ErrSignerKeyUnavailable: http.StatusBadRequest,
	service.ErrTamperedContent:      http.StatusBadRequest,

	store.ErrLoginAlreadyExists: http.StatusConflict,
	store.ErrNoUserWasFound:     http.StatusNotFound,
	store.ErrOrderNotFound:      http.StatusNotFound,

	store.ErrBuildingSQLQuery: http.StatusInternalServerError,
	store.ErrExecutingQuery:   http.StatusInternalServerError,
	store.ErrScanningRow:      http.StatusInternalServerError,
	store.ErrScanningRows:     http.StatusInternalServerError,
}

func statusFromError(err error) (int, bool) {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status, true
		}
	}
	return http.StatusInternalServerError, false
}

// writeServiceError renders err as a JSON error body. Unmapped errors get a
// generic 500 so internal details never reach the client.
func writeServiceError(w http.ResponseWriter, err error) {
	status, known := statusFromError(err)
	message := err.Error()
	if !known {
		message = http.StatusText(http.StatusInternalServerError)
	}
	utils.WriteJSON(w, models.ErrorResponse{Error: message}, status)
}
