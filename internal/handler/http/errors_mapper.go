package http

import (
	"errors"
	"net/http"

	"github.com/avkhasev/tasktrack/internal/logger"
	"github.com/avkhasev/tasktrack/internal/service"
	"github.com/avkhasev/tasktrack/internal/store"
	"github.com/avkhasev/tasktrack/internal/utils"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrInvalidCredentials:      http.StatusUnauthorized,
	service.ErrTokenExpired:            http.StatusUnauthorized,
	service.ErrTokenInvalid:            http.StatusUnauthorized,
	service.ErrTokenCreationFailed:     http.StatusInternalServerError,
	service.ErrValidationEmptyTitle:    http.StatusBadRequest,
	service.ErrValidationTitleTooLong:  http.StatusBadRequest,
	service.ErrValidationBadPriority:   http.StatusBadRequest,
	service.ErrValidationBadEmail:      http.StatusBadRequest,
	service.ErrValidationBadPassword:   http.StatusBadRequest,
	service.ErrValidationBadAvatarType: http.StatusBadRequest,

	store.ErrDuplicateIdentity: http.StatusConflict,
	store.ErrUserNotFound:      http.StatusNotFound,
	store.ErrTaskNotFound:      http.StatusNotFound,

	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError maps err to an HTTP status via [statusFromError] and writes a
// JSON error body. Server-side failures are logged with the full error chain
// but reported to the client with the generic status text only, so internal
// details never leak past the transport boundary.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)
	status := statusFromError(err)

	message := err.Error()
	if status >= http.StatusInternalServerError {
		message = http.StatusText(status)
	}

	log.Err(err).Int("status", status).Send()
	utils.WriteJSON(w, errResponse{Error: message}, status)
}
