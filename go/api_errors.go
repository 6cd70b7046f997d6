package usersserver

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	userapp "github.com/dolphin-software/users-service/internal/domains/users/application"
	userports "github.com/dolphin-software/users-service/internal/domains/users/ports"
	apierrors "github.com/dolphin-software/users-service/internal/shared/errors"
)

// newUserResponder maps user failures onto response bodies. Anything unrecognised becomes a 500.
func newUserResponder(clock func() time.Time) *apierrors.ChainedResponder {
	return apierrors.NewChainedResponder(clock,
		mapValidationError,
		mapUserNotFound,
		mapDuplicateEmail,
	)
}

func mapValidationError(c *gin.Context, r *apierrors.Responder, err error) bool {
	var verr *userapp.ValidationError
	if !errors.As(err, &verr) {
		return false
	}
	r.ValidationFailed(c, verr.Fields)
	return true
}

func mapUserNotFound(c *gin.Context, r *apierrors.Responder, err error) bool {
	var nf *userapp.UserNotFoundError
	if !errors.As(err, &nf) {
		return false
	}
	r.NotFound(c, nf.Message)
	return true
}

func mapDuplicateEmail(c *gin.Context, r *apierrors.Responder, err error) bool {
	if !errors.Is(err, userports.ErrDuplicateEmail) {
		return false
	}
	r.Respond(c, apierrors.ErrConflict.WithMessage(err.Error()))
	return true
}
