package handling

import (
	"errors"
	"net/http"

	"github.com/MonkyMars/gecho"
	"github.com/mytheresa/storefront-catalog/models"
)

// HandleError writes the response matching a repository error. Errors the
// caller cannot fix are logged and reported as msg.
func HandleError(err error, msg string, logger *gecho.Logger, w http.ResponseWriter) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		gecho.NotFound(w, gecho.WithMessage(err.Error()), gecho.Send())
		return
	case errors.Is(err, models.ErrConstraintViolation):
		logger.Warn("Write rejected by constraint", gecho.Field("error", err))
		gecho.Conflict(w, gecho.WithMessage(err.Error()), gecho.Send())
		return
	case errors.Is(err, models.ErrInvalidName),
		errors.Is(err, models.ErrInvalidRating),
		errors.Is(err, models.ErrCyclicParent),
		errors.Is(err, ErrInvalidID):
		gecho.BadRequest(w, gecho.WithMessage(err.Error()), gecho.Send())
		return
	case errors.Is(err, ErrMissingUser):
		gecho.Unauthorized(w, gecho.WithMessage(err.Error()), gecho.Send())
		return
	}

	logger.Error("An error occurred", gecho.Field("error", err), gecho.Field("msg", msg), gecho.WithCallerSkip(3))

	gecho.InternalServerError(w, gecho.WithMessage(msg), gecho.Send())
}

// InvalidBody reports a body that failed to decode or validate.
func InvalidBody(err error, logger *gecho.Logger, w http.ResponseWriter) {
	logger.Debug("Failed to extract and validate body", gecho.Field("error", err))

	var ve *ValidationError
	if errors.As(err, &ve) {
		gecho.BadRequest(w, gecho.WithMessage("invalid request body"), gecho.WithData(ve), gecho.Send())
		return
	}
	gecho.BadRequest(w, gecho.WithMessage("invalid request body"), gecho.Send())
}
