package http

import (
	"errors"
	"net/http"

	"github.com/feiyue-app/feiyue-server/internal/utils"
	"github.com/feiyue-app/feiyue-server/internal/validators"
	"github.com/feiyue-app/feiyue-server/models"
)

// respond writes a success envelope with the given payload.
func respond(w http.ResponseWriter, statusCode int, data any) {
	_, _ = utils.WriteJSON(w, models.Envelope{
		StatusCode: statusCode,
		Message:    http.StatusText(statusCode),
		Data:       data,
	}, statusCode)
}

// respondError maps err onto the error taxonomy and writes a failure
// envelope. Weak-password rejections keep their warning and suggestions in
// the message; every other unclassified error is reported generically.
func respondError(w http.ResponseWriter, err error) {
	status := statusFromError(err)
	message := messageFromError(err)

	var weak *validators.WeakPasswordError
	if errors.As(err, &weak) {
		message = weak.Error()
	}

	_, _ = utils.WriteJSON(w, models.Envelope{
		Error:      true,
		StatusCode: status,
		Message:    message,
	}, status)
}

// respondBadJSON rejects an unparsable request body.
func respondBadJSON(w http.ResponseWriter) {
	_, _ = utils.WriteJSON(w, models.Envelope{
		Error:      true,
		StatusCode: http.StatusBadRequest,
		Message:    "invalid JSON was passed",
	}, http.StatusBadRequest)
}
