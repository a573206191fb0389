package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/feiyue-app/feiyue-server/internal/service"
	"github.com/feiyue-app/feiyue-server/internal/store"
	"github.com/feiyue-app/feiyue-server/internal/validators"
	"github.com/feiyue-app/feiyue-server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", service.ErrSelectionTooLong, http.StatusBadRequest},
		{"wrong password", service.ErrWrongPassword, http.StatusUnauthorized},
		{"not permitted", service.ErrUnauthorized, http.StatusForbidden},
		{"not found", store.ErrItemNotFound, http.StatusNotFound},
		{"duplicate", store.ErrEmailAlreadyExists, http.StatusConflict},
		{"replayed claim", store.ErrClaimAlreadyRedeemed, http.StatusConflict},
		{"wrapped", fmt.Errorf("redeem: %w", store.ErrClaimAlreadyRedeemed), http.StatusConflict},
		{"unclassified", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromError(tt.err))
		})
	}
}

// messageFromError must not leak unclassified error detail to the client.
func TestMessageFromError_Unclassified(t *testing.T) {
	message := messageFromError(errors.New("pq: connection refused at 10.0.0.5"))

	assert.Equal(t, http.StatusText(http.StatusInternalServerError), message)
}

func TestRespondError_KeepsWeakPasswordFeedback(t *testing.T) {
	weak := &validators.WeakPasswordError{
		Warning:     "this is a very common password",
		Suggestions: []string{"add another word or two"},
	}

	recorder := httptest.NewRecorder()
	respondError(recorder, fmt.Errorf("register: %w", weak))

	require.Equal(t, http.StatusBadRequest, recorder.Code)

	var envelope models.Envelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.True(t, envelope.Error)
	assert.Contains(t, envelope.Message, "this is a very common password")
	assert.Contains(t, envelope.Message, "add another word or two")
}

func TestRespondError_GenericEnvelope(t *testing.T) {
	recorder := httptest.NewRecorder()
	respondError(recorder, errors.New("boom"))

	require.Equal(t, http.StatusInternalServerError, recorder.Code)

	var envelope models.Envelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.True(t, envelope.Error)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), envelope.Message)
}
