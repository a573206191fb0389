package http

import (
	"errors"
	"net/http"

	"github.com/feiyue-app/feiyue-server/internal/service"
	"github.com/feiyue-app/feiyue-server/internal/store"
	"github.com/feiyue-app/feiyue-server/internal/validators"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:         http.StatusBadRequest,
	service.ErrValidationFirstNameRequired: http.StatusBadRequest,
	service.ErrValidationBadEmail:          http.StatusBadRequest,
	service.ErrValidationBadPhone:          http.StatusBadRequest,
	service.ErrValidationBadImageURL:       http.StatusBadRequest,
	service.ErrValidationBadName:           http.StatusBadRequest,
	service.ErrValidationNegativeStock:     http.StatusBadRequest,
	service.ErrSelectionTooLong:            http.StatusBadRequest,
	service.ErrUnknownItems:                http.StatusBadRequest,
	service.ErrDuplicateItems:              http.StatusBadRequest,
	service.ErrEmptySelection:              http.StatusBadRequest,
	validators.ErrPasswordTooWeak:          http.StatusBadRequest,
	ErrNoOrderClaim:                        http.StatusBadRequest,

	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,

	service.ErrUnauthorized: http.StatusForbidden,

	store.ErrNoUserWasFound:   http.StatusNotFound,
	store.ErrCategoryNotFound: http.StatusNotFound,
	store.ErrItemNotFound:     http.StatusNotFound,

	service.ErrSameCategory:        http.StatusConflict,
	store.ErrEmailAlreadyExists:    http.StatusConflict,
	store.ErrPhoneAlreadyExists:    http.StatusConflict,
	store.ErrCategoryAlreadyExists: http.StatusConflict,
	store.ErrItemAlreadyExists:     http.StatusConflict,
	store.ErrClaimAlreadyRedeemed:  http.StatusConflict,
	store.ErrNegativeStock:         http.StatusBadRequest,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// messageFromError reduces err to its client-visible text. Only errors the
// map classifies leak their message; anything unexpected is reported as a
// generic internal error, with the detail staying in the server log.
func messageFromError(err error) string {
	for target := range errorStatusMap {
		if errors.Is(err, target) {
			return target.Error()
		}
	}
	return http.StatusText(http.StatusInternalServerError)
}
