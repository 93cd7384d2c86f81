package http

import (
	"errors"
	"net/http"

	appDomain "creditsea-backend/internal/domain/application"
	loanDomain "creditsea-backend/internal/domain/loan"
	userDomain "creditsea-backend/internal/domain/user"
	appUC "creditsea-backend/internal/usecase/application"

	"github.com/labstack/echo/v4"
)

// statusFor maps domain errors onto the HTTP error taxonomy:
// not-found 404, conflicts and bad input 400, everything unexpected 500.
// Auth (401) and permission (403) failures never reach here; the
// middleware rejects those before the handler runs.
func statusFor(err error) int {
	switch {
	case errors.Is(err, appDomain.ErrNotFound),
		errors.Is(err, loanDomain.ErrNotFound),
		errors.Is(err, loanDomain.ErrNoLoans),
		errors.Is(err, userDomain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, appDomain.ErrAlreadyVerified),
		errors.Is(err, appDomain.ErrAlreadyRejected),
		errors.Is(err, appDomain.ErrInvalidDecision),
		errors.Is(err, loanDomain.ErrAlreadyFunded),
		errors.Is(err, loanDomain.ErrInvalidTenure),
		errors.Is(err, appUC.ErrMissingFields),
		errors.Is(err, userDomain.ErrEmailTaken),
		errors.Is(err, userDomain.ErrInvalidCredentials),
		errors.Is(err, userDomain.ErrRoleUnchanged),
		errors.Is(err, userDomain.ErrUnknownRole):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func fail(c echo.Context, err error) error {
	code := statusFor(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		msg = "Internal Server Error"
	}
	return c.JSON(code, ErrorResponse{Message: msg})
}
