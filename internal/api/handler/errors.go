package handler

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/nobanko/banking-core/internal/domain/card"
	"github.com/nobanko/banking-core/internal/domain/client"
	"github.com/nobanko/banking-core/internal/domain/credit"
	"github.com/nobanko/banking-core/internal/domain/manager"
	"github.com/nobanko/banking-core/internal/domain/money"
	"github.com/nobanko/banking-core/internal/domain/shared"
	"github.com/nobanko/banking-core/internal/domain/transfer"
)

// respondDomainError maps domain errors onto HTTP status codes. Unrecognized
// errors are logged and answered with a 500.
func respondDomainError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, money.ErrInvalidAmount):
		RespondBadRequest(c, "Amount must be a valid positive number")
	case errors.Is(err, transfer.ErrInvalidDestination):
		RespondBadRequest(c, "Destination account does not belong to a client")
	case errors.Is(err, transfer.ErrSameAccount):
		RespondBadRequest(c, "Cannot transfer to the same account")
	case errors.Is(err, client.ErrInsufficientFunds):
		RespondUnprocessable(c, "Insufficient funds")
	case errors.Is(err, shared.ErrNoManagerAssigned):
		RespondUnprocessable(c, "Client has no assigned manager")
	case errors.Is(err, shared.ErrNotEligible):
		RespondUnprocessable(c, "Client is not eligible for the requested card product")
	case errors.Is(err, shared.ErrUnauthorizedManager):
		RespondForbidden(c, "Request may only be resolved by its assigned manager")
	case errors.Is(err, shared.ErrAlreadyResolved):
		RespondConflict(c, "Request has already been resolved")
	case isNotFound(err):
		RespondNotFound(c, "")
	case isDuplicate(err):
		RespondConflict(c, "Resource already exists")
	default:
		logger.Error("Unhandled service error", "error", err)
		RespondInternalError(c)
	}
}

func isNotFound(err error) bool {
	var (
		clientNotFound   client.ErrClientNotFound
		managerNotFound  manager.ErrManagerNotFound
		creditNotFound   credit.ErrRequestNotFound
		cardReqNotFound  card.ErrRequestNotFound
		productNotFound  card.ErrProductNotFound
		cardNotFound     card.ErrCardNotFound
		transferNotFound transfer.ErrTransferNotFound
	)
	return errors.As(err, &clientNotFound) ||
		errors.As(err, &managerNotFound) ||
		errors.As(err, &creditNotFound) ||
		errors.As(err, &cardReqNotFound) ||
		errors.As(err, &productNotFound) ||
		errors.As(err, &cardNotFound) ||
		errors.As(err, &transferNotFound)
}

func isDuplicate(err error) bool {
	var (
		duplicateAccount client.ErrDuplicateAccount
		duplicateCode    manager.ErrDuplicateCode
		duplicateNumber  card.ErrDuplicateNumber
	)
	return errors.As(err, &duplicateAccount) ||
		errors.As(err, &duplicateCode) ||
		errors.As(err, &duplicateNumber)
}
