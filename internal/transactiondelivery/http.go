// Package transactiondelivery manages delivery layer of transactions.
package transactiondelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/dvasilkov/ledgerbank/internal/domain"
	"github.com/dvasilkov/ledgerbank/internal/middleware"
	"github.com/dvasilkov/ledgerbank/pkg/errorspkg"
	"github.com/dvasilkov/ledgerbank/pkg/tokenpkg"
	"github.com/dvasilkov/ledgerbank/pkg/web"
)

// Service provides service layer interface needed by transaction delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transactiondelivery
type Service interface {
	UseBalance(ctx context.Context, ownerID int64, accountNumber string, amount int64) (domain.Transaction, error)
	CancelBalance(ctx context.Context, transactionID, accountNumber string, amount int64) (domain.Transaction, error)
	Get(ctx context.Context, transactionID string) (domain.Transaction, error)
}

// OwnerService resolves the authenticated username to an owner profile.
type OwnerService interface {
	Get(ctx context.Context, username string) (domain.OwnerWithoutPassword, error)
}

// Handler facilitates transaction delivery layer logic.
type Handler struct {
	service      Service
	ownerService OwnerService
}

// NewHandler returns transaction handler.
func NewHandler(ts Service, os OwnerService) *Handler {
	return &Handler{
		service:      ts,
		ownerService: os,
	}
}

type data struct {
	Transaction domain.Transaction `json:"transaction"`
}
type response struct {
	Data data `json:"data,omitempty"`
}

type useRequest struct {
	AccountNumber string `json:"account_number" binding:"required,accnum"`
	Amount        int64  `json:"amount" binding:"required,min=1"`
}

// Use handles http request to spend account balance.
func (h *Handler) Use(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req useRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()

		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})

			return
		}

		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	owner, err := h.ownerService.Get(ctx, authPayload.Username)
	if err != nil {
		if err == domain.ErrOwnerNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	transaction, err := h.service.UseBalance(ctx, owner.ID, req.AccountNumber, req.Amount)
	if err != nil {
		switch err {
		case domain.ErrOwnerNotFound, domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		case domain.ErrOwnerAccountMismatch:
			gctx.JSON(http.StatusForbidden, web.Error(err))
			return
		case domain.ErrAccountAlreadyClosed, domain.ErrAmountExceedsBalance:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{transaction}})
}

type cancelRequest struct {
	TransactionID string `json:"transaction_id" binding:"required,len=32,alphanum"`
	AccountNumber string `json:"account_number" binding:"required,accnum"`
	Amount        int64  `json:"amount" binding:"required,min=1"`
}

// Cancel handles http request to reverse a balance use in full.
func (h *Handler) Cancel(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req cancelRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()

		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})

			return
		}

		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	transaction, err := h.service.CancelBalance(ctx, req.TransactionID, req.AccountNumber, req.Amount)
	if err != nil {
		switch err {
		case domain.ErrTransactionNotFound, domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		case domain.ErrTransactionAccountMismatch:
			gctx.JSON(http.StatusForbidden, web.Error(err))
			return
		case domain.ErrCancelMustBeFull, domain.ErrOrderTooOldToCancel:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{transaction}})
}

type getRequest struct {
	TransactionID string `uri:"id" binding:"required,len=32,alphanum"`
}

// Get handles http request to query a recorded transaction.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req getRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()

		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})

			return
		}

		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	transaction, err := h.service.Get(ctx, req.TransactionID)
	if err != nil {
		if err == domain.ErrTransactionNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{transaction}})
}
