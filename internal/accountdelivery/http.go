// Package accountdelivery manages delivery layer of accounts.
package accountdelivery

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

// Service provides service layer interface needed by account delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package accountdelivery
type Service interface {
	Create(ctx context.Context, ownerID, initialBalance int64) (domain.Account, error)
	Close(ctx context.Context, ownerID int64, accountNumber string) (domain.Account, error)
	List(ctx context.Context, ownerID int64) ([]domain.Account, error)
}

// OwnerService resolves the authenticated username to an owner profile.
type OwnerService interface {
	Get(ctx context.Context, username string) (domain.OwnerWithoutPassword, error)
}

// Handler facilitates account delivery layer logic.
type Handler struct {
	service      Service
	ownerService OwnerService
}

// NewHandler returns account handler.
func NewHandler(as Service, os OwnerService) *Handler {
	return &Handler{
		service:      as,
		ownerService: os,
	}
}

func (h *Handler) authOwner(gctx *gin.Context) (domain.OwnerWithoutPassword, bool) {
	ctx := gctx.Request.Context()

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	owner, err := h.ownerService.Get(ctx, authPayload.Username)
	if err != nil {
		if err == domain.ErrOwnerNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return owner, false
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return owner, false
	}

	return owner, true
}

type data struct {
	Account domain.Account `json:"account"`
}
type response struct {
	Data data `json:"data,omitempty"`
}

type createRequest struct {
	InitialBalance int64 `json:"initial_balance" binding:"min=0"`
}

// Create handles http request to open an account.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req createRequest
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

	owner, ok := h.authOwner(gctx)
	if !ok {
		return
	}

	createdAccount, err := h.service.Create(ctx, owner.ID, req.InitialBalance)
	if err != nil {
		switch err {
		case domain.ErrOwnerNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		case domain.ErrAccountLimitExceeded, domain.ErrAccountNumberSpaceExhausted:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		case domain.ErrAccountNumberTaken:
			gctx.JSON(http.StatusConflict, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{createdAccount}})
}

type closeRequest struct {
	Number string `uri:"number" binding:"required,accnum"`
}

// Close handles http request to unregister an account.
func (h *Handler) Close(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req closeRequest
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

	owner, ok := h.authOwner(gctx)
	if !ok {
		return
	}

	closedAccount, err := h.service.Close(ctx, owner.ID, req.Number)
	if err != nil {
		switch err {
		case domain.ErrOwnerNotFound, domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		case domain.ErrOwnerAccountMismatch:
			gctx.JSON(http.StatusForbidden, web.Error(err))
			return
		case domain.ErrAccountAlreadyClosed, domain.ErrBalanceNotEmpty:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{closedAccount}})
}

type dataAccounts struct {
	Accounts []domain.Account `json:"accounts"`
}
type responseAccounts struct {
	Data dataAccounts `json:"data,omitempty"`
}

// List handles http request to list accounts in use.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	owner, ok := h.authOwner(gctx)
	if !ok {
		return
	}

	accounts, err := h.service.List(ctx, owner.ID)
	if err != nil {
		if err == domain.ErrOwnerNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, responseAccounts{Data: dataAccounts{accounts}})
}
