package transactiondelivery

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/dvasilkov/ledgerbank/internal/accountdelivery"
	"github.com/dvasilkov/ledgerbank/internal/domain"
	"github.com/dvasilkov/ledgerbank/internal/middleware"
	"github.com/dvasilkov/ledgerbank/pkg/errorspkg"
	"github.com/dvasilkov/ledgerbank/pkg/randompkg"
	"github.com/dvasilkov/ledgerbank/pkg/tokenpkg"
	"github.com/dvasilkov/ledgerbank/pkg/web"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("accnum", accountdelivery.ValidAccountNumber); err != nil {
			os.Exit(1)
		}
	}

	os.Exit(m.Run())
}

func randomOwner() domain.OwnerWithoutPassword {
	return domain.OwnerWithoutPassword{
		ID:        randompkg.Int64Between(1, 1000),
		Username:  randompkg.Owner(),
		Name:      randompkg.Owner(),
		CreatedAt: time.Now().Truncate(time.Second).UTC(),
	}
}

func randomUseTransaction(number string) domain.Transaction {
	return domain.Transaction{
		TransactionID:   "5d0c3f30b32e4a2da6c4e9f2b1a7c839",
		AccountNumber:   number,
		Type:            domain.TransactionUse,
		Result:          domain.TransactionSuccess,
		Amount:          200,
		BalanceSnapshot: 9800,
		TransactedAt:    time.Now().Truncate(time.Second).UTC(),
	}
}

func TestUseAPI(t *testing.T) {
	owner := randomOwner()
	number := randompkg.AccountNumber()
	transaction := randomUseTransaction(number)
	tokenSymmetricKey := randompkg.String(32)

	tokenMaker, err := tokenpkg.NewPasetoMaker(tokenSymmetricKey)
	if err != nil {
		t.Fatalf("tokenpkg.NewPasetoMaker(%v) returned error: %v", tokenSymmetricKey, err)
	}

	authType := middleware.AuthTypeBearer
	duration := time.Minute

	testCases := []struct {
		name           string
		requestBody    gin.H
		setupAuth      func(t *testing.T, r *http.Request) error
		buildStubs     func(transactionService *MockService, ownerService *MockOwnerService)
		wantStatusCode int
		wantError      string
		checkData      func(data any)
	}{
		{
			name:        "OK",
			requestBody: gin.H{"account_number": number, "amount": transaction.Amount},
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, owner.Username, duration)
			},
			buildStubs: func(transactionService *MockService, ownerService *MockOwnerService) {
				ownerService.EXPECT().
					Get(gomock.Any(), gomock.Eq(owner.Username)).
					Times(1).
					Return(owner, nil)
				transactionService.EXPECT().
					UseBalance(gomock.Any(), gomock.Eq(owner.ID), gomock.Eq(number), gomock.Eq(transaction.Amount)).
					Times(1).
					Return(transaction, nil)
			},
			wantStatusCode: http.StatusOK,
			checkData: func(data any) {
				got, ok := data.(*struct {
					Transaction domain.Transaction `json:"transaction"`
				})
				if !ok {
					t.Fatalf(`res.Data=%v, failed type conversion`, data)
				}

				compareTransactedAt := cmpopts.EquateApproxTime(time.Second)
				if diff := cmp.Diff(transaction, got.Transaction, compareTransactedAt); diff != "" {
					t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name:        "NoAuthorization",
			requestBody: gin.H{"account_number": number, "amount": transaction.Amount},
			setupAuth: func(t *testing.T, r *http.Request) error {
				return nil
			},
			buildStubs: func(transactionService *MockService, ownerService *MockOwnerService) {
				ownerService.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
				transactionService.EXPECT().
					UseBalance(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      middleware.ErrAuthHeaderNotFound.Error(),
		},
		{
			name:        "InvalidAccountNumber",
			requestBody: gin.H{"account_number": "12ab", "amount": transaction.Amount},
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, owner.Username, duration)
			},
			buildStubs: func(transactionService *MockService, ownerService *MockOwnerService) {
				ownerService.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
				transactionService.EXPECT().
					UseBalance(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "AccountNumber must be a 10-digit account number",
		},
		{
			name:        "ZeroAmount",
			requestBody: gin.H{"account_number": number, "amount": 0},
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, owner.Username, duration)
			},
			buildStubs: func(transactionService *MockService, ownerService *MockOwnerService) {
				ownerService.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
				transactionService.EXPECT().
					UseBalance(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Amount is required",
		},
		{
			name:        "AccountNotFound",
			requestBody: gin.H{"account_number": number, "amount": transaction.Amount},
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, owner.Username, duration)
			},
			buildStubs: func(transactionService *MockService, ownerService *MockOwnerService) {
				ownerService.EXPECT().
					Get(gomock.Any(), gomock.Eq(owner.Username)).
					Times(1).
					Return(owner, nil)
				transactionService.EXPECT().
					UseBalance(gomock.Any(), gomock.Eq(owner.ID), gomock.Eq(number), gomock.Eq(transaction.Amount)).
					Times(1).
					Return(domain.Transaction{}, domain.ErrAccountNotFound)
			},
			wantStatusCode: http.StatusNotFound,
			wantError:      domain.ErrAccountNotFound.Error(),
		},
		{
			name:        "OwnerAccountMismatch",
			requestBody: gin.H{"account_number": number, "amount": transaction.Amount},
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, owner.Username, duration)
			},
			buildStubs: func(transactionService *MockService, ownerService *MockOwnerService) {
				ownerService.EXPECT().
					Get(gomock.Any(), gomock.Eq(owner.Username)).
					Times(1).
					Return(owner, nil)
				transactionService.EXPECT().
					UseBalance(gomock.Any(), gomock.Eq(owner.ID), gomock.Eq(number), gomock.Eq(transaction.Amount)).
					Times(1).
					Return(domain.Transaction{}, domain.ErrOwnerAccountMismatch)
			},
			wantStatusCode: http.StatusForbidden,
			wantError:      domain.ErrOwnerAccountMismatch.Error(),
		},
		{
			name:        "AmountExceedsBalance",
			requestBody: gin.H{"account_number": number, "amount": transaction.Amount},
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, owner.Username, duration)
			},
			buildStubs: func(transactionService *MockService, ownerService *MockOwnerService) {
				ownerService.EXPECT().
					Get(gomock.Any(), gomock.Eq(owner.Username)).
					Times(1).
					Return(owner, nil)
				transactionService.EXPECT().
					UseBalance(gomock.Any(), gomock.Eq(owner.ID), gomock.Eq(number), gomock.Eq(transaction.Amount)).
					Times(1).
					Return(domain.Transaction{}, domain.ErrAmountExceedsBalance)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      domain.ErrAmountExceedsBalance.Error(),
		},
		{
			name:        "InternalServerError",
			requestBody: gin.H{"account_number": number, "amount": transaction.Amount},
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, owner.Username, duration)
			},
			buildStubs: func(transactionService *MockService, ownerService *MockOwnerService) {
				ownerService.EXPECT().
					Get(gomock.Any(), gomock.Eq(owner.Username)).
					Times(1).
					Return(owner, nil)
				transactionService.EXPECT().
					UseBalance(gomock.Any(), gomock.Eq(owner.ID), gomock.Eq(number), gomock.Eq(transaction.Amount)).
					Times(1).
					Return(domain.Transaction{}, errorspkg.ErrInternal)
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      errorspkg.ErrInternal.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			transactionService := NewMockService(ctrl)
			ownerService := NewMockOwnerService(ctrl)
			transactionHandler := NewHandler(transactionService, ownerService)

			server := gin.New()
			server.Use(middleware.AuthMiddleware(tokenMaker))
			server.POST("/transactions/use", transactionHandler.Use)

			tc.buildStubs(transactionService, ownerService)

			body, err := json.Marshal(tc.requestBody)
			if err != nil {
				t.Fatalf("Encoding request body error: %v", err)
			}

			req, err := http.NewRequest(http.MethodPost, "/transactions/use", bytes.NewReader(body))
			if err != nil {
				t.Fatalf("Creating request error: %v", err)
			}

			if err = tc.setupAuth(t, req); err != nil {
				t.Fatalf("tc.setupAuth(t, %+v) returned error: %v", req, err)
			}

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			res := web.Response{
				Data: &struct {
					Transaction domain.Transaction `json:"transaction"`
				}{},
			}

			if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
				t.Errorf("Decoding response body error: %v", err)
			}

			if tc.wantStatusCode != http.StatusOK {
				if res.Error != tc.wantError {
					t.Errorf(`res.Error=%q, want %q`, res.Error, tc.wantError)
				}
			} else {
				tc.checkData(res.Data)
			}
		})
	}
}

func TestCancelAPI(t *testing.T) {
	owner := randomOwner()
	number := randompkg.AccountNumber()
	original := randomUseTransaction(number)
	tokenSymmetricKey := randompkg.String(32)

	tokenMaker, err := tokenpkg.NewPasetoMaker(tokenSymmetricKey)
	if err != nil {
		t.Fatalf("tokenpkg.NewPasetoMaker(%v) returned error: %v", tokenSymmetricKey, err)
	}

	authType := middleware.AuthTypeBearer
	duration := time.Minute

	cancelled := domain.Transaction{
		TransactionID:   "f3b6d1b0a4cf4f7e8a2c9d5e6f708192",
		AccountNumber:   number,
		Type:            domain.TransactionCancel,
		Result:          domain.TransactionSuccess,
		Amount:          original.Amount,
		BalanceSnapshot: original.BalanceSnapshot + original.Amount,
		TransactedAt:    time.Now().Truncate(time.Second).UTC(),
	}

	testCases := []struct {
		name           string
		requestBody    gin.H
		buildStubs     func(transactionService *MockService)
		wantStatusCode int
		wantError      string
		checkData      func(data any)
	}{
		{
			name: "OK",
			requestBody: gin.H{
				"transaction_id": original.TransactionID,
				"account_number": number,
				"amount":         original.Amount,
			},
			buildStubs: func(transactionService *MockService) {
				transactionService.EXPECT().
					CancelBalance(gomock.Any(), gomock.Eq(original.TransactionID), gomock.Eq(number), gomock.Eq(original.Amount)).
					Times(1).
					Return(cancelled, nil)
			},
			wantStatusCode: http.StatusOK,
			checkData: func(data any) {
				got, ok := data.(*struct {
					Transaction domain.Transaction `json:"transaction"`
				})
				if !ok {
					t.Fatalf(`res.Data=%v, failed type conversion`, data)
				}

				compareTransactedAt := cmpopts.EquateApproxTime(time.Second)
				if diff := cmp.Diff(cancelled, got.Transaction, compareTransactedAt); diff != "" {
					t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name: "InvalidTransactionID",
			requestBody: gin.H{
				"transaction_id": "short",
				"account_number": number,
				"amount":         original.Amount,
			},
			buildStubs: func(transactionService *MockService) {
				transactionService.EXPECT().
					CancelBalance(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "TransactionID must be 32 characters long",
		},
		{
			name: "TransactionNotFound",
			requestBody: gin.H{
				"transaction_id": original.TransactionID,
				"account_number": number,
				"amount":         original.Amount,
			},
			buildStubs: func(transactionService *MockService) {
				transactionService.EXPECT().
					CancelBalance(gomock.Any(), gomock.Eq(original.TransactionID), gomock.Eq(number), gomock.Eq(original.Amount)).
					Times(1).
					Return(domain.Transaction{}, domain.ErrTransactionNotFound)
			},
			wantStatusCode: http.StatusNotFound,
			wantError:      domain.ErrTransactionNotFound.Error(),
		},
		{
			name: "TransactionAccountMismatch",
			requestBody: gin.H{
				"transaction_id": original.TransactionID,
				"account_number": number,
				"amount":         original.Amount,
			},
			buildStubs: func(transactionService *MockService) {
				transactionService.EXPECT().
					CancelBalance(gomock.Any(), gomock.Eq(original.TransactionID), gomock.Eq(number), gomock.Eq(original.Amount)).
					Times(1).
					Return(domain.Transaction{}, domain.ErrTransactionAccountMismatch)
			},
			wantStatusCode: http.StatusForbidden,
			wantError:      domain.ErrTransactionAccountMismatch.Error(),
		},
		{
			name: "CancelMustBeFull",
			requestBody: gin.H{
				"transaction_id": original.TransactionID,
				"account_number": number,
				"amount":         original.Amount / 2,
			},
			buildStubs: func(transactionService *MockService) {
				transactionService.EXPECT().
					CancelBalance(gomock.Any(), gomock.Eq(original.TransactionID), gomock.Eq(number), gomock.Eq(original.Amount/2)).
					Times(1).
					Return(domain.Transaction{}, domain.ErrCancelMustBeFull)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      domain.ErrCancelMustBeFull.Error(),
		},
		{
			name: "OrderTooOldToCancel",
			requestBody: gin.H{
				"transaction_id": original.TransactionID,
				"account_number": number,
				"amount":         original.Amount,
			},
			buildStubs: func(transactionService *MockService) {
				transactionService.EXPECT().
					CancelBalance(gomock.Any(), gomock.Eq(original.TransactionID), gomock.Eq(number), gomock.Eq(original.Amount)).
					Times(1).
					Return(domain.Transaction{}, domain.ErrOrderTooOldToCancel)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      domain.ErrOrderTooOldToCancel.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			transactionService := NewMockService(ctrl)
			ownerService := NewMockOwnerService(ctrl)
			transactionHandler := NewHandler(transactionService, ownerService)

			server := gin.New()
			server.Use(middleware.AuthMiddleware(tokenMaker))
			server.POST("/transactions/cancel", transactionHandler.Cancel)

			tc.buildStubs(transactionService)

			body, err := json.Marshal(tc.requestBody)
			if err != nil {
				t.Fatalf("Encoding request body error: %v", err)
			}

			req, err := http.NewRequest(http.MethodPost, "/transactions/cancel", bytes.NewReader(body))
			if err != nil {
				t.Fatalf("Creating request error: %v", err)
			}

			if err = middleware.AddAuthorization(req, tokenMaker, authType, owner.Username, duration); err != nil {
				t.Fatalf("middleware.AddAuthorization(%+v) returned error: %v", req, err)
			}

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			res := web.Response{
				Data: &struct {
					Transaction domain.Transaction `json:"transaction"`
				}{},
			}

			if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
				t.Errorf("Decoding response body error: %v", err)
			}

			if tc.wantStatusCode != http.StatusOK {
				if res.Error != tc.wantError {
					t.Errorf(`res.Error=%q, want %q`, res.Error, tc.wantError)
				}
			} else {
				tc.checkData(res.Data)
			}
		})
	}
}

func TestGetAPI(t *testing.T) {
	owner := randomOwner()
	number := randompkg.AccountNumber()
	transaction := randomUseTransaction(number)
	tokenSymmetricKey := randompkg.String(32)

	tokenMaker, err := tokenpkg.NewPasetoMaker(tokenSymmetricKey)
	if err != nil {
		t.Fatalf("tokenpkg.NewPasetoMaker(%v) returned error: %v", tokenSymmetricKey, err)
	}

	authType := middleware.AuthTypeBearer
	duration := time.Minute

	testCases := []struct {
		name           string
		transactionID  string
		buildStubs     func(transactionService *MockService)
		wantStatusCode int
		wantError      string
		checkData      func(data any)
	}{
		{
			name:          "OK",
			transactionID: transaction.TransactionID,
			buildStubs: func(transactionService *MockService) {
				transactionService.EXPECT().
					Get(gomock.Any(), gomock.Eq(transaction.TransactionID)).
					Times(1).
					Return(transaction, nil)
			},
			wantStatusCode: http.StatusOK,
			checkData: func(data any) {
				got, ok := data.(*struct {
					Transaction domain.Transaction `json:"transaction"`
				})
				if !ok {
					t.Fatalf(`res.Data=%v, failed type conversion`, data)
				}

				compareTransactedAt := cmpopts.EquateApproxTime(time.Second)
				if diff := cmp.Diff(transaction, got.Transaction, compareTransactedAt); diff != "" {
					t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name:          "InvalidTransactionID",
			transactionID: "short",
			buildStubs: func(transactionService *MockService) {
				transactionService.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "TransactionID must be 32 characters long",
		},
		{
			name:          "TransactionNotFound",
			transactionID: transaction.TransactionID,
			buildStubs: func(transactionService *MockService) {
				transactionService.EXPECT().
					Get(gomock.Any(), gomock.Eq(transaction.TransactionID)).
					Times(1).
					Return(domain.Transaction{}, domain.ErrTransactionNotFound)
			},
			wantStatusCode: http.StatusNotFound,
			wantError:      domain.ErrTransactionNotFound.Error(),
		},
		{
			name:          "InternalServerError",
			transactionID: transaction.TransactionID,
			buildStubs: func(transactionService *MockService) {
				transactionService.EXPECT().
					Get(gomock.Any(), gomock.Eq(transaction.TransactionID)).
					Times(1).
					Return(domain.Transaction{}, errorspkg.ErrInternal)
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      errorspkg.ErrInternal.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			transactionService := NewMockService(ctrl)
			ownerService := NewMockOwnerService(ctrl)
			transactionHandler := NewHandler(transactionService, ownerService)

			server := gin.New()
			server.Use(middleware.AuthMiddleware(tokenMaker))
			server.GET("/transactions/:id", transactionHandler.Get)

			tc.buildStubs(transactionService)

			req, err := http.NewRequest(http.MethodGet, "/transactions/"+tc.transactionID, nil)
			if err != nil {
				t.Fatalf("Creating request error: %v", err)
			}

			if err = middleware.AddAuthorization(req, tokenMaker, authType, owner.Username, duration); err != nil {
				t.Fatalf("middleware.AddAuthorization(%+v) returned error: %v", req, err)
			}

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			res := web.Response{
				Data: &struct {
					Transaction domain.Transaction `json:"transaction"`
				}{},
			}

			if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
				t.Errorf("Decoding response body error: %v", err)
			}

			if tc.wantStatusCode != http.StatusOK {
				if res.Error != tc.wantError {
					t.Errorf(`res.Error=%q, want %q`, res.Error, tc.wantError)
				}
			} else {
				tc.checkData(res.Data)
			}
		})
	}
}
