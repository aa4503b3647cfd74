// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/dvasilkov/ledgerbank/internal/accountdelivery"
	"github.com/dvasilkov/ledgerbank/internal/accountrepo"
	"github.com/dvasilkov/ledgerbank/internal/accountservice"
	"github.com/dvasilkov/ledgerbank/internal/middleware"
	"github.com/dvasilkov/ledgerbank/internal/ownerdelivery"
	"github.com/dvasilkov/ledgerbank/internal/ownerrepo"
	"github.com/dvasilkov/ledgerbank/internal/ownerservice"
	"github.com/dvasilkov/ledgerbank/internal/sessiondelivery"
	"github.com/dvasilkov/ledgerbank/internal/sessionrepo"
	"github.com/dvasilkov/ledgerbank/internal/sessionservice"
	"github.com/dvasilkov/ledgerbank/internal/transactiondelivery"
	"github.com/dvasilkov/ledgerbank/internal/transactionrepo"
	"github.com/dvasilkov/ledgerbank/internal/transactionservice"
	"github.com/dvasilkov/ledgerbank/pkg/configpkg"
	"github.com/dvasilkov/ledgerbank/pkg/tokenpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	ownerRepo := ownerrepo.NewRepoPGS(conn)
	accountRepo := accountrepo.NewRepoPGS(conn)
	transactionRepo := transactionrepo.NewRepoPGS(conn)
	sessionRepo := sessionrepo.NewRepoPGS(conn)

	tokenMaker, err := tokenpkg.NewPasetoMaker(config.TokenSymmetricKey)
	if err != nil {
		return nil, errors.New("cannot create token maker")
	}

	ownerService := ownerservice.New(ownerRepo)
	accountService := accountservice.New(accountRepo, ownerRepo)
	transactionService := transactionservice.New(transactionRepo, accountRepo, ownerRepo, config.RecordCancelFailures)
	sessionService, err := sessionservice.New(sessionRepo, config, tokenMaker)

	if err != nil {
		return nil, errors.New("cannot initialize session service")
	}

	ownerHandler := ownerdelivery.NewHandler(ownerService, sessionService)
	accountHandler := accountdelivery.NewHandler(accountService, ownerService)
	transactionHandler := transactiondelivery.NewHandler(transactionService, ownerService)
	sessionHandler := sessiondelivery.NewHandler(sessionService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.POST("/owners", ownerHandler.Create)
	engine.POST("/owners/login", ownerHandler.Login)
	engine.POST("/sessions", sessionHandler.RenewAccessToken)

	authRoutes := engine.Group("/").Use(middleware.AuthMiddleware(sessionService.TokenMaker))

	authRoutes.POST("/accounts", accountHandler.Create)
	authRoutes.GET("/accounts", accountHandler.List)
	authRoutes.DELETE("/accounts/:number", accountHandler.Close)

	authRoutes.POST("/transactions/use", transactionHandler.Use)
	authRoutes.POST("/transactions/cancel", transactionHandler.Cancel)
	authRoutes.GET("/transactions/:id", transactionHandler.Get)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation("accnum", accountdelivery.ValidAccountNumber)
		if err != nil {
			return nil, errors.New("cannot register account number validator")
		}
	}

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
