package app

import (
	"database/sql"
	"net/http"

	"github.com/rs/zerolog"

	transport "github.com/ApexSites26/route-care-app-78-sub000/internal/http"
	"github.com/ApexSites26/route-care-app-78-sub000/internal/http/handlers"
	"github.com/ApexSites26/route-care-app-78-sub000/internal/repository"
	"github.com/ApexSites26/route-care-app-78-sub000/internal/service"
)

type App struct {
	handler http.Handler
}

func New(db *sql.DB, identityBaseURL string, logger zerolog.Logger) *App {
	txManager := repository.NewPostgresTxManager(db)
	identityClient := service.NewIdentityHTTPClient(identityBaseURL, service.DefaultIdentityHTTPClient())

	exceptionService := service.NewExceptionService(txManager, identityClient)
	rotaService := service.NewRotaService(txManager)

	exceptionHandler := handlers.NewExceptionHandler(exceptionService)
	rotaHandler := handlers.NewRotaHandler(rotaService)
	router := transport.NewRouter(logger, exceptionHandler, rotaHandler)

	return &App{handler: router.Handler()}
}

func (a *App) Handler() http.Handler {
	return a.handler
}
