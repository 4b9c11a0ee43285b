package di

import (
	"go.uber.org/fx"

	"github.com/minjae-ko/tableorder/internal/app"
	"github.com/minjae-ko/tableorder/internal/config"
	"github.com/minjae-ko/tableorder/internal/logger"
	"github.com/minjae-ko/tableorder/internal/pkg/ordercode"
	"github.com/minjae-ko/tableorder/internal/server/http/handlers"
	"github.com/minjae-ko/tableorder/internal/server/http/router"
	"github.com/minjae-ko/tableorder/internal/storage/postgres"
	"github.com/minjae-ko/tableorder/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		ordercode.Module,
		postgres.Module,
		usecase.Module,
		fx.Provide(func(facade *app.OrderingFacade) handlers.OrderingFacade { return facade }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
