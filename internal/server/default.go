package server

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	catalogpersistence "github.com/docesofia/storefront/modules/catalog/infrastructure/persistence"
	catalogcontrollers "github.com/docesofia/storefront/modules/catalog/presentation/controllers"
	catalogservices "github.com/docesofia/storefront/modules/catalog/services"
	contentpersistence "github.com/docesofia/storefront/modules/content/infrastructure/persistence"
	contentcontrollers "github.com/docesofia/storefront/modules/content/presentation/controllers"
	contentservices "github.com/docesofia/storefront/modules/content/services"
	corepersistence "github.com/docesofia/storefront/modules/core/infrastructure/persistence"
	corecontrollers "github.com/docesofia/storefront/modules/core/presentation/controllers"
	coreservices "github.com/docesofia/storefront/modules/core/services"
	orderspersistence "github.com/docesofia/storefront/modules/orders/infrastructure/persistence"
	orderscontrollers "github.com/docesofia/storefront/modules/orders/presentation/controllers"
	ordersservices "github.com/docesofia/storefront/modules/orders/services"
	"github.com/docesofia/storefront/pkg/api"
	"github.com/docesofia/storefront/pkg/application"
	"github.com/docesofia/storefront/pkg/authz"
	"github.com/docesofia/storefront/pkg/configuration"
	"github.com/docesofia/storefront/pkg/metrics"
	"github.com/docesofia/storefront/pkg/middleware"
	"github.com/docesofia/storefront/pkg/serrors"
	"github.com/docesofia/storefront/pkg/server"
	"github.com/docesofia/storefront/pkg/storage"
)

type DefaultOptions struct {
	Logger        *logrus.Logger
	Configuration *configuration.Configuration
	Pool          *pgxpool.Pool
}

// Default wires the full HTTP surface: repositories, services, controllers
// and the middleware stack.
func Default(options *DefaultOptions) (*server.HTTPServer, error) {
	conf := options.Configuration
	logger := options.Logger

	app := application.New(&application.Options{
		Pool:   options.Pool,
		Logger: logger,
	})

	authzService, err := authz.NewService(conf.Authz.ModelPath, conf.Authz.PolicyPath, logger)
	if err != nil {
		return nil, err
	}

	store := storage.NewDiskStorage(conf.Uploads.Path, conf.Origin+"/uploads")

	userRepo := corepersistence.NewUserRepository()
	sessionRepo := corepersistence.NewSessionRepository()
	productRepo := catalogpersistence.NewProductRepository()
	categoryRepo := catalogpersistence.NewCategoryRepository()
	changeRequestRepo := contentpersistence.NewChangeRequestRepository()
	siteConfigRepo := contentpersistence.NewSiteConfigRepository()
	orderRepo := orderspersistence.NewOrderRepository()

	authService := coreservices.NewAuthService(userRepo, sessionRepo, conf.SessionDuration)
	productService := catalogservices.NewProductService(productRepo, store, logger)
	categoryService := catalogservices.NewCategoryService(categoryRepo, productRepo)
	changeRequestService := contentservices.NewChangeRequestService(
		changeRequestRepo, productRepo, categoryRepo, siteConfigRepo, logger)
	siteConfigService := contentservices.NewSiteConfigService(siteConfigRepo)
	orderService := ordersservices.NewOrderService(orderRepo, logger)
	dashboardService := ordersservices.NewDashboardService(productRepo, categoryRepo, orderRepo, changeRequestRepo)

	app.RegisterMiddleware(
		middleware.WithLogger(logger, conf),
		middleware.WithPool(options.Pool),
		middleware.Cors(conf.AllowedOrigins...),
		middleware.ProvideUser(conf.SidCookieKey, authService),
	)
	if conf.RateLimit.Enabled {
		app.RegisterMiddleware(middleware.RateLimit(conf.RateLimit.GlobalRPS))
	}

	app.RegisterControllers(
		corecontrollers.NewAuthController(authService, logger, conf.SidCookieKey, conf.GoAppEnvironment == configuration.Production),
		catalogcontrollers.NewProductsController(productService, authzService, logger, conf.Uploads.MaxSize),
		catalogcontrollers.NewCategoriesController(categoryService, authzService, logger),
		contentcontrollers.NewChangeRequestsController(changeRequestService, authzService, logger),
		contentcontrollers.NewSiteConfigController(siteConfigService, authzService, logger),
		orderscontrollers.NewOrdersController(orderService, authzService, logger),
		orderscontrollers.NewDashboardController(dashboardService, authzService, logger),
		NewHealthController(options.Pool),
		NewStaticFilesController("/uploads", conf.Uploads.Path),
	)
	if conf.Prometheus.Enabled {
		app.RegisterControllers(metrics.NewPrometheusController(conf.Prometheus.Path))
	}

	notFound := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		api.WriteError(w, r, logger, serrors.NewNotFound("route"))
	})
	return server.NewHTTPServer(app, notFound), nil
}
