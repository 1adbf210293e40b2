// Package financeaggregator предоставляет маршруты для основного приложения.
package financeaggregator

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	accountupdate "github.com/magabrotheeeer/finance-aggregator/internal/http/handlers/account/update"
	"github.com/magabrotheeeer/finance-aggregator/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/finance-aggregator/internal/http/handlers/auth/register"
	budgetcreate "github.com/magabrotheeeer/finance-aggregator/internal/http/handlers/budget/create"
	budgetcurrent "github.com/magabrotheeeer/finance-aggregator/internal/http/handlers/budget/current"
	budgetlist "github.com/magabrotheeeer/finance-aggregator/internal/http/handlers/budget/list"
	budgetremove "github.com/magabrotheeeer/finance-aggregator/internal/http/handlers/budget/remove"
	budgetupdate "github.com/magabrotheeeer/finance-aggregator/internal/http/handlers/budget/update"
	chatmessage "github.com/magabrotheeeer/finance-aggregator/internal/http/handlers/chat/message"
	chatusage "github.com/magabrotheeeer/finance-aggregator/internal/http/handlers/chat/usage"
	expensecreate "github.com/magabrotheeeer/finance-aggregator/internal/http/handlers/expense/create"
	expenselist "github.com/magabrotheeeer/finance-aggregator/internal/http/handlers/expense/list"
	expenseread "github.com/magabrotheeeer/finance-aggregator/internal/http/handlers/expense/read"
	expenseremove "github.com/magabrotheeeer/finance-aggregator/internal/http/handlers/expense/remove"
	expensesummary "github.com/magabrotheeeer/finance-aggregator/internal/http/handlers/expense/summary"
	expenseupdate "github.com/magabrotheeeer/finance-aggregator/internal/http/handlers/expense/update"
	"github.com/magabrotheeeer/finance-aggregator/internal/http/handlers/health"
	"github.com/magabrotheeeer/finance-aggregator/internal/http/handlers/report/calendar"
	"github.com/magabrotheeeer/finance-aggregator/internal/http/handlers/report/dashboard"
	subcreate "github.com/magabrotheeeer/finance-aggregator/internal/http/handlers/subscription/create"
	sublist "github.com/magabrotheeeer/finance-aggregator/internal/http/handlers/subscription/list"
	subreactivate "github.com/magabrotheeeer/finance-aggregator/internal/http/handlers/subscription/reactivate"
	subread "github.com/magabrotheeeer/finance-aggregator/internal/http/handlers/subscription/read"
	subremove "github.com/magabrotheeeer/finance-aggregator/internal/http/handlers/subscription/remove"
	subrenew "github.com/magabrotheeeer/finance-aggregator/internal/http/handlers/subscription/renew"
	subsummary "github.com/magabrotheeeer/finance-aggregator/internal/http/handlers/subscription/summary"
	subtoggle "github.com/magabrotheeeer/finance-aggregator/internal/http/handlers/subscription/toggle"
	subupdate "github.com/magabrotheeeer/finance-aggregator/internal/http/handlers/subscription/update"
	"github.com/magabrotheeeer/finance-aggregator/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/finance-aggregator/internal/services/auth"
	budgetservice "github.com/magabrotheeeer/finance-aggregator/internal/services/budget"
	chatservice "github.com/magabrotheeeer/finance-aggregator/internal/services/chat"
	expenseservice "github.com/magabrotheeeer/finance-aggregator/internal/services/expense"
	reportservice "github.com/magabrotheeeer/finance-aggregator/internal/services/report"
	subservice "github.com/magabrotheeeer/finance-aggregator/internal/services/subscription"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger,
	authService *authservice.AuthService,
	expenseService *expenseservice.ExpenseService,
	subscriptionService *subservice.SubscriptionService,
	budgetService *budgetservice.BudgetService,
	reportService *reportservice.ReportService,
	chatService *chatservice.ChatService,
	db health.Pinger,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middlewarectx.MetricsMiddleware,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Put("/account", accountupdate.New(logger, authService).ServeHTTP)

			r.Post("/expenses", expensecreate.New(logger, expenseService).ServeHTTP)
			r.Get("/expenses/list", expenselist.New(logger, expenseService).ServeHTTP)
			r.Get("/expenses/{id}", expenseread.New(logger, expenseService).ServeHTTP)
			r.Put("/expenses/{id}", expenseupdate.New(logger, expenseService).ServeHTTP)
			r.Delete("/expenses/{id}", expenseremove.New(logger, expenseService).ServeHTTP)
			r.Get("/expenses/monthly", expensesummary.New(logger, reportService, expensesummary.KindMonthly).ServeHTTP)
			r.Get("/expenses/yearly", expensesummary.New(logger, reportService, expensesummary.KindYearly).ServeHTTP)
			r.Get("/expenses/alltime", expensesummary.New(logger, reportService, expensesummary.KindAllTime).ServeHTTP)

			r.Post("/subscriptions", subcreate.New(logger, subscriptionService).ServeHTTP)
			r.Get("/subscriptions/list", sublist.New(logger, subscriptionService).ServeHTTP)
			r.Get("/subscriptions/{id}", subread.New(logger, subscriptionService).ServeHTTP)
			r.Put("/subscriptions/{id}", subupdate.New(logger, subscriptionService).ServeHTTP)
			r.Delete("/subscriptions/{id}", subremove.New(logger, subscriptionService).ServeHTTP)
			r.Post("/subscriptions/{id}/renew", subrenew.New(logger, subscriptionService).ServeHTTP)
			r.Post("/subscriptions/{id}/toggle", subtoggle.New(logger, subscriptionService).ServeHTTP)
			r.Post("/subscriptions/{id}/reactivate", subreactivate.New(logger, subscriptionService).ServeHTTP)
			r.Get("/subscriptions/monthly", subsummary.New(logger, reportService, subsummary.KindMonthly).ServeHTTP)
			r.Get("/subscriptions/yearly", subsummary.New(logger, reportService, subsummary.KindYearly).ServeHTTP)

			r.Post("/budgets", budgetcreate.New(logger, budgetService).ServeHTTP)
			r.Get("/budgets/list", budgetlist.New(logger, budgetService).ServeHTTP)
			r.Get("/budgets/current", budgetcurrent.New(logger, budgetService).ServeHTTP)
			r.Put("/budgets/{id}", budgetupdate.New(logger, budgetService).ServeHTTP)
			r.Delete("/budgets/{id}", budgetremove.New(logger, budgetService).ServeHTTP)

			r.Get("/calendar", calendar.New(logger, reportService).ServeHTTP)
			r.Get("/dashboard/summary", dashboard.New(logger, reportService).ServeHTTP)

			r.Post("/chat/message", chatmessage.New(logger, chatService).ServeHTTP)
			r.Get("/chat/usage", chatusage.New(logger, chatService).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger, db).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
