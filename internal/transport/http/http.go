package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"
	"github.com/webshop-labs/order/internal/service/identity"
	"github.com/webshop-labs/order/internal/service/models/opinion"
	"github.com/webshop-labs/order/internal/service/models/order"
	"github.com/webshop-labs/order/internal/service/services/ordersvc"
	addopinion "github.com/webshop-labs/order/internal/transport/http/add_opinion"
	createorder "github.com/webshop-labs/order/internal/transport/http/create_order"
	listorders "github.com/webshop-labs/order/internal/transport/http/list_orders"
	liststatuses "github.com/webshop-labs/order/internal/transport/http/list_statuses"
	"github.com/webshop-labs/order/internal/transport/http/middleware/auth"
	myorders "github.com/webshop-labs/order/internal/transport/http/my_orders"
	ordersbystatus "github.com/webshop-labs/order/internal/transport/http/orders_by_status"
	updatestatus "github.com/webshop-labs/order/internal/transport/http/update_status"
	"github.com/webshop-labs/order/pkg/http/middleware/trace"
	"github.com/webshop-labs/order/pkg/logger"
)

type service interface {
	CreateOrder(ctx context.Context, req ordersvc.CreateOrderRequest) (int64, error)
	ChangeStatus(ctx context.Context, orderID int64, newStatusID int) (*ordersvc.StatusTransition, error)
	AddOpinion(ctx context.Context, orderID, subjectID int64, rating int, content string) (*opinion.Opinion, error)
	GetOrders(ctx context.Context, filter order.QueryOrdersModel) ([]order.Order, error)
	GetOrdersByStatus(ctx context.Context, statusID int) ([]order.Order, error)
	ListStatuses() []ordersvc.StatusInfo
}

type HTTPTransport struct {
	server  *http.Server
	router  *chi.Mux
	service service
	auth    *auth.Authenticator
}

func NewHTTPTransport(service service, verifier identity.Verifier) *HTTPTransport {
	router := newRouter()
	server := newServer(router)

	return &HTTPTransport{
		server:  server,
		router:  router,
		service: service,
		auth:    auth.New(verifier),
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Route("/api", func(r chi.Router) {
		r.Get("/statuses", h.listStatuses)

		r.Route("/orders", func(r chi.Router) {
			r.With(h.auth.Optional()).Post("/", h.createOrder)
			r.With(h.auth.Require(identity.RoleStaff)).Get("/", h.listOrders)
			r.With(h.auth.Require(identity.RoleCustomer)).Get("/my-orders", h.myOrders)
			r.With(h.auth.Require(identity.RoleStaff)).Get("/status/{id}", h.ordersByStatus)
			r.With(h.auth.Require(identity.RoleStaff)).Patch("/{id}", h.updateStatus)
			r.With(h.auth.Require(identity.RoleCustomer)).Post("/{id}/opinions", h.addOpinion)
		})
	})
}

func (h *HTTPTransport) createOrder(w http.ResponseWriter, r *http.Request) {
	createorder.CreateOrder(w, r, h.service)
}

func (h *HTTPTransport) updateStatus(w http.ResponseWriter, r *http.Request) {
	updatestatus.UpdateStatus(w, r, h.service)
}

func (h *HTTPTransport) addOpinion(w http.ResponseWriter, r *http.Request) {
	addopinion.AddOpinion(w, r, h.service)
}

func (h *HTTPTransport) listOrders(w http.ResponseWriter, r *http.Request) {
	listorders.ListOrders(w, r, h.service)
}

func (h *HTTPTransport) myOrders(w http.ResponseWriter, r *http.Request) {
	myorders.MyOrders(w, r, h.service)
}

func (h *HTTPTransport) ordersByStatus(w http.ResponseWriter, r *http.Request) {
	ordersbystatus.OrdersByStatus(w, r, h.service)
}

func (h *HTTPTransport) listStatuses(w http.ResponseWriter, r *http.Request) {
	liststatuses.ListStatuses(w, r, h.service)
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(trace.NewTraceMiddleware)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
