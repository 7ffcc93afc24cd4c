// Package handler serves the order form pages. Handlers are thin: they
// fetch from the upstream API clients, build typed view models, and render
// templates. All page state that spans form steps lives in the session
// store.
package handler

import (
	"context"
	"html/template"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"

	"github.com/xenking/order-form/internal/bcapi"
	"github.com/xenking/order-form/internal/domain/order"
	"github.com/xenking/order-form/internal/domain/summary"
	"github.com/xenking/order-form/internal/ordersapi"
	"github.com/xenking/order-form/internal/orgapi"
	"github.com/xenking/order-form/internal/session"
	"github.com/xenking/order-form/pkg/format"
	"github.com/xenking/order-form/web"
)

// OrdersAPI is the Orders API surface the pages consume.
type OrdersAPI interface {
	GetOrder(ctx context.Context, orderID string) (*order.Order, error)
	ListOrders(ctx context.Context, odsCode string) ([]ordersapi.OrderMeta, error)
	GetOrderItems(ctx context.Context, orderID string, itemType order.CatalogueItemType) ([]order.DashboardItem, error)
	GetServiceRecipients(ctx context.Context, orderID string) ([]order.ServiceRecipient, error)
	CreateOrder(ctx context.Context, odsCode, description string) (string, error)
	UpdateDescription(ctx context.Context, orderID, description string) error
	CompleteOrder(ctx context.Context, orderID string) error
	DeleteOrder(ctx context.Context, orderID string) error
}

// OrganisationsAPI resolves buying organisations and their recipient
// catalogues.
type OrganisationsAPI interface {
	GetOrganisation(ctx context.Context, orgID string) (*orgapi.Organisation, error)
	ListServiceRecipients(ctx context.Context, orgID string) ([]order.ServiceRecipient, error)
}

// CatalogueAPI lists purchasable catalogue items and their prices.
type CatalogueAPI interface {
	ListSolutions(ctx context.Context) ([]bcapi.CatalogueItem, error)
	ListAdditionalServices(ctx context.Context, solutionIDs []string) ([]bcapi.CatalogueItem, error)
	ListPrices(ctx context.Context, catalogueItemID string) ([]bcapi.Price, error)
}

// Config holds non-dependency configuration for the Handler.
type Config struct {
	// Format controls money and quantity rendering on every page.
	Format format.Config
	// Policy decides what an order item referencing an unselected
	// recipient does to the dashboard pages.
	Policy summary.UnknownRecipientPolicy
	// Content is the static page copy, injected so view-model
	// construction stays a pure function of its inputs.
	Content Content
}

// Handler serves all order form routes.
type Handler struct {
	orders    OrdersAPI
	orgs      OrganisationsAPI
	catalogue CatalogueAPI
	sessions  session.Store

	build   summary.Builder
	policy  summary.UnknownRecipientPolicy
	content Content
	views   *template.Template
}

// New constructs a Handler and parses the embedded templates.
func New(
	cfg Config,
	orders OrdersAPI,
	orgs OrganisationsAPI,
	catalogue CatalogueAPI,
	sessions session.Store,
) (*Handler, error) {
	views, err := template.ParseFS(web.Templates, "templates/*.html.tmpl")
	if err != nil {
		return nil, errors.Wrap(err, "parse templates")
	}

	return &Handler{
		orders:    orders,
		orgs:      orgs,
		catalogue: catalogue,
		sessions:  sessions,
		build:     summary.NewBuilder(cfg.Format),
		policy:    cfg.Policy,
		content:   cfg.Content,
		views:     views,
	}, nil
}

// Routes returns the router with all pages mounted.
func (h *Handler) Routes() *httprouter.Router {
	r := httprouter.New()

	// Dashboard routes take a distinct first segment: httprouter cannot
	// register a static child next to the :orderID wildcard under /orders.
	r.GET("/organisations/:odsCode/orders", h.Dashboard)
	r.POST("/organisations/:odsCode/orders", h.CreateOrder)

	r.GET("/orders/:orderID", h.TaskList)
	r.GET("/orders/:orderID/description", h.Description)
	r.POST("/orders/:orderID/description", h.SaveDescription)

	r.GET("/orders/:orderID/service-recipients/select", h.SelectRecipients)
	r.POST("/orders/:orderID/service-recipients/select", h.SaveSelectedRecipients)

	r.GET("/orders/:orderID/catalogue-solutions", h.CatalogueSolutions)
	r.GET("/orders/:orderID/catalogue-solutions/select", h.SelectSolution)
	r.POST("/orders/:orderID/catalogue-solutions/select", h.SaveSelectedSolution)
	r.GET("/orders/:orderID/additional-services", h.AdditionalServices)
	r.GET("/orders/:orderID/additional-services/select", h.SelectAdditionalService)
	r.POST("/orders/:orderID/additional-services/select", h.SaveSelectedAdditionalService)

	r.GET("/orders/:orderID/summary", h.Summary)
	r.POST("/orders/:orderID/complete", h.CompleteOrder)
	r.POST("/orders/:orderID/delete", h.DeleteOrder)

	r.GET("/api/orders/:orderID/summary", h.SummaryJSON)

	return r
}

// render executes one page template. Render failures after the header has
// been written can only be logged.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.views.ExecuteTemplate(w, name, data); err != nil {
		zctx.From(r.Context()).Error("render template",
			zap.String("template", name),
			zap.Error(err),
		)
	}
}

// errorPageData is the view model of the error page.
type errorPageData struct {
	Title    string
	OrderID  string
	Message  string
	BackHref string
}

// renderError maps an error to the right status and error page. An order
// item without recipients is broken order state: the page render aborts
// and nothing partial is shown.
func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	lg := zctx.From(r.Context())

	var mrErr *order.MissingRecipientsError
	switch {
	case errors.Is(err, ordersapi.ErrOrderNotFound):
		h.render(w, r, http.StatusNotFound, "error.html.tmpl", errorPageData{
			Title:   "Order not found",
			Message: "We could not find an order with that ID.",
		})
	case errors.Is(err, orgapi.ErrOrganisationNotFound):
		h.render(w, r, http.StatusNotFound, "error.html.tmpl", errorPageData{
			Title:   "Organisation not found",
			Message: "We could not find an organisation with that ODS code.",
		})
	case errors.As(err, &mrErr):
		lg.Error("order in broken state", zap.Error(err))
		h.render(w, r, http.StatusInternalServerError, "error.html.tmpl", errorPageData{
			Title:   "There is a problem with this order",
			Message: mrErr.Error() + ". The order cannot be summarised until every item has at least one service recipient.",
		})
	default:
		lg.Error("page failed", zap.Error(err))
		h.render(w, r, http.StatusInternalServerError, "error.html.tmpl", errorPageData{
			Title:   "Sorry, there is a problem with the service",
			Message: "Try again later.",
		})
	}
}

const sessionCookie = "order-form-session"

// sessionID returns the request's session ID, allocating one and setting
// the cookie when absent.
func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value
	}

	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
