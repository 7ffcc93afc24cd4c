package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
	"golang.org/x/sync/errgroup"

	"github.com/xenking/order-form/internal/ordersapi"
	"github.com/xenking/order-form/internal/orgapi"
	"github.com/xenking/order-form/pkg/format"
)

// maxDescriptionLength caps the free-text order description.
const maxDescriptionLength = 100

// dashboardOrder is one row of the organisation dashboard.
type dashboardOrder struct {
	ID            string
	Description   string
	Status        string
	LastUpdatedBy string
	LastUpdated   string
}

// dashboardPageData is the view model of the organisation dashboard.
type dashboardPageData struct {
	Title            string
	OrderID          string
	Intro            string
	OdsCode          string
	Organisation     string
	Orders           []dashboardOrder
	DescriptionError string
}

// newDashboardPage builds the dashboard view model from the fetched order
// list and static content.
func newDashboardPage(content Content, odsCode, orgName string, orders []ordersapi.OrderMeta, descriptionError string) dashboardPageData {
	rows := make([]dashboardOrder, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, dashboardOrder{
			ID:            o.ID,
			Description:   o.Description,
			Status:        string(o.Status),
			LastUpdatedBy: o.LastUpdatedBy,
			LastUpdated:   format.DateOrEmpty(o.LastUpdated),
		})
	}
	return dashboardPageData{
		Title:            content.DashboardTitle,
		Intro:            content.DashboardIntro,
		OdsCode:          odsCode,
		Organisation:     orgName,
		Orders:           rows,
		DescriptionError: descriptionError,
	}
}

// dashboardPage fetches the organisation and its orders in parallel and
// builds the dashboard view model.
func (h *Handler) dashboardPage(ctx context.Context, odsCode, descriptionError string) (dashboardPageData, error) {
	var (
		org    *orgapi.Organisation
		orders []ordersapi.OrderMeta
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		org, err = h.orgs.GetOrganisation(ctx, odsCode)
		return err
	})
	g.Go(func() (err error) {
		orders, err = h.orders.ListOrders(ctx, odsCode)
		return err
	})
	if err := g.Wait(); err != nil {
		return dashboardPageData{}, err
	}

	return newDashboardPage(h.content, odsCode, org.Name, orders, descriptionError), nil
}

// Dashboard lists the organisation's orders.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	odsCode := ps.ByName("odsCode")

	data, err := h.dashboardPage(r.Context(), odsCode, "")
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "dashboard.html.tmpl", data)
}

// CreateOrder starts a new order from the description step and lands on
// its task list.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	odsCode := ps.ByName("odsCode")

	description := strings.TrimSpace(r.PostFormValue("description"))
	if msg := validateDescription(description); msg != "" {
		data, err := h.dashboardPage(r.Context(), odsCode, msg)
		if err != nil {
			h.renderError(w, r, err)
			return
		}
		h.render(w, r, http.StatusBadRequest, "dashboard.html.tmpl", data)
		return
	}

	orderID, err := h.orders.CreateOrder(r.Context(), odsCode, description)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	http.Redirect(w, r, "/orders/"+orderID, http.StatusSeeOther)
}

// DeleteOrder removes an incomplete order and returns to its
// organisation's dashboard.
func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orderID := ps.ByName("orderID")

	o, err := h.orders.GetOrder(r.Context(), orderID)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	if err := h.orders.DeleteOrder(r.Context(), orderID); err != nil {
		h.renderError(w, r, err)
		return
	}

	http.Redirect(w, r, "/organisations/"+o.OrderingParty.OdsCode+"/orders", http.StatusSeeOther)
}

func validateDescription(description string) string {
	switch {
	case description == "":
		return "Enter an order description"
	case len(description) > maxDescriptionLength:
		return "Order description must be 100 characters or fewer"
	default:
		return ""
	}
}

// taskListSection is one entry on the task-list page.
type taskListSection struct {
	Label string
	Href  string
	Done  bool
}

// taskListPageData is the view model of the task-list page.
type taskListPageData struct {
	Title       string
	OrderID     string
	Intro       string
	Description string
	Sections    []taskListSection
}

// TaskList shows the order's section checklist.
func (h *Handler) TaskList(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orderID := ps.ByName("orderID")

	o, err := h.orders.GetOrder(r.Context(), orderID)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	base := "/orders/" + orderID
	data := taskListPageData{
		Title:       h.content.TaskListTitle + " " + orderID,
		OrderID:     orderID,
		Intro:       h.content.TaskListIntro,
		Description: o.Description,
		Sections: []taskListSection{
			{Label: "Order description", Href: base + "/description", Done: o.Description != ""},
			{Label: "Service Recipients", Href: base + "/service-recipients/select"},
			{Label: "Catalogue Solutions", Href: base + "/catalogue-solutions"},
			{Label: "Additional Services", Href: base + "/additional-services"},
			{Label: "Order summary", Href: base + "/summary", Done: o.Status.IsComplete()},
		},
	}

	h.render(w, r, http.StatusOK, "tasklist.html.tmpl", data)
}
