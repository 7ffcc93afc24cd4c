package handler

import (
	"context"
	"net/http"

	"github.com/go-faster/sdk/zctx"
	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xenking/order-form/internal/bcapi"
	"github.com/xenking/order-form/internal/domain/order"
	"github.com/xenking/order-form/internal/domain/summary"
	"github.com/xenking/order-form/internal/session"
	"github.com/xenking/order-form/pkg/format"
)

// catalogueListItem is one row of a dashboard list page.
type catalogueListItem struct {
	ItemID       string
	Name         string
	Recipient    string
	DeliveryDate string
}

// catalogueListPageData is the view model shared by the
// catalogue-solutions and additional-services dashboard pages.
type catalogueListPageData struct {
	Title       string
	OrderID     string
	Intro       string
	Items       []catalogueListItem
	SelectHref  string
	SelectLabel string
}

// newCatalogueListPage sorts the selected recipients by name, groups the
// order items under them, and flattens the result into display rows.
func newCatalogueListPage(
	title, intro, orderID, selectHref, selectLabel string,
	recipients []order.ServiceRecipient,
	items []order.DashboardItem,
	policy summary.UnknownRecipientPolicy,
) (catalogueListPageData, error) {
	sorted := summary.SortRecipientsByName(recipients)
	grouped := summary.GroupItemsByRecipientCode(items)

	ordered, err := summary.SortItemsByRecipient(sorted, grouped, policy)
	if err != nil {
		return catalogueListPageData{}, err
	}

	names := make(map[string]string, len(recipients))
	for _, rec := range recipients {
		names[rec.OdsCode] = rec.Name
	}

	rows := make([]catalogueListItem, 0, len(ordered))
	for _, item := range ordered {
		label := item.RecipientCode
		if name := names[item.RecipientCode]; name != "" {
			label = name + " (" + item.RecipientCode + ")"
		}
		rows = append(rows, catalogueListItem{
			ItemID:       item.ItemID,
			Name:         item.CatalogueItemName,
			Recipient:    label,
			DeliveryDate: format.DateOrEmpty(item.DeliveryDate),
		})
	}

	return catalogueListPageData{
		Title:       title,
		OrderID:     orderID,
		Intro:       intro,
		Items:       rows,
		SelectHref:  selectHref,
		SelectLabel: selectLabel,
	}, nil
}

// catalogueListPage fetches the order's items of one type and its selected
// recipients in parallel, then renders the shared list page.
func (h *Handler) catalogueListPage(
	w http.ResponseWriter, r *http.Request,
	orderID string, itemType order.CatalogueItemType,
	title, intro, selectHref, selectLabel string,
) {
	var (
		items      []order.DashboardItem
		recipients []order.ServiceRecipient
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		items, err = h.orders.GetOrderItems(ctx, orderID, itemType)
		return err
	})
	g.Go(func() (err error) {
		recipients, err = h.orders.GetServiceRecipients(ctx, orderID)
		return err
	})
	if err := g.Wait(); err != nil {
		h.renderError(w, r, err)
		return
	}

	data, err := newCatalogueListPage(title, intro, orderID, selectHref, selectLabel, recipients, items, h.policy)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "catalogue_items.html.tmpl", data)
}

// CatalogueSolutions lists the solutions added to the order, grouped by
// service recipient.
func (h *Handler) CatalogueSolutions(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orderID := ps.ByName("orderID")
	h.catalogueListPage(w, r, orderID, order.TypeSolution,
		h.content.SolutionsTitle, h.content.SolutionsIntro,
		"/orders/"+orderID+"/catalogue-solutions/select", "Add Catalogue Solution")
}

// AdditionalServices lists the additional services added to the order.
func (h *Handler) AdditionalServices(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orderID := ps.ByName("orderID")
	h.catalogueListPage(w, r, orderID, order.TypeAdditionalService,
		h.content.AdditionalServicesTitle, h.content.AdditionalServicesIntro,
		"/orders/"+orderID+"/additional-services/select", "Add Additional Service")
}

// selectItemOption is one radio option on the select page.
type selectItemOption struct {
	ID   string
	Name string
}

// selectItemPageData is the view model of the select page.
type selectItemPageData struct {
	Title   string
	OrderID string
	Intro   string
	Action  string
	Items   []selectItemOption
	Error   string
}

func (h *Handler) selectSolutionPage(orderID string, solutions []bcapi.CatalogueItem, errMsg string) selectItemPageData {
	options := make([]selectItemOption, 0, len(solutions))
	for _, s := range solutions {
		options = append(options, selectItemOption{ID: s.ID, Name: s.Name})
	}
	return selectItemPageData{
		Title:   h.content.SelectSolutionTitle,
		OrderID: orderID,
		Intro:   h.content.SelectSolutionIntro,
		Action:  "/orders/" + orderID + "/catalogue-solutions/select",
		Items:   options,
		Error:   errMsg,
	}
}

// SelectSolution lists the published solutions to pick from.
func (h *Handler) SelectSolution(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orderID := ps.ByName("orderID")

	solutions, err := h.catalogue.ListSolutions(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "select_item.html.tmpl", h.selectSolutionPage(orderID, solutions, ""))
}

// SaveSelectedSolution records the picked solution in the session and
// moves on to the list page. The price and recipient steps read the same
// session state.
func (h *Handler) SaveSelectedSolution(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orderID := ps.ByName("orderID")

	itemID := r.PostFormValue("catalogueItemId")
	if itemID == "" {
		solutions, err := h.catalogue.ListSolutions(r.Context())
		if err != nil {
			h.renderError(w, r, err)
			return
		}
		h.render(w, r, http.StatusBadRequest, "select_item.html.tmpl",
			h.selectSolutionPage(orderID, solutions, "Select a Catalogue Solution"))
		return
	}

	solutions, err := h.catalogue.ListSolutions(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	itemName := ""
	for _, s := range solutions {
		if s.ID == itemID {
			itemName = s.Name
			break
		}
	}
	if itemName == "" {
		h.render(w, r, http.StatusBadRequest, "select_item.html.tmpl",
			h.selectSolutionPage(orderID, solutions, "Select a Catalogue Solution"))
		return
	}

	state := &session.State{
		OrderID:          orderID,
		SelectedItemID:   itemID,
		SelectedItemName: itemName,
	}

	// Single-price items skip the price step, so resolve the price here.
	prices, err := h.catalogue.ListPrices(r.Context(), itemID)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	if len(prices) == 1 {
		state.SelectedPriceID = prices[0].ID
	}

	sid := h.sessionID(w, r)
	if err := h.sessions.Put(r.Context(), sid, state); err != nil {
		zctx.From(r.Context()).Error("store selection", zap.Error(err))
		h.renderError(w, r, err)
		return
	}

	http.Redirect(w, r, "/orders/"+orderID+"/catalogue-solutions", http.StatusSeeOther)
}

// orderSolutionIDs collects the distinct catalogue item IDs of the
// solutions already added to the order.
func (h *Handler) orderSolutionIDs(ctx context.Context, orderID string) ([]string, error) {
	items, err := h.orders.GetOrderItems(ctx, orderID, order.TypeSolution)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(items))
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if item.CatalogueItemID == "" {
			continue
		}
		if _, ok := seen[item.CatalogueItemID]; ok {
			continue
		}
		seen[item.CatalogueItemID] = struct{}{}
		ids = append(ids, item.CatalogueItemID)
	}
	return ids, nil
}

func (h *Handler) selectAdditionalServicePage(orderID string, services []bcapi.CatalogueItem, errMsg string) selectItemPageData {
	options := make([]selectItemOption, 0, len(services))
	for _, s := range services {
		options = append(options, selectItemOption{ID: s.ID, Name: s.Name})
	}
	return selectItemPageData{
		Title:   h.content.SelectAdditionalServiceTitle,
		OrderID: orderID,
		Intro:   h.content.SelectAdditionalServiceIntro,
		Action:  "/orders/" + orderID + "/additional-services/select",
		Items:   options,
		Error:   errMsg,
	}
}

// SelectAdditionalService lists the additional services of the solutions
// already on the order.
func (h *Handler) SelectAdditionalService(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orderID := ps.ByName("orderID")

	solutionIDs, err := h.orderSolutionIDs(r.Context(), orderID)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	var services []bcapi.CatalogueItem
	if len(solutionIDs) > 0 {
		services, err = h.catalogue.ListAdditionalServices(r.Context(), solutionIDs)
		if err != nil {
			h.renderError(w, r, err)
			return
		}
	}

	h.render(w, r, http.StatusOK, "select_item.html.tmpl", h.selectAdditionalServicePage(orderID, services, ""))
}

// SaveSelectedAdditionalService records the picked additional service in
// the session and returns to the list page.
func (h *Handler) SaveSelectedAdditionalService(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orderID := ps.ByName("orderID")

	solutionIDs, err := h.orderSolutionIDs(r.Context(), orderID)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	var services []bcapi.CatalogueItem
	if len(solutionIDs) > 0 {
		services, err = h.catalogue.ListAdditionalServices(r.Context(), solutionIDs)
		if err != nil {
			h.renderError(w, r, err)
			return
		}
	}

	itemID := r.PostFormValue("catalogueItemId")
	itemName := ""
	for _, s := range services {
		if s.ID == itemID {
			itemName = s.Name
			break
		}
	}
	if itemName == "" {
		h.render(w, r, http.StatusBadRequest, "select_item.html.tmpl",
			h.selectAdditionalServicePage(orderID, services, "Select an Additional Service"))
		return
	}

	state := &session.State{
		OrderID:          orderID,
		SelectedItemID:   itemID,
		SelectedItemName: itemName,
	}
	prices, err := h.catalogue.ListPrices(r.Context(), itemID)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	if len(prices) == 1 {
		state.SelectedPriceID = prices[0].ID
	}

	sid := h.sessionID(w, r)
	if err := h.sessions.Put(r.Context(), sid, state); err != nil {
		zctx.From(r.Context()).Error("store selection", zap.Error(err))
		h.renderError(w, r, err)
		return
	}

	http.Redirect(w, r, "/orders/"+orderID+"/additional-services", http.StatusSeeOther)
}
