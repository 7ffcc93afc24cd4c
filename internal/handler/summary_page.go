package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/xenking/order-form/internal/domain/summary"
)

// summaryPageData is the view model of the summary page.
type summaryPageData struct {
	Title              string
	OrderID            string
	Intro              string
	Summary            *summary.Summary
	ShowCompleteAction bool
}

// newSummaryPage builds the summary page view model from the computed
// summary and static content. The print variant is used for completed
// orders fetched with ?print=true.
func newSummaryPage(content Content, s *summary.Summary, print bool) summaryPageData {
	intro := content.SummaryIntro
	if print {
		intro = content.SummaryPrintIntro
	}
	return summaryPageData{
		Title:              content.SummaryTitle,
		OrderID:            s.OrderID,
		Intro:              intro,
		Summary:            s,
		ShowCompleteAction: !print && !s.Status.IsComplete(),
	}
}

// Summary renders the order summary page: fetch the aggregate, classify
// and expand its items, format the totals, render.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orderID := ps.ByName("orderID")

	o, err := h.orders.GetOrder(r.Context(), orderID)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	s, err := h.build.Build(o)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	print := r.URL.Query().Get("print") == "true"
	h.render(w, r, http.StatusOK, "summary.html.tmpl", newSummaryPage(h.content, s, print))
}

// CompleteOrder runs the completion action and returns to the summary in
// its read-only form.
func (h *Handler) CompleteOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orderID := ps.ByName("orderID")

	if err := h.orders.CompleteOrder(r.Context(), orderID); err != nil {
		h.renderError(w, r, err)
		return
	}

	http.Redirect(w, r, "/orders/"+orderID+"/summary?print=true", http.StatusSeeOther)
}
