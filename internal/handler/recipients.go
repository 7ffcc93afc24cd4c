package handler

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"

	"github.com/xenking/order-form/internal/domain/order"
	"github.com/xenking/order-form/internal/session"
)

// recipientOption is one checkbox on the recipient selection page.
type recipientOption struct {
	Name    string
	OdsCode string
	Checked bool
}

// selectRecipientsPageData is the view model of the recipient selection
// page.
type selectRecipientsPageData struct {
	Title      string
	OrderID    string
	Intro      string
	Action     string
	Recipients []recipientOption
	Error      string
}

func (h *Handler) selectRecipientsPage(orderID string, available []order.ServiceRecipient, selected []order.ServiceRecipient, errMsg string) selectRecipientsPageData {
	chosen := make(map[string]struct{}, len(selected))
	for _, rec := range selected {
		chosen[rec.OdsCode] = struct{}{}
	}

	options := make([]recipientOption, 0, len(available))
	for _, rec := range available {
		_, checked := chosen[rec.OdsCode]
		options = append(options, recipientOption{
			Name:    rec.Name,
			OdsCode: rec.OdsCode,
			Checked: checked,
		})
	}

	return selectRecipientsPageData{
		Title:      h.content.SelectRecipientsTitle,
		OrderID:    orderID,
		Intro:      h.content.SelectRecipientsIntro,
		Action:     "/orders/" + orderID + "/service-recipients/select",
		Recipients: options,
		Error:      errMsg,
	}
}

// availableRecipients resolves the recipients the ordering organisation can
// deliver to, via the Organisations API.
func (h *Handler) availableRecipients(r *http.Request, orderID string) ([]order.ServiceRecipient, error) {
	o, err := h.orders.GetOrder(r.Context(), orderID)
	if err != nil {
		return nil, err
	}
	return h.orgs.ListServiceRecipients(r.Context(), o.OrderingParty.OdsCode)
}

// SelectRecipients lists the ordering organisation's recipients, with the
// session's previous selection pre-checked.
func (h *Handler) SelectRecipients(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orderID := ps.ByName("orderID")

	available, err := h.availableRecipients(r, orderID)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	var selected []order.ServiceRecipient
	if state, err := h.sessions.Get(r.Context(), h.sessionID(w, r)); err == nil && state.OrderID == orderID {
		selected = state.SelectedRecipients
	} else if err != nil && !errors.Is(err, session.ErrNotFound) {
		h.renderError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "select_recipients.html.tmpl",
		h.selectRecipientsPage(orderID, available, selected, ""))
}

// SaveSelectedRecipients stores the checked recipients in the session and
// returns to the task list. Unknown codes are refused rather than stored.
func (h *Handler) SaveSelectedRecipients(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orderID := ps.ByName("orderID")

	available, err := h.availableRecipients(r, orderID)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusBadRequest, "select_recipients.html.tmpl",
			h.selectRecipientsPage(orderID, available, nil, "Select at least one service recipient"))
		return
	}

	byCode := make(map[string]order.ServiceRecipient, len(available))
	for _, rec := range available {
		byCode[rec.OdsCode] = rec
	}

	codes := r.PostForm["odsCode"]
	selected := make([]order.ServiceRecipient, 0, len(codes))
	for _, code := range codes {
		rec, ok := byCode[code]
		if !ok {
			h.render(w, r, http.StatusBadRequest, "select_recipients.html.tmpl",
				h.selectRecipientsPage(orderID, available, nil, "Select recipients from the list"))
			return
		}
		selected = append(selected, rec)
	}
	if len(selected) == 0 {
		h.render(w, r, http.StatusBadRequest, "select_recipients.html.tmpl",
			h.selectRecipientsPage(orderID, available, nil, "Select at least one service recipient"))
		return
	}

	sid := h.sessionID(w, r)
	state, err := h.sessions.Get(r.Context(), sid)
	if err != nil && !errors.Is(err, session.ErrNotFound) {
		h.renderError(w, r, err)
		return
	}
	if state == nil || state.OrderID != orderID {
		state = &session.State{OrderID: orderID}
	}
	state.SelectedRecipients = selected

	if err := h.sessions.Put(r.Context(), sid, state); err != nil {
		zctx.From(r.Context()).Error("store recipient selection", zap.Error(err))
		h.renderError(w, r, err)
		return
	}

	http.Redirect(w, r, "/orders/"+orderID, http.StatusSeeOther)
}
