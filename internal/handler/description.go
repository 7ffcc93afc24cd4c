package handler

import (
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
)

// descriptionPageData is the view model of the description form.
type descriptionPageData struct {
	Title       string
	OrderID     string
	Intro       string
	Description string
	Error       string
}

// Description renders the description form pre-filled with the current
// value.
func (h *Handler) Description(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orderID := ps.ByName("orderID")

	o, err := h.orders.GetOrder(r.Context(), orderID)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "description.html.tmpl", descriptionPageData{
		Title:       h.content.DescriptionTitle,
		OrderID:     orderID,
		Intro:       h.content.DescriptionIntro,
		Description: o.Description,
	})
}

// SaveDescription validates and stores the description section, then
// returns to the task list.
func (h *Handler) SaveDescription(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orderID := ps.ByName("orderID")

	description := strings.TrimSpace(r.PostFormValue("description"))
	if msg := validateDescription(description); msg != "" {
		h.render(w, r, http.StatusBadRequest, "description.html.tmpl", descriptionPageData{
			Title:       h.content.DescriptionTitle,
			OrderID:     orderID,
			Intro:       h.content.DescriptionIntro,
			Description: description,
			Error:       msg,
		})
		return
	}

	if err := h.orders.UpdateDescription(r.Context(), orderID, description); err != nil {
		h.renderError(w, r, err)
		return
	}

	http.Redirect(w, r, "/orders/"+orderID, http.StatusSeeOther)
}
