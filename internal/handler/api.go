package handler

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"

	"github.com/xenking/order-form/internal/domain/summary"
	"github.com/xenking/order-form/internal/ordersapi"
)

// SummaryJSON renders the summary view model as JSON, for the print view's
// client-side export. The payload mirrors the HTML page exactly: same
// classification, same formatted strings.
func (h *Handler) SummaryJSON(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orderID := ps.ByName("orderID")

	o, err := h.orders.GetOrder(r.Context(), orderID)
	if err != nil {
		h.jsonError(w, r, err)
		return
	}

	s, err := h.build.Build(o)
	if err != nil {
		h.jsonError(w, r, err)
		return
	}

	var e jx.Encoder
	encodeSummary(&e, s)

	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(e.Bytes()); err != nil {
		zctx.From(r.Context()).Error("write summary json", zap.Error(err))
	}
}

func (h *Handler) jsonError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, ordersapi.ErrOrderNotFound) {
		status = http.StatusNotFound
	}
	zctx.From(r.Context()).Error("summary json failed", zap.Error(err))

	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("error")
	e.Str(err.Error())
	e.ObjEnd()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(e.Bytes())
}

func encodeSummary(e *jx.Encoder, s *summary.Summary) {
	e.ObjStart()

	e.FieldStart("orderId")
	e.Str(s.OrderID)
	e.FieldStart("description")
	e.Str(s.Description)
	e.FieldStart("status")
	e.Str(string(s.Status))
	e.FieldStart("dateCompleted")
	e.Str(s.DateCompleted)
	e.FieldStart("commencementDate")
	e.Str(s.CommencementDate)
	e.FieldStart("orderingParty")
	e.Str(s.OrderingParty)
	e.FieldStart("supplier")
	e.Str(s.Supplier)

	e.FieldStart("oneOffCosts")
	encodeTable(e, s.OneOff)
	e.FieldStart("recurringCosts")
	encodeTable(e, s.Recurring)

	e.FieldStart("totals")
	e.ObjStart()
	e.FieldStart("oneOff")
	e.Str(s.Totals.OneOff)
	e.FieldStart("recurringPerYear")
	e.Str(s.Totals.RecurringPerYear)
	e.FieldStart("recurringPerMonth")
	e.Str(s.Totals.RecurringPerMonth)
	e.FieldStart("ownership")
	e.Str(s.Totals.Ownership)
	e.ObjEnd()

	e.ObjEnd()
}

func encodeTable(e *jx.Encoder, t summary.Table) {
	e.ObjStart()

	e.FieldStart("columns")
	e.ArrStart()
	for _, c := range t.Columns {
		e.Str(c.Title)
	}
	e.ArrEnd()

	e.FieldStart("items")
	e.ArrStart()
	for _, row := range t.Rows {
		e.ArrStart()
		for _, cell := range row {
			e.Str(cell)
		}
		e.ArrEnd()
	}
	e.ArrEnd()

	e.FieldStart("footer")
	e.ArrStart()
	for _, f := range t.Footer {
		e.ObjStart()
		e.FieldStart("label")
		e.Str(f[0])
		e.FieldStart("value")
		e.Str(f[1])
		e.ObjEnd()
	}
	e.ArrEnd()

	e.ObjEnd()
}
