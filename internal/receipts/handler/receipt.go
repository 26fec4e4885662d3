package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"venuebook/internal/receipts/service"
	httputil "venuebook/pkg/http"
	"venuebook/pkg/logger"
	"venuebook/pkg/model"
)

type ReceiptHandler struct {
	service service.ReceiptService
	log     *logger.Logger
}

func NewReceiptHandler(service service.ReceiptService, log *logger.Logger) *ReceiptHandler {
	return &ReceiptHandler{
		service: service,
		log:     log,
	}
}

func (h *ReceiptHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var receipt model.Receipt
	if err := json.NewDecoder(r.Body).Decode(&receipt); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "error", writeErr)
		}
		return
	}

	if err := h.service.Create(r.Context(), &receipt); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, receipt); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *ReceiptHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	receipt, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, receipt); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "error", err)
	}
}

type reservationReceiptsResponse struct {
	Receipts []*model.Receipt      `json:"receipts"`
	Summary  *model.ReceiptSummary `json:"summary"`
}

func (h *ReceiptHandler) GetByReservation(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	receipts, summary, err := h.service.GetByReservation(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByReservation", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, reservationReceiptsResponse{
		Receipts: receipts,
		Summary:  summary,
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByReservation", "error", err)
	}
}

func (h *ReceiptHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *ReceiptHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/receipts", h.Create)
	router.GET("/api/v1/receipts/id/:id", h.GetByID)
	router.DELETE("/api/v1/receipts/id/:id", h.Delete)
	router.GET("/api/v1/receipts/reservation/:id", h.GetByReservation)
}
