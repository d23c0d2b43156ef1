package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/solobilling/solo-billing/internal/httpx"
	"github.com/solobilling/solo-billing/internal/models"
	"github.com/solobilling/solo-billing/internal/services"
	"github.com/solobilling/solo-billing/internal/validation"
)

type SaleHandler struct {
	DB  *gorm.DB
	Svc *services.OrderService
}

func NewSaleHandler(db *gorm.DB, svc *services.OrderService) *SaleHandler {
	return &SaleHandler{DB: db, Svc: svc}
}

// List: GET /api/sales – newest first, each with its line count.
func (h *SaleHandler) List(w http.ResponseWriter, r *http.Request) {
	var sales []models.SaleSummary
	err := h.DB.WithContext(r.Context()).
		Model(&models.Sale{}).
		Select("selling_record.*, COUNT(selling_details.selling_detail_id) AS items_count").
		Joins("LEFT JOIN selling_details ON selling_details.selling_id = selling_record.selling_id").
		Group("selling_record.selling_id").
		Order("selling_record.selling_id DESC").
		Scan(&sales).Error
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	if sales == nil {
		sales = []models.SaleSummary{}
	}
	httpx.JSON(w, http.StatusOK, sales)
}

// CreateOrder: POST /api/orders – checkout. Header and lines persist as one
// unit; the service enforces atomicity.
func (h *SaleHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	type itemReq struct {
		ID  uint `json:"id"`
		Qty int  `json:"qty"`
	}
	var req struct {
		CustomerName string          `json:"customer_name"`
		Items        []itemReq       `json:"items"`
		TotalAmount  decimal.Decimal `json:"total_amount"`
		Discount     decimal.Decimal `json:"discount"`
		GrandTotal   decimal.Decimal `json:"grand_total"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("customer_name", req.CustomerName, v)
	if len(req.Items) == 0 {
		v["items"] = "required"
	}
	for _, it := range req.Items {
		if it.ID == 0 {
			v["items"] = "invalid_item"
		}
		validation.PositiveInt("qty", it.Qty, v)
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	in := services.CreateOrderInput{
		CustomerName: req.CustomerName,
		TotalAmount:  req.TotalAmount,
		Discount:     req.Discount,
		GrandTotal:   req.GrandTotal,
	}
	for _, it := range req.Items {
		in.Lines = append(in.Lines, services.OrderLineInput{ItemID: it.ID, Quantity: it.Qty})
	}
	sellingID, err := h.Svc.Create(r.Context(), in)
	if err != nil {
		if errors.Is(err, services.ErrInvalidOrder) || errors.Is(err, services.ErrUnknownItem) {
			httpx.JSONError(w, http.StatusBadRequest, err.Error(), nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"selling_id": sellingID, "message": "Order created successfully"})
}

// Delete: DELETE /api/sales/{id} – lines go first, then the header.
func (h *SaleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	if id <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.Svc.Delete(r.Context(), uint(id)); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "Order deleted successfully"})
}

// Details: GET /api/sales/{id}/details – header plus enriched lines.
func (h *SaleHandler) Details(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	if id <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	sale, lines, err := h.Svc.Details(r.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	if lines == nil {
		lines = []models.SaleLineDetail{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"order": sale, "items": lines})
}
