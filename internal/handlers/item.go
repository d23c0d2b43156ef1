package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/solobilling/solo-billing/internal/httpx"
	"github.com/solobilling/solo-billing/internal/models"
	"github.com/solobilling/solo-billing/internal/validation"
)

type ItemHandler struct {
	DB *gorm.DB
}

func NewItemHandler(db *gorm.DB) *ItemHandler { return &ItemHandler{DB: db} }

// List: GET /api/items – all catalog items, id ascending.
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	var items []models.Item
	if err := h.DB.WithContext(r.Context()).Order("item_id asc").Find(&items).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	if items == nil {
		items = []models.Item{}
	}
	httpx.JSON(w, http.StatusOK, items)
}

// Create: POST /api/items
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ItemName  string          `json:"item_name"`
		CostPrice decimal.Decimal `json:"cost_price"`
		SellPrice decimal.Decimal `json:"sell_price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("item_name", input.ItemName, v)
	validation.NonNegativeDecimal("cost_price", input.CostPrice, v)
	validation.NonNegativeDecimal("sell_price", input.SellPrice, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	item := models.Item{ItemName: input.ItemName, CostPrice: input.CostPrice, SellPrice: input.SellPrice}
	if err := h.DB.WithContext(r.Context()).Create(&item).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"item_id": item.ItemID, "message": "Item added successfully"})
}

// Update: PUT /api/items/{id} – name and prices are editable.
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	if id <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var item models.Item
	if err := h.DB.WithContext(r.Context()).First(&item, "item_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	var body struct {
		ItemName  *string          `json:"item_name"`
		CostPrice *decimal.Decimal `json:"cost_price"`
		SellPrice *decimal.Decimal `json:"sell_price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	if body.ItemName != nil {
		validation.Required("item_name", *body.ItemName, v)
	}
	if body.CostPrice != nil {
		validation.NonNegativeDecimal("cost_price", *body.CostPrice, v)
	}
	if body.SellPrice != nil {
		validation.NonNegativeDecimal("sell_price", *body.SellPrice, v)
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	if body.ItemName != nil {
		item.ItemName = *body.ItemName
	}
	if body.CostPrice != nil {
		item.CostPrice = *body.CostPrice
	}
	if body.SellPrice != nil {
		item.SellPrice = *body.SellPrice
	}
	if err := h.DB.WithContext(r.Context()).Save(&item).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "Item updated successfully"})
}

// Delete: DELETE /api/items/{id} – idempotent hard delete.
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	if id <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.DB.WithContext(r.Context()).Where("item_id = ?", id).Delete(&models.Item{}).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "Item deleted successfully"})
}

// pathID parses the {id} path value; 0 means absent or malformed.
func pathID(r *http.Request) int {
	n, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return 0
	}
	return n
}
