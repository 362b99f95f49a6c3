package controllers

import (
	"errors"
	"net/http"

	"github.com/wallifypinho/blue-pay-panel/database"
	"github.com/wallifypinho/blue-pay-panel/models"
	"github.com/wallifypinho/blue-pay-panel/utils"

	"github.com/gorilla/mux"
	qrcode "github.com/skip2/go-qrcode"
	"gorm.io/gorm"
)

// GetPaymentByID serves the public invoice view. Read-only: nothing on this
// path can mutate the payment.
func GetPaymentByID(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var payment models.Payment
	if err := database.DB.First(&payment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteActionError(w, http.StatusNotFound, "Payment not found")
			return
		}
		utils.WriteActionError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.WriteActionJSON(w, http.StatusOK, map[string]interface{}{"payment": payment})
}

// GetPaymentByShortCode resolves /p/{code} share links.
func GetPaymentByShortCode(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	var payment models.Payment
	if err := database.DB.First(&payment, "short_code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteActionError(w, http.StatusNotFound, "Payment not found")
			return
		}
		utils.WriteActionError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.WriteActionJSON(w, http.StatusOK, map[string]interface{}{"payment": payment})
}

// GetPaymentQR renders the stored PIX code as a QR PNG.
func GetPaymentQR(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var payment models.Payment
	if err := database.DB.First(&payment, "id = ?", id).Error; err != nil {
		utils.WriteActionError(w, http.StatusNotFound, "Payment not found")
		return
	}
	if payment.PixCode == "" {
		utils.WriteActionError(w, http.StatusNotFound, "Payment has no PIX code")
		return
	}

	png, err := qrcode.Encode(payment.PixCode, qrcode.Medium, 256)
	if err != nil {
		utils.WriteActionError(w, http.StatusInternalServerError, "Failed to render QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

// GetOperatorBySlug serves the public operator profile shown on the panel
// login screen. Password and session token never leave the server.
func GetOperatorBySlug(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	var operator models.Operator
	if err := database.DB.First(&operator, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteActionError(w, http.StatusNotFound, "Operator not found")
			return
		}
		utils.WriteActionError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.WriteActionJSON(w, http.StatusOK, map[string]interface{}{
		"operator": map[string]interface{}{
			"id":       operator.ID,
			"name":     operator.Name,
			"slug":     operator.Slug,
			"whatsapp": operator.Whatsapp,
		},
	})
}
