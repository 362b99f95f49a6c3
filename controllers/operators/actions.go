package operators

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/wallifypinho/blue-pay-panel/database"
	"github.com/wallifypinho/blue-pay-panel/gateway"
	"github.com/wallifypinho/blue-pay-panel/models"
	"github.com/wallifypinho/blue-pay-panel/utils"
)

// ActionRequest is the operator action envelope. Every action requires the
// caller's operator id and the currently stored session token.
type ActionRequest struct {
	Action       string          `json:"action"`
	SessionToken string          `json:"sessionToken"`
	OperatorID   string          `json:"operatorId"`
	Data         json.RawMessage `json:"data"`
}

// Actions dispatches the fixed set of operator operations, each scoped to the
// authenticated operator's own resources.
func Actions(w http.ResponseWriter, r *http.Request) {
	var req ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteActionError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if req.SessionToken == "" || req.OperatorID == "" {
		utils.WriteActionError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var operator models.Operator
	if err := database.DB.First(&operator, "id = ?", req.OperatorID).Error; err != nil {
		utils.WriteActionError(w, http.StatusUnauthorized, "Invalid or expired session")
		return
	}
	if !utils.SessionTokenMatches(operator.SessionToken, req.SessionToken) {
		utils.WriteActionError(w, http.StatusUnauthorized, "Invalid or expired session")
		return
	}

	switch req.Action {
	case "create-payment":
		createPayment(w, r, &operator, req.Data)
	case "delete-payment":
		deletePayment(w, &operator, req.Data)
	case "list-payments":
		listPayments(w, &operator)
	case "update-whatsapp":
		updateWhatsapp(w, &operator, req.Data)
	case "list-gateways":
		listGateways(w)
	default:
		utils.WriteActionError(w, http.StatusBadRequest, "Unknown action")
	}
}

func createPayment(w http.ResponseWriter, r *http.Request, operator *models.Operator, data json.RawMessage) {
	var in utils.PaymentInput
	if err := json.Unmarshal(data, &in); err != nil {
		utils.WriteActionError(w, http.StatusBadRequest, "Invalid data")
		return
	}
	if err := in.Validate(); err != nil {
		utils.WriteActionError(w, http.StatusBadRequest, err.Error())
		return
	}

	payment := in.BuildPayment()
	// Ownership is never taken from the request body.
	payment.OperatorID = utils.StringPtr(operator.ID)
	payment.Whatsapp = operator.Whatsapp

	if in.Method() == models.PaymentMethodGateway {
		if !chargeThroughGateway(w, r, &payment, in) {
			return
		}
	}

	if err := database.DB.Create(&payment).Error; err != nil {
		utils.WriteActionError(w, http.StatusBadRequest, "Failed to create payment")
		return
	}

	utils.WriteActionJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"payment": payment,
	})
}

func chargeThroughGateway(w http.ResponseWriter, r *http.Request, payment *models.Payment, in utils.PaymentInput) bool {
	var cfg models.GatewayConfig
	if err := database.DB.First(&cfg, "id = ?", in.GatewayID).Error; err != nil {
		utils.WriteActionError(w, http.StatusBadRequest, "Gateway not found")
		return false
	}
	if !cfg.IsActive {
		utils.WriteActionError(w, http.StatusBadRequest, "Gateway is not active")
		return false
	}

	charge, err := gateway.CreateCharge(r.Context(), gateway.Config{
		Name:      cfg.Name,
		Provider:  cfg.Provider,
		APIURL:    cfg.APIURL,
		SecretKey: cfg.SecretKey,
		PublicKey: cfg.PublicKey,
	}, gateway.CreateChargeRequest{
		Amount:      payment.Value,
		ClientName:  payment.ClientName,
		Document:    payment.CPF,
		OrderNumber: payment.OrderNumber,
		Description: payment.Destination,
	})
	if err != nil {
		utils.WriteActionError(w, http.StatusBadGateway, err.Error())
		return false
	}

	if charge.PixCode == "" {
		log.Printf("[gateway] %s returned no recognizable PIX code for order %s", cfg.Name, payment.OrderNumber)
	}

	payment.PixCode = utils.Truncate(charge.PixCode, 500)
	payment.GatewayID = utils.StringPtr(cfg.ID)
	if charge.PixCode != "" {
		payment.GatewayPixCode = utils.StringPtr(charge.PixCode)
	}
	if charge.QRCodeURL != "" {
		payment.GatewayQRCodeURL = utils.StringPtr(charge.QRCodeURL)
	}
	return true
}

type idInput struct {
	ID string `json:"id"`
}

func deletePayment(w http.ResponseWriter, operator *models.Operator, data json.RawMessage) {
	var in idInput
	if err := json.Unmarshal(data, &in); err != nil || in.ID == "" {
		utils.WriteActionError(w, http.StatusBadRequest, "Invalid data")
		return
	}
	// The operator filter makes cross-tenant deletion a no-op.
	if err := database.DB.Where("id = ? AND operator_id = ?", in.ID, operator.ID).Delete(&models.Payment{}).Error; err != nil {
		utils.WriteActionError(w, http.StatusBadRequest, "Failed to delete payment")
		return
	}
	utils.WriteActionJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func listPayments(w http.ResponseWriter, operator *models.Operator) {
	var payments []models.Payment
	if err := database.DB.Where("operator_id = ?", operator.ID).Order("created_at desc").Find(&payments).Error; err != nil {
		utils.WriteActionError(w, http.StatusBadRequest, "Failed to list payments")
		return
	}
	utils.WriteActionJSON(w, http.StatusOK, map[string]interface{}{"payments": payments})
}

type whatsappInput struct {
	Whatsapp string `json:"whatsapp"`
}

func updateWhatsapp(w http.ResponseWriter, operator *models.Operator, data json.RawMessage) {
	var in whatsappInput
	if err := json.Unmarshal(data, &in); err != nil {
		utils.WriteActionError(w, http.StatusBadRequest, "Invalid data")
		return
	}
	whatsapp := utils.Truncate(in.Whatsapp, 20)
	if err := database.DB.Model(operator).Update("whatsapp", whatsapp).Error; err != nil {
		utils.WriteActionError(w, http.StatusBadRequest, "Failed to update whatsapp")
		return
	}
	utils.WriteActionJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// listGateways shows operators which gateways they can charge through.
// Secrets are stripped; only the admin surface ever sees keys.
func listGateways(w http.ResponseWriter) {
	var configs []models.GatewayConfig
	if err := database.DB.Where("is_active = ?", true).Order("created_at asc").Find(&configs).Error; err != nil {
		utils.WriteActionError(w, http.StatusBadRequest, "Failed to list gateways")
		return
	}
	public := make([]models.GatewayConfigPublic, 0, len(configs))
	for _, cfg := range configs {
		public = append(public, cfg.Public())
	}
	utils.WriteActionJSON(w, http.StatusOK, map[string]interface{}{"gateways": public})
}
