package admins

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/wallifypinho/blue-pay-panel/database"
	"github.com/wallifypinho/blue-pay-panel/gateway"
	"github.com/wallifypinho/blue-pay-panel/models"
	"github.com/wallifypinho/blue-pay-panel/utils"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// ActionRequest is the admin action envelope. The session token travels in
// the body per the panel's contract; it is validated as a signed token, not
// merely checked for presence.
type ActionRequest struct {
	Action       string          `json:"action"`
	SessionToken string          `json:"sessionToken"`
	Data         json.RawMessage `json:"data"`
}

// Actions dispatches the fixed set of admin operations. Unknown action names
// yield a generic 400.
func Actions(w http.ResponseWriter, r *http.Request) {
	var req ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteActionError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if req.SessionToken == "" {
		utils.WriteActionError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if _, err := utils.ValidateAdminToken(req.SessionToken); err != nil {
		utils.WriteActionError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	switch req.Action {
	case "create-operator":
		createOperator(w, req.Data)
	case "delete-operator":
		deleteOperator(w, req.Data)
	case "list-operators":
		listOperators(w)
	case "create-payment":
		createPayment(w, r, req.Data)
	case "delete-payment":
		deletePayment(w, req.Data)
	case "list-payments":
		listPayments(w)
	case "create-gateway":
		createGateway(w, req.Data)
	case "delete-gateway":
		deleteGateway(w, req.Data)
	case "list-gateways":
		listGateways(w)
	case "toggle-gateway":
		toggleGateway(w, req.Data)
	default:
		utils.WriteActionError(w, http.StatusBadRequest, "Unknown action")
	}
}

type operatorInput struct {
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Password string `json:"password"`
	Whatsapp string `json:"whatsapp"`
}

func createOperator(w http.ResponseWriter, data json.RawMessage) {
	var in operatorInput
	if err := json.Unmarshal(data, &in); err != nil {
		utils.WriteActionError(w, http.StatusBadRequest, "Invalid data")
		return
	}
	if in.Name == "" || in.Password == "" {
		utils.WriteActionError(w, http.StatusBadRequest, "Name, slug, and password are required")
		return
	}
	slug := in.Slug
	if slug == "" {
		slug = utils.Slugify(in.Name)
	}
	if slug == "" {
		utils.WriteActionError(w, http.StatusBadRequest, "Name, slug, and password are required")
		return
	}

	operator := models.Operator{
		Name:     utils.Truncate(in.Name, 100),
		Slug:     utils.Truncate(strings.ToLower(strings.TrimSpace(slug)), 50),
		Password: in.Password,
		Whatsapp: utils.Truncate(in.Whatsapp, 20),
	}
	if err := operator.HashPassword(); err != nil {
		utils.WriteActionError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	// Cap check and insert run in one transaction so concurrent creations
	// cannot both slip past the count.
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Operator{}).Count(&count).Error; err != nil {
			return err
		}
		if count >= models.MaxOperators {
			return errOperatorLimit
		}
		return tx.Create(&operator).Error
	})
	if err != nil {
		if errors.Is(err, errOperatorLimit) {
			utils.WriteActionError(w, http.StatusBadRequest, fmt.Sprintf("Operator limit reached (%d)", models.MaxOperators))
			return
		}
		if isDuplicateKey(err) {
			utils.WriteActionError(w, http.StatusBadRequest, "Slug already in use")
			return
		}
		utils.WriteActionError(w, http.StatusBadRequest, "Failed to create operator")
		return
	}

	utils.WriteActionJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"operator": map[string]interface{}{
			"id":         operator.ID,
			"name":       operator.Name,
			"slug":       operator.Slug,
			"whatsapp":   operator.Whatsapp,
			"created_at": operator.CreatedAt,
		},
	})
}

var errOperatorLimit = errors.New("operator limit reached")

// isDuplicateKey recognizes a unique-index violation (MySQL error 1062).
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysqldriver.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

type idInput struct {
	ID string `json:"id"`
}

func deleteOperator(w http.ResponseWriter, data json.RawMessage) {
	var in idInput
	if err := json.Unmarshal(data, &in); err != nil || in.ID == "" {
		utils.WriteActionError(w, http.StatusBadRequest, "Invalid data")
		return
	}
	if err := database.DB.Delete(&models.Operator{}, "id = ?", in.ID).Error; err != nil {
		utils.WriteActionError(w, http.StatusBadRequest, "Failed to delete operator")
		return
	}
	utils.WriteActionJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func listOperators(w http.ResponseWriter) {
	var operators []models.Operator
	if err := database.DB.Order("created_at asc").Find(&operators).Error; err != nil {
		utils.WriteActionError(w, http.StatusBadRequest, "Failed to list operators")
		return
	}
	utils.WriteActionJSON(w, http.StatusOK, map[string]interface{}{"operators": operators})
}

func createPayment(w http.ResponseWriter, r *http.Request, data json.RawMessage) {
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
	if in.OperatorID != "" {
		payment.OperatorID = utils.StringPtr(in.OperatorID)
	}

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

// chargeThroughGateway loads the active gateway config, creates the charge
// and fills the payment's PIX fields. Writes the error response and returns
// false on failure.
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
		// Accepted as-is but logged: an empty payload usually means the
		// provider changed its response shape.
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

func deletePayment(w http.ResponseWriter, data json.RawMessage) {
	var in idInput
	if err := json.Unmarshal(data, &in); err != nil || in.ID == "" {
		utils.WriteActionError(w, http.StatusBadRequest, "Invalid data")
		return
	}
	if err := database.DB.Delete(&models.Payment{}, "id = ?", in.ID).Error; err != nil {
		utils.WriteActionError(w, http.StatusBadRequest, "Failed to delete payment")
		return
	}
	utils.WriteActionJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func listPayments(w http.ResponseWriter) {
	var payments []models.Payment
	if err := database.DB.Order("created_at desc").Find(&payments).Error; err != nil {
		utils.WriteActionError(w, http.StatusBadRequest, "Failed to list payments")
		return
	}
	utils.WriteActionJSON(w, http.StatusOK, map[string]interface{}{"payments": payments})
}

type gatewayInput struct {
	Name      string `json:"name"`
	Provider  string `json:"provider"`
	APIURL    string `json:"api_url"`
	SecretKey string `json:"secret_key"`
	PublicKey string `json:"public_key"`
}

func createGateway(w http.ResponseWriter, data json.RawMessage) {
	var in gatewayInput
	if err := json.Unmarshal(data, &in); err != nil {
		utils.WriteActionError(w, http.StatusBadRequest, "Invalid data")
		return
	}
	if in.Name == "" || in.Provider == "" || in.APIURL == "" || in.SecretKey == "" {
		utils.WriteActionError(w, http.StatusBadRequest, "Name, provider, api_url, and secret_key are required")
		return
	}
	if !gateway.KnownProvider(in.Provider) {
		utils.WriteActionError(w, http.StatusBadRequest, fmt.Sprintf("Unknown gateway provider %q", in.Provider))
		return
	}

	cfg := models.GatewayConfig{
		Name:      utils.Truncate(in.Name, 100),
		Provider:  strings.ToLower(strings.TrimSpace(in.Provider)),
		APIURL:    utils.Truncate(in.APIURL, 255),
		SecretKey: utils.Truncate(in.SecretKey, 255),
		PublicKey: utils.Truncate(in.PublicKey, 255),
		IsActive:  true,
	}
	if err := database.DB.Create(&cfg).Error; err != nil {
		utils.WriteActionError(w, http.StatusBadRequest, "Failed to create gateway")
		return
	}
	utils.WriteActionJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"gateway": cfg,
	})
}

func deleteGateway(w http.ResponseWriter, data json.RawMessage) {
	var in idInput
	if err := json.Unmarshal(data, &in); err != nil || in.ID == "" {
		utils.WriteActionError(w, http.StatusBadRequest, "Invalid data")
		return
	}
	if err := database.DB.Delete(&models.GatewayConfig{}, "id = ?", in.ID).Error; err != nil {
		utils.WriteActionError(w, http.StatusBadRequest, "Failed to delete gateway")
		return
	}
	utils.WriteActionJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func listGateways(w http.ResponseWriter) {
	var configs []models.GatewayConfig
	if err := database.DB.Order("created_at asc").Find(&configs).Error; err != nil {
		utils.WriteActionError(w, http.StatusBadRequest, "Failed to list gateways")
		return
	}
	utils.WriteActionJSON(w, http.StatusOK, map[string]interface{}{"gateways": configs})
}

func toggleGateway(w http.ResponseWriter, data json.RawMessage) {
	var in idInput
	if err := json.Unmarshal(data, &in); err != nil || in.ID == "" {
		utils.WriteActionError(w, http.StatusBadRequest, "Invalid data")
		return
	}

	var cfg models.GatewayConfig
	if err := database.DB.First(&cfg, "id = ?", in.ID).Error; err != nil {
		utils.WriteActionError(w, http.StatusBadRequest, "Gateway not found")
		return
	}
	if err := database.DB.Model(&cfg).Update("is_active", !cfg.IsActive).Error; err != nil {
		utils.WriteActionError(w, http.StatusBadRequest, "Failed to update gateway")
		return
	}
	cfg.IsActive = !cfg.IsActive
	utils.WriteActionJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"gateway": cfg,
	})
}
