package admins

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/wallifypinho/blue-pay-panel/middleware"
	"github.com/wallifypinho/blue-pay-panel/utils"
)

type LoginRequest struct {
	Password string `json:"password"`
}

// Login checks the submitted password against the single ADMIN_PASSWORD
// secret and, on match, issues a signed expiring access token. The token is
// validated on every admin action; its presence alone grants nothing.
func Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteActionError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		utils.WriteActionError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if !utils.ConstantTimeEquals(req.Password, adminPassword) {
		utils.WriteActionError(w, http.StatusUnauthorized, "Invalid password")
		return
	}

	token, err := utils.GenerateAdminToken()
	if err != nil {
		utils.WriteActionError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	utils.WriteActionJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"sessionToken": token,
	})
}

// Logout revokes the presented token's jti until its natural expiry.
// Best-effort when no revocation store is configured.
func Logout(w http.ResponseWriter, r *http.Request) {
	claims := middleware.AdminClaims(r.Context())
	if claims == nil {
		utils.WriteActionError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if err := utils.RevokeAdminToken(claims); err != nil {
		utils.WriteActionError(w, http.StatusInternalServerError, "Failed to revoke session")
		return
	}
	utils.WriteActionJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// Session lets the panel verify that a stored token is still usable.
func Session(w http.ResponseWriter, r *http.Request) {
	utils.WriteActionJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
