package operators

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/wallifypinho/blue-pay-panel/database"
	"github.com/wallifypinho/blue-pay-panel/models"
	"github.com/wallifypinho/blue-pay-panel/utils"

	"gorm.io/gorm"
)

type LoginRequest struct {
	Slug     string `json:"slug"`
	Password string `json:"password"`
}

// Login authenticates an operator by slug and rotates their session token.
// One active session per operator: the newly persisted token invalidates any
// token issued before it.
func Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteActionError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.Slug == "" || req.Password == "" {
		utils.WriteActionError(w, http.StatusBadRequest, "Slug and password are required")
		return
	}

	var operator models.Operator
	err := database.DB.First(&operator, "slug = ?", strings.ToLower(strings.TrimSpace(req.Slug))).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteActionError(w, http.StatusNotFound, "Operator not found")
			return
		}
		utils.WriteActionError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if !operator.ValidatePassword(req.Password) {
		utils.WriteActionError(w, http.StatusUnauthorized, "Invalid password")
		return
	}

	sessionToken, err := utils.GenerateSessionToken()
	if err != nil {
		utils.WriteActionError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}
	if err := database.DB.Model(&operator).Update("session_token", sessionToken).Error; err != nil {
		utils.WriteActionError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	utils.WriteActionJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"operator": map[string]interface{}{
			"id":       operator.ID,
			"name":     operator.Name,
			"slug":     operator.Slug,
			"whatsapp": operator.Whatsapp,
		},
		"sessionToken": sessionToken,
	})
}
