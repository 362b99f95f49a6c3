package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/wallifypinho/blue-pay-panel/controllers"
	"github.com/wallifypinho/blue-pay-panel/controllers/admins"
	"github.com/wallifypinho/blue-pay-panel/controllers/operators"
	"github.com/wallifypinho/blue-pay-panel/middleware"
	"github.com/wallifypinho/blue-pay-panel/utils"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

func optionsHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "healthy",
		Data: map[string]interface{}{
			"timestamp": time.Now().Unix(),
			"service":   "blue-pay-panel",
		},
	})
}

func InitRouter() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// CORS origins from CORS_ALLOWED_ORIGINS (comma-separated) or defaults
	origins := []string{"http://localhost:3000", "http://localhost:5173", "http://127.0.0.1:3000"}
	if originsEnv := os.Getenv("CORS_ALLOWED_ORIGINS"); originsEnv != "" {
		for _, p := range strings.Split(originsEnv, ",") {
			if o := strings.TrimSpace(p); o != "" {
				origins = append(origins, o)
			}
		}
	}
	r.Use(func(next http.Handler) http.Handler {
		return handlers.CORS(
			handlers.AllowedOrigins(origins),
			handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
			handlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-Requested-With", "X-Request-ID"}),
			handlers.AllowCredentials(),
		)(next)
	})

	api := r.PathPrefix("/v1").Subrouter()
	api.PathPrefix("/").HandlerFunc(optionsHandler).Methods(http.MethodOptions)

	// Public read surface: payment invoice pages and operator panel profile
	api.HandleFunc("/payments/{id}", controllers.GetPaymentByID).Methods(http.MethodGet)
	api.HandleFunc("/payments/{id}/qr.png", controllers.GetPaymentQR).Methods(http.MethodGet)
	api.HandleFunc("/p/{code}", controllers.GetPaymentByShortCode).Methods(http.MethodGet)
	api.HandleFunc("/operators/{slug}", controllers.GetOperatorBySlug).Methods(http.MethodGet)

	// Admin surface
	api.HandleFunc("/admin/login", admins.Login).Methods(http.MethodPost)
	api.HandleFunc("/admin/actions", admins.Actions).Methods(http.MethodPost)
	api.Handle("/admin/logout", middleware.AdminAuthMiddleware(http.HandlerFunc(admins.Logout))).Methods(http.MethodPost)
	api.Handle("/admin/session", middleware.AdminAuthMiddleware(http.HandlerFunc(admins.Session))).Methods(http.MethodGet)

	// Operator surface
	api.HandleFunc("/operator/login", operators.Login).Methods(http.MethodPost)
	api.HandleFunc("/operator/actions", operators.Actions).Methods(http.MethodPost)

	return r
}
