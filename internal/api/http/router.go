package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"rentivo-backend/internal/security"
)

// NewRouter wires every endpoint. Login, health and the public availability
// listing skip authentication; everything else requires a bearer token.
func NewRouter(
	tokens security.TokenManager,
	auth *AuthHandler,
	bookings *BookingHandler,
	payments *PaymentHandler,
	issues *IssueHandler,
	notifications *NotificationHandler,
) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "version": "1.0"})
	}).Methods(http.MethodGet)

	router.HandleFunc("/auth/login", auth.Login).Methods(http.MethodPost)
	router.HandleFunc("/items/{id}/availability", bookings.ListAvailability).Methods(http.MethodGet)

	protected := router.NewRoute().Subrouter()
	protected.Use(AuthMiddleware(tokens))

	protected.HandleFunc("/bookings", bookings.Create).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", bookings.List).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{id}", bookings.Get).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{id}/handover", bookings.Handover).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{id}/return", bookings.Return).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{id}/extend", bookings.Extend).Methods(http.MethodPatch)
	protected.HandleFunc("/items/{id}/availability", bookings.AddAvailability).Methods(http.MethodPost)

	protected.HandleFunc("/payments", payments.Create).Methods(http.MethodPost)
	protected.HandleFunc("/payments", payments.List).Methods(http.MethodGet)
	protected.HandleFunc("/payments/confirm", payments.Confirm).Methods(http.MethodPost)

	protected.HandleFunc("/issues", issues.Raise).Methods(http.MethodPost)
	protected.HandleFunc("/issues", issues.List).Methods(http.MethodGet)
	protected.HandleFunc("/issues/{id}/resolve", issues.Resolve).Methods(http.MethodPatch)
	protected.HandleFunc("/admin/insurance", issues.InsurancePool).Methods(http.MethodGet)

	protected.HandleFunc("/devices", notifications.RegisterDevice).Methods(http.MethodPost)
	protected.HandleFunc("/notifications", notifications.List).Methods(http.MethodGet)

	return router
}
