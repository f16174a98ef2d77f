package api

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"content-coach/webhook"
)

type API struct {
	router   *mux.Router
	db       *sql.DB
	secret   string
	notifier *webhook.Notifier
	now      func() time.Time
}

func NewAPI(db *sql.DB, secret string, notifier *webhook.Notifier) *API {
	r := mux.NewRouter()
	r = r.PathPrefix("/api").Subrouter()
	return &API{
		router:   r,
		db:       db,
		secret:   secret,
		notifier: notifier,
		now:      time.Now,
	}
}

func (a *API) Router() *mux.Router {
	return a.router
}

func (a *API) Handler() http.Handler {
	// Use Gorilla's built-in logging handler
	return handlers.LoggingHandler(os.Stdout, a.router)
}

type Response struct {
	Status   int `json:"status"`
	Response any `json:"response"`
}

func (a *API) Response(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(Response{
		Status:   status,
		Response: data,
	})
	if err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

func (a *API) RegisterRoutes() {
	a.router.Use(a.rateLimit(newRateLimiter(5, 10)))
	a.router.Use(a.withSession)

	a.router.HandleFunc("/health", a.health).Methods(http.MethodGet)
	a.router.HandleFunc("/login", a.login).Methods(http.MethodPost)
	a.router.HandleFunc("/webhook/typeform", a.intakeWebhook).Methods(http.MethodPost)

	a.router.HandleFunc("/coaches", a.createCoach).Methods(http.MethodPost)
	a.router.HandleFunc("/coaches", a.getCoaches).Methods(http.MethodGet)
	a.router.HandleFunc("/coaches/{id}", a.getCoach).Methods(http.MethodGet)
	a.router.HandleFunc("/coaches/{id}", a.updateCoach).Methods(http.MethodPut)
	a.router.HandleFunc("/coaches/{id}", a.deleteCoach).Methods(http.MethodDelete)
	a.router.HandleFunc("/coaches/{id}/move", a.moveCoach).Methods(http.MethodPatch)
	a.router.HandleFunc("/coaches/{id}/archive", a.archiveCoach).Methods(http.MethodPatch)
	a.router.HandleFunc("/coaches/{id}/meetings", a.getCoachMeetings).Methods(http.MethodGet)

	a.router.HandleFunc("/folders", a.createFolder).Methods(http.MethodPost)
	a.router.HandleFunc("/folders", a.getFolders).Methods(http.MethodGet)
	a.router.HandleFunc("/folders/{id}", a.deleteFolder).Methods(http.MethodDelete)
	a.router.HandleFunc("/folders/{id}/name", a.renameFolder).Methods(http.MethodPatch)
	a.router.HandleFunc("/folders/{id}/archive", a.archiveFolder).Methods(http.MethodPatch)

	a.router.HandleFunc("/meetings", a.createMeeting).Methods(http.MethodPost)
	a.router.HandleFunc("/meetings", a.getMeetings).Methods(http.MethodGet)
	a.router.HandleFunc("/meetings/{id}", a.getMeeting).Methods(http.MethodGet)

	a.router.HandleFunc("/admin/users", a.createUser).Methods(http.MethodPost)
	a.router.HandleFunc("/admin/users", a.getUsers).Methods(http.MethodGet)
	a.router.HandleFunc("/admin/users/{id}", a.deleteUser).Methods(http.MethodDelete)
	a.router.HandleFunc("/admin/users/{id}/role", a.setUserRole).Methods(http.MethodPut)
	a.router.HandleFunc("/admin/keys/{service}", a.setAPIKey).Methods(http.MethodPut)
	a.router.HandleFunc("/admin/keys/{service}", a.removeAPIKey).Methods(http.MethodDelete)
}
