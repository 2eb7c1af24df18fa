package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/manjunath2605/courtcase-app/api"
	"github.com/manjunath2605/courtcase-app/api/scheduler"
	"github.com/manjunath2605/courtcase-app/config"
	"github.com/manjunath2605/courtcase-app/databases"
	"github.com/manjunath2605/courtcase-app/models"
	"github.com/manjunath2605/courtcase-app/notify"
)

// App stores the router, db connection and background workers, so it can be
// reused
type App struct {
	Router    *mux.Router
	Config    config.Config
	Mail      *notify.Dispatcher
	Scheduler *scheduler.Scheduler
	dbHelper  databases.DatabaseHelper
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	authmw := api.Auth{Secret: []byte(a.Config.JWTSecret)}
	hub := NewChatHub()

	auth := Auth{
		UDB:    databases.NewUserDatabase(a.dbHelper),
		CDB:    databases.NewCaseDatabase(a.dbHelper),
		ODB:    databases.NewClientOtpDatabase(a.dbHelper),
		Tokens: authmw,
		Mail:   a.Mail,
		Config: &a.Config,
	}
	cases := Case{DB: databases.NewCaseDatabase(a.dbHelper), Mail: a.Mail}
	chat := Chat{DB: databases.NewChatDatabase(a.dbHelper), UDB: databases.NewUserDatabase(a.dbHelper), Hub: hub}
	contact := Contact{Mail: a.Mail, SMS: notify.NewSMSSender(&a.Config), Config: &a.Config}

	r := mux.NewRouter()

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	apiCreate := r.PathPrefix("/api").Subrouter()

	apiCreate.Handle("/auth/login", http.HandlerFunc(auth.LoginHandler)).Methods("POST")
	apiCreate.Handle("/auth/login/request-otp", http.HandlerFunc(auth.RequestLoginOtpHandler)).Methods("POST")
	apiCreate.Handle("/auth/login/password/request-otp", http.HandlerFunc(auth.RequestPasswordOtpHandler)).Methods("POST")
	apiCreate.Handle("/auth/login/verify-otp", http.HandlerFunc(auth.VerifyLoginOtpHandler)).Methods("POST")
	apiCreate.Handle("/auth/client/request-otp", http.HandlerFunc(auth.RequestClientOtpHandler)).Methods("POST")
	apiCreate.Handle("/auth/client/verify-otp", http.HandlerFunc(auth.VerifyClientOtpHandler)).Methods("POST")
	apiCreate.Handle("/auth/forgot-password", http.HandlerFunc(auth.ForgotPasswordHandler)).Methods("POST")
	apiCreate.Handle("/auth/reset-password/{token}", http.HandlerFunc(auth.ResetPasswordHandler)).Methods("POST")

	apiCreate.Handle("/auth/register", authmw.Middleware(http.HandlerFunc(auth.RegisterHandler))).Methods("POST")
	apiCreate.Handle("/auth/users", authmw.Middleware(http.HandlerFunc(auth.ListUsersHandler))).Methods("GET")
	apiCreate.Handle("/auth/users/{user_id}", authmw.Middleware(http.HandlerFunc(auth.DeleteUserHandler))).Methods("DELETE")
	apiCreate.Handle("/auth/users/{user_id}/role", authmw.Middleware(http.HandlerFunc(auth.UpdateUserRoleHandler))).Methods("PUT")

	apiCreate.Handle("/cases", authmw.Middleware(http.HandlerFunc(cases.CaseHandler))).Methods("GET")
	apiCreate.Handle("/cases", authmw.Middleware(http.HandlerFunc(cases.CreateCaseHandler))).Methods("POST")
	apiCreate.Handle("/cases/today", authmw.Middleware(http.HandlerFunc(cases.CasesTodayHandler))).Methods("GET")
	apiCreate.Handle("/cases/{case_id}", authmw.Middleware(http.HandlerFunc(cases.CaseByIDHandler))).Methods("GET")
	apiCreate.Handle("/cases/{case_id}", authmw.Middleware(http.HandlerFunc(cases.UpdateCaseHandler))).Methods("PUT")
	apiCreate.Handle("/cases/{case_id}", authmw.Middleware(http.HandlerFunc(cases.DeleteCaseHandler))).Methods("DELETE")

	apiCreate.Handle("/chat", authmw.Middleware(http.HandlerFunc(chat.ChatHandler))).Methods("GET")
	apiCreate.Handle("/chat", authmw.Middleware(http.HandlerFunc(chat.CreateChatMessageHandler))).Methods("POST")
	apiCreate.Handle("/chat/unread-count", authmw.Middleware(http.HandlerFunc(chat.UnreadCountHandler))).Methods("GET")
	apiCreate.Handle("/chat/mark-read", authmw.Middleware(http.HandlerFunc(chat.MarkReadHandler))).Methods("POST")
	apiCreate.Handle("/chat/ws", authmw.Middleware(http.HandlerFunc(hub.ServeWS))).Methods("GET")
	apiCreate.Handle("/chat/{message_id}", authmw.Middleware(http.HandlerFunc(chat.UpdateChatMessageHandler))).Methods("PUT")
	apiCreate.Handle("/chat/{message_id}", authmw.Middleware(http.HandlerFunc(chat.DeleteChatMessageHandler))).Methods("DELETE")

	apiCreate.Handle("/contact", http.HandlerFunc(contact.ContactHandler)).Methods("POST")

	return r
}

// Initialize is invoked by main to connect with the database, start the
// background workers and create a router
func (a *App) Initialize() error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect()
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("courtcase-app has connected to the database")

	a.Mail = notify.NewDispatcher(notify.NewSender(&a.Config), notify.DefaultQueueSize)
	a.Mail.Start()

	a.Scheduler = scheduler.NewScheduler(databases.NewCaseDatabase(a.dbHelper), a.Mail)
	if os.Getenv("DISABLE_SCHEDULER") == "" {
		a.Scheduler.Start()
	}

	// initialize api router
	a.initializeRoutes()
	return nil

}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}
