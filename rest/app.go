package rest

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hpmalinova/Household-Manager/config"
	"github.com/hpmalinova/Household-Manager/contract"
	"github.com/hpmalinova/Household-Manager/service"
)

type App struct {
	Router *mux.Router
	Store  contract.Store

	Groups     *service.Groups
	Membership *service.Membership
	Ledger     *service.Ledger
	Board      *service.Board

	Validator  *validator.Validate
	Translator ut.Translator

	Secret   []byte
	TokenTTL time.Duration
}

func NewApp(
	cfg *config.Config,
	store contract.Store,
	groups *service.Groups,
	membership *service.Membership,
	ledger *service.Ledger,
	board *service.Board,
) (*App, error) {
	a := &App{
		Store:      store,
		Groups:     groups,
		Membership: membership,
		Ledger:     ledger,
		Board:      board,
		Secret:     []byte(cfg.JWTSecret),
		TokenTTL:   cfg.TokenTTL,
	}

	a.Validator = validator.New()
	eng := en.New()
	uni := ut.New(eng, eng)

	var found bool
	a.Translator, found = uni.GetTranslator("en")
	if !found {
		return nil, fmt.Errorf("translator not found")
	}
	if err := en_translations.RegisterDefaultTranslations(a.Validator, a.Translator); err != nil {
		return nil, err
	}

	a.Router = mux.NewRouter()
	a.initializeRoutes()
	return a, nil
}

func (a *App) initializeRoutes() {
	a.Router.Use(requestID, logRequests, measure)

	a.Router.HandleFunc("/register", a.register).Methods(http.MethodPost)
	a.Router.HandleFunc("/login", a.login).Methods(http.MethodPost)
	a.Router.HandleFunc("/healthz", a.healthz).Methods(http.MethodGet)
	a.Router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	// Auth route
	s := a.Router.PathPrefix("/api").Subrouter()
	s.Use(a.JwtVerify)

	s.HandleFunc("/users/{id:[0-9]+}", a.getUser).Methods(http.MethodGet)

	s.HandleFunc("/groups", a.getGroups).Methods(http.MethodGet)
	s.HandleFunc("/groups", a.addGroup).Methods(http.MethodPost)
	s.HandleFunc("/groups/{groupId:[0-9]+}", a.getGroup).Methods(http.MethodGet)
	s.HandleFunc("/groups/{groupId:[0-9]+}", a.updateGroup).Methods(http.MethodPut)
	s.HandleFunc("/groups/{groupId:[0-9]+}", a.deleteGroup).Methods(http.MethodDelete)
	s.HandleFunc("/groups/{groupId:[0-9]+}/members", a.getMembers).Methods(http.MethodGet)
	s.HandleFunc("/groups/{groupId:[0-9]+}/expenses", a.getExpenses).Methods(http.MethodGet)
	s.HandleFunc("/groups/{groupId:[0-9]+}/tasks", a.getTasks).Methods(http.MethodGet)

	s.HandleFunc("/group-members", a.addMember).Methods(http.MethodPost)
	s.HandleFunc("/group-members/{id:[0-9]+}/promote", a.promoteMember).Methods(http.MethodPut)
	s.HandleFunc("/group-members/{id:[0-9]+}/demote", a.demoteMember).Methods(http.MethodPut)
	s.HandleFunc("/group-members/{id:[0-9]+}", a.removeMember).Methods(http.MethodDelete)

	s.HandleFunc("/expenses", a.addExpense).Methods(http.MethodPost)
	s.HandleFunc("/expenses/{id:[0-9]+}", a.getExpense).Methods(http.MethodGet)
	s.HandleFunc("/expenses/{id:[0-9]+}", a.updateExpense).Methods(http.MethodPut)
	s.HandleFunc("/expenses/{id:[0-9]+}", a.deleteExpense).Methods(http.MethodDelete)
	s.HandleFunc("/expenses/{id:[0-9]+}/contributions", a.getContributions).Methods(http.MethodGet)
	s.HandleFunc("/contributions", a.addContribution).Methods(http.MethodPost)

	s.HandleFunc("/tasks", a.addTask).Methods(http.MethodPost)
	s.HandleFunc("/tasks/{id:[0-9]+}", a.getTask).Methods(http.MethodGet)
	s.HandleFunc("/tasks/{id:[0-9]+}", a.updateTask).Methods(http.MethodPut)
	s.HandleFunc("/tasks/{id:[0-9]+}", a.deleteTask).Methods(http.MethodDelete)
	s.HandleFunc("/tasks/{id:[0-9]+}/claim", a.claimTask).Methods(http.MethodPut)
	s.HandleFunc("/tasks/{id:[0-9]+}/unclaim", a.unclaimTask).Methods(http.MethodPut)
	s.HandleFunc("/tasks/{id:[0-9]+}/change-stage", a.changeTaskStage).Methods(http.MethodPut)
}

func (a *App) healthz(w http.ResponseWriter, r *http.Request) {
	if err := a.Store.Ping(r.Context()); err != nil {
		respondWithError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
