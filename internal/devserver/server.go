package devserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/paysys/paysys/internal/feed"
	"github.com/paysys/paysys/internal/model"
)

const backendTrue = "True"

// Server exposes a Bank over the backend's HTTP API.
type Server struct {
	bank   *Bank
	logger *zap.Logger
}

// New creates a Server. A nil logger discards logs.
func New(bank *Bank, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{bank: bank, logger: logger}
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Post("/user-transaction", s.userTransactions)
	r.Get("/getAccount/{userID}", s.getAccount)
	r.Post("/createAccount/{userID}", s.createAccount)
	r.Post("/transaction/create/{accountID}", s.createTransaction)
	r.Post("/transaction/transfer", s.transfer)
	r.Post("/get-data-byUsername", s.userByName)
	r.Post("/createUser", s.createUser)
	r.Post("/user-data-exist", s.userExists)
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", r.Header.Get("X-Request-ID")),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)))
	})
}

func (s *Server) userTransactions(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID int `json:"userID"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, err, http.StatusBadRequest)
		return
	}
	txns, err := s.bank.History(req.UserID)
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]string{"Error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"Success": backendTrue,
		"info":    feed.Format(txns),
	})
}

func (s *Server) getAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := intParam(w, r, "userID")
	if !ok {
		return
	}
	acct, found := s.bank.Account(userID)
	if !found {
		writeJSON(w, http.StatusOK, map[string]any{"hasAccount": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"hasAccount":    true,
		"accountNumber": acct.AccountNumber,
		"routingNumber": strconv.Itoa(acct.RoutingNumber),
		"balance":       acct.AmountAvail.InexactFloat64(),
	})
}

func (s *Server) createAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := intParam(w, r, "userID")
	if !ok {
		return
	}
	var req struct {
		RoutingNumber int     `json:"routingNumber"`
		AccountNumber string  `json:"accountNumber"`
		AmountAvail   float64 `json:"amountAvail"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, err, http.StatusBadRequest)
		return
	}
	acct, err := s.bank.OpenAccount(userID, req.AccountNumber, req.RoutingNumber, decimal.NewFromFloat(req.AmountAvail))
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"success":       "Account created",
		"accountNumber": acct.AccountNumber,
		"routingNumber": strconv.Itoa(acct.RoutingNumber),
	})
}

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	accountID, ok := intParam(w, r, "accountID")
	if !ok {
		return
	}
	var req struct {
		Description string `json:"description"`
		TransAmount int64  `json:"transAmount"`
		Type        string `json:"type"`
		Status      string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, err, http.StatusBadRequest)
		return
	}
	txn := model.Transaction{
		Description: req.Description,
		Amount:      req.TransAmount,
		Type:        model.TxType(req.Type),
		Status:      model.TxStatus(req.Status),
	}
	if err := s.bank.Record(accountID, txn); err != nil {
		writeJSON(w, http.StatusOK, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"success": "Transaction created"})
}

func (s *Server) transfer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FromAccountNumber string `json:"fromAccountNumber"`
		FromRoutingNumber int    `json:"fromRoutingNumber"`
		ToAccountNumber   string `json:"toAccountNumber"`
		ToRoutingNumber   int    `json:"toRoutingNumber"`
		Amount            int64  `json:"amount"`
		Description       string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, err, http.StatusBadRequest)
		return
	}
	err := s.bank.Transfer(req.FromAccountNumber, req.FromRoutingNumber, req.ToAccountNumber, req.ToRoutingNumber, req.Amount, req.Description)
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"success": "Transfer successful",
		"amount":  strconv.FormatInt(req.Amount, 10),
		"from":    req.FromAccountNumber,
		"to":      req.ToAccountNumber,
	})
}

func (s *Server) userByName(w http.ResponseWriter, r *http.Request) {
	username, err := readName(r)
	if err != nil {
		writeErr(w, err, http.StatusBadRequest)
		return
	}
	u, err := s.bank.UserByName(username)
	if err != nil {
		writeErr(w, err, http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"id":           strconv.Itoa(u.UserID),
		"name":         u.Name,
		"lastName":     u.LastName,
		"address":      u.Address,
		"accountType":  string(u.AccountType),
		"Phone Number": u.PhoneNumber,
	})
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		LastName    string `json:"lastName"`
		Address     string `json:"address"`
		AccountType string `json:"accountType"`
		PhoneNumber string `json:"phoneNumber"`
		Username    string `json:"username"`
		Password    string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, err, http.StatusBadRequest)
		return
	}
	_, err := s.bank.AddUser(model.User{
		Name:        req.Name,
		LastName:    req.LastName,
		Address:     req.Address,
		AccountType: model.AccountType(req.AccountType),
		PhoneNumber: req.PhoneNumber,
		Username:    req.Username,
	}, req.Password)
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]string{"Error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"Success": "User created"})
}

func (s *Server) userExists(w http.ResponseWriter, r *http.Request) {
	username, err := readName(r)
	if err != nil {
		writeErr(w, err, http.StatusBadRequest)
		return
	}
	_, err = s.bank.UserByName(username)
	switch {
	case errors.Is(err, ErrUserNotFound):
		writeJSON(w, http.StatusOK, map[string]string{"Exists": "false", "Message": "Username is available"})
	case err != nil:
		writeJSON(w, http.StatusOK, map[string]string{"Error": err.Error()})
	default:
		writeJSON(w, http.StatusOK, map[string]string{"Exists": "true", "Message": "Username is taken"})
	}
}

// readName reads a bare username body, tolerating JSON quoting.
func readName(r *http.Request) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r.Body, 1024))
	if err != nil {
		return "", err
	}
	return strings.Trim(strings.TrimSpace(string(data)), `"`), nil
}

func intParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		writeErr(w, err, http.StatusBadRequest)
		return 0, false
	}
	return v, true
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, err error, code int) {
	http.Error(w, err.Error(), code)
}
