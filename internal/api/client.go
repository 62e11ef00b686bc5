package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/paysys/paysys/internal/config"
	"github.com/paysys/paysys/internal/model"
)

// Transport and request failures. ServerError covers messages the backend
// reports itself.
var (
	ErrInvalidURL     = errors.New("invalid URL")
	ErrRequestFailed  = errors.New("request failed")
	ErrDecodingFailed = errors.New("decoding failed")
	ErrInvalidRequest = errors.New("validation failed")
)

// maxBody caps how much of a response is read.
const maxBody = 1 << 20

// ServerError is an error message the backend returned in a 2xx body.
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string { return e.Message }

// UserMessage turns any client error into text fit for the user.
func UserMessage(err error) string {
	var se *ServerError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &se):
		return se.Message
	case errors.Is(err, ErrInvalidRequest):
		return err.Error()
	case errors.Is(err, ErrInvalidURL):
		return "Invalid URL"
	case errors.Is(err, ErrDecodingFailed):
		return "Failed to process server response"
	default:
		return "Request failed. Please try again."
	}
}

// Client talks to the banking backend over HTTP/JSON.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a Client for cfg.BaseURL.
func NewClient(cfg config.APIConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// TransactionHistory fetches the raw history blob for a user. A backend
// "Error" is reported in the result, not as an error.
func (c *Client) TransactionHistory(ctx context.Context, userID int) (HistoryResult, error) {
	var env historyEnvelope
	if err := c.doJSON(ctx, http.MethodPost, "user-transaction", historyRequest{UserID: userID}, &env); err != nil {
		return HistoryResult{}, err
	}
	return HistoryResult{
		Success:      deref(env.Success) == backendTrue,
		RawInfo:      env.Info,
		ErrorMessage: env.Error,
	}, nil
}

// GetAccount fetches the user's bank account, if any.
func (c *Client) GetAccount(ctx context.Context, userID int) (AccountResult, error) {
	var env accountEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "getAccount/"+strconv.Itoa(userID), nil, &env); err != nil {
		return AccountResult{}, err
	}
	res := AccountResult{HasAccount: env.HasAccount}
	if env.AccountNumber != nil {
		s := string(*env.AccountNumber)
		res.AccountNumber = &s
	}
	if env.RoutingNumber != nil {
		s := string(*env.RoutingNumber)
		res.RoutingNumber = &s
	}
	if env.Balance != nil {
		f := float64(*env.Balance)
		res.Balance = &f
	}
	return res, nil
}

// CreateAccount opens an account and returns it as the new authoritative
// account. The balance is the requested opening amount.
func (c *Client) CreateAccount(ctx context.Context, userID int, req CreateAccountRequest) (*model.Account, error) {
	if errs := ValidateCreateAccount(req); len(errs) > 0 {
		return nil, joinValidation(errs)
	}
	var resp CreateAccountResponse
	if err := c.doJSON(ctx, http.MethodPost, "createAccount/"+strconv.Itoa(userID), req, &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, &ServerError{Message: *resp.Error}
	}
	if resp.AccountNumber == nil || resp.RoutingNumber == nil {
		return nil, fmt.Errorf("%w: account number or routing number missing", ErrDecodingFailed)
	}
	routing, err := strconv.Atoi(string(*resp.RoutingNumber))
	if err != nil {
		return nil, fmt.Errorf("%w: routing number %q: %v", ErrDecodingFailed, string(*resp.RoutingNumber), err)
	}
	return &model.Account{
		AccountNumber: *resp.AccountNumber,
		RoutingNumber: routing,
		AmountAvail:   req.AmountAvail,
	}, nil
}

// CreateTransaction records a transaction and returns the backend's message.
func (c *Client) CreateTransaction(ctx context.Context, accountID int, req CreateTransactionRequest) (string, error) {
	if req.Status == "" {
		req.Status = model.StatusPending
	}
	var resp MessageResponse
	if err := c.doJSON(ctx, http.MethodPost, "transaction/create/"+strconv.Itoa(accountID), req, &resp); err != nil {
		return "", err
	}
	if resp.Error != nil {
		return "", &ServerError{Message: *resp.Error}
	}
	return deref(resp.Success), nil
}

// Transfer moves money between accounts.
func (c *Client) Transfer(ctx context.Context, req TransferRequest) (*TransferResponse, error) {
	if errs := ValidateTransfer(req); len(errs) > 0 {
		return nil, joinValidation(errs)
	}
	var resp TransferResponse
	if err := c.doJSON(ctx, http.MethodPost, "transaction/transfer", req, &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return &resp, &ServerError{Message: *resp.Error}
	}
	return &resp, nil
}

// Login looks the user up by username.
func (c *Client) Login(ctx context.Context, username string) (model.User, error) {
	var resp loginResponse
	if err := c.doString(ctx, "get-data-byUsername", username, &resp); err != nil {
		return model.User{}, err
	}
	return resp.user(username), nil
}

// CreateUser signs up a new user and returns the backend's message.
func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (string, error) {
	if errs := ValidateSignup(req); len(errs) > 0 {
		return "", joinValidation(errs)
	}
	var resp signupEnvelope
	if err := c.doJSON(ctx, http.MethodPost, "createUser", req, &resp); err != nil {
		return "", err
	}
	if resp.Error != nil {
		return "", &ServerError{Message: *resp.Error}
	}
	return deref(resp.Success), nil
}

// UsernameExists reports whether a username is taken.
func (c *Client) UsernameExists(ctx context.Context, username string) (bool, error) {
	var resp existsEnvelope
	if err := c.doString(ctx, "user-data-exist", username, &resp); err != nil {
		return false, err
	}
	if resp.Error != nil {
		return false, &ServerError{Message: *resp.Error}
	}
	return deref(resp.Exists) == "true", nil
}

func (c *Client) doJSON(ctx context.Context, method, endpoint string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling %s request: %w", endpoint, err)
		}
	}
	return c.do(ctx, method, endpoint, payload, out)
}

// doString POSTs a bare string body, as the username endpoints expect.
func (c *Client) doString(ctx context.Context, endpoint, body string, out any) error {
	return c.do(ctx, http.MethodPost, endpoint, []byte(body), out)
}

func (c *Client) do(ctx context.Context, method, endpoint string, payload []byte, out any) error {
	u, err := url.Parse(c.baseURL + "/" + endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: %s/%s", ErrInvalidURL, c.baseURL, endpoint)
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	c.logger.Debug("sending request",
		zap.String("method", method),
		zap.String("endpoint", endpoint),
		zap.String("request_id", requestID))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("request failed",
			zap.String("endpoint", endpoint),
			zap.String("request_id", requestID),
			zap.Error(err))
		return fmt.Errorf("%w: %s: %w", ErrRequestFailed, endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return fmt.Errorf("%w: reading %s response: %w", ErrRequestFailed, endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("backend returned non-2xx status",
			zap.String("endpoint", endpoint),
			zap.String("request_id", requestID),
			zap.Int("status_code", resp.StatusCode),
			zap.String("response", string(data)))
		return fmt.Errorf("%w: %s returned status %d", ErrRequestFailed, endpoint, resp.StatusCode)
	}

	if err := json.Unmarshal(data, out); err != nil {
		c.logger.Error("decoding response",
			zap.String("endpoint", endpoint),
			zap.String("request_id", requestID),
			zap.String("response", string(data)),
			zap.Error(err))
		return fmt.Errorf("%w: %s: %w", ErrDecodingFailed, endpoint, err)
	}
	return nil
}
