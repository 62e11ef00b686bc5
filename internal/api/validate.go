package api

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	minUsernameLen = 3
	minPasswordLen = 6
)

// ValidationError describes one invalid request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func joinValidation(errs []ValidationError) error {
	msgs := make([]string, len(errs))
	for i, ve := range errs {
		msgs[i] = ve.Message
	}
	return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(msgs, "; "))
}

// ValidateTransfer checks a transfer before it is sent. Account numbers are
// opaque and only checked for presence.
func ValidateTransfer(r TransferRequest) []ValidationError {
	var errs []ValidationError
	if strings.TrimSpace(r.FromAccountNumber) == "" {
		errs = append(errs, ValidationError{"fromAccountNumber", "Please enter the source account number"})
	}
	if r.FromRoutingNumber <= 0 {
		errs = append(errs, ValidationError{"fromRoutingNumber", "Please enter a valid source routing number"})
	}
	if strings.TrimSpace(r.ToAccountNumber) == "" {
		errs = append(errs, ValidationError{"toAccountNumber", "Please enter the destination account number"})
	}
	if r.ToRoutingNumber <= 0 {
		errs = append(errs, ValidationError{"toRoutingNumber", "Please enter a valid destination routing number"})
	}
	if r.Amount <= 0 {
		errs = append(errs, ValidationError{"amount", "Amount must be greater than zero"})
	}
	return errs
}

// ValidateSignup checks a signup form in the order the fields appear.
func ValidateSignup(r CreateUserRequest) []ValidationError {
	var errs []ValidationError
	required := []struct {
		field, value, msg string
	}{
		{"name", r.Name, "Please enter your first name"},
		{"lastName", r.LastName, "Please enter your last name"},
		{"address", r.Address, "Please enter your address"},
		{"phoneNumber", r.PhoneNumber, "Please enter your phone number"},
	}
	for _, f := range required {
		if f.value == "" {
			errs = append(errs, ValidationError{f.field, f.msg})
		}
	}

	switch {
	case r.Username == "":
		errs = append(errs, ValidationError{"username", "Please enter a username"})
	case utf8.RuneCountInString(r.Username) < minUsernameLen:
		errs = append(errs, ValidationError{"username", fmt.Sprintf("Username must be at least %d characters", minUsernameLen)})
	}

	switch {
	case r.Password == "":
		errs = append(errs, ValidationError{"password", "Please enter a password"})
	case utf8.RuneCountInString(r.Password) < minPasswordLen:
		errs = append(errs, ValidationError{"password", fmt.Sprintf("Password must be at least %d characters", minPasswordLen)})
	case r.Password != r.ConfirmPassword:
		errs = append(errs, ValidationError{"confirmPassword", "Passwords do not match"})
	}
	return errs
}

// ValidateCreateAccount rejects a negative opening balance.
func ValidateCreateAccount(r CreateAccountRequest) []ValidationError {
	if r.AmountAvail.IsNegative() {
		return []ValidationError{{"amountAvail", "Initial amount cannot be negative"}}
	}
	return nil
}
