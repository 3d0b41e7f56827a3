package types

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMissingID is returned by the decoders when a record lacks its
// identifier. Records without identifiers are unusable downstream, so the
// decoders reject them instead of handing back half-empty values.
var ErrMissingID = errors.New("record is missing its identifier")

// Balance holds the available and current balance of an account.
type Balance struct {
	Available float64 `json:"available"`
	Current   float64 `json:"current"`
}

// AccountMeta carries the institution's own labeling of an account.
type AccountMeta struct {
	Name   string  `json:"name"`
	Number string  `json:"number"`
	Limit  float64 `json:"limit,omitempty"`
}

// Account is one account held at a linked institution.
type Account struct {
	ID              string      `json:"_id"`
	ItemID          string      `json:"_item"`
	UserID          string      `json:"_user"`
	Balance         Balance     `json:"balance"`
	InstitutionType string      `json:"institution_type"`
	Meta            AccountMeta `json:"meta"`
	Type            string      `json:"type"`
	Subtype         string      `json:"subtype,omitempty"`
}

// Address is a transaction's merchant address, when the server knows it.
type Address struct {
	City  string `json:"city,omitempty"`
	State string `json:"state,omitempty"`
	Zip   string `json:"zip,omitempty"`
}

// TransactionMeta carries location metadata attached to a transaction.
type TransactionMeta struct {
	Location struct {
		Address Address `json:"address"`
	} `json:"location"`
}

// Transaction is one settled or pending transaction on a linked account.
type Transaction struct {
	ID         string          `json:"_id"`
	AccountID  string          `json:"_account"`
	Amount     float64         `json:"amount"`
	Date       string          `json:"date"`
	Name       string          `json:"name"`
	Pending    bool            `json:"pending"`
	Meta       TransactionMeta `json:"meta"`
	Category   []string        `json:"category,omitempty"`
	CategoryID string          `json:"category_id,omitempty"`
	Score      float64         `json:"score,omitempty"`
}

// InstitutionCredentials describes the field labels an institution uses on
// its own login form.
type InstitutionCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
	PIN      string `json:"pin,omitempty"`
}

// Institution is one supported institution from the directory.
type Institution struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Type        string                 `json:"type"`
	HasMFA      bool                   `json:"has_mfa"`
	MFA         []string               `json:"mfa,omitempty"`
	Credentials InstitutionCredentials `json:"credentials"`
	Products    []string               `json:"products,omitempty"`
}

// SearchField is one credential field descriptor returned by the search
// endpoint, used to render a login form for the institution.
type SearchField struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

// SearchInstitution is the richer institution record returned by the
// search endpoint.
type SearchInstitution struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Type     string          `json:"type"`
	Products map[string]bool `json:"products,omitempty"`
	Fields   []SearchField   `json:"fields,omitempty"`
	Logo     string          `json:"logo,omitempty"`
}

// Category is one node of the transaction category taxonomy.
type Category struct {
	ID        string   `json:"id"`
	Type      string   `json:"type"`
	Hierarchy []string `json:"hierarchy,omitempty"`
}

// DecodeAccount decodes a single account record. Callers treat a failure as
// "skip this record", never as a batch failure.
func DecodeAccount(raw json.RawMessage) (Account, error) {
	var account Account
	if err := json.Unmarshal(raw, &account); err != nil {
		return Account{}, fmt.Errorf("decoding account: %w", err)
	}
	if account.ID == "" {
		return Account{}, fmt.Errorf("decoding account: %w", ErrMissingID)
	}
	return account, nil
}

// DecodeTransaction decodes a single transaction record.
func DecodeTransaction(raw json.RawMessage) (Transaction, error) {
	var transaction Transaction
	if err := json.Unmarshal(raw, &transaction); err != nil {
		return Transaction{}, fmt.Errorf("decoding transaction: %w", err)
	}
	if transaction.ID == "" {
		return Transaction{}, fmt.Errorf("decoding transaction: %w", ErrMissingID)
	}
	return transaction, nil
}

// DecodeInstitution decodes a single institution record.
func DecodeInstitution(raw json.RawMessage) (Institution, error) {
	var institution Institution
	if err := json.Unmarshal(raw, &institution); err != nil {
		return Institution{}, fmt.Errorf("decoding institution: %w", err)
	}
	if institution.ID == "" {
		return Institution{}, fmt.Errorf("decoding institution: %w", ErrMissingID)
	}
	return institution, nil
}

// DecodeSearchInstitution decodes a single search result record.
func DecodeSearchInstitution(raw json.RawMessage) (SearchInstitution, error) {
	var institution SearchInstitution
	if err := json.Unmarshal(raw, &institution); err != nil {
		return SearchInstitution{}, fmt.Errorf("decoding search institution: %w", err)
	}
	if institution.ID == "" {
		return SearchInstitution{}, fmt.Errorf("decoding search institution: %w", ErrMissingID)
	}
	return institution, nil
}

// DecodeCategory decodes a single category record.
func DecodeCategory(raw json.RawMessage) (Category, error) {
	var category Category
	if err := json.Unmarshal(raw, &category); err != nil {
		return Category{}, fmt.Errorf("decoding category: %w", err)
	}
	if category.ID == "" {
		return Category{}, fmt.Errorf("decoding category: %w", ErrMissingID)
	}
	return category, nil
}
