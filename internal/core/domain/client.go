package domain

import (
	"errors"
	"time"
)

var (
	ErrClientNotFound = errors.New("client not found")
	ErrClientExists   = errors.New("client already exists")
)

// TaxRegime is the Brazilian tax regime a client company falls under.
type TaxRegime string

const (
	RegimeSimples   TaxRegime = "simples"
	RegimePresumido TaxRegime = "presumido"
	RegimeReal      TaxRegime = "real"
)

// Client is a company managed by the accounting office.
type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`       // razão social
	TradeName string    `json:"trade_name"` // nome fantasia
	CNPJ      string    `json:"cnpj"`       // 14 digits, unique
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Regime    TaxRegime `json:"regime"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
