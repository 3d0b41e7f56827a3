package plaidster

import "time"

// Environment selects which API host requests are sent to.
type Environment int

const (
	// Tartan is the development environment backed by test institutions.
	Tartan Environment = iota
	// Production is the live environment.
	Production
)

const (
	tartanURL     = "https://tartan.plaid.com"
	productionURL = "https://api.plaid.com"
)

func (e Environment) baseURL() string {
	if e == Production {
		return productionURL
	}
	return tartanURL
}

// Product is the API product a login is submitted against.
type Product string

const (
	// ProductConnect links an institution for transaction data.
	ProductConnect Product = "connect"
	// ProductAuth links an institution for account/routing numbers.
	ProductAuth Product = "auth"
)

const (
	stepPath         = "/step"
	balancePath      = "/balance"
	transactionsPath = "/connect/get"
	categoriesPath   = "/categories"
	institutionsPath = "/institutions"
	longtailPath     = "/institutions/longtail"
	searchPath       = "/institutions/search"
)

// DefaultTimeout is applied to every request unless overridden with
// WithClientTimeout.
const DefaultTimeout = 60 * time.Second
