// Package airalo is the SDK facade: one Client wiring configuration, auth,
// caching, and transport together, with a service per API area.
package airalo

import "time"

// API endpoint slugs, appended to the environment base URL.
const (
	SlugPackages           = "/packages"
	SlugOrders             = "/orders"
	SlugOrdersAsync        = "/orders-async"
	SlugTopups             = "/orders/topups"
	SlugVoucherAirmoney    = "/voucher/airmoney"
	SlugVoucherEsim        = "/voucher/esim"
	SlugSims               = "/sims"
	SlugCompatibleDevices  = "/compatible-devices"
	SlugFutureOrders       = "/future-orders"
	SlugCancelFutureOrders = "/cancel-future-orders"
	SlugExchangeRates      = "/finance/exchange-rates"
)

// Request limits enforced locally before any network call.
const (
	// OrderLimit caps the quantity of a single order.
	OrderLimit = 50

	// BulkOrderLimit caps the number of packages in one bulk order.
	BulkOrderLimit = 50

	// FutureOrderLimit caps the quantity of a future order.
	FutureOrderLimit = 50

	// VoucherMaxAmount caps a single airmoney voucher amount.
	VoucherMaxAmount = 100000

	// VoucherMaxQuantity caps the voucher count per request.
	VoucherMaxQuantity = 100
)

// Cache TTLs per response family.
const (
	// DefaultCacheTTL applies to slow-changing resources such as the
	// package catalog and installation instructions.
	DefaultCacheTTL = time.Hour

	// SimUsageTTL applies to usage and top-up history, which move fast.
	SimUsageTTL = 5 * time.Minute

	// SimPackageHistoryTTL applies to a SIM's package history.
	SimPackageHistoryTTL = 15 * time.Minute
)

// FutureOrderDateLayout is the only accepted due-date format (UTC).
const FutureOrderDateLayout = "2006-01-02 15:04"

// ExchangeRateDateLayout is the accepted exchange-rate date format.
const ExchangeRateDateLayout = "2006-01-02"

// tokenPrefixLen bounds how much of the access token enters cache keys.
const tokenPrefixLen = 20

const defaultOrderDescription = "Order placed via airalo-esim-client"
