package airalo

import "encoding/json"

// Envelope is the generic API response shape. Data stays raw so callers can
// decode into whatever the endpoint returns.
type Envelope struct {
	Data json.RawMessage `json:"data"`
	Meta *Meta           `json:"meta,omitempty"`
}

// Meta carries response metadata; LastPage drives catalog pagination.
type Meta struct {
	Message  string `json:"message,omitempty"`
	LastPage int    `json:"last_page,omitempty"`
}

// PackageList is the aggregated package catalog. Pricing passes through
// unchanged from the API.
type PackageList struct {
	Pricing json.RawMessage   `json:"pricing,omitempty"`
	Data    []CountryPackages `json:"data"`
}

// CountryPackages groups the operators selling packages for one country.
type CountryPackages struct {
	Slug        string     `json:"slug"`
	CountryCode string     `json:"country_code,omitempty"`
	Title       string     `json:"title,omitempty"`
	Image       *Image     `json:"image,omitempty"`
	Operators   []Operator `json:"operators"`
}

// Image is a hosted asset reference.
type Image struct {
	URL string `json:"url"`
}

// Operator is one network operator with its packages and coverage.
type Operator struct {
	Title            string            `json:"title"`
	PlanType         string            `json:"plan_type,omitempty"`
	ActivationPolicy string            `json:"activation_policy,omitempty"`
	IsRoaming        bool              `json:"is_roaming,omitempty"`
	Info             json.RawMessage   `json:"info,omitempty"`
	Image            *Image            `json:"image,omitempty"`
	Countries        []OperatorCountry `json:"countries,omitempty"`
	Packages         []Package         `json:"packages"`
}

// OperatorCountry is a coverage entry.
type OperatorCountry struct {
	CountryCode string `json:"country_code"`
}

// Package is one purchasable data package.
type Package struct {
	ID          string   `json:"id"`
	Type        string   `json:"type,omitempty"`
	Price       float64  `json:"price"`
	NetPrice    float64  `json:"net_price,omitempty"`
	Amount      float64  `json:"amount,omitempty"`
	Day         int      `json:"day,omitempty"`
	IsUnlimited bool     `json:"is_unlimited,omitempty"`
	Title       string   `json:"title,omitempty"`
	Data        string   `json:"data,omitempty"`
	ShortInfo   string   `json:"short_info,omitempty"`
	Voice       *float64 `json:"voice,omitempty"`
	Text        *float64 `json:"text,omitempty"`
}

// FlatPackage is one package denormalized with its country and operator
// context, the shape Flatten produces.
type FlatPackage struct {
	PackageID        string   `json:"package_id"`
	Slug             string   `json:"slug"`
	Type             string   `json:"type,omitempty"`
	Price            float64  `json:"price"`
	NetPrice         float64  `json:"net_price,omitempty"`
	Amount           float64  `json:"amount,omitempty"`
	Day              int      `json:"day,omitempty"`
	IsUnlimited      bool     `json:"is_unlimited,omitempty"`
	Title            string   `json:"title,omitempty"`
	Data             string   `json:"data,omitempty"`
	ShortInfo        string   `json:"short_info,omitempty"`
	Voice            *float64 `json:"voice,omitempty"`
	Text             *float64 `json:"text,omitempty"`
	PlanType         string   `json:"plan_type,omitempty"`
	ActivationPolicy string   `json:"activation_policy,omitempty"`
	Operator         string   `json:"operator,omitempty"`
	Countries        []string `json:"countries"`
	Image            string   `json:"image,omitempty"`
}

// FlatPackageList pairs flattened packages with the pass-through pricing.
type FlatPackageList struct {
	Pricing json.RawMessage `json:"pricing,omitempty"`
	Data    []FlatPackage   `json:"data"`
}

// Flatten denormalizes country -> operator -> package nesting into one
// record per package.
func (l *PackageList) Flatten() *FlatPackageList {
	flat := &FlatPackageList{
		Pricing: l.Pricing,
		Data:    make([]FlatPackage, 0),
	}

	for _, country := range l.Data {
		for _, operator := range country.Operators {
			countries := make([]string, 0, len(operator.Countries))
			for _, c := range operator.Countries {
				countries = append(countries, c.CountryCode)
			}

			var image string
			if operator.Image != nil {
				image = operator.Image.URL
			}

			for _, pkg := range operator.Packages {
				flat.Data = append(flat.Data, FlatPackage{
					PackageID:        pkg.ID,
					Slug:             country.Slug,
					Type:             pkg.Type,
					Price:            pkg.Price,
					NetPrice:         pkg.NetPrice,
					Amount:           pkg.Amount,
					Day:              pkg.Day,
					IsUnlimited:      pkg.IsUnlimited,
					Title:            pkg.Title,
					Data:             pkg.Data,
					ShortInfo:        pkg.ShortInfo,
					Voice:            pkg.Voice,
					Text:             pkg.Text,
					PlanType:         operator.PlanType,
					ActivationPolicy: operator.ActivationPolicy,
					Operator:         operator.Title,
					Countries:        countries,
					Image:            image,
				})
			}
		}
	}
	return flat
}

// OrderRequest creates a single eSIM order.
type OrderRequest struct {
	PackageID   string `json:"package_id"`
	Quantity    int    `json:"quantity"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`

	// Optional branding / webhook extras.
	BrandSettingsName string `json:"brand_settings_name,omitempty"`
	WebhookURL        string `json:"webhook_url,omitempty"`
}

// EmailSimShare delivers purchased eSIMs by email.
type EmailSimShare struct {
	ToEmail       string   `json:"to_email"`
	SharingOption []string `json:"sharing_option"`
	CopyAddress   []string `json:"copy_address,omitempty"`
}

// TopupRequest tops up an existing eSIM.
type TopupRequest struct {
	PackageID   string `json:"package_id"`
	ICCID       string `json:"iccid"`
	Description string `json:"description,omitempty"`
}

// VoucherRequest creates airmoney vouchers.
type VoucherRequest struct {
	Amount      int    `json:"amount"`
	Quantity    int    `json:"quantity"`
	VoucherCode string `json:"voucher_code,omitempty"`
	UsageLimit  int    `json:"usage_limit,omitempty"`
	IsPaid      bool   `json:"is_paid,omitempty"`
}

// EsimVoucherItem is one package line in an eSIM voucher request.
type EsimVoucherItem struct {
	PackageID string `json:"package_id"`
	Quantity  int    `json:"quantity"`
}

// EsimVoucherRequest creates eSIM vouchers. The quantity cap is checked
// against the top-level Quantity field, not the per-item quantities; see
// DESIGN.md for why this mirror of the upstream behavior is kept.
type EsimVoucherRequest struct {
	Vouchers []EsimVoucherItem `json:"vouchers"`
	Quantity int               `json:"quantity,omitempty"`
}

// FutureOrderRequest schedules an order for a later due date.
type FutureOrderRequest struct {
	PackageID         string `json:"package_id"`
	Quantity          int    `json:"quantity"`
	DueDate           string `json:"due_date"`
	Description       string `json:"description,omitempty"`
	WebhookURL        string `json:"webhook_url,omitempty"`
	BrandSettingsName string `json:"brand_settings_name,omitempty"`
	ToEmail           string `json:"to_email,omitempty"`
	SharingOption     []string `json:"sharing_option,omitempty"`
	CopyAddress       []string `json:"copy_address,omitempty"`
}

// CancelFutureOrderRequest cancels previously created future orders.
type CancelFutureOrderRequest struct {
	RequestIDs []string `json:"request_ids"`
}

// ExchangeRateOptions filters the exchange-rate query. Both fields are
// optional; zero values are omitted from the request.
type ExchangeRateOptions struct {
	// Date in ExchangeRateDateLayout form.
	Date string

	// To is a comma-separated list of 3-letter currency codes.
	To string
}
