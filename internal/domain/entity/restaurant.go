package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fenixpos/fenix-api/internal/domain/enum"
)

// Restaurant is the tenant of the system.
type Restaurant struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name       string    `gorm:"size:150;not null" json:"name"`
	Slug       string    `gorm:"size:150;uniqueIndex;not null" json:"slug"`
	Street     string    `gorm:"size:150" json:"street,omitempty"`
	ExtNumber  string    `gorm:"size:20" json:"ext_number,omitempty"`
	Suburb     string    `gorm:"size:100" json:"suburb,omitempty"`
	City       string    `gorm:"size:100" json:"city,omitempty"`
	State      string    `gorm:"size:100" json:"state,omitempty"`
	PostalCode string    `gorm:"size:10" json:"postal_code,omitempty"`
	TaxID      string    `gorm:"size:30" json:"tax_id,omitempty"`
	Phone      string    `gorm:"size:30" json:"phone,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Config *RestaurantConfig `gorm:"foreignKey:RestaurantID" json:"config,omitempty"`
}

// AddressLines renders the street and locality lines used on ticket headers.
func (r *Restaurant) AddressLines() (string, string) {
	var line1, line2 []string
	if r.Street != "" {
		line1 = append(line1, r.Street)
	}
	if r.ExtNumber != "" {
		line1 = append(line1, "#"+r.ExtNumber)
	}
	if r.Suburb != "" {
		line2 = append(line2, r.Suburb)
	}
	if r.City != "" {
		line2 = append(line2, r.City)
	}
	if r.State != "" {
		line2 = append(line2, r.State)
	}
	if r.PostalCode != "" {
		line2 = append(line2, "CP "+r.PostalCode)
	}
	return strings.Join(line1, " "), strings.Join(line2, ", ")
}

func (r *Restaurant) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (Restaurant) TableName() string {
	return "restaurants"
}

// RestaurantConfig holds the fiscal and printing configuration for one
// restaurant. The order core reads it; it never writes it except for
// the folio counter.
type RestaurantConfig struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	RestaurantID    uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null" json:"restaurant_id"`
	TaxMode         enum.TaxMode    `gorm:"default:0" json:"tax_mode"`
	TaxRate         decimal.Decimal `gorm:"type:numeric(5,2);default:16" json:"tax_rate"`
	ShowItemizedTax bool            `gorm:"default:false" json:"show_itemized_tax"`
	Currency        string          `gorm:"size:3;default:MXN" json:"currency"`
	FolioSeries     string          `gorm:"size:10" json:"folio_series"`
	NextFolio       int64           `gorm:"default:1" json:"-"`
	KitchenPrinter  string          `gorm:"size:100" json:"kitchen_printer"`
	SalePrinter     string          `gorm:"size:100" json:"sale_printer"`
	PrintEndpoint   string          `gorm:"size:255" json:"print_endpoint"`
	PaperWidth      int             `gorm:"default:42" json:"paper_width"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (c *RestaurantConfig) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (RestaurantConfig) TableName() string {
	return "restaurant_configs"
}

// PrinterFor returns the configured printer name for a ticket kind.
func (c *RestaurantConfig) PrinterFor(kind enum.TicketKind) string {
	if kind == enum.TicketKindKitchen {
		return c.KitchenPrinter
	}
	return c.SalePrinter
}
