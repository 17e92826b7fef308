package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// TicketKind represents the lifecycle event a ticket documents
type TicketKind int

const (
	TicketKindKitchen      TicketKind = 0
	TicketKindSale         TicketKind = 1
	TicketKindCancellation TicketKind = 2
)

// ParseTicketKind maps a wire token to a TicketKind.
func ParseTicketKind(s string) (TicketKind, bool) {
	switch s {
	case "kitchen":
		return TicketKindKitchen, true
	case "sale":
		return TicketKindSale, true
	case "cancellation":
		return TicketKindCancellation, true
	}
	return TicketKindKitchen, false
}

func (k TicketKind) String() string {
	names := [...]string{"kitchen", "sale", "cancellation"}
	if int(k) < 0 || int(k) >= len(names) {
		return "kitchen"
	}
	return names[k]
}

func (k TicketKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *TicketKind) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*k = TicketKind(i)
		return nil
	}
	if parsed, ok := ParseTicketKind(str); ok {
		*k = parsed
	}
	return nil
}

func (k TicketKind) Value() (driver.Value, error) {
	return int64(k), nil
}

func (k *TicketKind) Scan(value interface{}) error {
	if value == nil {
		*k = TicketKindKitchen
		return nil
	}
	switch v := value.(type) {
	case int64:
		*k = TicketKind(v)
	case int:
		*k = TicketKind(v)
	}
	return nil
}
