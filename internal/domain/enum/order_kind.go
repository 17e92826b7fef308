package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// OrderKind represents how an order is fulfilled
type OrderKind int

const (
	OrderKindDineIn   OrderKind = 0
	OrderKindTakeaway OrderKind = 1
	OrderKindDelivery OrderKind = 2
)

// ParseOrderKind maps a wire token to an OrderKind.
func ParseOrderKind(s string) (OrderKind, bool) {
	switch s {
	case "dine-in":
		return OrderKindDineIn, true
	case "takeaway":
		return OrderKindTakeaway, true
	case "delivery":
		return OrderKindDelivery, true
	}
	return OrderKindDineIn, false
}

func (k OrderKind) String() string {
	names := [...]string{"dine-in", "takeaway", "delivery"}
	if int(k) < 0 || int(k) >= len(names) {
		return "dine-in"
	}
	return names[k]
}

func (k OrderKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *OrderKind) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*k = OrderKind(i)
		return nil
	}
	if parsed, ok := ParseOrderKind(str); ok {
		*k = parsed
	}
	return nil
}

func (k OrderKind) Value() (driver.Value, error) {
	return int64(k), nil
}

func (k *OrderKind) Scan(value interface{}) error {
	if value == nil {
		*k = OrderKindDineIn
		return nil
	}
	switch v := value.(type) {
	case int64:
		*k = OrderKind(v)
	case int:
		*k = OrderKind(v)
	}
	return nil
}
