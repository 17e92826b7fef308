package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// OrderStatus represents the lifecycle state of an order
type OrderStatus int

const (
	OrderStatusPending    OrderStatus = 0
	OrderStatusInProgress OrderStatus = 1
	OrderStatusReady      OrderStatus = 2
	OrderStatusPaid       OrderStatus = 3
	OrderStatusCancelled  OrderStatus = 4
)

// transitions holds the legal outgoing transitions per state.
// paid and cancelled are terminal.
var transitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusInProgress, OrderStatusCancelled},
	OrderStatusInProgress: {OrderStatusReady, OrderStatusPaid, OrderStatusCancelled},
	OrderStatusReady:      {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:       {},
	OrderStatusCancelled:  {},
}

// CanTransitionTo reports whether moving from s to target is legal.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, t := range transitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the state has no outgoing transitions.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusPaid || s == OrderStatusCancelled
}

func (s OrderStatus) String() string {
	names := [...]string{"pending", "in_progress", "ready", "paid", "cancelled"}
	if int(s) < 0 || int(s) >= len(names) {
		return "pending"
	}
	return names[s]
}

func (s OrderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = OrderStatus(i)
		return nil
	}
	switch str {
	case "pending":
		*s = OrderStatusPending
	case "in_progress":
		*s = OrderStatusInProgress
	case "ready":
		*s = OrderStatusReady
	case "paid":
		*s = OrderStatusPaid
	case "cancelled":
		*s = OrderStatusCancelled
	}
	return nil
}

func (s OrderStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *OrderStatus) Scan(value interface{}) error {
	if value == nil {
		*s = OrderStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = OrderStatus(v)
	case int:
		*s = OrderStatus(v)
	}
	return nil
}
