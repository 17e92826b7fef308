package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	all := []OrderStatus{
		OrderStatusPending, OrderStatusInProgress, OrderStatusReady,
		OrderStatusPaid, OrderStatusCancelled,
	}

	legal := map[OrderStatus][]OrderStatus{
		OrderStatusPending:    {OrderStatusInProgress, OrderStatusCancelled},
		OrderStatusInProgress: {OrderStatusReady, OrderStatusPaid, OrderStatusCancelled},
		OrderStatusReady:      {OrderStatusPaid, OrderStatusCancelled},
		OrderStatusPaid:       {},
		OrderStatusCancelled:  {},
	}

	for _, from := range all {
		allowed := map[OrderStatus]bool{}
		for _, to := range legal[from] {
			allowed[to] = true
		}
		for _, to := range all {
			got := from.CanTransitionTo(to)
			assert.Equal(t, allowed[to], got, "%s -> %s", from, to)
		}
	}
}

func TestOrderStatus_IsTerminal(t *testing.T) {
	assert.False(t, OrderStatusPending.IsTerminal())
	assert.False(t, OrderStatusInProgress.IsTerminal())
	assert.False(t, OrderStatusReady.IsTerminal())
	assert.True(t, OrderStatusPaid.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())
}

func TestOrderStatus_JSONRoundTrip(t *testing.T) {
	for _, s := range []OrderStatus{
		OrderStatusPending, OrderStatusInProgress, OrderStatusReady,
		OrderStatusPaid, OrderStatusCancelled,
	} {
		b, err := json.Marshal(s)
		assert.NoError(t, err)
		assert.Equal(t, `"`+s.String()+`"`, string(b))

		var back OrderStatus
		assert.NoError(t, json.Unmarshal(b, &back))
		assert.Equal(t, s, back)
	}
}

func TestOrderStatus_UnmarshalInt(t *testing.T) {
	var s OrderStatus
	assert.NoError(t, json.Unmarshal([]byte("2"), &s))
	assert.Equal(t, OrderStatusReady, s)
}

func TestOrderStatus_String(t *testing.T) {
	assert.Equal(t, "pending", OrderStatusPending.String())
	assert.Equal(t, "in_progress", OrderStatusInProgress.String())
	assert.Equal(t, "ready", OrderStatusReady.String())
	assert.Equal(t, "paid", OrderStatusPaid.String())
	assert.Equal(t, "cancelled", OrderStatusCancelled.String())
	assert.Equal(t, "pending", OrderStatus(99).String())
}

func TestParseOrderKind(t *testing.T) {
	k, ok := ParseOrderKind("delivery")
	assert.True(t, ok)
	assert.Equal(t, OrderKindDelivery, k)

	_, ok = ParseOrderKind("drive-through")
	assert.False(t, ok)
}

func TestParseTicketKind(t *testing.T) {
	k, ok := ParseTicketKind("cancellation")
	assert.True(t, ok)
	assert.Equal(t, TicketKindCancellation, k)

	_, ok = ParseTicketKind("receipt")
	assert.False(t, ok)
}

func TestParseTaxMode(t *testing.T) {
	m, ok := ParseTaxMode("itemized")
	assert.True(t, ok)
	assert.Equal(t, TaxModeItemized, m)

	_, ok = ParseTaxMode("vat")
	assert.False(t, ok)
}
