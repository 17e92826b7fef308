package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// TaxMode represents how tax relates to line prices
type TaxMode int

const (
	// TaxModeIncluded: line prices already contain tax; tax is extracted for display
	TaxModeIncluded TaxMode = 0
	// TaxModeItemized: tax is added on top of the line subtotal
	TaxModeItemized TaxMode = 1
	// TaxModeExempt: no tax
	TaxModeExempt TaxMode = 2
)

func (m TaxMode) String() string {
	names := [...]string{"included", "itemized", "exempt"}
	if int(m) < 0 || int(m) >= len(names) {
		return "included"
	}
	return names[m]
}

// ParseTaxMode converts a wire token into a TaxMode.
func ParseTaxMode(s string) (TaxMode, bool) {
	switch s {
	case "included":
		return TaxModeIncluded, true
	case "itemized":
		return TaxModeItemized, true
	case "exempt":
		return TaxModeExempt, true
	}
	return TaxModeIncluded, false
}

func (m TaxMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *TaxMode) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*m = TaxMode(i)
		return nil
	}
	switch str {
	case "included":
		*m = TaxModeIncluded
	case "itemized":
		*m = TaxModeItemized
	case "exempt":
		*m = TaxModeExempt
	}
	return nil
}

func (m TaxMode) Value() (driver.Value, error) {
	return int64(m), nil
}

func (m *TaxMode) Scan(value interface{}) error {
	if value == nil {
		*m = TaxModeIncluded
		return nil
	}
	switch v := value.(type) {
	case int64:
		*m = TaxMode(v)
	case int:
		*m = TaxMode(v)
	}
	return nil
}
