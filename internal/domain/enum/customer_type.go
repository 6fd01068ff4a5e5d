package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// CustomerType separates counter customers from trade and credit accounts
type CustomerType string

const (
	CustomerTypeRetail    CustomerType = "retail"
	CustomerTypeWholesale CustomerType = "wholesale"
	CustomerTypeCredit    CustomerType = "credit"
)

// CustomerTypes lists every customer type in display order
var CustomerTypes = []CustomerType{CustomerTypeRetail, CustomerTypeWholesale, CustomerTypeCredit}

func (t CustomerType) String() string {
	return string(t)
}

// IsValid reports whether t is one of the known types
func (t CustomerType) IsValid() bool {
	for _, known := range CustomerTypes {
		if t == known {
			return true
		}
	}
	return false
}

func (t CustomerType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *CustomerType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*t = CustomerType(str)
	return nil
}

func (t CustomerType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *CustomerType) Scan(value interface{}) error {
	if value == nil {
		*t = CustomerTypeRetail
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = CustomerType(v)
	case []byte:
		*t = CustomerType(string(v))
	}
	return nil
}
