package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// PurchaseStatus tracks how much of a supplier bill has been settled
type PurchaseStatus int

const (
	PurchaseStatusPending PurchaseStatus = 0
	PurchaseStatusPartial PurchaseStatus = 1
	PurchaseStatusPaid    PurchaseStatus = 2
)

func (s PurchaseStatus) String() string {
	switch s {
	case PurchaseStatusPending:
		return "pending"
	case PurchaseStatusPartial:
		return "partial"
	case PurchaseStatusPaid:
		return "paid"
	}
	return "unknown"
}

// ParsePurchaseStatus maps "pending", "partial" or "paid" to a status
func ParsePurchaseStatus(str string) (PurchaseStatus, error) {
	for _, st := range []PurchaseStatus{PurchaseStatusPending, PurchaseStatusPartial, PurchaseStatusPaid} {
		if st.String() == str {
			return st, nil
		}
	}
	return PurchaseStatusPending, fmt.Errorf("unknown purchase status %q", str)
}

func (s PurchaseStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *PurchaseStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = PurchaseStatus(i)
		return nil
	}
	switch str {
	case "pending":
		*s = PurchaseStatusPending
	case "partial":
		*s = PurchaseStatusPartial
	case "paid":
		*s = PurchaseStatusPaid
	default:
		return fmt.Errorf("unknown purchase status %q", str)
	}
	return nil
}

func (s PurchaseStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *PurchaseStatus) Scan(value interface{}) error {
	if value == nil {
		*s = PurchaseStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = PurchaseStatus(v)
	case int:
		*s = PurchaseStatus(v)
	}
	return nil
}
