package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// BillStatus is the payment status of a finalized bill
type BillStatus int

const (
	BillStatusPaid    BillStatus = 0
	BillStatusPending BillStatus = 1
	BillStatusPartial BillStatus = 2
)

var billStatusNames = [...]string{"paid", "pending", "partial"}

func (s BillStatus) String() string {
	if s < 0 || int(s) >= len(billStatusNames) {
		return "unknown"
	}
	return billStatusNames[s]
}

// ParseBillStatus maps "paid", "pending" or "partial" to a status
func ParseBillStatus(str string) (BillStatus, error) {
	for i, name := range billStatusNames {
		if name == str {
			return BillStatus(i), nil
		}
	}
	return BillStatusPaid, fmt.Errorf("unknown bill status %q", str)
}

func (s BillStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *BillStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = BillStatus(i)
		return nil
	}
	parsed, err := ParseBillStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s BillStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *BillStatus) Scan(value interface{}) error {
	if value == nil {
		*s = BillStatusPaid
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = BillStatus(v)
	case int:
		*s = BillStatus(v)
	}
	return nil
}
