package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// StaffRole controls what a logged-in staff member may do
type StaffRole string

const (
	StaffRoleOwner      StaffRole = "owner"
	StaffRoleManager    StaffRole = "manager"
	StaffRoleCashier    StaffRole = "cashier"
	StaffRoleAccountant StaffRole = "accountant"
)

func (r StaffRole) String() string {
	return string(r)
}

// IsValid reports whether r is a known role
func (r StaffRole) IsValid() bool {
	switch r {
	case StaffRoleOwner, StaffRoleManager, StaffRoleCashier, StaffRoleAccountant:
		return true
	}
	return false
}

func (r StaffRole) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(r))
}

func (r *StaffRole) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*r = StaffRole(str)
	return nil
}

func (r StaffRole) Value() (driver.Value, error) {
	return string(r), nil
}

func (r *StaffRole) Scan(value interface{}) error {
	if value == nil {
		*r = StaffRoleCashier
		return nil
	}
	switch v := value.(type) {
	case string:
		*r = StaffRole(v)
	case []byte:
		*r = StaffRole(string(v))
	}
	return nil
}
