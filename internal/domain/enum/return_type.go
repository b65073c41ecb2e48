package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ReturnType distinguishes item-level returns from full-bill returns
type ReturnType int

const (
	ReturnTypeItem     ReturnType = 0
	ReturnTypeFullBill ReturnType = 1
)

func (t ReturnType) String() string {
	return [...]string{"item", "full_bill"}[t]
}

func (t ReturnType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *ReturnType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = ReturnType(i)
		return nil
	}
	switch str {
	case "item":
		*t = ReturnTypeItem
	case "full_bill":
		*t = ReturnTypeFullBill
	}
	return nil
}

// ParseReturnType parses a return type from its name or numeric form.
func ParseReturnType(s string) (ReturnType, bool) {
	switch s {
	case "item", "0":
		return ReturnTypeItem, true
	case "full_bill", "1":
		return ReturnTypeFullBill, true
	}
	return ReturnTypeItem, false
}

func (t ReturnType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *ReturnType) Scan(value interface{}) error {
	if value == nil {
		*t = ReturnTypeItem
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = ReturnType(v)
	case int:
		*t = ReturnType(v)
	}
	return nil
}
