package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

const dateFormat = "2006-01-02"

// DateOnly is a custom date type formatted as "YYYY-MM-DD" in JSON and in the database.
type DateOnly time.Time

// ParseDateOnly 按 "YYYY-MM-DD" 解析日期字符串。
func ParseDateOnly(s string) (DateOnly, error) {
	t, err := time.Parse(dateFormat, s)
	if err != nil {
		return DateOnly{}, fmt.Errorf("无效的日期格式 (期望 YYYY-MM-DD): %w", err)
	}
	return DateOnly(t), nil
}

// MarshalJSON implements the json.Marshaler interface.
func (d DateOnly) MarshalJSON() ([]byte, error) {
	formatted := fmt.Sprintf("\"%s\"", time.Time(d).Format(dateFormat))
	return []byte(formatted), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (d *DateOnly) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*d = DateOnly{}
		return nil
	}
	parsed, err := ParseDateOnly(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value 实现 driver.Valuer 接口。
func (d DateOnly) Value() (driver.Value, error) {
	return time.Time(d).Format(dateFormat), nil
}

// Scan 实现 sql.Scanner 接口。
func (d *DateOnly) Scan(value interface{}) error {
	switch src := value.(type) {
	case time.Time:
		*d = DateOnly(src)
		return nil
	case []byte:
		return d.scanString(string(src))
	case string:
		return d.scanString(src)
	case nil:
		*d = DateOnly{}
		return nil
	default:
		return fmt.Errorf("无法将 %T 扫描为 DateOnly", value)
	}
}

func (d *DateOnly) scanString(s string) error {
	// 兼容带时间部分的 DATETIME 列值
	if len(s) > len(dateFormat) {
		s = s[:len(dateFormat)]
	}
	parsed, err := ParseDateOnly(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
