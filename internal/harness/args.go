package harness

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// args wraps YAML-decoded step arguments with typed accessors.
type args map[string]any

func (a args) string(key string) string {
	switch v := a[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func (a args) int(key string, def int) (int, error) {
	switch v := a[key].(type) {
	case nil:
		return def, nil
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("%s: %v is not an integer", key, v)
		}
		return int(v), nil
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%s: unsupported type %T", key, v)
	}
}

func (a args) bool(key string) bool {
	b, _ := a[key].(bool)
	return b
}

func (a args) strings(key string) []string {
	switch v := a[key].(type) {
	case string:
		return []string{v}
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			out = append(out, fmt.Sprint(e))
		}
		return out
	default:
		return nil
	}
}

func (a args) object(key string) map[string]any {
	m, _ := a[key].(map[string]any)
	return m
}

// money renders an amount the way every trace does: two decimals.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
