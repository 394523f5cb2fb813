package remote

import (
	"time"

	"cashier/internal/core"
)

// docToTransaction maps one Firestore document to a Transaction. The date
// field may be a native timestamp or an ISO-8601 string; both normalize to
// time.Time, and a missing or unreadable date falls back to the current
// moment. A missing category gets the fallback placeholder.
func docToTransaction(id string, data map[string]interface{}) core.Transaction {
	tx := core.Transaction{
		ID:       id,
		Title:    stringField(data, "title"),
		Amount:   numberField(data, "amount"),
		Type:     core.FlowType(stringField(data, "type")),
		Category: stringField(data, "category"),
		Date:     dateField(data, "date"),
	}
	if tx.Category == "" {
		tx.Category = core.FallbackCategory
	}
	return tx
}

func docToBudget(id string, data map[string]interface{}) core.Budget {
	return core.Budget{
		ID:       id,
		Category: stringField(data, "category"),
		Limit:    numberField(data, "limit"),
	}
}

func docToCategory(id string, data map[string]interface{}) core.Category {
	return core.Category{
		ID:   id,
		Name: stringField(data, "name"),
		Type: core.FlowType(stringField(data, "type")),
	}
}

func stringField(data map[string]interface{}, key string) string {
	if v, ok := data[key].(string); ok {
		return v
	}
	return ""
}

// numberField tolerates the integer and float encodings Firestore may hand
// back for a numeric field.
func numberField(data map[string]interface{}, key string) float64 {
	switch v := data[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	default:
		return 0
	}
}

func dateField(data map[string]interface{}, key string) time.Time {
	switch v := data[key].(type) {
	case time.Time:
		return v
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t
		}
	}
	return time.Now().UTC()
}
