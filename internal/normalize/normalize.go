// Package normalize приводит слабо типизированные ответы backend к каноническим моделям.
// Все функции чистые и никогда не паникуют: неизвестные значения заменяются значениями по умолчанию.
package normalize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shenikar/armguard_console/internal/models"
)

// Severity приводит строку уровня к одному из четырех уровней; все остальное - low
func Severity(v any) models.Severity {
	s, _ := v.(string)
	switch models.Severity(strings.ToLower(strings.TrimSpace(s))) {
	case models.SeverityCritical:
		return models.SeverityCritical
	case models.SeverityHigh:
		return models.SeverityHigh
	case models.SeverityMedium:
		return models.SeverityMedium
	}
	return models.SeverityLow
}

// Confidence нормализует уверенность детекции в [0,1].
// Значения больше 1 считаются процентами. Второй результат false, если значения нет.
func Confidence(v any) (float64, bool) {
	n, ok := Number(v)
	if !ok {
		return 0, false
	}
	if n > 1 {
		n = n / 100
	}
	return math.Max(0, math.Min(1, n)), true
}

// SeverityFromConfidence - уровень для инцидентов без явного severity
func SeverityFromConfidence(c float64) models.Severity {
	switch {
	case c >= 0.9:
		return models.SeverityCritical
	case c >= 0.8:
		return models.SeverityHigh
	case c >= 0.7:
		return models.SeverityMedium
	}
	return models.SeverityLow
}

// EvidenceSeverity - более строгая шкала галереи доказательств
func EvidenceSeverity(c float64) models.Severity {
	switch {
	case c >= 0.95:
		return models.SeverityCritical
	case c >= 0.85:
		return models.SeverityHigh
	case c >= 0.70:
		return models.SeverityMedium
	}
	return models.SeverityLow
}

// Number извлекает конечное число из JSON-значения (числа или числовой строки)
func Number(v any) (float64, bool) {
	var n float64
	switch t := v.(type) {
	case float64:
		n = t
	case float32:
		n = float64(t)
	case int:
		n = float64(t)
	case int64:
		n = float64(t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, false
		}
		n = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		n = f
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// String возвращает строковое представление скаляра; nil и объекты дают ""
func String(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	}
	return ""
}

// Truthy повторяет приведение к bool для флагов вроде read
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	}
	if n, ok := Number(v); ok {
		return n != 0
	}
	return true
}

// ID достает идентификатор: строка, число или объект {"$oid": "..."}
func ID(v any) string {
	if m, ok := v.(map[string]any); ok {
		if s, ok := m["$oid"].(string); ok {
			return s
		}
		if s, ok := m["oid"].(string); ok {
			return s
		}
		return ""
	}
	return String(v)
}

// First возвращает первое непустое значение по списку ключей
func First(raw map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := raw[k]; ok && v != nil {
			if s, isStr := v.(string); isStr && s == "" {
				continue
			}
			return v
		}
	}
	return nil
}

func firstString(raw map[string]any, def string, keys ...string) string {
	if s := String(First(raw, keys...)); s != "" {
		return s
	}
	return def
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Timestamp разбирает ISO-8601 строку или epoch (секунды/миллисекунды).
// Наивные строки без зоны считаются UTC. Неразборчивое значение дает нулевое время.
func Timestamp(v any) time.Time {
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC()
			}
		}
	}
	n, ok := Number(v)
	if !ok || n <= 0 {
		return time.Time{}
	}
	// больше 1e12 - уже миллисекунды
	if n >= 1e12 {
		return time.UnixMilli(int64(n)).UTC()
	}
	return time.Unix(int64(n), 0).UTC()
}

// AbsoluteURL превращает относительный путь вроде /static/x.jpg в абсолютный
func AbsoluteURL(u, publicBase string) string {
	if u == "" {
		return ""
	}
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	base := strings.TrimRight(publicBase, "/")
	if strings.HasPrefix(u, "/") {
		return base + u
	}
	return base + "/" + u
}
