package utils

import (
	"html/template"
	"path"
	"reflect"
	"strings"
	"time"
)

func GetTemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatDate": func(t time.Time, format string) string {
			layouts := map[string]string{
				"short":  "01/02/2006",
				"medium": "January 02, 2006",
				"iso":    time.RFC3339,
			}
			if layout, ok := layouts[format]; ok {
				return t.Format(layout)
			}
			return t.Format(format)
		},
		"year": func() int { return time.Now().Year() },
		"default": func(defaultValue, value interface{}) interface{} {
			if isEmpty(value) {
				return defaultValue
			}
			return value
		},
	}
}

func isEmpty(value interface{}) bool {
	if value == nil {
		return true
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.String, reflect.Array, reflect.Slice, reflect.Map:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Pointer, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// NormalizePath cleans a URL path and drops the trailing slash.
func NormalizePath(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "/"
	}
	return path.Clean("/" + trimmed)
}
