package utils

import (
	"html/template"
	"time"
)

// GetTemplateFuncs returns the helper set shared by every HTML template.
func GetTemplateFuncs() template.FuncMap {
	return template.FuncMap{
		// truncate keeps meta descriptions within the length search
		// engines display.
		"truncate": func(s string, length int) string {
			if len(s) <= length {
				return s
			}
			return s[:length] + "..."
		},

		"formatDate": func(t time.Time, format string) string {
			layouts := map[string]string{
				"short":    "01/02/2006",
				"medium":   "January 02, 2006",
				"long":     "Monday, January 02, 2006",
				"datetime": "01/02/2006 15:04",
				"iso":      time.RFC3339,
			}
			if layout, ok := layouts[format]; ok {
				return t.Format(layout)
			}
			return t.Format(format)
		},
	}
}
