package utils

import (
	"time"

	"ms-directory/internal/models"
)

// FormatShowTime renders a show time the way listings display and compare it.
func FormatShowTime(t time.Time) string {
	return t.UTC().Format(models.ShowTimeLayout)
}
