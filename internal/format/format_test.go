package format

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"github.com/tiwariParth/go-task-tracker/internal/models"
)

func TestFormatStatus(t *testing.T) {
	tests := map[string]string{
		"pending":     "Pending",
		"in-progress": "In Progress",
		"completed":   "Completed",
		"":            "Pending",
		"archived":    "Pending",
		"COMPLETED":   "Pending",
	}
	for raw, want := range tests {
		assert.Equal(t, want, FormatStatus(raw), raw)
	}
	assert.Equal(t, "Pending", StatusLabel(models.Status(99)))
}

func TestStatusClass(t *testing.T) {
	assert.Equal(t, "status-in-progress", StatusClass(models.InProgress))
	assert.Equal(t, "status-pending", StatusClass(models.Pending))
}

func TestFormatDate(t *testing.T) {
	d := models.Date{Year: 2024, Month: time.June, Day: 1}
	assert.Equal(t, "Jun 1, 2024", FormatDate(d))
	assert.Equal(t, "", FormatDate(models.Date{}))
	assert.Equal(t, "2024-06-01", d.String())
}

func TestDateFormatterLocales(t *testing.T) {
	d := models.Date{Year: 2024, Month: time.December, Day: 25}
	tests := []struct {
		locale string
		want   string
		tag    language.Tag
	}{
		{"en-US", "Dec 25, 2024", language.AmericanEnglish},
		{"en-GB", "25 Dec 2024", language.BritishEnglish},
		{"fr-FR", "Dec 25, 2024", language.AmericanEnglish},
		{"", "Dec 25, 2024", language.AmericanEnglish},
		{"not a tag!", "Dec 25, 2024", language.AmericanEnglish},
	}
	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			f := NewDateFormatter(tt.locale)
			assert.Equal(t, tt.want, f.Format(d))
			assert.Equal(t, tt.tag, f.Locale())
		})
	}
}

func TestEscape(t *testing.T) {
	out := Escape(`<script>alert("x")</script> & 'friends'`)
	assert.NotContains(t, out, "<")
	assert.NotContains(t, out, ">")
	assert.True(t, strings.HasPrefix(out, "&lt;script&gt;"), out)
	assert.Contains(t, out, "&amp;")
	assert.Equal(t, "Ship release", Escape("Ship release"))
}
