// Package format maps stored task values to display strings.
package format

import (
	"github.com/a-h/templ"
	"golang.org/x/text/language"

	"github.com/tiwariParth/go-task-tracker/internal/models"
)

var statusLabels = map[models.Status]string{
	models.Pending:    "Pending",
	models.InProgress: "In Progress",
	models.Completed:  "Completed",
}

// StatusLabel returns the display label of s.
func StatusLabel(s models.Status) string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return statusLabels[models.Pending]
}

// FormatStatus labels a raw status value; unknown or empty values read "Pending".
func FormatStatus(raw string) string {
	return StatusLabel(models.StatusOf(raw))
}

// StatusClass is the style class for a status badge, e.g. "status-in-progress".
func StatusClass(s models.Status) string {
	return "status-" + s.String()
}

// Escape neutralizes markup-significant characters in user-supplied text.
func Escape(text string) string {
	return templ.EscapeString(text)
}

// dateLayouts pairs each supported locale with its short date layout.
var dateLayouts = []struct {
	tag    language.Tag
	layout string
}{
	{language.AmericanEnglish, "Jan 2, 2006"},
	{language.BritishEnglish, "2 Jan 2006"},
}

var dateMatcher = func() language.Matcher {
	tags := make([]language.Tag, len(dateLayouts))
	for i, l := range dateLayouts {
		tags[i] = l.tag
	}
	return language.NewMatcher(tags)
}()

// DateFormatter renders calendar dates in a locale's short form.
type DateFormatter struct {
	tag    language.Tag
	layout string
}

// NewDateFormatter picks the closest supported locale to the BCP 47 tag
// locale, falling back to US English.
func NewDateFormatter(locale string) *DateFormatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.AmericanEnglish
	}
	_, i, _ := dateMatcher.Match(tag)
	return &DateFormatter{tag: dateLayouts[i].tag, layout: dateLayouts[i].layout}
}

// Locale returns the matched locale.
func (f *DateFormatter) Locale() language.Tag {
	return f.tag
}

// Format renders d, e.g. "Jun 1, 2024". The zero date renders empty.
func (f *DateFormatter) Format(d models.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Time().Format(f.layout)
}

var defaultDates = NewDateFormatter("en-US")

// FormatDate renders d in the US English short form.
func FormatDate(d models.Date) string {
	return defaultDates.Format(d)
}
