package storage

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/tiwariParth/go-task-tracker/internal/models"
)

// Export renders tasks in the requested format ("json" or "csv")
func Export(tasks []models.Task, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "json":
		return json.MarshalIndent(tasks, "", "    ")
	case "csv":
		return exportToCSV(tasks)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func exportToCSV(tasks []models.Task) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := []string{"ID", "Name", "Date", "Status", "Created At"}
	if err := writer.Write(header); err != nil {
		return nil, err
	}

	for _, task := range tasks {
		createdAt := ""
		if !task.CreatedAt.IsZero() {
			createdAt = task.CreatedAt.UTC().Format(time.RFC3339)
		}
		record := []string{
			task.ID,
			task.Name,
			task.Date.String(),
			task.Status.String(),
			createdAt,
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	return buf.Bytes(), writer.Error()
}
