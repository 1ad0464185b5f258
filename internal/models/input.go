package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrValidation marks a submission rejected at the input boundary
var ErrValidation = errors.New("task validation failed")

// Input holds the raw form values for a create or update
type Input struct {
	Name   string `json:"name"`
	Date   string `json:"date"`
	Status string `json:"status"`
}

// Fields are validated task fields ready for the store
type Fields struct {
	Name   string
	Date   Date
	Status Status
}

// Validate trims the name and rejects empty or malformed fields
func (in Input) Validate() (Fields, error) {
	name := strings.TrimSpace(in.Name)
	date := strings.TrimSpace(in.Date)
	status := strings.TrimSpace(in.Status)

	if name == "" || date == "" || status == "" {
		return Fields{}, fmt.Errorf("%w: name, date and status are required", ErrValidation)
	}

	d, err := ParseDate(date)
	if err != nil {
		return Fields{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	s, ok := ParseStatus(strings.ToLower(status))
	if !ok {
		return Fields{}, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	return Fields{Name: name, Date: d, Status: s}, nil
}
