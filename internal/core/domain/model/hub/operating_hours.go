package hub

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"hubflow/internal/pkg/errs"
)

const clockLayout = "15:04"

var weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// OperatingHours is the daily opening window of a hub and the days it works.
type OperatingHours struct {
	open        string
	close       string
	workingDays []string
}

// DefaultOperatingHours is 09:00-18:00, Monday to Saturday.
func DefaultOperatingHours() OperatingHours {
	return OperatingHours{
		open:        "09:00",
		close:       "18:00",
		workingDays: slices.Clone(weekdays[:6]),
	}
}

// NewOperatingHours validates HH:MM times and lower-cases the day names.
func NewOperatingHours(open, closeAt string, workingDays []string) (OperatingHours, error) {
	openAt, errOpen := time.Parse(clockLayout, open)
	if errOpen != nil {
		errOpen = errs.NewValueIsInvalidErrorWithCause("open time", errOpen)
	}
	closeTime, errClose := time.Parse(clockLayout, closeAt)
	if errClose != nil {
		errClose = errs.NewValueIsInvalidErrorWithCause("close time", errClose)
	}
	if err := errors.Join(errOpen, errClose); err != nil {
		return OperatingHours{}, err
	}
	if !closeTime.After(openAt) {
		return OperatingHours{}, errs.NewValueIsInvalidErrorWithCause(
			"operating hours", fmt.Errorf("close %s is not after open %s", closeAt, open))
	}

	days := make([]string, 0, len(workingDays))
	for _, d := range workingDays {
		day := strings.ToLower(strings.TrimSpace(d))
		if !slices.Contains(weekdays, day) {
			return OperatingHours{}, errs.NewValueIsInvalidErrorWithCause("working day", fmt.Errorf("%q is not a weekday", d))
		}
		if !slices.Contains(days, day) {
			days = append(days, day)
		}
	}

	return OperatingHours{open: open, close: closeAt, workingDays: days}, nil
}

func (h OperatingHours) Open() string  { return h.open }
func (h OperatingHours) Close() string { return h.close }

// WorkingDays returns a copy of the working day names.
func (h OperatingHours) WorkingDays() []string {
	return slices.Clone(h.workingDays)
}
