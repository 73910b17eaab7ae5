package entry

import "time"

// Urgency is a display classification derived from the due date. It is never persisted.
type Urgency string

const (
	UrgencyOverdue Urgency = "overdue"
	UrgencyDueSoon Urgency = "due_soon"
	UrgencyNormal  Urgency = "normal"
)

// DueSoonWindow is the length of the half-open window [today, today+7d) in days.
const DueSoonWindow = 7

// Classify maps an entry status and due date to its urgency on the given day.
// Only open entries can be overdue or due soon; dates are compared as calendar days.
func Classify(status Status, dueDate, today time.Time) Urgency {
	if status != StatusOpen {
		return UrgencyNormal
	}

	due := DateOnly(dueDate)
	day := DateOnly(today)

	if due.Before(day) {
		return UrgencyOverdue
	}

	if due.Before(day.AddDate(0, 0, DueSoonWindow)) {
		return UrgencyDueSoon
	}

	return UrgencyNormal
}
