package constants

// TaskStatus is the coarse lifecycle of a task.
type TaskStatus string

const (
	StatusOpen      TaskStatus = "open"
	StatusAccepted  TaskStatus = "accepted"
	StatusCompleted TaskStatus = "completed"
	StatusCancelled TaskStatus = "cancelled"
)

// Terminal reports whether no further lifecycle transition is legal.
func (s TaskStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CurrentStatus is the fine-grained execution phase of a claimed task.
// It only advances while the task's TaskStatus is StatusAccepted.
type CurrentStatus string

const (
	CurrentAccepted  CurrentStatus = "accepted"
	CurrentPickedUp  CurrentStatus = "picked_up"
	CurrentOnTheWay  CurrentStatus = "on_the_way"
	CurrentDelivered CurrentStatus = "delivered"
	CurrentCompleted CurrentStatus = "completed"
)

// successor maps each execution phase to its only legal next phase.
var successor = map[CurrentStatus]CurrentStatus{
	CurrentAccepted:  CurrentPickedUp,
	CurrentPickedUp:  CurrentOnTheWay,
	CurrentOnTheWay:  CurrentDelivered,
	CurrentDelivered: CurrentCompleted,
}

// NextCurrentStatus returns the phase that must follow s. The second
// return is false when s is CurrentCompleted or unknown.
func NextCurrentStatus(s CurrentStatus) (CurrentStatus, bool) {
	next, ok := successor[s]
	return next, ok
}

// ValidCurrentStatus reports whether s names a known execution phase.
func ValidCurrentStatus(s CurrentStatus) bool {
	if s == CurrentCompleted {
		return true
	}
	_, ok := successor[s]
	return ok
}
