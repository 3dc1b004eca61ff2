package meeting

// ===============================
// Meeting type / priority
// ===============================

type Type string

const (
	TypeScheduled   Type = "SCHEDULED"
	TypeUnscheduled Type = "UNSCHEDULED"
	TypeExternal    Type = "EXTERNAL"
	TypeInternal    Type = "INTERNAL"
)

func (t Type) Valid() bool {
	switch t {
	case TypeScheduled, TypeUnscheduled, TypeExternal, TypeInternal:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}
