package request

type Status string

const (
	StatusDraft     Status = "draft"
	StatusPending   Status = "pending"
	StatusQuoted    Status = "quoted"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusExpired   Status = "expired"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusQuoted, StatusAccepted,
		StatusRejected, StatusExpired, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusAccepted, StatusRejected, StatusExpired, StatusCancelled:
		return true
	default:
		return false
	}
}

// Editable reports whether the organizer may still change request details.
func (s Status) Editable() bool {
	return s == StatusDraft || s == StatusPending
}

// Quotable reports whether a vendor may issue a quote against the request.
func (s Status) Quotable() bool {
	return s == StatusPending || s == StatusQuoted
}

// Sweepable reports whether the expiry sweep may transition the request.
func (s Status) Sweepable() bool {
	return s == StatusPending || s == StatusQuoted
}
