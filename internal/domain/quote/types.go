package quote

type Status string

const (
	StatusDraft    Status = "draft"
	StatusSent     Status = "sent"
	StatusViewed   Status = "viewed"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
	StatusExpired  Status = "expired"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusViewed, StatusAccepted, StatusRejected, StatusExpired:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusAccepted, StatusRejected, StatusExpired:
		return true
	default:
		return false
	}
}

// Open reports whether the quote still occupies the request's single active
// slot (one non-terminal quote per request at a time).
func (s Status) Open() bool {
	return !s.IsTerminal()
}

// Acceptable reports whether the organizer may act on the quote.
func (s Status) Acceptable() bool {
	return s == StatusSent || s == StatusViewed
}
