// Package assistant synthesizes replies for the hostel chat assistant from a
// classified intent and a read-only projection of the requesting student's
// domain data. Synthesis never fails: absent or empty snapshot fields route to
// defined empty-state replies.
package assistant

import "time"

// Fee payment states.
const (
	FeePaid    = "paid"
	FeePending = "pending"
	FeeOverdue = "overdue"
)

// Review states shared by complaints and leave requests.
const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
	StatusResolved = "Resolved"
)

// Message senders in the conversation log.
const (
	SenderUser      = "user"
	SenderAssistant = "assistant"
)

// UserContext identifies whose data a snapshot projects.
type UserContext struct {
	ID          string
	DisplayName string
	HostelID    string
	Room        string
}

type Hostel struct {
	ID   string
	Name string
}

type MessMenu struct {
	Breakfast   string
	Lunch       string
	Dinner      string
	LastUpdated string
}

type Fee struct {
	Amount  int
	DueDate string
	Status  string
}

type Notice struct {
	Title   string
	Content string
	Date    string
}

type Complaint struct {
	Type   string
	Status string
	Date   string
}

type Leave struct {
	Type      string
	Status    string
	StartDate string
	EndDate   string
}

// Mate is a student sharing the requester's hostel and room.
type Mate struct {
	ID   string
	Name string
}

// Snapshot is the per-invocation, read-only projection of domain state scoped
// to one student. Nil pointer fields mean the record is absent; empty slices
// mean nothing to report. Fees keep insertion order (the order they were
// assigned), Notices hold at most the three most recent entries oldest-first,
// so the latest notice is the last element.
type Snapshot struct {
	Hostel      *Hostel
	MessMenu    *MessMenu
	Fees        []Fee
	Notices     []Notice
	Complaints  []Complaint
	Leaves      []Leave
	HostelMates []Mate
}

// PendingFees returns the subsequence of fees not yet paid, order preserved.
func (s Snapshot) PendingFees() []Fee {
	var pending []Fee
	for _, f := range s.Fees {
		if f.Status != FeePaid {
			pending = append(pending, f)
		}
	}
	return pending
}

// HostelName returns the hostel's display name or the given fallback when the
// hostel record is absent.
func (s Snapshot) HostelName(fallback string) string {
	if s.Hostel != nil {
		return s.Hostel.Name
	}
	return fallback
}

// Message is one exchanged chat message.
type Message struct {
	Sender string
	Text   string
	SentAt time.Time
}
