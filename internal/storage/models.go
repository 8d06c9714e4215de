package storage

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

type Hostel struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	RectorID    string `json:"rector_id"`
	RectorName  string `json:"rector_name"`
	RectorEmail string `json:"rector_email"`
	TotalRooms  int    `json:"total_rooms"`
	Phone       string `json:"phone"`
}

type Student struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	HostelID      string    `json:"hostel_id"`
	Room          string    `json:"room"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	GuardianName  string    `json:"guardian_name"`
	GuardianPhone string    `json:"guardian_phone"`
	JoinedDate    string    `json:"joined_date"`
	CreatedAt     time.Time `json:"created_at"`
}

type Fee struct {
	ID        string    `json:"id"`
	StudentID string    `json:"student_id"`
	HostelID  string    `json:"hostel_id"`
	Amount    int       `json:"amount"`
	DueDate   string    `json:"due_date"`
	Status    string    `json:"status"` // "paid", "pending", "overdue"
	PaidDate  string    `json:"paid_date,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type MessMenu struct {
	HostelID  string    `json:"hostel_id"`
	Breakfast string    `json:"breakfast"`
	Lunch     string    `json:"lunch"`
	Dinner    string    `json:"dinner"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Notice struct {
	ID       string    `json:"id"`
	HostelID string    `json:"hostel_id"`
	Title    string    `json:"title"`
	Content  string    `json:"content"`
	PostedAt time.Time `json:"posted_at"`
}

type Complaint struct {
	ID          string    `json:"id"`
	StudentID   string    `json:"student_id"`
	HostelID    string    `json:"hostel_id"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Status      string    `json:"status"` // "Pending", "Resolved"
	FiledAt     time.Time `json:"filed_at"`
}

type Leave struct {
	ID          string    `json:"id"`
	StudentID   string    `json:"student_id"`
	HostelID    string    `json:"hostel_id"`
	Type        string    `json:"type"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	Reason      string    `json:"reason"`
	Status      string    `json:"status"` // "Pending", "Approved", "Rejected"
	RequestedAt time.Time `json:"requested_at"`
}

// ChatMessage is one entry in a student's conversation log with the
// assistant. Sender is "user" or "assistant".
type ChatMessage struct {
	ID        string    `json:"id"`
	StudentID string    `json:"student_id"`
	Sender    string    `json:"sender"`
	Body      string    `json:"body"`
	SentAt    time.Time `json:"sent_at"`
}

// Backup is a whole-store dump for the backup endpoint.
type Backup struct {
	Timestamp  time.Time   `json:"timestamp"`
	Hostels    []Hostel    `json:"hostels"`
	Students   []Student   `json:"students"`
	Fees       []Fee       `json:"fees"`
	Notices    []Notice    `json:"notices"`
	Complaints []Complaint `json:"complaints"`
	Leaves     []Leave     `json:"leaves"`
}
