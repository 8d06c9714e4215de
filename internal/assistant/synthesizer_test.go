package assistant

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/lumina-hms/lumina/internal/intent"
)

// stubRand always returns a fixed index so a specific template variant can
// be asserted.
type stubRand struct{ n int }

func (s stubRand) Intn(int) int { return s.n }

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func newTestSynthesizer(opts ...Option) *Synthesizer {
	base := []Option{WithRand(rand.New(rand.NewSource(42)))}
	return NewSynthesizer(append(base, opts...)...)
}

var testUser = UserContext{ID: "MASU202401123", DisplayName: "Rahul", HostelID: "H101", Room: "101"}

func TestSynthesize_Greeting_InterpolatesName(t *testing.T) {
	s := NewSynthesizer(WithRand(stubRand{0}))
	got := s.Synthesize(intent.Greeting, "Hello", testUser, Snapshot{}, nil)
	if !strings.Contains(got, "Rahul") {
		t.Errorf("greeting %q does not mention the user's name", got)
	}
}

func TestSynthesize_Greeting_AllVariantsObserved(t *testing.T) {
	s := newTestSynthesizer()
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		seen[s.Synthesize(intent.Greeting, "hi", testUser, Snapshot{}, nil)] = true
	}
	if len(seen) != 4 {
		t.Errorf("observed %d greeting variants over 1000 calls, want 4", len(seen))
	}
}

func TestSynthesize_Farewell_HostelNameFallback(t *testing.T) {
	s := NewSynthesizer(WithRand(stubRand{1}))

	withHostel := Snapshot{Hostel: &Hostel{ID: "H101", Name: "Sunshine Dorms"}}
	if got := s.Synthesize(intent.Farewell, "bye", testUser, withHostel, nil); !strings.Contains(got, "Sunshine Dorms") {
		t.Errorf("farewell %q does not mention hostel name", got)
	}
	if got := s.Synthesize(intent.Farewell, "bye", testUser, Snapshot{}, nil); !strings.Contains(got, "the hostel") {
		t.Errorf("farewell %q does not fall back to generic hostel", got)
	}
}

func TestSynthesize_Fees_EmptyStates(t *testing.T) {
	s := newTestSynthesizer()

	got := s.Synthesize(intent.Fees, "fees?", testUser, Snapshot{}, nil)
	if !strings.Contains(got, "don't have any fee records yet") {
		t.Errorf("no-records reply = %q", got)
	}

	allPaid := Snapshot{Fees: []Fee{{Amount: 5000, DueDate: "2024-01-15", Status: FeePaid}}}
	got = s.Synthesize(intent.Fees, "fees?", testUser, allPaid, nil)
	if !strings.Contains(got, "All your fees are paid up") {
		t.Errorf("all-paid reply = %q", got)
	}
}

func TestSynthesize_Fees_PendingReport(t *testing.T) {
	s := newTestSynthesizer()
	snap := Snapshot{Fees: []Fee{
		{Amount: 5000, DueDate: "2024-03-01", Status: FeePending},
		{Amount: 2500, DueDate: "2024-02-01", Status: FeeOverdue},
		{Amount: 1000, DueDate: "2024-01-01", Status: FeePaid},
	}}

	got := s.Synthesize(intent.Fees, "pending fees", testUser, snap, nil)
	if !strings.Contains(got, "**2 pending fee(s)**") {
		t.Errorf("reply does not count 2 pending fees: %q", got)
	}
	// Insertion order wins by default, even though the second fee is due earlier.
	if !strings.Contains(got, "₹5000") || !strings.Contains(got, "2024-03-01") {
		t.Errorf("reply does not detail the first-assigned pending fee: %q", got)
	}
	if !strings.Contains(got, "1 more pending fee(s)") {
		t.Errorf("reply does not mention the remaining fee: %q", got)
	}
}

func TestSynthesize_Fees_DueDateSortingOption(t *testing.T) {
	s := newTestSynthesizer(WithFeeSorting(true))
	snap := Snapshot{Fees: []Fee{
		{Amount: 5000, DueDate: "2024-03-01", Status: FeePending},
		{Amount: 2500, DueDate: "2024-02-01", Status: FeeOverdue},
	}}

	got := s.Synthesize(intent.Fees, "pending fees", testUser, snap, nil)
	if !strings.Contains(got, "₹2500") || !strings.Contains(got, "2024-02-01") {
		t.Errorf("with sorting enabled, reply should detail the earliest-due fee: %q", got)
	}
}

func TestSynthesize_Mess(t *testing.T) {
	s := newTestSynthesizer()

	got := s.Synthesize(intent.Mess, "menu", testUser, Snapshot{}, nil)
	if !strings.Contains(got, "hasn't been updated yet") {
		t.Errorf("no-menu reply = %q", got)
	}

	snap := Snapshot{
		Hostel:   &Hostel{ID: "H101", Name: "Sunshine Dorms"},
		MessMenu: &MessMenu{Breakfast: "Poha", Lunch: "Rice & Dal", Dinner: "Roti", LastUpdated: "2024-01-01"},
	}
	got = s.Synthesize(intent.Mess, "What's for lunch today?", testUser, snap, nil)
	for _, want := range []string{"Poha", "Rice & Dal", "Roti", "2024-01-01", "Sunshine Dorms"} {
		if !strings.Contains(got, want) {
			t.Errorf("menu reply missing %q: %q", want, got)
		}
	}
}

func TestSynthesize_Notice_LatestSelection(t *testing.T) {
	s := newTestSynthesizer()

	got := s.Synthesize(intent.Notice, "notices", testUser, Snapshot{}, nil)
	if !strings.Contains(got, "all caught up") {
		t.Errorf("no-notices reply = %q", got)
	}

	snap := Snapshot{Notices: []Notice{
		{Title: "A", Content: "first", Date: "2024-01-01"},
		{Title: "B", Content: "second", Date: "2024-01-02"},
		{Title: "C", Content: "third", Date: "2024-01-03"},
	}}
	got = s.Synthesize(intent.Notice, "any notices", testUser, snap, nil)
	if !strings.Contains(got, "**C**") || !strings.Contains(got, "third") {
		t.Errorf("reply does not show the latest (last) notice: %q", got)
	}
	if !strings.Contains(got, "3 recent notices") {
		t.Errorf("reply does not mention the notice count: %q", got)
	}
	if strings.Contains(got, "first") {
		t.Errorf("reply leaked an older notice body: %q", got)
	}
}

func TestSynthesize_Leave_CompositeCounts(t *testing.T) {
	s := newTestSynthesizer()
	snap := Snapshot{Leaves: []Leave{
		{Type: "home", Status: StatusPending},
		{Type: "medical", Status: StatusApproved},
		{Type: "home", Status: StatusApproved},
		{Type: "other", Status: StatusRejected},
	}}

	got := s.Synthesize(intent.Leave, "leave status", testUser, snap, nil)
	if !strings.Contains(got, "1 pending leave request(s)") {
		t.Errorf("reply missing pending count: %q", got)
	}
	if !strings.Contains(got, "2 approved leave(s)") {
		t.Errorf("reply missing approved count: %q", got)
	}
	if !strings.Contains(got, "How to apply for leave") {
		t.Errorf("reply missing the application steps: %q", got)
	}

	// No empty-state branch: zero leaves still yields the procedure.
	got = s.Synthesize(intent.Leave, "leave", testUser, Snapshot{}, nil)
	if !strings.Contains(got, "How to apply for leave") {
		t.Errorf("zero-leave reply missing the application steps: %q", got)
	}
	if strings.Contains(got, "pending leave request") {
		t.Errorf("zero-leave reply should omit the pending clause: %q", got)
	}
}

func TestSynthesize_Complaint_Branches(t *testing.T) {
	s := newTestSynthesizer()

	// Keyword re-check takes precedence even with existing complaints.
	snap := Snapshot{Complaints: []Complaint{{Type: "Maintenance", Status: StatusPending}}}
	got := s.Synthesize(intent.Complaint, "how do I file a complaint", testUser, snap, nil)
	if !strings.Contains(got, "How to File a Complaint") {
		t.Errorf("how-branch reply = %q", got)
	}

	got = s.Synthesize(intent.Complaint, "my complaint status", testUser, Snapshot{}, nil)
	if !strings.Contains(got, "haven't filed any complaints yet") {
		t.Errorf("no-complaints reply = %q", got)
	}

	got = s.Synthesize(intent.Complaint, "complaint status", testUser, snap, nil)
	if !strings.Contains(got, "Total complaints: 1") || !strings.Contains(got, "Pending: 1") {
		t.Errorf("pending summary = %q", got)
	}

	resolved := Snapshot{Complaints: []Complaint{{Type: "Food", Status: StatusResolved}}}
	got = s.Synthesize(intent.Complaint, "complaint status", testUser, resolved, nil)
	if !strings.Contains(got, "All your complaints have been addressed") {
		t.Errorf("resolved summary = %q", got)
	}
}

func TestSynthesize_Room(t *testing.T) {
	s := newTestSynthesizer()

	snap := Snapshot{
		Hostel:      &Hostel{ID: "H101", Name: "Sunshine Dorms"},
		HostelMates: []Mate{{ID: "AMSU202402456", Name: "Amit"}},
	}
	got := s.Synthesize(intent.Room, "my room", testUser, snap, nil)
	for _, want := range []string{"**101**", "Sunshine Dorms", "MASU202401123", "Amit", "AMSU202402456"} {
		if !strings.Contains(got, want) {
			t.Errorf("room reply missing %q: %q", want, got)
		}
	}

	got = s.Synthesize(intent.Room, "my room", testUser, Snapshot{}, nil)
	if !strings.Contains(got, "**N/A**") || !strings.Contains(got, "don't have any roommates") {
		t.Errorf("roomless reply = %q", got)
	}
}

func TestSynthesize_StaticIntents_Idempotent(t *testing.T) {
	s := newTestSynthesizer()
	for _, tag := range []intent.Tag{intent.Help, intent.Health, intent.Academic, intent.Social, intent.Technical, intent.Weather} {
		first := s.Synthesize(tag, "x", testUser, Snapshot{}, nil)
		for i := 0; i < 20; i++ {
			if got := s.Synthesize(tag, "x", testUser, Snapshot{}, nil); got != first {
				t.Fatalf("%s reply not idempotent", tag)
			}
		}
	}
}

func TestSynthesize_Personal_SubBranches(t *testing.T) {
	s := newTestSynthesizer()

	got := s.Synthesize(intent.Personal, "how are you doing", testUser, Snapshot{}, nil)
	if !strings.Contains(got, "how are YOU doing") {
		t.Errorf("how-are-you reply = %q", got)
	}
	got = s.Synthesize(intent.Personal, "who are you", testUser, Snapshot{}, nil)
	if !strings.Contains(got, "intelligent hostel assistant") {
		t.Errorf("who-are-you reply = %q", got)
	}
	got = s.Synthesize(intent.Personal, "your name please", testUser, Snapshot{}, nil)
	if !strings.Contains(got, "personal hostel assistant") {
		t.Errorf("generic self-intro reply = %q", got)
	}
}

func TestSynthesize_Time_UsesClock(t *testing.T) {
	at := time.Date(2024, time.March, 4, 15, 30, 0, 0, time.UTC)
	s := newTestSynthesizer(WithClock(fixedClock{at}))

	got := s.Synthesize(intent.Time, "what time is it", testUser, Snapshot{}, nil)
	if !strings.Contains(got, "03:30 PM") {
		t.Errorf("time reply missing formatted time: %q", got)
	}
	if !strings.Contains(got, "Monday, 4 March 2024") {
		t.Errorf("time reply missing formatted date: %q", got)
	}
}

func TestSynthesize_General(t *testing.T) {
	s := newTestSynthesizer()

	got := s.Synthesize(intent.General, "thank you so much buddy", testUser, Snapshot{}, nil)
	if !strings.Contains(got, "very welcome") {
		t.Errorf("gratitude reply = %q", got)
	}

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		seen[s.Synthesize(intent.General, "tell me a joke", testUser, Snapshot{}, nil)] = true
	}
	if len(seen) != 3 {
		t.Errorf("observed %d joke variants over 1000 calls, want 3", len(seen))
	}

	got = s.Synthesize(intent.General, "asdkjasd random gibberish", testUser, Snapshot{}, nil)
	if !strings.Contains(got, `"What's for lunch?"`) || !strings.Contains(got, `"Do I have pending fees?"`) {
		t.Errorf("fallback reply missing example prompts: %q", got)
	}
}

func TestSnapshot_PendingFeesPreservesOrder(t *testing.T) {
	snap := Snapshot{Fees: []Fee{
		{Amount: 1, DueDate: "2024-05-01", Status: FeePending},
		{Amount: 2, DueDate: "2024-01-01", Status: FeePaid},
		{Amount: 3, DueDate: "2024-02-01", Status: FeeOverdue},
	}}
	pending := snap.PendingFees()
	if len(pending) != 2 {
		t.Fatalf("len(pending) = %d, want 2", len(pending))
	}
	if pending[0].Amount != 1 || pending[1].Amount != 3 {
		t.Errorf("pending order = %v, want insertion order preserved", pending)
	}
}
