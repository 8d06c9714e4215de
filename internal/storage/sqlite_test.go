package storage

import (
	"errors"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("opening test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestMigrations_Applied(t *testing.T) {
	s := openTestStore(t)

	versions, err := s.AppliedMigrations()
	if err != nil {
		t.Fatalf("reading applied migrations: %v", err)
	}
	if len(versions) == 0 {
		t.Fatal("no migrations applied")
	}
	if versions[0] != 1 {
		t.Errorf("first migration version = %d, want 1", versions[0])
	}

	// Running the migrator again must be a no-op.
	before := len(versions)
	if err := s.migrate(); err != nil {
		t.Fatalf("re-running migrations: %v", err)
	}
	versions, err = s.AppliedMigrations()
	if err != nil {
		t.Fatalf("re-reading applied migrations: %v", err)
	}
	if len(versions) != before {
		t.Errorf("migration count changed from %d to %d on re-run", before, len(versions))
	}
}

func TestHostel_RoundTrip(t *testing.T) {
	s := openTestStore(t)

	h := Hostel{ID: "H101", Name: "Sunrise Hostel", RectorName: "Dr. Mehta", TotalRooms: 120, Phone: "022-1234"}
	if err := s.SaveHostel(h); err != nil {
		t.Fatalf("saving hostel: %v", err)
	}

	got, err := s.GetHostel("H101")
	if err != nil {
		t.Fatalf("getting hostel: %v", err)
	}
	if got != h {
		t.Errorf("got %+v, want %+v", got, h)
	}

	// Upsert replaces fields.
	h.Name = "Sunrise Boys Hostel"
	if err := s.SaveHostel(h); err != nil {
		t.Fatalf("updating hostel: %v", err)
	}
	got, err = s.GetHostel("H101")
	if err != nil {
		t.Fatalf("re-getting hostel: %v", err)
	}
	if got.Name != "Sunrise Boys Hostel" {
		t.Errorf("name after update = %q", got.Name)
	}

	if _, err := s.GetHostel("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing hostel error = %v, want ErrNotFound", err)
	}
}

func TestStudents_ListAndMates(t *testing.T) {
	s := openTestStore(t)
	now := time.Now()

	students := []Student{
		{ID: "MASU202401123", Name: "Rahul", HostelID: "H101", Room: "101", CreatedAt: now},
		{ID: "MASU202401124", Name: "Amit", HostelID: "H101", Room: "101", CreatedAt: now},
		{ID: "MASU202401125", Name: "Priya", HostelID: "H202", Room: "101", CreatedAt: now},
	}
	for _, st := range students {
		if err := s.SaveStudent(st); err != nil {
			t.Fatalf("saving student %s: %v", st.ID, err)
		}
	}

	all, err := s.ListStudents("")
	if err != nil {
		t.Fatalf("listing all students: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("all students = %d, want 3", len(all))
	}

	scoped, err := s.ListStudents("H101")
	if err != nil {
		t.Fatalf("listing H101 students: %v", err)
	}
	if len(scoped) != 2 {
		t.Fatalf("H101 students = %d, want 2", len(scoped))
	}

	// Mates share hostel and room but exclude the requester. Priya is in
	// room 101 of a different hostel and must not appear.
	mates, err := s.ListHostelMates("H101", "101", "MASU202401123")
	if err != nil {
		t.Fatalf("listing mates: %v", err)
	}
	if len(mates) != 1 || mates[0].Name != "Amit" {
		t.Errorf("mates = %+v, want exactly Amit", mates)
	}
}

func TestFees_InsertionOrderAndPay(t *testing.T) {
	s := openTestStore(t)
	now := time.Now()

	// Due dates deliberately out of order; listing must follow insertion.
	fees := []Fee{
		{ID: "F1", StudentID: "MASU202401123", HostelID: "H101", Amount: 5000, DueDate: "2024-03-15", CreatedAt: now},
		{ID: "F2", StudentID: "MASU202401123", HostelID: "H101", Amount: 2500, DueDate: "2024-01-10", CreatedAt: now},
		{ID: "F3", StudentID: "MASU202401123", HostelID: "H101", Amount: 1200, DueDate: "2024-02-20", Status: "paid", PaidDate: "2024-02-01", CreatedAt: now},
	}
	for _, f := range fees {
		if err := s.SaveFee(f); err != nil {
			t.Fatalf("saving fee %s: %v", f.ID, err)
		}
	}

	got, err := s.ListFees("MASU202401123")
	if err != nil {
		t.Fatalf("listing fees: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("fees = %d, want 3", len(got))
	}
	for i, wantID := range []string{"F1", "F2", "F3"} {
		if got[i].ID != wantID {
			t.Errorf("fees[%d].ID = %s, want %s", i, got[i].ID, wantID)
		}
	}
	if got[0].Status != "pending" {
		t.Errorf("default status = %q, want pending", got[0].Status)
	}

	if err := s.MarkFeePaid("F1", "2024-03-01"); err != nil {
		t.Fatalf("marking fee paid: %v", err)
	}
	got, err = s.ListFees("MASU202401123")
	if err != nil {
		t.Fatalf("re-listing fees: %v", err)
	}
	if got[0].Status != "paid" || got[0].PaidDate != "2024-03-01" {
		t.Errorf("paid fee = %+v", got[0])
	}

	if err := s.MarkFeePaid("missing", "2024-03-01"); !errors.Is(err, ErrNotFound) {
		t.Errorf("paying missing fee error = %v, want ErrNotFound", err)
	}
}

func TestMessMenu_Upsert(t *testing.T) {
	s := openTestStore(t)

	m := MessMenu{HostelID: "H101", Breakfast: "Poha", Lunch: "Rice & Dal", Dinner: "Roti", UpdatedAt: time.Now()}
	if err := s.UpsertMessMenu(m); err != nil {
		t.Fatalf("upserting menu: %v", err)
	}

	got, err := s.GetMessMenu("H101")
	if err != nil {
		t.Fatalf("getting menu: %v", err)
	}
	if got.Lunch != "Rice & Dal" {
		t.Errorf("lunch = %q", got.Lunch)
	}

	m.Lunch = "Chole Bhature"
	if err := s.UpsertMessMenu(m); err != nil {
		t.Fatalf("re-upserting menu: %v", err)
	}
	got, err = s.GetMessMenu("H101")
	if err != nil {
		t.Fatalf("re-getting menu: %v", err)
	}
	if got.Lunch != "Chole Bhature" {
		t.Errorf("lunch after upsert = %q", got.Lunch)
	}

	if _, err := s.GetMessMenu("H999"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing menu error = %v, want ErrNotFound", err)
	}
}

func TestNotices_RecentWindow(t *testing.T) {
	s := openTestStore(t)
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	for i, title := range []string{"Water supply", "Wifi maintenance", "Holi celebration", "Mess closed", "Room inspection"} {
		n := Notice{
			ID:       title,
			HostelID: "H101",
			Title:    title,
			PostedAt: base.Add(time.Duration(i) * time.Hour),
		}
		if err := s.SaveNotice(n); err != nil {
			t.Fatalf("saving notice %q: %v", title, err)
		}
	}
	// Another hostel's notice must not leak into the window.
	if err := s.SaveNotice(Notice{ID: "other", HostelID: "H202", Title: "Other", PostedAt: base.Add(10 * time.Hour)}); err != nil {
		t.Fatalf("saving other-hostel notice: %v", err)
	}

	got, err := s.ListRecentNotices("H101", 3)
	if err != nil {
		t.Fatalf("listing recent notices: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("recent notices = %d, want 3", len(got))
	}
	// Oldest-first within the window of the 3 newest; latest is last.
	for i, want := range []string{"Holi celebration", "Mess closed", "Room inspection"} {
		if got[i].Title != want {
			t.Errorf("notices[%d] = %q, want %q", i, got[i].Title, want)
		}
	}
}

func TestComplaints_StatusUpdate(t *testing.T) {
	s := openTestStore(t)

	c := Complaint{ID: "C1", StudentID: "MASU202401123", HostelID: "H101", Type: "Plumbing", Description: "Leaky tap", FiledAt: time.Now()}
	if err := s.SaveComplaint(c); err != nil {
		t.Fatalf("saving complaint: %v", err)
	}

	got, err := s.ListComplaints("MASU202401123")
	if err != nil {
		t.Fatalf("listing complaints: %v", err)
	}
	if len(got) != 1 || got[0].Status != "Pending" {
		t.Fatalf("complaints = %+v, want one Pending", got)
	}

	if err := s.UpdateComplaintStatus("C1", "Resolved"); err != nil {
		t.Fatalf("resolving complaint: %v", err)
	}
	got, err = s.ListComplaints("MASU202401123")
	if err != nil {
		t.Fatalf("re-listing complaints: %v", err)
	}
	if got[0].Status != "Resolved" {
		t.Errorf("status = %q, want Resolved", got[0].Status)
	}

	if err := s.UpdateComplaintStatus("missing", "Resolved"); !errors.Is(err, ErrNotFound) {
		t.Errorf("resolving missing complaint error = %v, want ErrNotFound", err)
	}
}

func TestLeaves_StatusUpdate(t *testing.T) {
	s := openTestStore(t)

	l := Leave{ID: "L1", StudentID: "MASU202401123", HostelID: "H101", Type: "Home visit", StartDate: "2024-03-10", EndDate: "2024-03-12", Reason: "Festival", RequestedAt: time.Now()}
	if err := s.SaveLeave(l); err != nil {
		t.Fatalf("saving leave: %v", err)
	}

	got, err := s.ListLeaves("MASU202401123")
	if err != nil {
		t.Fatalf("listing leaves: %v", err)
	}
	if len(got) != 1 || got[0].Status != "Pending" {
		t.Fatalf("leaves = %+v, want one Pending", got)
	}

	if err := s.UpdateLeaveStatus("L1", "Approved"); err != nil {
		t.Fatalf("approving leave: %v", err)
	}
	got, err = s.ListLeaves("MASU202401123")
	if err != nil {
		t.Fatalf("re-listing leaves: %v", err)
	}
	if got[0].Status != "Approved" {
		t.Errorf("status = %q, want Approved", got[0].Status)
	}
}

func TestChatMessages_TailWindow(t *testing.T) {
	s := openTestStore(t)
	base := time.Date(2024, 3, 4, 15, 0, 0, 0, time.UTC)

	bodies := []string{"hi", "Hello Rahul!", "what's for lunch", "Rice & Dal", "thanks"}
	for i, body := range bodies {
		sender := "user"
		if i%2 == 1 {
			sender = "assistant"
		}
		m := ChatMessage{ID: body, StudentID: "MASU202401123", Sender: sender, Body: body, SentAt: base.Add(time.Duration(i) * time.Minute)}
		if err := s.SaveChatMessage(m); err != nil {
			t.Fatalf("saving message %q: %v", body, err)
		}
	}

	all, err := s.ListChatMessages("MASU202401123", 0)
	if err != nil {
		t.Fatalf("listing all messages: %v", err)
	}
	if len(all) != 5 || all[0].Body != "hi" || all[4].Body != "thanks" {
		t.Fatalf("all messages = %+v", all)
	}

	tail, err := s.ListChatMessages("MASU202401123", 2)
	if err != nil {
		t.Fatalf("listing tail: %v", err)
	}
	if len(tail) != 2 || tail[0].Body != "Rice & Dal" || tail[1].Body != "thanks" {
		t.Errorf("tail = %+v, want last two oldest-first", tail)
	}
}

func TestDump(t *testing.T) {
	s := openTestStore(t)
	now := time.Now()

	if err := s.SaveHostel(Hostel{ID: "H101", Name: "Sunrise Hostel"}); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveStudent(Student{ID: "MASU202401123", Name: "Rahul", HostelID: "H101", CreatedAt: now}); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveFee(Fee{ID: "F1", StudentID: "MASU202401123", HostelID: "H101", Amount: 5000, DueDate: "2024-03-15", CreatedAt: now}); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveNotice(Notice{ID: "N1", HostelID: "H101", Title: "Water supply", PostedAt: now}); err != nil {
		t.Fatal(err)
	}

	b, err := s.Dump()
	if err != nil {
		t.Fatalf("dumping store: %v", err)
	}
	if len(b.Hostels) != 1 || len(b.Students) != 1 || len(b.Fees) != 1 || len(b.Notices) != 1 {
		t.Errorf("dump counts = hostels %d students %d fees %d notices %d", len(b.Hostels), len(b.Students), len(b.Fees), len(b.Notices))
	}
	if b.Timestamp.IsZero() {
		t.Error("dump timestamp is zero")
	}
}
