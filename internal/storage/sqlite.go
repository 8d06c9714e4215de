// Package storage persists hostel records in SQLite and exposes the scoped
// read queries the assistant's snapshot provider consumes.
package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store wraps a SQLite database with methods for hostels, students, fees,
// mess menus, notices, complaints, leaves, and the chat log.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) a SQLite database in dataDir and runs pending
// migrations. Pass ":memory:" as dataDir for an in-memory database (used by
// tests).
func Open(dataDir string) (*Store, error) {
	var dsn string
	if dataDir == ":memory:" {
		dsn = ":memory:"
	} else {
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		dsn = filepath.Join(dataDir, "lumina.db")
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	// Limit to single connection to avoid "database is locked" errors.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting journal mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate reads embedded SQL migration files and applies any that haven't
// been run yet.
func (s *Store) migrate() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		version, err := parseMigrationVersion(entry.Name())
		if err != nil {
			return err
		}

		var exists int
		if err := s.db.QueryRow("SELECT COUNT(*) FROM schema_version WHERE version = ?", version).Scan(&exists); err != nil {
			return fmt.Errorf("checking migration %d: %w", version, err)
		}
		if exists > 0 {
			continue
		}

		content, err := migrationsFS.ReadFile("migrations/" + entry.Name())
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", entry.Name(), err)
		}

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("beginning transaction for migration %d: %w", version, err)
		}
		if _, err := tx.Exec(string(content)); err != nil {
			tx.Rollback()
			return fmt.Errorf("applying migration %d: %w", version, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", version); err != nil {
			tx.Rollback()
			return fmt.Errorf("recording migration %d: %w", version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %d: %w", version, err)
		}
	}

	return nil
}

func parseMigrationVersion(filename string) (int, error) {
	var version int
	if _, err := fmt.Sscanf(filename, "%d_", &version); err != nil {
		return 0, fmt.Errorf("parsing migration version from %q: %w", filename, err)
	}
	return version, nil
}

// AppliedMigrations returns the applied migration versions in ascending order.
func (s *Store) AppliedMigrations() ([]int, error) {
	rows, err := s.db.Query("SELECT version FROM schema_version ORDER BY version ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var versions []int
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(field, value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s: %w", field, err)
	}
	return t, nil
}

// --- Hostels ---

func (s *Store) SaveHostel(h Hostel) error {
	_, err := s.db.Exec(`
		INSERT INTO hostels (id, name, rector_id, rector_name, rector_email, total_rooms, phone)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name, rector_id = excluded.rector_id,
			rector_name = excluded.rector_name, rector_email = excluded.rector_email,
			total_rooms = excluded.total_rooms, phone = excluded.phone`,
		h.ID, h.Name, h.RectorID, h.RectorName, h.RectorEmail, h.TotalRooms, h.Phone,
	)
	return err
}

func (s *Store) GetHostel(id string) (Hostel, error) {
	var h Hostel
	err := s.db.QueryRow(`
		SELECT id, name, rector_id, rector_name, rector_email, total_rooms, phone
		FROM hostels WHERE id = ?`, id,
	).Scan(&h.ID, &h.Name, &h.RectorID, &h.RectorName, &h.RectorEmail, &h.TotalRooms, &h.Phone)
	if err == sql.ErrNoRows {
		return Hostel{}, ErrNotFound
	}
	return h, err
}

func (s *Store) ListHostels() ([]Hostel, error) {
	rows, err := s.db.Query(`
		SELECT id, name, rector_id, rector_name, rector_email, total_rooms, phone
		FROM hostels ORDER BY rowid ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Hostel
	for rows.Next() {
		var h Hostel
		if err := rows.Scan(&h.ID, &h.Name, &h.RectorID, &h.RectorName, &h.RectorEmail, &h.TotalRooms, &h.Phone); err != nil {
			return nil, err
		}
		results = append(results, h)
	}
	return results, rows.Err()
}

// --- Students ---

func (s *Store) SaveStudent(st Student) error {
	_, err := s.db.Exec(`
		INSERT INTO students (id, name, hostel_id, room, email, phone, guardian_name, guardian_phone, joined_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name, hostel_id = excluded.hostel_id, room = excluded.room,
			email = excluded.email, phone = excluded.phone,
			guardian_name = excluded.guardian_name, guardian_phone = excluded.guardian_phone,
			joined_date = excluded.joined_date`,
		st.ID, st.Name, st.HostelID, st.Room, st.Email, st.Phone,
		st.GuardianName, st.GuardianPhone, st.JoinedDate, formatTime(st.CreatedAt),
	)
	return err
}

func (s *Store) GetStudent(id string) (Student, error) {
	var st Student
	var createdAt string
	err := s.db.QueryRow(`
		SELECT id, name, hostel_id, room, email, phone, guardian_name, guardian_phone, joined_date, created_at
		FROM students WHERE id = ?`, id,
	).Scan(&st.ID, &st.Name, &st.HostelID, &st.Room, &st.Email, &st.Phone, &st.GuardianName, &st.GuardianPhone, &st.JoinedDate, &createdAt)
	if err == sql.ErrNoRows {
		return Student{}, ErrNotFound
	}
	if err != nil {
		return Student{}, err
	}
	if st.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return Student{}, err
	}
	return st, nil
}

// ListStudents returns students of one hostel, or all students when hostelID
// is empty, in registration order.
func (s *Store) ListStudents(hostelID string) ([]Student, error) {
	query := `SELECT id, name, hostel_id, room, email, phone, guardian_name, guardian_phone, joined_date, created_at
		FROM students`
	var args []any
	if hostelID != "" {
		query += ` WHERE hostel_id = ?`
		args = append(args, hostelID)
	}
	query += ` ORDER BY rowid ASC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Student
	for rows.Next() {
		var st Student
		var createdAt string
		if err := rows.Scan(&st.ID, &st.Name, &st.HostelID, &st.Room, &st.Email, &st.Phone, &st.GuardianName, &st.GuardianPhone, &st.JoinedDate, &createdAt); err != nil {
			return nil, err
		}
		if st.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
			return nil, err
		}
		results = append(results, st)
	}
	return results, rows.Err()
}

// ListHostelMates returns students sharing the hostel and room, excluding the
// requesting student.
func (s *Store) ListHostelMates(hostelID, room, excludingID string) ([]Student, error) {
	rows, err := s.db.Query(`
		SELECT id, name, hostel_id, room, email, phone, guardian_name, guardian_phone, joined_date, created_at
		FROM students WHERE hostel_id = ? AND room = ? AND id != ? ORDER BY rowid ASC`,
		hostelID, room, excludingID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Student
	for rows.Next() {
		var st Student
		var createdAt string
		if err := rows.Scan(&st.ID, &st.Name, &st.HostelID, &st.Room, &st.Email, &st.Phone, &st.GuardianName, &st.GuardianPhone, &st.JoinedDate, &createdAt); err != nil {
			return nil, err
		}
		if st.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
			return nil, err
		}
		results = append(results, st)
	}
	return results, rows.Err()
}

// --- Fees ---

func (s *Store) SaveFee(f Fee) error {
	status := f.Status
	if status == "" {
		status = "pending"
	}
	_, err := s.db.Exec(`
		INSERT INTO fees (id, student_id, hostel_id, amount, due_date, status, paid_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		f.ID, f.StudentID, f.HostelID, f.Amount, f.DueDate, status, f.PaidDate, formatTime(f.CreatedAt),
	)
	return err
}

// ListFees returns a student's fees in assignment order (rowid), not sorted
// by due date. The chat assistant reports pending fees in this order.
func (s *Store) ListFees(studentID string) ([]Fee, error) {
	rows, err := s.db.Query(`
		SELECT id, student_id, hostel_id, amount, due_date, status, paid_date, created_at
		FROM fees WHERE student_id = ? ORDER BY rowid ASC`, studentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFees(rows)
}

func (s *Store) listAllFees() ([]Fee, error) {
	rows, err := s.db.Query(`
		SELECT id, student_id, hostel_id, amount, due_date, status, paid_date, created_at
		FROM fees ORDER BY rowid ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFees(rows)
}

func scanFees(rows *sql.Rows) ([]Fee, error) {
	var results []Fee
	for rows.Next() {
		var f Fee
		var createdAt string
		if err := rows.Scan(&f.ID, &f.StudentID, &f.HostelID, &f.Amount, &f.DueDate, &f.Status, &f.PaidDate, &createdAt); err != nil {
			return nil, err
		}
		var err error
		if f.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
			return nil, err
		}
		results = append(results, f)
	}
	return results, rows.Err()
}

// MarkFeePaid flips a fee to paid and records the payment date.
func (s *Store) MarkFeePaid(id, paidDate string) error {
	res, err := s.db.Exec(`UPDATE fees SET status = 'paid', paid_date = ? WHERE id = ?`, paidDate, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Mess menus ---

func (s *Store) UpsertMessMenu(m MessMenu) error {
	_, err := s.db.Exec(`
		INSERT INTO mess_menus (hostel_id, breakfast, lunch, dinner, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(hostel_id) DO UPDATE SET
			breakfast = excluded.breakfast, lunch = excluded.lunch,
			dinner = excluded.dinner, updated_at = excluded.updated_at`,
		m.HostelID, m.Breakfast, m.Lunch, m.Dinner, formatTime(m.UpdatedAt),
	)
	return err
}

func (s *Store) GetMessMenu(hostelID string) (MessMenu, error) {
	var m MessMenu
	var updatedAt string
	err := s.db.QueryRow(`
		SELECT hostel_id, breakfast, lunch, dinner, updated_at
		FROM mess_menus WHERE hostel_id = ?`, hostelID,
	).Scan(&m.HostelID, &m.Breakfast, &m.Lunch, &m.Dinner, &updatedAt)
	if err == sql.ErrNoRows {
		return MessMenu{}, ErrNotFound
	}
	if err != nil {
		return MessMenu{}, err
	}
	if m.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return MessMenu{}, err
	}
	return m, nil
}

// --- Notices ---

func (s *Store) SaveNotice(n Notice) error {
	_, err := s.db.Exec(`
		INSERT INTO notices (id, hostel_id, title, content, posted_at)
		VALUES (?, ?, ?, ?, ?)`,
		n.ID, n.HostelID, n.Title, n.Content, formatTime(n.PostedAt),
	)
	return err
}

// ListRecentNotices returns up to limit of the hostel's newest notices,
// oldest-first, so the latest notice is the last element.
func (s *Store) ListRecentNotices(hostelID string, limit int) ([]Notice, error) {
	rows, err := s.db.Query(`
		SELECT id, hostel_id, title, content, posted_at
		FROM notices WHERE hostel_id = ?
		ORDER BY posted_at DESC, rowid DESC LIMIT ?`, hostelID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results, err := scanNotices(rows)
	if err != nil {
		return nil, err
	}
	// Reverse the newest-first page into oldest-first order.
	for i, j := 0, len(results)-1; i < j; i, j = i+1, j-1 {
		results[i], results[j] = results[j], results[i]
	}
	return results, nil
}

func (s *Store) listAllNotices() ([]Notice, error) {
	rows, err := s.db.Query(`SELECT id, hostel_id, title, content, posted_at FROM notices ORDER BY rowid ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanNotices(rows)
}

func scanNotices(rows *sql.Rows) ([]Notice, error) {
	var results []Notice
	for rows.Next() {
		var n Notice
		var postedAt string
		if err := rows.Scan(&n.ID, &n.HostelID, &n.Title, &n.Content, &postedAt); err != nil {
			return nil, err
		}
		var err error
		if n.PostedAt, err = parseTime("posted_at", postedAt); err != nil {
			return nil, err
		}
		results = append(results, n)
	}
	return results, rows.Err()
}

// --- Complaints ---

func (s *Store) SaveComplaint(c Complaint) error {
	status := c.Status
	if status == "" {
		status = "Pending"
	}
	_, err := s.db.Exec(`
		INSERT INTO complaints (id, student_id, hostel_id, type, description, status, filed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.StudentID, c.HostelID, c.Type, c.Description, status, formatTime(c.FiledAt),
	)
	return err
}

func (s *Store) ListComplaints(studentID string) ([]Complaint, error) {
	rows, err := s.db.Query(`
		SELECT id, student_id, hostel_id, type, description, status, filed_at
		FROM complaints WHERE student_id = ? ORDER BY rowid ASC`, studentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanComplaints(rows)
}

func (s *Store) listAllComplaints() ([]Complaint, error) {
	rows, err := s.db.Query(`
		SELECT id, student_id, hostel_id, type, description, status, filed_at
		FROM complaints ORDER BY rowid ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanComplaints(rows)
}

func scanComplaints(rows *sql.Rows) ([]Complaint, error) {
	var results []Complaint
	for rows.Next() {
		var c Complaint
		var filedAt string
		if err := rows.Scan(&c.ID, &c.StudentID, &c.HostelID, &c.Type, &c.Description, &c.Status, &filedAt); err != nil {
			return nil, err
		}
		var err error
		if c.FiledAt, err = parseTime("filed_at", filedAt); err != nil {
			return nil, err
		}
		results = append(results, c)
	}
	return results, rows.Err()
}

func (s *Store) UpdateComplaintStatus(id, status string) error {
	res, err := s.db.Exec(`UPDATE complaints SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Leaves ---

func (s *Store) SaveLeave(l Leave) error {
	status := l.Status
	if status == "" {
		status = "Pending"
	}
	_, err := s.db.Exec(`
		INSERT INTO leaves (id, student_id, hostel_id, type, start_date, end_date, reason, status, requested_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.StudentID, l.HostelID, l.Type, l.StartDate, l.EndDate, l.Reason, status, formatTime(l.RequestedAt),
	)
	return err
}

func (s *Store) ListLeaves(studentID string) ([]Leave, error) {
	rows, err := s.db.Query(`
		SELECT id, student_id, hostel_id, type, start_date, end_date, reason, status, requested_at
		FROM leaves WHERE student_id = ? ORDER BY rowid ASC`, studentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLeaves(rows)
}

func (s *Store) listAllLeaves() ([]Leave, error) {
	rows, err := s.db.Query(`
		SELECT id, student_id, hostel_id, type, start_date, end_date, reason, status, requested_at
		FROM leaves ORDER BY rowid ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLeaves(rows)
}

func scanLeaves(rows *sql.Rows) ([]Leave, error) {
	var results []Leave
	for rows.Next() {
		var l Leave
		var requestedAt string
		if err := rows.Scan(&l.ID, &l.StudentID, &l.HostelID, &l.Type, &l.StartDate, &l.EndDate, &l.Reason, &l.Status, &requestedAt); err != nil {
			return nil, err
		}
		var err error
		if l.RequestedAt, err = parseTime("requested_at", requestedAt); err != nil {
			return nil, err
		}
		results = append(results, l)
	}
	return results, rows.Err()
}

func (s *Store) UpdateLeaveStatus(id, status string) error {
	res, err := s.db.Exec(`UPDATE leaves SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Chat log ---

func (s *Store) SaveChatMessage(m ChatMessage) error {
	_, err := s.db.Exec(`
		INSERT INTO chat_messages (id, student_id, sender, body, sent_at)
		VALUES (?, ?, ?, ?, ?)`,
		m.ID, m.StudentID, m.Sender, m.Body, formatTime(m.SentAt),
	)
	return err
}

// ListChatMessages returns a student's conversation log oldest-first. A
// limit <= 0 returns the whole log.
func (s *Store) ListChatMessages(studentID string, limit int) ([]ChatMessage, error) {
	query := `SELECT id, student_id, sender, body, sent_at
		FROM chat_messages WHERE student_id = ? ORDER BY rowid ASC`
	args := []any{studentID}
	if limit > 0 {
		// Page from the tail: newest N, then reverse below.
		query = `SELECT id, student_id, sender, body, sent_at
			FROM chat_messages WHERE student_id = ? ORDER BY rowid DESC LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []ChatMessage
	for rows.Next() {
		var m ChatMessage
		var sentAt string
		if err := rows.Scan(&m.ID, &m.StudentID, &m.Sender, &m.Body, &sentAt); err != nil {
			return nil, err
		}
		if m.SentAt, err = parseTime("sent_at", sentAt); err != nil {
			return nil, err
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if limit > 0 {
		for i, j := 0, len(results)-1; i < j; i, j = i+1, j-1 {
			results[i], results[j] = results[j], results[i]
		}
	}
	return results, nil
}

// --- Backup ---

// Dump assembles a whole-store snapshot for the backup endpoint.
func (s *Store) Dump() (Backup, error) {
	b := Backup{Timestamp: time.Now().UTC()}
	var err error

	if b.Hostels, err = s.ListHostels(); err != nil {
		return Backup{}, fmt.Errorf("dumping hostels: %w", err)
	}
	if b.Students, err = s.ListStudents(""); err != nil {
		return Backup{}, fmt.Errorf("dumping students: %w", err)
	}
	if b.Fees, err = s.listAllFees(); err != nil {
		return Backup{}, fmt.Errorf("dumping fees: %w", err)
	}
	if b.Notices, err = s.listAllNotices(); err != nil {
		return Backup{}, fmt.Errorf("dumping notices: %w", err)
	}
	if b.Complaints, err = s.listAllComplaints(); err != nil {
		return Backup{}, fmt.Errorf("dumping complaints: %w", err)
	}
	if b.Leaves, err = s.listAllLeaves(); err != nil {
		return Backup{}, fmt.Errorf("dumping leaves: %w", err)
	}
	return b, nil
}
