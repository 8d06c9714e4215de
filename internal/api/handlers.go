// Package api exposes the hostel management HTTP API and the MCP tool
// surface.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lumina-hms/lumina/internal/assistant"
	"github.com/lumina-hms/lumina/internal/snapshot"
	"github.com/lumina-hms/lumina/internal/storage"
)

const maxRequestBodySize = 1 << 20 // 1MB

// historyWindow is how many prior messages the assistant sees per chat turn.
const historyWindow = 20

type AppDeps struct {
	Store     *storage.Store
	Assistant *assistant.Assistant
	Snapshots *snapshot.Provider
	Token     string
}

// NewAppHandler returns the HTTP API. Every route except /health requires
// the bearer token.
func NewAppHandler(deps AppDeps) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(BearerAuth(deps.Token))

		r.Post("/chat", handleChat(deps))
		r.Get("/chat/history", handleChatHistory(deps))

		r.Post("/hostels", handleCreateHostel(deps))
		r.Get("/hostels", handleListHostels(deps))
		r.Get("/hostels/{id}", handleGetHostel(deps))

		r.Post("/students", handleCreateStudent(deps))
		r.Get("/students", handleListStudents(deps))
		r.Get("/students/{id}", handleGetStudent(deps))

		r.Post("/fees", handleCreateFee(deps))
		r.Get("/fees", handleListFees(deps))
		r.Post("/fees/{id}/pay", handlePayFee(deps))

		r.Put("/mess-menu/{hostelID}", handlePutMessMenu(deps))
		r.Get("/mess-menu/{hostelID}", handleGetMessMenu(deps))

		r.Post("/notices", handlePostNotice(deps))
		r.Get("/notices", handleListNotices(deps))

		r.Post("/complaints", handleCreateComplaint(deps))
		r.Get("/complaints", handleListComplaints(deps))
		r.Post("/complaints/{id}/resolve", handleResolveComplaint(deps))

		r.Post("/leaves", handleCreateLeave(deps))
		r.Get("/leaves", handleListLeaves(deps))
		r.Post("/leaves/{id}/status", handleLeaveStatus(deps))

		r.Get("/backup", handleBackup(deps))
	})

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

type ChatRequest struct {
	StudentID string `json:"student_id"`
	Message   string `json:"message"`
}

type ChatResponse struct {
	Intent string `json:"intent"`
	Reply  string `json:"reply"`
}

func handleChat(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		if req.StudentID == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "student_id is required")
			return
		}
		if req.Message == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "message is required")
			return
		}

		resp, err := chatTurn(r, deps, req)
		if errors.Is(err, storage.ErrNotFound) {
			httpError(w, http.StatusNotFound, "not_found", "student not found")
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "%v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}

// chatTurn runs one full exchange: load the student, project their snapshot,
// synthesize a reply, and append both sides to the conversation log.
func chatTurn(r *http.Request, deps AppDeps, req ChatRequest) (ChatResponse, error) {
	student, err := deps.Store.GetStudent(req.StudentID)
	if err != nil {
		return ChatResponse{}, err
	}

	user := assistant.UserContext{
		ID:          student.ID,
		DisplayName: student.Name,
		HostelID:    student.HostelID,
		Room:        student.Room,
	}

	snap, err := deps.Snapshots.Build(r.Context(), user)
	if err != nil {
		return ChatResponse{}, fmt.Errorf("building snapshot: %w", err)
	}

	stored, err := deps.Store.ListChatMessages(student.ID, historyWindow)
	if err != nil {
		return ChatResponse{}, fmt.Errorf("loading chat history: %w", err)
	}
	history := make([]assistant.Message, 0, len(stored))
	for _, m := range stored {
		history = append(history, assistant.Message{Sender: m.Sender, Text: m.Body, SentAt: m.SentAt})
	}

	tag, reply := deps.Assistant.Respond(req.Message, user, snap, history)

	now := time.Now().UTC()
	if err := deps.Store.SaveChatMessage(storage.ChatMessage{
		ID: uuid.New().String(), StudentID: student.ID,
		Sender: assistant.SenderUser, Body: req.Message, SentAt: now,
	}); err != nil {
		return ChatResponse{}, fmt.Errorf("saving user message: %w", err)
	}
	if err := deps.Store.SaveChatMessage(storage.ChatMessage{
		ID: uuid.New().String(), StudentID: student.ID,
		Sender: assistant.SenderAssistant, Body: reply, SentAt: now,
	}); err != nil {
		return ChatResponse{}, fmt.Errorf("saving assistant message: %w", err)
	}

	slog.Debug("chat turn", "student", student.ID, "intent", tag.String())

	return ChatResponse{Intent: tag.String(), Reply: reply}, nil
}

func handleChatHistory(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		studentID := r.URL.Query().Get("student_id")
		if studentID == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "student_id is required")
			return
		}
		limit := parseIntParam(r, "limit", 50, 500)

		messages, err := deps.Store.ListChatMessages(studentID, limit)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to list chat history: %v", err)
			return
		}
		if messages == nil {
			messages = []storage.ChatMessage{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(messages)
	}
}

func handleCreateHostel(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		var h storage.Hostel
		if err := json.NewDecoder(r.Body).Decode(&h); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		if h.Name == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "name is required")
			return
		}
		if h.ID == "" {
			h.ID = uuid.New().String()
		}

		if err := deps.Store.SaveHostel(h); err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to save hostel: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(h)
	}
}

func handleListHostels(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hostels, err := deps.Store.ListHostels()
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to list hostels: %v", err)
			return
		}
		if hostels == nil {
			hostels = []storage.Hostel{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(hostels)
	}
}

func handleGetHostel(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h, err := deps.Store.GetHostel(chi.URLParam(r, "id"))
		if errors.Is(err, storage.ErrNotFound) {
			httpError(w, http.StatusNotFound, "not_found", "hostel not found")
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to get hostel: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(h)
	}
}

func handleCreateStudent(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		var st storage.Student
		if err := json.NewDecoder(r.Body).Decode(&st); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		if st.Name == "" || st.HostelID == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "name and hostel_id are required")
			return
		}
		if st.ID == "" {
			st.ID = uuid.New().String()
		}
		if st.CreatedAt.IsZero() {
			st.CreatedAt = time.Now().UTC()
		}

		if err := deps.Store.SaveStudent(st); err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to save student: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(st)
	}
}

func handleListStudents(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		students, err := deps.Store.ListStudents(r.URL.Query().Get("hostel_id"))
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to list students: %v", err)
			return
		}
		if students == nil {
			students = []storage.Student{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(students)
	}
}

func handleGetStudent(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := deps.Store.GetStudent(chi.URLParam(r, "id"))
		if errors.Is(err, storage.ErrNotFound) {
			httpError(w, http.StatusNotFound, "not_found", "student not found")
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to get student: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(st)
	}
}

func handleCreateFee(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		var f storage.Fee
		if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		if f.StudentID == "" || f.Amount <= 0 || f.DueDate == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "student_id, positive amount, and due_date are required")
			return
		}
		if f.ID == "" {
			f.ID = uuid.New().String()
		}
		if f.CreatedAt.IsZero() {
			f.CreatedAt = time.Now().UTC()
		}

		if err := deps.Store.SaveFee(f); err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to save fee: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(f)
	}
}

func handleListFees(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		studentID := r.URL.Query().Get("student_id")
		if studentID == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "student_id is required")
			return
		}

		fees, err := deps.Store.ListFees(studentID)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to list fees: %v", err)
			return
		}
		if fees == nil {
			fees = []storage.Fee{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(fees)
	}
}

func handlePayFee(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		err := deps.Store.MarkFeePaid(id, time.Now().UTC().Format("2006-01-02"))
		if errors.Is(err, storage.ErrNotFound) {
			httpError(w, http.StatusNotFound, "not_found", "fee not found")
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to mark fee paid: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "paid"})
	}
}

func handlePutMessMenu(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		var m storage.MessMenu
		if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		m.HostelID = chi.URLParam(r, "hostelID")
		m.UpdatedAt = time.Now().UTC()

		if err := deps.Store.UpsertMessMenu(m); err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to save mess menu: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(m)
	}
}

func handleGetMessMenu(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := deps.Store.GetMessMenu(chi.URLParam(r, "hostelID"))
		if errors.Is(err, storage.ErrNotFound) {
			httpError(w, http.StatusNotFound, "not_found", "mess menu not found")
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to get mess menu: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(m)
	}
}

func handlePostNotice(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		var n storage.Notice
		if err := json.NewDecoder(r.Body).Decode(&n); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		if n.HostelID == "" || n.Title == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "hostel_id and title are required")
			return
		}
		if n.ID == "" {
			n.ID = uuid.New().String()
		}
		if n.PostedAt.IsZero() {
			n.PostedAt = time.Now().UTC()
		}

		if err := deps.Store.SaveNotice(n); err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to save notice: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(n)
	}
}

func handleListNotices(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hostelID := r.URL.Query().Get("hostel_id")
		if hostelID == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "hostel_id is required")
			return
		}
		limit := parseIntParam(r, "limit", 20, 100)

		notices, err := deps.Store.ListRecentNotices(hostelID, limit)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to list notices: %v", err)
			return
		}
		if notices == nil {
			notices = []storage.Notice{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(notices)
	}
}

func handleCreateComplaint(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		var c storage.Complaint
		if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		if c.StudentID == "" || c.Type == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "student_id and type are required")
			return
		}
		if c.ID == "" {
			c.ID = uuid.New().String()
		}
		if c.FiledAt.IsZero() {
			c.FiledAt = time.Now().UTC()
		}

		if err := deps.Store.SaveComplaint(c); err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to save complaint: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(c)
	}
}

func handleListComplaints(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		studentID := r.URL.Query().Get("student_id")
		if studentID == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "student_id is required")
			return
		}

		complaints, err := deps.Store.ListComplaints(studentID)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to list complaints: %v", err)
			return
		}
		if complaints == nil {
			complaints = []storage.Complaint{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(complaints)
	}
}

func handleResolveComplaint(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := deps.Store.UpdateComplaintStatus(chi.URLParam(r, "id"), assistant.StatusResolved)
		if errors.Is(err, storage.ErrNotFound) {
			httpError(w, http.StatusNotFound, "not_found", "complaint not found")
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to resolve complaint: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": assistant.StatusResolved})
	}
}

func handleCreateLeave(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		var l storage.Leave
		if err := json.NewDecoder(r.Body).Decode(&l); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		if l.StudentID == "" || l.StartDate == "" || l.EndDate == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "student_id, start_date, and end_date are required")
			return
		}
		if l.ID == "" {
			l.ID = uuid.New().String()
		}
		if l.RequestedAt.IsZero() {
			l.RequestedAt = time.Now().UTC()
		}

		if err := deps.Store.SaveLeave(l); err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to save leave: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(l)
	}
}

func handleListLeaves(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		studentID := r.URL.Query().Get("student_id")
		if studentID == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "student_id is required")
			return
		}

		leaves, err := deps.Store.ListLeaves(studentID)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to list leaves: %v", err)
			return
		}
		if leaves == nil {
			leaves = []storage.Leave{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(leaves)
	}
}

type leaveStatusRequest struct {
	Status string `json:"status"`
}

func handleLeaveStatus(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		var req leaveStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		if req.Status != assistant.StatusApproved && req.Status != assistant.StatusRejected && req.Status != assistant.StatusPending {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "status must be Pending, Approved, or Rejected")
			return
		}

		err := deps.Store.UpdateLeaveStatus(chi.URLParam(r, "id"), req.Status)
		if errors.Is(err, storage.ErrNotFound) {
			httpError(w, http.StatusNotFound, "not_found", "leave not found")
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to update leave: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": req.Status})
	}
}

func handleBackup(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := deps.Store.Dump()
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to build backup: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", "attachment; filename=lumina-backup.json")
		json.NewEncoder(w).Encode(b)
	}
}

func httpError(w http.ResponseWriter, code int, errType string, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	msg := fmt.Sprintf(format, args...)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    errType,
		},
	})
}

func parseIntParam(r *http.Request, key string, defaultVal, maxVal int) int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return defaultVal
	}
	if maxVal > 0 && v > maxVal {
		return maxVal
	}
	return v
}
