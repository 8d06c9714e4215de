package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type recordedRequest struct {
	Method string
	Path   string
	Body   string
	Auth   string
}

type testServer struct {
	server   *httptest.Server
	requests []recordedRequest
}

func newTestServer(t *testing.T, responses map[string]string) *testServer {
	t.Helper()
	ts := &testServer{}

	ts.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body bytes.Buffer
		body.ReadFrom(r.Body)

		ts.requests = append(ts.requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.RequestURI(),
			Body:   body.String(),
			Auth:   r.Header.Get("Authorization"),
		})

		key := r.Method + " " + r.URL.Path
		if resp, ok := responses[key]; ok {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(resp))
			return
		}

		w.WriteHeader(404)
		w.Write([]byte(`{"error":{"message":"not found","type":"not_found"}}`))
	}))

	t.Cleanup(ts.server.Close)
	return ts
}

func (ts *testServer) client() *apiClient {
	return &apiClient{
		baseURL:    ts.server.URL,
		token:      "test-token",
		httpClient: ts.server.Client(),
	}
}

var ctx = context.Background()

func TestAskCommand_ChatRequest(t *testing.T) {
	ts := newTestServer(t, map[string]string{
		"POST /chat": `{"intent":"mess","reply":"Rice & Dal for lunch!"}`,
	})

	client := ts.client()
	resp, err := client.post(ctx, "/chat", map[string]string{
		"student_id": "MASU202401123",
		"message":    "What's for lunch today?",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var result struct {
		Intent string `json:"intent"`
		Reply  string `json:"reply"`
	}
	if err := decodeJSON(resp, &result); err != nil {
		t.Fatalf("decode error: %v", err)
	}

	if result.Intent != "mess" {
		t.Errorf("intent = %q, want mess", result.Intent)
	}
	if !strings.Contains(result.Reply, "Rice & Dal") {
		t.Errorf("reply = %q, want menu contents", result.Reply)
	}

	if len(ts.requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(ts.requests))
	}
	r := ts.requests[0]
	if r.Auth != "Bearer test-token" {
		t.Errorf("auth = %q, want Bearer test-token", r.Auth)
	}

	var body map[string]any
	if err := json.Unmarshal([]byte(r.Body), &body); err != nil {
		t.Fatalf("body parse error: %v", err)
	}
	if body["student_id"] != "MASU202401123" {
		t.Errorf("body.student_id = %v", body["student_id"])
	}
}

func TestAskCommand_MissingStudent(t *testing.T) {
	defer rootCmd.SetArgs(nil)

	rootCmd.SetArgs([]string{"ask", "what are my fees"})
	err := rootCmd.Execute()
	if err == nil {
		t.Fatal("expected error for missing --student flag")
	}
	if !strings.Contains(err.Error(), "required") {
		t.Errorf("error = %q, want it to mention 'required'", err.Error())
	}
}

func TestFeesList(t *testing.T) {
	ts := newTestServer(t, map[string]string{
		"GET /fees": `[{"id":"F1","amount":5000,"due_date":"2024-03-15","status":"pending"}]`,
	})

	client := ts.client()
	resp, err := client.get(ctx, "/fees?student_id=MASU202401123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var fees []struct {
		ID     string `json:"id"`
		Amount int    `json:"amount"`
		Status string `json:"status"`
	}
	if err := decodeJSON(resp, &fees); err != nil {
		t.Fatalf("decode error: %v", err)
	}

	if len(fees) != 1 {
		t.Fatalf("expected 1 fee, got %d", len(fees))
	}
	if fees[0].Amount != 5000 || fees[0].Status != "pending" {
		t.Errorf("fee = %+v", fees[0])
	}

	if got := ts.requests[0].Path; got != "/fees?student_id=MASU202401123" {
		t.Errorf("path = %q", got)
	}
}

func TestMenuSet_SendsPut(t *testing.T) {
	ts := newTestServer(t, map[string]string{
		"PUT /mess-menu/H101": `{"hostel_id":"H101","breakfast":"Poha","lunch":"Rice","dinner":"Roti"}`,
	})

	client := ts.client()
	resp, err := client.put(ctx, "/mess-menu/H101", map[string]string{
		"breakfast": "Poha", "lunch": "Rice", "dinner": "Roti",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var menu map[string]any
	if err := decodeJSON(resp, &menu); err != nil {
		t.Fatalf("decode error: %v", err)
	}

	if len(ts.requests) != 1 || ts.requests[0].Method != "PUT" {
		t.Fatalf("requests = %+v, want one PUT", ts.requests)
	}
}

func TestDecodeJSON_ErrorEnvelope(t *testing.T) {
	ts := newTestServer(t, map[string]string{})

	client := ts.client()
	resp, err := client.get(ctx, "/fees?student_id=ghost")
	if err != nil {
		t.Fatalf("unexpected transport error: %v", err)
	}

	var out any
	err = decodeJSON(resp, &out)
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
	if !strings.Contains(err.Error(), "404") || !strings.Contains(err.Error(), "not_found") {
		t.Errorf("error = %q, want status and envelope", err.Error())
	}
}

func TestServerNotReachable(t *testing.T) {
	ts := newTestServer(t, map[string]string{})
	ts.server.Close()

	client := ts.client()
	_, err := client.get(ctx, "/health")
	if err == nil {
		t.Fatal("expected error for stopped server")
	}
	if !strings.Contains(err.Error(), "not reachable") {
		t.Errorf("error = %q, want it to mention 'not reachable'", err.Error())
	}
}

func TestNoColorFlag(t *testing.T) {
	old := noColor
	defer func() { noColor = old }()

	noColor = true
	result := colorize(colorGreen, "test message")
	if strings.Contains(result, "\033[") {
		t.Errorf("colorize with noColor=true should not contain ANSI codes, got %q", result)
	}
	if result != "test message" {
		t.Errorf("result = %q, want %q", result, "test message")
	}
}

func TestFeeOrderingLabel(t *testing.T) {
	if got := feeOrderingLabel(false); got != "assignment order" {
		t.Errorf("label = %q", got)
	}
	if got := feeOrderingLabel(true); got != "by due date" {
		t.Errorf("label = %q", got)
	}
}
