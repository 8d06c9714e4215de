package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/lumina-hms/lumina/internal/assistant"
	"github.com/lumina-hms/lumina/internal/storage"
)

// MCPDeps holds dependencies for the MCP server.
type MCPDeps struct {
	Store     *storage.Store
	Assistant *assistant.Assistant
	Snapshots SnapshotBuilder
}

// SnapshotBuilder abstracts snapshot assembly for the MCP layer.
type SnapshotBuilder interface {
	Build(ctx context.Context, user assistant.UserContext) (assistant.Snapshot, error)
}

// NewMCPServer creates an MCP server exposing the hostel assistant and the
// most useful record queries as tools.
func NewMCPServer(deps MCPDeps) *server.MCPServer {
	s := server.NewMCPServer(
		"lumina",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithInstructions("lumina — hostel management assistant over student records, fees, mess menus, notices, complaints, and leave requests."),
		server.WithRecovery(),
	)

	s.AddTool(
		mcp.NewTool("ask_assistant",
			mcp.WithDescription("Ask the hostel assistant a question on behalf of a student. The reply draws on the student's fees, mess menu, notices, complaints, and leave requests."),
			mcp.WithString("student_id", mcp.Description("Student ID the question is asked for"), mcp.Required()),
			mcp.WithString("message", mcp.Description("The question to ask"), mcp.Required()),
		),
		mcpAskAssistant(deps),
	)

	s.AddTool(
		mcp.NewTool("pending_fees",
			mcp.WithDescription("List a student's unpaid fees in the order they were assigned."),
			mcp.WithString("student_id", mcp.Description("Student ID"), mcp.Required()),
		),
		mcpPendingFees(deps),
	)

	s.AddTool(
		mcp.NewTool("todays_menu",
			mcp.WithDescription("Return the current mess menu for a hostel."),
			mcp.WithString("hostel_id", mcp.Description("Hostel ID"), mcp.Required()),
		),
		mcpTodaysMenu(deps),
	)

	s.AddTool(
		mcp.NewTool("post_notice",
			mcp.WithDescription("Post a notice to a hostel's notice board."),
			mcp.WithString("hostel_id", mcp.Description("Hostel ID"), mcp.Required()),
			mcp.WithString("title", mcp.Description("Notice title"), mcp.Required()),
			mcp.WithString("content", mcp.Description("Notice body")),
		),
		mcpPostNotice(deps),
	)

	s.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"lumina://notices/{hostelID}",
			"Hostel Notices",
			mcp.WithTemplateDescription("Recent notices for a hostel as JSON, oldest-first"),
			mcp.WithTemplateMIMEType("application/json"),
		),
		mcpResourceNotices(deps),
	)

	return s
}

func mcpAskAssistant(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		studentID, err := req.RequireString("student_id")
		if err != nil {
			return mcpError("student_id is required"), nil
		}
		message, err := req.RequireString("message")
		if err != nil {
			return mcpError("message is required"), nil
		}

		student, err := deps.Store.GetStudent(studentID)
		if err != nil {
			return mcpError(fmt.Sprintf("student lookup failed: %v", err)), nil
		}

		user := assistant.UserContext{
			ID:          student.ID,
			DisplayName: student.Name,
			HostelID:    student.HostelID,
			Room:        student.Room,
		}
		snap, err := deps.Snapshots.Build(ctx, user)
		if err != nil {
			return mcpError(fmt.Sprintf("snapshot failed: %v", err)), nil
		}

		_, reply := deps.Assistant.Respond(message, user, snap, nil)
		return mcpText(reply), nil
	}
}

func mcpPendingFees(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		studentID, err := req.RequireString("student_id")
		if err != nil {
			return mcpError("student_id is required"), nil
		}

		fees, err := deps.Store.ListFees(studentID)
		if err != nil {
			return mcpError(fmt.Sprintf("fee lookup failed: %v", err)), nil
		}

		pending := make([]storage.Fee, 0, len(fees))
		for _, f := range fees {
			if f.Status != assistant.FeePaid {
				pending = append(pending, f)
			}
		}

		b, err := json.Marshal(pending)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal fees: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpTodaysMenu(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		hostelID, err := req.RequireString("hostel_id")
		if err != nil {
			return mcpError("hostel_id is required"), nil
		}

		m, err := deps.Store.GetMessMenu(hostelID)
		if err != nil {
			return mcpError(fmt.Sprintf("menu lookup failed: %v", err)), nil
		}

		b, err := json.Marshal(m)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal menu: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpPostNotice(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		hostelID, err := req.RequireString("hostel_id")
		if err != nil {
			return mcpError("hostel_id is required"), nil
		}
		title, err := req.RequireString("title")
		if err != nil {
			return mcpError("title is required"), nil
		}
		content := req.GetString("content", "")

		n := storage.Notice{
			ID:       uuid.New().String(),
			HostelID: hostelID,
			Title:    title,
			Content:  content,
			PostedAt: time.Now().UTC(),
		}
		if err := deps.Store.SaveNotice(n); err != nil {
			return mcpError(fmt.Sprintf("failed to save notice: %v", err)), nil
		}

		return mcpText(fmt.Sprintf("Posted notice %s", n.ID)), nil
	}
}

func mcpResourceNotices(deps MCPDeps) server.ResourceTemplateHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		id := strings.TrimPrefix(req.Params.URI, "lumina://notices/")
		if id == "" || strings.Contains(id, "/") {
			return nil, fmt.Errorf("hostelID is required")
		}

		notices, err := deps.Store.ListRecentNotices(id, 10)
		if err != nil {
			return nil, fmt.Errorf("failed to list notices: %w", err)
		}

		b, err := json.Marshal(notices)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal notices: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(b),
			},
		}, nil
	}
}

func mcpText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func mcpError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}
