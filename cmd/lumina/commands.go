package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/spf13/cobra"

	"github.com/lumina-hms/lumina/internal/config"
)

// --- ask ---

var askCmd = &cobra.Command{
	Use:   "ask <message>",
	Short: "Ask the hostel assistant a question",
	Long: `Ask the hostel assistant a question on behalf of a student.

Examples:
  lumina ask --student MASU202401123 "what are my pending fees"
  lumina ask --student MASU202401123 "what's for lunch today"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		studentID, _ := cmd.Flags().GetString("student")
		if studentID == "" {
			return fmt.Errorf("--student is required")
		}
		message := strings.Join(args, " ")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.post(cmd.Context(), "/chat", map[string]string{
			"student_id": studentID,
			"message":    message,
		})
		if err != nil {
			return err
		}

		var result struct {
			Intent string `json:"intent"`
			Reply  string `json:"reply"`
		}
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		fmt.Printf("%s\n\n%s\n", colorize(colorCyan, "["+result.Intent+"]"), result.Reply)
		return nil
	},
}

func init() {
	askCmd.Flags().String("student", "", "student ID to ask on behalf of")
}

// --- hostels ---

var hostelsCmd = &cobra.Command{
	Use:   "hostels",
	Short: "Manage hostels",
}

var hostelsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Register a hostel",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, _ := cmd.Flags().GetString("id")
		rooms, _ := cmd.Flags().GetInt("rooms")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.post(cmd.Context(), "/hostels", map[string]any{
			"id": id, "name": args[0], "total_rooms": rooms,
		})
		if err != nil {
			return err
		}

		var created struct {
			ID string `json:"id"`
		}
		if err := decodeJSON(resp, &created); err != nil {
			return err
		}

		printSuccess("Registered hostel %s (%s)", args[0], created.ID)
		return nil
	},
}

var hostelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered hostels",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), "/hostels")
		if err != nil {
			return err
		}

		var hostels []struct {
			ID         string `json:"id"`
			Name       string `json:"name"`
			TotalRooms int    `json:"total_rooms"`
		}
		if err := decodeJSON(resp, &hostels); err != nil {
			return err
		}

		if len(hostels) == 0 {
			fmt.Println("No hostels registered.")
			return nil
		}
		for _, h := range hostels {
			fmt.Printf("%s  %s (%d rooms)\n", colorize(colorCyan, h.ID), h.Name, h.TotalRooms)
		}
		return nil
	},
}

func init() {
	hostelsAddCmd.Flags().String("id", "", "hostel ID (generated when empty)")
	hostelsAddCmd.Flags().Int("rooms", 0, "total rooms")
	hostelsCmd.AddCommand(hostelsAddCmd)
	hostelsCmd.AddCommand(hostelsListCmd)
}

// --- students ---

var studentsCmd = &cobra.Command{
	Use:   "students",
	Short: "Manage students",
}

var studentsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Register a student",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, _ := cmd.Flags().GetString("id")
		hostelID, _ := cmd.Flags().GetString("hostel")
		room, _ := cmd.Flags().GetString("room")
		if hostelID == "" {
			return fmt.Errorf("--hostel is required")
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.post(cmd.Context(), "/students", map[string]any{
			"id": id, "name": args[0], "hostel_id": hostelID, "room": room,
		})
		if err != nil {
			return err
		}

		var created struct {
			ID string `json:"id"`
		}
		if err := decodeJSON(resp, &created); err != nil {
			return err
		}

		printSuccess("Registered student %s (%s)", args[0], created.ID)
		return nil
	},
}

var studentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List students",
	RunE: func(cmd *cobra.Command, args []string) error {
		hostelID, _ := cmd.Flags().GetString("hostel")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		path := "/students"
		if hostelID != "" {
			path += "?hostel_id=" + hostelID
		}
		resp, err := client.get(cmd.Context(), path)
		if err != nil {
			return err
		}

		var students []struct {
			ID       string `json:"id"`
			Name     string `json:"name"`
			HostelID string `json:"hostel_id"`
			Room     string `json:"room"`
		}
		if err := decodeJSON(resp, &students); err != nil {
			return err
		}

		if len(students) == 0 {
			fmt.Println("No students found.")
			return nil
		}
		for _, s := range students {
			fmt.Printf("%s  %s  %s/%s\n", colorize(colorCyan, s.ID), s.Name, s.HostelID, s.Room)
		}
		return nil
	},
}

func init() {
	studentsAddCmd.Flags().String("id", "", "student ID (generated when empty)")
	studentsAddCmd.Flags().String("hostel", "", "hostel ID")
	studentsAddCmd.Flags().String("room", "", "room number")
	studentsListCmd.Flags().String("hostel", "", "filter by hostel ID")
	studentsCmd.AddCommand(studentsAddCmd)
	studentsCmd.AddCommand(studentsListCmd)
}

// --- fees ---

var feesCmd = &cobra.Command{
	Use:   "fees",
	Short: "Manage fees",
}

var feesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Assign a fee to a student",
	RunE: func(cmd *cobra.Command, args []string) error {
		studentID, _ := cmd.Flags().GetString("student")
		hostelID, _ := cmd.Flags().GetString("hostel")
		amount, _ := cmd.Flags().GetInt("amount")
		due, _ := cmd.Flags().GetString("due")
		if studentID == "" || amount <= 0 || due == "" {
			return fmt.Errorf("--student, positive --amount, and --due are required")
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.post(cmd.Context(), "/fees", map[string]any{
			"student_id": studentID, "hostel_id": hostelID, "amount": amount, "due_date": due,
		})
		if err != nil {
			return err
		}

		var created struct {
			ID string `json:"id"`
		}
		if err := decodeJSON(resp, &created); err != nil {
			return err
		}

		printSuccess("Assigned fee ₹%d to %s (%s)", amount, studentID, created.ID)
		return nil
	},
}

var feesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a student's fees",
	RunE: func(cmd *cobra.Command, args []string) error {
		studentID, _ := cmd.Flags().GetString("student")
		if studentID == "" {
			return fmt.Errorf("--student is required")
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), "/fees?student_id="+studentID)
		if err != nil {
			return err
		}

		var fees []struct {
			ID      string `json:"id"`
			Amount  int    `json:"amount"`
			DueDate string `json:"due_date"`
			Status  string `json:"status"`
		}
		if err := decodeJSON(resp, &fees); err != nil {
			return err
		}

		if len(fees) == 0 {
			fmt.Println("No fees found.")
			return nil
		}
		for _, f := range fees {
			status := f.Status
			if status != "paid" {
				status = colorize(colorYellow, status)
			}
			fmt.Printf("%s  ₹%d  due %s  %s\n", colorize(colorCyan, f.ID[:8]), f.Amount, f.DueDate, status)
		}
		return nil
	},
}

var feesPayCmd = &cobra.Command{
	Use:   "pay <fee-id>",
	Short: "Mark a fee as paid",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.post(cmd.Context(), "/fees/"+args[0]+"/pay", nil)
		if err != nil {
			return err
		}

		var result map[string]string
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		printSuccess("Fee %s marked paid", args[0])
		return nil
	},
}

func init() {
	feesAddCmd.Flags().String("student", "", "student ID")
	feesAddCmd.Flags().String("hostel", "", "hostel ID")
	feesAddCmd.Flags().Int("amount", 0, "fee amount in rupees")
	feesAddCmd.Flags().String("due", "", "due date (YYYY-MM-DD)")
	feesListCmd.Flags().String("student", "", "student ID")
	feesCmd.AddCommand(feesAddCmd)
	feesCmd.AddCommand(feesListCmd)
	feesCmd.AddCommand(feesPayCmd)
}

// --- menu ---

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Show or set a hostel's mess menu",
}

var menuShowCmd = &cobra.Command{
	Use:   "show <hostel-id>",
	Short: "Show the current mess menu",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), "/mess-menu/"+args[0])
		if err != nil {
			return err
		}

		var menu struct {
			Breakfast string `json:"breakfast"`
			Lunch     string `json:"lunch"`
			Dinner    string `json:"dinner"`
		}
		if err := decodeJSON(resp, &menu); err != nil {
			return err
		}

		printStatus("Breakfast", "%s", menu.Breakfast)
		printStatus("Lunch", "%s", menu.Lunch)
		printStatus("Dinner", "%s", menu.Dinner)
		return nil
	},
}

var menuSetCmd = &cobra.Command{
	Use:   "set <hostel-id>",
	Short: "Set the mess menu",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		breakfast, _ := cmd.Flags().GetString("breakfast")
		lunch, _ := cmd.Flags().GetString("lunch")
		dinner, _ := cmd.Flags().GetString("dinner")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.put(cmd.Context(), "/mess-menu/"+args[0], map[string]string{
			"breakfast": breakfast, "lunch": lunch, "dinner": dinner,
		})
		if err != nil {
			return err
		}

		var menu map[string]any
		if err := decodeJSON(resp, &menu); err != nil {
			return err
		}

		printSuccess("Menu updated for %s", args[0])
		return nil
	},
}

func init() {
	menuSetCmd.Flags().String("breakfast", "", "breakfast items")
	menuSetCmd.Flags().String("lunch", "", "lunch items")
	menuSetCmd.Flags().String("dinner", "", "dinner items")
	menuCmd.AddCommand(menuShowCmd)
	menuCmd.AddCommand(menuSetCmd)
}

// --- notices ---

var noticesCmd = &cobra.Command{
	Use:   "notices",
	Short: "Manage hostel notices",
}

var noticesPostCmd = &cobra.Command{
	Use:   "post",
	Short: "Post a notice to a hostel's board",
	Long: `Post a notice to a hostel's board.

The body comes from --content, or from --pdf which extracts the text of a
PDF circular.

Examples:
  lumina notices post --hostel H101 --title "Water supply" --content "No water 2-4pm"
  lumina notices post --hostel H101 --title "Holiday circular" --pdf ./circular.pdf`,
	RunE: func(cmd *cobra.Command, args []string) error {
		hostelID, _ := cmd.Flags().GetString("hostel")
		title, _ := cmd.Flags().GetString("title")
		content, _ := cmd.Flags().GetString("content")
		pdfPath, _ := cmd.Flags().GetString("pdf")
		if hostelID == "" || title == "" {
			return fmt.Errorf("--hostel and --title are required")
		}
		if content != "" && pdfPath != "" {
			return fmt.Errorf("--content and --pdf are mutually exclusive")
		}

		if pdfPath != "" {
			text, err := extractPDFText(pdfPath)
			if err != nil {
				return fmt.Errorf("extracting PDF text: %w", err)
			}
			content = text
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.post(cmd.Context(), "/notices", map[string]string{
			"hostel_id": hostelID, "title": title, "content": content,
		})
		if err != nil {
			return err
		}

		var created struct {
			ID string `json:"id"`
		}
		if err := decodeJSON(resp, &created); err != nil {
			return err
		}

		printSuccess("Posted notice %q (%s)", title, created.ID)
		return nil
	},
}

var noticesListCmd = &cobra.Command{
	Use:   "list <hostel-id>",
	Short: "List recent notices, oldest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), fmt.Sprintf("/notices?hostel_id=%s&limit=%d", args[0], limit))
		if err != nil {
			return err
		}

		var notices []struct {
			Title    string `json:"title"`
			Content  string `json:"content"`
			PostedAt string `json:"posted_at"`
		}
		if err := decodeJSON(resp, &notices); err != nil {
			return err
		}

		if len(notices) == 0 {
			fmt.Println("No notices found.")
			return nil
		}
		for _, n := range notices {
			fmt.Printf("%s  %s\n", n.PostedAt, colorize(colorBold, n.Title))
			if n.Content != "" {
				content := n.Content
				if len(content) > 200 {
					content = content[:200] + "..."
				}
				fmt.Printf("  %s\n", content)
			}
		}
		return nil
	},
}

// extractPDFText returns the plain text of every page of a PDF circular.
func extractPDFText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	reader, err := r.GetPlainText()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return "", err
	}
	text := strings.TrimSpace(buf.String())
	if text == "" {
		return "", fmt.Errorf("no extractable text in %s", filepath.Base(path))
	}
	return text, nil
}

func init() {
	noticesPostCmd.Flags().String("hostel", "", "hostel ID")
	noticesPostCmd.Flags().String("title", "", "notice title")
	noticesPostCmd.Flags().String("content", "", "notice body")
	noticesPostCmd.Flags().String("pdf", "", "PDF file whose text becomes the notice body")
	noticesListCmd.Flags().Int("limit", 10, "maximum number of notices")
	noticesCmd.AddCommand(noticesPostCmd)
	noticesCmd.AddCommand(noticesListCmd)
}

// --- complaints ---

var complaintsCmd = &cobra.Command{
	Use:   "complaints",
	Short: "Manage complaints",
}

var complaintsFileCmd = &cobra.Command{
	Use:   "file",
	Short: "File a complaint for a student",
	RunE: func(cmd *cobra.Command, args []string) error {
		studentID, _ := cmd.Flags().GetString("student")
		hostelID, _ := cmd.Flags().GetString("hostel")
		ctype, _ := cmd.Flags().GetString("type")
		desc, _ := cmd.Flags().GetString("description")
		if studentID == "" || ctype == "" {
			return fmt.Errorf("--student and --type are required")
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.post(cmd.Context(), "/complaints", map[string]string{
			"student_id": studentID, "hostel_id": hostelID, "type": ctype, "description": desc,
		})
		if err != nil {
			return err
		}

		var created struct {
			ID string `json:"id"`
		}
		if err := decodeJSON(resp, &created); err != nil {
			return err
		}

		printSuccess("Filed %s complaint (%s)", ctype, created.ID)
		return nil
	},
}

var complaintsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a student's complaints",
	RunE: func(cmd *cobra.Command, args []string) error {
		studentID, _ := cmd.Flags().GetString("student")
		if studentID == "" {
			return fmt.Errorf("--student is required")
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), "/complaints?student_id="+studentID)
		if err != nil {
			return err
		}

		var complaints []struct {
			ID     string `json:"id"`
			Type   string `json:"type"`
			Status string `json:"status"`
		}
		if err := decodeJSON(resp, &complaints); err != nil {
			return err
		}

		if len(complaints) == 0 {
			fmt.Println("No complaints found.")
			return nil
		}
		for _, c := range complaints {
			fmt.Printf("%s  %s  %s\n", colorize(colorCyan, c.ID[:8]), c.Type, c.Status)
		}
		return nil
	},
}

var complaintsResolveCmd = &cobra.Command{
	Use:   "resolve <complaint-id>",
	Short: "Mark a complaint resolved",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.post(cmd.Context(), "/complaints/"+args[0]+"/resolve", nil)
		if err != nil {
			return err
		}

		var result map[string]string
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		printSuccess("Complaint %s resolved", args[0])
		return nil
	},
}

func init() {
	complaintsFileCmd.Flags().String("student", "", "student ID")
	complaintsFileCmd.Flags().String("hostel", "", "hostel ID")
	complaintsFileCmd.Flags().String("type", "", "complaint type (e.g. Plumbing)")
	complaintsFileCmd.Flags().String("description", "", "complaint details")
	complaintsListCmd.Flags().String("student", "", "student ID")
	complaintsCmd.AddCommand(complaintsFileCmd)
	complaintsCmd.AddCommand(complaintsListCmd)
	complaintsCmd.AddCommand(complaintsResolveCmd)
}

// --- leaves ---

var leavesCmd = &cobra.Command{
	Use:   "leaves",
	Short: "Manage leave requests",
}

var leavesRequestCmd = &cobra.Command{
	Use:   "request",
	Short: "Request leave for a student",
	RunE: func(cmd *cobra.Command, args []string) error {
		studentID, _ := cmd.Flags().GetString("student")
		hostelID, _ := cmd.Flags().GetString("hostel")
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		reason, _ := cmd.Flags().GetString("reason")
		if studentID == "" || from == "" || to == "" {
			return fmt.Errorf("--student, --from, and --to are required")
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.post(cmd.Context(), "/leaves", map[string]string{
			"student_id": studentID, "hostel_id": hostelID,
			"start_date": from, "end_date": to, "reason": reason,
		})
		if err != nil {
			return err
		}

		var created struct {
			ID string `json:"id"`
		}
		if err := decodeJSON(resp, &created); err != nil {
			return err
		}

		printSuccess("Leave requested %s to %s (%s)", from, to, created.ID)
		return nil
	},
}

var leavesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a student's leave requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		studentID, _ := cmd.Flags().GetString("student")
		if studentID == "" {
			return fmt.Errorf("--student is required")
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), "/leaves?student_id="+studentID)
		if err != nil {
			return err
		}

		var leaves []struct {
			ID        string `json:"id"`
			StartDate string `json:"start_date"`
			EndDate   string `json:"end_date"`
			Status    string `json:"status"`
		}
		if err := decodeJSON(resp, &leaves); err != nil {
			return err
		}

		if len(leaves) == 0 {
			fmt.Println("No leave requests found.")
			return nil
		}
		for _, l := range leaves {
			fmt.Printf("%s  %s to %s  %s\n", colorize(colorCyan, l.ID[:8]), l.StartDate, l.EndDate, l.Status)
		}
		return nil
	},
}

var leavesStatusCmd = &cobra.Command{
	Use:   "status <leave-id> <Pending|Approved|Rejected>",
	Short: "Set a leave request's status",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.post(cmd.Context(), "/leaves/"+args[0]+"/status", map[string]string{
			"status": args[1],
		})
		if err != nil {
			return err
		}

		var result map[string]string
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		printSuccess("Leave %s is now %s", args[0], args[1])
		return nil
	},
}

func init() {
	leavesRequestCmd.Flags().String("student", "", "student ID")
	leavesRequestCmd.Flags().String("hostel", "", "hostel ID")
	leavesRequestCmd.Flags().String("from", "", "start date (YYYY-MM-DD)")
	leavesRequestCmd.Flags().String("to", "", "end date (YYYY-MM-DD)")
	leavesRequestCmd.Flags().String("reason", "", "reason for leave")
	leavesListCmd.Flags().String("student", "", "student ID")
	leavesCmd.AddCommand(leavesRequestCmd)
	leavesCmd.AddCommand(leavesListCmd)
	leavesCmd.AddCommand(leavesStatusCmd)
}

// --- backup ---

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Download a full data backup as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), "/backup")
		if err != nil {
			return err
		}

		var backup any
		if err := decodeJSON(resp, &backup); err != nil {
			return err
		}

		var writer *os.File
		if output != "" {
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating output file: %w", err)
			}
			defer f.Close()
			writer = f
		} else {
			writer = os.Stdout
		}

		enc := json.NewEncoder(writer)
		enc.SetIndent("", "  ")
		if err := enc.Encode(backup); err != nil {
			return err
		}

		if output != "" {
			printSuccess("Backup written to %s", output)
		}
		return nil
	},
}

func init() {
	backupCmd.Flags().String("output", "", "output file path (default: stdout)")
}

// --- seed ---

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo data for a quick tour",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		printStep("Creating hostel...")
		resp, err := client.post(ctx, "/hostels", map[string]any{
			"id": "H101", "name": "Sunrise Hostel", "total_rooms": 120,
		})
		if err != nil {
			return err
		}
		var hostel map[string]any
		if err := decodeJSON(resp, &hostel); err != nil {
			return err
		}

		printStep("Registering students...")
		for _, s := range []map[string]any{
			{"id": "MASU202401123", "name": "Rahul", "hostel_id": "H101", "room": "101"},
			{"id": "MASU202401124", "name": "Amit", "hostel_id": "H101", "room": "101"},
			{"id": "MASU202401125", "name": "Priya", "hostel_id": "H101", "room": "102"},
		} {
			resp, err := client.post(ctx, "/students", s)
			if err != nil {
				return err
			}
			var student map[string]any
			if err := decodeJSON(resp, &student); err != nil {
				return err
			}
		}

		printStep("Assigning fees...")
		for _, f := range []map[string]any{
			{"student_id": "MASU202401123", "hostel_id": "H101", "amount": 5000, "due_date": "2026-09-15"},
			{"student_id": "MASU202401123", "hostel_id": "H101", "amount": 2500, "due_date": "2026-08-10"},
		} {
			resp, err := client.post(ctx, "/fees", f)
			if err != nil {
				return err
			}
			var fee map[string]any
			if err := decodeJSON(resp, &fee); err != nil {
				return err
			}
		}

		printStep("Setting mess menu...")
		resp, err = client.put(ctx, "/mess-menu/H101", map[string]string{
			"breakfast": "Poha, Tea", "lunch": "Rice, Dal, Sabzi", "dinner": "Roti, Paneer",
		})
		if err != nil {
			return err
		}
		var menu map[string]any
		if err := decodeJSON(resp, &menu); err != nil {
			return err
		}

		printStep("Posting notices...")
		for _, title := range []string{"Water supply maintenance", "Wifi upgrade this weekend", "Mess feedback survey"} {
			resp, err := client.post(ctx, "/notices", map[string]string{"hostel_id": "H101", "title": title})
			if err != nil {
				return err
			}
			var notice map[string]any
			if err := decodeJSON(resp, &notice); err != nil {
				return err
			}
		}

		printSuccess("Demo data loaded. Try: lumina ask --student MASU202401123 \"what are my pending fees\"")
		return nil
	},
}

// --- config ---

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or update configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		keys := config.ShowAll(cfg)
		for _, k := range keys {
			fmt.Printf("  %s = %s\n", colorize(colorBold, k.Key), k.Value)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		if err := config.SetKey(key, value); err != nil {
			return err
		}

		printSuccess("Set %s = %s", key, value)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
