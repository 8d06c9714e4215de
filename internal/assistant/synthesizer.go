package assistant

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/lumina-hms/lumina/internal/intent"
)

// Rand selects template variants. Implemented by *math/rand.Rand; tests
// inject a seeded source for deterministic output.
type Rand interface {
	Intn(n int) int
}

// Clock abstracts wall-clock time for testability.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// systemRand delegates to the shared, lock-protected top-level generator so a
// single Synthesizer is safe for concurrent calls.
type systemRand struct{}

func (systemRand) Intn(n int) int { return rand.Intn(n) }

// Synthesizer renders replies for classified utterances. It is pure given its
// inputs apart from the injected Rand (template selection) and Clock (the
// time intent); it never mutates the snapshot or history and never fails.
type Synthesizer struct {
	rand  Rand
	clock Clock

	// sortFeesByDueDate switches the "next payment" pick from insertion
	// order to earliest due date. Off by default: the historical behavior
	// reports the first-assigned pending fee, not the most urgent one.
	sortFeesByDueDate bool
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithRand injects the random source used for template selection.
func WithRand(r Rand) Option {
	return func(s *Synthesizer) { s.rand = r }
}

// WithClock injects the wall clock used by the time intent.
func WithClock(c Clock) Option {
	return func(s *Synthesizer) { s.clock = c }
}

// WithFeeSorting enables due-date ordering of pending fees. Due dates are
// compared lexically and expected in ISO form (YYYY-MM-DD).
func WithFeeSorting(enabled bool) Option {
	return func(s *Synthesizer) { s.sortFeesByDueDate = enabled }
}

// NewSynthesizer creates a Synthesizer with the system RNG and real clock.
func NewSynthesizer(opts ...Option) *Synthesizer {
	s := &Synthesizer{
		rand:  systemRand{},
		clock: realClock{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Synthesize produces the reply for one utterance. Exactly one branch runs
// per tag; an out-of-range tag falls through to the general reply rather than
// failing.
func (s *Synthesizer) Synthesize(tag intent.Tag, utterance string, user UserContext, snap Snapshot, history []Message) string {
	q := intent.Normalize(utterance)

	switch tag {
	case intent.Greeting:
		return s.greeting(user)
	case intent.Farewell:
		return s.farewell(snap)
	case intent.Help:
		return helpReply
	case intent.Fees:
		return s.fees(snap)
	case intent.Mess:
		return s.mess(snap)
	case intent.Notice:
		return s.notice(snap)
	case intent.Leave:
		return s.leave(snap)
	case intent.Complaint:
		return s.complaint(q, snap)
	case intent.Room:
		return s.room(user, snap)
	case intent.Health:
		return healthReply
	case intent.Academic:
		return academicReply
	case intent.Social:
		return socialReply
	case intent.Technical:
		return technicalReply
	case intent.Personal:
		return s.personal(q)
	case intent.Time:
		return s.timeNow()
	case intent.Weather:
		return weatherReply
	default:
		return s.general(q)
	}
}

func (s *Synthesizer) greeting(user UserContext) string {
	greetings := []string{
		fmt.Sprintf("Hello %s! 😊 I'm Lumina AI, your personal hostel assistant. How can I help you today?", user.DisplayName),
		fmt.Sprintf("Hey %s! 👋 Great to see you! What can I assist you with?", user.DisplayName),
		"Hi there! I'm here to make your hostel life easier. What would you like to know?",
		"Hello! I'm Lumina AI, ready to help with anything from fees to food to fun! What's on your mind?",
	}
	return greetings[s.rand.Intn(len(greetings))]
}

func (s *Synthesizer) farewell(snap Snapshot) string {
	farewells := []string{
		"You're welcome! Feel free to ask me anything anytime. Have a great day! 😊",
		fmt.Sprintf("Happy to help! Take care and enjoy your day at %s! 👋", snap.HostelName("the hostel")),
		"Glad I could assist! Don't hesitate to reach out if you need anything else. Bye! 🌟",
		"Anytime! Wishing you a wonderful day ahead! 🎉",
	}
	return farewells[s.rand.Intn(len(farewells))]
}

func (s *Synthesizer) fees(snap Snapshot) string {
	if len(snap.Fees) == 0 {
		return "You don't have any fee records yet. Once your fees are assigned, I'll help you track and manage them! 💰"
	}

	pending := snap.PendingFees()
	if len(pending) == 0 {
		return "🎉 Excellent news! All your fees are paid up. You're all clear!\n\nWould you like to see your payment history?"
	}

	if s.sortFeesByDueDate {
		sort.SliceStable(pending, func(i, j int) bool {
			return pending[i].DueDate < pending[j].DueDate
		})
	}
	next := pending[0]

	var b strings.Builder
	b.WriteString("💰 **Fee Status Update**\n\n")
	fmt.Fprintf(&b, "You have **%d pending fee(s)**:\n\n", len(pending))
	b.WriteString("📌 Next Payment:\n")
	fmt.Fprintf(&b, "   Amount: ₹%d\n", next.Amount)
	fmt.Fprintf(&b, "   Due Date: %s\n\n", next.DueDate)
	b.WriteString("💡 **Tip**: You can pay your fees in the 'Fees' section. Click on the fee to see payment options!\n\n")
	if len(pending) > 1 {
		fmt.Fprintf(&b, "You have %d more pending fee(s). Stay on top of them to avoid late fees!", len(pending)-1)
	}
	return b.String()
}

func (s *Synthesizer) mess(snap Snapshot) string {
	menu := snap.MessMenu
	if menu == nil {
		return "😕 The mess menu hasn't been updated yet for today. \n\nUsually, the rector updates it in the morning. You can check back later or visit the 'Mess' section for updates!\n\nWould you like me to tell you about mess timings or how to submit a review?"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🍽️ **Today's Mess Menu at %s**\n\n", snap.HostelName("your hostel"))
	fmt.Fprintf(&b, "☀️ **Breakfast**: %s\n", menu.Breakfast)
	fmt.Fprintf(&b, "🌞 **Lunch**: %s\n", menu.Lunch)
	fmt.Fprintf(&b, "🌙 **Dinner**: %s\n\n", menu.Dinner)
	fmt.Fprintf(&b, "Last updated: %s\n\n", menu.LastUpdated)
	b.WriteString("💭 Don't forget to share your feedback in the Mess section! Your reviews help improve the food quality.")
	return b.String()
}

func (s *Synthesizer) notice(snap Snapshot) string {
	if len(snap.Notices) == 0 {
		return "📢 No recent notices for your hostel right now. You're all caught up!\n\nI'll let you know when there are new announcements. You can also check the 'Notices' section anytime."
	}

	latest := snap.Notices[len(snap.Notices)-1]
	var b strings.Builder
	b.WriteString("📢 **Latest Notice**\n\n")
	fmt.Fprintf(&b, "**%s**\n", latest.Title)
	fmt.Fprintf(&b, "%s\n\n", latest.Content)
	fmt.Fprintf(&b, "Posted: %s\n\n", latest.Date)
	if len(snap.Notices) > 1 {
		fmt.Fprintf(&b, "📋 You have %d recent notices. Check the 'Notices' section to see all of them!", len(snap.Notices))
	}
	return b.String()
}

func (s *Synthesizer) leave(snap Snapshot) string {
	var pending, approved int
	for _, l := range snap.Leaves {
		switch l.Status {
		case StatusPending:
			pending++
		case StatusApproved:
			approved++
		}
	}

	var b strings.Builder
	b.WriteString("🚪 **Gate Pass & Leave Information**\n\n")
	if pending > 0 {
		fmt.Fprintf(&b, "⏳ You have %d pending leave request(s) waiting for rector approval.\n\n", pending)
	}
	if approved > 0 {
		fmt.Fprintf(&b, "✅ You have %d approved leave(s).\n\n", approved)
	}
	b.WriteString("📝 **How to apply for leave:**\n")
	b.WriteString("1. Go to 'Gate Pass' section\n")
	b.WriteString("2. Fill in the dates and reason\n")
	b.WriteString("3. Submit for rector approval\n")
	b.WriteString("4. You'll be notified once it's reviewed\n\n")
	b.WriteString("💡 **Tip**: Apply at least 2-3 days in advance for better chances of approval!")
	return b.String()
}

func (s *Synthesizer) complaint(q string, snap Snapshot) string {
	if strings.Contains(q, "how") || strings.Contains(q, "file") || strings.Contains(q, "submit") {
		return "🔧 **How to File a Complaint**\n\n" +
			"1. Go to the 'Complaints' section\n" +
			"2. Select complaint type (Maintenance, Food, Cleanliness, etc.)\n" +
			"3. Describe the issue in detail\n" +
			"4. Submit - Your rector will be notified\n" +
			"5. Track status in the same section\n\n" +
			"⚡ **For emergencies** (electrical, plumbing), mark it as urgent!\n\n" +
			"Your complaints are taken seriously and usually resolved within 24-48 hours."
	}

	if len(snap.Complaints) == 0 {
		return "You haven't filed any complaints yet. If you're facing any issues with your room, mess, or facilities, don't hesitate to report them in the 'Complaints' section!\n\nI can guide you through the process if you'd like. 😊"
	}

	var pending int
	for _, c := range snap.Complaints {
		if c.Status == StatusPending {
			pending++
		}
	}

	var b strings.Builder
	b.WriteString("🔧 **Your Complaints Status**\n\n")
	fmt.Fprintf(&b, "Total complaints: %d\n", len(snap.Complaints))
	if pending > 0 {
		fmt.Fprintf(&b, "⏳ Pending: %d\n\n", pending)
		b.WriteString("Your pending complaints are being reviewed. The rector typically responds within 24 hours.")
	} else {
		b.WriteString("✅ All your complaints have been addressed!\n\n")
		b.WriteString("If you have any new issues, feel free to file another complaint.")
	}
	return b.String()
}

func (s *Synthesizer) room(user UserContext, snap Snapshot) string {
	var b strings.Builder
	b.WriteString("🏠 **Your Room Information**\n\n")
	fmt.Fprintf(&b, "Room Number: **%s**\n", user.Room)
	fmt.Fprintf(&b, "Hostel: **%s**\n", snap.HostelName("N/A"))
	fmt.Fprintf(&b, "Your UID: **%s**\n\n", user.ID)
	if len(snap.HostelMates) > 0 {
		b.WriteString("👥 **Roommates:**\n")
		for _, m := range snap.HostelMates {
			fmt.Fprintf(&b, "   • %s (%s)\n", m.Name, m.ID)
		}
	} else {
		b.WriteString("You currently don't have any roommates listed. You might be in a single room or your roommate info hasn't been updated yet.")
	}
	return b.String()
}

func (s *Synthesizer) personal(q string) string {
	if strings.Contains(q, "how are you") {
		return "I'm doing great, thank you for asking! 😊 I'm always here and ready to help you.\n\nMore importantly, how are YOU doing? Is there anything I can help you with today?"
	}
	if strings.Contains(q, "who are you") || strings.Contains(q, "what are you") {
		return "I'm **Lumina AI**, your intelligent hostel assistant! 🤖✨\n\n" +
			"I'm here to make your hostel life easier by helping you with:\n" +
			"• Managing fees and payments\n" +
			"• Checking mess menus and notices\n" +
			"• Filing complaints and leave applications\n" +
			"• Providing study tips and emotional support\n" +
			"• Answering questions about hostel life\n\n" +
			"Think of me as your 24/7 hostel buddy who's always ready to help! 😊"
	}
	return "I'm Lumina AI, your personal hostel assistant! I'm here to help make your hostel experience better. What can I do for you today?"
}

func (s *Synthesizer) timeNow() string {
	now := s.clock.Now()
	timeStr := now.Format("03:04 PM")
	dateStr := now.Format("Monday, 2 January 2006")
	return fmt.Sprintf("🕐 **Current Time**: %s\n📅 **Date**: %s\n\nIs there anything else you'd like to know?", timeStr, dateStr)
}

func (s *Synthesizer) general(q string) string {
	if strings.Contains(q, "thank") {
		return "You're very welcome! 😊 I'm always here if you need anything else. Have a great day!"
	}
	if strings.Contains(q, "joke") {
		jokes := []string{
			"Why did the student bring a ladder to the hostel? Because they wanted to go to high school! 😄",
			"What's a hostel student's favorite type of music? Anything with good \"dorm-beats\"! 🎵",
			"Why don't hostel students ever get lost? Because they always find their way back to the mess! 🍽️😂",
		}
		return jokes[s.rand.Intn(len(jokes))]
	}
	return generalReply
}
