// Package intent classifies user utterances into a fixed taxonomy with an
// ordered, first-match-wins pattern table. Classification is a pure function
// of the trimmed, lowercased utterance text.
package intent

import (
	"regexp"
	"strings"
)

// Tag identifies the purpose of an utterance.
type Tag int

const (
	General Tag = iota // fallback when no pattern matches
	Greeting
	Farewell
	Help
	Fees
	Mess
	Notice
	Leave
	Complaint
	Room
	Health
	Academic
	Social
	Technical
	Personal
	Time
	Weather
)

var tagNames = map[Tag]string{
	General:   "general",
	Greeting:  "greeting",
	Farewell:  "farewell",
	Help:      "help",
	Fees:      "fees",
	Mess:      "mess",
	Notice:    "notice",
	Leave:     "leave",
	Complaint: "complaint",
	Room:      "room",
	Health:    "health",
	Academic:  "academic",
	Social:    "social",
	Technical: "technical",
	Personal:  "personal",
	Time:      "time",
	Weather:   "weather",
}

func (t Tag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return "general"
}

// rule pairs a tag with its trigger pattern. Table order is load-bearing:
// the scan returns on the first match, so earlier tags shadow later ones on
// overlapping keywords ("hi, my fee is due" is a greeting, not fees).
type rule struct {
	tag     Tag
	pattern *regexp.Regexp
}

// Greeting and farewell only fire at the start of the utterance; every other
// pattern matches anywhere in the text. "thanks for the fee reminder" is a
// farewell, "my fee is due, thanks" is fees.
var rules = []rule{
	{Greeting, regexp.MustCompile(`^(hi|hello|hey|good morning|good evening|good afternoon|sup|yo)`)},
	{Farewell, regexp.MustCompile(`^(bye|goodbye|see you|thanks|thank you|ok|okay)`)},
	{Help, regexp.MustCompile(`help|what can you do|assist|support|guide`)},
	{Fees, regexp.MustCompile(`fee|payment|pay|due|pending|amount|money|rupee|₹`)},
	{Mess, regexp.MustCompile(`mess|food|menu|breakfast|lunch|dinner|meal|eat`)},
	{Notice, regexp.MustCompile(`notice|announcement|news|update|inform`)},
	{Leave, regexp.MustCompile(`leave|gate pass|permission|go home|vacation|holiday`)},
	{Complaint, regexp.MustCompile(`complaint|issue|problem|broken|not working|repair|maintenance`)},
	{Room, regexp.MustCompile(`room|roommate|hostel mate|who lives|accommodation`)},
	{Health, regexp.MustCompile(`health|sick|ill|doctor|medical|emergency|hospital|medicine`)},
	{Academic, regexp.MustCompile(`study|exam|test|assignment|homework|grade|marks|college|class`)},
	{Social, regexp.MustCompile(`friend|lonely|bored|activity|event|fun|party`)},
	{Technical, regexp.MustCompile(`app|how to|tutorial|use|feature|button|click`)},
	{Personal, regexp.MustCompile(`how are you|who are you|your name|what are you`)},
	{Time, regexp.MustCompile(`time|date|day|today|tomorrow|when`)},
	{Weather, regexp.MustCompile(`weather|rain|hot|cold|temperature`)},
}

// Normalize returns the canonical form of an utterance used for matching.
func Normalize(utterance string) string {
	return strings.ToLower(strings.TrimSpace(utterance))
}

// Classify returns the tag of the first matching rule, or General when
// nothing matches. It always returns exactly one tag.
func Classify(utterance string) Tag {
	q := Normalize(utterance)
	for _, r := range rules {
		if r.pattern.MatchString(q) {
			return r.tag
		}
	}
	return General
}
