package export

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/tayariapp/tayari/core/session"
)

var exportedAt = time.Date(2025, time.March, 9, 10, 30, 0, 0, time.UTC)

func filledSession() session.Session {
	s := session.NewSession()
	s.StudentInfo = session.StudentInfo{
		Name:            "Alex",
		Grade:           "3rd",
		School:          "Riverside Elementary",
		MeetingDate:     "2025-03-01",
		MeetingType:     "Annual Review",
		PrimaryConcerns: "Reading comprehension",
	}
	s.ContactInfo = session.ContactInfo{Name: "Mom", Phone: "555-0123", Email: "mom@test.cd"}
	s.Attendees[0].Name = "Mom"
	s.Attendees[0].Attending = session.AttendingYes
	s.Documents[0].Checked = true
	s.Reflection.TopConcerns = "Reading"
	s.QuestionCategories[0].Notes = "Ask about progress monitoring"
	s.Decisions[0].Discussed = "Extra reading time"
	s.Decisions[0].AgreedOn = "30 min/day"
	return s
}

func Test_HTML(t *testing.T) {
	out, err := HTML(filledSession(), exportedAt)
	if err != nil {
		t.Fatalf("HTML(): %v", err)
	}
	html := string(out)

	for _, want := range []string{
		"IEP Meeting Preparation - Alex",
		"Exported on Sunday, March 9, 2025",
		"March 1, 2025", // meeting date in long form
		"Riverside Elementary",
		"Parent/Guardian", // attendee with a name makes the row
		"Ask about progress monitoring",
		"Extra reading time",
		"✓", // checked document glyph
		"○", // unchecked document glyph
	} {
		if !strings.Contains(html, want) {
			t.Errorf("HTML() output missing %q", want)
		}
	}

	// attendee rows with neither name nor attendance are skipped
	if strings.Contains(html, "District Representative") {
		t.Error("HTML() rendered an untouched attendee row")
	}
}

func Test_HTML_emptySession(t *testing.T) {
	out, err := HTML(session.NewSession(), exportedAt)
	if err != nil {
		t.Fatalf("HTML(): %v", err)
	}
	html := string(out)

	if !strings.Contains(html, "Not provided") {
		t.Error("HTML() missing empty-field placeholder")
	}
	if !strings.Contains(html, "IEP Meeting Preparation - Student") {
		t.Error("HTML() missing student fallback title")
	}
	if !strings.Contains(html, "No notes recorded.") {
		t.Error("HTML() missing empty-notes fallback")
	}

	// seeded decision rows carry a topic, so all of them render
	for _, topic := range []string{
		"Reading Support", "Math Support", "Behavior Plan",
		"Accommodations", "Progress Updates", "Other Parent Concerns",
	} {
		if !strings.Contains(html, topic) {
			t.Errorf("HTML() output missing seeded decision topic %q", topic)
		}
	}
	if strings.Contains(html, "No decisions recorded.") {
		t.Error("HTML() rendered the empty-decisions fallback despite seeded topics")
	}
}

func Test_HTML_noDecisions(t *testing.T) {
	s := session.NewSession()
	for i := range s.Decisions {
		s.Decisions[i].Topic = ""
	}

	out, err := HTML(s, exportedAt)
	if err != nil {
		t.Fatalf("HTML(): %v", err)
	}
	if !strings.Contains(string(out), "No decisions recorded.") {
		t.Error("HTML() missing empty-decisions fallback")
	}
}

func Test_JSON_roundTrip(t *testing.T) {
	s := filledSession()
	out, err := JSON(s)
	if err != nil {
		t.Fatalf("JSON(): %v", err)
	}

	var parsed session.Session
	if err := json.Unmarshal(out, &parsed); err != nil {
		t.Fatalf("json.Unmarshal(): %v", err)
	}
	if !reflect.DeepEqual(s, parsed) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", parsed, s)
	}
}

func Test_Filename(t *testing.T) {
	tests := []struct {
		name    string
		student string
		format  string
		want    string
	}{
		{name: "simple", student: "Alex", format: FormatHTML, want: "IEP-Meeting-Alex-2025-03-09.html"},
		{name: "spaces become dashes", student: "Alex B Smith", format: FormatJSON, want: "IEP-Meeting-Alex-B-Smith-2025-03-09.json"},
		{name: "empty name falls back", student: "", format: FormatHTML, want: "IEP-Meeting-export-2025-03-09.html"},
		{name: "whitespace-only name falls back", student: "   ", format: FormatHTML, want: "IEP-Meeting-export-2025-03-09.html"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s session.Session
			s.StudentInfo.Name = tt.student
			if got := Filename(s, tt.format, exportedAt); got != tt.want {
				t.Errorf("Filename() = %q; want %q", got, tt.want)
			}
		})
	}
}

func Test_FormatDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "2025-03-01", want: "March 1, 2025"},
		{in: "", want: ""},
		{in: "lol", want: ""},
		{in: "03/01/2025", want: ""},
	}
	for _, tt := range tests {
		if got := FormatDate(tt.in); got != tt.want {
			t.Errorf("FormatDate(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}
