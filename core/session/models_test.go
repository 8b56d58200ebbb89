package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Session_attendees(t *testing.T) {
	s := NewSession()
	seeded := len(s.Attendees) // one slot per seeded role
	require.NotZero(t, seeded)

	a1 := s.AddAttendee()
	a2 := s.AddAttendee()
	require.Len(t, s.Attendees, seeded+2)
	assert.NotEqual(t, a1.ID, a2.ID)

	// update preserves ID and position
	ok := s.UpdateAttendee(a1.ID, Attendee{ID: "ignored", Role: "Special Education Teacher", Name: "Ms. Jones", Attending: AttendingYes})
	require.True(t, ok)
	assert.Equal(t, a1.ID, s.Attendees[seeded].ID)
	assert.Equal(t, "Ms. Jones", s.Attendees[seeded].Name)
	assert.Equal(t, a2.ID, s.Attendees[seeded+1].ID)

	assert.False(t, s.UpdateAttendee("lol", Attendee{Name: "nobody"}))

	require.True(t, s.RemoveAttendee(a1.ID))
	require.Len(t, s.Attendees, seeded+1)
	assert.Equal(t, a2.ID, s.Attendees[seeded].ID)
	assert.False(t, s.RemoveAttendee(a1.ID))
}

func Test_Session_documents(t *testing.T) {
	s := NewSession()
	require.NotEmpty(t, s.Documents)

	id := s.Documents[0].ID
	require.True(t, s.SetDocumentChecked(id, true))
	assert.True(t, s.Documents[0].Checked)
	require.True(t, s.SetDocumentChecked(id, false))
	assert.False(t, s.Documents[0].Checked)
	assert.False(t, s.SetDocumentChecked("lol", true))
}

func Test_Session_decisions(t *testing.T) {
	s := NewSession()
	seeded := len(s.Decisions) // one row per seeded topic
	require.NotZero(t, seeded)

	d := s.AddDecision()
	require.Len(t, s.Decisions, seeded+1)

	ok := s.UpdateDecision(d.ID, Decision{Topic: "Reading Support", Discussed: "Extra reading time", AgreedOn: "30 min/day", ByWhen: "2025-04-01"})
	require.True(t, ok)
	assert.Equal(t, d.ID, s.Decisions[seeded].ID)
	assert.Equal(t, "Reading Support", s.Decisions[seeded].Topic)

	require.True(t, s.RemoveDecision(d.ID))
	require.Len(t, s.Decisions, seeded)
}

func Test_Session_followUp(t *testing.T) {
	s := NewSession()
	require.NotEmpty(t, s.ImmediateItems)
	require.NotEmpty(t, s.WeekItems)

	require.True(t, s.SetImmediateItemChecked(s.ImmediateItems[0].ID, true))
	assert.True(t, s.ImmediateItems[0].Checked)

	require.True(t, s.SetWeekItem(s.WeekItems[0].ID, true, "2025-03-15"))
	assert.True(t, s.WeekItems[0].Checked)
	assert.Equal(t, "2025-03-15", s.WeekItems[0].Date)

	l := s.AddMonthlyLog("March", "Met with teacher")
	require.Len(t, s.MonthlyLogs, 1)
	require.True(t, s.UpdateMonthlyLog(l.ID, MonthlyLog{Month: "March", Notes: "Met with teacher; going well"}))
	assert.Equal(t, l.ID, s.MonthlyLogs[0].ID)
	require.True(t, s.RemoveMonthlyLog(l.ID))
	assert.Empty(t, s.MonthlyLogs)
}

func Test_Session_Clone(t *testing.T) {
	s := NewSession()
	s.StudentInfo.Name = "Alex"
	s.AddAttendee()
	s.AddMonthlyLog("March", "notes")

	clone := s.Clone()
	clone.StudentInfo.Name = "Bintou"
	clone.Attendees[0].Name = "changed"
	clone.Documents[0].Checked = true
	clone.MonthlyLogs[0].Notes = "changed"

	assert.Equal(t, "Alex", s.StudentInfo.Name)
	assert.Empty(t, s.Attendees[0].Name)
	assert.False(t, s.Documents[0].Checked)
	assert.Equal(t, "notes", s.MonthlyLogs[0].Notes)
}

func Test_Session_StudentName(t *testing.T) {
	s := NewSession()
	assert.Empty(t, s.StudentName())
	s.StudentInfo.Name = "  Alex  "
	assert.Equal(t, "Alex", s.StudentName())
}
