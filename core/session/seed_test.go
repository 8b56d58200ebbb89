package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_DefaultSeed(t *testing.T) {
	sd := DefaultSeed()

	assert.Len(t, sd.Documents, 8)
	assert.Len(t, sd.AttendeeRoles, 11)
	assert.Len(t, sd.DecisionTopics, 6)
	assert.Len(t, sd.QuestionCategories, 9)
	assert.Len(t, sd.ImmediateItems, 3)
	assert.Len(t, sd.WeekItems, 3)

	assert.Equal(t, "Last IEP and any amendments", sd.Documents[0].Label)
	assert.Equal(t, "Parent/Guardian", sd.AttendeeRoles[0])
	assert.Equal(t, "Reading Support", sd.DecisionTopics[0])

	for _, c := range sd.QuestionCategories {
		assert.NotEmpty(t, c.Title, "category %s has no title", c.ID)
		assert.NotEmpty(t, c.Questions, "category %s has no questions", c.ID)
	}
}

func Test_NewSession(t *testing.T) {
	s := NewSession()
	sd := DefaultSeed()

	require.Len(t, s.Documents, len(sd.Documents))
	require.Len(t, s.Attendees, len(sd.AttendeeRoles))
	require.Len(t, s.Decisions, len(sd.DecisionTopics))
	require.Len(t, s.QuestionCategories, len(sd.QuestionCategories))
	require.Len(t, s.ImmediateItems, len(sd.ImmediateItems))
	require.Len(t, s.WeekItems, len(sd.WeekItems))
	assert.Empty(t, s.MonthlyLogs)

	for i, a := range s.Attendees {
		assert.Equal(t, sd.AttendeeRoles[i], a.Role)
		assert.Empty(t, a.Name)
		assert.Empty(t, a.Attending)
	}
	for _, d := range s.Documents {
		assert.False(t, d.Checked)
	}

	// dated week items carry the flag through
	var hasDated bool
	for _, it := range s.WeekItems {
		if it.HasDate {
			hasDated = true
		}
	}
	assert.True(t, hasDated)

	// each call returns independent slices
	s2 := NewSession()
	s.Documents[0].Checked = true
	assert.False(t, s2.Documents[0].Checked)

	s.QuestionCategories[0].Questions[0] = "changed"
	s3 := NewSession()
	assert.NotEqual(t, "changed", s3.QuestionCategories[0].Questions[0])
}
