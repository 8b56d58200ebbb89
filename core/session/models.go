// Package session holds the meeting-preparation aggregate: everything a
// parent fills in before, during and after an IEP meeting. The aggregate is
// mutated only through whole-field replacement and keyed list helpers; it is
// persisted and exported wholesale.
package session

import (
	"github.com/google/uuid"

	"github.com/tayariapp/tayari/core"
)

// Attendance enum values; empty means undecided.
const (
	AttendingYes     = "yes"
	AttendingNo      = "no"
	AttendingMaybe   = "maybe"
	AttendingVirtual = "virtual"
)

type (
	StudentInfo struct {
		Name            string `json:"name"`
		Grade           string `json:"grade"`
		School          string `json:"school"`
		MeetingDate     string `json:"meetingDate" validate:"omitempty,datetime=2006-01-02"`
		MeetingType     string `json:"meetingType"`
		PrimaryConcerns string `json:"primaryConcerns"`
	}

	ContactInfo struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
		Email string `json:"email" validate:"omitempty,email"`
	}

	Attendee struct {
		ID          string `json:"id"`
		Role        string `json:"role"`
		Name        string `json:"name"`
		Attending   string `json:"attending" validate:"attending"`
		ContactInfo string `json:"contactInfo"`
	}

	DocumentItem struct {
		ID      string `json:"id"`
		Label   string `json:"label"`
		Checked bool   `json:"checked"`
	}

	Reflection struct {
		TopConcerns  string `json:"topConcerns"`
		Strengths    string `json:"strengths"`
		Challenges   string `json:"challenges"`
		HomeSupports string `json:"homeSupports"`
	}

	QuestionCategory struct {
		ID          string   `json:"id"`
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Questions   []string `json:"questions"`
		Notes       string   `json:"notes"`
	}

	Decision struct {
		ID          string `json:"id"`
		Topic       string `json:"topic"`
		Discussed   string `json:"discussed"`
		AgreedOn    string `json:"agreedOn"`
		Responsible string `json:"responsible"`
		ByWhen      string `json:"byWhen" validate:"omitempty,datetime=2006-01-02"`
	}

	ChecklistItem struct {
		ID      string `json:"id"`
		Label   string `json:"label"`
		Checked bool   `json:"checked"`
		HasDate bool   `json:"hasDate,omitempty"`
		Date    string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	}

	MonthlyLog struct {
		ID    string `json:"id"`
		Month string `json:"month"`
		Notes string `json:"notes"`
	}

	// BeforeDiscussion captures the child's perspective ahead of the meeting.
	BeforeDiscussion struct {
		Feelings       string `json:"feelings"`
		EasyHard       string `json:"easyHard"`
		TeachersToKnow string `json:"teachersToKnow"`
		GettingHelp    string `json:"gettingHelp"`
	}

	// AfterDiscussion captures the family debrief once the meeting is over.
	AfterDiscussion struct {
		WhatTalkedAbout string `json:"whatTalkedAbout"`
		SchoolHelp      string `json:"schoolHelp"`
		HomeStrategies  string `json:"homeStrategies"`
		ChildFeelings   string `json:"childFeelings"`
	}

	// Session is the complete record of one meeting-preparation cycle.
	Session struct {
		StudentInfo        StudentInfo        `json:"studentInfo"`
		ContactInfo        ContactInfo        `json:"contactInfo"`
		Attendees          []Attendee         `json:"attendees" validate:"dive"`
		Documents          []DocumentItem     `json:"documents" validate:"dive"`
		Reflection         Reflection         `json:"reflection"`
		QuestionCategories []QuestionCategory `json:"questionCategories" validate:"dive"`
		Decisions          []Decision         `json:"decisions" validate:"dive"`
		ImmediateItems     []ChecklistItem    `json:"immediateItems" validate:"dive"`
		WeekItems          []ChecklistItem    `json:"weekItems" validate:"dive"`
		MonthlyLogs        []MonthlyLog       `json:"monthlyLogs" validate:"dive"`
		BeforeMeeting      BeforeDiscussion   `json:"beforeMeeting"`
		AfterMeeting       AfterDiscussion    `json:"afterMeeting"`
	}
)

// NewID returns a fresh list-item id.
func NewID() string {
	return uuid.New().String()
}

// StudentName returns the trimmed student name; used for submission rows and
// export filenames.
func (s *Session) StudentName() string {
	return core.CleanString(s.StudentInfo.Name)
}

// Whole-field replacement setters.

func (s *Session) SetStudentInfo(info StudentInfo)     { s.StudentInfo = info }
func (s *Session) SetContactInfo(info ContactInfo)     { s.ContactInfo = info }
func (s *Session) SetReflection(r Reflection)          { s.Reflection = r }
func (s *Session) SetBeforeMeeting(d BeforeDiscussion) { s.BeforeMeeting = d }
func (s *Session) SetAfterMeeting(d AfterDiscussion)   { s.AfterMeeting = d }

// Attendees

// AddAttendee appends a blank attendee row and returns it.
func (s *Session) AddAttendee() Attendee {
	a := Attendee{ID: NewID()}
	s.Attendees = append(s.Attendees, a)
	return a
}

// UpdateAttendee replaces the fields of the attendee with the given id,
// preserving its id and position. Returns false when no row matches.
func (s *Session) UpdateAttendee(id string, a Attendee) bool {
	for i := range s.Attendees {
		if s.Attendees[i].ID == id {
			a.ID = id
			s.Attendees[i] = a
			return true
		}
	}
	return false
}

// RemoveAttendee removes the attendee with the given id.
func (s *Session) RemoveAttendee(id string) bool {
	for i := range s.Attendees {
		if s.Attendees[i].ID == id {
			s.Attendees = append(s.Attendees[:i], s.Attendees[i+1:]...)
			return true
		}
	}
	return false
}

// Documents

// SetDocumentChecked flips a document checklist item in place.
func (s *Session) SetDocumentChecked(id string, checked bool) bool {
	for i := range s.Documents {
		if s.Documents[i].ID == id {
			s.Documents[i].Checked = checked
			return true
		}
	}
	return false
}

// Question bank; only the notes are mutable.

func (s *Session) SetCategoryNotes(id, notes string) bool {
	for i := range s.QuestionCategories {
		if s.QuestionCategories[i].ID == id {
			s.QuestionCategories[i].Notes = notes
			return true
		}
	}
	return false
}

// Decisions

func (s *Session) AddDecision() Decision {
	d := Decision{ID: NewID()}
	s.Decisions = append(s.Decisions, d)
	return d
}

func (s *Session) UpdateDecision(id string, d Decision) bool {
	for i := range s.Decisions {
		if s.Decisions[i].ID == id {
			d.ID = id
			s.Decisions[i] = d
			return true
		}
	}
	return false
}

func (s *Session) RemoveDecision(id string) bool {
	for i := range s.Decisions {
		if s.Decisions[i].ID == id {
			s.Decisions = append(s.Decisions[:i], s.Decisions[i+1:]...)
			return true
		}
	}
	return false
}

// Follow-up checklists

func (s *Session) SetImmediateItemChecked(id string, checked bool) bool {
	return setChecklistItem(s.ImmediateItems, id, checked, nil)
}

// SetWeekItem updates the checked state and, for dated items, the date.
func (s *Session) SetWeekItem(id string, checked bool, date string) bool {
	return setChecklistItem(s.WeekItems, id, checked, &date)
}

func setChecklistItem(items []ChecklistItem, id string, checked bool, date *string) bool {
	for i := range items {
		if items[i].ID == id {
			items[i].Checked = checked
			if date != nil && items[i].HasDate {
				items[i].Date = *date
			}
			return true
		}
	}
	return false
}

// Monthly logs

func (s *Session) AddMonthlyLog(month, notes string) MonthlyLog {
	l := MonthlyLog{ID: NewID(), Month: month, Notes: notes}
	s.MonthlyLogs = append(s.MonthlyLogs, l)
	return l
}

func (s *Session) UpdateMonthlyLog(id string, l MonthlyLog) bool {
	for i := range s.MonthlyLogs {
		if s.MonthlyLogs[i].ID == id {
			l.ID = id
			s.MonthlyLogs[i] = l
			return true
		}
	}
	return false
}

func (s *Session) RemoveMonthlyLog(id string) bool {
	for i := range s.MonthlyLogs {
		if s.MonthlyLogs[i].ID == id {
			s.MonthlyLogs = append(s.MonthlyLogs[:i], s.MonthlyLogs[i+1:]...)
			return true
		}
	}
	return false
}

// Clone returns a deep copy; the in-memory store and the seed rely on it to
// keep callers from aliasing internal slices.
func (s Session) Clone() Session {
	c := s
	c.Attendees = append([]Attendee(nil), s.Attendees...)
	c.Documents = append([]DocumentItem(nil), s.Documents...)
	c.Decisions = append([]Decision(nil), s.Decisions...)
	c.ImmediateItems = append([]ChecklistItem(nil), s.ImmediateItems...)
	c.WeekItems = append([]ChecklistItem(nil), s.WeekItems...)
	c.MonthlyLogs = append([]MonthlyLog(nil), s.MonthlyLogs...)
	c.QuestionCategories = append([]QuestionCategory(nil), s.QuestionCategories...)
	for i := range c.QuestionCategories {
		c.QuestionCategories[i].Questions = append([]string(nil), c.QuestionCategories[i].Questions...)
	}
	return c
}
