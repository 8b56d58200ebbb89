package sqlxrepos

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/tayariapp/tayari/core/session"
)

type submissionRepository struct {
	db *sqlx.DB
}

var _ session.SubmissionRepository = (*submissionRepository)(nil)

func NewSubmissionRepository(db *sqlx.DB) *submissionRepository {
	return &submissionRepository{db: db}
}

type submissionRow struct {
	ID                string      `db:"id"`
	UserID            string      `db:"user_id"`
	StudentName       null.String `db:"student_name"`
	StudentInfo       null.JSON   `db:"student_info"`
	ContactInfo       null.JSON   `db:"contact_info"`
	Attendees         null.JSON   `db:"attendees"`
	PreMeetingPrep    null.JSON   `db:"pre_meeting_prep"`
	QuestionNotes     null.JSON   `db:"question_notes"`
	Decisions         null.JSON   `db:"decisions"`
	FollowUp          null.JSON   `db:"follow_up"`
	FamilyDiscussions null.JSON   `db:"family_discussions"`
	CreatedAt         time.Time   `db:"created_at"`
	UpdatedAt         time.Time   `db:"updated_at"`
}

// preMeetingPrep, followUp and familyDiscussions group related form pages
// into a single column each, mirroring how the form presents them.
type preMeetingPrep struct {
	Documents  []session.DocumentItem `json:"documents"`
	Reflection session.Reflection     `json:"reflection"`
}

type followUp struct {
	ImmediateItems []session.ChecklistItem `json:"immediateItems"`
	WeekItems      []session.ChecklistItem `json:"weekItems"`
	MonthlyLogs    []session.MonthlyLog    `json:"monthlyLogs"`
}

type familyDiscussions struct {
	BeforeMeeting session.BeforeDiscussion `json:"beforeMeeting"`
	AfterMeeting  session.AfterDiscussion  `json:"afterMeeting"`
}

func marshalJSON(v interface{}) (null.JSON, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return null.JSON{}, err
	}
	return null.JSONFrom(data), nil
}

func unmarshalJSON(col null.JSON, dst interface{}) error {
	if !col.Valid || len(col.JSON) == 0 {
		return nil
	}
	return json.Unmarshal(col.JSON, dst)
}

func (repo submissionRepository) toRow(sub session.Submission) (submissionRow, error) {
	row := submissionRow{
		ID:          sub.ID,
		UserID:      sub.UserID,
		StudentName: null.NewString(sub.StudentName, sub.StudentName != ""),
		CreatedAt:   sub.CreatedAt.UTC(),
		UpdatedAt:   sub.UpdatedAt.UTC(),
	}

	var err error
	if row.StudentInfo, err = marshalJSON(sub.Session.StudentInfo); err != nil {
		return row, errors.Wrap(err, "marshalling student info")
	}
	if row.ContactInfo, err = marshalJSON(sub.Session.ContactInfo); err != nil {
		return row, errors.Wrap(err, "marshalling contact info")
	}
	if row.Attendees, err = marshalJSON(sub.Session.Attendees); err != nil {
		return row, errors.Wrap(err, "marshalling attendees")
	}
	if row.PreMeetingPrep, err = marshalJSON(preMeetingPrep{
		Documents:  sub.Session.Documents,
		Reflection: sub.Session.Reflection,
	}); err != nil {
		return row, errors.Wrap(err, "marshalling pre-meeting prep")
	}
	if row.QuestionNotes, err = marshalJSON(sub.Session.QuestionCategories); err != nil {
		return row, errors.Wrap(err, "marshalling question notes")
	}
	if row.Decisions, err = marshalJSON(sub.Session.Decisions); err != nil {
		return row, errors.Wrap(err, "marshalling decisions")
	}
	if row.FollowUp, err = marshalJSON(followUp{
		ImmediateItems: sub.Session.ImmediateItems,
		WeekItems:      sub.Session.WeekItems,
		MonthlyLogs:    sub.Session.MonthlyLogs,
	}); err != nil {
		return row, errors.Wrap(err, "marshalling follow-up")
	}
	if row.FamilyDiscussions, err = marshalJSON(familyDiscussions{
		BeforeMeeting: sub.Session.BeforeMeeting,
		AfterMeeting:  sub.Session.AfterMeeting,
	}); err != nil {
		return row, errors.Wrap(err, "marshalling family discussions")
	}
	return row, nil
}

func (repo submissionRepository) fromRow(row submissionRow) (session.Submission, error) {
	sub := session.Submission{
		ID:          row.ID,
		UserID:      row.UserID,
		StudentName: row.StudentName.String,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}

	var prep preMeetingPrep
	var fup followUp
	var fam familyDiscussions
	for _, step := range []struct {
		col null.JSON
		dst interface{}
	}{
		{row.StudentInfo, &sub.Session.StudentInfo},
		{row.ContactInfo, &sub.Session.ContactInfo},
		{row.Attendees, &sub.Session.Attendees},
		{row.PreMeetingPrep, &prep},
		{row.QuestionNotes, &sub.Session.QuestionCategories},
		{row.Decisions, &sub.Session.Decisions},
		{row.FollowUp, &fup},
		{row.FamilyDiscussions, &fam},
	} {
		if err := unmarshalJSON(step.col, step.dst); err != nil {
			return sub, errors.Wrap(err, "unmarshalling submission")
		}
	}
	sub.Session.Documents = prep.Documents
	sub.Session.Reflection = prep.Reflection
	sub.Session.ImmediateItems = fup.ImmediateItems
	sub.Session.WeekItems = fup.WeekItems
	sub.Session.MonthlyLogs = fup.MonthlyLogs
	sub.Session.BeforeMeeting = fam.BeforeMeeting
	sub.Session.AfterMeeting = fam.AfterMeeting
	return sub, nil
}

func (repo submissionRepository) UpsertSubmission(ctx context.Context, sub session.Submission) (session.Submission, error) {
	row, err := repo.toRow(sub)
	if err != nil {
		return session.Submission{}, err
	}
	_, err = repo.db.NamedExecContext(ctx, `
		INSERT INTO submissions (
			id, user_id, student_name, student_info, contact_info, attendees,
			pre_meeting_prep, question_notes, decisions, follow_up, family_discussions,
			created_at, updated_at
		)
		VALUES (
			:id, :user_id, :student_name, :student_info, :contact_info, :attendees,
			:pre_meeting_prep, :question_notes, :decisions, :follow_up, :family_discussions,
			:created_at, :updated_at
		)
		ON CONFLICT (user_id) DO UPDATE
		SET student_name       = EXCLUDED.student_name,
		    student_info       = EXCLUDED.student_info,
		    contact_info       = EXCLUDED.contact_info,
		    attendees          = EXCLUDED.attendees,
		    pre_meeting_prep   = EXCLUDED.pre_meeting_prep,
		    question_notes     = EXCLUDED.question_notes,
		    decisions          = EXCLUDED.decisions,
		    follow_up          = EXCLUDED.follow_up,
		    family_discussions = EXCLUDED.family_discussions,
		    updated_at         = EXCLUDED.updated_at`,
		row,
	)
	if err != nil {
		return session.Submission{}, errors.Wrap(err, "upserting submission")
	}
	return repo.GetSubmissionByUserID(ctx, sub.UserID)
}

func (repo submissionRepository) GetSubmissionByID(ctx context.Context, id string) (session.Submission, error) {
	return repo.getSubmission(ctx, `SELECT * FROM submissions WHERE id = $1`, id)
}

func (repo submissionRepository) GetSubmissionByUserID(ctx context.Context, userID string) (session.Submission, error) {
	return repo.getSubmission(ctx, `SELECT * FROM submissions WHERE user_id = $1`, userID)
}

func (repo submissionRepository) getSubmission(ctx context.Context, query string, arg interface{}) (session.Submission, error) {
	var row submissionRow
	if err := repo.db.GetContext(ctx, &row, query, arg); err != nil {
		if errors.Cause(err) == sql.ErrNoRows {
			return session.Submission{}, session.ErrSubmissionNotFound
		}
		return session.Submission{}, errors.Wrap(err, "getting submission")
	}
	return repo.fromRow(row)
}

func (repo submissionRepository) QueryAllSubmissions(ctx context.Context) ([]session.Submission, error) {
	var rows []submissionRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM submissions ORDER BY updated_at DESC`); err != nil {
		return nil, errors.Wrap(err, "querying submissions")
	}
	subs := make([]session.Submission, 0, len(rows))
	for _, row := range rows {
		sub, err := repo.fromRow(row)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, nil
}
