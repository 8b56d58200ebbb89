package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/tayariapp/tayari/core"
	"github.com/tayariapp/tayari/core/user"
)

var (
	// errors
	ErrDraftNotFound      = errors.New("draft not found")
	ErrSubmissionNotFound = errors.New("submission not found")
)

type (
	// DraftRepository is the local draft store: one whole-Session blob per
	// user under a fixed key, overwritten on every save.
	DraftRepository interface {
		SaveDraft(ctx context.Context, userID string, s Session) error
		GetDraft(ctx context.Context, userID string) (Session, error)
		DeleteDraft(ctx context.Context, userID string) error
	}

	// SubmissionRepository is the hosted store: one row per user, the Session
	// split into its top-level groups, updated wholesale.
	SubmissionRepository interface {
		UpsertSubmission(ctx context.Context, sub Submission) (Submission, error)
		GetSubmissionByID(ctx context.Context, id string) (Submission, error)
		GetSubmissionByUserID(ctx context.Context, userID string) (Submission, error)
		// QueryAllSubmissions returns all rows, most recently updated first.
		QueryAllSubmissions(ctx context.Context) ([]Submission, error)
	}

	// Submission is the hosted, persisted counterpart of a Session.
	Submission struct {
		ID          string    `json:"id"`
		UserID      string    `json:"user_id"`
		StudentName string    `json:"student_name"`
		Session     Session   `json:"session"`
		CreatedAt   time.Time `json:"created_at"` // UTC
		UpdatedAt   time.Time `json:"updated_at"` // UTC

		// ProfileEmail is joined in from the submitter's account on listing.
		ProfileEmail string `json:"profile_email,omitempty"`
	}

	// ListStats summarizes the admin listing.
	ListStats struct {
		Total         int `json:"total"`
		UniqueParents int `json:"unique_parents"`
	}

	Service interface {
		// GetDraft returns the user's draft, seeding a default Session when
		// none has been saved yet.
		GetDraft(ctx context.Context, userID string) (Session, error)
		SaveDraft(ctx context.Context, userID string, s Session) error
		// ResetDraft drops the saved draft and returns a fresh seeded Session.
		ResetDraft(ctx context.Context, userID string) (Session, error)
		// Submit upserts the user's current draft to the hosted store.
		Submit(ctx context.Context, userID string) (Submission, error)
		GetSubmission(ctx context.Context, id string) (Submission, error)
		// ListSubmissions returns all submissions joined with submitter
		// emails, filtered on student name or email when search is set.
		ListSubmissions(ctx context.Context, search string) ([]Submission, ListStats, error)
	}

	service struct {
		drafts  DraftRepository
		subs    SubmissionRepository
		usrRepo user.Repository
	}
)

var _ Service = (*service)(nil)

func NewService(drafts DraftRepository, subs SubmissionRepository, usrRepo user.Repository) Service {
	return &service{
		drafts:  drafts,
		subs:    subs,
		usrRepo: usrRepo,
	}
}

func (svc *service) GetDraft(ctx context.Context, userID string) (Session, error) {
	s, err := svc.drafts.GetDraft(ctx, userID)
	if err != nil {
		if errors.Cause(err) == ErrDraftNotFound {
			return NewSession(), nil
		}
		return Session{}, err
	}
	return s, nil
}

func (svc *service) SaveDraft(ctx context.Context, userID string, s Session) error {
	return svc.drafts.SaveDraft(ctx, userID, s)
}

func (svc *service) ResetDraft(ctx context.Context, userID string) (Session, error) {
	if err := svc.drafts.DeleteDraft(ctx, userID); err != nil && errors.Cause(err) != ErrDraftNotFound {
		return Session{}, err
	}
	return NewSession(), nil
}

func (svc *service) Submit(ctx context.Context, userID string) (Submission, error) {
	s, err := svc.GetDraft(ctx, userID)
	if err != nil {
		return Submission{}, err
	}

	now := time.Now().UTC()
	sub := Submission{
		ID:          uuid.New().String(),
		UserID:      userID,
		StudentName: s.StudentName(),
		Session:     s,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.subs.UpsertSubmission(ctx, sub)
}

func (svc *service) GetSubmission(ctx context.Context, id string) (Submission, error) {
	sub, err := svc.subs.GetSubmissionByID(ctx, id)
	if err != nil {
		return Submission{}, err
	}
	svc.joinEmails(ctx, []Submission{sub})
	return sub, nil
}

func (svc *service) ListSubmissions(ctx context.Context, search string) ([]Submission, ListStats, error) {
	subs, err := svc.subs.QueryAllSubmissions(ctx)
	if err != nil {
		return nil, ListStats{}, err
	}
	svc.joinEmails(ctx, subs)

	stats := ListStats{Total: len(subs)}
	seen := make(map[string]struct{}, len(subs))
	for _, sub := range subs {
		if _, ok := seen[sub.UserID]; !ok {
			seen[sub.UserID] = struct{}{}
			stats.UniqueParents++
		}
	}

	if q := core.CleanString(search); q != "" {
		filtered := make([]Submission, 0, len(subs))
		for _, sub := range subs {
			if core.ContainsFold(sub.StudentName, q) || core.ContainsFold(sub.ProfileEmail, q) {
				filtered = append(filtered, sub)
			}
		}
		subs = filtered
	}
	return subs, stats, nil
}

// joinEmails resolves submitter emails with a single map-based join.
func (svc *service) joinEmails(ctx context.Context, subs []Submission) {
	if len(subs) == 0 {
		return
	}
	users, err := svc.usrRepo.QueryAllUsers(ctx)
	if err != nil {
		return // listing still works, emails just come back empty
	}
	emails := make(map[string]string, len(users))
	for _, u := range users {
		emails[u.ID] = u.Email
	}
	for i := range subs {
		if email, ok := emails[subs[i].UserID]; ok {
			subs[i].ProfileEmail = email
		} else {
			subs[i].ProfileEmail = "Unknown"
		}
	}
}
