package inmemdb

import (
	"context"
	"sort"

	"github.com/tayariapp/tayari/core/session"
)

type submissionRepository struct {
	db *submissionTable
}

func NewSubmissionRepository(db *DB) session.SubmissionRepository {
	return &submissionRepository{db: db.submission}
}

func (repo *submissionRepository) UpsertSubmission(_ context.Context, sub session.Submission) (session.Submission, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if orig, ok := repo.db.table[sub.UserID]; ok {
		sub.ID = orig.ID
		sub.CreatedAt = orig.CreatedAt
	}
	sub.Session = sub.Session.Clone()
	repo.db.table[sub.UserID] = &sub
	return sub, nil
}

func (repo *submissionRepository) GetSubmissionByID(_ context.Context, id string) (session.Submission, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, sub := range repo.db.table {
		if sub.ID == id {
			return *sub, nil
		}
	}
	return session.Submission{}, session.ErrSubmissionNotFound
}

func (repo *submissionRepository) GetSubmissionByUserID(_ context.Context, userID string) (session.Submission, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if sub, ok := repo.db.table[userID]; ok {
		return *sub, nil
	}
	return session.Submission{}, session.ErrSubmissionNotFound
}

func (repo *submissionRepository) QueryAllSubmissions(_ context.Context) ([]session.Submission, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	subs := make([]session.Submission, 0, len(repo.db.table))
	for _, sub := range repo.db.table {
		subs = append(subs, *sub)
	}
	sort.Slice(subs, func(i, j int) bool { return subs[i].UpdatedAt.After(subs[j].UpdatedAt) })
	return subs, nil
}

type draftRepository struct {
	db *draftTable
}

func NewDraftRepository(db *DB) session.DraftRepository {
	return &draftRepository{db: db.draft}
}

func (repo *draftRepository) SaveDraft(_ context.Context, userID string, sess session.Session) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	clone := sess.Clone()
	repo.db.table[userID] = &clone
	return nil
}

func (repo *draftRepository) GetDraft(_ context.Context, userID string) (session.Session, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if sess, ok := repo.db.table[userID]; ok {
		return sess.Clone(), nil
	}
	return session.Session{}, session.ErrDraftNotFound
}

func (repo *draftRepository) DeleteDraft(_ context.Context, userID string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	delete(repo.db.table, userID)
	return nil
}
