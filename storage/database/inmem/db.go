// Package inmemdb provides in-memory implementations of the core
// repositories, used in tests and local development.
package inmemdb

import (
	"sync"

	"github.com/tayariapp/tayari/core/session"
	"github.com/tayariapp/tayari/core/user"
)

type (
	DB struct {
		user       *userTable
		submission *submissionTable
		draft      *draftTable
	}

	userTable struct {
		table map[string]*user.User
		mutex sync.RWMutex
	}

	submissionTable struct {
		table map[string]*session.Submission // keyed by user ID
		mutex sync.RWMutex
	}

	draftTable struct {
		table map[string]*session.Session // keyed by user ID
		mutex sync.RWMutex
	}
)

func Open() (*DB, error) {
	db := &DB{
		user:       &userTable{table: make(map[string]*user.User)},
		submission: &submissionTable{table: make(map[string]*session.Submission)},
		draft:      &draftTable{table: make(map[string]*session.Session)},
	}
	return db, nil
}
