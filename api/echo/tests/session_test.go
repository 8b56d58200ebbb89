package tests

import (
	"net/http"
	"strings"
	"testing"

	"github.com/tayariapp/tayari/api/echo"
	"github.com/tayariapp/tayari/core/session"
)

func Test_sessionApi_retrieve(t *testing.T) {
	app := setup(t)

	usr := createTestUser(t, "Mom", "mom@test.cd", "LolC@t123", nil, true)
	token := getToken(t, usr)

	t.Run("Auth required", func(t *testing.T) {
		tt := httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)}
		req, rec := newRequest(http.MethodGet, "/v1/session")
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("seeded session on first fetch", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/session", token)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
		}
		var resp echoapi.SessionResponse
		mustUnmarshal(t, rec.Body.Bytes(), &resp)

		if resp.Progress != 0 {
			t.Errorf("failed! progress = %d; want 0", resp.Progress)
		}
		seed := session.DefaultSeed()
		if len(resp.Session.Documents) != len(seed.Documents) {
			t.Errorf("failed! len(documents) = %d; want %d", len(resp.Session.Documents), len(seed.Documents))
		}
		if len(resp.Session.QuestionCategories) != len(seed.QuestionCategories) {
			t.Errorf("failed! len(questionCategories) = %d; want %d",
				len(resp.Session.QuestionCategories), len(seed.QuestionCategories))
		}
		for _, doc := range resp.Session.Documents {
			if doc.Checked {
				t.Errorf("failed! document %q checked on fresh session", doc.Label)
			}
		}
	})
}

func Test_sessionApi_update(t *testing.T) {
	app := setup(t)

	usr := createTestUser(t, "Mom", "mom@test.cd", "LolC@t123", nil, true)
	token := getToken(t, usr)

	sess := session.NewSession()
	sess.StudentInfo = session.StudentInfo{
		Name:            "Alex",
		Grade:           "3rd",
		School:          "Riverside Elementary",
		MeetingDate:     "2025-03-01",
		MeetingType:     "Annual Review",
		PrimaryConcerns: "Reading comprehension",
	}

	t.Run("save draft returns progress", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, "/v1/session", token, marchallObj(t, sess))
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
		}
		var resp echoapi.SessionResponse
		mustUnmarshal(t, rec.Body.Bytes(), &resp)
		if resp.Progress <= 0 || resp.Progress >= 100 {
			t.Errorf("failed! progress = %d; want within (0, 100)", resp.Progress)
		}
		if resp.Session.StudentInfo.Name != "Alex" {
			t.Errorf("failed! student name = %q", resp.Session.StudentInfo.Name)
		}
	})

	t.Run("saved draft is returned on fetch", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/session", token)
		app.ServeHTTP(rec, req)

		var resp echoapi.SessionResponse
		mustUnmarshal(t, rec.Body.Bytes(), &resp)
		if resp.Session.StudentInfo.School != "Riverside Elementary" {
			t.Errorf("failed! school = %q", resp.Session.StudentInfo.School)
		}
	})

	t.Run("invalid meeting date", func(t *testing.T) {
		bad := sess.Clone()
		bad.StudentInfo.MeetingDate = "lol"
		req, rec := newAuthRequest(http.MethodPut, "/v1/session", token, marchallObj(t, bad))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("failed! code = %v; want 400", rec.Code)
		}
	})

	t.Run("invalid attending value", func(t *testing.T) {
		bad := sess.Clone()
		bad.Attendees = append(bad.Attendees, session.Attendee{ID: session.NewID(), Name: "X", Attending: "lol"})
		req, rec := newAuthRequest(http.MethodPut, "/v1/session", token, marchallObj(t, bad))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("failed! code = %v; want 400", rec.Code)
		}
	})

	t.Run("drafts are per-user", func(t *testing.T) {
		other := createTestUser(t, "Dad", "dad@test.cd", "LolC@t123", nil, true)
		req, rec := newAuthRequest(http.MethodGet, "/v1/session", getToken(t, other))
		app.ServeHTTP(rec, req)

		var resp echoapi.SessionResponse
		mustUnmarshal(t, rec.Body.Bytes(), &resp)
		if resp.Session.StudentInfo.Name != "" {
			t.Errorf("failed! other user sees draft data: %q", resp.Session.StudentInfo.Name)
		}
	})
}

func Test_sessionApi_reset(t *testing.T) {
	app := setup(t)

	usr := createTestUser(t, "Mom", "mom@test.cd", "LolC@t123", nil, true)
	token := getToken(t, usr)

	sess := session.NewSession()
	sess.StudentInfo.Name = "Alex"
	req, rec := newAuthRequest(http.MethodPut, "/v1/session", token, marchallObj(t, sess))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
	}

	req, rec = newAuthRequest(http.MethodDelete, "/v1/session", token)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
	}

	var resp echoapi.SessionResponse
	mustUnmarshal(t, rec.Body.Bytes(), &resp)
	if resp.Session.StudentInfo.Name != "" {
		t.Errorf("failed! reset kept student name %q", resp.Session.StudentInfo.Name)
	}
	if resp.Progress != 0 {
		t.Errorf("failed! progress = %d; want 0", resp.Progress)
	}
}

func Test_sessionApi_export(t *testing.T) {
	app := setup(t)

	usr := createTestUser(t, "Mom", "mom@test.cd", "LolC@t123", nil, true)
	token := getToken(t, usr)

	sess := session.NewSession()
	sess.StudentInfo.Name = "Alex"
	sess.StudentInfo.MeetingDate = "2025-03-01"
	req, rec := newAuthRequest(http.MethodPut, "/v1/session", token, marchallObj(t, sess))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
	}

	t.Run("html", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/session/export?format=html", token)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
		}
		body := rec.Body.String()
		if !strings.Contains(body, "Alex") {
			t.Error("failed! html does not contain student name")
		}
		if !strings.Contains(body, "March 1, 2025") {
			t.Error("failed! html does not contain formatted meeting date")
		}
		cd := rec.Header().Get("Content-Disposition")
		if !strings.Contains(cd, "IEP-Meeting-Alex-") || !strings.Contains(cd, ".html") {
			t.Errorf("failed! Content-Disposition = %q", cd)
		}
	})

	t.Run("json", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/session/export?format=json", token)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
		}
		var exported session.Session
		mustUnmarshal(t, rec.Body.Bytes(), &exported)
		if exported.StudentInfo.Name != "Alex" {
			t.Errorf("failed! exported student name = %q", exported.StudentInfo.Name)
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/session/export?format=pdf", token)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("failed! code = %v; want 400", rec.Code)
		}
	})
}

func Test_sessionApi_submit(t *testing.T) {
	app := setup(t)

	usr := createTestUser(t, "Mom", "mom@test.cd", "LolC@t123", nil, true)
	token := getToken(t, usr)

	sess := session.NewSession()
	sess.StudentInfo.Name = "Alex"
	req, rec := newAuthRequest(http.MethodPut, "/v1/session", token, marchallObj(t, sess))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
	}

	req, rec = newAuthRequest(http.MethodPost, "/v1/session/submit", token)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
	}
	var sub session.Submission
	mustUnmarshal(t, rec.Body.Bytes(), &sub)
	if sub.UserID != usr.ID {
		t.Errorf("failed! user_id = %q; want %q", sub.UserID, usr.ID)
	}
	if sub.StudentName != "Alex" {
		t.Errorf("failed! student_name = %q", sub.StudentName)
	}

	// re-submitting upserts in place: same row, updated content
	sess.StudentInfo.Name = "Alexandra"
	req, rec = newAuthRequest(http.MethodPut, "/v1/session", token, marchallObj(t, sess))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
	}

	req, rec = newAuthRequest(http.MethodPost, "/v1/session/submit", token)
	app.ServeHTTP(rec, req)
	var sub2 session.Submission
	mustUnmarshal(t, rec.Body.Bytes(), &sub2)
	if sub2.ID != sub.ID {
		t.Errorf("failed! resubmission created a new row: %q != %q", sub2.ID, sub.ID)
	}
	if sub2.StudentName != "Alexandra" {
		t.Errorf("failed! student_name = %q", sub2.StudentName)
	}
}
