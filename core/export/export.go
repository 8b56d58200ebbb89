// Package export renders a Session to a downloadable document: a printable
// self-styled HTML form or a verbatim JSON dump. Output is a pure function
// of the Session and the supplied clock.
package export

import (
	"bytes"
	"encoding/json"
	htmltmpl "html/template"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/tayariapp/tayari/core/session"
	appfs "github.com/tayariapp/tayari/fs"
)

// Supported export formats.
const (
	FormatHTML = "html"
	FormatJSON = "json"
)

const htmlTmplPath = "assets/templates/export/printable.gohtml"

var (
	htmlTmpl     *htmltmpl.Template
	htmlTmplInit sync.Once
)

type htmlData struct {
	S            session.Session
	ExportedOn   string
	AnyNotes     bool
	AnyDecisions bool
}

func parseHTMLTemplate() {
	tmpl, err := htmltmpl.New("printable.gohtml").Funcs(htmltmpl.FuncMap{
		"fmtDate": FormatDate,
		"np":      notProvided,
		"dash":    orDash,
		"glyph":   glyph,
	}).ParseFS(appfs.FS, htmlTmplPath)
	if err != nil {
		log.Fatalf("%+v", errors.Wrap(err, "parsing export template"))
	}
	htmlTmpl = tmpl
}

// HTML renders the Session as a self-contained printable document.
func HTML(s session.Session, now time.Time) ([]byte, error) {
	htmlTmplInit.Do(parseHTMLTemplate)

	data := htmlData{
		S:          s,
		ExportedOn: now.Format("Monday, January 2, 2006"),
	}
	for _, c := range s.QuestionCategories {
		if c.Notes != "" {
			data.AnyNotes = true
			break
		}
	}
	for _, d := range s.Decisions {
		// same predicate as the template's row filter
		if d.Topic != "" || d.Discussed != "" || d.AgreedOn != "" {
			data.AnyDecisions = true
			break
		}
	}

	var buff bytes.Buffer
	if err := htmlTmpl.Execute(&buff, data); err != nil {
		return nil, errors.Wrap(err, "rendering export")
	}
	return buff.Bytes(), nil
}

// JSON dumps the Session verbatim; parsing it back yields an equal Session.
func JSON(s session.Session) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "marshaling session")
	}
	return data, nil
}

// Filename names the download from the student's name and the current date,
// e.g. "IEP-Meeting-Alex-2025-03-01.html".
func Filename(s session.Session, format string, now time.Time) string {
	name := s.StudentName()
	if name == "" {
		name = "export"
	}
	name = strings.ReplaceAll(name, " ", "-")
	return "IEP-Meeting-" + name + "-" + now.Format("2006-01-02") + "." + format
}

// FormatDate reformats an ISO date (2006-01-02) to its long display form,
// e.g. "March 1, 2025". Missing or invalid dates degrade to "".
func FormatDate(iso string) string {
	if iso == "" {
		return ""
	}
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return ""
	}
	return t.Format("January 2, 2006")
}

func notProvided(v string) string {
	if v == "" {
		return "Not provided"
	}
	return v
}

func orDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}

func glyph(checked bool) string {
	if checked {
		return "✓"
	}
	return "○"
}
