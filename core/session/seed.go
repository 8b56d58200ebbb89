package session

import (
	"log"
	"strconv"
	"sync"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	appfs "github.com/tayariapp/tayari/fs"
)

const seedPath = "assets/seed/session.yaml"

// Seed holds the static default tables pre-populated into every new Session.
// It is configuration, not runtime state: parsed once from the embedded YAML.
type Seed struct {
	Documents []struct {
		ID    string `yaml:"id"`
		Label string `yaml:"label"`
	} `yaml:"documents"`
	AttendeeRoles  []string `yaml:"attendeeRoles"`
	DecisionTopics []string `yaml:"decisionTopics"`
	QuestionCategories []struct {
		ID          string   `yaml:"id"`
		Title       string   `yaml:"title"`
		Description string   `yaml:"description"`
		Questions   []string `yaml:"questions"`
	} `yaml:"questionCategories"`
	ImmediateItems []struct {
		ID      string `yaml:"id"`
		Label   string `yaml:"label"`
		HasDate bool   `yaml:"hasDate"`
	} `yaml:"immediateItems"`
	WeekItems []struct {
		ID      string `yaml:"id"`
		Label   string `yaml:"label"`
		HasDate bool   `yaml:"hasDate"`
	} `yaml:"weekItems"`
}

var (
	seed     Seed
	seedInit sync.Once
)

func loadSeed() {
	data, err := appfs.FS.ReadFile(seedPath)
	if err != nil {
		log.Fatalf("%+v", errors.Wrap(err, "reading seed data"))
	}
	if err := yaml.Unmarshal(data, &seed); err != nil {
		log.Fatalf("%+v", errors.Wrap(err, "parsing seed data"))
	}
}

// DefaultSeed returns the parsed seed tables.
func DefaultSeed() Seed {
	seedInit.Do(loadSeed)
	return seed
}

// NewSession builds a fresh Session from the seed tables.
func NewSession() Session {
	sd := DefaultSeed()

	s := Session{
		Attendees:          make([]Attendee, 0, len(sd.AttendeeRoles)),
		Documents:          make([]DocumentItem, 0, len(sd.Documents)),
		QuestionCategories: make([]QuestionCategory, 0, len(sd.QuestionCategories)),
		Decisions:          make([]Decision, 0, len(sd.DecisionTopics)),
		ImmediateItems:     make([]ChecklistItem, 0, len(sd.ImmediateItems)),
		WeekItems:          make([]ChecklistItem, 0, len(sd.WeekItems)),
		MonthlyLogs:        make([]MonthlyLog, 0),
	}
	for i, role := range sd.AttendeeRoles {
		s.Attendees = append(s.Attendees, Attendee{ID: strconv.Itoa(i + 1), Role: role})
	}
	for _, d := range sd.Documents {
		s.Documents = append(s.Documents, DocumentItem{ID: d.ID, Label: d.Label})
	}
	for _, c := range sd.QuestionCategories {
		s.QuestionCategories = append(s.QuestionCategories, QuestionCategory{
			ID:          c.ID,
			Title:       c.Title,
			Description: c.Description,
			Questions:   append([]string(nil), c.Questions...),
		})
	}
	for i, topic := range sd.DecisionTopics {
		s.Decisions = append(s.Decisions, Decision{ID: strconv.Itoa(i + 1), Topic: topic})
	}
	for _, it := range sd.ImmediateItems {
		s.ImmediateItems = append(s.ImmediateItems, ChecklistItem{ID: it.ID, Label: it.Label, HasDate: it.HasDate})
	}
	for _, it := range sd.WeekItems {
		s.WeekItems = append(s.WeekItems, ChecklistItem{ID: it.ID, Label: it.Label, HasDate: it.HasDate})
	}
	return s
}
