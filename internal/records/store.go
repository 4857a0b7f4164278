package records

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	logx "github.com/hrnexus-poc/server/pkg/logger"
)

// Store holds all seven dataset collections. It is populated once at process
// start and never mutated afterwards, so it can be read-shared across
// concurrent pipeline runs without locking.
type Store struct {
	Employees   []Employee
	Tickets     []Ticket
	Deployments []Deployment
	Projects    []Project
	Sprints     []Sprint
	Meetings    []Meeting
	Services    []Service
}

// Dataset source filenames inside the data directory.
const (
	employeesFile   = "employees.json"
	ticketsFile     = "jira_tickets.json"
	deploymentsFile = "deployments.json"
	projectsFile    = "projects.json"
	sprintsFile     = "sprints.json"
	meetingsFile    = "meetings.json"
	servicesFile    = "services.json"
)

// Load reads every dataset from dir. Individual malformed records are logged
// and skipped; a missing or unreadable dataset file fails the load since the
// store would otherwise silently answer queries against an empty collection.
func Load(dir string) (*Store, error) {
	s := &Store{}
	var err error

	if s.Employees, err = loadDataset[Employee](filepath.Join(dir, employeesFile)); err != nil {
		return nil, err
	}
	if s.Tickets, err = loadDataset[Ticket](filepath.Join(dir, ticketsFile)); err != nil {
		return nil, err
	}
	if s.Deployments, err = loadDataset[Deployment](filepath.Join(dir, deploymentsFile)); err != nil {
		return nil, err
	}
	if s.Projects, err = loadDataset[Project](filepath.Join(dir, projectsFile)); err != nil {
		return nil, err
	}
	if s.Sprints, err = loadDataset[Sprint](filepath.Join(dir, sprintsFile)); err != nil {
		return nil, err
	}
	if s.Meetings, err = loadDataset[Meeting](filepath.Join(dir, meetingsFile)); err != nil {
		return nil, err
	}
	if s.Services, err = loadDataset[Service](filepath.Join(dir, servicesFile)); err != nil {
		return nil, err
	}

	logx.Info().
		Int("employees", len(s.Employees)).
		Int("tickets", len(s.Tickets)).
		Int("deployments", len(s.Deployments)).
		Int("projects", len(s.Projects)).
		Int("sprints", len(s.Sprints)).
		Int("meetings", len(s.Meetings)).
		Int("services", len(s.Services)).
		Msg("Record store loaded")

	return s, nil
}

// loadDataset decodes one dataset file record by record. A record that fails
// to decode is skipped with a warning; missing optional fields take their
// zero values (empty string / zero / false / empty list).
func loadDataset[T any](path string) ([]T, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(b, &raws); err != nil {
		return nil, fmt.Errorf("decode dataset %s: %w", path, err)
	}

	items := make([]T, 0, len(raws))
	for i, raw := range raws {
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			logx.Warn().
				Err(err).
				Str("dataset", filepath.Base(path)).
				Int("index", i).
				Msg("Skipping malformed record")
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// Typed search entry points, one per dataset. Each applies the generic
// filtered search over the variant's field table.

func (s *Store) SearchEmployees(field, value string, op Operator) ([]Employee, error) {
	return Search(s.Employees, employeeFields, field, value, op)
}

func (s *Store) SearchTickets(field, value string, op Operator) ([]Ticket, error) {
	return Search(s.Tickets, ticketFields, field, value, op)
}

func (s *Store) SearchDeployments(field, value string, op Operator) ([]Deployment, error) {
	return Search(s.Deployments, deploymentFields, field, value, op)
}

func (s *Store) SearchProjects(field, value string, op Operator) ([]Project, error) {
	return Search(s.Projects, projectFields, field, value, op)
}

func (s *Store) SearchSprints(field, value string, op Operator) ([]Sprint, error) {
	return Search(s.Sprints, sprintFields, field, value, op)
}

func (s *Store) SearchMeetings(field, value string, op Operator) ([]Meeting, error) {
	return Search(s.Meetings, meetingFields, field, value, op)
}

func (s *Store) SearchServices(field, value string, op Operator) ([]Service, error) {
	return Search(s.Services, serviceFields, field, value, op)
}
