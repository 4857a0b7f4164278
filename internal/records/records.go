package records

// The seven record variants mirror the company datasets loaded at startup.
// Records are immutable after load; equality is field-wise. Each variant
// carries a field table mapping field name -> accessor returning a tagged
// Value, which is the only way the search engine reads record data.

type Employee struct {
	ID                     int      `json:"id"`
	Name                   string   `json:"name"`
	Email                  string   `json:"email"`
	Role                   string   `json:"role"`
	Team                   string   `json:"team"`
	JiraUsername           string   `json:"jira_username"`
	Skills                 []string `json:"skills"`
	YearsOfExperience      int      `json:"years_of_experience"`
	Location               string   `json:"location"`
	Timezone               string   `json:"timezone"`
	GithubUsername         string   `json:"github_username"`
	Availability           string   `json:"availability"`
	CurrentSprintCapacity  int      `json:"current_sprint_capacity"`
	CurrentSprintAllocated int      `json:"current_sprint_allocated"`
	SlackHandle            string   `json:"slack_handle"`
}

var employeeFields = FieldTable[Employee]{
	"id":                       func(e Employee) Value { return Int(e.ID) },
	"name":                     func(e Employee) Value { return String(e.Name) },
	"email":                    func(e Employee) Value { return String(e.Email) },
	"role":                     func(e Employee) Value { return String(e.Role) },
	"team":                     func(e Employee) Value { return String(e.Team) },
	"jira_username":            func(e Employee) Value { return String(e.JiraUsername) },
	"skills":                   func(e Employee) Value { return StringList(e.Skills) },
	"years_of_experience":      func(e Employee) Value { return Int(e.YearsOfExperience) },
	"location":                 func(e Employee) Value { return String(e.Location) },
	"timezone":                 func(e Employee) Value { return String(e.Timezone) },
	"github_username":          func(e Employee) Value { return String(e.GithubUsername) },
	"availability":             func(e Employee) Value { return String(e.Availability) },
	"current_sprint_capacity":  func(e Employee) Value { return Int(e.CurrentSprintCapacity) },
	"current_sprint_allocated": func(e Employee) Value { return Int(e.CurrentSprintAllocated) },
	"slack_handle":             func(e Employee) Value { return String(e.SlackHandle) },
}

type Ticket struct {
	ID             string   `json:"id"`
	Summary        string   `json:"summary"`
	Description    string   `json:"description"`
	Assignee       string   `json:"assignee"`
	Reporter       string   `json:"reporter"`
	Status         string   `json:"status"`
	Priority       string   `json:"priority"`
	StoryPoints    int      `json:"story_points"`
	Sprint         string   `json:"sprint"`
	Epic           string   `json:"epic"`
	Labels         []string `json:"labels"`
	CreatedDate    string   `json:"created_date"`
	UpdatedDate    string   `json:"updated_date"`
	DueDate        string   `json:"due_date"`
	Component      string   `json:"component"`
	EstimatedHours int      `json:"estimated_hours"`
	TimeSpentHours int      `json:"time_spent_hours"`
	Blocked        bool     `json:"blocked"`
	BlockerReason  string   `json:"blocker_reason"`
	LinkedTickets  []string `json:"linked_tickets"`
	CommentsCount  int      `json:"comments_count"`
}

var ticketFields = FieldTable[Ticket]{
	"id":               func(t Ticket) Value { return String(t.ID) },
	"summary":          func(t Ticket) Value { return String(t.Summary) },
	"description":      func(t Ticket) Value { return String(t.Description) },
	"assignee":         func(t Ticket) Value { return String(t.Assignee) },
	"reporter":         func(t Ticket) Value { return String(t.Reporter) },
	"status":           func(t Ticket) Value { return String(t.Status) },
	"priority":         func(t Ticket) Value { return String(t.Priority) },
	"story_points":     func(t Ticket) Value { return Int(t.StoryPoints) },
	"sprint":           func(t Ticket) Value { return String(t.Sprint) },
	"epic":             func(t Ticket) Value { return String(t.Epic) },
	"labels":           func(t Ticket) Value { return StringList(t.Labels) },
	"created_date":     func(t Ticket) Value { return String(t.CreatedDate) },
	"updated_date":     func(t Ticket) Value { return String(t.UpdatedDate) },
	"due_date":         func(t Ticket) Value { return String(t.DueDate) },
	"component":        func(t Ticket) Value { return String(t.Component) },
	"estimated_hours":  func(t Ticket) Value { return Int(t.EstimatedHours) },
	"time_spent_hours": func(t Ticket) Value { return Int(t.TimeSpentHours) },
	"blocked":          func(t Ticket) Value { return Bool(t.Blocked) },
	"blocker_reason":   func(t Ticket) Value { return String(t.BlockerReason) },
	"linked_tickets":   func(t Ticket) Value { return StringList(t.LinkedTickets) },
	"comments_count":   func(t Ticket) Value { return Int(t.CommentsCount) },
}

type Deployment struct {
	ID                string   `json:"id"`
	Service           string   `json:"service"`
	Version           string   `json:"version"`
	Date              string   `json:"date"`
	Status            string   `json:"status"`
	Environment       string   `json:"environment"`
	DeployedBy        string   `json:"deployed_by"`
	DurationMinutes   int      `json:"duration_minutes"`
	RollbackAvailable bool     `json:"rollback_available"`
	HealthCheckPassed bool     `json:"health_check_passed"`
	CommitSHA         string   `json:"commit_sha"`
	JiraTickets       []string `json:"jira_tickets"`
	Notes             string   `json:"notes"`
	ErrorMessage      string   `json:"error_message"`
}

var deploymentFields = FieldTable[Deployment]{
	"id":                  func(d Deployment) Value { return String(d.ID) },
	"service":             func(d Deployment) Value { return String(d.Service) },
	"version":             func(d Deployment) Value { return String(d.Version) },
	"date":                func(d Deployment) Value { return String(d.Date) },
	"status":              func(d Deployment) Value { return String(d.Status) },
	"environment":         func(d Deployment) Value { return String(d.Environment) },
	"deployed_by":         func(d Deployment) Value { return String(d.DeployedBy) },
	"duration_minutes":    func(d Deployment) Value { return Int(d.DurationMinutes) },
	"rollback_available":  func(d Deployment) Value { return Bool(d.RollbackAvailable) },
	"health_check_passed": func(d Deployment) Value { return Bool(d.HealthCheckPassed) },
	"commit_sha":          func(d Deployment) Value { return String(d.CommitSHA) },
	"jira_tickets":        func(d Deployment) Value { return StringList(d.JiraTickets) },
	"notes":               func(d Deployment) Value { return String(d.Notes) },
	"error_message":       func(d Deployment) Value { return String(d.ErrorMessage) },
}

type Project struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Key                string   `json:"key"`
	Description        string   `json:"description"`
	Status             string   `json:"status"`
	Lead               string   `json:"lead"`
	Team               []string `json:"team"`
	StartDate          string   `json:"start_date"`
	TargetCompletion   string   `json:"target_completion"`
	ProgressPercentage int      `json:"progress_percentage"`
	BudgetHours        int      `json:"budget_hours"`
	ConsumedHours      int      `json:"consumed_hours"`
	Epics              []string `json:"epics"`
	Repositories       []string `json:"repositories"`
	TechStack          []string `json:"tech_stack"`
	Priority           string   `json:"priority"`
}

var projectFields = FieldTable[Project]{
	"id":                  func(p Project) Value { return String(p.ID) },
	"name":                func(p Project) Value { return String(p.Name) },
	"key":                 func(p Project) Value { return String(p.Key) },
	"description":         func(p Project) Value { return String(p.Description) },
	"status":              func(p Project) Value { return String(p.Status) },
	"lead":                func(p Project) Value { return String(p.Lead) },
	"team":                func(p Project) Value { return StringList(p.Team) },
	"start_date":          func(p Project) Value { return String(p.StartDate) },
	"target_completion":   func(p Project) Value { return String(p.TargetCompletion) },
	"progress_percentage": func(p Project) Value { return Int(p.ProgressPercentage) },
	"budget_hours":        func(p Project) Value { return Int(p.BudgetHours) },
	"consumed_hours":      func(p Project) Value { return Int(p.ConsumedHours) },
	"epics":               func(p Project) Value { return StringList(p.Epics) },
	"repositories":        func(p Project) Value { return StringList(p.Repositories) },
	"tech_stack":          func(p Project) Value { return StringList(p.TechStack) },
	"priority":            func(p Project) Value { return String(p.Priority) },
}

// BurndownEntry is one day of remaining story points inside a sprint.
type BurndownEntry struct {
	Date            string `json:"date"`
	RemainingPoints int    `json:"remaining_points"`
}

type Sprint struct {
	ID                   string          `json:"id"`
	Name                 string          `json:"name"`
	StartDate            string          `json:"start_date"`
	EndDate              string          `json:"end_date"`
	Status               string          `json:"status"`
	Goal                 string          `json:"goal"`
	TotalStoryPoints     int             `json:"total_story_points"`
	CompletedStoryPoints int             `json:"completed_story_points"`
	TeamVelocity         int             `json:"team_velocity"`
	Tickets              []string        `json:"tickets"`
	Burndown             []BurndownEntry `json:"burndown"`
	RetrospectiveNotes   string          `json:"retrospective_notes"`
}

var sprintFields = FieldTable[Sprint]{
	"id":                     func(s Sprint) Value { return String(s.ID) },
	"name":                   func(s Sprint) Value { return String(s.Name) },
	"start_date":             func(s Sprint) Value { return String(s.StartDate) },
	"end_date":               func(s Sprint) Value { return String(s.EndDate) },
	"status":                 func(s Sprint) Value { return String(s.Status) },
	"goal":                   func(s Sprint) Value { return String(s.Goal) },
	"total_story_points":     func(s Sprint) Value { return Int(s.TotalStoryPoints) },
	"completed_story_points": func(s Sprint) Value { return Int(s.CompletedStoryPoints) },
	"team_velocity":          func(s Sprint) Value { return Int(s.TeamVelocity) },
	"tickets":                func(s Sprint) Value { return StringList(s.Tickets) },
	"burndown":               func(s Sprint) Value { return ObjectList(s.Burndown) },
	"retrospective_notes":    func(s Sprint) Value { return String(s.RetrospectiveNotes) },
}

// ActionItem is a follow-up recorded against a meeting.
type ActionItem struct {
	AssignedTo string `json:"assigned_to"`
	Item       string `json:"item"`
	DueDate    string `json:"due_date"`
}

type Meeting struct {
	ID              string       `json:"id"`
	Title           string       `json:"title"`
	Type            string       `json:"type"`
	Date            string       `json:"date"`
	DurationMinutes int          `json:"duration_minutes"`
	Attendees       []string     `json:"attendees"`
	Agenda          []string     `json:"agenda"`
	Notes           string       `json:"notes"`
	ActionItems     []ActionItem `json:"action_items"`
}

var meetingFields = FieldTable[Meeting]{
	"id":               func(m Meeting) Value { return String(m.ID) },
	"title":            func(m Meeting) Value { return String(m.Title) },
	"type":             func(m Meeting) Value { return String(m.Type) },
	"date":             func(m Meeting) Value { return String(m.Date) },
	"duration_minutes": func(m Meeting) Value { return Int(m.DurationMinutes) },
	"attendees":        func(m Meeting) Value { return StringList(m.Attendees) },
	"agenda":           func(m Meeting) Value { return StringList(m.Agenda) },
	"notes":            func(m Meeting) Value { return String(m.Notes) },
	"action_items":     func(m Meeting) Value { return ObjectList(m.ActionItems) },
}

type Service struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Type                string   `json:"type"`
	Description         string   `json:"description"`
	Repository          string   `json:"repository"`
	TechStack           []string `json:"tech_stack"`
	OwnerTeam           string   `json:"owner_team"`
	PrimaryMaintainer   string   `json:"primary_maintainer"`
	Status              string   `json:"status"`
	UptimePercentage    float64  `json:"uptime_percentage"`
	AvgResponseTimeMs   int      `json:"avg_response_time_ms"`
	RequestPerDay       int      `json:"request_per_day"`
	ProductionURL       string   `json:"production_url"`
	StagingURL          string   `json:"staging_url"`
	CurrentVersion      string   `json:"current_version"`
	DeploymentFrequency string   `json:"deployment_frequency"`
	LastDeployment      string   `json:"last_deployment"`
	Dependencies        []string `json:"dependencies"`
	MonitoringDashboard string   `json:"monitoring_dashboard"`
	Documentation       string   `json:"documentation"`
}

var serviceFields = FieldTable[Service]{
	"id":                   func(s Service) Value { return String(s.ID) },
	"name":                 func(s Service) Value { return String(s.Name) },
	"type":                 func(s Service) Value { return String(s.Type) },
	"description":          func(s Service) Value { return String(s.Description) },
	"repository":           func(s Service) Value { return String(s.Repository) },
	"tech_stack":           func(s Service) Value { return StringList(s.TechStack) },
	"owner_team":           func(s Service) Value { return String(s.OwnerTeam) },
	"primary_maintainer":   func(s Service) Value { return String(s.PrimaryMaintainer) },
	"status":               func(s Service) Value { return String(s.Status) },
	"uptime_percentage":    func(s Service) Value { return Float(s.UptimePercentage) },
	"avg_response_time_ms": func(s Service) Value { return Int(s.AvgResponseTimeMs) },
	"request_per_day":      func(s Service) Value { return Int(s.RequestPerDay) },
	"production_url":       func(s Service) Value { return String(s.ProductionURL) },
	"staging_url":          func(s Service) Value { return String(s.StagingURL) },
	"current_version":      func(s Service) Value { return String(s.CurrentVersion) },
	"deployment_frequency": func(s Service) Value { return String(s.DeploymentFrequency) },
	"last_deployment":      func(s Service) Value { return String(s.LastDeployment) },
	"dependencies":         func(s Service) Value { return StringList(s.Dependencies) },
	"monitoring_dashboard": func(s Service) Value { return String(s.MonitoringDashboard) },
	"documentation":        func(s Service) Value { return String(s.Documentation) },
}
