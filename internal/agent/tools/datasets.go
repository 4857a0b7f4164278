package tools

import (
	"context"

	"github.com/cloudwego/eino/schema"

	"github.com/hrnexus-poc/server/internal/records"
)

// Tool names exposed to the model's function-calling interface.
const (
	ToolSearchEmployees   = "search_emps_by_key_tool"
	ToolSearchTickets     = "search_jira_tickets_tool"
	ToolSearchDeployments = "search_deployments_tool"
	ToolSearchProjects    = "search_projects_tool"
	ToolSearchSprints     = "search_sprints_tool"
	ToolSearchMeetings    = "search_meetings_tool"
	ToolSearchServices    = "search_services_tool"
)

// searchParams is the shared parameter schema for every dataset tool.
func searchParams() map[string]*schema.ParameterInfo {
	return map[string]*schema.ParameterInfo{
		"field_name": {
			Type:     "string",
			Desc:     "The record field to filter on. Must be one of the fields listed in the tool description.",
			Required: true,
		},
		"value": {
			Type:     "string",
			Desc:     "The value to compare against, always passed as a string (e.g. 'Backend', 'Python', '5').",
			Required: true,
		},
		"operator": {
			Type: "string",
			Desc: "Comparison operator: equals (default), greater_than, less_than, greater_equal, less_equal, contains.",
		},
	}
}

// newDatasetDescriptor wires one dataset's filtered search into a Descriptor.
// The description text is part of the model prompt: it has to enumerate the
// dataset's fields and show example calls or the model picks wrong fields.
func newDatasetDescriptor[T any](name, desc string, search func(field, value string, op records.Operator) ([]T, error)) *Descriptor {
	return &Descriptor{
		Info: &schema.ToolInfo{
			Name:        name,
			Desc:        desc,
			ParamsOneOf: schema.NewParamsOneOfByParams(searchParams()),
		},
		run: func(ctx context.Context, in *SearchInput) (*SearchOutput, error) {
			results, err := search(in.FieldName, in.Value, records.ParseOperator(in.Operator))
			if err != nil {
				return nil, err
			}
			return &SearchOutput{Total: len(results), Records: results}, nil
		},
	}
}

func datasetDescriptors(store *records.Store) []*Descriptor {
	return []*Descriptor{
		newDatasetDescriptor(ToolSearchEmployees,
			"Search employees by a field/value pair with an optional comparison operator. "+
				"Fields: id, name, email, role, team, jira_username, skills, years_of_experience, "+
				"location, timezone, github_username, availability, current_sprint_capacity, "+
				"current_sprint_allocated, slack_handle. "+
				"Examples: backend team members -> field_name='team', value='Backend'; "+
				"employees who know Python -> field_name='skills', value='Python', operator='contains'; "+
				"more than 5 years of experience -> field_name='years_of_experience', value='5', operator='greater_than'.",
			store.SearchEmployees),
		newDatasetDescriptor(ToolSearchTickets,
			"Search JIRA tickets by a field/value pair with an optional comparison operator. "+
				"Fields: id, summary, description, assignee, reporter, status, priority, story_points, "+
				"sprint, epic, labels, created_date, updated_date, due_date, component, estimated_hours, "+
				"time_spent_hours, blocked, blocker_reason, linked_tickets, comments_count. "+
				"Examples: open tickets -> field_name='status', value='Open'; "+
				"blocked tickets -> field_name='blocked', value='true'.",
			store.SearchTickets),
		newDatasetDescriptor(ToolSearchDeployments,
			"Search deployment history by a field/value pair with an optional comparison operator. "+
				"Fields: id, service, version, date, status, environment, deployed_by, duration_minutes, "+
				"rollback_available, health_check_passed, commit_sha, jira_tickets, notes, error_message. "+
				"Examples: failed deployments -> field_name='status', value='Failed'; "+
				"production deployments -> field_name='environment', value='production'.",
			store.SearchDeployments),
		newDatasetDescriptor(ToolSearchProjects,
			"Search projects by a field/value pair with an optional comparison operator. "+
				"Fields: id, name, key, description, status, lead, team, start_date, target_completion, "+
				"progress_percentage, budget_hours, consumed_hours, epics, repositories, tech_stack, priority. "+
				"Examples: active projects -> field_name='status', value='active'; "+
				"projects using Go -> field_name='tech_stack', value='Go', operator='contains'.",
			store.SearchProjects),
		newDatasetDescriptor(ToolSearchSprints,
			"Search sprints by a field/value pair with an optional comparison operator. "+
				"Fields: id, name, start_date, end_date, status, goal, total_story_points, "+
				"completed_story_points, team_velocity, tickets, burndown, retrospective_notes. "+
				"Examples: Sprint 24 details -> field_name='name', value='Sprint 24'; "+
				"velocity above 30 -> field_name='team_velocity', value='30', operator='greater_than'.",
			store.SearchSprints),
		newDatasetDescriptor(ToolSearchMeetings,
			"Search meetings by a field/value pair with an optional comparison operator. "+
				"Fields: id, title, type, date, duration_minutes, attendees, agenda, notes, action_items. "+
				"Meeting types: sprint-planning, retrospective, standup, technical, security, team-sync, post-mortem. "+
				"Examples: sprint planning meetings -> field_name='type', value='sprint-planning'; "+
				"meetings Lina attended -> field_name='attendees', value='Lina', operator='contains'.",
			store.SearchMeetings),
		newDatasetDescriptor(ToolSearchServices,
			"Search services and microservices by a field/value pair with an optional comparison operator. "+
				"Fields: id, name, type, description, repository, tech_stack, owner_team, primary_maintainer, "+
				"status, uptime_percentage, avg_response_time_ms, request_per_day, production_url, staging_url, "+
				"current_version, deployment_frequency, last_deployment, dependencies, monitoring_dashboard, documentation. "+
				"Examples: Backend-owned services -> field_name='owner_team', value='Backend'; "+
				"uptime above 99.9 -> field_name='uptime_percentage', value='99.9', operator='greater_than'.",
			store.SearchServices),
	}
}
