package schema

import "strings"

// Enum is a fixed domain of legal values for a categorical field.
type Enum struct {
	Name   string
	Values []string
}

func newEnum(name string, values ...string) *Enum {
	return &Enum{Name: name, Values: values}
}

// Contains reports whether v is in the domain. Matching is case-sensitive.
func (e *Enum) Contains(v string) bool {
	for _, x := range e.Values {
		if x == v {
			return true
		}
	}
	return false
}

func (e *Enum) String() string {
	return e.Name + "(" + strings.Join(e.Values, ", ") + ")"
}

var (
	Priority = newEnum("Priority", "LOW", "MEDIUM", "HIGH", "CRITICAL")

	UserRole      = newEnum("UserRole", "ADMIN", "DEVELOPER", "TESTER", "MANAGER")
	ProjectStatus = newEnum("ProjectStatus", "PLANNING", "ACTIVE", "ON_HOLD", "COMPLETED", "CANCELLED")
	ProjectRole   = newEnum("ProjectRole", "OWNER", "MANAGER", "DEVELOPER", "TESTER")
	TeamRole      = newEnum("TeamRole", "LEADER", "MEMBER")
	TeamStatus    = newEnum("TeamStatus", "ACTIVE", "INACTIVE")

	PhaseType    = newEnum("PhaseType", "REQUIREMENTS", "DESIGN", "DEVELOPMENT", "TESTING", "DEPLOYMENT", "MAINTENANCE")
	PhaseStatus  = newEnum("PhaseStatus", "NOT_STARTED", "IN_PROGRESS", "COMPLETED", "BLOCKED")
	SprintStatus = newEnum("SprintStatus", "PLANNED", "ACTIVE", "COMPLETED", "CANCELLED")

	FeatureStatus = newEnum("FeatureStatus", "BACKLOG", "TODO", "IN_PROGRESS", "IN_REVIEW", "DONE", "CANCELLED")
	BugStatus     = newEnum("BugStatus", "OPEN", "IN_PROGRESS", "RESOLVED", "CLOSED", "REOPENED")
	Severity      = newEnum("Severity", "LOW", "MEDIUM", "HIGH", "CRITICAL")
	TaskStatus    = newEnum("TaskStatus", "TODO", "IN_PROGRESS", "IN_REVIEW", "COMPLETED", "BLOCKED")

	TestType            = newEnum("TestType", "FUNCTIONAL", "INTEGRATION", "PERFORMANCE", "SECURITY", "UNIT", "E2E")
	TestCaseStatus      = newEnum("TestCaseStatus", "DRAFT", "ACTIVE", "DEPRECATED")
	TestExecutionStatus = newEnum("TestExecutionStatus", "PASSED", "FAILED", "BLOCKED", "SKIPPED", "NOT_EXECUTED")

	DocumentType   = newEnum("DocumentType", "REQUIREMENTS", "DESIGN", "TECHNICAL", "API", "USER_GUIDE", "TEST_PLAN", "RELEASE_NOTES", "OTHER")
	DocumentStatus = newEnum("DocumentStatus", "DRAFT", "IN_REVIEW", "PUBLISHED", "ARCHIVED")

	ReleaseStatus    = newEnum("ReleaseStatus", "DRAFT", "SCHEDULED", "PUBLISHED", "ROLLED_BACK")
	EnvironmentType  = newEnum("EnvironmentType", "DEVELOPMENT", "TESTING", "STAGING", "PRODUCTION")
	DeploymentStatus = newEnum("DeploymentStatus", "PENDING", "IN_PROGRESS", "COMPLETED", "FAILED", "ROLLED_BACK")
	MetricType       = newEnum("MetricType", "PERCENTAGE", "DURATION", "COUNT", "RATIO", "CURRENCY")

	IntegrationType   = newEnum("IntegrationType", "GITHUB", "GITLAB", "SLACK", "JIRA", "JENKINS", "CUSTOM")
	IntegrationStatus = newEnum("IntegrationStatus", "ACTIVE", "INACTIVE", "ERROR")
	LogLevel          = newEnum("LogLevel", "DEBUG", "INFO", "WARN", "ERROR")
	CustomFieldType   = newEnum("CustomFieldType", "TEXT", "NUMBER", "SELECT", "MULTI_SELECT", "DATE", "BOOLEAN")

	NotificationType = newEnum("NotificationType",
		"TASK_ASSIGNED", "TASK_UPDATED", "CODE_REVIEW_REQUESTED", "PHASE_COMPLETED",
		"DEADLINE_APPROACHING", "COMMENT_MENTION", "DOCUMENT_PUBLISHED",
		"DEPLOYMENT_COMPLETED", "RELEASE_PUBLISHED")
	ActivityType   = newEnum("ActivityType", "SYSTEM", "CREATE", "UPDATE", "DELETE", "COMMENT", "CODE_REVIEW")
	Methodology    = newEnum("Methodology", "SCRUM", "KANBAN", "WATERFALL", "HYBRID")
	TemplateStatus = newEnum("TemplateStatus", "DRAFT", "ACTIVE", "ARCHIVED")
)

// EntityType is the domain of polymorphic targets. Each value names exactly
// one entity; see TargetOf.
var EntityType = newEnum("EntityType",
	"PROJECT", "PHASE", "SPRINT", "FEATURE", "BUG", "TASK",
	"TEST_CASE", "DOCUMENT", "RELEASE", "DEPLOYMENT")

var polyTargets = map[string]string{
	"PROJECT":    "project",
	"PHASE":      "phase",
	"SPRINT":     "sprint",
	"FEATURE":    "feature",
	"BUG":        "bug",
	"TASK":       "task",
	"TEST_CASE":  "testCase",
	"DOCUMENT":   "document",
	"RELEASE":    "release",
	"DEPLOYMENT": "deployment",
}

// TargetOf maps an EntityType value to the entity it names.
func TargetOf(entityType string) (string, bool) {
	name, ok := polyTargets[entityType]
	return name, ok
}

// TypeOf maps an entity name back to its EntityType value.
func TypeOf(entity string) (string, bool) {
	for k, v := range polyTargets {
		if v == entity {
			return k, true
		}
	}
	return "", false
}
