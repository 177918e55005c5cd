package schema

func str(name string) Field       { return Field{Name: name, Kind: KindString} }
func text(name string) Field      { return Field{Name: name, Kind: KindText} }
func integer(name string) Field   { return Field{Name: name, Kind: KindInt} }
func number(name string) Field    { return Field{Name: name, Kind: KindFloat} }
func timestamp(name string) Field { return Field{Name: name, Kind: KindTime} }
func blob(name string) Field      { return Field{Name: name, Kind: KindJSON} }
func list(name string) Field      { return Field{Name: name, Kind: KindStringList} }

func flag(name string, def bool) Field {
	return Field{Name: name, Kind: KindBool, Default: def}
}

func enum(name string, e *Enum, def string) Field {
	f := Field{Name: name, Kind: KindEnum, Enum: e}
	if def != "" {
		f.Default = def
	}
	return f
}

func ref(name, target string) Field {
	return Field{Name: name, Kind: KindRef, Ref: target}
}

func (f Field) req() Field               { f.Required = true; return f }
func (f Field) fixed() Field             { f.Immutable = true; return f }
func (f Field) format(tag string) Field  { f.Format = tag; return f }
func (f Field) column(name string) Field { f.Column = name; return f }

var (
	Organization = register(&Entity{
		Name: "organization", Table: "organizations", Prefix: "org",
		Fields: []Field{
			str("name").req(),
			str("slug").req().fixed(),
			text("description"),
			str("logo").format("url"),
			str("website").format("url"),
			flag("isActive", true),
			blob("settings"),
			blob("metadata"),
		},
		Unique: [][]string{{"slug"}},
	})

	User = register(&Entity{
		Name: "user", Table: "users", Prefix: "user",
		Fields: []Field{
			str("email").req().format("email"),
			str("name"),
			enum("role", UserRole, "DEVELOPER"),
			flag("isActive", true),
			str("title"),
			str("department"),
			ref("organizationId", "organization"),
			blob("preferences"),
			blob("metadata"),
		},
		Unique: [][]string{{"email"}},
	})

	Session = register(&Entity{
		Name: "session", Table: "sessions", Prefix: "sess",
		Fields: []Field{
			str("sessionToken").req().fixed(),
			ref("userId", "user").req().fixed(),
			timestamp("expires").req(),
		},
		Unique: [][]string{{"sessionToken"}},
	})

	Team = register(&Entity{
		Name: "team", Table: "teams", Prefix: "team",
		Fields: []Field{
			str("name").req(),
			text("description"),
			enum("status", TeamStatus, "ACTIVE"),
			ref("organizationId", "organization").req(),
			ref("projectId", "project"),
			ref("leadId", "user"),
			blob("metadata"),
		},
	})

	TeamMember = register(&Entity{
		Name: "teamMember", Table: "team_members", Prefix: "tm",
		Fields: []Field{
			ref("teamId", "team").req().fixed(),
			ref("userId", "user").req().fixed(),
			enum("role", TeamRole, "MEMBER"),
			timestamp("joinedAt"),
		},
		Unique: [][]string{{"teamId", "userId"}},
	})

	Project = register(&Entity{
		Name: "project", Table: "projects", Prefix: "proj",
		Fields: []Field{
			str("name").req(),
			str("slug").req().fixed(),
			text("description"),
			enum("status", ProjectStatus, "PLANNING"),
			enum("priority", Priority, "MEDIUM"),
			ref("ownerId", "user").req(),
			ref("organizationId", "organization").req().fixed(),
			timestamp("startDate"),
			timestamp("endDate"),
			number("budget"),
			str("repository"),
			blob("settings"),
			blob("metadata"),
		},
		Unique: [][]string{{"slug"}},
	})

	ProjectMember = register(&Entity{
		Name: "projectMember", Table: "project_members", Prefix: "pm",
		Fields: []Field{
			ref("projectId", "project").req().fixed(),
			ref("userId", "user").req().fixed(),
			enum("role", ProjectRole, "").req(),
			blob("permissions"),
		},
		Unique: [][]string{{"projectId", "userId"}},
	})

	Phase = register(&Entity{
		Name: "phase", Table: "phases", Prefix: "phase",
		Fields: []Field{
			str("name").req(),
			text("description"),
			ref("projectId", "project").req().fixed(),
			enum("type", PhaseType, "").req(),
			integer("order").req().column("sort_order"),
			enum("status", PhaseStatus, "NOT_STARTED"),
			timestamp("startDate"),
			timestamp("endDate"),
			ref("dependsOnId", "phase"),
			blob("metadata"),
		},
		Unique: [][]string{{"projectId", "order"}},
	})

	Sprint = register(&Entity{
		Name: "sprint", Table: "sprints", Prefix: "sprint",
		Fields: []Field{
			str("name").req(),
			text("description"),
			enum("status", SprintStatus, "PLANNED"),
			text("goal"),
			timestamp("startDate"),
			timestamp("endDate"),
			integer("capacity"),
			integer("commitment"),
			ref("projectId", "project").req(),
		},
	})

	Feature = register(&Entity{
		Name: "feature", Table: "features", Prefix: "feat",
		Fields: []Field{
			str("title").req(),
			text("description"),
			enum("status", FeatureStatus, "BACKLOG"),
			enum("priority", Priority, "MEDIUM"),
			integer("storyPoints"),
			integer("businessValue"),
			text("acceptanceCriteria"),
			ref("assignedUserId", "user"),
			ref("projectId", "project").req(),
			ref("sprintId", "sprint"),
			ref("parentFeatureId", "feature"),
			list("labels"),
			blob("tags"),
			timestamp("completedAt"),
		},
	})

	Task = register(&Entity{
		Name: "task", Table: "tasks", Prefix: "task",
		Fields: []Field{
			str("title").req(),
			text("description"),
			enum("status", TaskStatus, "TODO"),
			enum("priority", Priority, "MEDIUM"),
			ref("projectId", "project").req(),
			ref("phaseId", "phase").req(),
			ref("featureId", "feature"),
			ref("assignedToId", "user"),
			ref("creatorId", "user"),
			number("estimatedHours"),
			timestamp("dueDate"),
			timestamp("completedAt"),
			blob("metadata"),
		},
	})

	TimeEntry = register(&Entity{
		Name: "timeEntry", Table: "time_entries", Prefix: "time",
		Fields: []Field{
			ref("userId", "user").req(),
			ref("projectId", "project").req(),
			ref("taskId", "task").req(),
			integer("duration").req(),
			text("description"),
			timestamp("date").req(),
		},
	})

	Bug = register(&Entity{
		Name: "bug", Table: "bugs", Prefix: "bug",
		Fields: []Field{
			str("title").req(),
			text("description"),
			enum("status", BugStatus, "OPEN"),
			enum("severity", Severity, "MEDIUM"),
			enum("priority", Priority, "MEDIUM"),
			text("stepsToReproduce"),
			text("expectedBehavior"),
			text("actualBehavior"),
			str("environment"),
			text("resolution"),
			ref("assignedUserId", "user"),
			ref("reportedUserId", "user"),
			ref("projectId", "project").req(),
			ref("sprintId", "sprint"),
			ref("featureId", "feature"),
			list("labels"),
			blob("tags"),
			timestamp("resolvedAt"),
			timestamp("closedAt"),
		},
	})

	TestSuite = register(&Entity{
		Name: "testSuite", Table: "test_suites", Prefix: "suite",
		Fields: []Field{
			str("name").req(),
			text("description"),
			ref("projectId", "project").req(),
			blob("metadata"),
		},
	})

	TestCase = register(&Entity{
		Name: "testCase", Table: "test_cases", Prefix: "tc",
		Fields: []Field{
			str("title").req(),
			text("description"),
			enum("type", TestType, "FUNCTIONAL"),
			enum("priority", Priority, "MEDIUM"),
			enum("status", TestCaseStatus, "DRAFT"),
			ref("projectId", "project").req(),
			ref("suiteId", "testSuite").req(),
			ref("featureId", "feature"),
			ref("createdById", "user"),
			text("expected"),
			list("steps"),
			blob("metadata"),
		},
	})

	TestExecution = register(&Entity{
		Name: "testExecution", Table: "test_executions", Prefix: "exec",
		Fields: []Field{
			ref("testCaseId", "testCase").req().fixed(),
			enum("status", TestExecutionStatus, "NOT_EXECUTED"),
			ref("executedById", "user"),
			str("environment"),
			timestamp("startedAt"),
			timestamp("completedAt"),
			text("notes"),
			list("defects"),
		},
	})

	Document = register(&Entity{
		Name: "document", Table: "documents", Prefix: "doc",
		Fields: []Field{
			str("title").req(),
			text("content"),
			enum("type", DocumentType, "OTHER"),
			enum("status", DocumentStatus, "DRAFT"),
			str("version"),
			ref("projectId", "project").req(),
			ref("phaseId", "phase"),
			ref("createdById", "user").req(),
			list("tags"),
			blob("metadata"),
			timestamp("publishedAt"),
		},
	})

	Comment = register(&Entity{
		Name: "comment", Table: "comments", Prefix: "cmt",
		Fields: []Field{
			text("content").req(),
			ref("userId", "user").req(),
			ref("projectId", "project"),
			enum("entityType", EntityType, "").req(),
			str("entityId").req(),
			blob("metadata"),
		},
		Poly: &Poly{TypeField: "entityType", IDField: "entityId", Required: true},
	})

	Attachment = register(&Entity{
		Name: "attachment", Table: "attachments", Prefix: "att",
		Fields: []Field{
			str("name").req(),
			str("type").req(),
			str("url").req().format("url"),
			integer("size"),
			ref("userId", "user").req(),
			enum("entityType", EntityType, "").req(),
			str("entityId").req(),
			blob("metadata"),
		},
		Poly: &Poly{TypeField: "entityType", IDField: "entityId", Required: true},
	})

	Notification = register(&Entity{
		Name: "notification", Table: "notifications", Prefix: "notif",
		Fields: []Field{
			enum("type", NotificationType, "").req(),
			str("title").req(),
			text("message").req(),
			flag("read", false).column("is_read"),
			ref("userId", "user").req(),
			ref("projectId", "project"),
			enum("entityType", EntityType, ""),
			str("entityId"),
			blob("metadata"),
		},
		Poly: &Poly{TypeField: "entityType", IDField: "entityId"},
	})

	Release = register(&Entity{
		Name: "release", Table: "releases", Prefix: "rel",
		Fields: []Field{
			str("version").req(),
			str("name").req(),
			text("description"),
			enum("status", ReleaseStatus, "DRAFT"),
			ref("projectId", "project").req().fixed(),
			ref("createdById", "user"),
			timestamp("releaseDate"),
			text("notes"),
			blob("metadata"),
		},
		Unique: [][]string{{"projectId", "version"}},
	})

	Environment = register(&Entity{
		Name: "environment", Table: "environments", Prefix: "env",
		Fields: []Field{
			str("name").req(),
			text("description"),
			enum("type", EnvironmentType, "").req(),
			str("url").format("url"),
			ref("projectId", "project").req(),
			blob("config"),
			blob("variables"),
		},
	})

	Deployment = register(&Entity{
		Name: "deployment", Table: "deployments", Prefix: "dep",
		Fields: []Field{
			str("version").req(),
			enum("status", DeploymentStatus, "PENDING"),
			ref("projectId", "project").req(),
			ref("environmentId", "environment").req(),
			ref("releaseId", "release"),
			timestamp("startTime"),
			timestamp("endTime"),
			text("logs"),
			blob("metadata"),
		},
	})

	Metric = register(&Entity{
		Name: "metric", Table: "metrics", Prefix: "metric",
		Fields: []Field{
			str("name").req(),
			text("description"),
			enum("type", MetricType, "").req(),
			number("value").req(),
			number("target"),
			str("unit"),
			ref("projectId", "project").req(),
			blob("metadata"),
		},
	})

	Integration = register(&Entity{
		Name: "integration", Table: "integrations", Prefix: "int",
		Fields: []Field{
			str("name").req(),
			enum("type", IntegrationType, "").req(),
			enum("status", IntegrationStatus, "ACTIVE"),
			ref("projectId", "project").req(),
			ref("createdById", "user"),
			blob("config"),
			blob("metadata"),
		},
	})

	IntegrationLog = register(&Entity{
		Name: "integrationLog", Table: "integration_logs", Prefix: "ilog",
		Fields: []Field{
			ref("integrationId", "integration").req().fixed(),
			enum("level", LogLevel, "INFO"),
			text("message").req(),
			blob("metadata"),
		},
	})

	Webhook = register(&Entity{
		Name: "webhook", Table: "webhooks", Prefix: "hook",
		Fields: []Field{
			str("name").req(),
			str("url").req().format("url"),
			list("events"),
			str("secret"),
			enum("status", IntegrationStatus, "ACTIVE"),
			ref("projectId", "project").req(),
			ref("createdById", "user"),
			blob("metadata"),
		},
	})

	CustomField = register(&Entity{
		Name: "customField", Table: "custom_fields", Prefix: "cf",
		Fields: []Field{
			str("name").req(),
			enum("type", CustomFieldType, "").req().fixed(),
			enum("entityType", EntityType, "").req().fixed(),
			ref("projectId", "project").req(),
			ref("createdById", "user"),
			list("options"),
			blob("defaultValue"),
			number("minValue"),
			number("maxValue"),
			flag("isRequired", false),
			integer("order").column("sort_order"),
			blob("metadata"),
		},
	})

	CustomFieldValue = register(&Entity{
		Name: "customFieldValue", Table: "custom_field_values", Prefix: "cfv",
		Fields: []Field{
			ref("customFieldId", "customField").req().fixed(),
			enum("entityType", EntityType, "").req().fixed(),
			str("entityId").req().fixed(),
			blob("value"),
		},
		Unique: [][]string{{"customFieldId", "entityType", "entityId"}},
		Poly:   &Poly{TypeField: "entityType", IDField: "entityId", Required: true},
	})

	AutomationRule = register(&Entity{
		Name: "automationRule", Table: "automation_rules", Prefix: "auto",
		Fields: []Field{
			str("name").req(),
			text("description"),
			blob("trigger").req().column("trigger_def"),
			blob("actions").req(),
			flag("isActive", true),
			ref("projectId", "project").req(),
			ref("createdById", "user"),
			blob("metadata"),
		},
	})

	ActivityLog = register(&Entity{
		Name: "activityLog", Table: "activity_logs", Prefix: "act",
		Fields: []Field{
			enum("type", ActivityType, "SYSTEM"),
			text("description").req(),
			ref("userId", "user"),
			ref("projectId", "project"),
			enum("entityType", EntityType, ""),
			str("entityId"),
			blob("metadata"),
		},
		Poly: &Poly{TypeField: "entityType", IDField: "entityId"},
	})

	WorkflowTemplate = register(&Entity{
		Name: "workflowTemplate", Table: "workflow_templates", Prefix: "wf",
		Fields: []Field{
			str("name").req(),
			text("description"),
			str("category"),
			enum("methodology", Methodology, ""),
			enum("status", TemplateStatus, "ACTIVE"),
			blob("phases"),
			blob("metadata"),
		},
		Unique: [][]string{{"name"}},
	})
)
