package seed

import (
	"fmt"
	"strings"
	"time"
)

type m = map[string]any

func rec(entity string, values m, children ...Record) Record {
	return Record{Entity: entity, Values: values, Children: children}
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func slugify(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "-")
}

// createWithLog returns r with an activity log child recording its creation
// by actor. The log is tied to r when r's entity is a polymorphic target.
func createWithLog(r Record, actor, description string) Record {
	log := m{
		"id":          "act_" + r.ID(),
		"type":        "CREATE",
		"description": description,
		"metadata":    m{"entity": r.Entity, "id": r.ID()},
	}
	if actor != "" {
		log["userId"] = actor
	}
	if p, ok := r.Values["projectId"].(string); ok {
		log["projectId"] = p
	} else if r.Entity == "project" {
		log["projectId"] = r.ID()
	}
	if t, ok := entityTypes[r.Entity]; ok {
		log["entityType"] = t
		log["entityId"] = r.ID()
	}
	r.Children = append(r.Children, rec("activityLog", log))
	return r
}

// withIntegrationLogs appends integration log children to an integration.
func withIntegrationLogs(r Record, messages ...string) Record {
	for i, msg := range messages {
		r.Children = append(r.Children, rec("integrationLog", m{
			"id":            fmt.Sprintf("ilog_%s_%d", r.ID(), i+1),
			"integrationId": r.ID(),
			"level":         "INFO",
			"message":       msg,
		}))
	}
	return r
}

var entityTypes = map[string]string{
	"project": "PROJECT", "phase": "PHASE", "sprint": "SPRINT", "feature": "FEATURE",
	"bug": "BUG", "task": "TASK", "testCase": "TEST_CASE", "document": "DOCUMENT",
	"release": "RELEASE", "deployment": "DEPLOYMENT",
}

// Fixtures returns the sample data set. Times that matter for validity, such
// as session expiry, are relative to now.
func Fixtures(now time.Time) []Group {
	return []Group{
		organizations(),
		users(now),
		teams(now),
		projects(),
		phases(),
		features(),
		tasks(now),
		bugs(),
		testSuites(),
		testCases(now),
		codeReviews(now),
		documents(now),
		notifications(),
		releases(),
		environments(),
		metrics(),
		workflowTemplates(),
		integrations(),
		webhooks(),
		customFields(),
		automationRules(),
	}
}

func organizations() Group {
	org := func(id, name, desc, industry, size, founded, hq, email string) Record {
		return rec("organization", m{
			"id":          id,
			"name":        name,
			"slug":        slugify(name),
			"description": desc,
			"logo":        "https://example.com/logos/" + strings.ToLower(strings.Fields(name)[0]) + ".png",
			"website":     "https://" + strings.ToLower(strings.Fields(name)[0]) + ".example.com",
			"isActive":    true,
			"settings": m{
				"theme":         "light",
				"features":      m{"codeReview": true, "continuousIntegration": true, "automatedTesting": true, "deploymentAutomation": true},
				"security":      m{"twoFactorAuth": true, "ipWhitelist": []string{"192.168.1.0/24"}, "sessionTimeout": 3600},
				"notifications": m{"email": true, "slack": true, "webhook": true},
			},
			"metadata": m{
				"industry": industry, "size": size, "founded": founded, "headquarters": hq,
				"contact": m{"email": email},
			},
		})
	}
	return Group{Name: "organizations", Records: []Record{
		org("org_1", "TechCorp Solutions", "Leading technology solutions provider",
			"Technology", "Enterprise", "2010", "San Francisco, CA", "contact@techcorp.example.com"),
		org("org_2", "InnovateSoft", "Innovative software development company",
			"Software Development", "Mid-size", "2015", "New York, NY", "info@innovatesoft.example.com"),
	}}
}

func users(now time.Time) Group {
	type u struct {
		id, email, name, role, dept, title, theme string
		active                                    bool
		skills                                    []string
		joined                                    string
	}
	all := []u{
		{"user_1", "john.doe@example.com", "John Doe", "ADMIN", "Engineering", "Tech Lead", "dark", true, []string{"JavaScript", "TypeScript", "Node.js", "React"}, "2023-01-01"},
		{"user_2", "jane.smith@example.com", "Jane Smith", "DEVELOPER", "Engineering", "Senior Developer", "light", true, []string{"Python", "Django", "PostgreSQL", "Docker"}, "2023-02-15"},
		{"user_3", "mike.wilson@example.com", "Mike Wilson", "TESTER", "Quality Assurance", "QA Engineer", "dark", true, []string{"Selenium", "Jest", "Cypress", "Postman"}, "2023-03-01"},
		{"user_4", "sarah.johnson@example.com", "Sarah Johnson", "MANAGER", "Project Management", "Project Manager", "light", true, []string{"Agile", "Scrum", "Jira", "Confluence"}, "2023-04-01"},
		{"user_5", "alex.brown@example.com", "Alex Brown", "DEVELOPER", "Engineering", "Junior Developer", "dark", false, []string{"JavaScript", "React", "HTML", "CSS"}, "2023-05-01"},
	}
	g := Group{Name: "users"}
	for _, x := range all {
		var children []Record
		if x.active {
			children = append(children, rec("session", m{
				"id":           "sess_" + x.id,
				"sessionToken": fmt.Sprintf("session_%s_%d", x.id, now.Unix()),
				"userId":       x.id,
				"expires":      now.Add(7 * 24 * time.Hour),
			}))
		}
		g.Records = append(g.Records, rec("user", m{
			"id":             x.id,
			"email":          x.email,
			"name":           x.name,
			"role":           x.role,
			"isActive":       x.active,
			"title":          x.title,
			"department":     x.dept,
			"organizationId": "org_1",
			"preferences": m{
				"theme":         x.theme,
				"notifications": m{"email": x.active, "push": x.active, "inApp": x.active},
				"language":      "en",
				"timezone":      "UTC",
			},
			"metadata": m{"skills": x.skills, "joinDate": x.joined},
		}, children...))
	}
	return g
}

func teams(now time.Time) Group {
	type t struct {
		id, name, desc, lead, focus string
		tech, members               []string
	}
	all := []t{
		{"team_1", "Frontend Team", "Responsible for user interface development", "user_1", "User Interface", []string{"React", "TypeScript", "Next.js"}, []string{"user_1", "user_2", "user_5"}},
		{"team_2", "Backend Team", "Responsible for server-side development", "user_2", "Server-side Development", []string{"Node.js", "Python", "PostgreSQL"}, []string{"user_2", "user_3"}},
		{"team_3", "QA Team", "Responsible for quality assurance and testing", "user_3", "Quality Assurance", []string{"Jest", "Cypress", "Selenium"}, []string{"user_3"}},
	}
	g := Group{Name: "teams"}
	for _, x := range all {
		var members []Record
		for _, uid := range x.members {
			role := "MEMBER"
			if uid == x.lead {
				role = "LEADER"
			}
			members = append(members, rec("teamMember", m{
				"id":       "tm_" + x.id + "_" + uid,
				"teamId":   x.id,
				"userId":   uid,
				"role":     role,
				"joinedAt": now,
			}))
		}
		g.Records = append(g.Records, rec("team", m{
			"id":             x.id,
			"name":           x.name,
			"description":    x.desc,
			"status":         "ACTIVE",
			"organizationId": "org_1",
			"projectId":      "proj_1",
			"leadId":         x.lead,
			"metadata":       m{"focus": x.focus, "technologies": x.tech},
		}, members...))
	}
	return g
}

func projects() Group {
	member := func(project, user, role string, manage bool) Record {
		return rec("projectMember", m{
			"id":          "pm_" + project + "_" + user,
			"projectId":   project,
			"userId":      user,
			"role":        role,
			"permissions": m{"canManageProject": manage, "canManageMembers": manage},
		})
	}
	p1 := createWithLog(rec("project", m{
		"id":             "proj_1",
		"name":           "E-commerce Platform",
		"slug":           "e-commerce-platform",
		"description":    "Modern e-commerce platform with advanced features",
		"status":         "ACTIVE",
		"priority":       "HIGH",
		"ownerId":        "user_1",
		"organizationId": "org_1",
		"startDate":      date("2024-01-01"),
		"endDate":        date("2024-12-31"),
		"budget":         500000,
		"repository":     "https://github.com/org/e-commerce-platform",
		"settings":       m{"visibility": "PRIVATE", "defaultBranch": "main", "requireCodeReview": true, "requireTests": true},
		"metadata":       m{"type": "WEB_APPLICATION", "industry": "Retail", "technologies": []string{"React", "Node.js", "PostgreSQL"}},
	},
		member("proj_1", "user_1", "OWNER", true),
		member("proj_1", "user_2", "DEVELOPER", false),
		member("proj_1", "user_3", "TESTER", false),
		member("proj_1", "user_4", "MANAGER", true),
	), "user_1", "Project created: E-commerce Platform")

	p2 := createWithLog(rec("project", m{
		"id":             "proj_2",
		"name":           "Mobile Banking App",
		"slug":           "mobile-banking-app",
		"description":    "Secure and user-friendly mobile banking application",
		"status":         "PLANNING",
		"ownerId":        "user_2",
		"organizationId": "org_1",
		"startDate":      date("2024-04-01"),
		"endDate":        date("2025-03-31"),
		"budget":         750000,
		"repository":     "https://github.com/org/mobile-banking-app",
		"settings":       m{"visibility": "PRIVATE", "defaultBranch": "main", "requireCodeReview": true, "requireTests": true},
		"metadata":       m{"type": "MOBILE_APPLICATION", "industry": "Finance", "technologies": []string{"React Native", "Node.js", "MongoDB"}},
	},
		member("proj_2", "user_2", "OWNER", true),
		member("proj_2", "user_1", "DEVELOPER", false),
	), "user_2", "Project created: Mobile Banking App")

	return Group{Name: "projects", Records: []Record{p1, p2}}
}

func phases() Group {
	type p struct {
		id, name, desc, typ, status, start, end string
		deliverables                            []string
	}
	all := []p{
		{"phase_1", "Planning", "Initial project planning and requirements gathering", "REQUIREMENTS", "COMPLETED", "2024-01-01", "2024-01-31", []string{"Project Charter", "Requirements Document", "Project Plan"}},
		{"phase_2", "Design", "System architecture and UI/UX design", "DESIGN", "IN_PROGRESS", "2024-02-01", "2024-02-28", []string{"System Architecture Document", "UI/UX Design Mockups", "Database Schema"}},
		{"phase_3", "Development", "Core feature development and implementation", "DEVELOPMENT", "NOT_STARTED", "2024-03-01", "2024-06-30", []string{"Frontend Implementation", "Backend Services", "API Integration"}},
		{"phase_4", "Testing", "Quality assurance and testing", "TESTING", "NOT_STARTED", "2024-07-01", "2024-08-31", []string{"Test Plans", "Test Cases", "Bug Reports"}},
		{"phase_5", "Deployment", "Production deployment and launch", "DEPLOYMENT", "NOT_STARTED", "2024-09-01", "2024-09-30", []string{"Deployment Plan", "Release Notes", "Production Environment"}},
	}
	g := Group{Name: "phases"}
	for i, x := range all {
		v := m{
			"id":          x.id,
			"name":        x.name,
			"description": x.desc,
			"projectId":   "proj_1",
			"type":        x.typ,
			"order":       i + 1,
			"status":      x.status,
			"startDate":   date(x.start),
			"endDate":     date(x.end),
			"metadata":    m{"deliverables": x.deliverables},
		}
		if i > 0 {
			v["dependsOnId"] = all[i-1].id
		}
		g.Records = append(g.Records, rec("phase", v))
	}
	g.Records = append(g.Records,
		rec("sprint", m{
			"id": "sprint_1", "name": "Sprint 1", "projectId": "proj_1", "status": "ACTIVE",
			"goal":      "Ship authentication and the product catalog",
			"startDate": date("2024-03-01"), "endDate": date("2024-03-14"), "capacity": 40, "commitment": 34,
		}),
		rec("sprint", m{
			"id": "sprint_2", "name": "Sprint 2", "projectId": "proj_1", "status": "PLANNED",
			"goal":      "Cart and payments",
			"startDate": date("2024-03-15"), "endDate": date("2024-03-28"), "capacity": 40,
		}),
	)
	return g
}

func features() Group {
	type f struct {
		id, title, desc, status, priority, user, kind string
		points                                        int
	}
	all := []f{
		{"feat_1", "User Authentication", "Implement user registration, login, and password reset", "IN_PROGRESS", "HIGH", "user_1", "CORE", 8},
		{"feat_2", "Product Catalog", "Browse and search products with filters", "BACKLOG", "HIGH", "user_2", "CORE", 13},
		{"feat_3", "Shopping Cart", "Add, update and remove cart items", "BACKLOG", "HIGH", "user_2", "CORE", 8},
		{"feat_4", "Payment Integration", "Integrate the payment gateway", "BACKLOG", "CRITICAL", "user_1", "CORE", 13},
		{"feat_5", "User Reviews", "Let customers rate and review products", "BACKLOG", "MEDIUM", "user_3", "ENHANCEMENT", 5},
	}
	g := Group{Name: "features"}
	for _, x := range all {
		g.Records = append(g.Records, rec("feature", m{
			"id":             x.id,
			"title":          x.title,
			"description":    x.desc,
			"projectId":      "proj_1",
			"sprintId":       "sprint_1",
			"status":         x.status,
			"priority":       x.priority,
			"assignedUserId": x.user,
			"storyPoints":    x.points,
			"labels":         []string{strings.ToLower(x.kind)},
			"tags":           m{"type": x.kind},
		}))
	}
	return g
}

func tasks(now time.Time) Group {
	type t struct {
		id, title, desc, phase, feature, status, priority, user, kind string
		hours                                                         int
		deliverables                                                  []string
	}
	all := []t{
		{"task_1", "Database Schema Design", "Design the relational schema", "phase_2", "", "COMPLETED", "HIGH", "user_2", "DESIGN", 16, []string{"ERD Diagram", "Schema Documentation"}},
		{"task_2", "API Endpoints Implementation", "Implement the REST endpoints", "phase_3", "feat_1", "IN_PROGRESS", "HIGH", "user_1", "DEVELOPMENT", 24, []string{"API Documentation", "Unit Tests", "Integration Tests"}},
		{"task_3", "Frontend Components Development", "Build reusable UI components", "phase_3", "feat_2", "TODO", "HIGH", "user_2", "DEVELOPMENT", 32, []string{"Component Library", "Storybook Stories"}},
		{"task_4", "Payment Gateway Integration", "Integrate the payment provider", "phase_3", "feat_4", "TODO", "CRITICAL", "user_1", "INTEGRATION", 40, []string{"Integration Guide", "Security Review"}},
		{"task_5", "Performance Testing", "Load and stress test the platform", "phase_4", "", "TODO", "HIGH", "user_3", "TESTING", 24, []string{"Performance Test Report", "Load Test Results", "Optimization Recommendations"}},
	}
	g := Group{Name: "tasks"}
	for _, x := range all {
		var children []Record
		for i, c := range []string{"Initial setup for " + x.title, "Progress update: Started working on " + x.title} {
			children = append(children, rec("comment", m{
				"id":         fmt.Sprintf("cmt_%s_%d", x.id, i+1),
				"content":    c,
				"userId":     x.user,
				"projectId":  "proj_1",
				"entityType": "TASK",
				"entityId":   x.id,
			}))
		}
		for i, d := range x.deliverables {
			children = append(children, rec("attachment", m{
				"id":         fmt.Sprintf("att_%s_%d", x.id, i+1),
				"name":       d,
				"type":       "DOCUMENT",
				"url":        fmt.Sprintf("https://example.com/documents/%s/%s", x.id, slugify(d)),
				"size":       1024,
				"userId":     x.user,
				"entityType": "TASK",
				"entityId":   x.id,
			}))
		}
		if x.status == "IN_PROGRESS" || x.status == "COMPLETED" {
			children = append(children,
				rec("timeEntry", m{
					"id": "time_" + x.id + "_1", "userId": x.user, "projectId": "proj_1", "taskId": x.id,
					"duration": (x.hours / 2) * 60, "description": "Initial implementation", "date": now,
				}),
				rec("timeEntry", m{
					"id": "time_" + x.id + "_2", "userId": x.user, "projectId": "proj_1", "taskId": x.id,
					"duration": (x.hours / 4) * 60, "description": "Code review and fixes", "date": now,
				}),
			)
		}
		v := m{
			"id":             x.id,
			"title":          x.title,
			"description":    x.desc,
			"projectId":      "proj_1",
			"phaseId":        x.phase,
			"status":         x.status,
			"priority":       x.priority,
			"assignedToId":   x.user,
			"creatorId":      x.user,
			"estimatedHours": x.hours,
			"metadata":       m{"type": x.kind, "deliverables": x.deliverables},
		}
		if x.feature != "" {
			v["featureId"] = x.feature
		}
		if x.status == "COMPLETED" {
			v["completedAt"] = now.Add(-48 * time.Hour)
		}
		g.Records = append(g.Records, rec("task", v, children...))
	}
	return g
}

func bugs() Group {
	return Group{Name: "bugs", Records: []Record{
		rec("bug", m{
			"id": "bug_1", "title": "Login fails with uppercase email", "projectId": "proj_1",
			"featureId": "feat_1", "sprintId": "sprint_1", "severity": "HIGH", "priority": "HIGH",
			"assignedUserId": "user_1", "reportedUserId": "user_3",
			"stepsToReproduce": "Register as Foo@Example.com, log in as foo@example.com",
			"expectedBehavior": "Login succeeds", "actualBehavior": "Invalid credentials",
			"environment": "staging", "labels": []string{"auth"},
		}),
		rec("bug", m{
			"id": "bug_2", "title": "Search ignores category filter", "projectId": "proj_1",
			"featureId": "feat_2", "status": "IN_PROGRESS", "severity": "MEDIUM",
			"assignedUserId": "user_2", "reportedUserId": "user_3",
			"environment": "development", "labels": []string{"catalog"},
		}),
	}}
}

var suites = []struct{ id, name, desc, kind, priority, env string }{
	{"suite_1", "Authentication Test Suite", "Registration, login and password reset", "FUNCTIONAL", "HIGH", "staging"},
	{"suite_2", "Product Catalog Test Suite", "Catalog browsing and search", "FUNCTIONAL", "HIGH", "staging"},
	{"suite_3", "Shopping Cart Test Suite", "Cart operations", "FUNCTIONAL", "HIGH", "staging"},
	{"suite_4", "Payment Integration Test Suite", "Payment gateway flows", "INTEGRATION", "CRITICAL", "staging"},
	{"suite_5", "Performance Test Suite", "Load and stress scenarios", "PERFORMANCE", "HIGH", "performance"},
}

// testSuites creates every suite with three generic cases each.
func testSuites() Group {
	generic := []struct{ title, desc, expected string }{
		{"Basic Functionality Test", "Test basic functionality of the feature", "All basic functionality should work as expected"},
		{"Edge Cases Test", "Test edge cases and boundary conditions", "System should handle all edge cases correctly"},
		{"Error Handling Test", "Test error handling and recovery", "System should handle errors gracefully with appropriate messages"},
	}
	g := Group{Name: "testSuites"}
	for _, s := range suites {
		var cases []Record
		for i, c := range generic {
			cases = append(cases, rec("testCase", m{
				"id":          fmt.Sprintf("tc_%s_%d", s.id, i+1),
				"title":       c.title,
				"description": c.desc,
				"type":        "FUNCTIONAL",
				"priority":    "HIGH",
				"status":      "ACTIVE",
				"projectId":   "proj_1",
				"suiteId":     s.id,
				"createdById": "user_3",
				"expected":    c.expected,
				"steps":       []string{"Step 1", "Step 2", "Step 3"},
			}))
		}
		g.Records = append(g.Records, rec("testSuite", m{
			"id":          s.id,
			"name":        s.name,
			"description": s.desc,
			"projectId":   "proj_1",
			"metadata":    m{"type": s.kind, "priority": s.priority, "environment": s.env},
		}, cases...))
	}
	return g
}

// testCases creates the feature-specific cases and their executions.
func testCases(now time.Time) Group {
	type c struct {
		id, title, desc, kind, priority, feature, suite, expected string
		steps                                                     []string
	}
	all := []c{
		{"tc_1", "User Registration Test", "Verify user registration flow", "FUNCTIONAL", "HIGH", "feat_1", "suite_1", "User account is created and a verification email is sent", []string{"Open registration page", "Fill in valid details", "Submit the form"}},
		{"tc_2", "Product Search Test", "Verify product search", "FUNCTIONAL", "HIGH", "feat_2", "suite_2", "Matching products are listed", []string{"Open catalog", "Enter a search term", "Apply a category filter"}},
		{"tc_3", "Shopping Cart Operations Test", "Verify cart add, update and remove", "FUNCTIONAL", "HIGH", "feat_3", "suite_3", "Cart totals stay consistent", []string{"Add Laptop", "Add Mouse", "Change quantity", "Remove Mouse"}},
		{"tc_4", "Payment Processing Test", "Verify card payments end to end", "INTEGRATION", "CRITICAL", "feat_4", "suite_4", "Payment is captured and the order confirmed", []string{"Check out", "Pay by credit card", "Confirm order"}},
		{"tc_5", "Load Test", "Checkout under peak load", "PERFORMANCE", "HIGH", "feat_3", "suite_5", "p95 latency stays under 300ms at 1000 users", []string{"Ramp to 1000 users", "Hold for 10 minutes"}},
	}
	g := Group{Name: "testCases"}
	for _, x := range all {
		execs := []Record{
			rec("testExecution", m{
				"id": "exec_" + x.id + "_1", "testCaseId": x.id, "status": "PASSED", "executedById": "user_3",
				"environment": "staging", "notes": "Initial test run completed",
				"startedAt": now.Add(-7 * 24 * time.Hour), "completedAt": now.Add(-6 * 24 * time.Hour),
				"defects": []string{},
			}),
			rec("testExecution", m{
				"id": "exec_" + x.id + "_2", "testCaseId": x.id, "status": "NOT_EXECUTED", "executedById": "user_3",
				"environment": "staging", "notes": "Regression test run in progress",
				"startedAt": now,
			}),
		}
		g.Records = append(g.Records, createWithLog(rec("testCase", m{
			"id":          x.id,
			"title":       x.title,
			"description": x.desc,
			"type":        x.kind,
			"priority":    x.priority,
			"status":      "ACTIVE",
			"projectId":   "proj_1",
			"featureId":   x.feature,
			"suiteId":     x.suite,
			"createdById": "user_3",
			"expected":    x.expected,
			"steps":       x.steps,
		}, execs...), "user_3", "Test case created: "+x.title))
	}
	return g
}

// codeReviews records reviews as activity logs; reviews have no table of
// their own.
func codeReviews(now time.Time) Group {
	review := func(id, title, status, task, author, reviewer string, files []string) Record {
		return rec("activityLog", m{
			"id":          id,
			"type":        "CODE_REVIEW",
			"description": "Code review created: " + title,
			"userId":      author,
			"projectId":   "proj_1",
			"entityType":  "TASK",
			"entityId":    task,
			"metadata": m{
				"title":      title,
				"status":     status,
				"reviewerId": reviewer,
				"files":      files,
				"startedAt":  now,
				"reviewType": "standard",
			},
		})
	}
	return Group{Name: "codeReviews", Records: []Record{
		review("act_review_1", "Authentication Module Review", "IN_PROGRESS", "task_2", "user_3", "user_1",
			[]string{"src/auth/register.ts", "src/auth/login.ts"}),
		review("act_review_2", "API Endpoints Refactoring", "PENDING", "task_3", "user_2", "user_4",
			[]string{"src/api/routes.ts"}),
	}}
}

func documents(now time.Time) Group {
	type d struct {
		id, title, content, kind, status, phase, author, version string
		tags                                                     []string
	}
	all := []d{
		{"doc_1", "Project Requirements Specification", "# Project Requirements Specification\n\nRequirements for the E-commerce Platform project.", "REQUIREMENTS", "PUBLISHED", "phase_1", "user_1", "1.0", []string{"requirements", "specification"}},
		{"doc_2", "API Documentation", "# API Documentation\n\nREST endpoints of the platform.", "API", "PUBLISHED", "phase_2", "user_2", "1.0", []string{"api", "documentation"}},
		{"doc_3", "Test Plan", "# Test Plan\n\nScope, strategy and schedule of testing.", "TEST_PLAN", "DRAFT", "phase_3", "user_4", "0.1", []string{"testing", "qa"}},
	}
	g := Group{Name: "documents"}
	for _, x := range all {
		children := []Record{rec("comment", m{
			"id":         "cmt_" + x.id,
			"content":    "Great documentation! Please add more details about the security requirements.",
			"userId":     "user_2",
			"projectId":  "proj_1",
			"entityType": "DOCUMENT",
			"entityId":   x.id,
			"metadata":   m{"type": "feedback", "priority": "medium"},
		})}
		if x.kind == "REQUIREMENTS" {
			children = append(children, rec("attachment", m{
				"id":         "att_" + x.id,
				"name":       "Requirements Diagram",
				"type":       "image/png",
				"url":        "https://storage.example.com/diagrams/requirements.png",
				"size":       1024 * 1024,
				"userId":     x.author,
				"entityType": "DOCUMENT",
				"entityId":   x.id,
				"metadata":   m{"format": "PNG", "dimensions": "1920x1080"},
			}))
		}
		v := m{
			"id":          x.id,
			"title":       x.title,
			"content":     x.content,
			"type":        x.kind,
			"status":      x.status,
			"version":     x.version,
			"projectId":   "proj_1",
			"phaseId":     x.phase,
			"createdById": x.author,
			"tags":        x.tags,
		}
		if x.status == "PUBLISHED" {
			v["publishedAt"] = now
		}
		g.Records = append(g.Records, createWithLog(rec("document", v, children...), x.author, "Document created: "+x.title))
	}
	return g
}

func notifications() Group {
	n := func(id, kind, title, msg, user, entityType, entityID string) Record {
		v := m{
			"id":        id,
			"type":      kind,
			"title":     title,
			"message":   msg,
			"userId":    user,
			"projectId": "proj_1",
		}
		if entityType != "" {
			v["entityType"] = entityType
			v["entityId"] = entityID
		}
		return rec("notification", v)
	}
	return Group{Name: "notifications", Records: []Record{
		n("notif_1", "TASK_ASSIGNED", "New Task Assigned", "You have been assigned to API Endpoints Implementation", "user_3", "TASK", "task_2"),
		n("notif_2", "CODE_REVIEW_REQUESTED", "Code Review Request", "Mike requested your review on Authentication Module Review", "user_1", "TASK", "task_2"),
		n("notif_3", "PHASE_COMPLETED", "Phase Completed", "Planning phase has been completed", "user_1", "PHASE", "phase_1"),
		n("notif_4", "DEADLINE_APPROACHING", "Task Deadline Approaching", "Database Schema Design is due in 2 days", "user_1", "TASK", "task_1"),
		n("notif_5", "COMMENT_MENTION", "You were mentioned in a comment", "Jane mentioned you on Project Requirements Specification", "user_1", "DOCUMENT", "doc_1"),
		n("notif_6", "TASK_UPDATED", "Task Updated", "Frontend Components Development was updated", "user_4", "TASK", "task_3"),
		n("notif_7", "DOCUMENT_PUBLISHED", "Document Published", "API Documentation version 1.0 was published", "user_2", "DOCUMENT", "doc_2"),
	}}
}

// releases carries the deployments too; the graph places environments first.
func releases() Group {
	type r struct {
		id, version, name, desc, status, author, kind string
		date                                          time.Time
	}
	all := []r{
		{"rel_1", "1.0.0", "Initial Release", "First production release of the platform", "PUBLISHED", "user_1", "major", time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)},
		{"rel_2", "1.1.0", "Feature Update", "Cart improvements and bug fixes", "DRAFT", "user_2", "minor", time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)},
	}
	g := Group{Name: "releases"}
	for _, x := range all {
		dep := rec("deployment", m{
			"id":            "dep_" + x.id,
			"version":       x.version,
			"status":        "COMPLETED",
			"projectId":     "proj_1",
			"environmentId": "env_1",
			"releaseId":     x.id,
			"startTime":     x.date.Add(-time.Hour),
			"endTime":       x.date.Add(30 * time.Minute),
			"logs":          "Starting deployment\nRunning database migrations\nDeploying services\nDeployment completed successfully",
			"metadata":      m{"duration": "25 minutes", "success": true, "rollback": false, "affectedServices": []string{"backend", "frontend", "database"}},
		})
		g.Records = append(g.Records, createWithLog(rec("release", m{
			"id":          x.id,
			"version":     x.version,
			"name":        x.name,
			"description": x.desc,
			"status":      x.status,
			"projectId":   "proj_1",
			"createdById": x.author,
			"releaseDate": x.date,
			"metadata":    m{"type": x.kind},
		}, dep), x.author, "Release created: "+x.version))
	}
	return g
}

func environments() Group {
	env := func(id, name, kind, url string, replicas int) Record {
		return rec("environment", m{
			"id":          id,
			"name":        name,
			"description": name + " environment",
			"type":        kind,
			"url":         url,
			"projectId":   "proj_1",
			"config":      m{"infrastructure": m{"type": "kubernetes", "version": "1.24", "replicas": replicas}},
			"variables":   m{"NODE_ENV": strings.ToLower(name)},
		})
	}
	return Group{Name: "environments", Records: []Record{
		env("env_1", "Production", "PRODUCTION", "https://app.example.com", 3),
		env("env_2", "Staging", "STAGING", "https://staging.example.com", 2),
		env("env_3", "Development", "DEVELOPMENT", "https://dev.example.com", 1),
	}}
}

func metrics() Group {
	metric := func(id, name, kind, unit, category string, value, target float64) Record {
		return rec("metric", m{
			"id": id, "name": name, "type": kind, "projectId": "proj_1",
			"value": value, "target": target, "unit": unit,
			"metadata": m{"category": category},
		})
	}
	return Group{Name: "metrics", Records: []Record{
		metric("metric_1", "Code Coverage", "PERCENTAGE", "%", "Quality", 85.5, 90),
		metric("metric_2", "Build Time", "DURATION", "seconds", "Performance", 420, 300),
		metric("metric_3", "API Response Time", "DURATION", "ms", "Performance", 150, 100),
		metric("metric_4", "Bug Count", "COUNT", "bugs", "Quality", 12, 5),
		metric("metric_5", "Deployment Frequency", "COUNT", "deployments/week", "Delivery", 5, 7),
	}}
}

func workflowTemplates() Group {
	stage := func(name string, order int, tasks ...string) m {
		return m{"name": name, "order": order, "tasks": tasks}
	}
	return Group{Name: "workflowTemplates", Records: []Record{
		rec("workflowTemplate", m{
			"id": "wf_1", "name": "Standard Agile Workflow", "category": "SOFTWARE_DEVELOPMENT",
			"description": "Scrum workflow with two-week sprints", "methodology": "SCRUM",
			"phases": []m{
				stage("Backlog", 1, "Create User Story", "Estimate Story Points"),
				stage("Sprint Planning", 2, "Select Stories", "Create Sprint Backlog"),
				stage("Development", 3, "Implement Feature", "Write Tests", "Code Review"),
				stage("Testing", 4, "QA Testing", "Bug Fixing"),
				stage("Done", 5, "Documentation", "Deployment"),
			},
			"metadata": m{"sprintLength": "2 weeks"},
		}),
		rec("workflowTemplate", m{
			"id": "wf_2", "name": "Kanban Workflow", "category": "SOFTWARE_DEVELOPMENT",
			"description": "Continuous flow with WIP limits", "methodology": "KANBAN",
			"phases": []m{
				stage("To Do", 1),
				stage("In Progress", 2),
				stage("Review", 3),
				stage("Done", 4),
			},
			"metadata": m{"wipLimits": m{"In Progress": 3, "Review": 2}},
		}),
	}}
}

func integrations() Group {
	in := func(id, name, kind string, config m) Record {
		r := rec("integration", m{
			"id": id, "name": name, "type": kind, "status": "ACTIVE",
			"projectId": "proj_1", "createdById": "user_1", "config": config,
		})
		r = withIntegrationLogs(r,
			"Integration "+name+" initialized successfully",
			"First sync completed for "+name)
		return createWithLog(r, "user_1", "Integration created: "+name)
	}
	return Group{Name: "integrations", Records: []Record{
		in("int_1", "GitHub Integration", "GITHUB", m{"repository": "org/e-commerce-platform", "events": []string{"push", "pull_request", "issues"}}),
		in("int_2", "Slack Integration", "SLACK", m{"channel": "#e-commerce-dev", "events": []string{"task_created", "task_updated", "deployment"}}),
		in("int_3", "Jira Integration", "JIRA", m{"projectKey": "ECOM", "fieldMapping": m{"status": "status", "priority": "priority"}}),
	}}
}

func webhooks() Group {
	hook := func(id, name, url string, events []string) Record {
		return createWithLog(rec("webhook", m{
			"id": id, "name": name, "url": url, "events": events,
			"status": "ACTIVE", "projectId": "proj_1", "createdById": "user_1",
		}), "user_1", "Webhook "+name+" created successfully")
	}
	return Group{Name: "webhooks", Records: []Record{
		hook("hook_1", "GitHub Webhook", "https://api.example.com/webhooks/github", []string{"push", "pull_request", "issues"}),
		hook("hook_2", "Slack Notifications", "https://hooks.slack.com/services/example", []string{"task_created", "task_updated", "deployment"}),
		hook("hook_3", "Jira Sync", "https://example.atlassian.net/webhook", []string{"issue_created", "issue_updated", "comment_created"}),
	}}
}

// customFields attaches each field's default value to one entity of the
// field's type.
func customFields() Group {
	field := func(id, name, kind, entityType, target string, def any, extra m) Record {
		v := m{
			"id": id, "name": name, "type": kind, "entityType": entityType,
			"projectId": "proj_1", "createdById": "user_1", "defaultValue": def,
		}
		for k, x := range extra {
			v[k] = x
		}
		value := rec("customFieldValue", m{
			"id":            "cfv_" + id,
			"customFieldId": id,
			"entityType":    entityType,
			"entityId":      target,
			"value":         def,
		})
		return createWithLog(rec("customField", v, value), "user_1", "Custom field created: "+name)
	}
	return Group{Name: "customFields", Records: []Record{
		field("cf_1", "Priority Level", "SELECT", "TASK", "task_1", "Medium",
			m{"options": []string{"Low", "Medium", "High", "Critical"}, "isRequired": true, "order": 1}),
		field("cf_2", "Story Points", "NUMBER", "TASK", "task_1", 3,
			m{"minValue": 1, "maxValue": 21, "order": 2}),
		field("cf_3", "Environment", "SELECT", "FEATURE", "feat_1", "Development",
			m{"options": []string{"Development", "Staging", "Production"}, "order": 1}),
		field("cf_4", "Risk Level", "SELECT", "FEATURE", "feat_1", "Low",
			m{"options": []string{"Low", "Medium", "High"}, "order": 2}),
	}}
}

func automationRules() Group {
	rule := func(id, name, desc string, trigger m, actions []m) Record {
		return createWithLog(rec("automationRule", m{
			"id": id, "name": name, "description": desc,
			"trigger": trigger, "actions": actions, "isActive": true,
			"projectId": "proj_1", "createdById": "user_1",
		}), "user_1", "Automation rule created: "+name)
	}
	return Group{Name: "automationRules", Records: []Record{
		rule("auto_1", "Task Status Update", "Move tasks to review when work starts",
			m{"type": "TASK_UPDATED", "conditions": []m{{"field": "status", "operator": "equals", "value": "IN_PROGRESS"}}},
			[]m{{"type": "UPDATE_FIELD", "target": "TASK", "field": "status", "value": "IN_REVIEW"}, {"type": "CREATE_NOTIFICATION", "target": "ASSIGNEE"}}),
		rule("auto_2", "Feature Completion", "Create follow-up work when a feature completes",
			m{"type": "FEATURE_UPDATED", "conditions": []m{{"field": "status", "operator": "equals", "value": "COMPLETED"}}},
			[]m{{"type": "CREATE_TASK", "target": "PROJECT"}, {"type": "SEND_WEBHOOK", "target": "SLACK"}}),
		rule("auto_3", "Release Preparation", "Prepare a release when features are ready",
			m{"type": "FEATURE_UPDATED", "conditions": []m{{"field": "status", "operator": "equals", "value": "READY_FOR_RELEASE"}}},
			[]m{{"type": "CREATE_RELEASE", "target": "PROJECT"}, {"type": "NOTIFY_TEAM", "target": "ALL"}}),
	}}
}
