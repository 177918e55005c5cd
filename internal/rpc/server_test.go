package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/Phase-Platform/phase/internal/auth"
	"github.com/Phase-Platform/phase/internal/db"
	"github.com/Phase-Platform/phase/internal/seed"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type envelope struct {
	Result *struct {
		Data json.RawMessage `json:"data"`
	} `json:"result"`
	Error *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

type fixture struct {
	srv  *Server
	gdb  *gorm.DB
	now  time.Time
	jwt  string
	user string
}

func setup(t *testing.T) *fixture {
	t.Helper()
	gdb, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close(gdb) })

	now := time.Now().UTC().Truncate(time.Second)
	if _, err := seed.Run(context.Background(), gdb, seed.Options{Now: now}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	signer := auth.NewJWT(testSecret)
	srv, err := New(Options{
		DB:       gdb,
		Verifier: auth.Chain{signer, auth.NewSessions(gdb)},
		Timeout:  5 * time.Second,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	token, err := signer.Issue("user_1", time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	return &fixture{srv: srv, gdb: gdb, now: now, jwt: token, user: "user_1"}
}

func (f *fixture) call(t *testing.T, method, procedure, input, token string) (int, envelope) {
	t.Helper()
	target := "/rpc/" + procedure
	var req *http.Request
	if method == http.MethodGet {
		if input != "" {
			target += "?input=" + url.QueryEscape(input)
		}
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(input))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.srv.Handler().ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: body is not an envelope: %v\n%s", method, procedure, err, rec.Body.String())
	}
	return rec.Code, env
}

func TestNew_NilDB(t *testing.T) {
	_, err := New(Options{})
	if err == nil || !strings.Contains(err.Error(), "db is required") {
		t.Fatalf("New(nil db) = %v", err)
	}
}

func TestGetAll_Public(t *testing.T) {
	f := setup(t)
	status, env := f.call(t, http.MethodGet, "organization.getAll", "", "")
	if status != http.StatusOK || env.Result == nil {
		t.Fatalf("status = %d, env = %+v", status, env)
	}
	var orgs []map[string]any
	if err := json.Unmarshal(env.Result.Data, &orgs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(orgs) != 2 {
		t.Errorf("got %d organizations, want 2", len(orgs))
	}
}

func TestGetByID(t *testing.T) {
	f := setup(t)
	for _, input := range []string{`"proj_1"`, `{"id":"proj_1"}`} {
		for _, method := range []string{http.MethodGet, http.MethodPost} {
			status, env := f.call(t, method, "project.getById", input, "")
			if status != http.StatusOK {
				t.Fatalf("%s %s: status = %d, env = %+v", method, input, status, env.Error)
			}
			var proj map[string]any
			json.Unmarshal(env.Result.Data, &proj)
			if proj["organizationId"] != "org_1" || proj["ownerId"] != "user_1" {
				t.Errorf("proj_1 = %v", proj)
			}
		}
	}
}

func TestErrors(t *testing.T) {
	f := setup(t)
	tests := []struct {
		name      string
		method    string
		procedure string
		input     string
		token     string
		status    int
		code      string
	}{
		{"unknown entity", http.MethodGet, "spaceship.getAll", "", "", 404, "NOT_FOUND"},
		{"unknown op", http.MethodGet, "project.archive", "", "", 404, "NOT_FOUND"},
		{"missing row", http.MethodGet, "project.getById", `"proj_missing"`, "", 404, "NOT_FOUND"},
		{"mutation over GET", http.MethodGet, "organization.create", `{"name":"X","slug":"x"}`, f.jwt, 405, "METHOD_NOT_SUPPORTED"},
		{"no token", http.MethodPost, "organization.create", `{"name":"X","slug":"x"}`, "", 401, "AUTHENTICATION_REQUIRED"},
		{"bad token", http.MethodPost, "organization.create", `{"name":"X","slug":"x"}`, "not-a-session", 401, "AUTHENTICATION_REQUIRED"},
		{"malformed json", http.MethodPost, "organization.create", `{"name":`, f.jwt, 400, "BAD_REQUEST"},
		{"missing id", http.MethodPost, "project.delete", `{}`, f.jwt, 400, "BAD_REQUEST"},
		{"extra closing brace", http.MethodPost, "organization.getById", `{"id":"org_1"}}`, "", 400, "BAD_REQUEST"},
		{"extra closing bracket", http.MethodPost, "organization.create", `{"name":"X","slug":"x"}]`, f.jwt, 400, "BAD_REQUEST"},
		{"second value", http.MethodPost, "organization.getById", `"org_1" "org_2"`, "", 400, "BAD_REQUEST"},
		{"validation", http.MethodPost, "organization.create", `{"slug":"x"}`, f.jwt, 400, "VALIDATION_ERROR"},
		{"dangling reference", http.MethodPost, "project.create",
			`{"name":"Y","slug":"y","ownerId":"user_1","organizationId":"org_missing"}`, f.jwt, 422, "REFERENCE_NOT_FOUND"},
		{"duplicate slug", http.MethodPost, "organization.create", `{"name":"Dup","slug":"techcorp-solutions"}`, f.jwt, 409, "CONFLICT"},
		{"delete referenced", http.MethodPost, "organization.delete", `"org_1"`, f.jwt, 409, "CONFLICT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := f.call(t, tt.method, tt.procedure, tt.input, tt.token)
			if status != tt.status {
				t.Errorf("status = %d, want %d", status, tt.status)
			}
			if env.Error == nil || env.Error.Code != tt.code {
				t.Fatalf("error = %+v, want code %s", env.Error, tt.code)
			}
			if env.Error.Message == "" {
				t.Error("error message is empty")
			}
		})
	}
}

func TestDecodeJSON_TrailingInput(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{`{"id":"x"}`, true},
		{"  \"x\"  \n", true},
		{`{"id":"x"}}`, false},
		{`{"id":"x"}]`, false},
		{`{"id":"x"} {}`, false},
		{`"x" 1`, false},
	}
	for _, tt := range tests {
		var v any
		err := decodeJSON([]byte(tt.in), &v)
		if (err == nil) != tt.ok {
			t.Errorf("decodeJSON(%q) = %v, want ok=%v", tt.in, err, tt.ok)
		}
	}
}

func TestValidationDetails(t *testing.T) {
	f := setup(t)
	_, env := f.call(t, http.MethodPost, "organization.create", `{"slug":"x"}`, f.jwt)
	var details struct {
		Entity     string `json:"entity"`
		Violations []struct {
			Field string `json:"field"`
		} `json:"violations"`
	}
	if err := json.Unmarshal(env.Error.Details, &details); err != nil {
		t.Fatalf("decode details: %v", err)
	}
	if details.Entity != "organization" || len(details.Violations) == 0 || details.Violations[0].Field != "name" {
		t.Errorf("details = %+v", details)
	}
}

func TestMutations_JWT(t *testing.T) {
	f := setup(t)
	status, env := f.call(t, http.MethodPost, "organization.create", `{"name":"Acme","slug":"acme"}`, f.jwt)
	if status != http.StatusOK {
		t.Fatalf("create: %d %+v", status, env.Error)
	}
	var org map[string]any
	json.Unmarshal(env.Result.Data, &org)
	id, _ := org["id"].(string)
	if !strings.HasPrefix(id, "org_") {
		t.Fatalf("id = %q, want org_ prefix", id)
	}

	input := fmt.Sprintf(`{"id":%q,"data":{"name":"Acme Corp"}}`, id)
	status, env = f.call(t, http.MethodPost, "organization.update", input, f.jwt)
	if status != http.StatusOK {
		t.Fatalf("update: %d %+v", status, env.Error)
	}
	json.Unmarshal(env.Result.Data, &org)
	if org["name"] != "Acme Corp" || org["slug"] != "acme" {
		t.Errorf("updated = %v", org)
	}

	status, env = f.call(t, http.MethodPost, "organization.delete", fmt.Sprintf("%q", id), f.jwt)
	if status != http.StatusOK {
		t.Fatalf("delete: %d %+v", status, env.Error)
	}
	status, _ = f.call(t, http.MethodGet, "organization.getById", fmt.Sprintf("%q", id), "")
	if status != http.StatusNotFound {
		t.Errorf("getById after delete = %d, want 404", status)
	}
}

func TestMutations_Session(t *testing.T) {
	f := setup(t)
	token := fmt.Sprintf("session_user_2_%d", f.now.Unix())
	status, env := f.call(t, http.MethodPost, "notification.create",
		`{"title":"Heads up","message":"Build is red","type":"TASK_ASSIGNED","userId":"user_2"}`, token)
	if status != http.StatusOK {
		t.Fatalf("create with session: %d %+v", status, env.Error)
	}

	// user_5 is inactive and has no session; a forged token is rejected.
	status, _ = f.call(t, http.MethodPost, "notification.create",
		`{"title":"x","message":"y","type":"TASK_ASSIGNED","userId":"user_2"}`, fmt.Sprintf("session_user_5_%d", f.now.Unix()))
	if status != http.StatusUnauthorized {
		t.Errorf("unknown session status = %d, want 401", status)
	}
}

func TestPublicQueryIgnoresBadToken(t *testing.T) {
	f := setup(t)
	status, _ := f.call(t, http.MethodGet, "user.getAll", "", "expired-or-wrong")
	if status != http.StatusOK {
		t.Errorf("status = %d, want 200", status)
	}
}

func TestHealthz(t *testing.T) {
	f := setup(t)
	rec := httptest.NewRecorder()
	f.srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("healthz = %d %s", rec.Code, rec.Body.String())
	}

	db.Close(f.gdb)
	rec = httptest.NewRecorder()
	f.srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("healthz on closed db = %d, want 503", rec.Code)
	}
}

func TestMetrics(t *testing.T) {
	f := setup(t)
	f.call(t, http.MethodGet, "organization.getAll", "", "")
	f.call(t, http.MethodGet, "project.getById", `"nope"`, "")

	rec := httptest.NewRecorder()
	f.srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	for _, want := range []string{
		`phase_rpc_calls_total{code="OK",procedure="organization.getAll"} 1`,
		`phase_rpc_calls_total{code="NOT_FOUND",procedure="project.getById"} 1`,
		`phase_rpc_call_duration_seconds_count{procedure="organization.getAll"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %s", want)
		}
	}
}

func TestServe_GracefulShutdown(t *testing.T) {
	f := setup(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.srv.Serve(ctx, ln, nil) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	if err != nil {
		t.Fatalf("GET healthz: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
