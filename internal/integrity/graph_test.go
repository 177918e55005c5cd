package integrity

import (
	"errors"
	"strings"
	"testing"

	"github.com/Phase-Platform/phase/internal/schema"
)

func indexOf(list []string, s string) int {
	for i, x := range list {
		if x == s {
			return i
		}
	}
	return -1
}

func TestDefaultGraph_Check(t *testing.T) {
	if err := Default().Check(); err != nil {
		t.Fatalf("Check() = %v", err)
	}
}

func TestDefaultGraph_OrderPutsParentsFirst(t *testing.T) {
	g := Default()
	order, err := g.Order()
	if err != nil {
		t.Fatalf("Order: %v", err)
	}
	if len(order) != len(schema.All()) {
		t.Fatalf("len(order) = %d, want %d", len(order), len(schema.All()))
	}
	for _, name := range order {
		for _, e := range g.Parents(name) {
			if e.From == e.To {
				continue
			}
			if indexOf(order, e.To) > indexOf(order, name) {
				t.Errorf("%s (via %s) ordered after its child %s", e.To, e.Field, name)
			}
		}
	}
	if order[0] != "organization" {
		t.Errorf("order[0] = %q, want organization", order[0])
	}
	// team.projectId is nullable but still honored, so teams follow projects.
	if indexOf(order, "team") < indexOf(order, "project") {
		t.Error("team ordered before project")
	}
}

func TestGraph_Children(t *testing.T) {
	g := Default()
	var fields []string
	for _, e := range g.Children("testSuite") {
		fields = append(fields, e.From+"."+e.Field)
	}
	if len(fields) != 1 || fields[0] != "testCase.suiteId" {
		t.Errorf("Children(testSuite) = %v, want [testCase.suiteId]", fields)
	}
}

func testEntities(aRequiresB, bRequiresA bool) []*schema.Entity {
	a := &schema.Entity{Name: "a", Table: "as", Fields: []schema.Field{
		{Name: "bId", Kind: schema.KindRef, Ref: "b", Required: aRequiresB},
		{Name: "parentId", Kind: schema.KindRef, Ref: "a"},
	}}
	b := &schema.Entity{Name: "b", Table: "bs", Fields: []schema.Field{
		{Name: "aId", Kind: schema.KindRef, Ref: "a", Required: bRequiresA},
	}}
	return []*schema.Entity{a, b}
}

func TestGraph_Order_Cycles(t *testing.T) {
	tests := []struct {
		name    string
		aReqB   bool
		bReqA   bool
		want    []string
		wantErr bool
	}{
		{"nullable cycle falls back to required edges", true, false, []string{"b", "a"}, false},
		{"other direction", false, true, []string{"a", "b"}, false},
		{"both nullable keeps declaration order", false, false, []string{"a", "b"}, false},
		{"required cycle", true, true, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, err := NewGraph(testEntities(tt.aReqB, tt.bReqA)).Order()
			if tt.wantErr {
				var ce *CycleError
				if !errors.As(err, &ce) {
					t.Fatalf("Order() error = %v, want *CycleError", err)
				}
				if !strings.Contains(ce.Error(), "a") || !strings.Contains(ce.Error(), "b") {
					t.Errorf("cycle error %q does not name a and b", ce.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("Order: %v", err)
			}
			if strings.Join(order, ",") != strings.Join(tt.want, ",") {
				t.Errorf("Order() = %v, want %v", order, tt.want)
			}
		})
	}
}

func TestGraph_Check_RequiredSelfReference(t *testing.T) {
	e := &schema.Entity{Name: "node", Table: "nodes", Fields: []schema.Field{
		{Name: "parentId", Kind: schema.KindRef, Ref: "node", Required: true},
	}}
	err := NewGraph([]*schema.Entity{e}).Check()
	if err == nil || !strings.Contains(err.Error(), "self-reference") {
		t.Errorf("Check() = %v, want self-reference error", err)
	}
}

func TestGraph_OrderSets(t *testing.T) {
	g := Default()
	names := []string{"teams", "releases", "organizations", "users", "projects", "environments"}
	members := map[string][]string{
		"organizations": {"organization"},
		"users":         {"user", "session"},
		"teams":         {"team", "teamMember"},
		"projects":      {"project", "projectMember"},
		"releases":      {"release", "deployment"},
		"environments":  {"environment"},
	}
	order, err := g.OrderSets(names, members)
	if err != nil {
		t.Fatalf("OrderSets: %v", err)
	}
	want := "organizations,users,projects,teams,environments,releases"
	if got := strings.Join(order, ","); got != want {
		t.Errorf("OrderSets = %s, want %s", got, want)
	}

	if _, err := g.OrderSets([]string{"x"}, map[string][]string{"x": {"spaceship"}}); err == nil {
		t.Error("OrderSets(unknown entity) succeeded")
	}
}
