package factory

import "testing"

type store struct {
	path  string
	limit int
}

type storeConf struct {
	Path  string `json:"path"`
	Limit int    `json:"limit"`
}

func newStoreRegistry(t *testing.T) *Registry[*store] {
	t.Helper()
	reg := NewRegistry[*store]()
	if err := reg.Register("jsonl", func(conf map[string]any) (*store, error) {
		var c storeConf
		if err := Decode(conf, &c); err != nil {
			return nil, err
		}
		return &store{path: c.Path, limit: c.Limit}, nil
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	return reg
}

func TestRegistry_Create(t *testing.T) {
	reg := newStoreRegistry(t)
	inst, err := reg.Create(ModuleConfig{Type: "jsonl", Conf: map[string]any{"path": "runs.jsonl", "limit": 3}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if inst.path != "runs.jsonl" || inst.limit != 3 {
		t.Fatalf("unexpected instance %+v", inst)
	}
}

// Values read from the environment arrive as strings.
func TestDecode_WeakTypes(t *testing.T) {
	var c storeConf
	if err := Decode(map[string]any{"limit": "42"}, &c); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if c.Limit != 42 {
		t.Fatalf("expected 42 got %d", c.Limit)
	}
}

func TestRegistry_Errors(t *testing.T) {
	reg := newStoreRegistry(t)
	if err := reg.Register("jsonl", func(map[string]any) (*store, error) { return &store{}, nil }); err == nil {
		t.Fatal("expected duplicate error")
	}
	if err := reg.Register("sqlite", nil); err == nil {
		t.Fatal("expected nil factory error")
	}
	if _, err := reg.Create(ModuleConfig{Type: "csv"}); err == nil {
		t.Fatal("expected unknown type error")
	}
	if got := reg.Types(); len(got) != 1 || got[0] != "jsonl" {
		t.Fatalf("unexpected types %v", got)
	}
}
