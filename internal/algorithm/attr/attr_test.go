package attr

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestInt_Set(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		want    int
		wantErr string
	}{
		{"int", 5, 5, ""},
		{"float64 integral", 7.0, 7, ""},
		{"json number", json.Number("9"), 9, ""},
		{"string", "3", 3, ""},
		{"fraction", 2.5, 0, "not an integer"},
		{"below", 0, 0, "must be >= 1"},
		{"above", 11, 0, "must be <= 10"},
		{"wrong type", []int{1}, 0, "is not a number"},
		{"huge float", 1e30, 0, "value 1e+30 is out of integer range"},
		{"huge negative float", -1e30, 0, "value -1e+30 is out of integer range"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewInt("n", 2, 1, 10, "")
			err := a.Set(tt.in)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
				}
				if a.Value() != 2 {
					t.Errorf("value changed on error: %d", a.Value())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if a.Value() != tt.want {
				t.Errorf("value = %d, want %d", a.Value(), tt.want)
			}
		})
	}
}

func TestFloat_Set(t *testing.T) {
	a := NewFloat("threshold", 0.7, 0, 1, "")
	if err := a.Set(1.5); err == nil || err.Error() != "value 1.5 must be <= 1" {
		t.Errorf("unexpected error: %v", err)
	}
	if err := a.Set("0.25"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Value() != 0.25 {
		t.Errorf("value = %v", a.Value())
	}
	if err := a.Set(-0.1); err == nil {
		t.Error("expected lower bound error")
	}
}

func TestBool_Set(t *testing.T) {
	a := NewBool("flag", false, "")
	if err := a.Set(true); err != nil || !a.Value() {
		t.Errorf("Set(true): err=%v value=%v", err, a.Value())
	}
	if err := a.Set("false"); err != nil || a.Value() {
		t.Errorf("Set(\"false\"): err=%v value=%v", err, a.Value())
	}
	if err := a.Set(1); err == nil {
		t.Error("expected error for int")
	}
}

func TestString_Set(t *testing.T) {
	a := NewString("hint", "", "")
	if err := a.Set("go"); err != nil || a.Value() != "go" {
		t.Errorf("Set: err=%v value=%q", err, a.Value())
	}
	if err := a.Set(3); err == nil {
		t.Error("expected error for int")
	}
}

func TestSet_Apply(t *testing.T) {
	n := NewInt("maxClusters", 15, 1, 100, "")
	f := NewFloat("ratio", 0.5, 0, 1, "")
	s := NewSet(n, f)

	if err := s.Apply(map[string]any{"maxClusters": 5, "ratio": 0.9}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.Value() != 5 || f.Value() != 0.9 {
		t.Errorf("values = %d, %v", n.Value(), f.Value())
	}

	err := s.Apply(map[string]any{"nope": 1})
	if err == nil || err.Error() != `unknown attribute "nope"` {
		t.Errorf("unexpected error: %v", err)
	}

	err = s.Apply(map[string]any{"ratio": 2, "maxClusters": 0})
	if err == nil || !strings.HasPrefix(err.Error(), "attribute maxClusters:") {
		t.Errorf("expected first sorted key to fail, got %v", err)
	}
}

func TestSet_Descriptors(t *testing.T) {
	s := NewSet(
		NewInt("a", 1, 0, 2, "int"),
		NewBool("b", true, "bool"),
	)
	ds := s.Descriptors()
	if len(ds) != 2 {
		t.Fatalf("expected 2 descriptors, got %d", len(ds))
	}
	if ds[0].Name != "a" || ds[0].Kind != KindInt || *ds[0].Max != 2 {
		t.Errorf("unexpected descriptor: %+v", ds[0])
	}
	if ds[1].Name != "b" || ds[1].Min != nil || ds[1].Default != true {
		t.Errorf("unexpected descriptor: %+v", ds[1])
	}
}
