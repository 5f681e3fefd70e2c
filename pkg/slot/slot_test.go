package slot

import (
	"errors"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestSlot_Fresh(t *testing.T) {
	var s Slot[float64]

	if s.IsSet() {
		t.Error("fresh slot should be unset")
	}
	if _, err := s.Get(); !errors.Is(err, ErrUnsetField) {
		t.Errorf("Get() on fresh slot: got %v, want ErrUnsetField", err)
	}
	if v := s.Value(); v != 0 {
		t.Errorf("Value() on fresh slot = %v, want 0", v)
	}
}

func TestSlot_Set(t *testing.T) {
	tests := []struct {
		name string
		v    float64
	}{
		{"positive", 45.0},
		{"zero", 0},
		{"negative", -1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Slot[float64]
			s.Set(tt.v)

			if !s.IsSet() {
				t.Error("slot should be set after Set")
			}
			got, err := s.Get()
			if err != nil {
				t.Fatalf("Get() error: %v", err)
			}
			if got != tt.v {
				t.Errorf("Get() = %v, want %v", got, tt.v)
			}
		})
	}
}

func TestSlot_Clear(t *testing.T) {
	s := Of("camera")
	s.Clear()

	if s.IsSet() {
		t.Error("slot should be unset after Clear")
	}
	if s.Value() != "" {
		t.Errorf("Value() after Clear = %q, want empty", s.Value())
	}
}

func TestSlot_LookupOr(t *testing.T) {
	var s Slot[int]
	if _, ok := s.Lookup(); ok {
		t.Error("Lookup on unset slot should report false")
	}
	if got := s.Or(7); got != 7 {
		t.Errorf("Or() on unset slot = %d, want 7", got)
	}

	s.Set(3)
	if v, ok := s.Lookup(); !ok || v != 3 {
		t.Errorf("Lookup() = (%d, %v), want (3, true)", v, ok)
	}
	if got := s.Or(7); got != 3 {
		t.Errorf("Or() on set slot = %d, want 3", got)
	}
}

type yamlRecord struct {
	XFov  Slot[float64] `yaml:"xfov,omitempty"`
	ZNear Slot[float64] `yaml:"znear,omitempty"`
	Name  Slot[string]  `yaml:"name,omitempty"`
}

func TestSlot_YAMLDecode(t *testing.T) {
	input := `
xfov: 0
name: ~
`
	var r yamlRecord
	if err := yaml.Unmarshal([]byte(input), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !r.XFov.IsSet() || r.XFov.Value() != 0 {
		t.Errorf("xfov: present zero should be set, got set=%v value=%v", r.XFov.IsSet(), r.XFov.Value())
	}
	if r.ZNear.IsSet() {
		t.Error("znear: absent key should stay unset")
	}
	if r.Name.IsSet() {
		t.Error("name: explicit null should stay unset")
	}
}

func TestSlot_YAMLDecodeInvalid(t *testing.T) {
	var r yamlRecord
	if err := yaml.Unmarshal([]byte("xfov: wide\n"), &r); err == nil {
		t.Error("expected error decoding non-numeric xfov")
	}
}

func TestSlot_YAMLEncodeOmitsUnset(t *testing.T) {
	r := yamlRecord{XFov: Of(45.0)}

	out, err := yaml.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got, want := string(out), "xfov: 45\n"; got != want {
		t.Errorf("marshal = %q, want %q", got, want)
	}
}
