package plugin

import (
	"errors"
	"testing"
)

func TestUIDGeneration(t *testing.T) {
	tests := []struct {
		name     string
		pluginID string
	}{
		{"Mixer", "com.example.swmx"},
		{"Other plugin", "com.mycompany.newplugin"},
	}

	seen := map[[16]byte]string{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := Info{ID: tt.pluginID}

			uid1 := info.UID()
			uid2 := info.UID()
			if uid1 != uid2 {
				t.Errorf("UID generation is not deterministic for %s", tt.pluginID)
			}
			if other, ok := seen[uid1]; ok {
				t.Errorf("UID of %s collides with %s", tt.pluginID, other)
			}
			seen[uid1] = tt.pluginID

			// Version 5 (SHA-1) UUID
			if uid1[6]>>4 != 5 {
				t.Errorf("UID version = %d, want 5", uid1[6]>>4)
			}
		})
	}
}

func TestSpecificationsResolve(t *testing.T) {
	specs := Specifications{
		{Key: "groups", Name: "Groups", Min: 1, Max: 4, Default: 1},
		{Key: "destinations", Name: "Destinations", Min: 2, Max: 4, Default: 2},
	}

	got, err := specs.Resolve(nil)
	if err != nil {
		t.Fatalf("Resolve(nil) error = %v", err)
	}
	if got["groups"] != 1 || got["destinations"] != 2 {
		t.Errorf("defaults = %v", got)
	}

	got, err = specs.Resolve(map[string]int{"groups": 3})
	if err != nil || got["groups"] != 3 || got["destinations"] != 2 {
		t.Errorf("Resolve(groups=3) = %v, %v", got, err)
	}

	bad := []map[string]int{
		{"groups": 0},
		{"groups": 5},
		{"destinations": 1},
		{"voices": 2},
	}
	for _, values := range bad {
		if _, err := specs.Resolve(values); !errors.Is(err, ErrInvalidSpecification) {
			t.Errorf("Resolve(%v) error = %v, want ErrInvalidSpecification", values, err)
		}
	}
}

func TestBase(t *testing.T) {
	b := NewBase(Info{ID: "com.example.test", Name: "Test"}, 64)
	if b.Parameters() == nil || b.State() == nil {
		t.Fatal("base not initialised")
	}
	if b.Buses().Frames() != 64 {
		t.Errorf("Frames() = %d, want 64", b.Buses().Frames())
	}
	if p := b.State().Snapshot(); p.Plugin != "com.example.test" {
		t.Errorf("preset plugin = %q", p.Plugin)
	}
}
