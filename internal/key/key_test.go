package key

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Enter", "Enter"},
		{"enter", "Enter"},
		{"Return", "Enter"},
		{"CR", "Enter"},
		{"\r", "Enter"},
		{"\n", "Enter"},
		{"Esc", "Escape"},
		{"escape", "Escape"},
		{"Del", "Delete"},
		{"Left", "ArrowLeft"},
		{"Right", "ArrowRight"},
		{"Up", "ArrowUp"},
		{"Down", "ArrowDown"},
		{"ArrowLeft", "ArrowLeft"},
		{"Spacebar", " "},
		{" ", " "},
		{"Win", "Meta"},
		{"Apps", "ContextMenu"},
		{"Add", "+"},
		{"Decimal", "."},
		{"pageup", "PageUp"},
		{"F5", "F5"},
		{"f11", "F11"},
		{"a", "a"},
		{"A", "A"}, // Single characters keep their case
		{"?", "?"},
		{"Zettelkasten", "Zettelkasten"}, // Unknown names pass through
		{"", ""},
	}

	for _, tt := range tests {
		if got := Normalize(tt.raw); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestNormalizeDeterministic(t *testing.T) {
	inputs := []string{"Enter", "Esc", "a", "unknown-key", ""}
	for _, raw := range inputs {
		first := Normalize(raw)
		for i := 0; i < 100; i++ {
			if got := Normalize(raw); got != first {
				t.Fatalf("Normalize(%q) returned %q then %q", raw, first, got)
			}
		}
	}
}

func TestModifierHas(t *testing.T) {
	m := ModCtrl | ModShift

	if !m.HasCtrl() {
		t.Error("HasCtrl() = false, want true")
	}
	if !m.HasShift() {
		t.Error("HasShift() = false, want true")
	}
	if m.HasAlt() {
		t.Error("HasAlt() = true, want false")
	}
	if m.HasMeta() {
		t.Error("HasMeta() = true, want false")
	}
}

func TestModifierWithWithout(t *testing.T) {
	m := ModNone.With(ModCtrl).With(ModMeta)
	if !m.HasCtrl() || !m.HasMeta() {
		t.Errorf("With chain = %v, want Ctrl+Meta", m)
	}

	m = m.Without(ModCtrl)
	if m.HasCtrl() {
		t.Error("Without(ModCtrl) still has Ctrl")
	}
	if !m.HasMeta() {
		t.Error("Without(ModCtrl) dropped Meta")
	}
}

func TestModifierIsEmpty(t *testing.T) {
	if !ModNone.IsEmpty() {
		t.Error("ModNone.IsEmpty() = false, want true")
	}
	if ModCtrl.IsEmpty() {
		t.Error("ModCtrl.IsEmpty() = true, want false")
	}
}

func TestModifierString(t *testing.T) {
	tests := []struct {
		mod  Modifier
		want string
	}{
		{ModNone, ""},
		{ModCtrl, "Ctrl"},
		{ModMeta, "Meta"},
		{ModCtrl | ModShift, "Ctrl+Shift"},
		{ModCtrl | ModAlt | ModShift | ModMeta, "Ctrl+Alt+Shift+Meta"},
	}

	for _, tt := range tests {
		if got := tt.mod.String(); got != tt.want {
			t.Errorf("Modifier.String() = %q, want %q", got, tt.want)
		}
	}
}

func TestModifierFromName(t *testing.T) {
	tests := []struct {
		name   string
		want   Modifier
		wantOK bool
	}{
		{"ctrl", ModCtrl, true},
		{"Control", ModCtrl, true},
		{"alt", ModAlt, true},
		{"option", ModAlt, true},
		{"shift", ModShift, true},
		{"meta", ModMeta, true},
		{"cmd", ModMeta, true},
		{"Command", ModMeta, true},
		{"super", ModMeta, true},
		{"win", ModMeta, true},
		{"hyper", ModNone, false},
		{"", ModNone, false},
	}

	for _, tt := range tests {
		got, ok := ModifierFromName(tt.name)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ModifierFromName(%q) = (%v, %v), want (%v, %v)",
				tt.name, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestNewEvent(t *testing.T) {
	tests := []struct {
		raw      string
		mods     Modifier
		wantName string
	}{
		{"Enter", ModCtrl, "Enter"},
		{"Return", ModMeta, "Enter"},
		{"Esc", ModNone, "Escape"},
		{"a", ModNone, "a"},
	}

	for _, tt := range tests {
		ev := NewEvent(tt.raw, tt.mods)
		if ev.Name != tt.wantName {
			t.Errorf("NewEvent(%q).Name = %q, want %q", tt.raw, ev.Name, tt.wantName)
		}
		if ev.Mods != tt.mods {
			t.Errorf("NewEvent(%q).Mods = %v, want %v", tt.raw, ev.Mods, tt.mods)
		}
	}
}

func TestModifiersFromFlags(t *testing.T) {
	tests := []struct {
		ctrl, alt, shift, meta bool
		want                   Modifier
	}{
		{false, false, false, false, ModNone},
		{true, false, false, false, ModCtrl},
		{false, true, false, false, ModAlt},
		{false, false, true, false, ModShift},
		{false, false, false, true, ModMeta},
		{true, false, false, true, ModCtrl | ModMeta},
		{true, true, true, true, ModCtrl | ModAlt | ModShift | ModMeta},
	}

	for _, tt := range tests {
		got := ModifiersFromFlags(tt.ctrl, tt.alt, tt.shift, tt.meta)
		if got != tt.want {
			t.Errorf("ModifiersFromFlags(%v, %v, %v, %v) = %v, want %v",
				tt.ctrl, tt.alt, tt.shift, tt.meta, got, tt.want)
		}
	}
}
