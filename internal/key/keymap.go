package key

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Chord is a key name plus the modifiers that must be held with it.
type Chord struct {
	Name string
	Mods Modifier
}

// ParseChord parses a chord spec such as "ctrl+enter" or "Meta+Enter".
// Every part but the last must be a modifier name; the last part is the
// key itself and is normalized.
func ParseChord(spec string) (Chord, error) {
	parts := strings.Split(spec, "+")
	if len(parts) == 0 || strings.TrimSpace(parts[len(parts)-1]) == "" {
		return Chord{}, fmt.Errorf("empty chord spec %q", spec)
	}

	var mods Modifier
	for _, part := range parts[:len(parts)-1] {
		part = strings.TrimSpace(part)
		mod, ok := ModifierFromName(part)
		if !ok {
			return Chord{}, fmt.Errorf("unknown modifier %q in chord %q", part, spec)
		}
		mods = mods.With(mod)
	}

	name := Normalize(strings.TrimSpace(parts[len(parts)-1]))
	return Chord{Name: name, Mods: mods}, nil
}

// Matches reports whether the event presses this chord. Modifiers beyond
// the required ones do not prevent a match.
func (c Chord) Matches(ev Event) bool {
	return ev.Name == c.Name && ev.Mods&c.Mods == c.Mods
}

// String returns the chord in "Ctrl+Enter" form.
func (c Chord) String() string {
	if c.Mods.IsEmpty() {
		return c.Name
	}
	return c.Mods.String() + "+" + c.Name
}

// Keymap holds the chords bound to each editor action.
type Keymap struct {
	Save []Chord
}

// DefaultKeymap binds the save action to Ctrl+Enter and Meta+Enter.
func DefaultKeymap() Keymap {
	return Keymap{
		Save: []Chord{
			{Name: KeyEnter, Mods: ModCtrl},
			{Name: KeyEnter, Mods: ModMeta},
		},
	}
}

// MatchesSave reports whether the event triggers the save action.
func (k Keymap) MatchesSave(ev Event) bool {
	for _, chord := range k.Save {
		if chord.Matches(ev) {
			return true
		}
	}
	return false
}

// keymapFile is the on-disk TOML shape of a keymap.
type keymapFile struct {
	Shortcuts struct {
		Save []string `toml:"save"`
	} `toml:"shortcuts"`
}

// LoadKeymap reads chord bindings from a TOML file. An empty path or a file
// that binds nothing yields the default keymap.
func LoadKeymap(path string) (Keymap, error) {
	if path == "" {
		return DefaultKeymap(), nil
	}

	var kf keymapFile
	if _, err := toml.DecodeFile(path, &kf); err != nil {
		return Keymap{}, fmt.Errorf("failed to decode keymap file: %w", err)
	}

	var km Keymap
	for _, spec := range kf.Shortcuts.Save {
		chord, err := ParseChord(spec)
		if err != nil {
			return Keymap{}, fmt.Errorf("invalid save binding: %w", err)
		}
		km.Save = append(km.Save, chord)
	}
	if len(km.Save) == 0 {
		km.Save = DefaultKeymap().Save
	}
	return km, nil
}
