// Package key normalizes raw platform key identifiers into canonical key
// names and models modifier state for the editor's keyboard shortcuts.
//
// Browsers and input layers disagree on key naming: old Edge/IE report
// "Esc" and "Left", terminals deliver "\r" for Enter, and Vim-trained
// fingers write "CR". Normalize folds all of those onto the modern DOM
// KeyboardEvent.key values so the rest of the system only ever sees one
// spelling per key.
package key

import "strings"

// Canonical names for the keys the editor cares about.
const (
	KeyEnter     = "Enter"
	KeyEscape    = "Escape"
	KeyTab       = "Tab"
	KeyBackspace = "Backspace"
	KeyDelete    = "Delete"
	KeySpace     = " "
)

// legacyNames maps non-standard key identifiers to canonical ones. Keys are
// compared case-insensitively; values are the canonical DOM names.
var legacyNames = map[string]string{
	// IE / old Edge
	"esc":      KeyEscape,
	"del":      KeyDelete,
	"left":     "ArrowLeft",
	"right":    "ArrowRight",
	"up":       "ArrowUp",
	"down":     "ArrowDown",
	"spacebar": KeySpace,
	"scroll":   "ScrollLock",
	"apps":     "ContextMenu",
	"win":      "Meta",

	// IE numpad
	"add":      "+",
	"subtract": "-",
	"multiply": "*",
	"divide":   "/",
	"decimal":  ".",

	// Terminal and Vim-style sources
	"return": KeyEnter,
	"cr":     KeyEnter,
	"\r":     KeyEnter,
	"\n":     KeyEnter,
}

// canonicalNames fixes the casing of well-known named keys so lookups from
// config files ("enter") and from events ("Enter") meet in the middle.
var canonicalNames = map[string]string{
	"enter":       KeyEnter,
	"escape":      KeyEscape,
	"tab":         KeyTab,
	"backspace":   KeyBackspace,
	"delete":      KeyDelete,
	"space":       KeySpace,
	"home":        "Home",
	"end":         "End",
	"pageup":      "PageUp",
	"pagedown":    "PageDown",
	"insert":      "Insert",
	"arrowleft":   "ArrowLeft",
	"arrowright":  "ArrowRight",
	"arrowup":     "ArrowUp",
	"arrowdown":   "ArrowDown",
	"contextmenu": "ContextMenu",
	"scrolllock":  "ScrollLock",
	"capslock":    "CapsLock",
	"numlock":     "NumLock",
	"meta":        "Meta",
	"control":     "Control",
	"shift":       "Shift",
	"alt":         "Alt",
	"f1":          "F1",
	"f2":          "F2",
	"f3":          "F3",
	"f4":          "F4",
	"f5":          "F5",
	"f6":          "F6",
	"f7":          "F7",
	"f8":          "F8",
	"f9":          "F9",
	"f10":         "F10",
	"f11":         "F11",
	"f12":         "F12",
}

// Normalize maps a raw key identifier to its canonical name. The mapping is
// total: single characters and unknown names pass through unchanged, so the
// result is always usable as a key name.
func Normalize(raw string) string {
	// Single printable characters are already canonical ("a", "A", "?").
	if len([]rune(raw)) == 1 && raw != "\r" && raw != "\n" {
		return raw
	}

	lower := strings.ToLower(raw)
	if canonical, ok := legacyNames[lower]; ok {
		return canonical
	}
	if canonical, ok := canonicalNames[lower]; ok {
		return canonical
	}
	return raw
}
