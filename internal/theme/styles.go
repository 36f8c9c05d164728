package theme

import (
	"fmt"
	"html/template"
	"slices"
	"strings"

	"github.com/sidenotehq/sidenote/internal/config"
)

// styleCustomProperties maps the supported style option names to the CSS
// custom property each one feeds. Options outside this map are ignored.
var styleCustomProperties = map[string]string{
	"accentColor":          "--accent-color",
	"appBackgroundColor":   "--app-background-color",
	"ctaBackgroundColor":   "--cta-background-color",
	"ctaTextColor":         "--cta-text-color",
	"selectionFontFamily":  "--selection-font-family",
	"annotationFontFamily": "--annotation-font-family",
}

// AnnotationStyleOptions returns the style option names that apply to
// annotation pages, in a stable order.
func AnnotationStyleOptions() []string {
	return []string{
		"accentColor",
		"appBackgroundColor",
		"ctaBackgroundColor",
		"ctaTextColor",
		"selectionFontFamily",
		"annotationFontFamily",
	}
}

// ResolveStyles maps the requested style options to their configured branding
// values. Options without a configured value are left out, so callers can
// treat a missing key as "no override".
func ResolveStyles(options []string, settings *config.BrandingConfig) map[string]string {
	resolved := make(map[string]string)
	if settings == nil {
		return resolved
	}
	for _, option := range options {
		if _, ok := styleCustomProperties[option]; !ok {
			themeLogger.Debug().Str("option", option).Msg("Skipping unsupported style option")
			continue
		}
		if value := brandingValue(option, settings); value != "" {
			resolved[option] = value
		}
	}
	return resolved
}

func brandingValue(option string, settings *config.BrandingConfig) string {
	switch option {
	case "accentColor":
		return settings.AccentColor
	case "appBackgroundColor":
		return settings.AppBackgroundColor
	case "ctaBackgroundColor":
		return settings.CtaBackgroundColor
	case "ctaTextColor":
		return settings.CtaTextColor
	case "selectionFontFamily":
		return settings.SelectionFontFamily
	case "annotationFontFamily":
		return settings.AnnotationFontFamily
	}
	return ""
}

// StyleCSS renders resolved style options as CSS custom properties on :root.
// Values come from operator configuration, never from request input.
func StyleCSS(resolved map[string]string) template.CSS {
	if len(resolved) == 0 {
		return ""
	}

	options := make([]string, 0, len(resolved))
	for option := range resolved {
		options = append(options, option)
	}
	slices.Sort(options)

	var buf strings.Builder
	buf.WriteString(":root {\n")
	for _, option := range options {
		fmt.Fprintf(&buf, "\t%s: %s;\n", styleCustomProperties[option], resolved[option])
	}
	buf.WriteString("}\n")
	return template.CSS(buf.String())
}
