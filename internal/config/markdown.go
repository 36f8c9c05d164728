package config

import "regexp"

// RegexCallout matches callout markers inside highlighted code blocks,
// e.g. "// <<1>>". Chroma has already escaped HTML entities by the time
// this regex runs, so the marker is matched in its escaped form.
var RegexCallout = regexp.MustCompile(`//\s*&lt;&lt;(\d+)&gt;&gt;`)
