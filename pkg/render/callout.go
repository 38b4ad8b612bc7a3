package render

import "strings"

// Callouts lists the admonition keywords rewritten by NormalizeCallouts.
var Callouts = []string{"NOTE", "TIP", "IMPORTANT", "WARNING", "CAUTION"}

var calloutReplacer = newCalloutReplacer()

func newCalloutReplacer() *strings.Replacer {
	pairs := make([]string, 0, len(Callouts)*2)
	for _, kw := range Callouts {
		pairs = append(pairs, "[!"+kw+"]", "**"+kw+"**")
	}
	return strings.NewReplacer(pairs...)
}

// NormalizeCallouts rewrites every callout marker such as "[!NOTE]" into an
// emphasized label. It is a plain text pass: markers inside code fences are
// rewritten too.
func NormalizeCallouts(source string) string {
	return calloutReplacer.Replace(source)
}
