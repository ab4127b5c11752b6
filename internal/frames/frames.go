// Package frames classifies and reformats frame names from collapsed stacks.
//
// Two textual shapes are recognized: native or synthetic frames such as
// "[unknown]" which are never decomposed, and symbolic JVM-style frames such
// as "com/ruleengine/index/Trie.find" where '/' separates namespace segments
// and the last '.' separates the class from the method.
package frames

import "strings"

// Kind is the classification of a frame name.
type Kind int

const (
	// KindSymbolic frames have the <namespace-path><class>.<method> shape.
	KindSymbolic Kind = iota
	// KindNative frames start with '[' and are profiler-synthesized markers.
	KindNative
	// KindOpaque frames contain neither '.' nor '/' and are left untouched.
	KindOpaque
)

// Classify determines the kind of a frame name. Classification is the single
// place that inspects the string shape; Package and Short act on its result.
func Classify(frame string) Kind {
	if strings.HasPrefix(frame, "[") {
		return KindNative
	}
	if !strings.Contains(frame, ".") && !strings.Contains(frame, "/") {
		return KindOpaque
	}
	return KindSymbolic
}

// Package extracts the owning package of a symbolic frame:
// "com/ruleengine/index/Trie.find" becomes "com/ruleengine/index".
// Native and opaque frames pass through unchanged.
func Package(frame string) string {
	if Classify(frame) != KindSymbolic {
		return frame
	}
	rest := stripMethod(frame)
	if i := strings.LastIndex(rest, "/"); i >= 0 {
		return rest[:i]
	}
	if i := strings.LastIndex(rest, "."); i >= 0 {
		return rest[:i]
	}
	return rest
}

// Short produces the display form of a symbolic frame:
// "com/ruleengine/index/Trie.find" becomes "Trie.find".
// Native and opaque frames pass through unchanged.
func Short(frame string) string {
	if Classify(frame) != KindSymbolic {
		return frame
	}
	rest := stripMethod(frame)
	method := ""
	if i := strings.LastIndex(frame, "."); i >= 0 {
		method = frame[i+1:]
	}
	cls := rest
	if i := strings.LastIndex(rest, "/"); i >= 0 {
		cls = rest[i+1:]
	} else if i := strings.LastIndex(rest, "."); i >= 0 {
		cls = rest[i+1:]
	}
	if method == "" {
		return cls
	}
	return cls + "." + method
}

// stripMethod removes the trailing ".method" segment, splitting on the last
// dot. Frames without a dot are returned as-is.
func stripMethod(frame string) string {
	if i := strings.LastIndex(frame, "."); i >= 0 {
		return frame[:i]
	}
	return frame
}

// DefaultAppMarker is the namespace marker of the profiled project itself.
const DefaultAppMarker = "com/ruleengine"

// Matcher decides whether a frame belongs to application code, as opposed to
// library, runtime, or native frames. The marker is matched in both the
// '/'-separated and '.'-separated path forms.
type Matcher struct {
	slashForm string
	dotForm   string
}

// NewMatcher builds a Matcher for the given namespace marker. An empty marker
// yields a Matcher that matches nothing.
func NewMatcher(marker string) Matcher {
	if marker == "" {
		return Matcher{}
	}
	return Matcher{
		slashForm: strings.ReplaceAll(marker, ".", "/"),
		dotForm:   strings.ReplaceAll(marker, "/", "."),
	}
}

// Match reports whether the frame belongs to application code.
func (m Matcher) Match(frame string) bool {
	if m.slashForm == "" {
		return false
	}
	return strings.Contains(frame, m.slashForm) || strings.Contains(frame, m.dotForm)
}
