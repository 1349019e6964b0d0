package html5tree

import (
	"errors"

	"github.com/arborist-go/html5tree/treebuilder"
)

// ErrConflictingSanitizeOptions is returned when WithSanitize and WithSafe
// are both set to conflicting non-null values.
var ErrConflictingSanitizeOptions = errors.New("html5tree: conflicting sanitize/safe options")

// config holds parser configuration.
type config struct {
	encoding           string
	fragmentContext    *treebuilder.FragmentContext
	iframeSrcdoc       bool
	strict             bool
	collectErrors      bool
	xmlCoercion        bool
	trackNodeLocations bool

	// sanitize and safe are reserved booleans (see WithSanitize/WithSafe);
	// nil means unset.
	sanitize *bool
	safe     *bool
}

// newConfig creates a new config with defaults and applies options.
func newConfig(opts ...Option) *config {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// validate checks for option conflicts that cannot be caught at apply time.
func (c *config) validate() error {
	if c.sanitize != nil && c.safe != nil && *c.sanitize != *c.safe {
		return ErrConflictingSanitizeOptions
	}
	return nil
}

// Option configures the parser behavior.
type Option func(*config)

// WithEncoding sets the character encoding to use for parsing.
// This overrides automatic encoding detection.
//
// Common values: "utf-8", "windows-1252", "iso-8859-1"
func WithEncoding(enc string) Option {
	return func(c *config) {
		c.encoding = enc
	}
}

// WithFragment sets the parsing context for fragment parsing.
// This is typically used internally by ParseFragment.
func WithFragment(tagName string) Option {
	return func(c *config) {
		c.fragmentContext = &treebuilder.FragmentContext{
			TagName:   tagName,
			Namespace: "html",
		}
	}
}

// WithFragmentNS sets the parsing context with a specific namespace.
// Use this for parsing SVG or MathML fragments.
func WithFragmentNS(tagName, namespace string) Option {
	return func(c *config) {
		c.fragmentContext = &treebuilder.FragmentContext{
			TagName:   tagName,
			Namespace: namespace,
		}
	}
}

// WithIframeSrcdoc enables iframe srcdoc parsing mode.
// In this mode, the parser treats the input as the srcdoc attribute value.
func WithIframeSrcdoc() Option {
	return func(c *config) {
		c.iframeSrcdoc = true
	}
}

// WithStrictMode enables strict parsing mode.
// In this mode, the first parse error causes Parse to return an error.
// By default, parse errors are handled according to the HTML5 spec
// and parsing continues.
func WithStrictMode() Option {
	return func(c *config) {
		c.strict = true
	}
}

// WithCollectErrors enables error collection mode.
// Parse errors are collected and returned as a ParseErrors error
// (which can be unwrapped to get individual errors).
// Without this option, parse errors are silently recovered from.
func WithCollectErrors() Option {
	return func(c *config) {
		c.collectErrors = true
	}
}

// WithXMLCoercion enables XML output coercions used by some test suites:
// hyphen-padded comments and CDATA sections are coerced to plain text the
// way XML serializers expect, rather than preserved verbatim.
func WithXMLCoercion() Option {
	return func(c *config) {
		c.xmlCoercion = true
	}
}

// WithTrackNodeLocations records the source (offset, line, column) of the
// token that produced each node, retrievable via the node's Origin method.
// Disabled by default since it adds bookkeeping to every insertion.
func WithTrackNodeLocations() Option {
	return func(c *config) {
		c.trackNodeLocations = true
	}
}

// WithSanitize is a reserved option for a future sanitization pass; it has
// no runtime effect beyond conflict validation against WithSafe.
func WithSanitize(enabled bool) Option {
	return func(c *config) {
		c.sanitize = &enabled
	}
}

// WithSafe is a reserved option for a future safety pass; it has no runtime
// effect beyond conflict validation against WithSanitize.
func WithSafe(enabled bool) Option {
	return func(c *config) {
		c.safe = &enabled
	}
}
