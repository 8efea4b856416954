package constant

var (
	// Version is injected at build time
	Version = "unknown version"
	// BuildTime is injected at build time
	BuildTime = "unknown time"
)
