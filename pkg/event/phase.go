package event

// Phase names are the contract between the dispatcher and external listeners.
const (
	Bootstrap       = "BOOTSTRAP"
	TemplateResolve = "TEMPLATE_RESOLVE"
	Dispatch        = "DISPATCH"
)

// DefaultPriority is used by callers that do not care about ordering. It sits
// above the dispatcher's own fallback listeners.
const DefaultPriority = 1

// Phases returns the phase names in firing order.
func Phases() []string {
	return []string{Bootstrap, TemplateResolve, Dispatch}
}
