package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Hydration Errors (E040-E059)
	// ============================================

	"E040": {
		Category: CategoryHydration,
		Message:  "Hydration mismatch: text content differs",
		Detail:   "A server-rendered text node did not start with the text the view expected. The node was overwritten with the expected text.",
		DocURL:   "https://vela.dev/docs/errors/E040",
	},
	"E041": {
		Category: CategoryHydration,
		Message:  "Hydration target missing",
		Detail:   "Hydration was requested but no target container was supplied.",
		DocURL:   "https://vela.dev/docs/errors/E041",
	},
	"E042": {
		Category: CategoryHydration,
		Message:  "View cannot be hydrated",
		Detail:   "The view does not implement Claim, so existing nodes were discarded and the view was created from scratch.",
		DocURL:   "https://vela.dev/docs/errors/E042",
	},

	// ============================================
	// Transition Errors (E060-E079)
	// ============================================

	"E060": {
		Category: CategoryTransition,
		Message:  "Invalid transition config",
		Detail:   "Transition delay and duration must not be negative.",
		DocURL:   "https://vela.dev/docs/errors/E060",
	},
	"E061": {
		Category: CategoryTransition,
		Message:  "Unknown transition",
		Detail:   "The requested built-in transition does not exist. Use fade or fly.",
		DocURL:   "https://vela.dev/docs/errors/E061",
	},

	// ============================================
	// Runtime Errors (E101-E119)
	// ============================================

	"E101": {
		Category: CategoryRuntime,
		Message:  "Component update failed during flush",
		Detail:   "An update step failed. Pending updates for this tick were dropped and the scheduler was reset.",
		DocURL:   "https://vela.dev/docs/errors/E101",
	},
	"E102": {
		Category: CategoryLifecycle,
		Message:  "Function called outside component initialization",
		Detail:   "Lifecycle functions (OnMount, OnDestroy, BeforeUpdate, AfterUpdate, SetContext, GetContext) must be called while a component is being initialized.",
		DocURL:   "https://vela.dev/docs/errors/E102",
	},
	"E103": {
		Category: CategoryLifecycle,
		Message:  "Component destroyed",
		Detail:   "The operation targets a component that has already been destroyed.",
		DocURL:   "https://vela.dev/docs/errors/E103",
	},

	// ============================================
	// Config Errors (E201-E219)
	// ============================================

	"E201": {
		Category: CategoryConfig,
		Message:  "Invalid vela.yaml",
		Detail:   "The configuration file could not be parsed.",
		DocURL:   "https://vela.dev/docs/errors/E201",
	},
	"E202": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		DocURL:   "https://vela.dev/docs/errors/E202",
	},
	"E203": {
		Category: CategoryConfig,
		Message:  "Config file not readable",
		DocURL:   "https://vela.dev/docs/errors/E203",
	},

	// ============================================
	// CLI Errors (E301-E319)
	// ============================================

	"E301": {
		Category: CategoryCLI,
		Message:  "Invalid input",
		DocURL:   "https://vela.dev/docs/errors/E301",
	},
	"E302": {
		Category: CategoryCLI,
		Message:  "Export failed",
		Detail:   "The generated stylesheet could not be written to its destination.",
		DocURL:   "https://vela.dev/docs/errors/E302",
	},
}

// Lookup returns the template registered for code.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
