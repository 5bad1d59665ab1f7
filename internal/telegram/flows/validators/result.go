// Package validators classifies raw user input for each conversation step.
// Every validator is a total function: it never panics and always returns
// either an accepted, normalized value or a rejection reason.
package validators

// Result of validating one input. Reason is a localization key and Params
// fill its placeholders.
type Result struct {
	Accepted bool
	Value    string
	Reason   string
	Params   map[string]any
}

// Validator checks raw against the data collected so far in the flow.
type Validator func(raw string, data map[string]string) Result

func Accept(value string) Result {
	return Result{Accepted: true, Value: value}
}

func Reject(reason string, params map[string]any) Result {
	return Result{Reason: reason, Params: params}
}
