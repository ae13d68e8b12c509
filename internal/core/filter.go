package core

// FilterVerdict is what a filter decides to do with a message.
type FilterVerdict int

const (
	// FilterAllow lets the message through unchanged.
	FilterAllow FilterVerdict = iota
	// FilterModify replaces the message body.
	FilterModify
	// FilterBlock rejects the message entirely.
	FilterBlock
)

// FilterAction carries a verdict plus the replacement body or block
// reason.
type FilterAction struct {
	Verdict FilterVerdict
	Body    string // FilterModify
	Reason  string // FilterBlock
}

func Allow() FilterAction {
	return FilterAction{Verdict: FilterAllow}
}

func ModifyBody(body string) FilterAction {
	return FilterAction{Verdict: FilterModify, Body: body}
}

func Block(reason string) FilterAction {
	return FilterAction{Verdict: FilterBlock, Reason: reason}
}

// Filter inspects an outgoing chat message before fan-out. Filters may
// keep internal mutable state; the hub runs the chain only while
// holding its own lock, so a filter is never invoked concurrently.
type Filter func(username, body string) FilterAction

// FilterChain runs registered filters in order over an outgoing
// message body.
type FilterChain struct {
	filters []Filter
}

func NewFilterChain() *FilterChain {
	return &FilterChain{}
}

// Add appends a filter. Registration order is evaluation order.
func (c *FilterChain) Add(f Filter) {
	c.filters = append(c.filters, f)
}

// Apply folds the chain over the body, threading modifications
// forward. A block short-circuits; later filters do not run. When no
// filter blocks, the result is Modify with the final body if it
// differs from the input, else Allow.
func (c *FilterChain) Apply(username, body string) FilterAction {
	current := body
	for _, f := range c.filters {
		switch action := f(username, current); action.Verdict {
		case FilterModify:
			current = action.Body
		case FilterBlock:
			return action
		}
	}

	if current != body {
		return ModifyBody(current)
	}
	return Allow()
}
