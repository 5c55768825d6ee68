// Package flow holds the data shapes exchanged with the launcher host: the
// incoming query request and the ordered result entries a command emits.
package flow

import "encoding/json"

// Action is a follow-up the launcher performs when a result is activated.
type Action struct {
	Method     string `json:"method"`
	Parameters []any  `json:"parameters"`
}

// ChangeQuery replaces the launcher's query text.
func ChangeQuery(query string) *Action {
	return &Action{Method: "Flow.Launcher.ChangeQuery", Parameters: []any{query, true}}
}

// OpenURL opens a URL in the default browser.
func OpenURL(url string) *Action {
	return &Action{Method: "Flow.Launcher.OpenUrl", Parameters: []any{url}}
}

// Result is one entry shown in the launcher's result list.
type Result struct {
	Title    string  `json:"Title"`
	Subtitle string  `json:"SubTitle,omitempty"`
	IcoPath  string  `json:"IcoPath,omitempty"`
	Action   *Action `json:"JsonRPCAction,omitempty"`
}

// Response collects an ordered sequence of results.
type Response struct {
	results []Result
}

// Add appends results in order.
func (r *Response) Add(results ...Result) {
	r.results = append(r.results, results...)
}

// Results returns the collected entries.
func (r *Response) Results() []Result {
	if r.results == nil {
		return []Result{}
	}
	return r.results
}

// MarshalJSON renders the host's expected envelope.
func (r *Response) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Result []Result `json:"result"`
	}{Result: r.Results()})
}

// Request is the host's query invocation.
type Request struct {
	Method     string   `json:"method"`
	Parameters []string `json:"parameters"`
}

// Query returns the raw query string of a query request, "" otherwise.
func (r *Request) Query() string {
	if r.Method != "query" || len(r.Parameters) == 0 {
		return ""
	}
	return r.Parameters[0]
}

// ParseRequest decodes a host invocation. Plain text is accepted as a bare
// query for ad-hoc testing.
func ParseRequest(raw string) Request {
	var req Request
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		return Request{Method: "query", Parameters: []string{raw}}
	}
	return req
}
