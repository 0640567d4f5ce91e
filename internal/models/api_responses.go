package models

// QueryRequest is the body accepted by POST /query.
type QueryRequest struct {
	Query string `json:"query"`
}

// QueryResponse carries the HTML answer for a question.
type QueryResponse struct {
	Response string `json:"response"`
}

// TopicsResponse lists the static topic names in match order.
type TopicsResponse struct {
	AvailableTopics []string `json:"available_topics"`
}

// DiagnosticResponse reports the result of one upstream test call.
type DiagnosticResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp,omitempty"`
	Error     string `json:"error,omitempty"`
}
