package domain

// FeedbackEntry is the AI commentary for one scored category.
type FeedbackEntry struct {
	Short   string `json:"short"`
	Why     string `json:"why"`
	Improve string `json:"improve"`
}

// Feedback is the structured narrative returned by the generative service,
// one entry per scored category.
type Feedback struct {
	BpmRange FeedbackEntry `json:"bpmRange"`
	KeyMode  FeedbackEntry `json:"keyMode"`
	Vibe     FeedbackEntry `json:"vibe"`
	Length   FeedbackEntry `json:"length"`
}
