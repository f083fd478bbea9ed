package events

// Page is a reference record linked from a historical event. Extract is only
// used for relevance scoring and is dropped before events reach a prompt.
type Page struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Extract     string `json:"extract,omitempty"`
	URL         string `json:"url,omitempty"`
}

// Event is a single "on this day" historical event.
type Event struct {
	Year  int    `json:"year"`
	Text  string `json:"text"`
	Pages []Page `json:"pages"`
}
