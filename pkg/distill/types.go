package distill

// MaxTextLength is the largest brain dump accepted, in characters.
const MaxTextLength = 20000

// Request is the body of a distillation request.
//
// It has no model field: a client-supplied model is dropped during decoding
// and can never reach the completion client.
type Request struct {
	Text string `json:"text"`
}

// Item is a single actionable task.
type Item struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Section groups related items under a title.
type Section struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Items []Item `json:"items"`
}

// Plan is the distilled result returned to callers.
type Plan struct {
	Sections []Section `json:"sections"`
}

// HasItems reports whether at least one section carries an item.
func (p Plan) HasItems() bool {
	for _, s := range p.Sections {
		if len(s.Items) > 0 {
			return true
		}
	}
	return false
}

// ItemCount returns the total number of items across all sections.
func (p Plan) ItemCount() int {
	n := 0
	for _, s := range p.Sections {
		n += len(s.Items)
	}
	return n
}
