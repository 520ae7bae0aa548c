package domain

// Note holds the speaker notes of one slide.
type Note struct {
	SlideID string `json:"slide_id"`
	Title   string `json:"title,omitempty"`
	Body    string `json:"body"`
}
