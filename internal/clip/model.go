package clip

// Clip is a short video shown on a profile. URL is its only identity.
type Clip struct {
	URL    string `json:"url"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

// Card is a clip together with its share link, ready for rendering
type Card struct {
	Clip
	ShareURL string `json:"shareUrl"`
}
