package clip

import "context"

// placeholderClips is the fixed listing every profile shows
var placeholderClips = []Clip{
	{URL: "/sample1.mp4", Title: "My First Clip", Author: "user_address"},
}

// Catalog lists the clips of a profile
type Catalog interface {
	ListByAuthor(ctx context.Context, address string) ([]Clip, error)
}

// StaticCatalog returns the same placeholder clips for every address
type StaticCatalog struct {
	clips []Clip
}

// NewStaticCatalog creates a catalog over clips, or over the placeholder list when none are given
func NewStaticCatalog(clips ...Clip) *StaticCatalog {
	if len(clips) == 0 {
		clips = placeholderClips
	}
	return &StaticCatalog{clips: clips}
}

// ListByAuthor ignores address; there is no index to query
func (c *StaticCatalog) ListByAuthor(_ context.Context, _ string) ([]Clip, error) {
	out := make([]Clip, len(c.clips))
	copy(out, c.clips)
	return out, nil
}
