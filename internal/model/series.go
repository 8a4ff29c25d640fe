package model

// Chapter is one downloadable unit of a series. Volume and Chapter are the
// markers under which the provider groups it; either can be empty.
type Chapter struct {
	ID      string
	Title   string
	Volume  string
	Chapter string
}

// Series is a normalized metadata snapshot fetched from a provider
type Series struct {
	ID       string
	Title    string
	Provider Provider
	Chapters []Chapter
}

// FindChapter returns the chapter with the given id, if present
func (s *Series) FindChapter(id string) (Chapter, bool) {
	for _, ch := range s.Chapters {
		if ch.ID == id {
			return ch, true
		}
	}
	return Chapter{}, false
}
