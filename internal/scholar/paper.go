package scholar

// Paper is one academic source in the final report. Year is a pointer so
// papers without a publication year serialize as null rather than 0.
type Paper struct {
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	Year          *int     `json:"year"`
	URL           string   `json:"url"`
	CitationCount int      `json:"citationCount"`
	Similarity    float64  `json:"similarity"`
}
