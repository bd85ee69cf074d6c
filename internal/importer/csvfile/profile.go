package csvfile

// Profile describes the header layout of a catalog CSV export.
// Column names are compared case-insensitively after trimming.
type Profile struct {
	Name         string
	Required     []string
	TitleCol     string
	AuthorsCol   string
	ISBNCol      string
	PublisherCol string
	PagesCol     string
	StockCol     string // empty when the layout has no stock column
}

// profiles are tried in order, most specific first.
var profiles = []Profile{
	{
		Name:         "goodreads",
		Required:     []string{"bookid", "title", "authors", "num_pages"},
		TitleCol:     "title",
		AuthorsCol:   "authors",
		ISBNCol:      "isbn",
		PublisherCol: "publisher",
		PagesCol:     "num_pages",
	},
	{
		Name:         "native",
		Required:     []string{"title", "authors"},
		TitleCol:     "title",
		AuthorsCol:   "authors",
		ISBNCol:      "isbn",
		PublisherCol: "publisher",
		PagesCol:     "num_pages",
		StockCol:     "stock",
	},
}
