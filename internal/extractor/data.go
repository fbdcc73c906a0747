package extractor

// Review is one customer review lifted out of a single review container,
// combined with the page-level fields shared by every review on the page.
//
// All fields are rendered strings taken from the page as-is; no numeric
// parsing happens here so locale-dependent formats survive untouched.
type Review struct {
	// First token of the "<N> out of 5 stars" phrase, e.g. "5.0"
	Rating string `json:"rating"`
	// Review heading with the leading rating phrase stripped
	Title string `json:"title"`
	// Review date as rendered on the page (free-form, locale-dependent)
	Date string `json:"date"`
	// Review body, truncated to the first 100 words when longer
	Body string `json:"body"`
	// Product image URL. Page-level, absent when the page carries none.
	ImageSrc string `json:"imageSrc,omitempty"`
	// Page-level aggregate rating with the "out of 5" qualifier removed
	RatingText string `json:"ratingText"`
	// Page-level product title
	ProductName string `json:"productName"`
}

// pageFields are read once from the document root and attached to every
// Review built from that document.
type pageFields struct {
	imageSrc    string
	ratingText  string
	productName string
}
