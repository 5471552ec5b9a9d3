package model

// Category is a usage bucket a file's bytes are attributed to
type Category int

const (
	Images Category = iota
	Videos
	Music
	Documents
	Archives
	Binaries
	Other

	numCategories
)

// Categories lists every category in report order
var Categories = []Category{Images, Videos, Music, Documents, Archives, Binaries, Other}

// String returns the display name of the category
func (c Category) String() string {
	switch c {
	case Images:
		return "Images"
	case Videos:
		return "Videos"
	case Music:
		return "Music"
	case Documents:
		return "Documents"
	case Archives:
		return "Archives"
	case Binaries:
		return "Binaries"
	case Other:
		return "Other"
	default:
		return "Unknown"
	}
}

// CategoryTotals holds cumulative bytes per category, indexed by Category.
// It is a value type so copies never alias.
type CategoryTotals [numCategories]int64

// Add attributes n bytes to c. Out of range categories count as Other.
func (t *CategoryTotals) Add(c Category, n int64) {
	if c < 0 || c >= numCategories {
		c = Other
	}
	t[c] += n
}

// Get returns the bytes attributed to c
func (t CategoryTotals) Get(c Category) int64 {
	if c < 0 || c >= numCategories {
		return 0
	}
	return t[c]
}

// Sum returns the bytes across all categories
func (t CategoryTotals) Sum() int64 {
	var total int64
	for _, n := range t {
		total += n
	}
	return total
}
