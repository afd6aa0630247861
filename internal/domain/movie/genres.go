package movie

// the catalog rendered into the add/edit/search forms. Submissions are only
// checked for presence, not membership, matching the listing behavior the
// forms rely on.
var genreCatalog = []string{
	"adventure",
	"science fiction",
	"tragedy",
	"romance",
	"horror",
	"comedy",
}

// Catalog returns a copy so callers cannot mutate the shared list.
func Catalog() []string {
	out := make([]string, len(genreCatalog))
	copy(out, genreCatalog)
	return out
}
