package movie

// Apply narrows movies to those matching every supplied criterion.
// Matches are strict string equality, applied name, then year, then rating.
func (f SearchFilter) Apply(movies []Movie) []Movie {
	filtered := movies

	if f.Name != "" {
		filtered = keep(filtered, func(m Movie) bool { return m.Name == f.Name })
	}

	if f.Year != "" {
		filtered = keep(filtered, func(m Movie) bool { return m.Year == f.Year })
	}

	if f.Rating != "" {
		filtered = keep(filtered, func(m Movie) bool { return m.Rating == f.Rating })
	}

	return filtered
}

func keep(movies []Movie, pred func(Movie) bool) []Movie {
	out := make([]Movie, 0, len(movies))

	for _, m := range movies {
		if pred(m) {
			out = append(out, m)
		}
	}

	return out
}
