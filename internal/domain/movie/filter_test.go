package movie

import "testing"

func sampleMovies() []Movie {
	return []Movie{
		{ID: "1", Name: "Inception", Year: "2010", Rating: "8.8"},
		{ID: "2", Name: "Tenet", Year: "2020", Rating: "7.4"},
		{ID: "3", Name: "Inception", Year: "2020", Rating: "6.0"},
	}
}

func TestSearchFilterApply(t *testing.T) {
	tests := []struct {
		name    string
		filter  SearchFilter
		wantIDs []string
	}{
		{
			name:    "empty_filter_keeps_everything",
			filter:  SearchFilter{},
			wantIDs: []string{"1", "2", "3"},
		},
		{
			name:    "name_is_exact_match",
			filter:  SearchFilter{Name: "Inception"},
			wantIDs: []string{"1", "3"},
		},
		{
			name:    "partial_name_matches_nothing",
			filter:  SearchFilter{Name: "Incep"},
			wantIDs: []string{},
		},
		{
			name:    "criteria_combine_with_and",
			filter:  SearchFilter{Name: "Inception", Year: "2020"},
			wantIDs: []string{"3"},
		},
		{
			name:    "rating_alone",
			filter:  SearchFilter{Rating: "7.4"},
			wantIDs: []string{"2"},
		},
		{
			name:    "all_criteria_with_no_match",
			filter:  SearchFilter{Name: "Tenet", Year: "2010", Rating: "7.4"},
			wantIDs: []string{},
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.Apply(sampleMovies())

			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %d movies, want %d: %+v", len(got), len(tt.wantIDs), got)
			}

			for i, m := range got {
				if m.ID != tt.wantIDs[i] {
					t.Errorf("result[%d].ID = %q, want %q", i, m.ID, tt.wantIDs[i])
				}
			}
		})
	}
}

func TestCatalogIsACopy(t *testing.T) {
	first := Catalog()
	first[0] = "mutated"

	if Catalog()[0] == "mutated" {
		t.Fatal("Catalog must return a fresh copy")
	}
}
