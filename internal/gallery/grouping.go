package gallery

// Group clusters normalized images into artwork groups for the legacy
// all-in-one gallery endpoint. Series members sharing a title collapse into
// one group, standalone images become single-image groups under a distinct
// key so a standalone title can never merge into a series.
//
// Group ordering is first-occurrence order of each key, and a series'
// images keep listing order rather than being sorted by SeriesIndex. The
// gallery relies on lexicographic bucket listings lining up with the index,
// so re-sorting here would change published pages for no visible gain.
func Group(images []ImageRecord) []ArtworkGroup {
	index := make(map[string]int)
	groups := make([]ArtworkGroup, 0, len(images))

	for _, img := range images {
		key := img.Title
		if !img.IsSeries {
			key = "individual_" + img.Title
			if img.Title == "" {
				key = "individual_" + img.Name
			}
		}

		if at, ok := index[key]; ok {
			groups[at].Images = append(groups[at].Images, img.Src)
			continue
		}

		index[key] = len(groups)
		groups = append(groups, ArtworkGroup{
			Title:       img.Title,
			Alt:         img.Alt,
			Description: img.Description,
			Images:      []string{img.Src},
		})
	}

	// A group is a series only when at least two records shared its title,
	// regardless of what the first member's flag claimed.
	for i := range groups {
		groups[i].ID = i + 1
		groups[i].IsSeries = len(groups[i].Images) >= 2
	}

	return groups
}
