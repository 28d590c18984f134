package navigation

import "testing"

func siteItems() []Item {
	return []Item{
		{Label: "Home", URL: "/", Order: 1},
		{Label: "About", URL: "/about", Order: 2},
		{Label: "Spelling Bee", URL: "/spelling-bee", Order: 3},
		{Label: "Vocabulary Bee", URL: "/vocabulary-bee", Order: 4},
	}
}

func activeLabels(items []Item) []string {
	var labels []string
	for _, item := range items {
		if item.Active {
			labels = append(labels, item.Label)
		}
	}
	return labels
}

func TestResolveMarksExactlyOneItem(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"root", "/", "Home"},
		{"about", "/about", "About"},
		{"about trailing slash", "/about/", "About"},
		{"spelling bee", "/spelling-bee", "Spelling Bee"},
		{"vocabulary bee", "/vocabulary-bee", "Vocabulary Bee"},
		{"child of about", "/about/team", "About"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolved := Resolve(siteItems(), tt.path)
			active := activeLabels(resolved)
			if len(active) != 1 {
				t.Fatalf("expected exactly one active item for %q, got %v", tt.path, active)
			}
			if active[0] != tt.want {
				t.Fatalf("expected %q active for %q, got %q", tt.want, tt.path, active[0])
			}
		})
	}
}

func TestResolveUnknownPathMarksNothing(t *testing.T) {
	resolved := Resolve(siteItems(), "/no-such-page")
	if active := activeLabels(resolved); len(active) != 0 {
		t.Fatalf("expected no active item for an unknown path, got %v", active)
	}
}

func TestResolveRootOnlyMatchesRoot(t *testing.T) {
	resolved := Resolve(siteItems(), "/spelling-bee")
	for _, item := range resolved {
		if item.URL == "/" && item.Active {
			t.Fatal("root entry must not light up for a non-root path")
		}
	}
}

func TestResolveExactBeatsPrefix(t *testing.T) {
	items := []Item{
		{Label: "Games", URL: "/games", Order: 1},
		{Label: "Spelling", URL: "/games/spelling", Order: 2},
	}

	active := activeLabels(Resolve(items, "/games/spelling"))
	if len(active) != 1 || active[0] != "Spelling" {
		t.Fatalf("expected exact match to win, got %v", active)
	}
}

func TestResolvePrefixNeedsSegmentBoundary(t *testing.T) {
	items := []Item{{Label: "Spelling Bee", URL: "/spelling", Order: 1}}

	if active := activeLabels(Resolve(items, "/spelling-bee")); len(active) != 0 {
		t.Fatalf("prefix without a segment boundary must not match, got %v", active)
	}
	if active := activeLabels(Resolve(items, "/spelling/round-two")); len(active) != 1 {
		t.Fatalf("segment-boundary prefix should match, got %v", active)
	}
}

func TestResolveHomeThenAbout(t *testing.T) {
	items := siteItems()

	resolved := Resolve(items, "/")
	if active := activeLabels(resolved); len(active) != 1 || active[0] != "Home" {
		t.Fatalf("expected Home active at start, got %v", active)
	}

	resolved = Resolve(items, "/about")
	active := activeLabels(resolved)
	if len(active) != 1 || active[0] != "About" {
		t.Fatalf("expected only About active after navigating, got %v", active)
	}
	if ActiveURL(items, "/about") != "/about" {
		t.Fatalf("expected /about reported active, got %q", ActiveURL(items, "/about"))
	}
}

func TestResolveDoesNotMutateInput(t *testing.T) {
	items := siteItems()
	Resolve(items, "/about")
	for _, item := range items {
		if item.Active {
			t.Fatalf("Resolve must work on a copy, %q was mutated", item.Label)
		}
	}
}

func TestSortStableOnEqualOrder(t *testing.T) {
	items := []Item{
		{Label: "Zebra", URL: "/z", Order: 1},
		{Label: "Apple", URL: "/a", Order: 1},
		{Label: "First", URL: "/f", Order: 0},
	}

	sorted := Sort(items)
	if sorted[0].Label != "First" || sorted[1].Label != "Apple" || sorted[2].Label != "Zebra" {
		t.Fatalf("unexpected sort order: %v", sorted)
	}
}
