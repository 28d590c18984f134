package navigation

import (
	"sort"
	"strings"

	"buzzwordz-backend/pkg/utils"
)

// Item is a single entry of the navigation overlay rendered above every page.
type Item struct {
	Label  string `json:"label"`
	URL    string `json:"url"`
	Order  int    `json:"order"`
	Active bool   `json:"active"`
}

// Sort orders items by their configured weight, falling back to label so the
// overlay is stable when weights collide.
func Sort(items []Item) []Item {
	sorted := make([]Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Order != sorted[j].Order {
			return sorted[i].Order < sorted[j].Order
		}
		return sorted[i].Label < sorted[j].Label
	})
	return sorted
}

// Resolve returns a copy of items with the entry matching the request path
// marked active. At most one entry is active: an exact path match wins,
// otherwise the longest prefix match on a segment boundary. The root entry
// only matches the root path, so "/spelling-bee" never lights up "Home".
func Resolve(items []Item, requestPath string) []Item {
	current := utils.NormalizePath(requestPath)

	resolved := Sort(items)
	best := -1
	bestLen := -1
	for i, item := range resolved {
		resolved[i].Active = false
		target := utils.NormalizePath(item.URL)
		if target == current {
			best = i
			bestLen = len(target) + 1 // exact match beats any prefix of equal length
			continue
		}
		if target == "/" {
			continue
		}
		if strings.HasPrefix(current, target+"/") && len(target) > bestLen {
			best = i
			bestLen = len(target)
		}
	}

	if best >= 0 {
		resolved[best].Active = true
	}
	return resolved
}

// ActiveURL reports the URL of the entry Resolve would mark active, or ""
// when the path belongs to no known entry.
func ActiveURL(items []Item, requestPath string) string {
	for _, item := range Resolve(items, requestPath) {
		if item.Active {
			return utils.NormalizePath(item.URL)
		}
	}
	return ""
}
