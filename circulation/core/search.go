package core

import (
	"strings"
)

// SearchByKeyword returns the items whose title contains keyword, case-insensitively, in input order.
func SearchByKeyword(items []*Item, keyword string) []*Item {
	needle := strings.ToLower(keyword)
	results := make([]*Item, 0)

	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Title()), needle) {
			results = append(results, item)
		}
	}

	return results
}

// SearchByCreator returns the items with at least one creator containing the given name, case-insensitively.
func SearchByCreator(items []*Item, creator string) []*Item {
	needle := strings.ToLower(creator)
	results := make([]*Item, 0)

	for _, item := range items {
		for _, c := range item.Creators() {
			if strings.Contains(strings.ToLower(c), needle) {
				results = append(results, item)
				break
			}
		}
	}

	return results
}
