package sectionset

import (
	"sort"
	"strings"
)

func joinSorted(ids []string) string {
	cp := make([]string, len(ids))
	copy(cp, ids)
	sort.Strings(cp)
	return strings.Join(cp, "|")
}
