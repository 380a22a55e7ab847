package sectionset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViableSectionsExcludesApproved(t *testing.T) {
	sections := []Section{
		{NameKey: "a", SectionLabel: "1"},
		{NameKey: "b", SectionLabel: "1"},
	}
	approved := map[string]struct{}{"a": {}}
	viable := ViableSections(sections, approved)
	assert.Len(t, viable, 1)
	assert.Equal(t, "b", viable[0].NameKey)
}

func TestViableSectionsNoApprovalsKeepsAll(t *testing.T) {
	sections := []Section{{NameKey: "a"}, {NameKey: "b"}}
	viable := ViableSections(sections, map[string]struct{}{})
	assert.Len(t, viable, 2)
}
