package sectionset

// Approved reports whether a course's identity (its name key or either of
// its catalog codes) appears in the caller's already-normalized set of
// approved keys. resolvedApprovedKeys holds name keys, the output of the
// identity resolver's key resolution (which already folded codes into
// keys) — see internal/identity.ResolveKeys.
func Approved(courseKey string, resolvedApprovedKeys map[string]struct{}) bool {
	_, ok := resolvedApprovedKeys[courseKey]
	return ok
}

// ViableSections (C5) returns every section whose Course has not been
// approved. Prerequisite satisfaction is deliberately not checked here —
// per spec, filtering on prerequisite state at this stage risks producing
// zero candidates for the clique selector; the clique stage is what turns
// viable sections into a feasible, non-conflicting schedule.
func ViableSections(sections []Section, resolvedApprovedKeys map[string]struct{}) []Section {
	viable := make([]Section, 0, len(sections))
	for _, s := range sections {
		if Approved(s.NameKey, resolvedApprovedKeys) {
			continue
		}
		viable = append(viable, s)
	}
	return viable
}
