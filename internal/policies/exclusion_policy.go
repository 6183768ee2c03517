package policies

import "strings"

// ExclusionPolicy skips records whose editor ID contains any configured
// keyword. Matching is a case-sensitive substring test.
type ExclusionPolicy struct {
	keywords []string
}

func NewExclusionPolicy(keywords []string) ExclusionPolicy {
	var kept []string
	for _, keyword := range keywords {
		if strings.TrimSpace(keyword) == "" {
			continue
		}
		kept = append(kept, keyword)
	}
	return ExclusionPolicy{keywords: kept}
}

// Empty reports whether no usable keyword was configured.
func (p ExclusionPolicy) Empty() bool {
	return len(p.keywords) == 0
}

// Matching returns the first keyword contained in editorID, or "" when
// the record is not excluded. Records without an editor ID are never
// excluded.
func (p ExclusionPolicy) Matching(editorID string) string {
	if strings.TrimSpace(editorID) == "" {
		return ""
	}
	for _, keyword := range p.keywords {
		if strings.Contains(editorID, keyword) {
			return keyword
		}
	}
	return ""
}
