package catalog

import "charapedia/app/internal/color"

// FindingKind classifies an Audit finding.
type FindingKind string

const (
	FindingDuplicateCode  FindingKind = "duplicate-code"
	FindingUnknownSeries  FindingKind = "unknown-series"
	FindingUnknownArc     FindingKind = "unknown-arc"
	FindingInvalidColor   FindingKind = "invalid-color"
	FindingInvalidWork    FindingKind = "invalid-work-filename"
	FindingOrphanWork     FindingKind = "orphan-work"
	FindingOrphanGallery  FindingKind = "orphan-gallery"
	FindingOrphanSynopsis FindingKind = "orphan-synopsis"
)

// Finding is a data problem the site tolerates but an editor should fix.
type Finding struct {
	Kind    FindingKind
	Subject string
	Detail  string
}

// Audit lists the inconsistencies in s, in table order.
func Audit(s *Snapshot) []Finding {
	if s == nil || s.Index == nil {
		return nil
	}

	var findings []Finding
	idx := s.Index
	seen := make(map[string]struct{}, len(idx.Characters()))

	for _, c := range idx.Characters() {
		if _, dup := seen[c.Code]; dup {
			findings = append(findings, Finding{Kind: FindingDuplicateCode, Subject: c.Code, Detail: c.Title})
		}
		seen[c.Code] = struct{}{}

		if c.Series != "" {
			if _, ok := idx.Series()[c.Series]; !ok {
				findings = append(findings, Finding{Kind: FindingUnknownSeries, Subject: c.Code, Detail: c.Series})
			}
		}
		for _, code := range c.Arc.Codes() {
			if _, ok := idx.Arcs().Get(code); !ok {
				findings = append(findings, Finding{Kind: FindingUnknownArc, Subject: c.Code, Detail: code})
			}
		}
		for _, raw := range c.Colors {
			if _, ok := color.Classify(raw); !ok {
				findings = append(findings, Finding{Kind: FindingInvalidColor, Subject: c.Code, Detail: raw})
			}
		}
	}

	for _, w := range s.Works {
		switch {
		case !w.Valid:
			findings = append(findings, Finding{Kind: FindingInvalidWork, Subject: w.File})
		case w.Character == nil:
			findings = append(findings, Finding{Kind: FindingOrphanWork, Subject: w.File, Detail: w.Code})
		}
	}

	for _, code := range sortedMapKeys(s.Galleries) {
		if _, ok := seen[code]; !ok {
			findings = append(findings, Finding{Kind: FindingOrphanGallery, Subject: code})
		}
	}
	for _, code := range sortedMapKeys(s.Synopses) {
		if _, ok := seen[code]; !ok {
			findings = append(findings, Finding{Kind: FindingOrphanSynopsis, Subject: code})
		}
	}

	return findings
}

func sortedMapKeys[V any](m map[string]V) []string {
	set := make(map[string]struct{}, len(m))
	for key := range m {
		set[key] = struct{}{}
	}
	return sortedKeys(set)
}
