package naming

import (
	"fmt"
	"path/filepath"
	"strings"

	"casebinder/internal/model"
)

// Counter hands out exhibit sequence numbers. One counter is owned by one
// pipeline run; numbers start at 1 and are never reused or reassigned.
type Counter struct {
	next int
}

// NewCounter creates a counter starting at 1
func NewCounter() *Counter {
	return &Counter{next: 1}
}

// Next returns the next sequence number
func (c *Counter) Next() int {
	n := c.next
	c.next++
	return n
}

const maxDescriptionLen = 30

// Namer builds deterministic, human-readable exhibit names. Collisions are
// impossible by construction since the sequence strictly increases; no
// existence checks are performed.
type Namer struct {
	caseID string
}

// NewNamer creates a namer for the given case
func NewNamer(caseID string) *Namer {
	return &Namer{caseID: caseID}
}

// Name generates the exhibit name for a record given its primary category
// and assigned sequence number.
func (n *Namer) Name(rec model.EvidenceRecord, primary string, sequence int) string {
	seq := fmt.Sprintf("%03d", sequence)
	suffix := rec.Priority.SuffixLetter()

	switch rec.Origin {
	case model.OriginLocation:
		return fmt.Sprintf("EXHIBIT-%s-%s%s-LOCATION-GEOJSON-%s.json",
			n.caseID, seq, suffix, sanitize(stem(rec.SourceID)))
	case model.OriginEmail:
		return fmt.Sprintf("EXHIBIT-%s-%s%s-COMMUNICATION-EMAIL-%s.pdf",
			n.caseID, seq, suffix, sanitize(stem(rec.SourceID)))
	default:
		return fmt.Sprintf("EXHIBIT-%s-%s%s-%s-%s.pdf",
			n.caseID, seq, suffix, strings.ToUpper(primary), n.description(rec))
	}
}

// description derives a short label from the record's filename, or from
// the first words of its text when no filename exists.
func (n *Namer) description(rec model.EvidenceRecord) string {
	var parts []string
	if rec.SourceID != "" {
		parts = strings.Split(stem(rec.SourceID), "_")
	} else {
		text := rec.RawText
		if len(text) > 50 {
			text = text[:50]
		}
		parts = strings.Fields(text)
	}
	if len(parts) > 3 {
		parts = parts[:3]
	}

	desc := strings.ToUpper(strings.Join(parts, "-"))
	if len(desc) > maxDescriptionLen {
		desc = desc[:maxDescriptionLen] // Truncate before hyphen cleanup
	}
	return sanitize(desc)
}

func stem(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// sanitize replaces everything except letters, digits, and hyphens with
// hyphens, then trims leading/trailing hyphens.
func sanitize(s string) string {
	s = strings.ToUpper(s)
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
