package model

// OriginKind identifies where an evidence record came from
type OriginKind string

const (
	OriginOCRRow   OriginKind = "ocr_csv_row"       // Row from a processed OCR result CSV
	OriginLocation OriginKind = "external_location" // GeoJSON location history file
	OriginEmail    OriginKind = "external_email"    // Email transcript CSV
)

// Priority is the coarse urgency tag assigned upstream by the OCR pipeline
type Priority string

const (
	PriorityCritical Priority = "CRITICAL"
	PriorityHigh     Priority = "HIGH"
	PriorityMedium   Priority = "MEDIUM"
	PriorityLow      Priority = "LOW"
	PriorityUnknown  Priority = "UNKNOWN"
)

// ParsePriority normalizes an upstream priority value, defaulting to UNKNOWN
func ParsePriority(s string) Priority {
	switch Priority(normalizeUpper(s)) {
	case PriorityCritical:
		return PriorityCritical
	case PriorityHigh:
		return PriorityHigh
	case PriorityMedium:
		return PriorityMedium
	case PriorityLow:
		return PriorityLow
	default:
		return PriorityUnknown
	}
}

// Weight returns the fixed scoring weight for the priority
func (p Priority) Weight() int {
	switch p {
	case PriorityCritical:
		return 12
	case PriorityHigh:
		return 10
	case PriorityMedium:
		return 5
	case PriorityLow:
		return 2
	default:
		return 1
	}
}

// SuffixLetter returns the exhibit-name letter for the priority
func (p Priority) SuffixLetter() string {
	switch p {
	case PriorityCritical, PriorityHigh:
		return "A"
	case PriorityMedium:
		return "B"
	case PriorityLow:
		return "C"
	default:
		return "X"
	}
}

// EvidenceRecord is one observed unit of evidence, normalized from an OCR
// result row or an external data file. Records are read-only once loaded.
type EvidenceRecord struct {
	SourceID    string     `json:"source_id"`              // Original filename or external source name
	Origin      OriginKind `json:"origin"`                 // Where the record came from
	RawText     string     `json:"raw_text,omitempty"`     // Extracted/transcribed text, may be empty
	Priority    Priority   `json:"priority"`               // Carried in from upstream, never computed here
	FolderHint  string     `json:"folder_hint,omitempty"`  // Organizational category from file layout
	ContentHash string     `json:"content_hash,omitempty"` // Hex digest recorded at capture time
	DateHint    string     `json:"date_hint,omitempty"`    // YYYYMMDD or free text
	People      []string   `json:"people,omitempty"`       // Detection order preserved, duplicates allowed
	SourcePath  string     `json:"source_path,omitempty"`  // On-disk path of the evidenced file
	SourceTable string     `json:"source_table,omitempty"` // CSV the row was loaded from, or EXTERNAL_*
}

func normalizeUpper(s string) string {
	b := []byte(s)
	out := b[:0]
	for _, c := range b {
		if c == ' ' || c == '\t' {
			continue
		}
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		out = append(out, c)
	}
	return string(out)
}
