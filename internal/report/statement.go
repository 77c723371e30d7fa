package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// statementTemplate is fixed; only numeric and date fields are substituted.
const statementTemplate = `DEFENSIBILITY STATEMENT - EVIDENCE INTEGRITY CERTIFICATION

Case ID: %s
Date: %s
Total Exhibits: %d
Verified Exhibits: %d (%.1f%%)

I hereby certify that the evidence presented in this matter has been processed, verified, and packaged using industry-standard cryptographic hashing (SHA256) and chain of custody protocols. Each exhibit has been assigned a unique cryptographic fingerprint (SHA256 hash) at the time of original capture, and this hash has been preserved throughout all processing stages. The integrity verification database maintains a complete audit trail of all file validations, timestamps, and processing operations.

The evidence processing system employs automated optical character recognition (OCR) with manual review protocols, systematic categorization based on legal relevance, and weighted scoring algorithms that prioritize evidence based on both substantive importance and temporal relevance. All file operations are logged with timestamps, user actions, and integrity checks to ensure a defensible chain of custody.

External data sources, including geolocation data (GeoJSON format) and email transcripts from Google Takeout, have been integrated with the same integrity verification protocols. Each external data file has been hashed upon ingestion and cross-referenced with source metadata to ensure authenticity.

The SHA256 cryptographic hash function is a one-way function that produces a unique 64-character hexadecimal fingerprint for each file. Any modification to a file, no matter how minor, produces a completely different hash value. This property ensures that the court can verify, at any time, that the evidence has not been altered since initial capture by recomputing the hash and comparing it to the recorded value.

This evidence package has been prepared in accordance with best practices for digital evidence handling and is suitable for admission in legal proceedings.

Prepared by: casebinder evidence processing system
Version: 1.0
Processing Date: %s`

// Statement renders the fixed defensibility statement text
func Statement(caseID string, totalExhibits, verifiedCount int, now time.Time) string {
	rate := 0.0
	if totalExhibits > 0 {
		rate = float64(verifiedCount) / float64(totalExhibits) * 100
	}
	return strings.TrimSpace(fmt.Sprintf(statementTemplate,
		caseID,
		now.Format("January 2, 2006"),
		totalExhibits,
		verifiedCount,
		rate,
		now.UTC().Format(time.RFC3339),
	))
}

// WriteStatement writes the defensibility statement under dir and returns
// its path. Each run produces a fresh dated file; prior statements are
// left untouched.
func WriteStatement(dir, caseID string, totalExhibits, verifiedCount int, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create exhibit dir: %w", err)
	}

	name := fmt.Sprintf("DEFENSIBILITY_STATEMENT_%s_%s.txt", caseID, now.Format("20060102"))
	path := filepath.Join(dir, name)

	text := Statement(caseID, totalExhibits, verifiedCount, now)
	if err := os.WriteFile(path, []byte(text+"\n"), 0o644); err != nil {
		return "", fmt.Errorf("write statement: %w", err)
	}
	return path, nil
}
