// Package mrz locates and parses the TD1 machine-readable zone found on
// identity cards: three fixed-width 30-character lines per ICAO 9303, with
// weighted mod-10 check digits protecting the document number, birth date
// and expiry date.
package mrz

import (
	"regexp"
	"strings"
	"time"
)

const (
	// lineLen is the normalized TD1 line width.
	lineLen = 30
	// minLineLen and maxLineLen bound the OCR tolerance window: lines within
	// this range are candidates and get normalized to lineLen.
	minLineLen = 28
	maxLineLen = 32
)

// mrzChars matches a full line of the MRZ alphabet.
var mrzChars = regexp.MustCompile(`^[A-Z0-9<]+$`)

// checkWeights cycle over the protected substring when computing a check digit.
var checkWeights = [3]int{7, 3, 1}

// Parser extracts TD1 records from OCR text. The zero value is not usable;
// construct with New.
type Parser struct {
	// now supplies the current time for the birth-year century pivot. The
	// pivot follows the clock so the heuristic stays correct decades from now.
	now func() time.Time
}

// Option customizes a Parser.
type Option func(*Parser)

// WithClock overrides the time source used for the birth-year century pivot.
func WithClock(now func() time.Time) Option {
	return func(p *Parser) { p.now = now }
}

// New returns a Parser with the given options applied.
func New(opts ...Option) *Parser {
	p := &Parser{now: time.Now}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Document holds the structured fields of a parsed TD1 zone.
type Document struct {
	DocumentType   string
	CountryCode    string
	DocumentNumber string
	Nationality    string
	Sex            string
	DateOfBirth    time.Time
	ExpiryDate     time.Time
	LastName       string
	FirstName      string

	// Valid is true when all three check digits pass. A false value means the
	// zone was structurally parsed but the document needs manual review.
	Valid bool
}

// Find scans OCR'd text for three consecutive MRZ-shaped lines and parses
// them. It returns found=false when no qualifying triple exists; that is the
// only hard failure. A triple whose checksums fail is still returned, with
// Valid=false, so callers can route it to manual review.
func (p *Parser) Find(ocr string) (*Document, bool) {
	var candidates []string
	for _, raw := range strings.Split(ocr, "\n") {
		line := strings.ToUpper(strings.TrimSpace(raw))
		if len(line) >= minLineLen && len(line) <= maxLineLen && mrzChars.MatchString(line) {
			candidates = append(candidates, normalize(line))

			continue
		}
		// a non-MRZ line breaks any partial run unless a full triple is pending
		if len(candidates) >= 3 {
			break
		}
		candidates = candidates[:0]
	}

	for i := 0; i+3 <= len(candidates); i++ {
		doc := p.parse(candidates[i], candidates[i+1], candidates[i+2])
		// require at least one passing checksum before accepting the triple,
		// otherwise MRZ-shaped OCR noise would be reported as a document
		if doc.anyChecksumOK {
			return &doc.Document, true
		}
	}

	return nil, false
}

// normalize forces a candidate line to exactly lineLen characters, truncating
// or right-padding with filler.
func normalize(line string) string {
	if len(line) > lineLen {
		return line[:lineLen]
	}

	return line + strings.Repeat("<", lineLen-len(line))
}

// parsed wraps a Document with the intermediate checksum outcome used by Find
// to reject noise triples.
type parsed struct {
	Document

	anyChecksumOK bool
}

// parse extracts the TD1 fields from three normalized lines.
//
// Layout:
//
//	line1: [0:2) type, [2:5) issuing country, [5:14) number, [14] check
//	line2: [0:6) birth YYMMDD, [6] check, [7] sex, [8:14) expiry YYMMDD, [14] check, [15:18) nationality
//	line3: surname<<given names
func (p *Parser) parse(line1, line2, line3 string) parsed {
	doc := parsed{}

	doc.DocumentType = strings.Trim(line1[0:2], "<")
	doc.CountryCode = strings.Trim(line1[2:5], "<")
	numberRaw := line1[5:14]
	doc.DocumentNumber = strings.Trim(numberRaw, "<")

	birthRaw := line2[0:6]
	doc.Sex = strings.Trim(line2[7:8], "<")
	expiryRaw := line2[8:14]
	doc.Nationality = strings.Trim(line2[15:18], "<")

	doc.DateOfBirth = p.parseDate(birthRaw, true)
	doc.ExpiryDate = p.parseDate(expiryRaw, false)

	surname, given, _ := strings.Cut(line3, "<<")
	doc.LastName = cleanName(surname)
	doc.FirstName = cleanName(given)

	numberOK := checkDigit(numberRaw) == digitAt(line1, 14)
	birthOK := checkDigit(birthRaw) == digitAt(line2, 6)
	expiryOK := checkDigit(expiryRaw) == digitAt(line2, 14)

	doc.Valid = numberOK && birthOK && expiryOK
	doc.anyChecksumOK = numberOK || birthOK || expiryOK

	return doc
}

// parseDate converts a YYMMDD field into a date. The century is resolved
// here rather than by time.Parse, whose own two-digit-year rule would fight
// the pivot: birth years beyond the current year belong to the 1900s, expiry
// years are always in the 2000s.
func (p *Parser) parseDate(yymmdd string, birth bool) time.Time {
	yy, okY := twoDigits(yymmdd[0:2])
	mm, okM := twoDigits(yymmdd[2:4])
	dd, okD := twoDigits(yymmdd[4:6])
	if !okY || !okM || !okD || mm < 1 || mm > 12 || dd < 1 || dd > 31 {
		return time.Time{}
	}

	year := 2000 + yy
	if birth && yy > p.now().Year()%100 {
		year = 1900 + yy
	}

	return time.Date(year, time.Month(mm), dd, 0, 0, 0, 0, time.UTC)
}

// twoDigits parses a two-character decimal field.
func twoDigits(s string) (int, bool) {
	if s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return 0, false
	}

	return int(s[0]-'0')*10 + int(s[1]-'0'), true
}

// cleanName replaces single fillers with spaces and trims the result.
func cleanName(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "<", " "))
}

// charValue maps an MRZ character to its checksum value: digits map to
// themselves, A-Z to 10-35, filler to 0.
func charValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10
	default:
		return 0
	}
}

// checkDigit computes the ICAO 9303 check digit of s: character values
// weighted 7,3,1 cyclically, summed mod 10.
func checkDigit(s string) int {
	sum := 0
	for i := 0; i < len(s); i++ {
		sum += charValue(s[i]) * checkWeights[i%3]
	}

	return sum % 10
}

// digitAt returns the numeric value of the check digit at position i, or -1
// when the character is not a digit (so comparison against a computed check
// digit always fails).
func digitAt(line string, i int) int {
	c := line[i]
	if c < '0' || c > '9' {
		return -1
	}

	return int(c - '0')
}
