package mrz

import (
	"log/slog"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Format identifies the physical MRZ layout of a travel document.
type Format string

const (
	FormatUnknown Format = ""
	TD1           Format = "TD1" // ID cards, 3 lines of 30
	TD2           Format = "TD2" // older ID documents, 2 lines of 36
	TD3           Format = "TD3" // passports, 2 lines of 44
)

// Nominal concatenated lengths per format. Detection tolerates a slack of
// two characters in either direction, since OCR tends to drop or invent a
// character near the edges of the zone.
const (
	td1Length   = 90
	td2Length   = 72
	td3Length   = 88
	lengthSlack = 2

	minLineLength = 20
)

// Data is the parse result for one machine readable zone. Raw date fields
// stay in YYMMDD form; FormatDate reconstructs the full year when needed.
type Data struct {
	Format           Format   `json:"format"`
	DocumentCode     string   `json:"document_code"`
	IssuingState     string   `json:"issuing_state"`
	LastName         string   `json:"last_name"`
	FirstName        string   `json:"first_name"`
	DocumentNumber   string   `json:"document_number"`
	Nationality      string   `json:"nationality"`
	DateOfBirth      string   `json:"date_of_birth"` // YYMMDD
	Sex              string   `json:"sex"`
	DateOfExpiry     string   `json:"date_of_expiry"` // YYMMDD
	OptionalData1    string   `json:"optional_data_1,omitempty"`
	OptionalData2    string   `json:"optional_data_2,omitempty"`
	Valid            bool     `json:"valid"`
	ValidationErrors []string `json:"validation_errors"`
}

// span is a half-open [start, end) character range in the cleaned text.
type span struct {
	start, end int
}

// layout holds the fixed field offsets for one format, indexed into the
// concatenation of all MRZ lines.
type layout struct {
	documentCode        span
	issuingState        span
	name                span
	documentNumber      span
	documentNumberCheck int
	nationality         span
	dateOfBirth         span
	dateOfBirthCheck    int
	sex                 int
	dateOfExpiry        span
	dateOfExpiryCheck   int
	optionalData1       span
	optionalData2       span // TD1 only
}

var layouts = map[Format]layout{
	TD1: {
		documentCode:        span{0, 2},
		issuingState:        span{2, 5},
		documentNumber:      span{5, 14},
		documentNumberCheck: 14,
		optionalData1:       span{15, 30},
		dateOfBirth:         span{30, 36},
		dateOfBirthCheck:    36,
		sex:                 37,
		dateOfExpiry:        span{38, 44},
		dateOfExpiryCheck:   44,
		nationality:         span{45, 48},
		optionalData2:       span{48, 59},
		name:                span{60, 90},
	},
	TD2: {
		documentCode:        span{0, 2},
		issuingState:        span{2, 5},
		name:                span{5, 36},
		documentNumber:      span{36, 45},
		documentNumberCheck: 45,
		nationality:         span{46, 49},
		dateOfBirth:         span{49, 55},
		dateOfBirthCheck:    55,
		sex:                 56,
		dateOfExpiry:        span{57, 63},
		dateOfExpiryCheck:   63,
		optionalData1:       span{64, 71},
	},
	TD3: {
		documentCode:        span{0, 2},
		issuingState:        span{2, 5},
		name:                span{5, 44},
		documentNumber:      span{44, 53},
		documentNumberCheck: 53,
		nationality:         span{54, 57},
		dateOfBirth:         span{57, 63},
		dateOfBirthCheck:    63,
		sex:                 64,
		dateOfExpiry:        span{65, 71},
		dateOfExpiryCheck:   71,
		optionalData1:       span{72, 86},
	},
}

// asciiFold strips diacritics so accented OCR output ("ÉRIKSSON") still maps
// into the MRZ alphabet before filtering.
var asciiFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Parse extracts MRZ data from raw OCR text. It returns nil when the text
// contains nothing that looks like a machine readable zone. Check digit
// failures never abort the parse: fields are reported as read, the failures
// land in ValidationErrors, and Valid reflects whether that list is empty.
func Parse(raw string) *Data {
	text := cleanText(raw)

	format := detectFormat(len(text))
	if format == FormatUnknown {
		slog.Debug("No MRZ found in OCR text", "cleaned_length", len(text))
		return nil
	}
	slog.Debug("MRZ format detected", "format", format, "cleaned_length", len(text))

	lay := layouts[format]
	data := &Data{
		Format:           format,
		DocumentCode:     slice(text, lay.documentCode),
		IssuingState:     slice(text, lay.issuingState),
		DocumentNumber:   slice(text, lay.documentNumber),
		Nationality:      slice(text, lay.nationality),
		DateOfBirth:      slice(text, lay.dateOfBirth),
		Sex:              charAtAsString(text, lay.sex),
		DateOfExpiry:     slice(text, lay.dateOfExpiry),
		OptionalData1:    trimFiller(slice(text, lay.optionalData1)),
		ValidationErrors: []string{},
	}
	if format == TD1 {
		data.OptionalData2 = trimFiller(slice(text, lay.optionalData2))
	}
	data.LastName, data.FirstName = ParseName(slice(text, lay.name))

	data.checkField("document number", data.DocumentNumber, charAt(text, lay.documentNumberCheck))
	data.checkField("date of birth", data.DateOfBirth, charAt(text, lay.dateOfBirthCheck))
	data.checkField("expiration date", data.DateOfExpiry, charAt(text, lay.dateOfExpiryCheck))
	data.Valid = len(data.ValidationErrors) == 0

	return data
}

// ParseName splits an MRZ name field on the first "<<" into surname and
// given names. Within each segment every '<' becomes a single space and the
// result is trimmed. A missing segment comes back as an empty string.
func ParseName(field string) (lastName, firstName string) {
	parts := strings.SplitN(field, "<<", 2)
	lastName = nameSegment(parts[0])
	if len(parts) == 2 {
		firstName = nameSegment(parts[1])
	}
	return lastName, firstName
}

func nameSegment(segment string) string {
	return strings.TrimSpace(strings.ReplaceAll(segment, "<", " "))
}

// cleanText runs the OCR noise pipeline: fold diacritics, uppercase, drop
// whitespace, keep only plausible MRZ lines, then concatenate and restrict
// to the MRZ alphabet. 'O' is rewritten to '0' across the whole
// concatenation, names included; OCR confuses the two far more often than a
// document legitimately differs.
func cleanText(raw string) string {
	if folded, _, err := transform.String(asciiFold, raw); err == nil {
		raw = folded
	}

	var candidates []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.ToUpper(stripWhitespace(line))
		if len(line) < minLineLength {
			continue
		}
		if isMrzAlphabet(line) || strings.ContainsRune(line, '<') {
			candidates = append(candidates, line)
		}
	}

	var b strings.Builder
	for _, line := range candidates {
		for _, r := range line {
			if r == 'O' {
				r = '0'
			}
			if isMrzRune(r) {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func isMrzRune(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '<'
}

func isMrzAlphabet(s string) bool {
	for _, r := range s {
		if !isMrzRune(r) {
			return false
		}
	}
	return true
}

// detectFormat classifies by cleaned length only, first match wins. The TD1
// and TD3 windows overlap at 88-90, so a full-length TD3 classifies as TD1
// and fails its check digits. Known limitation of the length heuristic, do
// not reorder the cases.
func detectFormat(length int) Format {
	switch {
	case length >= td1Length-lengthSlack && length <= td1Length+lengthSlack:
		return TD1
	case length >= td2Length-lengthSlack && length <= td2Length+lengthSlack:
		return TD2
	case length >= td3Length-lengthSlack && length <= td3Length+lengthSlack:
		return TD3
	}
	return FormatUnknown
}

// slice reads a span out of text, tolerating input shorter than the nominal
// layout. Out-of-range reads yield shorter fields, never a panic.
func slice(text string, sp span) string {
	if sp.start >= len(text) {
		return ""
	}
	end := sp.end
	if end > len(text) {
		end = len(text)
	}
	return text[sp.start:end]
}

func charAt(text string, i int) byte {
	if i < 0 || i >= len(text) {
		return 0
	}
	return text[i]
}

func charAtAsString(text string, i int) string {
	c := charAt(text, i)
	if c == 0 {
		return ""
	}
	return string(c)
}

func trimFiller(s string) string {
	return strings.Trim(s, "<")
}

func (d *Data) checkField(name, value string, check byte) {
	if !ValidateCheckDigit(value, check) {
		d.ValidationErrors = append(d.ValidationErrors, "invalid "+name+" check digit")
	}
}
