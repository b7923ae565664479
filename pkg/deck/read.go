package deck

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// keywordPattern matches an Eclipse keyword header: an uppercase
// mnemonic starting in column one, alone on its line.
var keywordPattern = regexp.MustCompile(`^[A-Z][A-Z0-9_]{0,7}$`)

// ReadString parses deck text into a Deck. See Read.
func ReadString(s string) (*Deck, error) {
	return Read(strings.NewReader(s))
}

// Read parses deck text into an ordered keyword sequence. The reader is
// deliberately permissive and minimal: it understands "--" comments,
// quoted strings, n* repeat/default tokens and "/" record terminators,
// and it only parses record bodies for the six keywords the extractor
// recognizes. Bodies of other keywords are skipped up to the next
// keyword header, so a deck is never rejected for unsupported syntax
// outside the recognized blocks.
func Read(r io.Reader) (*Deck, error) {
	d := &Deck{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		current *Keyword // keyword being filled, nil between blocks
		tokens  []string // partial record, records may span lines
		lineNo  int
	)

	finish := func() {
		if current != nil {
			d.Keywords = append(d.Keywords, *current)
			current = nil
		}
		tokens = nil
	}

	for scanner.Scan() {
		lineNo++
		line := stripComment(scanner.Text())
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		// A keyword header starts in column one and is alone on its
		// line. Mid-record lines never start a new keyword.
		if len(tokens) == 0 && line[0] != ' ' && line[0] != '\t' && keywordPattern.MatchString(trimmed) {
			finish()
			current = &Keyword{Name: trimmed}
			if !recognized(trimmed) {
				// Keep the name so downstream code can count skipped
				// keywords, but ignore the body.
				d.Keywords = append(d.Keywords, *current)
				current = nil
			}
			continue
		}

		if current == nil {
			// Body of an unrecognized keyword.
			continue
		}

		lineTokens, err := tokenize(trimmed)
		if err != nil {
			return nil, &ReadError{Keyword: current.Name, Line: lineNo, Cause: err}
		}
		for _, tok := range lineTokens {
			if tok == "/" {
				if len(tokens) == 0 {
					// Bare slash terminates the keyword block.
					finish()
					break
				}
				if err := appendRecord(current, tokens); err != nil {
					return nil, &ReadError{Keyword: current.Name, Line: lineNo, Cause: err}
				}
				tokens = nil
				continue
			}
			tokens = append(tokens, tok)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading deck: %w", err)
	}
	finish()
	return d, nil
}

func recognized(name string) bool {
	switch name {
	case KwDates, KwStart, KwTstep, KwGruptree, KwWelspecs, KwGrupnet:
		return true
	}
	return false
}

// stripComment removes a trailing "--" comment, respecting quotes.
func stripComment(line string) string {
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '-' && i+1 < len(line) && line[i+1] == '-':
			return line[:i]
		}
	}
	return line
}

// tokenize splits a record line into tokens. Quoted strings become one
// token with the quotes stripped; an unquoted "/" is its own token and
// anything after it on the line is discarded (trailing record comments
// are common in hand-written decks).
func tokenize(line string) ([]string, error) {
	var tokens []string
	i := 0
	for i < len(line) {
		c := line[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case c == '\'' || c == '"':
			end := strings.IndexByte(line[i+1:], c)
			if end < 0 {
				return nil, fmt.Errorf("%w: unterminated quote", ErrBadRecord)
			}
			tokens = append(tokens, line[i+1:i+1+end])
			i += end + 2
		case c == '/':
			return append(tokens, "/"), nil
		default:
			end := i
			for end < len(line) && line[end] != ' ' && line[end] != '\t' && line[end] != '/' {
				end++
			}
			tokens = append(tokens, line[i:end])
			i = end
		}
	}
	return tokens, nil
}

// appendRecord parses one completed record into the keyword's typed
// record slice.
func appendRecord(kw *Keyword, tokens []string) error {
	switch kw.Name {
	case KwDates, KwStart:
		rec, err := parseDateRecord(tokens)
		if err != nil {
			return err
		}
		kw.Dates = append(kw.Dates, rec)
	case KwTstep:
		rec, err := parseStepRecord(tokens)
		if err != nil {
			return err
		}
		kw.Steps = append(kw.Steps, rec)
	case KwGruptree:
		rec, err := parseEdgeRecord(tokens)
		if err != nil {
			return err
		}
		kw.Edges = append(kw.Edges, rec)
	case KwWelspecs:
		rec, err := parseWellRecord(tokens)
		if err != nil {
			return err
		}
		kw.Wells = append(kw.Wells, rec)
	case KwGrupnet:
		rec, err := parseNetRecord(tokens)
		if err != nil {
			return err
		}
		kw.Net = append(kw.Net, rec)
	}
	return nil
}

func parseDateRecord(tokens []string) (DateRecord, error) {
	if len(tokens) < 3 {
		return DateRecord{}, fmt.Errorf("%w: want DAY MONTH YEAR, got %d fields", ErrBadRecord, len(tokens))
	}
	day, err := strconv.Atoi(tokens[0])
	if err != nil {
		return DateRecord{}, fmt.Errorf("%w: day %q", ErrBadNumber, tokens[0])
	}
	month, err := ParseMonth(tokens[1])
	if err != nil {
		return DateRecord{}, err
	}
	year, err := strconv.Atoi(tokens[2])
	if err != nil {
		return DateRecord{}, fmt.Errorf("%w: year %q", ErrBadNumber, tokens[2])
	}
	return DateRecord{Day: day, Month: month, Year: year}, nil
}

func parseStepRecord(tokens []string) (StepRecord, error) {
	var rec StepRecord
	for _, tok := range tokens {
		count, value, hasValue, err := splitRepeat(tok)
		if err != nil {
			return StepRecord{}, err
		}
		if !hasValue {
			return StepRecord{}, fmt.Errorf("%w: defaulted step length %q", ErrBadRecord, tok)
		}
		days, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return StepRecord{}, fmt.Errorf("%w: step length %q", ErrBadNumber, value)
		}
		for i := 0; i < count; i++ {
			rec.Days = append(rec.Days, days)
		}
	}
	return rec, nil
}

func parseEdgeRecord(tokens []string) (EdgeRecord, error) {
	if len(tokens) < 1 {
		return EdgeRecord{}, fmt.Errorf("%w: GRUPTREE record needs a child name", ErrBadRecord)
	}
	rec := EdgeRecord{Child: tokens[0], Parent: DefaultParent}
	if len(tokens) > 1 && !isDefault(tokens[1]) {
		rec.Parent = tokens[1]
	}
	return rec, nil
}

func parseWellRecord(tokens []string) (WellRecord, error) {
	if len(tokens) < 2 {
		return WellRecord{}, fmt.Errorf("%w: WELSPECS record needs well and group names", ErrBadRecord)
	}
	return WellRecord{Well: tokens[0], Group: tokens[1]}, nil
}

// grupnetFields is the positional field order of a GRUPNET record after
// the group name.
const grupnetFields = 6

func parseNetRecord(tokens []string) (NetRecord, error) {
	if len(tokens) < 1 {
		return NetRecord{}, fmt.Errorf("%w: GRUPNET record needs a group name", ErrBadRecord)
	}
	rec := NetRecord{Name: tokens[0]}

	// Walk the positional fields, honoring n* default runs. A defaulted
	// field stays nil.
	field := 0
	for _, tok := range tokens[1:] {
		if field >= grupnetFields {
			break
		}
		count, value, hasValue, err := splitRepeat(tok)
		if err != nil {
			return NetRecord{}, err
		}
		for i := 0; i < count && field < grupnetFields; i++ {
			if hasValue {
				if err := setNetField(&rec, field, value); err != nil {
					return NetRecord{}, err
				}
			}
			field++
		}
	}
	return rec, nil
}

func setNetField(rec *NetRecord, field int, value string) error {
	switch field {
	case 0:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: terminal pressure %q", ErrBadNumber, value)
		}
		rec.TerminalPressure = &v
	case 1:
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: VFP table %q", ErrBadNumber, value)
		}
		rec.VFPTable = &v
	case 2:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: ALQ %q", ErrBadNumber, value)
		}
		rec.ALQ = &v
	case 3:
		v := value
		rec.SubSeaManifold = &v
	case 4:
		v := value
		rec.LiftGasFlowThrough = &v
	case 5:
		v := value
		rec.ALQSurfaceEqv = &v
	}
	return nil
}

// splitRepeat decodes a record token into (count, value, hasValue).
// Plain tokens yield (1, tok, true); "n*value" yields (n, value, true);
// "n*" and "*" are defaults and yield hasValue false.
func splitRepeat(tok string) (int, string, bool, error) {
	star := strings.IndexByte(tok, '*')
	if star < 0 {
		return 1, tok, true, nil
	}
	count := 1
	if star > 0 {
		n, err := strconv.Atoi(tok[:star])
		if err != nil || n < 1 {
			return 0, "", false, fmt.Errorf("%w: %q", ErrBadRepeat, tok)
		}
		count = n
	}
	value := tok[star+1:]
	if value == "" {
		return count, "", false, nil
	}
	return count, value, true, nil
}

func isDefault(tok string) bool {
	_, _, hasValue, err := splitRepeat(tok)
	return err == nil && !hasValue
}
