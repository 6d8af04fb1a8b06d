package prompt

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var phonePattern = regexp.MustCompile(`^\d{9,15}$`)

// Reader is the input provider: it keeps re-prompting until it can hand the
// caller an already-validated value. Malformed input is recovered here and
// never surfaces as an error to the layers above.
type Reader struct {
	in  *bufio.Scanner
	out io.Writer
	eof bool
}

// New creates a reader over the given streams.
func New(in io.Reader, out io.Writer) *Reader {
	return &Reader{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

func (r *Reader) line(label string) (string, bool) {
	fmt.Fprintf(r.out, "%s: ", label)
	if !r.in.Scan() {
		r.eof = true
		return "", false
	}
	return strings.TrimSpace(r.in.Text()), true
}

// EOF reports whether the input stream is exhausted. Once true, every read
// method returns its zero value immediately; callers driving a loop must
// check it to stop instead of re-prompting a closed stream.
func (r *Reader) EOF() bool {
	return r.eof
}

// Text reads a trimmed, non-empty string.
func (r *Reader) Text(label string) string {
	for {
		value, ok := r.line(label)
		if !ok {
			return ""
		}
		if value != "" {
			return value
		}
		fmt.Fprintln(r.out, "value cannot be empty")
	}
}

// Optional reads a trimmed string that may be empty.
func (r *Reader) Optional(label string) string {
	value, _ := r.line(label)
	return value
}

// Int reads an integer, re-prompting on parse failure.
func (r *Reader) Int(label string) int64 {
	for {
		value, ok := r.line(label)
		if !ok {
			return 0
		}
		n, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return n
		}
		fmt.Fprintln(r.out, "enter a whole number")
	}
}

// Float reads a decimal number, re-prompting on parse failure.
func (r *Reader) Float(label string) float64 {
	for {
		value, ok := r.line(label)
		if !ok {
			return 0
		}
		f, err := strconv.ParseFloat(value, 64)
		if err == nil {
			return f
		}
		fmt.Fprintln(r.out, "enter a number")
	}
}

// Phone reads a digit string of 9 to 15 characters.
func (r *Reader) Phone(label string) string {
	for {
		value, ok := r.line(label)
		if !ok {
			return ""
		}
		if ValidPhone(value) {
			return value
		}
		fmt.Fprintln(r.out, "phone must be 9 to 15 digits")
	}
}

// Email reads a string containing both "@" and ".".
func (r *Reader) Email(label string) string {
	for {
		value, ok := r.line(label)
		if !ok {
			return ""
		}
		if ValidEmail(value) {
			return value
		}
		fmt.Fprintln(r.out, "email must contain '@' and '.'")
	}
}

// Date reads a calendar date in YYYY-MM-DD form.
func (r *Reader) Date(label string) string {
	for {
		value, ok := r.line(label)
		if !ok {
			return ""
		}
		if _, err := time.Parse("2006-01-02", value); err == nil {
			return value
		}
		fmt.Fprintln(r.out, "date must be YYYY-MM-DD")
	}
}

// Secret reads a non-empty value twice and requires both entries to match.
// Confirm-on-entry is this caller-side policy, not the credential service's.
func (r *Reader) Secret(label string) string {
	for {
		first := r.Text(label)
		if first == "" {
			return ""
		}
		second := r.Text(label + " (confirm)")
		if first == second {
			return first
		}
		fmt.Fprintln(r.out, "entries do not match, try again")
	}
}

// ValidPhone reports whether the value is a 9-15 digit string.
func ValidPhone(value string) bool {
	return phonePattern.MatchString(value)
}

// ValidEmail reports whether the value contains both "@" and ".".
func ValidEmail(value string) bool {
	return strings.Contains(value, "@") && strings.Contains(value, ".")
}
