package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/depotnotes/internal/domain"
)

// timeLayout is fixed-width UTC so text ordering matches time ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t, nil
}

// encodeFlags stores only the flags that are set, so a saved job reads
// back the same whether absent flags were false or missing.
func encodeFlags(f domain.Flags) (string, error) {
	active := make(map[string]bool, len(f))
	for _, name := range f.Names() {
		active[name] = true
	}
	b, err := json.Marshal(active)
	if err != nil {
		return "", fmt.Errorf("encoding flags: %w", err)
	}
	return string(b), nil
}

func decodeFlags(s string) (domain.Flags, error) {
	f := domain.Flags{}
	if s == "" {
		return f, nil
	}
	if err := json.Unmarshal([]byte(s), &f); err != nil {
		return nil, fmt.Errorf("decoding flags: %w", err)
	}
	return f, nil
}

func encodeLines(lines []string) (string, error) {
	if lines == nil {
		lines = []string{}
	}
	b, err := json.Marshal(lines)
	if err != nil {
		return "", fmt.Errorf("encoding note lines: %w", err)
	}
	return string(b), nil
}

func decodeLines(s string) ([]string, error) {
	var lines []string
	if err := json.Unmarshal([]byte(s), &lines); err != nil {
		return nil, fmt.Errorf("decoding note lines: %w", err)
	}
	return lines, nil
}
