package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/five82/opsboard/internal/logging"
)

// Read returns at most maxLines from the end of the file at path. A missing
// file yields no lines and no error.
func Read(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	seen, next := 0, 0
	for scanner.Scan() {
		ring[next] = scanner.Text()
		next = (next + 1) % maxLines
		seen++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	if seen < maxLines {
		return slices.Clone(ring[:seen]), nil
	}
	return append(slices.Clone(ring[next:]), ring[:next]...), nil
}

// Entry is one decoded log line.
type Entry struct {
	Time    time.Time
	Level   string
	Message string
	Fields  map[string]string
	// Raw is set for lines that are not zap JSON.
	Raw string
}

// Parse decodes a zap JSON line. Anything else comes back as a Raw entry.
func Parse(line string) Entry {
	var obj map[string]any
	if err := json.Unmarshal([]byte(line), &obj); err != nil || obj == nil {
		return Entry{Raw: line}
	}

	e := Entry{Fields: map[string]string{}}
	for k, v := range obj {
		switch k {
		case logging.TimeKey:
			if s, ok := v.(string); ok {
				if t, err := time.Parse("2006-01-02T15:04:05.000Z0700", s); err == nil {
					e.Time = t
				}
			}
		case logging.LevelKey:
			e.Level, _ = v.(string)
		case logging.MessageKey:
			e.Message, _ = v.(string)
		case logging.LoggerKey, "caller":
		default:
			e.Fields[k] = fmt.Sprint(v)
		}
	}
	if e.Message == "" && e.Level == "" {
		return Entry{Raw: line}
	}
	return e
}

// ReadEntries is Read followed by Parse, skipping blank lines.
func ReadEntries(path string, maxLines int) ([]Entry, error) {
	lines, err := Read(path, maxLines)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		entries = append(entries, Parse(line))
	}
	return entries, nil
}

// Format renders an entry as "15:04:05 LEVEL message key=value ...".
// Field keys are sorted.
func (e Entry) Format() string {
	if e.Raw != "" {
		return e.Raw
	}
	var b strings.Builder
	if !e.Time.IsZero() {
		b.WriteString(e.Time.Local().Format("15:04:05"))
		b.WriteByte(' ')
	}
	b.WriteString(strings.ToUpper(e.Level))
	b.WriteByte(' ')
	b.WriteString(e.Message)
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%s", k, e.Fields[k])
	}
	return b.String()
}
