package stat

import (
	"fmt"
	"io"
	"sort"
)

type Handler struct {
	stats Stats
}

// Stats counts the outcome of conversions.
type Stats struct {
	Attempted int
	Converted int

	// Skipped by kind of skip
	Skipped map[string]int

	// Converted by name of the question rule that matched
	Rules map[string]int
}

func New() Stats {
	return Stats{Skipped: map[string]int{}, Rules: map[string]int{}}
}

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	if s.Skipped == nil {
		s.Skipped = map[string]int{}
	}
	if s.Rules == nil {
		s.Rules = map[string]int{}
	}

	s.Attempted += o.Attempted
	s.Converted += o.Converted
	for k, n := range o.Skipped {
		s.Skipped[k] += n
	}
	for k, n := range o.Rules {
		s.Rules[k] += n
	}
}

// Convert counts one attempted and converted entry.
func (s *Stats) Convert(rule string) {
	s.Add(Stats{Attempted: 1, Converted: 1, Rules: map[string]int{rule: 1}})
}

// Skip counts one attempted entry that was not converted.
func (s *Stats) Skip(kind string) {
	s.Add(Stats{Attempted: 1, Skipped: map[string]int{kind: 1}})
}

func (h *Handler) Get() Stats {
	return h.stats
}

func NewHandler() *Handler {
	return &Handler{
		stats: New(),
	}
}

func (h *Handler) Aggregate(s Stats) {
	h.stats.Add(s)
}

// Fprint writes the summary: attempted and converted counts, then one line
// per kind of skip and per rule, sorted by name.
func Fprint(w io.Writer, s Stats) {
	fmt.Fprintf(w, "attempted %d, converted %d\n", s.Attempted, s.Converted)

	for _, k := range sortedKeys(s.Skipped) {
		fmt.Fprintf(w, "  skipped %-20s %d\n", k, s.Skipped[k])
	}

	for _, k := range sortedKeys(s.Rules) {
		fmt.Fprintf(w, "  rule    %-20s %d\n", k, s.Rules[k])
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
