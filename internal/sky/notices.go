package sky

import "strings"

// NoticeKind controls the colour of a notice overlay line.
type NoticeKind uint8

const (
	NoticeInfo      NoticeKind = iota // accent blue
	NoticeSelection                   // gold
	NoticeWarning                     // amber
)

// Notice is one transient overlay line.
type Notice struct {
	Text  string
	Kind  NoticeKind
	At    float64 // tick timestamp in milliseconds
	Alpha float64 // filled in by Visible
}

// Notices is a bounded FIFO of timed overlay messages.
type Notices struct {
	items    []Notice
	maxSize  int
	ttl      float64
	fade     float64
	maxWidth int
}

// Notice timing, in milliseconds.
const (
	NoticeTTL  = 4000
	NoticeFade = 1000
)

// NewNotices creates a log that keeps the most recent maxSize lines.
func NewNotices(maxSize int) *Notices {
	return &Notices{
		items:    make([]Notice, 0, maxSize),
		maxSize:  maxSize,
		ttl:      NoticeTTL,
		fade:     NoticeFade,
		maxWidth: 48,
	}
}

// Add appends a notice, evicting the oldest if full. Long text is wrapped.
func (n *Notices) Add(text string, kind NoticeKind, now float64) {
	for _, line := range wrapText(text, n.maxWidth) {
		item := Notice{Text: line, Kind: kind, At: now}
		if len(n.items) >= n.maxSize {
			copy(n.items, n.items[1:])
			n.items[len(n.items)-1] = item
		} else {
			n.items = append(n.items, item)
		}
	}
}

// Prune drops notices that have fully faded by now.
func (n *Notices) Prune(now float64) {
	kept := n.items[:0]
	for _, item := range n.items {
		if now-item.At < n.ttl {
			kept = append(kept, item)
		}
	}
	n.items = kept
}

// Visible returns the live notices, oldest first, with Alpha set for time now.
func (n *Notices) Visible(now float64) []Notice {
	out := make([]Notice, 0, len(n.items))
	for _, item := range n.items {
		age := now - item.At
		if age >= n.ttl {
			continue
		}
		item.Alpha = 1
		if fadeStart := n.ttl - n.fade; age > fadeStart {
			item.Alpha = 1 - (age-fadeStart)/n.fade
		}
		out = append(out, item)
	}
	return out
}

// Len returns the number of stored notices.
func (n *Notices) Len() int {
	return len(n.items)
}

// wrapText splits text into lines no longer than maxWidth. A single word longer
// than maxWidth gets a line of its own.
func wrapText(s string, maxWidth int) []string {
	if len(s) <= maxWidth {
		return []string{s}
	}
	var result []string
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > maxWidth {
			result = append(result, line)
			line = w
		} else {
			line += " " + w
		}
	}
	if line != "" {
		result = append(result, line)
	}
	return result
}
