// Package chatlog parses raw KakaoTalk transcript exports into per-customer
// order records.
package chatlog

import (
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
)

// Fragment is one logical order utterance: a bracketed transcript entry with
// its continuation lines merged in.
type Fragment struct {
	Nickname string
	Time     string
	Text     string
}

// entryPattern matches the start of a transcript entry: [nickname] [time] text.
var entryPattern = regexp.MustCompile(`^\[([^\]]+)\] \[([^\]]+)\] (.*)$`)

// Parser extracts order fragments from a transcript export. Messages sent by
// the shop itself (nickname containing shopMarker) are not customer orders and
// are dropped.
type Parser struct {
	shopMarker string
}

// NewParser returns a parser that filters out fragments whose nickname
// contains shopMarker. An empty marker disables the filter.
func NewParser(shopMarker string) *Parser {
	return &Parser{shopMarker: shopMarker}
}

// Parse splits the transcript into fragments. Lines starting with "-" are
// export noise and are skipped without breaking continuation accumulation, as
// are blank lines. A line starting with "[" that does not match the entry
// pattern is skipped too; transcripts are noisy and malformed entries are not
// an error.
func (p *Parser) Parse(transcript string) []Fragment {
	transcript = strings.ReplaceAll(transcript, "\r\n", "\n")

	var fragments []Fragment
	current := -1

	for _, line := range strings.Split(transcript, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "-") {
			continue
		}

		if strings.HasPrefix(line, "[") {
			m := entryPattern.FindStringSubmatch(line)
			if m == nil {
				log.Debug().Str("line", line).Msg("Skipping malformed transcript entry")
				continue
			}
			fragments = append(fragments, Fragment{
				Nickname: m[1],
				Time:     m[2],
				Text:     strings.TrimSpace(m[3]),
			})
			current = len(fragments) - 1
			continue
		}

		// Continuation line: belongs to the most recent entry.
		if current >= 0 {
			f := &fragments[current]
			if f.Text == "" {
				f.Text = line
			} else {
				f.Text += " " + line
			}
		}
	}

	kept := fragments[:0]
	for _, f := range fragments {
		if strings.TrimSpace(f.Text) == "" {
			continue
		}
		if p.shopMarker != "" && strings.Contains(f.Nickname, p.shopMarker) {
			continue
		}
		kept = append(kept, f)
	}

	log.Debug().
		Int("total", len(fragments)).
		Int("kept", len(kept)).
		Msg("Parsed transcript fragments")

	return kept
}
