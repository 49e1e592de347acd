package startgg

import (
	"fmt"
	"regexp"
	"strings"
)

var tournamentSlugRegex = regexp.MustCompile(`tournament/([A-Za-z0-9_-]+)`)

// ParseTournamentURL extracts the tournament slug from a start.gg URL like
// https://www.start.gg/tournament/genesis-9/events and returns it in the
// "tournament/<name>" form the API expects.
func ParseTournamentURL(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", fmt.Errorf("tournament url is required")
	}

	match := tournamentSlugRegex.FindStringSubmatch(rawURL)
	if len(match) < 2 {
		return "", fmt.Errorf("no tournament slug in url %q", rawURL)
	}

	return "tournament/" + match[1], nil
}
