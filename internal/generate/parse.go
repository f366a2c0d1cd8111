// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import "strings"

// ParseResponse splits a numbered-list response into tweets. Lines are
// trimmed and blank lines dropped. A line whose first byte is a digit and
// whose second byte is '.' or ')' loses those two bytes and is trimmed
// again. The number of entries is not checked against the request.
func ParseResponse(raw string) []string {
	var tweets []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if hasOrdinalMarker(line) {
			line = strings.TrimSpace(line[2:])
		}
		tweets = append(tweets, line)
	}
	return tweets
}

// hasOrdinalMarker reports whether line starts with a single digit followed
// by '.' or ')'. Multi-digit ordinals like "10." are left untouched.
func hasOrdinalMarker(line string) bool {
	if len(line) < 2 {
		return false
	}
	if line[0] < '0' || line[0] > '9' {
		return false
	}
	return line[1] == '.' || line[1] == ')'
}
