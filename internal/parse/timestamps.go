package parse

import (
	"fmt"
	"strconv"
	"strings"

	dps "github.com/markusmobius/go-dateparser"
)

// Timestamps parses a comma-separated list of sample timestamps into Unix
// seconds. Numeric entries are taken as Unix timestamps directly; anything
// else goes through go-dateparser, so "2024-03-01 08:00", "1 Mar 2024" and
// similar human-readable forms all work. Entries that cannot be parsed are
// dropped and reported.
func Timestamps(raw string) ([]int64, []string, error) {
	entries, err := splitEntries(raw, ",")
	if err != nil {
		return nil, nil, err
	}

	parser := dps.Parser{}
	cfg := &dps.Configuration{
		PreferredDateSource: dps.CurrentPeriod,
	}

	secs := make([]int64, 0, len(entries))
	var skippedEntries []string
	for _, entry := range entries {
		if unix, err := strconv.ParseInt(entry, 10, 64); err == nil {
			if unix < 0 {
				skippedEntries = append(skippedEntries, skipped(entry, "negative Unix timestamp"))
				continue
			}
			secs = append(secs, unix)
			continue
		}
		parsed, err := parser.Parse(cfg, entry)
		if err != nil || parsed.IsZero() {
			skippedEntries = append(skippedEntries, skipped(entry, "not a recognizable timestamp"))
			continue
		}
		secs = append(secs, parsed.Time.Unix())
	}
	if len(secs) == 0 {
		return nil, skippedEntries, fmt.Errorf("%w: %s", ErrAllEntriesInvalid, strings.Join(skippedEntries, "; "))
	}
	return secs, skippedEntries, nil
}
