package github

import (
	"encoding/xml"
	"strings"
	"time"
)

type atomFeed struct {
	XMLName xml.Name    `xml:"http://www.w3.org/2005/Atom feed"`
	Updated string      `xml:"http://www.w3.org/2005/Atom updated"`
	Entries []atomEntry `xml:"http://www.w3.org/2005/Atom entry"`
}

type atomEntry struct {
	Updated   string `xml:"http://www.w3.org/2005/Atom updated"`
	Published string `xml:"http://www.w3.org/2005/Atom published"`
}

// ParseFeedTime extracts the most recent activity timestamp from an Atom feed.
//
// The first entry is the most recent one. Its "updated" value is preferred,
// then its "published" value; when neither parses, the feed-level "updated"
// value is used. Malformed XML, a non-Atom root, or no parsable timestamp
// report false. The returned time is in UTC.
func ParseFeedTime(data []byte) (time.Time, bool) {
	var feed atomFeed
	if err := xml.Unmarshal(data, &feed); err != nil {
		return time.Time{}, false
	}

	if len(feed.Entries) > 0 {
		first := feed.Entries[0]
		for _, v := range []string{first.Updated, first.Published} {
			if ts, ok := parseTimestamp(v); ok {
				return ts, true
			}
		}
	}
	return parseTimestamp(feed.Updated)
}

// Layouts tried after RFC 3339. Zone-less values are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC(), true
		}
	}
	return time.Time{}, false
}
