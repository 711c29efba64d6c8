package project

import (
	"testing"
	"time"
)

func TestActivityParserNewestEntry(t *testing.T) {
	feedData := `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Project Activity</title>
    <link>https://example.com</link>
    <description>Recent changes</description>
    <item>
      <title>Deploy</title>
      <guid>event-1</guid>
      <pubDate>Mon, 03 Jul 2023 10:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Config change</title>
      <guid>event-2</guid>
      <pubDate>Mon, 03 Jul 2023 12:15:00 GMT</pubDate>
    </item>
    <item>
      <title>Rollback</title>
      <guid>event-3</guid>
      <pubDate>Mon, 03 Jul 2023 11:00:00 GMT</pubDate>
    </item>
  </channel>
</rss>`

	parser := NewActivityParser()
	lastUpdate, err := parser.Run([]byte(feedData))
	if err != nil {
		t.Fatal(err)
	}

	if lastUpdate == nil {
		t.Fatal("Expected a last update time")
	}

	expected := time.Date(2023, 7, 3, 12, 15, 0, 0, time.UTC)
	if !lastUpdate.Equal(expected) {
		t.Errorf("Expected %v, got %v", expected, lastUpdate)
	}
}

func TestActivityParserAtomUpdated(t *testing.T) {
	feedData := `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Project Activity</title>
  <id>urn:uuid:project-activity</id>
  <updated>2023-07-03T09:00:00Z</updated>
  <entry>
    <title>Schema migration</title>
    <id>urn:uuid:event-1</id>
    <updated>2023-07-03T14:45:00Z</updated>
  </entry>
</feed>`

	parser := NewActivityParser()
	lastUpdate, err := parser.Run([]byte(feedData))
	if err != nil {
		t.Fatal(err)
	}

	if lastUpdate == nil {
		t.Fatal("Expected a last update time")
	}

	expected := time.Date(2023, 7, 3, 14, 45, 0, 0, time.UTC)
	if !lastUpdate.Equal(expected) {
		t.Errorf("Expected %v, got %v", expected, lastUpdate)
	}
}

func TestActivityParserFeedLevelFallback(t *testing.T) {
	feedData := `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Project Activity</title>
  <id>urn:uuid:project-activity</id>
  <updated>2023-07-03T09:00:00Z</updated>
</feed>`

	parser := NewActivityParser()
	lastUpdate, err := parser.Run([]byte(feedData))
	if err != nil {
		t.Fatal(err)
	}

	if lastUpdate == nil {
		t.Fatal("Expected feed-level updated time as fallback")
	}

	expected := time.Date(2023, 7, 3, 9, 0, 0, 0, time.UTC)
	if !lastUpdate.Equal(expected) {
		t.Errorf("Expected %v, got %v", expected, lastUpdate)
	}
}

func TestActivityParserNoTimestamps(t *testing.T) {
	feedData := `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Project Activity</title>
    <link>https://example.com</link>
    <description>No dates here</description>
    <item>
      <title>Undated event</title>
      <guid>event-1</guid>
    </item>
  </channel>
</rss>`

	parser := NewActivityParser()
	lastUpdate, err := parser.Run([]byte(feedData))
	if err != nil {
		t.Fatal(err)
	}

	if lastUpdate != nil {
		t.Errorf("Expected nil for a feed without timestamps, got %v", lastUpdate)
	}
}

func TestActivityParserInvalidData(t *testing.T) {
	parser := NewActivityParser()
	if _, err := parser.Run([]byte("not a feed")); err == nil {
		t.Error("Expected error for invalid feed data")
	}
}
