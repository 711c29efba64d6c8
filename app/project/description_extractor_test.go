package project

import (
	"strings"
	"testing"
)

func TestDescriptionExtractorEmptyData(t *testing.T) {
	extractor := NewDescriptionExtractor()
	if _, err := extractor.Run(nil); err == nil {
		t.Error("Expected error for empty HTML data")
	}
}

func TestDescriptionExtractorHomepage(t *testing.T) {
	page := `<!DOCTYPE html>
<html>
<head>
<title>Backoffice</title>
<meta name="description" content="Internal tooling for order management.">
</head>
<body>
<article>
<h1>Backoffice</h1>
<p>Internal tooling for order management. The backoffice project exposes
dashboards for the operations team and aggregates data from several
upstream systems into a single view.</p>
<p>It is deployed continuously and owned by the infrastructure team,
which also runs the surrounding batch pipelines.</p>
</article>
</body>
</html>`

	extractor := NewDescriptionExtractor()
	description, err := extractor.Run([]byte(page))
	if err != nil {
		t.Fatal(err)
	}

	if description == "" {
		t.Fatal("Expected a non-empty description")
	}
	if !strings.Contains(description, "order management") {
		t.Errorf("Expected description to mention the page content, got '%s'", description)
	}
}
