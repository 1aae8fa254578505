package scrape

import (
	"strings"
	"testing"
)

func TestArticleContentExtractor_Run(t *testing.T) {
	extractor := NewArticleContentExtractor()

	htmlContent := `
	<!DOCTYPE html>
	<html>
	<head>
		<title>Test Article</title>
	</head>
	<body>
		<header>
			<h1>Site Header</h1>
			<nav>Navigation</nav>
		</header>
		<main>
			<article>
				<h1>Main Article Title</h1>
				<p>This is the main content of the article. It contains several paragraphs of meaningful text that should be extracted by the readability algorithm.</p>
				<p>This is another paragraph with more content. The readability algorithm should identify this as the main content area and extract it properly.</p>
				<p>Here is some more substantial content to ensure we meet the character threshold. This paragraph adds more context and information that would be valuable to readers.</p>
			</article>
		</main>
		<aside>
			<div>Advertisement</div>
			<div>Related Links</div>
		</aside>
		<footer>
			<p>Copyright 2026</p>
		</footer>
	</body>
	</html>
	`

	result, err := extractor.Run([]byte(htmlContent), "https://example.com/news/test.html")

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if result == "" {
		t.Fatal("Expected non-empty result")
	}

	if !strings.Contains(result, "main content of the article") {
		t.Errorf("Expected extracted content to contain main article text")
	}

	if strings.Contains(result, "Advertisement") {
		t.Errorf("Expected extracted content to exclude advertisement")
	}

	if strings.Contains(result, "Copyright 2026") {
		t.Errorf("Expected extracted content to exclude footer")
	}
}

func TestArticleContentExtractor_EmptyInput(t *testing.T) {
	extractor := NewArticleContentExtractor()

	if _, err := extractor.Run(nil, "https://example.com/"); err == nil {
		t.Fatal("Expected an error for empty input")
	}
}
