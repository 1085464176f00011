package snapshot

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		maxLength    int
		wantTitle    string
		wantHeadings []string
		wantHTML     []string // substrings that should be present
		wantNot      []string // substrings that should NOT be present
		truncated    bool
	}{
		{
			name: "scripts and styles removed",
			input: `<html>
				<head>
					<title>Projects</title>
					<script>alert('noise');</script>
					<style>body { color: red; }</style>
				</head>
				<body>
					<h1 id="page-title">Projects</h1>
					<p class="intro">Project list below.</p>
				</body>
			</html>`,
			maxLength:    10000,
			wantTitle:    "Projects",
			wantHeadings: []string{"Projects"},
			wantHTML:     []string{`<h1 id="page-title">`, "Projects", `<p class="intro">`, "Project list below."},
			wantNot:      []string{"<script>", "alert", "<style>", "color: red"},
		},
		{
			name: "semantic structure preserved",
			input: `<html><body>
				<header><nav><a href="/home">Home</a></nav></header>
				<main>
					<section id="content"><h2>Recent</h2></section>
				</main>
				<footer><p>Footer</p></footer>
			</body></html>`,
			maxLength:    10000,
			wantHeadings: []string{"Recent"},
			wantHTML:     []string{"<header>", "<nav>", `<a href="/home">`, "<main>", `<section id="content">`, "<footer>"},
		},
		{
			name: "targeting attributes kept, noise attributes dropped",
			input: `<html><body>
				<div data-testid="sidebar" onclick="boom()" style="color:blue">
					<button type="submit" aria-label="Create" tabindex="3">+</button>
					<input type="text" placeholder="Search" autocomplete="off">
				</div>
			</body></html>`,
			maxLength: 10000,
			wantHTML: []string{
				`data-testid="sidebar"`,
				`type="submit"`,
				`aria-label="Create"`,
				`type="text"`,
				`placeholder="Search"`,
			},
			wantNot: []string{"onclick", "style=", "tabindex", "autocomplete"},
		},
		{
			name:      "long content truncated",
			input:     "<html><body><p>" + strings.Repeat("word ", 2000) + "</p></body></html>",
			maxLength: 100,
			truncated: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := Clean(tt.input, tt.maxLength)
			if err != nil {
				t.Fatalf("Clean() error = %v", err)
			}

			if tt.wantTitle != "" && snap.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", snap.Title, tt.wantTitle)
			}

			for _, heading := range tt.wantHeadings {
				found := false
				for _, h := range snap.Headings {
					if h == heading {
						found = true
					}
				}
				if !found {
					t.Errorf("Headings %v missing %q", snap.Headings, heading)
				}
			}

			for _, want := range tt.wantHTML {
				if !strings.Contains(snap.HTML, want) {
					t.Errorf("HTML missing %q", want)
				}
			}
			for _, not := range tt.wantNot {
				if strings.Contains(snap.HTML, not) {
					t.Errorf("HTML should not contain %q", not)
				}
			}

			if snap.Truncated != tt.truncated {
				t.Errorf("Truncated = %v, want %v", snap.Truncated, tt.truncated)
			}
		})
	}
}

func TestCleanTruncatesAtRuneBoundary(t *testing.T) {
	// multibyte text must never be cut mid-rune
	input := "<html><body><p>" + strings.Repeat("프로젝트 ", 500) + "</p></body></html>"

	snap, err := Clean(input, 80)
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}
	if !snap.Truncated {
		t.Fatal("expected truncation")
	}
	if !utf8.ValidString(snap.HTML) {
		t.Errorf("truncated snapshot is not valid UTF-8: %q", snap.HTML)
	}
}

func TestCleanCountsAttributeBytes(t *testing.T) {
	// attribute-heavy markup with barely any text must still exhaust the
	// length bound
	input := "<html><body>" +
		strings.Repeat(`<div class="`+strings.Repeat("c", 200)+`">x</div>`, 20) +
		"</body></html>"

	snap, err := Clean(input, 500)
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}
	if !snap.Truncated {
		t.Error("attribute bytes should count toward the length bound")
	}
}

func TestCleanInvalidHTMLDoesNotError(t *testing.T) {
	// the html parser is lenient; garbage still produces a snapshot
	snap, err := Clean("<<<not really html>>>", 1000)
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}
	if snap == nil {
		t.Fatal("expected a snapshot")
	}
}
