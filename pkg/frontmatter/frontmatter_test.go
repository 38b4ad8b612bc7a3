package frontmatter

import (
	"reflect"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantFM   *Frontmatter
		wantBody string
		wantErr  bool
	}{
		{
			name: "valid frontmatter",
			content: `---
title: API Guide
aliases: []
tags: [api, reference]
created: 2023-01-01 10:00:00
modified: 2023-01-02 11:00:00
---

# Endpoints

This is the body.`,
			wantFM: &Frontmatter{
				Title:    "API Guide",
				Aliases:  []string{},
				Tags:     []string{"api", "reference"},
				Created:  "2023-01-01 10:00:00",
				Modified: "2023-01-02 11:00:00",
			},
			wantBody: "\n# Endpoints\n\nThis is the body.",
			wantErr:  false,
		},
		{
			name:     "no frontmatter",
			content:  "# Just a title\n\nSome content.",
			wantFM:   nil,
			wantBody: "# Just a title\n\nSome content.",
			wantErr:  false,
		},
		{
			name: "invalid yaml",
			content: `---
title: [invalid
---

Body`,
			wantFM: nil,
			wantBody: `---
title: [invalid
---

Body`,
			wantErr: true,
		},
		{
			name:    "minimal frontmatter",
			content: "---\ntitle: Minimal\n---\nContent",
			wantFM: &Frontmatter{
				Title:   "Minimal",
				Aliases: []string{},
				Tags:    []string{},
			},
			wantBody: "Content",
			wantErr:  false,
		},
		{
			name:    "windows line endings",
			content: "---\r\ntitle: CRLF\r\n---\r\nBody",
			wantFM: &Frontmatter{
				Title:   "CRLF",
				Aliases: []string{},
				Tags:    []string{},
			},
			wantBody: "Body",
			wantErr:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotFM, gotBody, err := Parse(tt.content)
			if (err != nil) != tt.wantErr {
				t.Errorf("Parse() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !reflect.DeepEqual(gotFM, tt.wantFM) {
				t.Errorf("Parse() gotFM = %+v, want %+v", gotFM, tt.wantFM)
			}
			if gotBody != tt.wantBody {
				t.Errorf("Parse() gotBody = %q, want %q", gotBody, tt.wantBody)
			}
		})
	}
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name string
		fm   *Frontmatter
		want string
	}{
		{
			name: "complete frontmatter",
			fm: &Frontmatter{
				Title:       "Guide",
				Description: "How to start",
				Aliases:     []string{"start"},
				Tags:        []string{"tag1", "tag2"},
				Created:     "2023-01-01 10:00:00",
				Modified:    "2023-01-02 11:00:00",
				Draft:       true,
			},
			want: `---
title: Guide
description: How to start
aliases: [start]
tags: [tag1, tag2]
created: 2023-01-01 10:00:00
modified: 2023-01-02 11:00:00
draft: true
---`,
		},
		{
			name: "minimal frontmatter",
			fm:   &Frontmatter{Title: "Minimal"},
			want: `---
title: Minimal
aliases: []
tags: []
---`,
		},
		{
			name: "with special characters",
			fm: &Frontmatter{
				Title:   "Note: Special, Characters",
				Aliases: []string{"alias:1", "alias,2"},
				Tags:    []string{"tag:special", "#hash"},
			},
			want: `---
title: Note: Special, Characters
aliases: ["alias:1", "alias,2"]
tags: ["tag:special", "#hash"]
---`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Build(tt.fm)
			if got != tt.want {
				t.Errorf("Build() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildContent(t *testing.T) {
	fm := &Frontmatter{Title: "Test"}

	tests := []struct {
		name        string
		body        string
		wantSpacing bool
	}{
		{
			name:        "body without leading newline",
			body:        "# Title\n\nContent",
			wantSpacing: true,
		},
		{
			name:        "body with leading newline",
			body:        "\n# Title\n\nContent",
			wantSpacing: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildContent(fm, tt.body)
			frontmatter := Build(fm)

			want := frontmatter + "\n" + tt.body
			if tt.wantSpacing {
				want = frontmatter + "\n\n" + tt.body
			}
			if got != want {
				t.Errorf("BuildContent() spacing incorrect, got = %q, want = %q", got, want)
			}
		})
	}
}

func TestFormatAndParseTimestamp(t *testing.T) {
	now := time.Date(2023, 1, 15, 14, 30, 45, 0, time.UTC)

	formatted := FormatTimestamp(now)
	if formatted != "2023-01-15 14:30:45" {
		t.Errorf("FormatTimestamp() = %s, want 2023-01-15 14:30:45", formatted)
	}

	parsed, err := ParseTimestamp(formatted)
	if err != nil {
		t.Fatalf("ParseTimestamp() error = %v", err)
	}
	if !parsed.Equal(now) {
		t.Errorf("ParseTimestamp() = %v, want %v", parsed, now)
	}
}
