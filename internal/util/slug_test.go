// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "simple title", input: "Hello World", expected: "hello-world"},
		{name: "punctuation runs", input: "Hello, World! Test", expected: "hello-world-test"},
		{name: "with numbers", input: "Page 123", expected: "page-123"},
		{name: "with accents", input: "Café résumé", expected: "cafe-resume"},
		{name: "multiple spaces", input: "Hello   World", expected: "hello-world"},
		{name: "spaced hyphen", input: "Hello - World", expected: "hello-world"},
		{name: "leading and trailing", input: "  ¡Hello World!  ", expected: "hello-world"},
		{name: "underscores", input: "snake_case_title", expected: "snake-case-title"},
		{name: "apostrophe", input: "Editor's Note", expected: "editor-s-note"},
		{name: "cyrillic", input: "Привет мир", expected: "privet-mir"},
		{name: "all special characters", input: "!@#$%^&*()", expected: ""},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Slugify(tt.input)
			if got != tt.expected {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.expected)
			}
			if got != "" && !IsValidSlug(got) {
				t.Errorf("Slugify(%q) = %q is not a valid slug", tt.input, got)
			}
		})
	}
}

func TestUniqueSlug(t *testing.T) {
	used := map[string]bool{"news": true, "news-2": true, "sports": false}
	taken := func(s string) bool { return used[s] }

	tests := []struct {
		base string
		want string
	}{
		{base: "news", want: "news-3"},
		{base: "sports", want: "sports"},
		{base: "fresh", want: "fresh"},
		{base: "", want: "untitled"},
	}

	for _, tt := range tests {
		t.Run(tt.base, func(t *testing.T) {
			if got := UniqueSlug(tt.base, taken); got != tt.want {
				t.Errorf("UniqueSlug(%q) = %q, want %q", tt.base, got, tt.want)
			}
		})
	}
}

func TestIsValidSlug(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"hello-world", true},
		{"page-123", true},
		{"a", true},
		{"", false},
		{"Hello", false},
		{"-hello", false},
		{"hello-", false},
		{"hello--world", false},
		{"hello world", false},
		{"hello_world", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsValidSlug(tt.input); got != tt.want {
				t.Errorf("IsValidSlug(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
