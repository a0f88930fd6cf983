// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides URL slug generation and validation with
// Unicode normalization and transliteration support.
package util

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// nonAlnumRun matches any run of characters outside [a-z0-9].
var nonAlnumRun = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a title to a URL slug.
// Accents are stripped, other scripts are transliterated to ASCII, the result
// is lowercased and every run of non-alphanumeric characters becomes a single
// hyphen. Leading and trailing hyphens are removed.
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		result = s
	}

	result = strings.ToLower(unidecode.Unidecode(result))
	result = nonAlnumRun.ReplaceAllString(result, "-")

	return strings.Trim(result, "-")
}

// UniqueSlug returns base, or base with the first free numeric suffix
// ("-2", "-3", ...) when taken reports base as already used.
func UniqueSlug(base string, taken func(string) bool) string {
	if base == "" {
		base = "untitled"
	}
	if !taken(base) {
		return base
	}
	for i := 2; ; i++ {
		candidate := base + "-" + strconv.Itoa(i)
		if !taken(candidate) {
			return candidate
		}
	}
}

// IsValidSlug checks if a string is a valid slug format.
func IsValidSlug(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
			return false
		}
	}

	if s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}

	return !strings.Contains(s, "--")
}
