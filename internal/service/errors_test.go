// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text", "  Great coverage!  ", "Great coverage!"},
		{"entities in text", "Tom &amp; Jerry's &quot;show&quot;", `Tom & Jerry's "show"`},
		{"bold tag", "<b>Factual error</b>", "Factual error"},
		{"script element", "<script>alert(1)</script>Hi", "Hi"},
		{"encoded script", "&lt;script&gt;alert(1)&lt;/script&gt;", ""},
		{"encoded image", "&lt;img src=x onerror=alert(1)&gt;Nice", "Nice"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeText(tt.in))
		})
	}
}

func TestSanitizeText_NeverReturnsMarkup(t *testing.T) {
	inputs := []string{
		"&lt;script&gt;alert(1)&lt;/script&gt;",
		"&amp;lt;script&amp;gt;alert(1)&amp;lt;/script&amp;gt;",
		"&#60;iframe src=x&#62;",
		"a < b > c",
	}
	for _, in := range inputs {
		out := sanitizeText(in)
		assert.False(t, strings.ContainsAny(out, "<>"), "sanitizeText(%q) = %q", in, out)
	}
}
