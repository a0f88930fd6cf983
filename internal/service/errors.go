// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service implements the newsroom business rules on top of the
// repositories: the editorial workflow, moderation, auditing, search,
// site configuration and reader engagement.
package service

import (
	"errors"
	"fmt"
	"html"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"

	"github.com/olegiv/newsroom/internal/repository"
)

// Sentinel errors returned by services.
var (
	ErrForbidden     = errors.New("forbidden")
	ErrLoginRequired = errors.New("login required")
	ErrNotFound      = repository.ErrNotFound
)

// ValidationError lists the rejected input fields by their JSON name.
type ValidationError struct {
	Fields map[string]string
}

// Error implements error.
func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+" "+e.Fields[name])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func invalid(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate runs the validate tags of v and converts failures into a
// *ValidationError.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating input: %w", err)
	}

	ve := &ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		ve.Fields[fieldPath(fe)] = fieldMessage(fe)
	}
	return ve
}

// fieldPath drops the struct name from the namespace, so nested fields
// read as "subEvents[0].time".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url", "http_url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "hexcolor":
		return "must be a hex color"
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	default:
		return "is invalid"
	}
}

var textPolicy = bluemonday.StrictPolicy()

// sanitizeText strips all markup from user supplied text. Entities are
// decoded before sanitizing so encoded tags are stripped too; text that
// would still decode to markup is returned escaped.
func sanitizeText(s string) string {
	clean := textPolicy.Sanitize(html.UnescapeString(s))
	plain := html.UnescapeString(clean)
	if strings.ContainsAny(plain, "<>") {
		return strings.TrimSpace(clean)
	}
	return strings.TrimSpace(plain)
}
