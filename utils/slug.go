package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases the name, collapses every run of non-alphanumeric
// characters into a single hyphen, trims leading/trailing hyphens and cuts
// the result at 50 characters. Names with no Latin letters or digits
// (e.g. Cyrillic product names) produce an empty slug, so fall back to a
// time-based one that cannot collide in practice.
func Slugify(name string) string {
	slug := strings.ToLower(name)
	slug = nonAlnum.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > 50 {
		slug = slug[:50]
	}
	slug = strings.Trim(slug, "-")

	if slug == "" {
		slug = fmt.Sprintf("product-%d", time.Now().UnixNano())
	}
	return slug
}

// UniqueSlug appends a time suffix to a colliding slug. Slugs are never
// reused, so a single retry is enough.
func UniqueSlug(slug string) string {
	return fmt.Sprintf("%s-%d", slug, time.Now().UnixNano())
}
