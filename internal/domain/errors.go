package domain

import "errors"

var (
	// ErrLinkNotFound means no link exists for the requested slug.
	ErrLinkNotFound = errors.New("short link not found")

	// ErrSlugTaken means a requested custom slug is already reserved.
	// It is never returned for generated slugs, which retry internally.
	ErrSlugTaken = errors.New("slug already taken")

	// ErrInvalidSlug means the requested slug fails the allowed format
	// or is a reserved word. Raised before any store access.
	ErrInvalidSlug = errors.New("invalid slug format")

	// ErrSlugExhausted means slug generation kept colliding until the
	// retry bound was hit.
	ErrSlugExhausted = errors.New("slug generation retries exhausted")
)
