package services

import "errors"

var (
	// ErrNoFile is returned when a request carries no usable upload.
	ErrNoFile = errors.New("no files uploaded")

	// ErrUnsupportedFormat is returned for uploads whose extension is
	// neither an accepted raster format nor .pdf.
	ErrUnsupportedFormat = errors.New("no valid image or PDF file provided")

	// ErrRead is returned when a stored image cannot be read back.
	ErrRead = errors.New("failed to read image file")

	// ErrUpstream covers any failure of the model API: transport errors,
	// non-success responses, and empty completions alike.
	ErrUpstream = errors.New("upstream model API failure")

	// ErrMalformedPlan is returned when the model's health-plan text is
	// not valid JSON after fence stripping.
	ErrMalformedPlan = errors.New("malformed health plan response")
)
