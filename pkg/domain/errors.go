package domain

import "errors"

var (
	ErrNotFound = errors.New("not found")

	// ErrRestricted marks videos that cannot be fetched without signing in:
	// private, members-only, age-gated.
	ErrRestricted = errors.New("video is restricted")

	// ErrNoFormats is returned when a video exposes no progressive stream the
	// bot can offer.
	ErrNoFormats = errors.New("no downloadable formats")

	// ErrFileTooLarge is returned when the downloaded file exceeds the
	// Telegram upload limit.
	ErrFileTooLarge = errors.New("file exceeds telegram upload limit")
)
