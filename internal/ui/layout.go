package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the detail pane is hidden.
	LayoutCompactWidth = 100

	// LayoutListWidth is the share of the width given to the product list.
	LayoutListWidth = 0.55
)

// Activity log limits.
const (
	// ActivityLines is the number of log lines loaded into the activity view.
	ActivityLines = 500
)

// Timing constants.
const (
	// DefaultUIInterval is the default UI refresh interval.
	DefaultUIInterval = time.Second

	// RefreshTimeout bounds a manual refresh.
	RefreshTimeout = 15 * time.Second

	// ImageTimeout bounds an image generation request.
	ImageTimeout = 90 * time.Second

	// FlashDuration is how long a status message stays in the command bar.
	FlashDuration = 4 * time.Second
)
