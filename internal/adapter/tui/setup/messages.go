// Package setup implements the Bubble Tea front end of the onboarding
// wizard. All answers live in the wizard engine; this package only maps
// keys onto it and renders the current step.
package setup

// CatalogResultMsg carries the outcome of the live model fetch started on
// leaving the API key step.
type CatalogResultMsg struct {
	Models []string
	Err    error
}
