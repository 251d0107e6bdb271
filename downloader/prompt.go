package downloader

// Prompter asks the user for input. The terminal implementation lives in package prompt.
type Prompter interface {
	PromptText(message string) (string, error)
	PromptSecret(message string) (string, error)

	// PromptMultiSelect returns the chosen options in their original order. At least one is chosen.
	PromptMultiSelect(message string, options []string) ([]string, error)
}
