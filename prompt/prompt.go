// Package prompt asks the user questions in the terminal.
package prompt

import (
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Survey implements downloader.Prompter with survey prompts.
type Survey struct {
	// Options are passed to every prompt, e.g. survey.WithStdio.
	Options []survey.AskOpt
}

func New() *Survey {
	return &Survey{}
}

func (s *Survey) PromptText(message string) (string, error) {
	input := survey.Input{
		Message: message,
	}

	var response string
	err := survey.AskOne(&input, &response, s.Options...)
	return strings.TrimSpace(response), err
}

func (s *Survey) PromptSecret(message string) (string, error) {
	password := survey.Password{
		Message: message,
	}

	var response string
	err := survey.AskOne(&password, &response, s.Options...)
	return response, err
}

// PromptMultiSelect shows options with none selected; typing narrows them by fuzzy match.
func (s *Survey) PromptMultiSelect(message string, options []string) ([]string, error) {
	multiSelect := survey.MultiSelect{
		Message:  message,
		Options:  options,
		PageSize: 15,
		Help:     "space to mark, enter to continue, type to filter",
	}

	var response []string
	opts := append([]survey.AskOpt{
		survey.WithValidator(survey.MinItems(1)),
		survey.WithFilter(Filter),
	}, s.Options...)

	if err := survey.AskOne(&multiSelect, &response, opts...); err != nil {
		return nil, err
	}

	return ordered(options, response), nil
}

// Filter matches the typed text against an option, ignoring case.
func Filter(filter, value string, _ int) bool {
	return fuzzy.MatchFold(filter, value)
}

// ordered returns the chosen options in the order they were offered.
func ordered(options, chosen []string) []string {
	picked := make(map[string]bool, len(chosen))
	for _, c := range chosen {
		picked[c] = true
	}

	var result []string
	for _, o := range options {
		if picked[o] {
			result = append(result, o)
		}
	}
	return result
}
