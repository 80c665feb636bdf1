package cli

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
)

// Prompter supplies the run's interactive decision points. Production uses
// huh forms; tests inject a scripted implementation.
type Prompter interface {
	Choose(title string, choices []string, def string) (string, error)
	Confirm(title string, def bool) (bool, error)
	Input(title string) (string, error)
}

type runMode int

const (
	modeVerify runMode = iota
	modeConfigure
	modeQuit
)

const (
	choiceReconfigure = "Reconfigure tool-chains"
	choiceVerify      = "Verify current configuration"
	choiceQuit        = "Quit"
)

// chooseMode asks what to do when prior configuration already exists.
// Anything unrecognized, including a declined prompt's default, means
// verify; a failed prompt means quit.
func chooseMode(p Prompter) runMode {
	choice, err := p.Choose(
		"Existing pkgshift configuration detected. What would you like to do?",
		[]string{choiceVerify, choiceReconfigure, choiceQuit},
		choiceVerify,
	)
	if err != nil {
		return modeQuit
	}
	switch choice {
	case choiceReconfigure:
		return modeConfigure
	case choiceQuit:
		return modeQuit
	default:
		return modeVerify
	}
}

// askRoot keeps prompting until the operator supplies a non-empty
// destination root; a failed or aborted prompt ends the run.
func askRoot(p Prompter) (string, error) {
	for {
		value, err := p.Input("Destination root for relocated caches (e.g. D:\\ or /mnt/fast)")
		if err != nil {
			return "", err
		}
		if value = strings.TrimSpace(value); value != "" {
			return value, nil
		}
	}
}

// huhPrompter renders prompts as huh forms. With assumeYes every prompt
// resolves to its default without rendering, which keeps scripted runs
// non-blocking.
type huhPrompter struct {
	assumeYes bool
}

func newHuhPrompter(assumeYes bool) *huhPrompter {
	return &huhPrompter{assumeYes: assumeYes}
}

func (h *huhPrompter) Choose(title string, choices []string, def string) (string, error) {
	if h.assumeYes {
		return def, nil
	}
	value := def
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title(title).
			Options(huh.NewOptions(choices...)...).
			Value(&value),
	))
	if err := form.Run(); err != nil {
		return "", err
	}
	return value, nil
}

func (h *huhPrompter) Confirm(title string, def bool) (bool, error) {
	if h.assumeYes {
		return true, nil
	}
	value := def
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Value(&value),
	))
	if err := form.Run(); err != nil {
		return false, err
	}
	return value, nil
}

func (h *huhPrompter) Input(title string) (string, error) {
	if h.assumeYes {
		return "", errors.New("destination root must be provided with --target in non-interactive runs")
	}
	var value string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(title).
			Value(&value),
	))
	if err := form.Run(); err != nil {
		return "", err
	}
	return value, nil
}
