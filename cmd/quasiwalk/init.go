package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/gwillem/quasiwalk/pkg/config"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

var errInitCancelled = errors.New("init cancelled")

type InitCommand struct {
	Config string `long:"config" short:"c" default:"quasiwalk.yaml" description:"Path of the configuration file to write"`
	Force  bool   `long:"force" short:"f" description:"Overwrite an existing file without asking"`
	Yes    bool   `long:"yes" short:"y" description:"Write the defaults without asking any questions"`
}

// initAnswers holds what the user typed in the init form.
type initAnswers struct {
	Steps  string
	Viewer string
}

func (c *InitCommand) Execute(args []string) error {
	if config.Exists(c.Config) && !c.Force {
		overwrite, err := confirmOverwrite(c.Config)
		if err != nil {
			return fmt.Errorf("%s already exists (use --force to overwrite): %w", c.Config, err)
		}
		if !overwrite {
			return errInitCancelled
		}
	}

	cfg := config.Default()
	if !c.Yes {
		answers := initAnswers{Steps: strconv.Itoa(cfg.Walk.Steps)}
		if err := askInitAnswers(&answers); err != nil {
			return err
		}
		if err := answers.apply(cfg); err != nil {
			return err
		}
	}

	if err := cfg.Save(c.Config); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Println(successStyle.Render("Configuration written to " + c.Config))
	fmt.Println("Start walking with: " + headerStyle.Render("quasiwalk walk"))
	return nil
}

func confirmOverwrite(path string) (bool, error) {
	var overwrite bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("%s already exists. Overwrite it?", path)).
				Affirmative("Overwrite").
				Negative("Keep it").
				Value(&overwrite),
		),
	)
	if err := form.Run(); err != nil {
		return false, err
	}
	return overwrite, nil
}

func askInitAnswers(a *initAnswers) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("How many steps?").
				Description("Full gait cycles per walk").
				Value(&a.Steps).
				Validate(validateSteps),
			huh.NewInput().
				Title("Viewer URL").
				Description("socket.io viewer to stream to; leave empty for none").
				Placeholder("http://localhost:4444/").
				Value(&a.Viewer),
		),
	)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return errInitCancelled
		}
		return err
	}
	return nil
}

func validateSteps(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("not a number: %q", s)
	}
	if n < 0 {
		return fmt.Errorf("steps must not be negative")
	}
	return nil
}

// apply copies the answers into cfg. An empty steps answer keeps the default.
func (a initAnswers) apply(cfg *config.Config) error {
	if steps := strings.TrimSpace(a.Steps); steps != "" {
		if err := validateSteps(steps); err != nil {
			return err
		}
		cfg.Walk.Steps, _ = strconv.Atoi(steps)
	}
	cfg.Viewer.URL = strings.TrimSpace(a.Viewer)
	return cfg.Validate()
}
