package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
)

const asciiLogo = `
██████╗ ███████╗████████╗ ██████╗ ██╗  ██╗
██╔══██╗██╔════╝╚══██╔══╝██╔═══██╗╚██╗██╔╝
██║  ██║█████╗     ██║   ██║   ██║ ╚███╔╝ 
██║  ██║██╔══╝     ██║   ██║   ██║ ██╔██╗ 
██████╔╝███████╗   ██║   ╚██████╔╝██╔╝ ██╗
╚═════╝ ╚══════╝   ╚═╝    ╚═════╝ ╚═╝  ╚═╝`

// PromptOptions holds the user's responses to the configuration prompts.
type PromptOptions struct {
	Websites     string
	Music        MusicMode
	LimitMinutes uint
}

// Prompt configures the most important settings interactively. It does
// nothing if the config file already exists.
func Prompt(s *Store) error {
	_, err := os.Stat(s.Path())
	if err == nil || !errors.Is(err, os.ErrNotExist) {
		return err
	}

	opts, err := promptUser()
	if err != nil {
		return fmt.Errorf("user prompt failed: %w", err)
	}

	return s.Update(func(c *Config) error {
		applyPromptOptions(c, opts)
		return nil
	})
}

// promptUser handles the interactive configuration process.
func promptUser() (PromptOptions, error) {
	opts := PromptOptions{
		Websites: "facebook.com, instagram.com, reddit.com, twitter.com, youtube.com",
	}

	pterm.Println(asciiLogo)

	_ = putils.BulletListFromString(`Follow the prompts below to configure Detox for the first time.
Edit the values, or press ENTER to accept the defaults.
Edit the config file with 'detox edit-config' to change any settings.`, " ").
		Render()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Websites to block (comma separated)").
				Value(&opts.Websites),
		),
		huh.NewGroup(
			huh.NewSelect[MusicMode]().
				Title("Focus music").
				Options(
					huh.NewOption("Noisli (opens in the browser)", MusicNoisli).Selected(true),
					huh.NewOption("No music", MusicOff),
				).
				Value(&opts.Music),
		),
		huh.NewGroup(
			huh.NewSelect[uint]().
				Title("Daily time limit").
				Options(
					huh.NewOption("No limit", uint(0)).Selected(true),
					huh.NewOption("30 minutes", uint(30)),
					huh.NewOption("60 minutes", uint(60)),
					huh.NewOption("90 minutes", uint(90)),
					huh.NewOption("120 minutes", uint(120)),
				).
				Value(&opts.LimitMinutes),
		),
	)

	err := form.Run()
	if err != nil {
		return opts, fmt.Errorf("form interaction failed: %w", err)
	}

	return opts, nil
}

// applyPromptOptions applies the user's prompt responses to the configuration.
func applyPromptOptions(c *Config, opts PromptOptions) {
	c.BlockedWebsites = SplitList(opts.Websites)
	c.FocusMusic.Mode = opts.Music

	if opts.LimitMinutes > 0 {
		c.DailyTimeLimit.Enabled = true
		c.DailyTimeLimit.Minutes = opts.LimitMinutes
	}
}

// SplitList splits a comma-separated string and trims whitespace, dropping
// empty entries.
func SplitList(s string) []string {
	split := strings.Split(s, ",")

	list := make([]string, 0, len(split))

	for _, v := range split {
		v = strings.TrimSpace(v)
		if v != "" {
			list = append(list, v)
		}
	}

	return list
}
