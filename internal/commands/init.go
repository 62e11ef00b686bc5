package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/paysys/paysys/internal/config"
)

func newInitCommand() *cobra.Command {
	var baseURL string
	var userID int
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a default paysys.yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd.OutOrStdout(), absDir, baseURL, userID, force)
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "", "backend base URL (default from built-in config)")
	cmd.Flags().IntVar(&userID, "user", 0, "signed-in user ID to store in the session")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing paysys.yaml")

	return cmd
}

func runInit(out io.Writer, dir, baseURL string, userID int, force bool) error {
	if err := os.MkdirAll(filepath.Join(dir, "exports"), 0o755); err != nil {
		return fmt.Errorf("creating directory exports: %w", err)
	}

	path := filepath.Join(dir, DefaultConfigFile)
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking config: %w", err)
	}

	// Write paysys.yaml.
	cfg := config.Default()
	if baseURL != "" {
		cfg.API.BaseURL = baseURL
	}
	cfg.Session.UserID = userID
	if err := config.Save(path, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Write .gitignore.
	gitignore := ".env\nexports/\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	fmt.Fprintf(out, "Initialized paysys at %s\n", dir)
	return nil
}
