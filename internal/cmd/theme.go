package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/bridge/internal/config"
	"github.com/Iron-Ham/bridge/internal/errors"
	"github.com/Iron-Ham/bridge/internal/tui/styles"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Manage dashboard themes",
	Long: `List built-in themes, export them as editable theme files or check a
custom theme file.

Point tui.theme_file at an exported file to use it. The dashboard reloads
the file whenever it is saved.`,
}

var themeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List built-in themes",
	RunE:  runThemeList,
}

var themeExportCmd = &cobra.Command{
	Use:   "export <name> [file]",
	Short: "Export a built-in theme as a YAML theme file",
	Long: `Export a built-in theme as a YAML theme file. Without a file argument
the theme is written to stdout.

Examples:
  bridge config theme export amber
  bridge config theme export default ~/.config/bridge/mytheme.yaml`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runThemeExport,
}

var themeCheckCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Validate a theme file",
	Args:  cobra.ExactArgs(1),
	RunE:  runThemeCheck,
}

func init() {
	configCmd.AddCommand(themeCmd)
	themeCmd.AddCommand(themeListCmd)
	themeCmd.AddCommand(themeExportCmd)
	themeCmd.AddCommand(themeCheckCmd)
}

func runThemeList(cmd *cobra.Command, args []string) error {
	current := config.Get().TUI.Theme
	for _, name := range styles.BuiltinThemes() {
		marker := "  "
		if name == current {
			marker = "* "
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s%s\n", marker, name)
	}
	return nil
}

func runThemeExport(cmd *cobra.Command, args []string) error {
	name := args[0]
	if !styles.IsBuiltinTheme(name) {
		return errors.NewNotFoundError("theme", name)
	}
	data, err := styles.ExportTheme(styles.ThemeName(name))
	if err != nil {
		return fmt.Errorf("failed to export theme: %w", err)
	}
	if len(args) == 1 {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(args[1], data, 0644); err != nil {
		return fmt.Errorf("failed to write theme file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported theme %s to %s\n", name, args[1])
	return nil
}

func runThemeCheck(cmd *cobra.Command, args []string) error {
	tf, err := styles.LoadThemeFile(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: theme %q is valid\n", args[0], tf.Name)
	return nil
}
