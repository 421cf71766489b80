package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kennyg/yokogaki/internal/prompt"
	"github.com/kennyg/yokogaki/internal/ui"
)

var renameCmd = &cobra.Command{
	Use:     "rename [file]",
	Aliases: []string{"mv", "renameThis"},
	Short:   "Rename the current file and keep it open",
	Long: `Rename a file without losing your place.

Without an argument the file yokogaki last opened is renamed. You are asked
for the new path with the bare file name pre-selected, so typing replaces just
the name. Answering with a name that has no directory keeps the directory and
extension. The rename never overwrites an existing file.

Examples:
  yokogaki rename
  yokogaki rename content/post/2024/03/untitled.md
  yokogaki rename --to hello-world
  yokogaki rename --to content/post/2024/03/hello-world.md`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRename,
}

var (
	renameTo     string
	renameNoOpen bool
)

func init() {
	renameCmd.Flags().StringVar(&renameTo, "to", "", "New name or path (skips the prompt)")
	renameCmd.Flags().BoolVar(&renameNoOpen, "no-open", false, "Don't launch the editor afterwards")
}

func runRename(cmd *cobra.Command, args []string) {
	a, err := loadApp()
	if err != nil {
		exitWithError(err.Error())
	}

	active, p, err := renameInputs(args, renameTo, cmd.Flags().Changed("to"), func() prompt.Prompter {
		return prompt.Auto(os.Stdin, os.Stdout)
	})
	if err != nil {
		exitWithError(err.Error())
	}

	h := a.hostFor(active, p, renameNoOpen)
	newPath, err := a.helper(h).RenameActiveFile(cmd.Context())
	if err != nil {
		exitWithError(err.Error())
	}
	if newPath == "" {
		return
	}

	fmt.Println(ui.SuccessLine("Renamed to " + a.display(newPath)))
}

// renameInputs resolves the file to rename and how the new name is asked
// for. An explicit --to answers the prompt, even when it is empty.
func renameInputs(args []string, to string, toSet bool, interactive func() prompt.Prompter) (string, prompt.Prompter, error) {
	var active string
	if len(args) == 1 {
		abs, err := filepath.Abs(args[0])
		if err != nil {
			return "", nil, fmt.Errorf("resolve %s: %w", args[0], err)
		}
		active = abs
	}

	if toSet {
		return active, prompt.Fixed{Answer: to}, nil
	}
	return active, interactive(), nil
}
