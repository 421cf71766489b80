package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kennyg/yokogaki/internal/prompt"
	"github.com/kennyg/yokogaki/internal/ui"
)

var newCmd = &cobra.Command{
	Use:     "new",
	Aliases: []string{"stub", "post", "createPostStub"},
	Short:   "Create today's post stub",
	Long: `Create an untitled draft for today and open it.

The file goes to <root>/<post_dir>/<yyyy>/<mm>/untitled.md, or the first free
untitled_<n>.md when that name is taken (up to untitled_19.md). It starts with:

  ---
  title: "Untitled"
  date: "yyyy-mm-dd"
  draft: true
  tags: []
  ---

Examples:
  yokogaki new
  yokogaki new --no-open
  yokogaki new --root ~/sites/blog`,
	Args: cobra.NoArgs,
	Run:  runNew,
}

var newNoOpen bool

func init() {
	newCmd.Flags().BoolVar(&newNoOpen, "no-open", false, "Don't launch the editor")
}

func runNew(cmd *cobra.Command, args []string) {
	a, err := loadApp()
	if err != nil {
		exitWithError(err.Error())
	}

	h := a.hostFor("", prompt.Auto(os.Stdin, os.Stdout), newNoOpen)
	path, err := a.helper(h).CreatePostStub(cmd.Context())
	if err != nil {
		exitWithError(err.Error())
	}
	if path == "" {
		return
	}

	fmt.Println(ui.SuccessLine("Created " + a.display(path)))
}
