package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kennyg/yokogaki/internal/author"
	"github.com/kennyg/yokogaki/internal/ui"
)

var whereCmd = &cobra.Command{
	Use:     "where",
	Aliases: []string{"env"},
	Short:   "Show where posts would go",
	Long: `Print the resolved site root, today's post directory, the config and state
files in use, and the active document.`,
	Args: cobra.NoArgs,
	Run:  runWhere,
}

func runWhere(cmd *cobra.Command, args []string) {
	a, err := loadApp()
	if err != nil {
		exitWithError(err.Error())
	}

	h := a.hostFor("", nil, true)

	var postDir string
	if a.root != "" {
		postDir = a.display(a.helper(h).PostDir(a.root, time.Now()))
	}

	var active string
	if doc, ok := h.ActiveDocument(cmd.Context()); ok {
		active = a.display(doc.Path)
	}

	const width = 8
	fmt.Println()
	fmt.Println(ui.Heading("yokogaki"))
	fmt.Println(ui.KeyValue("root", a.root, width))
	fmt.Println(ui.KeyValue("posts", postDir, width))
	fmt.Println(ui.KeyValue("config", a.cfgFile, width))
	fmt.Println(ui.KeyValue("state", a.stateFile, width))
	fmt.Println(ui.KeyValue("editor", a.editor, width))
	fmt.Println(ui.KeyValue("active", active, width))
	fmt.Println()

	if a.root == "" {
		fmt.Println(ui.WarningLine(author.MsgNoWorkspace + " Use --root or run inside a site."))
	}
}
