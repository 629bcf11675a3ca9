package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string) int {
	root := newRootCmd()
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "scrollstage: %v\n", err)
		return 1
	}
	return 0
}

// rootOptions are the flags shared by the TUI and the inspection commands
type rootOptions struct {
	dir    string
	config string
	dark   bool
	light  bool
}

func newRootCmd() *cobra.Command {
	var opts rootOptions

	root := &cobra.Command{
		Use:   "scrollstage [dir]",
		Short: "Scroll, swipe and autoplay through a site's sections in the terminal",
		Long: "scrollstage renders the hero slider, the scroll-driven process steps and the\n" +
			"services carousel described by .scrollstage.toml in the given directory.",
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 && opts.dir == "" {
				opts.dir = args[0]
			}
			return runTUI(cmd.Context(), opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.dir, "dir", "d", "", "Directory holding .scrollstage.toml (default: current directory)")
	flags.StringVarP(&opts.config, "config", "c", "", "Config file path (overrides --dir)")
	root.Flags().BoolVar(&opts.dark, "dark", false, "Force the dark theme")
	root.Flags().BoolVar(&opts.light, "light", false, "Force the light theme")
	root.MarkFlagsMutuallyExclusive("dark", "light")

	root.AddCommand(newCursorCmd())
	root.AddCommand(newStylesCmd(&opts))
	root.AddCommand(newVersionCmd())

	return root
}
