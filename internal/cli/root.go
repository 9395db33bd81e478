// Package cli wires the cobra command surface. Commands never call
// os.Exit themselves; they record the exit code so main can report it
// after cobra unwinds.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/nace/klet/internal/backup"
	"github.com/nace/klet/internal/config"
	"github.com/nace/klet/internal/exitcode"
	"github.com/nace/klet/internal/system"
	"github.com/nace/klet/internal/ui"
	"github.com/nace/klet/internal/volume"
	"github.com/nace/klet/internal/workflow"
)

var (
	cfgPath string
	verbose bool
	quiet   bool
	noColor bool
	debug   bool

	status int
)

// dependencies are the external commands the workflow shells out to.
var dependencies = []string{"cryptsetup", "mount", "umount"}

// Status returns the exit code recorded by the last executed command.
func Status() int {
	return status
}

// NewRootCommand builds the klet root command. Running klet without a
// subcommand executes the backup workflow; positional arguments are
// passed through to the backup program.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "klet [-- backup-args...]",
		Short: "Klet - encrypted external volume backups",
		Long: `Klet runs backups against an encrypted external volume that is only
intermittently attached (a USB drive plugged in now and then).

It locates the volume by UUID, opens the LUKS mapping, mounts it, runs
the configured backup program, then unmounts and closes again. A volume
that is not plugged in is a normal outcome, reported with exit code 66
so a scheduler can tell it apart from real failures.`,
		Version:       "0.1.0",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runBackup,
	}

	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "Config file path (default: XDG config dir, then ~/.klet.yaml)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (suppress non-error output)")
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable color output")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "Debug mode (show external commands)")

	root.AddCommand(newCheckCommand())

	root.SetHelpCommand(&cobra.Command{
		Use:    "no-help",
		Hidden: true,
	})
	root.CompletionOptions.DisableDefaultCmd = true

	return root
}

func runBackup(cmd *cobra.Command, args []string) error {
	log := ui.NewLogger(verbose, quiet, noColor)

	// Privilege precedes every other check, even config loading.
	if err := system.RequireRoot(); err != nil {
		log.Error("%v", err)
		status = exitcode.NoPerm
		return nil
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Error("%v", err)
		status = exitcode.Config
		return nil
	}

	executor := system.NewExecutor(debug)
	if err := executor.CheckDependencies(dependencies); err != nil {
		log.Error("%v", err)
		status = exitcode.Config
		return nil
	}

	w := workflow.New(cfg,
		volume.NewCryptSetup(executor),
		volume.NewSysMount(executor),
		backup.NewExecRunner(),
		log)
	w.ExtraArgs = args

	res := w.Run(cmd.Context())
	if res.Err != nil {
		log.Error("%v", res.Err)
	}
	status = res.Code
	return nil
}
