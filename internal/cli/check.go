package cli

import (
	"github.com/spf13/cobra"

	"github.com/nace/klet/internal/config"
	"github.com/nace/klet/internal/exitcode"
	"github.com/nace/klet/internal/system"
	"github.com/nace/klet/internal/ui"
)

// newCheckCommand validates privileges, configuration and required
// external tools without resolving or touching the device. It exits
// with the same code a real run would have produced for those phases.
func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate configuration and environment without touching the device",
		Args:  cobra.NoArgs,
		RunE:  runCheck,
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	log := ui.NewLogger(verbose, quiet, noColor)

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

	if err := cfg.Validate(ui.IsInteractive()); err != nil {
		log.Error("%v", err)
		status = exitcode.Config
		return nil
	}

	log.Success("configuration valid, volume %s would be mounted at %s", cfg.VolumeUUID, cfg.MountPoint())
	status = exitcode.OK
	return nil
}
