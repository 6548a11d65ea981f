// Package cli implements the iconify command line.
package cli

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ds124wfegd/iconify/config"
	"github.com/ds124wfegd/iconify/internal/entity"
	"github.com/ds124wfegd/iconify/internal/pkg/processor"
	"github.com/ds124wfegd/iconify/internal/service"
)

var (
	version = "dev" // set with -ldflags "-X github.com/ds124wfegd/iconify/internal/cli.version=..."
	commit  = "none"
)

type rootOpts struct {
	configPath string
	outDir     string
	verbose    bool
}

// flagKeys maps command line flags onto config keys.
var flagKeys = map[string]string{
	"placement":  "compose.placement",
	"naming":     "compose.naming",
	"grayscale":  "compose.grayscale",
	"max-size":   "compose.max_dimension",
	"filter":     "compose.filter",
	"log-format": "log.format",
}

func NewRootCommand() *cobra.Command {
	var opts rootOpts

	cmd := &cobra.Command{
		Use:   "iconify <profile_picture> [icon...]",
		Short: "Stamp icons onto the bottom-right corner of a profile picture",
		Long: `iconify writes one PNG per icon: the profile picture (downscaled to at most
500px and optionally grayed) with the icon fitted into its bottom-right nonant.`,
		Args:          cobra.MinimumNArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, &opts)
		},
	}
	cmd.SetVersionTemplate("iconify {{.Version}} (" + commit + ")\n")

	f := cmd.Flags()
	f.StringVarP(&opts.outDir, "out", "o", "", "output directory (default: profile picture path without extension)")
	f.StringVar(&opts.configPath, "config", "", "config file (default: ./config/config.yaml if present)")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	f.String("placement", string(entity.PlacementPadded), "icon placement: padded or simple")
	f.String("naming", string(entity.NamingPrefixed), "output names: prefixed ({profile}_{icon}.png) or icon ({icon}.png)")
	f.Bool("grayscale", false, "convert the profile picture to grayscale")
	f.Int("max-size", processor.DefaultMaxDimension, "downscale the profile picture to this size, 0 to keep it")
	f.String("filter", "lanczos", "resampling filter: lanczos, catmullrom, linear, box, nearest")
	f.String("log-format", "text", "log format: text or json")

	return cmd
}

func run(cmd *cobra.Command, args []string, opts *rootOpts) error {
	v, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if err := bindFlags(v, cmd.Flags()); err != nil {
		return err
	}
	cfg, err := config.ParseConfig(v)
	if err != nil {
		return err
	}
	if err := setupLogging(cmd.ErrOrStderr(), cfg.Log, opts.verbose); err != nil {
		return err
	}

	procOpts, err := cfg.Compose.ProcessorOptions()
	if err != nil {
		return err
	}
	naming, err := cfg.Compose.NamingScheme()
	if err != nil {
		return err
	}

	svc := service.NewComposeService(processor.NewImageProcessor(procOpts), naming)
	_, err = svc.Run(cmd.Context(), entity.Job{
		ProfilePath: args[0],
		OutDir:      opts.outDir,
		IconPaths:   args[1:],
	})
	return err
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return err
		}
	}
	return nil
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}
