package cmd

import (
	"fmt"
	"os"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/philipparndt/camruler/internal/app"
	"github.com/philipparndt/camruler/internal/config"
	"github.com/philipparndt/camruler/pkg/utils/ptr"
	"github.com/philipparndt/camruler/version"
)

var (
	logLevel     string
	configPath   string
	unit         string
	cameraDevice int
	noCamera     bool
)

func setupLogger() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{})
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.Kitchen,
		})
	}

	return nil
}

// overrides turns the flags the user actually set into config overrides
func overrides(cmd *cobra.Command) *config.RawFile {
	raw := &config.RawFile{}
	flags := cmd.Flags()
	if flags.Changed("unit") {
		raw.Unit = ptr.To(unit)
	}
	if flags.Changed("camera-device") {
		raw.CameraDevice = ptr.To(cameraDevice)
	}
	if noCamera {
		raw.CameraEnabled = ptr.To(false)
	}
	return raw
}

func loadConfig(cmd *cobra.Command) (*config.File, error) {
	cfg, err := config.NewFile(configPath, overrides(cmd))
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to load config")
	}
	logrus.WithFields(cfg.Settings().LogrusFields()).Debug("using settings")
	return cfg, nil
}

// NewCommand builds the camruler command tree
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "camruler",
		Short: "Measure real-world distances on a live camera view",
		Long: `camruler overlays a tap surface on the camera feed. Tap two points of a
known length to calibrate, enter that length, then tap any two points to
measure the distance between them in the same unit.`,
		Version:      version.GetFullVersion(),
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return setupLogger()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return app.Run(cfg)
		},
	}

	cmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "info", "log level (trace, debug, info, warn, error, fatal, panic)")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path (JSON); reloaded on change")
	cmd.PersistentFlags().StringVarP(&unit, "unit", "u", "", "unit label shown after measurements")
	cmd.Flags().IntVar(&cameraDevice, "camera-device", 0, "camera device index")
	cmd.Flags().BoolVar(&noCamera, "no-camera", false, "always show the static placeholder instead of the camera")

	cmd.AddCommand(NewMeasureCommand(), NewCompletionCommand())

	return cmd
}

// Execute runs the root command
func Execute() {
	if err := NewCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
