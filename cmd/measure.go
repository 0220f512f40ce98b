package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/philipparndt/camruler/internal/i18n"
	"github.com/philipparndt/camruler/internal/measurement"
	"github.com/philipparndt/camruler/pkg/geometry"
)

// consoleView drives the controller without a window
type consoleView struct{}

func (v *consoleView) DrawPoints(points []geometry.Point) {
	logrus.WithField("points", points).Trace("draw")
}

func (v *consoleView) SetText(text string) {
	logrus.WithField("text", text).Debug("label")
}

func (v *consoleView) ShowReferencePrompt() {
	logrus.Debug("reference length requested")
}

func (v *consoleView) HideReferencePrompt() {}

// parseSegment parses "x1,y1,x2,y2" into two points
func parseSegment(s string) ([2]geometry.Point, error) {
	var seg [2]geometry.Point
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return seg, fmt.Errorf("segment %q: want x1,y1,x2,y2", s)
	}
	var v [4]float64
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return seg, pkgerrors.Wrapf(err, "segment %q", s)
		}
		v[i] = f
	}
	seg[0] = geometry.NewPoint(v[0], v[1])
	seg[1] = geometry.NewPoint(v[2], v[3])
	return seg, nil
}

func tapSegment(ctrl *measurement.Controller, seg [2]geometry.Point) error {
	for _, p := range seg {
		if err := ctrl.HandleTap(p); err != nil {
			return err
		}
	}
	return nil
}

// NewMeasureCommand replays a calibration and a set of measurements without
// opening a window
func NewMeasureCommand() *cobra.Command {
	var (
		ref     string
		length  string
		targets []string
	)

	cmd := &cobra.Command{
		Use:   "measure",
		Short: "Calibrate and measure from pixel coordinates",
		Long: `Measure converts pixel segments to real-world distances without a window.
The reference segment and its length calibrate the ratio; every target segment
is then measured with it.`,
		Example: `  camruler measure --ref 10,10,210,10 --length 8.56 --unit cm --target 0,0,100,0`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			settings := cfg.Settings()

			catalog, err := i18n.New(settings.Language)
			if err != nil {
				return pkgerrors.Wrap(err, "failed to load translations")
			}

			refSeg, err := parseSegment(ref)
			if err != nil {
				return pkgerrors.Wrap(err, "invalid --ref")
			}

			out := cmd.OutOrStdout()
			ctrl := measurement.NewController(&consoleView{}, measurement.Options{
				Unit:               settings.Unit,
				MinReferencePixels: settings.MinReferencePixels,
				Messages:           catalog.Messages(),
			})

			if err := tapSegment(ctrl, refSeg); err != nil {
				return err
			}
			if err := ctrl.SubmitReferenceLength(length); err != nil {
				return err
			}

			ratio, _ := ctrl.Ratio()
			fmt.Fprintf(out, "%s %s px = %s %s (%s %s/px)\n",
				color.CyanString("reference"),
				color.New(color.Bold).Sprintf("%.2f", ctrl.Snapshot().ReferencePixelDistance),
				color.New(color.Bold).Sprint(strings.TrimSpace(length)),
				ctrl.Unit(),
				strconv.FormatFloat(ratio, 'g', 6, 64),
				ctrl.Unit(),
			)

			for _, target := range targets {
				seg, err := parseSegment(target)
				if err != nil {
					return pkgerrors.Wrap(err, "invalid --target")
				}
				if err := tapSegment(ctrl, seg); err != nil {
					return err
				}
				m, ok := ctrl.LastMeasurement()
				if !ok {
					color.New(color.FgYellow).Fprintf(out, "%s: not measured, ratio is not positive\n", target)
					continue
				}
				fmt.Fprintf(out, "%s %s\n", color.GreenString("%s:", target), ctrl.Text())
				logrus.WithFields(logrus.Fields{
					"pixels": m.PixelDistance,
					"real":   m.RealDistance,
				}).Debug("target measured")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&ref, "ref", "", "reference segment in pixels: x1,y1,x2,y2")
	cmd.Flags().StringVar(&length, "length", "", "real-world length of the reference segment")
	cmd.Flags().StringArrayVar(&targets, "target", nil, "segment to measure: x1,y1,x2,y2 (repeatable)")
	_ = cmd.MarkFlagRequired("ref")
	_ = cmd.MarkFlagRequired("length")

	return cmd
}
