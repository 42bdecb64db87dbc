package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/shamseena-dev/pencil"
)

type playOptions struct {
	script      string
	outDir      string
	loadTimeout time.Duration
}

func newPlayCmd(g *globalFlags) *cobra.Command {
	var o playOptions
	cmd := &cobra.Command{
		Use:   "play <document>",
		Short: "Replay an input script against a document, saving its screenshots",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			runner, err := pencil.LoadScript(o.script)
			if err != nil {
				return err
			}
			runner.ScreenshotDir = o.outDir

			doc := args[0]
			def, err := readDocument(doc)
			if err != nil {
				return err
			}
			scene, _, err := buildScene(doc, def, cfg)
			if err != nil {
				return err
			}
			defer scene.Close()

			scene.Frame()
			if err := waitLoads(cmd.Context(), scene, o.loadTimeout); err != nil {
				return err
			}
			if err := runner.Play(scene); err != nil {
				return err
			}
			pencil.Logger().Info("script finished", "document", doc, "frames", scene.FrameCount())
			return nil
		},
	}
	cmd.Flags().StringVarP(&o.script, "script", "s", "", "YAML or JSON input script")
	cmd.Flags().StringVar(&o.outDir, "out", pencil.DefaultScreenshotDir, "directory for screenshot steps")
	cmd.Flags().DurationVar(&o.loadTimeout, "load-timeout", 5*time.Second, "how long to wait for images and fonts")
	_ = cmd.MarkFlagRequired("script")
	return cmd
}
