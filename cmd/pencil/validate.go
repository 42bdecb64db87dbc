package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shamseena-dev/pencil"
)

func newValidateCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <document>...",
		Short: "Check that documents decode and build",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			var failed int
			for _, doc := range args {
				def, err := readDocument(doc)
				if err == nil {
					var scene *pencil.Scene
					scene, _, err = buildScene(doc, def, cfg)
					if scene != nil {
						scene.Close()
					}
				}
				if err != nil {
					failed++
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", doc, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d components)\n", doc, countNodes(def))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d documents invalid", failed, len(args))
			}
			return nil
		},
	}
}
