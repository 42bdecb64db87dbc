package main

import (
	"github.com/spf13/cobra"

	"github.com/shamseena-dev/pencil"
)

func newConvertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Convert a document between JSON and YAML",
		Long: "Convert decodes <in> and writes it to <out>, choosing each format by " +
			"extension (.json, .yaml or .yml). The tree is built on the way so that " +
			"unknown types and invalid options are rejected and defaults are dropped.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := readDocument(args[0])
			if err != nil {
				return err
			}
			shape, err := pencil.From(def)
			if err != nil {
				return err
			}
			if s, ok := shape.(*pencil.Scene); ok {
				defer s.Close()
			}
			return writeDocument(args[1], shape.Base().Definition())
		},
	}
}
