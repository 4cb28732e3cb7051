package main

import (
	"github.com/darkkaiser/echo-gtm/internal/config"
	"github.com/darkkaiser/echo-gtm/internal/pkg/version"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "gtmctl",
		Short:         "Google Tag Manager container tooling for " + config.AppName,
		Version:       version.Get().String(),
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.AddCommand(
		newValidateCmd(),
		newSnippetCmd(),
		newConfigCmd(),
	)

	return root
}
