package main

import (
	"encoding/json"

	"github.com/darkkaiser/echo-gtm/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd() *cobra.Command {
	var file string

	c := &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration as YAML",
		Long: `Load the configuration (defaults < JSON file < ECHO_GTM_ environment variables),
validate it and print the result as YAML. gtm.id is printed as the normalized container list.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			cfg, err := config.LoadWithFile(file)
			if err != nil {
				return err
			}

			doc, err := resolvedConfig(cfg)
			if err != nil {
				return err
			}

			enc := yaml.NewEncoder(c.OutOrStdout())
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(doc)
		},
	}

	c.Flags().StringVarP(&file, "file", "f", config.DefaultFilename, "Configuration file path")

	return c
}

// resolvedConfig 설정을 JSON 키 이름을 유지한 일반 맵으로 변환합니다.
func resolvedConfig(cfg *config.AppConfig) (map[string]any, error) {
	b, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}

	var doc map[string]any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}

	if g, ok := doc["gtm"].(map[string]any); ok {
		g["id"] = cfg.GTM.Containers()
	}
	return doc, nil
}
