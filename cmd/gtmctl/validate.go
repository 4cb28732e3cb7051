package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/darkkaiser/echo-gtm/pkg/gtm"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <id|json>...",
		Short: "Validate GTM container IDs",
		Long: `Validate GTM container IDs against /^(GTM|G)-[0-9A-Z]+$/.

Each argument is either a plain ID or a JSON container record/array.
Validation stops at the first invalid ID and prints a suggested correction.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runValidate,
	}
}

func runValidate(c *cobra.Command, args []string) error {
	src, err := parseSourceArgs(args)
	if err != nil {
		return err
	}

	containers, err := gtm.Validate(src)
	if err != nil {
		return err
	}

	for _, ct := range containers {
		fmt.Fprintf(c.OutOrStdout(), "%s\tvalid\n", ct.ID)
	}
	return nil
}

// parseSourceArgs 명령행 인자를 gtm.Source로 변환합니다. '{' 또는 '['로 시작하면 JSON으로 해석합니다.
func parseSourceArgs(args []string) (gtm.Source, error) {
	items := make([]gtm.Source, 0, len(args))
	for _, arg := range args {
		trimmed := strings.TrimSpace(arg)
		if !strings.HasPrefix(trimmed, "{") && !strings.HasPrefix(trimmed, "[") {
			items = append(items, gtm.ID(arg))
			continue
		}

		var v any
		if err := json.Unmarshal([]byte(trimmed), &v); err != nil {
			return nil, fmt.Errorf("JSON 인자를 해석할 수 없습니다 (%s): %w", arg, err)
		}
		src, err := gtm.ParseSource(v)
		if err != nil {
			return nil, err
		}
		items = append(items, src)
	}

	return gtm.Sources(items...), nil
}
