package main

import (
	"encoding/json"
	"fmt"

	"github.com/darkkaiser/echo-gtm/pkg/gtm"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type snippetFlags struct {
	ids           []string
	params        map[string]string
	nonce         string
	deferLoad     bool
	compatibility bool
	source        string
	dataLayerName string
	asJSON        bool
}

func newSnippetCmd() *cobra.Command {
	f := &snippetFlags{}

	c := &cobra.Command{
		Use:   "snippet",
		Short: "Print the GTM snippet for static pages",
		Long: `Print the <head> script and <body> noscript snippet for the given containers.

Use --nonce auto to generate a random CSP nonce.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runSnippet(c, f)
		},
	}

	c.Flags().StringSliceVar(&f.ids, "id", nil, "Container ID (repeatable or comma separated)")
	c.Flags().StringToStringVar(&f.params, "param", nil, "Extra query parameter k=v added to every container URL")
	c.Flags().StringVar(&f.nonce, "nonce", "", "CSP nonce attribute ('auto' generates one)")
	c.Flags().BoolVar(&f.deferLoad, "defer", false, "Load the container script with defer instead of async")
	c.Flags().BoolVar(&f.compatibility, "compat", false, "Add defer to async scripts for older browsers")
	c.Flags().StringVar(&f.source, "source", gtm.DefaultSource, "Container script URL")
	c.Flags().StringVar(&f.dataLayerName, "data-layer", gtm.DefaultDataLayerName, "Data layer variable name")
	c.Flags().BoolVar(&f.asJSON, "json", false, "Print {head, body} as JSON")
	_ = c.MarkFlagRequired("id")

	return c
}

func runSnippet(c *cobra.Command, f *snippetFlags) error {
	s, err := gtm.New(gtm.Options{
		ID:            gtm.IDs(f.ids...),
		QueryParams:   f.params,
		Defer:         f.deferLoad,
		Compatibility: f.compatibility,
		Source:        f.source,
		DataLayerName: f.dataLayerName,
	})
	if err != nil {
		return err
	}

	nonce := f.nonce
	if nonce == gtm.NonceAuto {
		nonce = uuid.NewString()
	}

	snippet, err := s.Snippet(nil, nonce)
	if err != nil {
		return err
	}

	out := c.OutOrStdout()
	if f.asJSON {
		enc := json.NewEncoder(out)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(snippet)
	}

	fmt.Fprintln(out, "<!-- <head> -->")
	fmt.Fprintln(out, snippet.Head)
	fmt.Fprintln(out, "<!-- <body> -->")
	fmt.Fprintln(out, snippet.Body)
	return nil
}
