package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/shamank/entitrack-sdk-go/pkg/model"
	"github.com/spf13/cobra"
)

func newModelsCmd(a *app) *cobra.Command {
	var apiKey string

	cmd := &cobra.Command{
		Use:   "models",
		Short: "List the Gen AI models available to an API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			models, err := a.core.RefreshModels(cmd.Context(), apiKey)
			if err != nil {
				return err
			}
			return a.render(models, func(w *tabwriter.Writer) {
				printf(w, "NAME\tDISPLAY NAME\tINPUT\tOUTPUT\n")
				for _, m := range models {
					printf(w, "%s\t%s\t%s\t%s\n", m.Name, m.DisplayName, m.InputTokenLimit, m.OutputTokenLimit)
				}
			})
		},
	}

	cmd.Flags().StringVar(&apiKey, "api-key", "", "Google AI Studio API key")
	_ = cmd.MarkFlagRequired("api-key")
	return cmd
}

func newNERCmd(a *app) *cobra.Command {
	var (
		apiKey   string
		modelKey string
		fields   []string
	)

	cmd := &cobra.Command{
		Use:   "ner <text>",
		Short: "Extract entities with a hosted Gen AI model",
		Long: `Extract the requested entity fields from text with a hosted Gen AI model.
Without --model the first model available to the key is used.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if modelKey == "" {
				if _, err := a.core.RefreshModels(ctx, apiKey); err != nil {
					return err
				}
				modelKey = a.core.State().SelectedModel()
				if modelKey == "" {
					return fmt.Errorf("no models available for this API key")
				}
			} else {
				a.core.State().SetSelectedModel(modelKey)
			}

			res := a.core.Client().PerformNER(ctx, apiKey, modelKey, strings.Join(args, " "), fields)
			if err := res.Err(); err != nil {
				return err
			}
			out, err := model.DecodeHostedNER(res.RawBody)
			if err != nil {
				return err
			}
			return a.render(out, func(w *tabwriter.Writer) {
				printf(w, "FIELD\tTEXT\n")
				for _, f := range out.Fields() {
					printf(w, "%s\t%s\n", f, out.Text(f))
				}
			})
		},
	}

	cmd.Flags().StringVar(&apiKey, "api-key", "", "Google AI Studio API key")
	cmd.Flags().StringVarP(&modelKey, "model", "m", "", "model key, e.g. models/gemini-2.0-flash")
	cmd.Flags().StringSliceVarP(&fields, "field", "f", nil, "entity field to extract (repeatable)")
	_ = cmd.MarkFlagRequired("api-key")
	_ = cmd.MarkFlagRequired("field")
	return cmd
}
