package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/shamank/entitrack-sdk-go/pkg/model"
	"github.com/shamank/entitrack-sdk-go/pkg/trainingdata"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newSessionsCmd(a *app) *cobra.Command {
	list := &cobra.Command{
		Use:   "list",
		Short: "List training sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res := a.core.Client().ListTrainingSessions(cmd.Context())
			if err := res.Err(); err != nil {
				return err
			}
			sessions, err := model.DecodeSessions(res.RawBody)
			if err != nil {
				return err
			}
			return a.render(sessions, func(w *tabwriter.Writer) {
				printf(w, "ID\tVALID\tF-SCORE\tCREATED\tDESCRIPTION\n")
				for _, s := range sessions {
					printf(w, "%s\t%t\t%s\t%s\t%s\n", s.TrainingSessionID, s.IsValid,
						fScore(s), s.DateCreated, truncate(s.TrainingDescription, 40))
				}
			})
		},
	}

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a training session and its metrics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := a.core.Client().GetTrainingSession(cmd.Context(), args[0])
			if err := res.Err(); err != nil {
				return err
			}
			s, err := model.DecodeSession(res.RawBody)
			if err != nil {
				return err
			}
			return a.render(s, func(w *tabwriter.Writer) { sessionTable(w, s) })
		},
	}

	rm := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Remove a training session",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := a.core.Client().RemoveTrainingSession(cmd.Context(), args[0])
			if err := res.Err(); err != nil {
				return err
			}
			out, err := model.DecodeRemoveResult(res.RawBody)
			if err != nil {
				return err
			}
			if !out.Success {
				return fmt.Errorf("backend could not remove session %s", args[0])
			}
			return a.render(out, func(w *tabwriter.Writer) {
				printf(w, "Removed session %s\n", args[0])
			})
		},
	}

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Manage training sessions",
		RunE:  list.RunE,
	}
	cmd.AddCommand(list, get, rm)
	return cmd
}

func newTrainCmd(a *app) *cobra.Command {
	var (
		column         string
		description    string
		skipValidation bool
	)

	cmd := &cobra.Command{
		Use:   "train <file.csv>",
		Short: "Train a NER model from a CSV file",
		Long: `Upload a CSV file and train a spaCy NER model from it. The file must have
the unstructured text column named by --column and at least one label column.
Training can take a long time; the upload has no client-side deadline.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if !skipValidation {
				h, err := trainingdata.InspectFile(path, column)
				if err != nil {
					return err
				}
				zap.L().Debug("training file inspected",
					zap.Strings("labels", h.Labels), zap.Int("rows", h.Rows))
			}

			res := a.core.Client().TrainModelFromFile(cmd.Context(), path, column, description)
			if err := res.Err(); err != nil {
				return err
			}
			s, err := model.DecodeSession(res.RawBody)
			if err != nil {
				return err
			}
			return a.render(s, func(w *tabwriter.Writer) { sessionTable(w, s) })
		},
	}

	cmd.Flags().StringVarP(&column, "column", "c", "", "name of the unstructured text column")
	cmd.Flags().StringVarP(&description, "description", "d", "", "training description")
	cmd.Flags().BoolVar(&skipValidation, "skip-validation", false, "upload without inspecting the file locally")
	_ = cmd.MarkFlagRequired("column")
	return cmd
}

func newNERTrainedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ner-trained <session-id> <text>",
		Short: "Extract entities with a trained session model",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := a.core.Client().PerformTrainedNER(cmd.Context(), args[0], strings.Join(args[1:], " "))
			if err := res.Err(); err != nil {
				return err
			}
			entities, err := model.DecodeEntities(res.RawBody)
			if err != nil {
				return err
			}
			return a.render(entities, func(w *tabwriter.Writer) {
				printf(w, "LABEL\tTEXT\tSTART\tEND\n")
				for _, e := range entities {
					printf(w, "%s\t%s\t%d\t%d\n", e.Label, e.Text, e.StartIndex, e.EndIndex)
				}
			})
		},
	}
}

func fScore(s model.TrainingSessionSummary) string {
	if s.Performance == nil {
		return "-"
	}
	return model.Percent(s.Performance.F1Score)
}

func sessionTable(w *tabwriter.Writer, s model.TrainingSessionSummary) {
	printf(w, "ID\t%s\n", s.TrainingSessionID)
	printf(w, "Created\t%s\n", s.DateCreated)
	printf(w, "Description\t%s\n", s.TrainingDescription)
	printf(w, "Fields\t%s\n", strings.Join(s.NERFields, ", "))
	if !s.IsValid {
		printf(w, "Invalid\t%s\n", s.InvalidMessage)
		return
	}
	if s.Performance == nil {
		return
	}
	p := s.Performance
	printf(w, "F-score\t%s\n", model.Percent(p.F1Score))
	printf(w, "Precision\t%s\n", model.Percent(p.Precision))
	printf(w, "Recall\t%s\n", model.Percent(p.Recall))
	printf(w, "NER loss\t%s\n", p.NerLoss.StringFixed(4))
	for _, l := range p.Labels() {
		m := p.EntsPerType[l]
		printf(w, "  %s\tp=%s r=%s f=%s\n", l,
			model.Percent(m.Precision), model.Percent(m.Recall), model.Percent(m.F1Score))
	}
}
