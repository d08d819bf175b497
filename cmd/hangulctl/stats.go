package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/Z4rru/hangulmastery/internal/database"
	"github.com/Z4rru/hangulmastery/internal/quiz"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print content and learner statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			stats, err := database.NewRepository(db).GetStatistics()
			if err != nil {
				return fmt.Errorf("failed to get statistics: %w", err)
			}
			return renderStats(cmd.OutOrStdout(), stats)
		},
	}
}

// renderStats prints the statistics as three tables.
func renderStats(w io.Writer, s *database.Statistics) error {
	fmt.Fprintln(w, "=== Content ===")
	content := tablewriter.NewWriter(w)
	content.Header("Characters", "Vocabulary", "Grammar Rules", "Culture Notes")
	if err := content.Append(itoa(s.TotalCharacters), itoa(s.TotalVocabulary), itoa(s.TotalGrammarRules), itoa(s.TotalCultureNotes)); err != nil {
		return err
	}
	if err := content.Render(); err != nil {
		return err
	}

	fmt.Fprintln(w, "\n=== Vocabulary by Category ===")
	cats := tablewriter.NewWriter(w)
	cats.Header("Category", "Label", "Words")
	for _, c := range s.VocabByCategory {
		if err := cats.Append(c.Key, c.Label, itoa(c.Count)); err != nil {
			return err
		}
	}
	for _, l := range s.VocabByLevel {
		if err := cats.Append("level", l.Level, itoa(l.Count)); err != nil {
			return err
		}
	}
	if err := cats.Render(); err != nil {
		return err
	}

	fmt.Fprintln(w, "\n=== Learners ===")
	learners := tablewriter.NewWriter(w)
	learners.Header("Learners", "Quizzes", "Answers", "Correct", "Accuracy", "Perfect")
	if err := learners.Append(
		itoa(s.TotalLearners),
		itoa(s.QuizzesCompleted),
		itoa(s.AnswersRecorded),
		itoa(s.CorrectAnswers),
		fmt.Sprintf("%d%%", quiz.Percentage(s.CorrectAnswers, s.AnswersRecorded)),
		itoa(s.PerfectScores),
	); err != nil {
		return err
	}
	return learners.Render()
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
