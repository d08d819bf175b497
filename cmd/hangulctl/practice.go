package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Z4rru/hangulmastery/internal/database"
	"github.com/Z4rru/hangulmastery/internal/logger"
	"github.com/Z4rru/hangulmastery/internal/progress"
	"github.com/Z4rru/hangulmastery/internal/quiz"
	"github.com/Z4rru/hangulmastery/internal/sampling"
	"github.com/Z4rru/hangulmastery/internal/tui"
)

// localLearner is used when no --learner is given so terminal progress
// accumulates under one stable id.
const localLearner = "00000000-0000-0000-0000-000000000001"

func quizCmd() *cobra.Command {
	var modeName, learner string

	cmd := &cobra.Command{
		Use:   "quiz",
		Short: "Take a quiz in the terminal",
		Long:  "Take a quiz in the terminal. Answers are recorded to the learner's progress in the database.",
		RunE: func(cmd *cobra.Command, args []string) error {
			var mode quiz.Mode
			if modeName != "" {
				m, err := quiz.ParseMode(modeName)
				if err != nil {
					return err
				}
				mode = m
			}
			id, err := uuid.Parse(learner)
			if err != nil {
				return fmt.Errorf("invalid learner id %q: %w", learner, err)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			cat, err := loadCatalog(cfg)
			if err != nil {
				return err
			}
			db, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			store := progress.NewStore(
				database.NewKVStore(db),
				cat.SectionKeys(),
				progress.WithLogger(logger.Named("progress")),
			)

			rnd := sampling.NewTimeRand()
			if cfg.Quiz.Seed != 0 {
				rnd = sampling.NewRand(cfg.Quiz.Seed)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			model := tui.NewQuizModel(ctx, quiz.NewGenerator(cat, rnd), store.Recorder(id.String()), mode)
			if _, err := tea.NewProgram(model, tea.WithContext(ctx)).Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				return err
			}

			st := store.LoadQuizStats(context.WithoutCancel(ctx), id.String())
			fmt.Fprintf(cmd.OutOrStdout(), "Quizzes: %d  Correct: %d/%d (%d%%)  Perfect: %d\n",
				st.TotalQuizzes, st.TotalCorrect, st.TotalAnswered,
				quiz.Percentage(st.TotalCorrect, st.TotalAnswered), st.PerfectScores)
			return nil
		},
	}

	cmd.Flags().StringVarP(&modeName, "mode", "m", "", "Quiz mode to start directly (hangul, vocab, particles, grammar, mixed)")
	cmd.Flags().StringVar(&learner, "learner", localLearner, "Learner id to record progress under")
	return cmd
}

func breatheCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "breathe",
		Short: "Follow the box breathing guide",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			cat, err := loadCatalog(cfg)
			if err != nil {
				return err
			}

			model, err := tui.NewBreatheModel(cmd.Context(), cat, nil)
			if err != nil {
				return err
			}
			defer func() { _ = model.Close() }()

			_, err = tea.NewProgram(model).Run()
			return err
		},
	}
}

func focusCmd() *cobra.Command {
	var minutes int

	cmd := &cobra.Command{
		Use:   "focus",
		Short: "Run a pomodoro focus timer",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			cat, err := loadCatalog(cfg)
			if err != nil {
				return err
			}

			model, err := tui.NewFocusModel(cmd.Context(), cat.FocusPresets, minutes, nil)
			if err != nil {
				return err
			}
			defer func() { _ = model.Close() }()

			_, err = tea.NewProgram(model).Run()
			return err
		},
	}

	cmd.Flags().IntVarP(&minutes, "minutes", "n", 0, "Session length; must be one of the presets")
	return cmd
}
