package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mergington/activity-board/internal/adapters/terminal"
	"github.com/mergington/activity-board/internal/app/board"
	"github.com/mergington/activity-board/internal/ports/out/confirm"
)

func newListCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the activities and their participants",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := g.load(cmd)
			if err != nil {
				return err
			}
			rt, err := newRuntime(cfg, logger, nil, nil)
			if err != nil {
				return err
			}
			loadErr := rt.Init(cmd.Context())
			if err := terminal.Render(cmd.OutOrStdout(), rt.State().Snapshot()); err != nil {
				return err
			}
			return loadErr
		},
	}
}

func newSignupCmd(g *globalFlags) *cobra.Command {
	var email, activity string
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Sign a student up for an activity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := g.load(cmd)
			if err != nil {
				return err
			}
			rt, err := newRuntime(cfg, logger, nil, nil)
			if err != nil {
				return err
			}
			res := rt.Dispatch(cmd.Context(), board.OnSignupSubmit(board.SignupSubmitted{Email: email, Activity: activity}))
			if err := terminal.RenderMessage(cmd.OutOrStdout(), res.Message); err != nil {
				return err
			}
			return outcomeErr(board.ActionSignup, res)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Student email")
	cmd.Flags().StringVar(&activity, "activity", "", "Activity name")
	return cmd
}

func newUnregisterCmd(g *globalFlags) *cobra.Command {
	var (
		email, activity string
		yes             bool
	)
	cmd := &cobra.Command{
		Use:   "unregister",
		Short: "Remove a student from an activity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := g.load(cmd)
			if err != nil {
				return err
			}
			var confirmer confirm.Confirmer = terminal.Prompter{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
			if yes {
				confirmer = confirm.Always(true)
			}
			rt, err := newRuntime(cfg, logger, confirmer, nil)
			if err != nil {
				return err
			}

			res := rt.SubmitUnregister(cmd.Context(), activity, email)
			switch res.Outcome {
			case board.OutcomeAborted:
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			case board.OutcomeSucceeded:
				rt.Wait()
				return terminal.Render(cmd.OutOrStdout(), rt.State().Snapshot())
			default:
				if err := terminal.RenderMessage(cmd.OutOrStdout(), res.Message); err != nil {
					return err
				}
				return outcomeErr(board.ActionUnregister, res)
			}
		},
	}
	cmd.Flags().StringVar(&activity, "activity", "", "Activity name")
	cmd.Flags().StringVar(&email, "email", "", "Student email")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func outcomeErr(action board.Action, res board.Result) error {
	switch res.Outcome {
	case board.OutcomeRejected, board.OutcomeFailed:
		return fmt.Errorf("%s %s: %w", action, res.Outcome, res.Err)
	default:
		return nil
	}
}
