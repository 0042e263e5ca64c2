package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"wordassoc/internal/db"
)

func newDirectiveCommands(ctx *commandContext) []*cobra.Command {
	return []*cobra.Command{
		newMergeCommand(ctx),
		newUnmergeCommand(ctx),
		newDisableCommand(ctx, true),
		newDisableCommand(ctx, false),
	}
}

func newMergeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "merge <kind> <base-word> <main-word> <word>...",
		Short: "Fold answers into a main answer for one base word",
		Args:  cobra.MinimumNArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			survey, err := ctx.openSurvey(args[0])
			if err != nil {
				return err
			}
			base, group := args[1], args[2:]
			err = ctx.withLock(survey, func() error {
				return db.AddMergeGroup(survey.DBPath, survey.Kind, base, group)
			})
			if err != nil {
				return err
			}
			ctx.ensureLogger().Info("merge group stored",
				zap.String("kind", survey.Kind),
				zap.String("base_word", base),
				zap.Strings("group", group),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "Merged %s into %q for %q\n", strings.Join(group[1:], ", "), group[0], base)
			return nil
		},
	}
}

func newUnmergeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "unmerge <kind> <base-word> <main-word>",
		Short: "Remove the merge group led by a main answer",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			survey, err := ctx.openSurvey(args[0])
			if err != nil {
				return err
			}
			var removed bool
			err = ctx.withLock(survey, func() error {
				removed, err = db.RemoveMergeGroup(survey.DBPath, survey.Kind, args[1], args[2])
				return err
			})
			if err != nil {
				return err
			}
			if !removed {
				fmt.Fprintf(cmd.OutOrStdout(), "No merge group led by %q for %q\n", args[2], args[1])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed merge group %q for %q\n", args[2], args[1])
			return nil
		},
	}
}

func newDisableCommand(ctx *commandContext, disabled bool) *cobra.Command {
	use, short, verb := "enable", "Count answers in statistics again", "Enabled"
	if disabled {
		use, short, verb = "disable", "Exclude answers from statistics and similarity", "Disabled"
	}
	return &cobra.Command{
		Use:   use + " <kind> <base-word> <word>...",
		Short: short,
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			survey, err := ctx.openSurvey(args[0])
			if err != nil {
				return err
			}
			base, words := args[1], args[2:]
			err = ctx.withLock(survey, func() error {
				return db.SetDisabled(survey.DBPath, survey.Kind, base, words, disabled)
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s for %q\n", verb, strings.Join(words, ", "), base)
			return nil
		},
	}
}
