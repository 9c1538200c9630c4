package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trtslyr/islajournal/internal/domain"
)

// ProfileCmd returns the profile command group
func ProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage the writer profile file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <file-id>",
		Short: "Designate an imported file as the writer profile",
		Args:  cobra.ExactArgs(1),
		RunE:  runProfileSet,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the current profile text",
		RunE:  runProfileShow,
	})

	return cmd
}

func runProfileSet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	env, err := openLocalEnv(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	// The file must exist before it can serve as the profile.
	if _, err := env.files.GetByID(ctx, args[0]); err != nil {
		return err
	}

	settings, err := env.settings.ContextSettings(ctx)
	if err != nil {
		return err
	}
	settings.ProfileFileID = args[0]
	if err := env.settings.SaveContextSettings(ctx, settings); err != nil {
		return err
	}

	fmt.Printf("profile set to %s\n", args[0])
	return nil
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	env, err := openLocalEnv(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	profile, err := env.settings.Profile(ctx)
	if errors.Is(err, domain.ErrProfileNotFound) {
		fmt.Println("no profile configured")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Println(profile)
	return nil
}
