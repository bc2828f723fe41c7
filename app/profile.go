package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/profilemanager/profilemanager/internal/daemon"
	"github.com/profilemanager/profilemanager/internal/profile"
)

// ErrNotConfirmed is returned by delete-all without --yes.
var ErrNotConfirmed = errors.New("refusing to delete all profiles without --yes")

// openService opens the profile service for the loaded configuration.
var openService = daemon.NewProfileService //nolint:gochecknoglobals

func init() { //nolint: gochecknoinits
	updateCmd.Flags().StringVar(&updateForm.Username, "username", "", "New username")
	updateCmd.Flags().StringVar(&updateForm.Email, "email", "", "New email address")
	updateCmd.Flags().StringVar(&updateForm.OldPassword, "old-password", "", "Current password")
	updateCmd.Flags().StringVar(&updateForm.NewPassword, "new-password", "", "New password")
	updateCmd.Flags().StringVar(&updateImage, "image", "", "Picture file (png, jpeg or gif) to store with the profile")

	deleteAllCmd.Flags().BoolVar(&deleteAllConfirmed, "yes", false, "Confirm removing every stored profile")

	rootCmd.AddCommand(showCmd, updateCmd, clearCmd, deleteAllCmd)
}

var (
	updateForm         profile.Form
	updateImage        string
	deleteAllConfirmed bool

	showCmd = &cobra.Command{
		Use:   "show",
		Short: "Print the stored profile",
		RunE: withService(func(cmd *cobra.Command, svc *profile.Service) error {
			return runShow(cmd.Context(), cmd.OutOrStdout(), svc)
		}),
	}

	updateCmd = &cobra.Command{
		Use:   "update",
		Short: "Save username, email and password, optionally with a new picture",
		RunE: withService(func(cmd *cobra.Command, svc *profile.Service) error {
			return runUpdate(cmd.Context(), cmd.OutOrStdout(), svc, updateForm, updateImage)
		}),
	}

	clearCmd = &cobra.Command{
		Use:   "clear",
		Short: "Overwrite the stored profile with empty values",
		RunE: withService(func(cmd *cobra.Command, svc *profile.Service) error {
			return runClear(cmd.Context(), cmd.OutOrStdout(), svc)
		}),
	}

	deleteAllCmd = &cobra.Command{
		Use:   "delete-all",
		Short: "Remove every stored profile row",
		RunE: withService(func(cmd *cobra.Command, svc *profile.Service) error {
			return runDeleteAll(cmd.Context(), cmd.OutOrStdout(), svc, deleteAllConfirmed)
		}),
	}
)

// withService opens the profile service before calling run.
func withService(run func(cmd *cobra.Command, svc *profile.Service) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		svc, err := openService(&cfg)
		if err != nil {
			return err //nolint:wrapcheck
		}

		return run(cmd, svc)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}

	return s
}

func runShow(ctx context.Context, w io.Writer, svc *profile.Service) error {
	view, err := svc.Load(ctx)
	if err != nil {
		return err //nolint:wrapcheck
	}

	if view.Empty {
		_, err = fmt.Fprintf(w, "no profile stored for record %d\n", svc.RecordID())

		return err //nolint:wrapcheck
	}

	_, err = fmt.Fprintf(w, "record:   %d\nusername: %s\nemail:    %s\nimage:    %s\n",
		svc.RecordID(), orDash(view.Username), orDash(view.Email), orDash(view.ImagePath))

	return err //nolint:wrapcheck
}

func runUpdate(ctx context.Context, w io.Writer, svc *profile.Service, form profile.Form, image string) error {
	if image != "" {
		f, err := os.Open(image) //nolint:gosec // path given by the operator
		if err != nil {
			return errors.Wrap(err, "failed to open picture")
		}
		defer f.Close()

		path, err := svc.AttachImage(ctx, f)
		if err != nil {
			return errors.Wrap(err, profile.Message(err))
		}

		log.Debug().Str("path", path).Msg("picture attached")
	}

	if err := svc.Update(ctx, form); err != nil {
		return errors.Wrap(err, profile.Message(err))
	}

	_, err := fmt.Fprintln(w, "User Updated")

	return err //nolint:wrapcheck
}

func runClear(ctx context.Context, w io.Writer, svc *profile.Service) error {
	if _, err := fmt.Fprintln(w, "Clearing User Data"); err != nil {
		return err //nolint:wrapcheck
	}

	if err := svc.Clear(ctx); err != nil {
		return errors.Wrap(err, profile.Message(err))
	}

	return nil
}

func runDeleteAll(ctx context.Context, w io.Writer, svc *profile.Service, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}

	n, err := svc.DeleteAll(ctx)
	if err != nil {
		return err //nolint:wrapcheck
	}

	_, err = fmt.Fprintf(w, "deleted %d profile(s)\n", n)

	return err //nolint:wrapcheck
}
