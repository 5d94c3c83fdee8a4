package commands

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/analytix/pkg/services/config"
	"github.com/de-tools/analytix/pkg/store/client"
)

type AuthoriseCmd struct {
	force   bool
	scopes  []string
	session *Session
	now     func() time.Time
}

func NewAuthoriseCmd(session *Session) *cobra.Command {
	ac := &AuthoriseCmd{session: session, now: time.Now}
	cmd := &cobra.Command{
		Use:     "authorise",
		Aliases: []string{"authorize"},
		Short:   "Authorise the profile against the YouTube Analytics API",
		Args:    cobra.NoArgs,
		RunE:    ac.run,
	}

	cmd.Flags().BoolVar(&ac.force, "force", false, "Authorise again even if a valid token is cached")
	cmd.Flags().StringSliceVar(&ac.scopes, "scopes", []string{"all"}, "Scopes to request, 'all' for every analytics scope")

	return cmd
}

func (ac *AuthoriseCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)

	b, err := ac.session.open(ctx)
	if err != nil {
		return err
	}
	defer b.Close()

	state, err := b.Credentials.AuthState(ctx, b.Profile.Name)
	if err != nil {
		return fmt.Errorf("failed to read cached token: %w", err)
	}
	if state.Valid(ac.now()) && !ac.force {
		fmt.Fprintln(cmd.OutOrStdout(), "Already authorised, skipping. Use --force to authorise again.")
		return nil
	}

	secrets, err := config.LoadSecrets(b.Profile.SecretsPath)
	if err != nil {
		return err
	}
	scopes, err := client.ResolveScopes(ac.scopes...)
	if err != nil {
		return err
	}
	authorizer, err := client.NewAuthorizer(*secrets, scopes)
	if err != nil {
		return err
	}

	state, err = authorizer.Authorise(ctx, cmd.OutOrStdout(), cmd.InOrStdin())
	if err != nil {
		return err
	}
	if err := b.Credentials.Store(ctx, b.Profile.Name, state, scopes); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}

	logger.Debug().Strs("scopes", scopes).Msg("token stored")
	fmt.Fprintf(cmd.OutOrStdout(), "\nAuthorised profile %s until %s\n",
		b.Profile.Name, state.Expiry().Format(time.RFC3339))
	return nil
}
