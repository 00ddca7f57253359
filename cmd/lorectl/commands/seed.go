package commands

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"lorekeeper/internal/auth"
	"lorekeeper/internal/config"
	"lorekeeper/internal/repository/postgres"
	postgresCampaign "lorekeeper/internal/repository/postgres/campaign"
	"lorekeeper/internal/seed"
	authService "lorekeeper/internal/service/auth"
	serviceCampaign "lorekeeper/internal/service/campaign"
)

var (
	seedOwnerID  string
	seedEmail    string
	seedPassword string
	seedName     string
	seedForce    bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create a demo campaign owned by a user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newPrinter(cmd)
		ctx := cmd.Context()

		if seedOwnerID != "" {
			if _, err := uuid.Parse(seedOwnerID); err != nil {
				return p.Error("Invalid --owner", "The owner must be a Supabase user id (UUID).")
			}
		}
		if err := guardProduction(p, seedForce, "seed demo data"); err != nil {
			return err
		}
		if seedEmail != "" {
			if cfg.SupabaseURL == "" || cfg.SupabaseKey == "" {
				return p.Error("Supabase admin access not configured",
					"--email needs SUPABASE_URL and the service role key in SUPABASE_KEY.",
					"Pass --owner with an existing user id instead")
			}
			if seedPassword == "" {
				return p.Error("Missing --password", "A password is required to create the demo account.")
			}
			admin := auth.NewAdminClient(cfg.SupabaseURL, cfg.SupabaseKey)
			id, created, err := admin.EnsureUser(ctx, seedEmail, seedPassword, seedName)
			if err != nil {
				return p.Error("Cannot provision demo user", err.Error())
			}
			if created {
				p.Success("created user %s (%s)", seedEmail, id)
			} else {
				p.Info("using existing user %s (%s)", seedEmail, id)
			}
			seedOwnerID = id
		}

		schema, err := config.LoadEditorSchema(cfg.EditorSchemaFile)
		if err != nil {
			return p.Error("Invalid editor schema", err.Error())
		}

		pool, repoConfig, err := openRepositories(ctx, p)
		if err != nil {
			return err
		}
		defer pool.Close()

		campaigns := postgresCampaign.NewCampaignRepository(repoConfig)
		notes := postgresCampaign.NewNoteRepository(repoConfig)
		tags := postgresCampaign.NewTagRepository(repoConfig)
		authorizer := authService.NewMembershipAuthorizer(campaigns, notes)
		logger := repoConfig.Logger

		seeder := seed.NewCampaignSeeder(
			serviceCampaign.NewCampaignService(campaigns, postgres.NewTransactionManager(pool, logger), authorizer, logger),
			serviceCampaign.NewTagService(tags, authorizer, logger),
			serviceCampaign.NewNoteService(notes, tags, authorizer, schema, logger),
			logger,
		)

		p.Step("seeding demo campaign for %s", seedOwnerID)
		result, err := seeder.Seed(ctx, seedOwnerID)
		if err != nil {
			return p.Error("Seeding failed", err.Error(),
				"Run 'lorectl migrate up' first if the tables are missing")
		}

		p.Success("created campaign %q (%s)", result.Campaign.Name, result.Campaign.ID)
		for _, note := range result.Notes {
			p.Info("  note %s  %s", note.ID, note.Name)
		}
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedOwnerID, "owner", "", "user id that will own the campaign")
	seedCmd.Flags().StringVar(&seedEmail, "email", "", "provision or reuse a Supabase account with this email as owner")
	seedCmd.Flags().StringVar(&seedPassword, "password", "", "password for a newly created --email account")
	seedCmd.Flags().StringVar(&seedName, "name", "Dungeon Master", "display name for a newly created --email account")
	seedCmd.Flags().BoolVar(&seedForce, "force", false, "allow seeding when ENVIRONMENT=prod")
	seedCmd.MarkFlagsOneRequired("owner", "email")
	seedCmd.MarkFlagsMutuallyExclusive("owner", "email")
	rootCmd.AddCommand(seedCmd)
}
