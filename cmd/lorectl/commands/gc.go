package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"lorekeeper/internal/config"
	postgresCampaign "lorekeeper/internal/repository/postgres/campaign"
	serviceCampaign "lorekeeper/internal/service/campaign"
)

var gcCampaignID string

var gcBlockTagsCmd = &cobra.Command{
	Use:   "gc-block-tags",
	Short: "Delete block tag rows whose block no longer exists",
	Long: `Block tags are stored apart from note content, so deleting a paragraph
leaves its tag rows behind. gc-block-tags parses every live note, removes
rows for blocks that are gone, and removes every row of deleted notes.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newPrinter(cmd)
		ctx := cmd.Context()

		schema, err := config.LoadEditorSchema(cfg.EditorSchemaFile)
		if err != nil {
			return p.Error("Invalid editor schema", err.Error())
		}

		pool, repoConfig, err := openRepositories(ctx, p)
		if err != nil {
			return err
		}
		defer pool.Close()

		collector := serviceCampaign.NewOrphanCollector(
			postgresCampaign.NewNoteRepository(repoConfig),
			postgresCampaign.NewBlockTagRepository(repoConfig),
			schema,
			repoConfig.Logger,
		)

		scope := "all campaigns"
		if gcCampaignID != "" {
			scope = "campaign " + gcCampaignID
		}
		p.Step("collecting orphaned block tags in %s", scope)

		report, err := collector.CollectOrphans(ctx, gcCampaignID)
		if err != nil {
			return p.Error("Garbage collection failed", err.Error())
		}

		p.Success("done")
		p.Fields(map[string]string{
			"notes scanned":       fmt.Sprint(report.NotesScanned),
			"orphan rows deleted": fmt.Sprint(report.OrphanRowsDeleted),
			"deleted-note rows":   fmt.Sprint(report.DeletedNoteRows),
		})
		return nil
	},
}

func init() {
	gcBlockTagsCmd.Flags().StringVar(&gcCampaignID, "campaign", "", "limit collection to one campaign id")
	rootCmd.AddCommand(gcBlockTagsCmd)
}
