package commands

import (
	"github.com/spf13/cobra"

	"lorekeeper/internal/config"
)

var schemaFile string

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the node types that can be shared",
	Long: `schema loads the editor schema the server would use (EDITOR_SCHEMA_FILE,
or --file) and prints its shareable node types. Without a file the
built-in list is printed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newPrinter(cmd)

		path := schemaFile
		if path == "" {
			path = cfg.EditorSchemaFile
		}
		schema, err := config.LoadEditorSchema(path)
		if err != nil {
			return p.Error("Invalid editor schema", err.Error())
		}

		source := "built-in"
		if path != "" {
			source = path
		}
		p.Step("shareable node types (%s)", source)
		for _, kind := range schema.ShareableKinds() {
			p.Info("  %s", kind)
		}
		return nil
	},
}

func init() {
	schemaCmd.Flags().StringVar(&schemaFile, "file", "", "editor schema YAML file")
	rootCmd.AddCommand(schemaCmd)
}
