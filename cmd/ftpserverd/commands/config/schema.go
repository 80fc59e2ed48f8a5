package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/invopop/jsonschema"
	"github.com/marmos91/ftpserver/pkg/config"
	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate a JSON schema for the configuration file",
	Long: `Emit a JSON schema describing ftpserverd's configuration structure,
for editor autocompletion and validation of config.yaml.

Examples:
  ftpserverd config schema > ftpserverd.schema.json`,
	RunE: runConfigSchema,
}

func runConfigSchema(cmd *cobra.Command, args []string) error {
	reflector := &jsonschema.Reflector{
		ExpandedStruct: true,
		DoNotReference: true,
	}
	schema := reflector.Reflect(&config.Config{})

	out, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}

	_, err = os.Stdout.Write(append(out, '\n'))
	return err
}
