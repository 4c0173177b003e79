package templates

import (
	"github.com/digitalocean/gradient-agent-templates/internal/provisioning"
	"github.com/digitalocean/gradient-agent-templates/internal/provisioning/steps"
)

func init() {
	register(&Template{
		Name:    "data-analysis",
		Summary: "Analyzes CSV datasets stored in a Spaces bucket",
		Agent: steps.AgentSpec{
			Name:        "Data Analysis Agent",
			Description: "Answers questions about CSV datasets",
			Instruction: "You are a data analyst. Use the available tools to list the " +
				"CSV files in the data bucket, preview their contents, and inspect " +
				"their columns before answering. Always ground answers in the actual " +
				"data and say when a question cannot be answered from the available files.",
		},
		NeedsBucket: true,
		Tools: []steps.Tool{
			{
				Name:         "list_files",
				Description:  "List the CSV files available in the data bucket",
				FunctionPath: "data-analysis/list_files",
				InputSchema:  objectSchema(map[string]any{}),
				OutputSchema: objectSchema(map[string]any{
					"files": map[string]any{"type": "array", "description": "CSV file names"},
					"count": intProp("Number of CSV files"),
				}),
			},
			{
				Name:         "load_csv",
				Description:  "Load a preview of one CSV file",
				FunctionPath: "data-analysis/load_csv",
				InputSchema: objectSchema(map[string]any{
					"filename": stringProp("Name of the CSV file to load"),
					"rows":     intProp("Maximum number of rows to return"),
				}, "filename"),
				OutputSchema: objectSchema(map[string]any{
					"columns": map[string]any{"type": "array", "description": "Column names"},
					"rows":    map[string]any{"type": "array", "description": "Preview rows"},
				}),
			},
			{
				Name:         "get_column_info",
				Description:  "Describe the columns and inferred types of one CSV file",
				FunctionPath: "data-analysis/get_column_info",
				InputSchema: objectSchema(map[string]any{
					"filename": stringProp("Name of the CSV file to describe"),
				}, "filename"),
				OutputSchema: objectSchema(map[string]any{
					"columns": map[string]any{"type": "array", "description": "Column descriptions"},
				}),
			},
		},
		TokenNames: []string{"LIST_FILES_TOKEN", "LOAD_CSV_TOKEN", "GET_COLUMN_INFO_TOKEN"},
		// The tool functions read the bucket directly, so they need durable
		// Spaces credentials; a generated run-scoped key would be deleted at
		// pipeline exit.
		ExtraEnv: func(ctx *provisioning.Context) map[string]string {
			cfg := ctx.Config
			return map[string]string{
				"SPACES_ACCESS_KEY": cfg.SpacesAccessKey,
				"SPACES_SECRET_KEY": cfg.SpacesSecretKey,
				"SPACES_BUCKET":     cfg.BucketName,
				"SPACES_REGION":     cfg.Region,
			}
		},
	})
}
