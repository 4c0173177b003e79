package templates

import (
	"github.com/digitalocean/gradient-agent-templates/internal/provisioning/steps"
)

func init() {
	register(&Template{
		Name:    "sql",
		Summary: "Answers questions by querying a MySQL database read-only",
		Agent: steps.AgentSpec{
			Name:        "SQL Agent",
			Description: "Runs read-only SQL queries to answer data questions",
			Instruction: "You answer questions about the connected database. First " +
				"call get_schema to learn the tables, columns, and relationships, " +
				"then write a single SELECT statement and run it with execute_query. " +
				"Never attempt to modify data and explain the query you ran.",
		},
		NeedsDatabaseUser: true,
		Tools: []steps.Tool{
			{
				Name:         "execute_query",
				Description:  "Run a read-only SELECT statement against the database",
				FunctionPath: "sql/execute_query",
				InputSchema: objectSchema(map[string]any{
					"query": stringProp("The SELECT statement to run"),
				}, "query"),
				OutputSchema: objectSchema(map[string]any{
					"success": map[string]any{"type": "boolean", "description": "Whether the query ran"},
					"data":    stringProp("Query results as JSON"),
				}),
			},
			{
				Name:         "get_schema",
				Description:  "Describe the database tables, columns, and foreign keys",
				FunctionPath: "sql/get_schema",
				InputSchema:  objectSchema(map[string]any{}),
				OutputSchema: objectSchema(map[string]any{
					"success": map[string]any{"type": "boolean", "description": "Whether the schema was read"},
					"data":    stringProp("Schema description as JSON"),
				}),
			},
		},
		TokenNames: []string{"GET_SCHEMA_TOKEN", "EXECUTE_QUERY_TOKEN"},
		// The tools connect as the provisioned read-only user; the admin
		// credentials stay out of the deployed environment.
		ExtraEnv:    steps.DatabaseEnv,
		OmitSecrets: []string{steps.SecretDBAdminUser, steps.SecretDBAdminPassword},
	})
}
