package sqlquery

import (
	"context"

	"github.com/digitalocean/gradient-agent-templates/internal/tools"
)

// QueryHandler executes a read-only SELECT supplied by the agent.
func QueryHandler(ctx context.Context, args tools.Args) (tools.Body, error) {
	query := args.String("query")
	if query == "" {
		return tools.Body(failure("No query was provided. A query must be provided.").Body()), nil
	}

	db, err := Open()
	if err != nil {
		return tools.Body(failure("%v", err).Body()), nil
	}
	defer db.Close()

	result := Execute(ctx, db, query, args.Int("max_rows", DefaultMaxRows))
	return tools.Body(result.Body()), nil
}

// SchemaHandler returns the database schema: tables, columns, and foreign
// key relationships.
func SchemaHandler(ctx context.Context, args tools.Args) (tools.Body, error) {
	db, err := Open()
	if err != nil {
		return tools.ErrorBody(err.Error()), nil
	}
	defer db.Close()

	schema, err := DescribeSchema(ctx, db)
	if err != nil {
		return tools.ErrorBody(err.Error()), nil
	}
	return tools.Body{"success": true, "schema": schema}, nil
}
