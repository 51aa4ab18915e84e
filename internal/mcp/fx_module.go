package mcp

import (
	"go.uber.org/fx"

	"github.com/hadv/vito-mcp/internal/database"
)

// FXModule wires the MCP server into Fx. The server itself is started from
// main (it owns stdin), so only construction is wired here.
var FXModule = fx.Module("mcp",
	fx.Provide(
		func(svc *database.Service) KnowledgeBase { return svc },
		NewServer,
	),
)
