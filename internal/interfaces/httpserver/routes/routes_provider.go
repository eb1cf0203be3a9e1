package routes

import (
	"github.com/google/wire"

	"web-mcp/internal/interfaces/httpserver/routes/mcp"
)

// RoutesProvider provides all route dependencies
var RoutesProvider = wire.NewSet(
	mcp.NewSearchMCP,
	mcp.NewMCPRoute,
)
