package mcp

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"web-mcp/internal/infrastructure/config"
	"web-mcp/internal/interfaces/httpserver/middlewares"
	"web-mcp/internal/interfaces/httpserver/responses"
	"web-mcp/utils/platformerrors"
)

var allowedMCPMethods = map[string]bool{
	// Initialization / handshake
	"initialize":                true,
	"notifications/initialized": true,
	"ping":                      true,

	// Tools
	"tools/list": true,
	"tools/call": true,
}

type MCPRoute struct {
	mcpServer         *mcp.Server
	ssePath           string
	sseHandler        http.Handler
	streamableHandler http.Handler
}

// NewMCPServer builds the MCP server with every tool registered.
func NewMCPServer(searchMCP *SearchMCP) *mcp.Server {
	impl := &mcp.Implementation{
		Name:    "typingmind-web-mcp",
		Version: "1.0.0",
	}
	server := mcp.NewServer(impl, nil)
	searchMCP.RegisterTools(server)
	return server
}

func NewMCPRoute(cfg *config.Config, searchMCP *SearchMCP) *MCPRoute {
	server := NewMCPServer(searchMCP)
	getServer := func(_ *http.Request) *mcp.Server {
		return server
	}

	return &MCPRoute{
		mcpServer:  server,
		ssePath:    cfg.SSEPath,
		sseHandler: mcp.NewSSEHandler(getServer, nil),
		streamableHandler: mcp.NewStreamableHTTPHandler(getServer, &mcp.StreamableHTTPOptions{
			Stateless: true,
		}),
	}
}

// Server returns the MCP server shared by every transport.
func (route *MCPRoute) Server() *mcp.Server {
	return route.mcpServer
}

func (route *MCPRoute) RegisterRouter(router gin.IRoutes) {
	// GET opens the event stream, POST ?sessionid=... carries client messages
	router.GET(route.ssePath, route.serveSSE)
	router.POST(route.ssePath, route.serveSSE)
	router.OPTIONS(route.ssePath, middlewares.Preflight)

	router.POST("/mcp",
		MCPMethodGuard(allowedMCPMethods),
		route.serveMCP,
	)
	router.OPTIONS("/mcp", middlewares.Preflight)
}

// serveSSE hands the connection to the MCP SSE transport, which owns it until the client disconnects.
// @Summary MCP SSE session endpoint
// @Description GET opens a long-lived Server-Sent Events session speaking the Model Context Protocol.
// @Description The first event names the endpoint (this path with a sessionid query) for POSTing JSON-RPC messages.
// @Description
// @Description **Available Tools:**
// @Description - `web_search`: Google search via Serper (params: query, num, gl, hl). Returns {query, organic}.
// @Description - `fetch_url`: Readable page text via Jina Reader (params: url), truncated to 20000 characters.
// @Tags MCP API
// @Produce text/event-stream
// @Success 200 {string} string "MCP event stream"
// @Router /sse [get]
func (route *MCPRoute) serveSSE(reqCtx *gin.Context) {
	route.sseHandler.ServeHTTP(reqCtx.Writer, reqCtx.Request)
}

// serveMCP streams Model Context Protocol responses using the underlying MCP server.
// @Summary MCP endpoint for tool execution
// @Description Handles stateless Model Context Protocol (MCP) requests over HTTP. Supports MCP methods: initialize, ping, tools/list, tools/call.
// @Tags MCP API
// @Accept json
// @Produce text/event-stream
// @Param request body object true "MCP JSON-RPC request payload (e.g., {\"jsonrpc\":\"2.0\",\"method\":\"tools/list\",\"id\":1})"
// @Success 200 {string} string "Streamed MCP response in SSE format"
// @Failure 400 {object} responses.ErrorResponse "Invalid MCP request payload or unsupported method"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /mcp [post]
func (route *MCPRoute) serveMCP(reqCtx *gin.Context) {
	// Force acceptable content types for go-sdk streamable handler even if client omits Accept.
	reqCtx.Request.Header.Set("Accept", "application/json, text/event-stream")
	route.streamableHandler.ServeHTTP(reqCtx.Writer, reqCtx.Request)
}

func MCPMethodGuard(allowedMethods map[string]bool) gin.HandlerFunc {
	return func(reqCtx *gin.Context) {
		bodyBytes, err := io.ReadAll(reqCtx.Request.Body)
		if err != nil {
			responses.HandleNewError(reqCtx, platformerrors.ErrorTypeInternal, "failed to read MCP request body", "f10df80f-1651-4faa-8a75-3d91814d7990")
			return
		}
		_ = reqCtx.Request.Body.Close()

		if len(bodyBytes) == 0 {
			responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "empty MCP request body", "abf862e2-f2a8-4bd7-b1b7-56fc16647759")
			return
		}

		reqCtx.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		var payload struct {
			Method string `json:"method"`
		}

		if err := json.Unmarshal(bodyBytes, &payload); err != nil {
			responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid MCP request payload", "81f2eaae-8aa1-4569-95ec-c7a611fda0d0")
			return
		}

		if payload.Method == "" {
			responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "missing method field in MCP request", "7b3c9e5a-2f4d-4a1e-9c8b-1d5f3e7a9b2c")
			return
		}

		if !allowedMethods[payload.Method] {
			responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "unsupported MCP method: "+payload.Method, "6e5f62bb-a0fb-4146-969b-7d6dd1bbe8d6")
			return
		}

		reqCtx.Next()
	}
}
