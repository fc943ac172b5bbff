package mcp

import (
	"context"
	"encoding/json"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/canvastile/canvastile/internal/canvas"
	"github.com/canvastile/canvastile/internal/grid"
)

const (
	ServerName    = "canvastile"
	ServerVersion = "0.1.0"
)

// Controller is the canvas-manager surface the MCP tools drive. Satisfied by
// *canvas.Manager; tests substitute a fake.
type Controller interface {
	Open(kind, position, title string) (*canvas.OpenResult, error)
	Update(windowID string, payload json.RawMessage) error
	Close(windowID string) error
	Move(windowID, position string) (grid.Rect, error)
	Swap(windowID1, windowID2 string) error
	Reconfigure(cfg grid.Config) error
	Status() (grid.SummaryData, string, error)
}

// Server exposes canvas and grid operations as MCP tools over stdio, so an
// AI controller process can present UI canvases to the user.
type Server struct {
	mcpServer  *mcpsdk.Server
	controller Controller
}

// NewServer creates the MCP server around a canvas controller.
func NewServer(controller Controller) *Server {
	s := &Server{controller: controller}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "canvas_open",
		Description: "Open a new canvas window of a configured kind (calendar, document, flight, ...) and place it on the grid. Uses first-fit placement unless a position is given. Returns the window id used by all other tools.",
	}, s.handleCanvasOpen)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "canvas_update",
		Description: "Push new content to an open canvas.",
	}, s.handleCanvasUpdate)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "canvas_close",
		Description: "Close a canvas window and free its grid cells.",
	}, s.handleCanvasClose)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "grid_configure",
		Description: "Change the grid shape (rows, columns, monitor, gaps, margins). Canvases that no longer fit the new shape lose their cell; the rest are repositioned.",
	}, s.handleGridConfigure)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "grid_move",
		Description: "Move a canvas to a new grid position. Accepts spreadsheet notation (B2, A1:C2) or zero-based coordinates (row,col or row,col:RxC).",
	}, s.handleGridMove)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "grid_swap",
		Description: "Exchange the grid positions of two canvases. Fails if either window has no assignment.",
	}, s.handleGridSwap)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "grid_status",
		Description: "Report the current layout: dimensions, assignments with formatted positions and canvas kinds, free cells, and an ASCII visualization of the grid.",
	}, s.handleGridStatus)
}
