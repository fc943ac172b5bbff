package mcp

import (
	"context"
	"fmt"
	"log"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/canvastile/canvastile/internal/grid"
)

func (s *Server) handleCanvasOpen(_ context.Context, _ *mcpsdk.CallToolRequest, args CanvasOpenInput) (*mcpsdk.CallToolResult, CanvasOpenOutput, error) {
	if args.Kind == "" {
		return nil, CanvasOpenOutput{}, fmt.Errorf("kind is required")
	}

	res, err := s.controller.Open(args.Kind, args.Position, args.Title)
	if err != nil {
		return nil, CanvasOpenOutput{}, err
	}

	if len(args.Payload) > 0 {
		if err := s.controller.Update(res.WindowID, args.Payload); err != nil {
			// The canvas is open and placed; initial content failing to land
			// is not worth unwinding the spawn for.
			log.Printf("initial payload for canvas %s failed: %v", res.WindowID, err)
		}
	}

	return nil, CanvasOpenOutput{
		WindowID: res.WindowID,
		Kind:     res.Kind,
		Title:    res.Title,
		Position: res.Position,
		Rect:     res.Rect,
	}, nil
}

func (s *Server) handleCanvasUpdate(_ context.Context, _ *mcpsdk.CallToolRequest, args CanvasUpdateInput) (*mcpsdk.CallToolResult, struct{}, error) {
	if args.WindowID == "" {
		return nil, struct{}{}, fmt.Errorf("window_id is required")
	}
	if err := s.controller.Update(args.WindowID, args.Payload); err != nil {
		return nil, struct{}{}, err
	}
	return nil, struct{}{}, nil
}

func (s *Server) handleCanvasClose(_ context.Context, _ *mcpsdk.CallToolRequest, args CanvasCloseInput) (*mcpsdk.CallToolResult, CanvasCloseOutput, error) {
	if args.WindowID == "" {
		return nil, CanvasCloseOutput{}, fmt.Errorf("window_id is required")
	}
	if err := s.controller.Close(args.WindowID); err != nil {
		return nil, CanvasCloseOutput{}, err
	}
	return nil, CanvasCloseOutput{Closed: true}, nil
}

func (s *Server) handleGridConfigure(_ context.Context, _ *mcpsdk.CallToolRequest, args GridConfigureInput) (*mcpsdk.CallToolResult, GridConfigureOutput, error) {
	summary, _, err := s.controller.Status()
	if err != nil {
		return nil, GridConfigureOutput{}, err
	}

	// Start from the current shape; zero-valued inputs keep it.
	cfg := summary.Config
	if args.Rows > 0 {
		cfg.Rows = args.Rows
	}
	if args.Cols > 0 {
		cfg.Cols = args.Cols
	}
	if args.Monitor != nil {
		cfg.Monitor = *args.Monitor
	}
	if args.GapH != nil {
		cfg.GapH = *args.GapH
	}
	if args.GapV != nil {
		cfg.GapV = *args.GapV
	}
	if args.MarginTop != nil {
		cfg.MarginTop = *args.MarginTop
	}
	if args.MarginBottom != nil {
		cfg.MarginBottom = *args.MarginBottom
	}
	if args.MarginLeft != nil {
		cfg.MarginLeft = *args.MarginLeft
	}
	if args.MarginRight != nil {
		cfg.MarginRight = *args.MarginRight
	}

	if err := s.controller.Reconfigure(cfg); err != nil {
		return nil, GridConfigureOutput{}, err
	}
	return nil, GridConfigureOutput{Rows: cfg.Rows, Cols: cfg.Cols}, nil
}

func (s *Server) handleGridMove(_ context.Context, _ *mcpsdk.CallToolRequest, args GridMoveInput) (*mcpsdk.CallToolResult, GridMoveOutput, error) {
	if args.WindowID == "" || args.Position == "" {
		return nil, GridMoveOutput{}, fmt.Errorf("window_id and position are required")
	}

	rect, err := s.controller.Move(args.WindowID, args.Position)
	if err != nil {
		return nil, GridMoveOutput{}, err
	}

	span, parseErr := grid.ParsePosition(args.Position)
	position := args.Position
	if parseErr == nil {
		position = grid.FormatPosition(span)
	}
	return nil, GridMoveOutput{Position: position, Rect: rect}, nil
}

func (s *Server) handleGridSwap(_ context.Context, _ *mcpsdk.CallToolRequest, args GridSwapInput) (*mcpsdk.CallToolResult, GridSwapOutput, error) {
	if args.WindowID1 == "" || args.WindowID2 == "" {
		return nil, GridSwapOutput{}, fmt.Errorf("both window ids are required")
	}
	if err := s.controller.Swap(args.WindowID1, args.WindowID2); err != nil {
		return nil, GridSwapOutput{}, err
	}
	return nil, GridSwapOutput{Swapped: true}, nil
}

func (s *Server) handleGridStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ GridStatusInput) (*mcpsdk.CallToolResult, GridStatusOutput, error) {
	summary, viz, err := s.controller.Status()
	if err != nil {
		return nil, GridStatusOutput{}, err
	}
	return nil, GridStatusOutput{Summary: summary, Visualization: viz}, nil
}
