package mcp

import (
	"encoding/json"

	"github.com/canvastile/canvastile/internal/grid"
)

// CanvasOpenInput is the input for the canvas_open tool.
type CanvasOpenInput struct {
	Kind     string          `json:"kind" jsonschema:"required,Canvas kind to present (must be configured, e.g. calendar, document, flight)"`
	Position string          `json:"position,omitempty" jsonschema:"Grid position in spreadsheet (B2, A1:C2) or coordinate (row,col or row,col:RxC) notation. Omit for first-fit placement."`
	Title    string          `json:"title,omitempty" jsonschema:"Window title. Omit for a generated unique title."`
	Payload  json.RawMessage `json:"payload,omitempty" jsonschema:"Initial content pushed to the canvas once it is ready."`
}

// CanvasOpenOutput is the output for the canvas_open tool.
type CanvasOpenOutput struct {
	WindowID string    `json:"window_id"`
	Kind     string    `json:"kind"`
	Title    string    `json:"title"`
	Position string    `json:"position"`
	Rect     grid.Rect `json:"rect"`
}

// CanvasUpdateInput is the input for the canvas_update tool.
type CanvasUpdateInput struct {
	WindowID string          `json:"window_id" jsonschema:"required,Window id returned by canvas_open"`
	Payload  json.RawMessage `json:"payload" jsonschema:"required,New content for the canvas"`
}

// CanvasCloseInput is the input for the canvas_close tool.
type CanvasCloseInput struct {
	WindowID string `json:"window_id" jsonschema:"required,Window id of the canvas to close"`
}

// CanvasCloseOutput is the output for the canvas_close tool.
type CanvasCloseOutput struct {
	Closed bool `json:"closed"`
}

// GridConfigureInput is the input for the grid_configure tool. Zero values
// keep the current setting.
type GridConfigureInput struct {
	Rows         int  `json:"rows,omitempty" jsonschema:"Number of grid rows"`
	Cols         int  `json:"cols,omitempty" jsonschema:"Number of grid columns"`
	Monitor      *int `json:"monitor,omitempty" jsonschema:"Target monitor index"`
	GapH         *int `json:"gap_h,omitempty" jsonschema:"Horizontal gap between cells in pixels"`
	GapV         *int `json:"gap_v,omitempty" jsonschema:"Vertical gap between cells in pixels"`
	MarginTop    *int `json:"margin_top,omitempty" jsonschema:"Top work-area margin in pixels"`
	MarginBottom *int `json:"margin_bottom,omitempty" jsonschema:"Bottom work-area margin in pixels"`
	MarginLeft   *int `json:"margin_left,omitempty" jsonschema:"Left work-area margin in pixels"`
	MarginRight  *int `json:"margin_right,omitempty" jsonschema:"Right work-area margin in pixels"`
}

// GridConfigureOutput is the output for the grid_configure tool.
type GridConfigureOutput struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// GridMoveInput is the input for the grid_move tool.
type GridMoveInput struct {
	WindowID string `json:"window_id" jsonschema:"required,Window id to move"`
	Position string `json:"position" jsonschema:"required,New position in spreadsheet or coordinate notation"`
}

// GridMoveOutput is the output for the grid_move tool.
type GridMoveOutput struct {
	Position string    `json:"position"`
	Rect     grid.Rect `json:"rect"`
}

// GridSwapInput is the input for the grid_swap tool.
type GridSwapInput struct {
	WindowID1 string `json:"window_id_1" jsonschema:"required,First window id"`
	WindowID2 string `json:"window_id_2" jsonschema:"required,Second window id"`
}

// GridSwapOutput is the output for the grid_swap tool.
type GridSwapOutput struct {
	Swapped bool `json:"swapped"`
}

// GridStatusInput is the input for the grid_status tool.
type GridStatusInput struct{}

// GridStatusOutput is the output for the grid_status tool.
type GridStatusOutput struct {
	Summary       grid.SummaryData `json:"summary"`
	Visualization string           `json:"visualization"`
}
