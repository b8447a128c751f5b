package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"

	"github.com/kmanditereza/industrial-ai-agent/internal/model"
)

func (s *Server) registerTools() {
	// assess_production — the headline feasibility question.
	s.mcpServer.AddTool(
		mcplib.NewTool("assess_production",
			mcplib.WithDescription(`Determine whether the plant can currently produce N batches of a product.

Reads live tank levels and machine states from the plant server, fetches the
product's recipe from the plant database, and returns a structured verdict:
per-material required vs available quantities, per-machine operational status,
and the overall decision.

WHAT YOU GET BACK:
- decision: true only if materials are sufficient AND all machines are
  operational AND a recipe exists for the product
- recipe_found: false means the product has no recipe on file
- per_material / per_machine: the full breakdown behind the decision
- machine_states, material_availability: flat summaries

Use this instead of combining the other tools yourself: it reads all values
in one telemetry session.`),
			mcplib.WithReadOnlyHintAnnotation(true),
			mcplib.WithOpenWorldHintAnnotation(true),
			mcplib.WithString("product_name",
				mcplib.Description("Exact product name as stored in the plant database, e.g. 'Product A'"),
				mcplib.Required(),
			),
			mcplib.WithNumber("batches",
				mcplib.Description("Number of batches to produce"),
				mcplib.Required(),
				mcplib.Min(1),
			),
		),
		s.handleAssess,
	)

	// get_material_availability — current tank levels.
	s.mcpServer.AddTool(
		mcplib.NewTool("get_material_availability",
			mcplib.WithDescription("Return the current level (in litres) of each raw-material tank, read live from the plant server."),
			mcplib.WithReadOnlyHintAnnotation(true),
			mcplib.WithOpenWorldHintAnnotation(true),
		),
		s.handleMaterialAvailability,
	)

	// get_machine_states — current machine states.
	s.mcpServer.AddTool(
		mcplib.NewTool("get_machine_states",
			mcplib.WithDescription("Return the current state of each production machine (running, idle, starved, blocked, disabled, planned_downtime, unplanned_downtime, other, or unknown_state_<code>), read live from the plant server."),
			mcplib.WithReadOnlyHintAnnotation(true),
			mcplib.WithOpenWorldHintAnnotation(true),
		),
		s.handleMachineStates,
	)

	// get_product_recipe — material requirements per batch.
	s.mcpServer.AddTool(
		mcplib.NewTool("get_product_recipe",
			mcplib.WithDescription("Return the recipe for a product: each required material, its source tank, and the quantity one batch consumes. An empty recipe list means the product has no recipe on file."),
			mcplib.WithReadOnlyHintAnnotation(true),
			mcplib.WithIdempotentHintAnnotation(true),
			mcplib.WithString("product_name",
				mcplib.Description("Exact product name as stored in the plant database"),
				mcplib.Required(),
			),
		),
		s.handleProductRecipe,
	)
}

func (s *Server) handleAssess(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	productName := request.GetString("product_name", "")
	batches := request.GetInt("batches", 0)
	if productName == "" {
		return errorResult("product_name is required"), nil
	}
	if batches < 1 {
		return errorResult("batches must be a positive integer"), nil
	}

	verdict, err := s.svc.Assess(ctx, productName, batches)
	if err != nil {
		return errorResult(fmt.Sprintf("assessment failed: %v", err)), nil
	}

	// The stable verdict contract, plus the flat summary maps the agent
	// layer echoes back in its response schema.
	data, err := json.MarshalIndent(struct {
		model.FeasibilityVerdict
		MachineStates        map[string]string  `json:"machine_states"`
		MaterialAvailability map[string]float64 `json:"material_availability"`
	}{verdict, verdict.MachineStates(), verdict.MaterialAvailability()}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("mcp: marshal verdict: %w", err)
	}
	return jsonResult(string(data)), nil
}

func (s *Server) handleMaterialAvailability(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	tanks, err := s.svc.MaterialAvailability(ctx)
	if err != nil {
		return errorResult(fmt.Sprintf("failed to read tank levels: %v", err)), nil
	}

	levels := make(map[string]float64, len(tanks))
	for _, t := range tanks {
		levels[fmt.Sprintf("tank%d_material_level", t.TankID)] = t.Level
	}
	data, err := json.MarshalIndent(levels, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("mcp: marshal tank levels: %w", err)
	}
	return jsonResult(string(data)), nil
}

func (s *Server) handleMachineStates(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	machines, err := s.svc.MachineStates(ctx)
	if err != nil {
		return errorResult(fmt.Sprintf("failed to read machine states: %v", err)), nil
	}

	states := make(map[string]string, len(machines))
	for _, m := range machines {
		states[m.Name+"_state"] = m.State.String()
	}
	data, err := json.MarshalIndent(states, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("mcp: marshal machine states: %w", err)
	}
	return jsonResult(string(data)), nil
}

func (s *Server) handleProductRecipe(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	productName := request.GetString("product_name", "")
	if productName == "" {
		return errorResult("product_name is required"), nil
	}

	recipe, err := s.svc.ProductRecipe(ctx, productName)
	if err != nil {
		return errorResult(fmt.Sprintf("failed to fetch recipe: %v", err)), nil
	}

	data, err := json.MarshalIndent(recipe, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("mcp: marshal recipe: %w", err)
	}
	return jsonResult(string(data)), nil
}
