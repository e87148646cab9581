package mcp

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/cardstack/internal/game"
	stacknet "github.com/peterkuimelis/cardstack/internal/net"
)

// RegisterTools adds all stack tools to the MCP server.
func (s *ToolSession) RegisterTools(srv *server.MCPServer) {
	srv.AddTool(addCardTool(), s.handleAddCard)
	srv.AddTool(resolveStackTool(), s.handleResolveStack)
	srv.AddTool(getStackStateTool(), s.handleGetStackState)
	srv.AddTool(listCardsTool(), s.handleListCards)
}

// --- Tool definitions ---

func addCardTool() mcp.Tool {
	return mcp.NewTool("add_card",
		mcp.WithDescription("Push a card onto the stack. Give either the name of a known card (see list_cards) "+
			"or a full card as JSON, e.g. {\"name\":\"Bolt\",\"card_type\":\"Instant\",\"effect\":{\"DealDamage\":{\"amount\":3}}}. "+
			"Cards resolve last-in, first-out."),
		mcp.WithString("name", mcp.Description("Name of a known card")),
		mcp.WithString("card_json", mcp.Description("A card in its JSON form")),
	)
}

func resolveStackTool() mcp.Tool {
	return mcp.NewTool("resolve_stack",
		mcp.WithDescription("Resolve every pending card, newest first, and empty the stack. "+
			"Returns one result per card with the health totals after it."),
	)
}

func getStackStateTool() mcp.Tool {
	return mcp.NewTool("get_stack_state",
		mcp.WithDescription("Get health totals, the round number, and the pending cards without changing anything. Read-only."),
	)
}

func listCardsTool() mcp.Tool {
	return mcp.NewTool("list_cards",
		mcp.WithDescription("List the known cards that add_card accepts by name. Read-only."),
	)
}

// --- Tool handlers ---

func (s *ToolSession) handleAddCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	card, err := requestCard(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.Session.Add(card)
	return mcp.NewToolResultText(s.respond(&ToolResponse{Status: stacknet.StatusCardAdded})), nil
}

func (s *ToolSession) handleResolveStack(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	results := s.Session.Resolve()
	return mcp.NewToolResultText(s.respond(&ToolResponse{Results: results})), nil
}

func (s *ToolSession) handleGetStackState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st := s.Session.State()
	return mcp.NewToolResultText(s.respond(&ToolResponse{State: &st})), nil
}

func (s *ToolSession) handleListCards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(s.respond(&ToolResponse{Cards: game.RegistryCards()})), nil
}

func requestCard(request mcp.CallToolRequest) (game.Card, error) {
	name := request.GetString("name", "")
	cardJSON := request.GetString("card_json", "")
	switch {
	case name != "" && cardJSON != "":
		return game.Card{}, errors.New("give either name or card_json, not both")
	case name != "":
		return game.LookupCard(name)
	case cardJSON != "":
		return game.ParseCard([]byte(cardJSON))
	default:
		return game.Card{}, errors.New("add_card requires name or card_json")
	}
}
