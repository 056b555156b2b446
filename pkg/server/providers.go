package server

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	mcperrors "github.com/mcp-extras/pagination-server/pkg/errors"
	"github.com/mcp-extras/pagination-server/pkg/pagination"
	"github.com/mcp-extras/pagination-server/pkg/protocol"
)

// ToolsProvider supplies the tools capability. ListTools returns one page of
// tools together with the continuation cursor, empty on the final page. An
// empty input cursor requests the first page.
type ToolsProvider interface {
	ListTools(ctx context.Context, cursor string) ([]protocol.Tool, string, error)
	CallTool(ctx context.Context, name string, arguments json.RawMessage) (*protocol.CallToolResult, error)
}

// ResourcesProvider supplies the resources capability
type ResourcesProvider interface {
	ListResources(ctx context.Context, cursor string) ([]protocol.Resource, string, error)
	ReadResource(ctx context.Context, uri string) (*protocol.ReadResourceResult, error)
}

// PromptsProvider supplies the prompts capability
type PromptsProvider interface {
	ListPrompts(ctx context.Context, cursor string) ([]protocol.Prompt, string, error)
	GetPrompt(ctx context.Context, name string, arguments map[string]string) (*protocol.GetPromptResult, error)
}

// PaginatedToolsProvider serves a fixed tool catalog in pages through a
// pagination service. The catalog must already be registered in the
// service's store under the given collection name.
type PaginatedToolsProvider struct {
	service    *pagination.Service
	collection string
	byName     map[string]protocol.Tool
}

// NewPaginatedToolsProvider creates a tools provider over a registered
// collection. The tools slice is the same data registered in the store; it
// feeds the name index used by CallTool.
func NewPaginatedToolsProvider(service *pagination.Service, collection string, tools []protocol.Tool) *PaginatedToolsProvider {
	byName := make(map[string]protocol.Tool, len(tools))
	for _, tool := range tools {
		byName[tool.Name] = tool
	}
	return &PaginatedToolsProvider{
		service:    service,
		collection: collection,
		byName:     byName,
	}
}

// ListTools returns one page of the tool catalog
func (p *PaginatedToolsProvider) ListTools(ctx context.Context, cursor string) ([]protocol.Tool, string, error) {
	page, err := p.service.ListPage(ctx, p.collection, cursor)
	if err != nil {
		return nil, "", err
	}

	tools := make([]protocol.Tool, 0, len(page.Items))
	for _, item := range page.Items {
		tool, ok := item.(protocol.Tool)
		if !ok {
			return nil, "", mcperrors.CreateInternalError("list_tools",
				fmt.Errorf("collection %q holds %T, not a tool", p.collection, item))
		}
		tools = append(tools, tool)
	}

	return tools, page.NextCursor, nil
}

// CallTool echoes the invocation back as text content
func (p *PaginatedToolsProvider) CallTool(ctx context.Context, name string, arguments json.RawMessage) (*protocol.CallToolResult, error) {
	if _, ok := p.byName[name]; !ok {
		return nil, mcperrors.ToolNotFound(name)
	}

	args := "{}"
	if len(arguments) > 0 {
		args = string(arguments)
	}

	return &protocol.CallToolResult{
		Content: []protocol.ContentBlock{
			protocol.TextContent(fmt.Sprintf("Called tool '%s' with arguments: %s", name, args)),
		},
	}, nil
}

// PaginatedResourcesProvider serves a fixed resource catalog in pages
type PaginatedResourcesProvider struct {
	service    *pagination.Service
	collection string
	byURI      map[string]protocol.Resource
}

// NewPaginatedResourcesProvider creates a resources provider over a
// registered collection
func NewPaginatedResourcesProvider(service *pagination.Service, collection string, resources []protocol.Resource) *PaginatedResourcesProvider {
	byURI := make(map[string]protocol.Resource, len(resources))
	for _, resource := range resources {
		byURI[resource.URI] = resource
	}
	return &PaginatedResourcesProvider{
		service:    service,
		collection: collection,
		byURI:      byURI,
	}
}

// ListResources returns one page of the resource catalog
func (p *PaginatedResourcesProvider) ListResources(ctx context.Context, cursor string) ([]protocol.Resource, string, error) {
	page, err := p.service.ListPage(ctx, p.collection, cursor)
	if err != nil {
		return nil, "", err
	}

	resources := make([]protocol.Resource, 0, len(page.Items))
	for _, item := range page.Items {
		resource, ok := item.(protocol.Resource)
		if !ok {
			return nil, "", mcperrors.CreateInternalError("list_resources",
				fmt.Errorf("collection %q holds %T, not a resource", p.collection, item))
		}
		resources = append(resources, resource)
	}

	return resources, page.NextCursor, nil
}

// ReadResource returns synthetic text content for a known resource
func (p *PaginatedResourcesProvider) ReadResource(ctx context.Context, uri string) (*protocol.ReadResourceResult, error) {
	resource, ok := p.byURI[uri]
	if !ok {
		return nil, mcperrors.ResourceNotFound(uri)
	}

	return &protocol.ReadResourceResult{
		Contents: []protocol.ResourceContents{
			{
				URI:      resource.URI,
				MimeType: "text/plain",
				Text:     fmt.Sprintf("Content of %s: This is sample content for the resource.", resource.Name),
			},
		},
	}, nil
}

// PaginatedPromptsProvider serves a fixed prompt catalog in pages
type PaginatedPromptsProvider struct {
	service    *pagination.Service
	collection string
	byName     map[string]protocol.Prompt
}

// NewPaginatedPromptsProvider creates a prompts provider over a registered
// collection
func NewPaginatedPromptsProvider(service *pagination.Service, collection string, prompts []protocol.Prompt) *PaginatedPromptsProvider {
	byName := make(map[string]protocol.Prompt, len(prompts))
	for _, prompt := range prompts {
		byName[prompt.Name] = prompt
	}
	return &PaginatedPromptsProvider{
		service:    service,
		collection: collection,
		byName:     byName,
	}
}

// ListPrompts returns one page of the prompt catalog
func (p *PaginatedPromptsProvider) ListPrompts(ctx context.Context, cursor string) ([]protocol.Prompt, string, error) {
	page, err := p.service.ListPage(ctx, p.collection, cursor)
	if err != nil {
		return nil, "", err
	}

	prompts := make([]protocol.Prompt, 0, len(page.Items))
	for _, item := range page.Items {
		prompt, ok := item.(protocol.Prompt)
		if !ok {
			return nil, "", mcperrors.CreateInternalError("list_prompts",
				fmt.Errorf("collection %q holds %T, not a prompt", p.collection, item))
		}
		prompts = append(prompts, prompt)
	}

	return prompts, page.NextCursor, nil
}

// GetPrompt renders a known prompt as a single user message
func (p *PaginatedPromptsProvider) GetPrompt(ctx context.Context, name string, arguments map[string]string) (*protocol.GetPromptResult, error) {
	prompt, ok := p.byName[name]
	if !ok {
		return nil, mcperrors.PromptNotFound(name)
	}

	text := fmt.Sprintf("This is the prompt '%s'", name)
	if len(arguments) > 0 {
		text += " with arguments: " + renderArguments(arguments)
	}

	return &protocol.GetPromptResult{
		Description: prompt.Description,
		Messages: []protocol.PromptMessage{
			{
				Role:    "user",
				Content: protocol.TextContent(text),
			},
		},
	}, nil
}

// renderArguments formats arguments deterministically, sorted by key
func renderArguments(arguments map[string]string) string {
	keys := make([]string, 0, len(arguments))
	for k := range arguments {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%s", k, arguments[k]))
	}
	return "{" + strings.Join(pairs, ", ") + "}"
}
