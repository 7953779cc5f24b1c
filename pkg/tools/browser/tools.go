package browser

import (
	"context"
	"fmt"

	"github.com/akhilimadabathuni/ai-browser-agent/pkg/agent/tools"
)

// NewRegistry builds the tool registry for one task, binding each
// browser tool to the task's session.
func NewRegistry(session *Session) (*tools.Registry, error) {
	return tools.NewRegistry(
		&SearchTool{session: session},
		&NavigateTool{session: session},
		&TypeTextTool{session: session},
		&ClickTool{session: session},
		&ReadPageTool{session: session},
	)
}

// SearchTool submits a web search through the configured search engine
type SearchTool struct {
	session *Session
}

func (t *SearchTool) Name() string {
	return "google_search"
}

func (t *SearchTool) Description() string {
	return "Use this as the first step for any task that requires accessing the web. The action_input is the search query string."
}

func (t *SearchTool) Execute(ctx context.Context, input tools.Input) (string, error) {
	query := input.Text()
	if query == "" {
		return "", fmt.Errorf("search query is required")
	}

	if err := t.session.Search(query); err != nil {
		return "", err
	}

	return fmt.Sprintf("Successfully searched for '%s'. The results are now on the screen.", query), nil
}

// NavigateTool loads a specific URL in the session's page
type NavigateTool struct {
	session *Session
}

func (t *NavigateTool) Name() string {
	return "navigate_to_url"
}

func (t *NavigateTool) Description() string {
	return "Use this tool to navigate to a specific URL that you have discovered. The action_input is the URL string."
}

func (t *NavigateTool) Execute(ctx context.Context, input tools.Input) (string, error) {
	url := input.Text()
	if url == "" {
		return "", fmt.Errorf("url is required")
	}

	if err := t.session.Navigate(url); err != nil {
		return "", err
	}

	return fmt.Sprintf("Successfully navigated to %s.", url), nil
}

// TypeTextTool fills an input field identified by a CSS selector
type TypeTextTool struct {
	session *Session
}

func (t *TypeTextTool) Name() string {
	return "type_text"
}

func (t *TypeTextTool) Description() string {
	return `Use this tool to type text into an input field on a webpage, like a search bar or a form field. The action_input is an object: {"css_selector": "<selector of the input>", "text": "<text to type>"}.`
}

func (t *TypeTextTool) Execute(ctx context.Context, input tools.Input) (string, error) {
	var args struct {
		Selector string `json:"css_selector"`
		Text     string `json:"text"`
	}
	if err := input.Decode(&args); err != nil {
		return "", err
	}
	if args.Selector == "" {
		return "", fmt.Errorf("css_selector is required")
	}

	if err := t.session.Fill(args.Selector, args.Text); err != nil {
		return "", err
	}

	return fmt.Sprintf("Successfully typed '%s' into the element.", args.Text), nil
}

// ClickTool clicks an element identified by a CSS selector
type ClickTool struct {
	session *Session
}

func (t *ClickTool) Name() string {
	return "click_element"
}

func (t *ClickTool) Description() string {
	return "Use this tool to click on an element on a webpage, such as a button or a link. The action_input is the CSS selector string."
}

func (t *ClickTool) Execute(ctx context.Context, input tools.Input) (string, error) {
	selector, ok := input.Field("css_selector")
	if !ok {
		selector = input.Text()
	}
	if selector == "" {
		return "", fmt.Errorf("css_selector is required")
	}

	if err := t.session.Click(selector); err != nil {
		return "", err
	}

	return "Successfully clicked the element.", nil
}

// ReadPageTool returns the visible text of the current page
type ReadPageTool struct {
	session *Session
}

func (t *ReadPageTool) Name() string {
	return "read_current_page_content"
}

func (t *ReadPageTool) Description() string {
	return "Use this tool to read the visible text content of the current webpage to find information or decide the next step. No action_input is needed."
}

func (t *ReadPageTool) Execute(ctx context.Context, input tools.Input) (string, error) {
	content, err := t.session.ReadPage()
	if err != nil {
		return "", err
	}
	if content == "" {
		return "The page has no visible text content.", nil
	}
	return content, nil
}
