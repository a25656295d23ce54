package inspector

import (
	"strings"

	domain "github.com/inference-gateway/editor-assistant/internal/domain"
	logger "github.com/inference-gateway/editor-assistant/internal/logger"
)

const (
	queryWidgetFormat  = "I would like to know what {Name} does."
	queryGeneralFormat = "I would like to know what \"{Name}\" means."
	queryObjectFormat  = "I would like to know about {Name}."

	instructionsWidgetFormat = "Provide an easily readable, informative, accurate answer that describes what the widget does in the Unreal Editor UI. {Additional} {Style}"
	instructionsObjectFormat = "Provide an easily readable, informative, accurate answer that describes what I should know about it in the Unreal Editor UI. {Additional} {Style}"

	additionalWidget  = "Explain what happens if I select or click on it."
	additionalObject  = "Describe what the object is or what it does."
	additionalGeneral = "If the object is clickable, like a button, then explain what happens if I click on it. If the object is something you select, like an asset or a blueprint node, describe what the object is or what it does."

	styleInstructions = "Use bold text to emphasize Unreal Engine specific terms. Start with a quick overview paragraph, then add key points in one or two formatted sections with headers and bullet points. Don't include a summary at the end."

	contextPrefix  = "(Context: "
	contextPostfix = ")"
)

// Query is the prompt generated for the widget under the cursor
type Query struct {
	// Prompt is shown to the user
	Prompt string
	// Instructions and Context are sent hidden alongside the prompt
	Instructions string
	Context      string

	ItemName   string
	TabName    string
	WindowName string
	Text       string
	// Picked is the widget the description was drawn from
	Picked Widget
}

// Visible returns the prompt as sent to the conversation
func (q Query) Visible() string {
	return CleanWhitespace(q.Prompt)
}

// Hidden returns the instructions and context as sent to the conversation
func (q Query) Hidden() string {
	return CleanWhitespace(q.Instructions) + contextPrefix + CleanWhitespace(q.Context) + contextPostfix
}

// Describe builds a query about the widget under the host's cursor. It
// returns domain.ErrNothingToDescribe when nothing could be named.
func Describe(host Host) (Query, error) {
	qs := &queryState{host: host}
	if tip := host.ToolTip(); tip != nil {
		qs.toolTip = findText(tip)
	}

	path := host.PathUnderCursor()
	contextPath := path
	if closestMenuItem(path) != nil {
		// describe menus from where they were opened
		if menuHost := host.MenuHostPath(); menuHost.Valid() {
			contextPath = menuHost
		}
	}

	q := Query{
		WindowName: findEditorName(contextPath, qs),
		TabName:    findTabName(contextPath, qs),
		Text:       findTextUnderCursor(path, qs),
		ItemName:   findItemName(path, qs),
	}

	if q.ItemName == "" && qs.inOutliner && !qs.isUIWidget {
		qs.isObject = true
	}

	switch {
	case q.ItemName == "" && q.Text != "":
		q.Prompt = fill(queryGeneralFormat, "{Name}", q.Text)
		q.Instructions = instructions(instructionsWidgetFormat, additionalGeneral)
	case q.ItemName != "" || q.TabName != "" || q.WindowName != "":
		name := firstNonEmpty(q.ItemName, q.TabName, q.WindowName)
		switch {
		case qs.isObject:
			q.Prompt = fill(queryObjectFormat, "{Name}", name)
			q.Instructions = instructions(instructionsObjectFormat, additionalObject)
		case qs.isUIWidget:
			q.Prompt = fill(queryWidgetFormat, "{Name}", name)
			q.Instructions = instructions(instructionsWidgetFormat, additionalWidget)
		default:
			q.Prompt = fill(queryWidgetFormat, "{Name}", name)
			q.Instructions = instructions(instructionsWidgetFormat, additionalGeneral)
		}
	default:
		return Query{}, domain.ErrNothingToDescribe
	}

	q.Context = buildContext(path, q, qs)
	q.Picked = qs.picked
	return q, nil
}

func buildContext(path Path, q Query, qs *queryState) string {
	var items []string
	if q.TabName != "" || q.WindowName != "" {
		if q.TabName != "" && q.WindowName != "" {
			items = append(items, "I am working in "+q.TabName+" of "+q.WindowName+".")
		} else {
			items = append(items, "I am working in "+q.TabName+q.WindowName+".")
		}
		if tool := modeToolContext(path, qs); tool != "" {
			items = append(items, tool)
		}
	}
	if details := detailsViewContext(path); details != "" {
		items = append(items, details)
	}
	if qs.toolTip != "" {
		items = append(items, "The text of the current tooltip is: \""+qs.toolTip+"\", but you don't need to mention it.")
	}
	return CleanWhitespace(strings.Join(items, " "))
}

func instructions(format, additional string) string {
	return strings.NewReplacer("{Additional}", additional, "{Style}", styleInstructions).Replace(format)
}

func fill(format, placeholder, value string) string {
	return strings.Replace(format, placeholder, value, 1)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// ConversationSink receives generated queries
type ConversationSink interface {
	CreateConversation()
	AddUserMessageToConversation(visible, hidden string)
}

// Inspector sends questions about the widget under the cursor to the
// assistant.
type Inspector struct {
	host Host
	sink ConversationSink
}

// NewInspector creates an inspector reading host and writing to sink
func NewInspector(host Host, sink ConversationSink) *Inspector {
	return &Inspector{host: host, sink: sink}
}

// QueryWidgetUnderCursor starts a new conversation asking about the
// widget under the cursor.
func (i *Inspector) QueryWidgetUnderCursor() (Query, error) {
	q, err := Describe(i.host)
	if err != nil {
		logger.Warn("Could not generate query for widget", "error", err)
		return Query{}, err
	}

	i.sink.CreateConversation()
	i.sink.AddUserMessageToConversation(q.Visible(), q.Hidden())
	logger.Debug("Sent widget query", "prompt", q.Visible())
	return q, nil
}
