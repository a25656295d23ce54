package webapi

import (
	"encoding/json"
	"fmt"

	gjson "github.com/tidwall/gjson"
	sjson "github.com/tidwall/sjson"

	utils "github.com/inference-gateway/editor-assistant/internal/utils"
)

// MessageRole identifies who authored a message
type MessageRole int

const (
	MessageRoleUser MessageRole = iota
	MessageRoleAssistant
	MessageRoleSystem
)

// MessageRoles maps roles to their wire names
var MessageRoles = utils.NewEnumTable(
	utils.EnumEntry[MessageRole]{Value: MessageRoleUser, Description: "user"},
	utils.EnumEntry[MessageRole]{Value: MessageRoleAssistant, Description: "assistant"},
	utils.EnumEntry[MessageRole]{Value: MessageRoleSystem, Description: "system"},
)

// String returns the wire name of the role
func (r MessageRole) String() string {
	if name, ok := MessageRoles.Description(r); ok {
		return name
	}
	return fmt.Sprintf("MessageRole(%d)", int(r))
}

// MarshalJSON encodes the role by wire name
func (r MessageRole) MarshalJSON() ([]byte, error) {
	name, ok := MessageRoles.Description(r)
	if !ok {
		return nil, fmt.Errorf("unknown message role %d", int(r))
	}
	return json.Marshal(name)
}

// UnmarshalJSON decodes a role wire name
func (r *MessageRole) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	role, ok := MessageRoles.Value(name)
	if !ok {
		return fmt.Errorf("unknown message role %q", name)
	}
	*r = role
	return nil
}

// ContentType tags the payload of a message content item
type ContentType int

const (
	ContentTypeText ContentType = iota
)

// ContentTypes maps content types to their wire names
var ContentTypes = utils.NewEnumTable(
	utils.EnumEntry[ContentType]{Value: ContentTypeText, Description: "text"},
)

// String returns the wire name of the content type
func (c ContentType) String() string {
	if name, ok := ContentTypes.Description(c); ok {
		return name
	}
	return fmt.Sprintf("ContentType(%d)", int(c))
}

// ContentBody is the payload of a content item. The concrete type decides
// the item's contentType.
type ContentBody interface {
	ContentType() ContentType
}

// TextContent is a plain text payload
type TextContent struct {
	Text string `json:"text"`
}

// ContentType implements ContentBody
func (TextContent) ContentType() ContentType {
	return ContentTypeText
}

var contentDecoders = map[ContentType]func(raw []byte) (ContentBody, error){
	ContentTypeText: func(raw []byte) (ContentBody, error) {
		var text TextContent
		if err := json.Unmarshal(raw, &text); err != nil {
			return nil, err
		}
		return text, nil
	},
}

// MessageContent is one item of a message
type MessageContent struct {
	Content       ContentBody
	VisibleToUser *bool
}

// NewTextContent builds a text content item
func NewTextContent(text string, visibleToUser bool) MessageContent {
	return MessageContent{
		Content:       TextContent{Text: text},
		VisibleToUser: &visibleToUser,
	}
}

// MarshalJSON encodes {contentType, content, visibleToUser?}
func (m MessageContent) MarshalJSON() ([]byte, error) {
	if m.Content == nil {
		return nil, fmt.Errorf("message content has no body")
	}
	contentType, ok := ContentTypes.Description(m.Content.ContentType())
	if !ok {
		return nil, fmt.Errorf("unknown content type %d", int(m.Content.ContentType()))
	}
	body, err := json.Marshal(m.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal content body: %w", err)
	}

	out := []byte(`{}`)
	if out, err = sjson.SetBytes(out, "contentType", contentType); err != nil {
		return nil, err
	}
	if out, err = sjson.SetRawBytes(out, "content", body); err != nil {
		return nil, err
	}
	if m.VisibleToUser != nil {
		if out, err = sjson.SetBytes(out, "visibleToUser", *m.VisibleToUser); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// UnmarshalJSON decodes a content item, selecting the body type from contentType
func (m *MessageContent) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("invalid message content JSON")
	}
	parsed := gjson.ParseBytes(data)

	name := parsed.Get("contentType").String()
	contentType, ok := ContentTypes.Value(name)
	if !ok {
		return fmt.Errorf("unknown content type %q", name)
	}
	decode, ok := contentDecoders[contentType]
	if !ok {
		return fmt.Errorf("no decoder for content type %q", name)
	}

	content := parsed.Get("content")
	if !content.Exists() {
		return fmt.Errorf("message content of type %q has no content", name)
	}
	body, err := decode([]byte(content.Raw))
	if err != nil {
		return fmt.Errorf("failed to decode %q content: %w", name, err)
	}

	m.Content = body
	m.VisibleToUser = nil
	if visible := parsed.Get("visibleToUser"); visible.Exists() {
		value := visible.Bool()
		m.VisibleToUser = &value
	}
	return nil
}

// ConversationID identifies a conversation
type ConversationID struct {
	ID string `json:"id"`
}

// Message is a conversation message
type Message struct {
	Role    MessageRole      `json:"messageRole"`
	Content []MessageContent `json:"messageContent"`
}

// AddMessageToConversationOptions are the arguments of addMessageToConversation
type AddMessageToConversationOptions struct {
	ConversationID *ConversationID `json:"conversationId,omitempty"`
	Message        Message         `json:"message"`
}

// AgentEnvironmentDescriptor names the mode the assistant backend runs in
type AgentEnvironmentDescriptor struct {
	EnvironmentName    string `json:"environmentName"`
	EnvironmentVersion string `json:"environmentVersion"`
}

// AgentEnvironment is the argument of addAgentEnvironment
type AgentEnvironment struct {
	Descriptor AgentEnvironmentDescriptor `json:"descriptor"`
}

// AgentEnvironmentID identifies a registered agent environment
type AgentEnvironmentID struct {
	ID string `json:"id"`
}

// AgentEnvironmentHandle is returned by addAgentEnvironment
type AgentEnvironmentHandle struct {
	ID   string `json:"id"`
	Hash string `json:"hash"`
}
