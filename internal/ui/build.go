package ui

import "strings"

// Element ids of the widget tree
const (
	RootID          = "support-ai-widget-root"
	WrapperID       = "widget-wrapper"
	BubbleID        = "chat-bubble"
	WindowID        = "chat-window"
	HeaderID        = "chat-header"
	CloseID         = "close-chat"
	MessagesID      = "chat-messages"
	SuggestionsID   = "chat-suggestions"
	InputContainer  = "chat-input-container"
	InputID         = "chat-input"
	SendID          = "send-chat"
	LoadingID       = "typing-indicator"
	FooterID        = "footer-branding"
	StatusOnline    = "Online"
	StatusOffline   = "Offline"
	DefaultPosition = "bottom-right"
)

// Window visual states
const (
	ClassHidden    = "hidden"
	ClassSlideUp   = "slide-up"
	ClassSlideDown = "slide-down"
)

// Theme is everything the builder needs to lay out one widget
type Theme struct {
	PrimaryColor       string
	Title              string
	Welcome            string
	Position           string
	BackgroundColor    string
	BotName            string
	LogoURL            string
	SuggestedQuestions []string
	StylesheetURL      string

	// Offline renders the degraded widget: status "Offline", no input, no send control.
	Offline bool
}

// PositionClass returns the wrapper class for a corner placement
func PositionClass(position string) string {
	position = strings.TrimSpace(position)
	if position == "" {
		position = DefaultPosition
	}
	return "pos-" + position
}

// Build lays out the complete widget tree for a theme. The window starts hidden.
func Build(theme Theme) *Node {
	online := !theme.Offline

	return Div(ID(RootID), Shadow(), Children(
		El("link", Attr("rel", "stylesheet"), Attr("href", theme.StylesheetURL)),
		Div(ID(WrapperID), Class(PositionClass(theme.Position)), Children(
			Div(ID(BubbleID),
				Style("background-color", theme.PrimaryColor),
				On(EventClick, ActionToggle),
				Children(Span(Text("💬"))),
			),
			Div(ID(WindowID), Class(ClassHidden),
				If(online, Style("background-color", theme.BackgroundColor)),
				Children(
					header(theme),
					Div(ID(MessagesID), Children(
						messageNode(Message{Text: theme.Welcome, Sender: SenderBot}),
					)),
					suggestions(theme),
					inputRow(theme),
					Div(ID(FooterID), Text("Powered by Support AI")),
				),
			),
		)),
	))
}

func header(theme Theme) *Node {
	status := El("p", Class("status"), Text(StatusOffline))
	if !theme.Offline {
		status = El("p", Class("status"), Text(StatusOnline), Children(Span(Class("status-dot"))))
	}

	avatar := Div(Class("bot-avatar"), Text("🤖"))
	if theme.LogoURL != "" {
		avatar = Div(Class("bot-avatar"), Children(
			El("img", Attr("src", theme.LogoURL), Attr("alt", theme.BotName)),
		))
	} else if theme.BotName != "" {
		Attr("title", theme.BotName)(avatar)
	}

	return Div(ID(HeaderID), Style("background-color", theme.PrimaryColor), Children(
		Div(Class("header-info"), Children(
			avatar,
			Div(Class("header-text"), Children(
				El("h3", Text(theme.Title)),
				status,
			)),
		)),
		Button(ID(CloseID), Text("×"), On(EventClick, ActionToggle)),
	))
}

func suggestions(theme Theme) *Node {
	if theme.Offline || len(theme.SuggestedQuestions) == 0 {
		return nil
	}
	chips := make([]*Node, 0, len(theme.SuggestedQuestions))
	for _, q := range theme.SuggestedQuestions {
		if strings.TrimSpace(q) == "" {
			continue
		}
		chips = append(chips, Button(Class("suggested-question"), Text(q), On(EventClick, ActionSuggest)))
	}
	if len(chips) == 0 {
		return nil
	}
	return Div(ID(SuggestionsID), Children(chips...))
}

func inputRow(theme Theme) *Node {
	if theme.Offline {
		return nil
	}
	return Div(ID(InputContainer), Children(
		Input(ID(InputID), Attr("type", "text"), Attr("placeholder", "Type a message..."), On(EventEnter, ActionSend)),
		Button(ID(SendID),
			Style("background-color", theme.PrimaryColor),
			Attr("aria-label", "Send"),
			On(EventClick, ActionSend),
			Children(Span(Class("send-icon"), Text("➤"))),
		),
	))
}
