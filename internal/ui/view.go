package ui

// ChatView exposes the conversation parts of a widget document
type ChatView struct {
	doc *Document
}

// NewChatView wraps doc
func NewChatView(doc *Document) *ChatView {
	return &ChatView{doc: doc}
}

// Input returns the text currently in the input field
func (v *ChatView) Input() string {
	return v.doc.Value(InputID)
}

// SetInput replaces the text in the input field
func (v *ChatView) SetInput(text string) {
	v.doc.SetValue(InputID, text)
}

// ClearInput empties the input field
func (v *ChatView) ClearInput() {
	v.doc.SetValue(InputID, "")
}

// AppendMessage adds m to the message list and scrolls it into view
func (v *ChatView) AppendMessage(m Message) {
	v.doc.Append(MessagesID, messageNode(m))
}

// ShowLoading appends the typing indicator
func (v *ChatView) ShowLoading() {
	if v.doc.Has(LoadingID) {
		return
	}
	v.doc.Append(MessagesID, loadingNode())
}

// HideLoading removes the typing indicator if present
func (v *ChatView) HideLoading() {
	v.doc.Remove(LoadingID)
}

// LoadingVisible reports whether the typing indicator is in the list
func (v *ChatView) LoadingVisible() bool {
	return v.doc.Has(LoadingID)
}

// SetSendEnabled toggles the send control, visually and functionally
func (v *ChatView) SetSendEnabled(enabled bool) {
	v.doc.Update(SendID, func(n *Node) {
		n.Disabled = !enabled
		if n.Style == nil {
			n.Style = map[string]string{}
		}
		if enabled {
			n.Style["opacity"] = "1"
		} else {
			n.Style["opacity"] = "0.5"
		}
	})
}

// SendEnabled reports whether the send control accepts clicks
func (v *ChatView) SendEnabled() bool {
	n, ok := v.doc.Get(SendID)
	return ok && !n.Disabled
}

// Messages returns the rendered conversation in order
func (v *ChatView) Messages() []Message {
	return MessagesOf(v.doc.Snapshot())
}
