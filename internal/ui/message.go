package ui

// Sender tells who wrote a message
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is a rendered chat line. The document is the only record of it.
type Message struct {
	Text   string `json:"text" yaml:"text"`
	Sender Sender `json:"sender" yaml:"sender"`
}

func messageNode(m Message) *Node {
	return Div(Class("message", string(m.Sender)), Text(m.Text))
}

func loadingNode() *Node {
	return Div(ID(LoadingID), Class("message", string(SenderBot), "loading"), Children(Span(), Span(), Span()))
}

// MessagesOf reads the conversation back out of a tree, skipping the loading indicator
func MessagesOf(root *Node) []Message {
	list := root.Find(MessagesID)
	if list == nil {
		return nil
	}
	var out []Message
	for _, c := range list.Children {
		if !c.HasClass("message") || c.HasClass("loading") {
			continue
		}
		sender := SenderBot
		if c.HasClass(string(SenderUser)) {
			sender = SenderUser
		}
		out = append(out, Message{Text: c.Text, Sender: sender})
	}
	return out
}
