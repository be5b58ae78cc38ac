package bot

type ActionKind int

const (
	SendText ActionKind = iota
	SendMedia
	SendDocument
)

// Button is either a callback button (Data set) or a link button (URL set).
type Button struct {
	Label string
	Data  string
	URL   string
}

type Keyboard struct {
	Rows [][]Button
}

// Action is an outbound send descriptor. Delivery, retries and ordering are
// the sink's problem; the core only emits these in order.
type Action struct {
	Kind     ActionKind
	Target   int64
	Text     string
	FileID   string
	Document []byte
	Filename string
	Keyboard *Keyboard
}

func textAction(target int64, text string, kb *Keyboard) Action {
	return Action{Kind: SendText, Target: target, Text: text, Keyboard: kb}
}

func photoAction(target int64, fileID, caption string, kb *Keyboard) Action {
	return Action{Kind: SendMedia, Target: target, FileID: fileID, Text: caption, Keyboard: kb}
}

func documentAction(target int64, data []byte, filename, caption string) Action {
	return Action{Kind: SendDocument, Target: target, Document: data, Filename: filename, Text: caption}
}

func row(buttons ...Button) []Button { return buttons }

func cb(label string, cmd Command, arg string) Button {
	return Button{Label: label, Data: CallbackData(cmd, arg)}
}

func link(label, url string) Button {
	return Button{Label: label, URL: url}
}
