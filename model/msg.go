package model

// Msg is the websocket message exchanged with clients.
type Msg struct {
	Type    string `json:"type"`
	Content string `json:"content"`
	RunID   string `json:"run_id,omitempty"`
}

// message types understood by the server
const (
	MsgList     = "list"
	MsgAssembly = "assembly"
	MsgPart     = "part"
	MsgRebuild  = "rebuild"
	MsgError    = "error"
)
