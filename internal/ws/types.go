package ws

const (
	// frames pushed by the server
	MsgSnapshot  = "snapshot"
	MsgCountdown = "countdown"
	MsgError     = "error"
)
