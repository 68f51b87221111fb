package commands

import "github.com/google/uuid"

// CommandPayload is a pipeline-mutating command issued by the chat bot.
// Parsing the bot's chat syntax happens upstream; only the resolved
// command arrives here.
type CommandPayload struct {
	Command string    `json:"command"` // process, approve, reject, publish
	ItemID  uuid.UUID `json:"item_id"`
	Reason  string    `json:"reason,omitempty"`
	Tier    *string   `json:"tier,omitempty"`
}
