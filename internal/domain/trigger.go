package domain

// TriggerKind distinguishes how a chat event was produced.
type TriggerKind string

const (
	// TriggerCommand is a chat message starting with the command prefix.
	TriggerCommand TriggerKind = "command"

	// TriggerRedemption is a channel-point redemption carrying a reward ID.
	TriggerRedemption TriggerKind = "redemption"
)

// TriggerEvent is a single external trigger from chat. Events are
// independent and unordered-safe; a malformed event (missing username)
// is dropped by the router.
type TriggerEvent struct {
	Kind          TriggerKind `json:"kind"`
	Command       string      `json:"command,omitempty"`
	Args          []string    `json:"args,omitempty"`
	Username      string      `json:"username"`
	Color         string      `json:"color"`
	IsBroadcaster bool        `json:"is_broadcaster"`
	IsMod         bool        `json:"is_mod"`
	RewardID      string      `json:"reward_id,omitempty"`
}
