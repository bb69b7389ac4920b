package twitch

import (
	"strings"

	"github.com/habbi3/spinbot/internal/domain"
)

// Message is a single parsed IRC line.
type Message struct {
	Tags     map[string]string
	Prefix   string
	Command  string
	Params   []string
	Trailing string
}

// ParseMessage parses one raw IRC line in the IRCv3 tagged form Twitch
// sends: [@tags ][:prefix ]COMMAND [params][ :trailing]
func ParseMessage(line string) (Message, bool) {
	msg := Message{}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return msg, false
	}

	if strings.HasPrefix(line, "@") {
		idx := strings.Index(line, " ")
		if idx < 0 {
			return msg, false
		}
		msg.Tags = parseTags(line[1:idx])
		line = line[idx+1:]
	}

	if strings.HasPrefix(line, ":") {
		idx := strings.Index(line, " ")
		if idx < 0 {
			return msg, false
		}
		msg.Prefix = line[1:idx]
		line = line[idx+1:]
	}

	if idx := strings.Index(line, " :"); idx >= 0 {
		msg.Trailing = line[idx+2:]
		line = line[:idx]
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return msg, false
	}
	msg.Command = fields[0]
	msg.Params = fields[1:]

	return msg, true
}

func parseTags(raw string) map[string]string {
	tags := make(map[string]string)
	for _, pair := range strings.Split(raw, ";") {
		key, value, found := strings.Cut(pair, "=")
		if !found {
			tags[pair] = ""
			continue
		}
		tags[key] = unescapeTag(value)
	}
	return tags
}

// unescapeTag reverses the IRCv3 tag value escaping.
func unescapeTag(value string) string {
	if !strings.Contains(value, "\\") {
		return value
	}

	var b strings.Builder
	b.Grow(len(value))
	for i := 0; i < len(value); i++ {
		if value[i] != '\\' || i == len(value)-1 {
			b.WriteByte(value[i])
			continue
		}
		i++
		switch value[i] {
		case ':':
			b.WriteByte(';')
		case 's':
			b.WriteByte(' ')
		case 'r':
			b.WriteByte('\r')
		case 'n':
			b.WriteByte('\n')
		case '\\':
			b.WriteByte('\\')
		default:
			b.WriteByte(value[i])
		}
	}
	return b.String()
}

// TriggerFromMessage converts a PRIVMSG into a trigger event. Plain chat
// messages without the command prefix or a reward ID produce nothing.
func TriggerFromMessage(msg Message) (domain.TriggerEvent, bool) {
	if msg.Command != CmdPrivMsg {
		return domain.TriggerEvent{}, false
	}

	evt := domain.TriggerEvent{
		Username:      displayName(msg),
		Color:         color(msg),
		IsBroadcaster: hasBadge(msg, BadgeBroadcaster),
		IsMod:         isMod(msg),
		RewardID:      msg.Tags[TagCustomRewardID],
	}

	text := strings.TrimSpace(msg.Trailing)
	if strings.HasPrefix(text, CommandPrefix) && len(text) > len(CommandPrefix) {
		fields := strings.Fields(text[len(CommandPrefix):])
		if len(fields) > 0 {
			evt.Kind = domain.TriggerCommand
			evt.Command = strings.ToLower(fields[0])
			evt.Args = fields[1:]
			return evt, true
		}
	}

	if evt.RewardID != "" {
		evt.Kind = domain.TriggerRedemption
		return evt, true
	}

	return domain.TriggerEvent{}, false
}

// displayName prefers the display-name tag, falling back to the login
// name from the message prefix (nick!user@host).
func displayName(msg Message) string {
	if name := msg.Tags[TagDisplayName]; name != "" {
		return name
	}
	nick, _, _ := strings.Cut(msg.Prefix, "!")
	return nick
}

func color(msg Message) string {
	if c := msg.Tags[TagColor]; c != "" {
		return c
	}
	return DefaultColor
}

func isMod(msg Message) bool {
	return msg.Tags[TagMod] == "1" || hasBadge(msg, BadgeModerator)
}

func hasBadge(msg Message, badge string) bool {
	for _, entry := range strings.Split(msg.Tags[TagBadges], ",") {
		name, _, _ := strings.Cut(entry, "/")
		if name == badge {
			return true
		}
	}
	return false
}
