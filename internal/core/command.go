package core

import "strings"

// CommandKind describes what a slash command asks for.
type CommandKind int

const (
	// CommandJoin moves the client into a room, creating it if needed.
	CommandJoin CommandKind = iota
	// CommandNick changes the client's display name.
	CommandNick
	// CommandKick removes a named user from the issuer's current room.
	CommandKick
	// CommandQuit ends the session.
	CommandQuit
	// CommandHelp asks for the usage line.
	CommandHelp
	// CommandList asks for the room listing.
	CommandList
)

// Command is a parsed slash command. Arg holds the single argument for
// the verbs that take one.
type Command struct {
	Kind CommandKind
	Arg  string
}

// ResultKind describes the action a executed command resolves to.
type ResultKind int

const (
	ResultJoinRoom ResultKind = iota
	ResultChangeNick
	ResultKickUser
	ResultQuit
	ResultListRooms
	ResultReply
)

// CommandResult is the action descriptor produced by Execute. The
// session acts on it against the hub.
type CommandResult struct {
	Kind    ResultKind
	Room    string // ResultJoinRoom
	NewName string // ResultChangeNick
	Target  string // ResultKickUser
	RoomID  RoomID // ResultKickUser: the issuer's room at execute time
	Reply   string // ResultReply
}

const helpText = "Commands: /join <room>, /nick <name>, /kick <user>, /list, /quit, /help"

// ParseCommand parses a "/"-prefixed line. It performs no I/O and has
// no side effects; every input yields either a Command or an error.
func ParseCommand(line string) (Command, error) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "/") {
		return Command{}, parseError("commands start with /")
	}

	verb, arg, _ := strings.Cut(trimmed[1:], " ")
	arg = strings.TrimSpace(arg)

	switch verb {
	case "join":
		if arg == "" {
			return Command{}, parseError("/join requires a room name")
		}
		return Command{Kind: CommandJoin, Arg: arg}, nil
	case "nick":
		if arg == "" {
			return Command{}, parseError("/nick requires a name")
		}
		return Command{Kind: CommandNick, Arg: arg}, nil
	case "kick":
		if arg == "" {
			return Command{}, parseError("/kick requires a username")
		}
		return Command{Kind: CommandKick, Arg: arg}, nil
	case "quit":
		return Command{Kind: CommandQuit}, nil
	case "help":
		return Command{Kind: CommandHelp}, nil
	case "list":
		return Command{Kind: CommandList}, nil
	default:
		return Command{}, parseError("unknown command: /%s", verb)
	}
}

// Execute maps the command onto an action descriptor. Parsing and
// execution are separate so one parsed command can be replayed against
// different hub states without re-parsing. currentRoom pins the scope
// for /kick at execute time.
func (c Command) Execute(currentRoom RoomID) CommandResult {
	switch c.Kind {
	case CommandJoin:
		return CommandResult{Kind: ResultJoinRoom, Room: c.Arg}
	case CommandNick:
		return CommandResult{Kind: ResultChangeNick, NewName: c.Arg}
	case CommandKick:
		return CommandResult{Kind: ResultKickUser, Target: c.Arg, RoomID: currentRoom}
	case CommandQuit:
		return CommandResult{Kind: ResultQuit}
	case CommandList:
		return CommandResult{Kind: ResultListRooms}
	default:
		return CommandResult{Kind: ResultReply, Reply: helpText}
	}
}
