package core

import "testing"

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input   string
		kind    CommandKind
		arg     string
		wantErr bool
	}{
		{input: "/join general", kind: CommandJoin, arg: "general"},
		{input: "/join   dev  ", kind: CommandJoin, arg: "dev"},
		{input: "/nick Bob", kind: CommandNick, arg: "Bob"},
		{input: "/kick alice", kind: CommandKick, arg: "alice"},
		{input: "/quit", kind: CommandQuit},
		{input: "/help", kind: CommandHelp},
		{input: "/list", kind: CommandList},
		{input: "/join", wantErr: true},
		{input: "/nick", wantErr: true},
		{input: "/kick", wantErr: true},
		{input: "/join ", wantErr: true},
		{input: "/frobnicate x", wantErr: true},
		{input: "hello", wantErr: true},
		{input: "/", wantErr: true},
	}

	for _, tt := range tests {
		cmd, err := ParseCommand(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseCommand(%q): expected error, got %+v", tt.input, cmd)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseCommand(%q): unexpected error %v", tt.input, err)
			continue
		}
		if cmd.Kind != tt.kind || cmd.Arg != tt.arg {
			t.Errorf("ParseCommand(%q) = %+v, want kind=%v arg=%q", tt.input, cmd, tt.kind, tt.arg)
		}
	}
}

func TestParseCommandErrorsCarryParseCode(t *testing.T) {
	_, err := ParseCommand("/bogus")
	coreErr, ok := err.(*CoreError)
	if !ok {
		t.Fatalf("expected *CoreError, got %T", err)
	}
	if coreErr.Code != ErrCodeParse {
		t.Fatalf("expected code %q, got %q", ErrCodeParse, coreErr.Code)
	}
}

func TestExecuteMapsVariants(t *testing.T) {
	current := RoomID(3)

	res := Command{Kind: CommandJoin, Arg: "dev"}.Execute(current)
	if res.Kind != ResultJoinRoom || res.Room != "dev" {
		t.Fatalf("join: got %+v", res)
	}

	res = Command{Kind: CommandNick, Arg: "Bob"}.Execute(current)
	if res.Kind != ResultChangeNick || res.NewName != "Bob" {
		t.Fatalf("nick: got %+v", res)
	}

	// Kick pins the issuer's room at execute time.
	res = Command{Kind: CommandKick, Arg: "alice"}.Execute(current)
	if res.Kind != ResultKickUser || res.Target != "alice" || res.RoomID != current {
		t.Fatalf("kick: got %+v", res)
	}

	res = Command{Kind: CommandQuit}.Execute(current)
	if res.Kind != ResultQuit {
		t.Fatalf("quit: got %+v", res)
	}

	res = Command{Kind: CommandList}.Execute(current)
	if res.Kind != ResultListRooms {
		t.Fatalf("list: got %+v", res)
	}

	res = Command{Kind: CommandHelp}.Execute(current)
	if res.Kind != ResultReply || res.Reply == "" {
		t.Fatalf("help: got %+v", res)
	}
}
