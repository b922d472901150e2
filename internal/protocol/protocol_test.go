package protocol

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		line    string
		cmd     Command
		payload string
	}{
		{line: "login alice|pw", cmd: CmdLogin, payload: "alice|pw"},
		{line: "  Book 2|2025-01-02|09:00|10:00  \r", cmd: CmdBook, payload: "2|2025-01-02|09:00|10:00"},
		{line: "MY_APPTS", cmd: CmdMyAppointments, payload: ""},
		{line: "REGISTER a b|c", cmd: CmdRegister, payload: "a b|c"},
		{line: "   ", cmd: "", payload: ""},
		{line: "ping", cmd: CmdPing, payload: ""},
	}

	for _, tt := range tests {
		cmd, payload := ParseLine(tt.line)
		assert.Equal(t, tt.cmd, cmd, tt.line)
		assert.Equal(t, tt.payload, payload, tt.line)
	}
}

func TestSplitPayload(t *testing.T) {
	assert.Equal(t, []string{"1", "bob", "", "USER"}, SplitPayload("1|bob||USER"))
	assert.Equal(t, []string{"1", "bob", "pw"}, SplitPayload("1|bob|pw|"))
	assert.Equal(t, []string{"alice"}, SplitPayload("alice"))
	assert.Empty(t, SplitPayload(""))
	assert.Empty(t, SplitPayload("||"))
}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.Line(Welcome))
	require.NoError(t, w.OK("Registered"))
	require.NoError(t, w.Error(KindSlotTaken))
	require.NoError(t, w.List(TagEmployee, []string{"2:employee1", "5:bob"}))
	require.NoError(t, w.List(TagUser, nil))
	require.NoError(t, w.Block("alice USER"))

	want := strings.Join([]string{
		"WELCOME AppointmentSystem",
		"OK Registered",
		"ERROR SlotTaken",
		"OK COUNT 2",
		"EMP 2:employee1",
		"EMP 5:bob",
		"END",
		"OK COUNT 0",
		"END",
		"OK alice USER",
		"END",
	}, "\n") + "\n"
	assert.Equal(t, want, buf.String())
}

func TestReader_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.OK("1|alice|USER"))
	require.NoError(t, w.List(TagAppointment, []string{"7|employee1|2025-01-02|09:00|PENDING"}))
	require.NoError(t, w.Error(KindNotLoggedIn))
	require.NoError(t, w.Block("alice USER"))

	r := NewReader(&buf)

	body, err := r.Reply()
	require.NoError(t, err)
	assert.Equal(t, "1|alice|USER", body)

	items, err := r.List(TagAppointment)
	require.NoError(t, err)
	assert.Equal(t, []string{"7|employee1|2025-01-02|09:00|PENDING"}, items)

	_, err = r.Reply()
	var reply *ErrorReply
	require.True(t, errors.As(err, &reply))
	assert.Equal(t, KindNotLoggedIn, reply.Kind)

	body, err = r.Block()
	require.NoError(t, err)
	assert.Equal(t, "alice USER", body)
}

func TestReader_ListStopsAtError(t *testing.T) {
	r := NewReader(strings.NewReader("OK COUNT 3\nUSER 1|a|ADMIN\nERROR ListFailed\n"))

	items, err := r.List(TagUser)
	assert.Equal(t, []string{"1|a|ADMIN"}, items)

	var reply *ErrorReply
	require.True(t, errors.As(err, &reply))
	assert.Equal(t, KindListFailed, reply.Kind)
}

func TestReader_ListHeaderError(t *testing.T) {
	r := NewReader(strings.NewReader("ERROR Denied\n"))

	_, err := r.List(TagUser)
	var reply *ErrorReply
	require.True(t, errors.As(err, &reply))
	assert.Equal(t, KindDenied, reply.Kind)
}

func TestReader_Malformed(t *testing.T) {
	_, err := NewReader(strings.NewReader("HELLO\n")).Reply()
	assert.ErrorIs(t, err, ErrMalformedResponse)

	_, err = NewReader(strings.NewReader("OK Registered\n")).List(TagUser)
	assert.ErrorIs(t, err, ErrMalformedResponse)

	_, err = NewReader(strings.NewReader("OK COUNT 1\nEMP 1:x\nEND\n")).List(TagUser)
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestReader_LastLineWithoutNewline(t *testing.T) {
	r := NewReader(strings.NewReader("OK BYE"))
	body, err := r.Reply()
	require.NoError(t, err)
	assert.Equal(t, "BYE", body)
}
