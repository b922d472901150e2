package protocol

import (
	"bufio"
	"io"
	"strconv"
)

// Writer emits protocol replies. Each call writes one complete reply and
// flushes it, so a reply is never left half-sent between commands.
type Writer struct {
	w *bufio.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Line writes a raw line.
func (w *Writer) Line(s string) error {
	w.w.WriteString(s)
	w.w.WriteByte('\n')
	return w.w.Flush()
}

// OK writes "OK <body>".
func (w *Writer) OK(body string) error {
	return w.Line(PrefixOK + " " + body)
}

// Error writes "ERROR <kind>".
func (w *Writer) Error(kind Kind) error {
	return w.Line(PrefixError + " " + string(kind))
}

// List writes a framed list: the count header, one "<tag> <item>" line per
// item, and the END sentinel.
func (w *Writer) List(tag string, items []string) error {
	w.w.WriteString(PrefixOK + " " + countWord + " " + strconv.Itoa(len(items)) + "\n")
	for _, item := range items {
		w.w.WriteString(tag + " " + item + "\n")
	}
	w.w.WriteString(End + "\n")
	return w.w.Flush()
}

// Block writes "OK <body>" followed by END, used for single-record replies
// that keep the list terminator.
func (w *Writer) Block(body string) error {
	w.w.WriteString(PrefixOK + " " + body + "\n")
	w.w.WriteString(End + "\n")
	return w.w.Flush()
}
