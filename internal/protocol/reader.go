package protocol

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrMalformedResponse is returned when a reply does not follow the framing.
var ErrMalformedResponse = errors.New("malformed response")

// ErrorReply is an "ERROR <Kind>" line received from the peer.
type ErrorReply struct {
	Kind Kind
}

func (e *ErrorReply) Error() string {
	return "server error: " + string(e.Kind)
}

// Reader reads protocol replies.
type Reader struct {
	r *bufio.Reader
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// Line reads one line without its terminator. A final line without a
// newline is returned as is.
func (r *Reader) Line() (string, error) {
	line, err := r.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Reply reads one single-line reply and returns its body. An ERROR line is
// returned as *ErrorReply.
func (r *Reader) Reply() (string, error) {
	line, err := r.Line()
	if err != nil {
		return "", err
	}
	return parseReply(line)
}

// List reads a framed list. Items are returned without their tag. Reading
// stops at END or at an ERROR line, whichever comes first; in the latter case
// the items read so far are returned together with the *ErrorReply.
func (r *Reader) List(tag string) ([]string, error) {
	body, err := r.Reply()
	if err != nil {
		return nil, err
	}

	word, n, ok := strings.Cut(body, " ")
	if !ok || word != countWord {
		return nil, fmt.Errorf("%w: %q", ErrMalformedResponse, body)
	}
	count, err := strconv.Atoi(n)
	if err != nil || count < 0 {
		return nil, fmt.Errorf("%w: bad count %q", ErrMalformedResponse, n)
	}

	items := make([]string, 0, count)
	for {
		line, err := r.Line()
		if err != nil {
			return items, err
		}
		if line == End {
			return items, nil
		}
		if strings.HasPrefix(line, PrefixError) {
			_, perr := parseReply(line)
			return items, perr
		}
		t, item, _ := strings.Cut(line, " ")
		if t != tag {
			return items, fmt.Errorf("%w: unexpected tag in %q", ErrMalformedResponse, line)
		}
		items = append(items, item)
	}
}

func parseReply(line string) (string, error) {
	prefix, body, _ := strings.Cut(line, " ")
	switch prefix {
	case PrefixOK:
		return body, nil
	case PrefixError:
		return "", &ErrorReply{Kind: Kind(body)}
	default:
		return "", fmt.Errorf("%w: %q", ErrMalformedResponse, line)
	}
}

// Block reads an "OK <body>" reply followed by END.
func (r *Reader) Block() (string, error) {
	body, err := r.Reply()
	if err != nil {
		return "", err
	}
	line, err := r.Line()
	if err != nil {
		return "", err
	}
	if line != End {
		return "", fmt.Errorf("%w: expected %s, got %q", ErrMalformedResponse, End, line)
	}
	return body, nil
}
