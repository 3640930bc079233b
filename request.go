package labhttp

import (
	"bufio"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
)

// MaxLineLength bounds the request line and every header line, in bytes.
const MaxLineLength = 8 << 10

// Request is the parsed request line of a connection. Headers are read and discarded, bodies
// are never read.
type Request struct {
	// Method is the first token of the request line, matched case-sensitively.
	Method string
	// Target is the second token, as sent.
	Target string
	// Path is the target without its query string.
	Path string
	// Proto is the optional third token, empty when absent.
	Proto string

	RemoteAddr string
	ConnID     string

	params map[string]string
}

// PathValue returns the decoded value of the named prefix parameter, or "" when the matched
// route has no such parameter.
func (r *Request) PathValue(name string) string {
	return r.params[name]
}

// NewReader returns a buffered reader sized for [ReadRequest].
func NewReader(rd io.Reader) *bufio.Reader {
	return bufio.NewReaderSize(rd, MaxLineLength)
}

// ReadRequest reads the request line and drains the header block. A missing line or one with
// fewer than two space separated tokens yields an error wrapping [ErrMalformedRequest].
func ReadRequest(br *bufio.Reader) (*Request, error) {
	line, err := readLine(br)
	if errors.Is(err, io.EOF) && line == "" {
		return nil, errors.Wrap(ErrMalformedRequest, "no request line")
	} else if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	tokens := strings.Split(line, " ")
	for len(tokens) > 0 && tokens[len(tokens)-1] == "" {
		tokens = tokens[:len(tokens)-1]
	}

	if len(tokens) < 2 {
		return nil, errors.Wrapf(ErrMalformedRequest, "request line %q", line)
	}

	req := &Request{Method: tokens[0], Target: tokens[1]}
	if len(tokens) > 2 {
		req.Proto = tokens[2]
	}

	req.Path, _, _ = strings.Cut(req.Target, "?")

	for {
		hdr, err := readLine(br)
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, err
		}

		if hdr == "" {
			break
		}
	}

	return req, nil
}

// readLine returns the next line without its LF or CRLF terminator. A final line without a
// terminator is returned together with io.EOF.
func readLine(br *bufio.Reader) (string, error) {
	raw, err := br.ReadSlice('\n')
	switch {
	case errors.Is(err, bufio.ErrBufferFull):
		return "", errors.Wrapf(ErrMalformedRequest, "line exceeds %d bytes", MaxLineLength)
	case errors.Is(err, io.EOF):
		return strings.TrimSuffix(string(raw), "\r"), io.EOF
	case err != nil:
		return "", errors.Wrap(err, "read line")
	}

	line := string(raw[:len(raw)-1])
	return strings.TrimSuffix(line, "\r"), nil
}
