package completion

import "strings"

const (
	dataPrefix   = "data:"
	doneSentinel = "[DONE]"
)

// Reassembler splits an event stream delivered in arbitrary byte chunks into
// "data:" payloads. Between Feed calls the buffer holds only the trailing
// fragment that has no line terminator yet.
type Reassembler struct {
	buffer  string
	done    bool
	handler func(payload string) error
}

func NewReassembler(handler func(payload string) error) *Reassembler {
	return &Reassembler{handler: handler}
}

// Feed appends p and dispatches every completed data line. It reports done
// once the [DONE] payload is seen; later calls are no-ops. A handler error
// stops dispatch and is returned as is.
func (r *Reassembler) Feed(p []byte) (bool, error) {
	if r.done {
		return true, nil
	}
	r.buffer += string(p)

	for {
		i := strings.IndexByte(r.buffer, '\n')
		if i < 0 {
			return false, nil
		}
		line := strings.TrimSuffix(r.buffer[:i], "\r")
		r.buffer = r.buffer[i+1:]

		payload, ok := parseDataLine(line)
		if !ok {
			continue
		}
		if payload == doneSentinel {
			r.done = true
			r.buffer = ""
			return true, nil
		}
		if err := r.handler(payload); err != nil {
			return false, err
		}
	}
}

func (r *Reassembler) Done() bool {
	return r.done
}

// Pending returns the unterminated tail.
func (r *Reassembler) Pending() string {
	return r.buffer
}

func parseDataLine(line string) (string, bool) {
	rest, ok := strings.CutPrefix(line, dataPrefix)
	if !ok {
		return "", false
	}
	return strings.TrimPrefix(rest, " "), true
}
