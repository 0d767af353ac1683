package tuitest

import (
	"bytes"
	"io"
)

// terminalResponder answers the queries Bubble Tea and termenv send at
// startup (cursor position, foreground and background color) so the program
// does not stall waiting for a real terminal.
type terminalResponder struct {
	w   io.Writer
	buf []byte
}

type terminalQuery struct {
	pattern  []byte
	response []byte
}

var terminalQueries = []terminalQuery{
	{pattern: []byte("\x1b[6n"), response: []byte("\x1b[1;1R")},
	{pattern: []byte("\x1b]10;?\x07"), response: []byte("\x1b]10;rgb:cccc/cccc/cccc\x07")},
	{pattern: []byte("\x1b]10;?\x1b\\"), response: []byte("\x1b]10;rgb:cccc/cccc/cccc\x1b\\")},
	{pattern: []byte("\x1b]11;?\x07"), response: []byte("\x1b]11;rgb:0000/0000/0000\x07")},
	{pattern: []byte("\x1b]11;?\x1b\\"), response: []byte("\x1b]11;rgb:0000/0000/0000\x1b\\")},
}

const responderTail = 64

func newTerminalResponder(w io.Writer) *terminalResponder {
	return &terminalResponder{w: w, buf: make([]byte, 0, 128)}
}

func (tr *terminalResponder) Process(chunk []byte) {
	tr.buf = append(tr.buf, chunk...)
	for tr.answerOne() {
	}
	// A query may straddle two reads.
	if len(tr.buf) > 4*responderTail {
		tr.buf = tr.buf[len(tr.buf)-responderTail:]
	}
}

// answerOne replies to the earliest pending query and drops the buffer up to
// its end.
func (tr *terminalResponder) answerOne() bool {
	best, bestIdx := -1, -1
	for i, q := range terminalQueries {
		idx := bytes.Index(tr.buf, q.pattern)
		if idx >= 0 && (bestIdx < 0 || idx < bestIdx) {
			best, bestIdx = i, idx
		}
	}
	if best < 0 {
		return false
	}
	q := terminalQueries[best]
	tr.buf = tr.buf[bestIdx+len(q.pattern):]
	_, _ = tr.w.Write(q.response)
	return true
}
