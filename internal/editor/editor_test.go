package editor

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-den/den/internal/history"
	"github.com/go-den/den/internal/term"
)

// newTestEditor builds an Editor with no real terminal attached, for
// exercising buffer/kill-ring/completion/vi logic directly through
// dispatchKey and the handler methods it calls.
func newTestEditor(hist *history.History) *Editor {
	if hist == nil {
		hist = history.New(10, "", false, false)
	}
	return &Editor{
		out:          &bytes.Buffer{},
		history:      hist,
		historyIndex: -1,
		ps2:          "> ",
	}
}

func charKey(r rune) Key { return Key{Type: term.KeyChar, Rune: r} }
func ctrlKey(r rune) Key { return Key{Type: term.KeyCtrl, Rune: r} }
func typeText(e *Editor, s string) {
	for _, r := range s {
		e.dispatchKey(charKey(r))
	}
}

func TestInsertAndBackspace(t *testing.T) {
	e := newTestEditor(nil)
	typeText(e, "echo hi")
	assert.Equal(t, "echo hi", e.bufferString())
	e.dispatchKey(Key{Type: term.KeyBackspace})
	assert.Equal(t, "echo h", e.bufferString())
}

func TestKillRingYank(t *testing.T) {
	e := newTestEditor(nil)
	typeText(e, "hello world")
	e.dispatchKey(ctrlKey('a'))
	e.dispatchKey(ctrlKey('k'))
	assert.Equal(t, "", e.bufferString())
	e.dispatchKey(ctrlKey('y'))
	assert.Equal(t, "hello world", e.bufferString())
}

func TestKillWordBackward(t *testing.T) {
	e := newTestEditor(nil)
	typeText(e, "echo hello world")
	e.dispatchKey(ctrlKey('w'))
	assert.Equal(t, "echo hello ", e.bufferString())
}

func TestUndo(t *testing.T) {
	e := newTestEditor(nil)
	typeText(e, "abc")
	e.dispatchKey(ctrlKey('u'))
	assert.Equal(t, "", e.bufferString())
	e.Undo()
	assert.Equal(t, "abc", e.bufferString())
}

func TestTransposeChars(t *testing.T) {
	e := newTestEditor(nil)
	typeText(e, "ab")
	e.transposeChars()
	assert.Equal(t, "ba", e.bufferString())
}

func TestHistoryUpDownFilter(t *testing.T) {
	h := history.New(10, "", false, false)
	h.Add("ls -la")
	h.Add("echo one")
	h.Add("echo two")
	e := newTestEditor(h)
	typeText(e, "echo")
	e.dispatchKey(Key{Type: term.KeyUp})
	assert.Equal(t, "echo two", e.bufferString())
	e.dispatchKey(Key{Type: term.KeyUp})
	assert.Equal(t, "echo one", e.bufferString())
	e.dispatchKey(Key{Type: term.KeyDown})
	assert.Equal(t, "echo two", e.bufferString())
	e.dispatchKey(Key{Type: term.KeyDown})
	assert.Equal(t, "echo", e.bufferString())
}

func TestSuggestionAcceptedOnRight(t *testing.T) {
	h := history.New(10, "", false, false)
	h.Add("git checkout main")
	e := newTestEditor(h)
	typeText(e, "git che")
	require.Equal(t, "ckout main", e.suggestion)
	e.dispatchKey(Key{Type: term.KeyRight})
	assert.Equal(t, "git checkout main", e.bufferString())
}

type fakeCompleter struct{ cands []Candidate }

func (f fakeCompleter) Complete(line string, wordStart, wordEnd int) []Candidate { return f.cands }

func TestCompletionSingleMatch(t *testing.T) {
	e := newTestEditor(nil)
	e.completer = fakeCompleter{cands: []Candidate{{Label: "checkout"}}}
	typeText(e, "git che")
	e.dispatchKey(Key{Type: term.KeyTab})
	assert.Equal(t, "git checkout", e.bufferString())
}

func TestCompletionCycleAndCancel(t *testing.T) {
	e := newTestEditor(nil)
	e.completer = fakeCompleter{cands: []Candidate{{Label: "alpha"}, {Label: "beta"}}}
	typeText(e, "a")
	e.dispatchKey(Key{Type: term.KeyTab})
	require.True(t, e.compl.active)
	first := e.bufferString()
	e.dispatchKey(Key{Type: term.KeyTab})
	assert.NotEqual(t, first, e.bufferString())
	e.dispatchKey(ctrlKey('c'))
	assert.Equal(t, "a", e.bufferString())
}

func TestVisualCutCopiesToKillRing(t *testing.T) {
	e := newTestEditor(nil)
	typeText(e, "hello world")
	e.cursor = 0
	e.dispatchKey(ctrlKey(' '))
	for range "hello" {
		e.dispatchKey(Key{Type: term.KeyRight})
	}
	e.dispatchKey(ctrlKey('u'))
	assert.Equal(t, " world", e.bufferString())
	assert.False(t, e.visual.active)
}

func TestViNormalMotionsAndDelete(t *testing.T) {
	e := newTestEditor(nil)
	e.SetMode(Vi)
	e.viSubmode = ViInsert
	typeText(e, "hello world")
	e.dispatchKey(Key{Type: term.KeyEscape})
	assert.Equal(t, ViNormal, e.viSubmode)
	e.dispatchKey(charKey('0'))
	assert.Equal(t, 0, e.cursor)
	e.dispatchKey(charKey('w'))
	assert.Equal(t, 5, e.cursor)
	e.dispatchKey(charKey('x'))
	assert.Equal(t, "helloworld", e.bufferString())
}

func TestViOperatorDeleteWord(t *testing.T) {
	e := newTestEditor(nil)
	e.SetMode(Vi)
	e.viSubmode = ViNormal
	e.buffer = []rune("hello world")
	e.cursor = 0
	e.dispatchKey(charKey('d'))
	e.dispatchKey(charKey('w'))
	assert.Equal(t, "world", e.bufferString())
}

func TestViChangeEntersInsert(t *testing.T) {
	e := newTestEditor(nil)
	e.SetMode(Vi)
	e.viSubmode = ViNormal
	e.buffer = []rune("hello world")
	e.cursor = 0
	e.dispatchKey(charKey('c'))
	e.dispatchKey(charKey('w'))
	assert.Equal(t, ViInsert, e.viSubmode)
	assert.Equal(t, "world", e.bufferString())
}

func TestIsIncompleteDetectsOpenQuoteAndBrackets(t *testing.T) {
	assert.True(t, IsIncomplete(`echo "hello`))
	assert.True(t, IsIncomplete(`echo (1`))
	assert.True(t, IsIncomplete(`echo hi \`))
	assert.False(t, IsIncomplete(`echo "hello"`))
	assert.False(t, IsIncomplete(`echo hi`))
}

func TestHandleEnterAccumulatesContinuation(t *testing.T) {
	e := newTestEditor(nil)
	typeText(e, `echo "unterminated`)
	action := e.dispatchKey(Key{Type: term.KeyEnter})
	assert.Equal(t, ActionNone, action)
	assert.Equal(t, "", e.bufferString())
	assert.Len(t, e.multiline, 1)
	typeText(e, `still going"`)
	action = e.dispatchKey(Key{Type: term.KeyEnter})
	assert.Equal(t, ActionSubmit, action)
	assert.Equal(t, "echo \"unterminated\nstill going\"", e.Line())
}

func TestCtrlDOnEmptyBufferSignalsEOF(t *testing.T) {
	e := newTestEditor(nil)
	action := e.dispatchKey(ctrlKey('d'))
	assert.Equal(t, ActionEOF, action)
}

func TestCtrlCSignalsInterrupt(t *testing.T) {
	e := newTestEditor(nil)
	typeText(e, "echo hi")
	action := e.dispatchKey(ctrlKey('c'))
	assert.Equal(t, ActionInterrupt, action)
}

func TestMacroRecordAndPlay(t *testing.T) {
	e := newTestEditor(nil)
	e.startMacro()
	typeText(e, "ab")
	e.stopMacro()
	require.Equal(t, "ab", e.bufferString())
	e.playMacro()
	assert.Equal(t, "abab", e.bufferString())
}

func TestFuzzyScoreRanksPrefixAboveScattered(t *testing.T) {
	assert.Greater(t, history.FuzzyScore("gco", "git-checkout"), history.FuzzyScore("gco", "config"))
}
