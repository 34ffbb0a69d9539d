package shell_test

import (
	"testing"

	"github.com/jkim/ish/internal/shell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lex(t *testing.T, line string) shell.TokenSequence {
	t.Helper()
	tokens, err := shell.Lex(line, 0)
	require.NoError(t, err)
	return tokens
}

func TestValidate_AcceptsSimpleCommand(t *testing.T) {
	assert.NoError(t, shell.Validate(lex(t, "ls -l")))
}

func TestValidate_AcceptsPipelineWithRedirection(t *testing.T) {
	assert.NoError(t, shell.Validate(lex(t, "cat <in.txt | sort | uniq >out.txt")))
}

func TestValidate_AcceptsTrailingBackground(t *testing.T) {
	assert.NoError(t, shell.Validate(lex(t, "sleep 10 &")))
}

func TestValidate_RejectsMissingCommand(t *testing.T) {
	err := shell.Validate(lex(t, "| grep foo"))
	require.Error(t, err)
	assert.Equal(t, shell.ErrMissingCommand.String(), err.Error())
}

func TestValidate_RejectsEmptyLine(t *testing.T) {
	err := shell.Validate(shell.TokenSequence{})
	require.Error(t, err)
	assert.Equal(t, shell.ErrMissingCommand.String(), err.Error())
}

func TestValidate_RejectsDoubleRedirIn(t *testing.T) {
	err := shell.Validate(lex(t, "cat <a <b"))
	require.Error(t, err)
	assert.Equal(t, shell.ErrMultipleRedirIn.String(), err.Error())
}

func TestValidate_RejectsDoubleRedirOut(t *testing.T) {
	err := shell.Validate(lex(t, "cat >a >b"))
	require.Error(t, err)
	assert.Equal(t, shell.ErrMultipleRedirOut.String(), err.Error())
}

func TestValidate_RejectsRedirInWithoutTarget(t *testing.T) {
	err := shell.Validate(lex(t, "cat <"))
	require.Error(t, err)
	assert.Equal(t, shell.ErrRedirInWithoutTarget.String(), err.Error())
}

func TestValidate_RejectsRedirOutWithoutTarget(t *testing.T) {
	err := shell.Validate(lex(t, "cat >"))
	require.Error(t, err)
	assert.Equal(t, shell.ErrRedirOutWithoutTarget.String(), err.Error())
}

func TestValidate_RejectsRedirInOnNonFirstSegment(t *testing.T) {
	err := shell.Validate(lex(t, "ls | cat <a"))
	require.Error(t, err)
	assert.Equal(t, shell.ErrMultipleRedirIn.String(), err.Error())
}

func TestValidate_RejectsRedirOutOnNonLastSegment(t *testing.T) {
	err := shell.Validate(lex(t, "ls >a | cat"))
	require.Error(t, err)
	assert.Equal(t, shell.ErrMultipleRedirOut.String(), err.Error())
}

func TestValidate_RejectsBackgroundInMiddleOfLine(t *testing.T) {
	err := shell.Validate(lex(t, "sleep 10 & echo done"))
	require.Error(t, err)
	assert.Equal(t, shell.ErrInvalidBackground.String(), err.Error())
}

func TestValidate_RejectsBackgroundBeforeEndOfPipeline(t *testing.T) {
	err := shell.Validate(lex(t, "sleep 10 & | cat"))
	require.Error(t, err)
	assert.Equal(t, shell.ErrInvalidBackground.String(), err.Error())
}

func TestSplitByPipe_PartitionsAtEveryPipe(t *testing.T) {
	segments := shell.SplitByPipe(lex(t, "a | b | c"))
	require.Len(t, segments, 3)
	assert.Equal(t, "a", segments[0][0].Text)
	assert.Equal(t, "b", segments[1][0].Text)
	assert.Equal(t, "c", segments[2][0].Text)
}
