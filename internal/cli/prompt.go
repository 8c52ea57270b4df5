package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/mattn/go-isatty"
)

// errQuit は利用者が入力を打ち切ったことを表します (EOF, Ctrl-C)
var errQuit = errors.New("cli: input closed")

// Prompter は1行ずつ入力を受け取ります
type Prompter interface {
	Prompt(prompt string) (string, error)
	Close() error
}

// readlinePrompter は端末上で履歴と行編集付きの入力を提供します
type readlinePrompter struct {
	rl *readline.Instance
}

func (p *readlinePrompter) Prompt(prompt string) (string, error) {
	p.rl.SetPrompt(prompt)
	line, err := p.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
		return "", errQuit
	}
	return line, err
}

func (p *readlinePrompter) Close() error { return p.rl.Close() }

// linePrompter はパイプやテスト用の非対話入力
type linePrompter struct {
	sc  *bufio.Scanner
	out io.Writer
}

func newLinePrompter(in io.Reader, out io.Writer) *linePrompter {
	return &linePrompter{sc: bufio.NewScanner(in), out: out}
}

func (p *linePrompter) Prompt(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.sc.Scan() {
		if err := p.sc.Err(); err != nil {
			return "", err
		}
		return "", errQuit
	}
	return p.sc.Text(), nil
}

func (p *linePrompter) Close() error { return nil }

// newPrompter は stdin が端末なら readline、それ以外は行単位の読み取りを使います
func newPrompter(in io.Reader, out io.Writer) (Prompter, error) {
	f, ok := in.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		return newLinePrompter(in, out), nil
	}
	rl, err := readline.NewEx(&readline.Config{
		Stdin:           f,
		Stdout:          out,
		HistoryLimit:    100,
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return nil, fmt.Errorf("cli: init readline: %w", err)
	}
	return &readlinePrompter{rl: rl}, nil
}
