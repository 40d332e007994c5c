// Package console plays a board over a line-oriented terminal exchange.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/render"
)

const (
	Welcome         = "**********WELCOME TO MINESWEEPER GAME**********"
	Prompt          = "Where would you like to dig? Input as row,col: "
	InvalidLocation = "Invalid location. Try again."
	Victory         = "CONGRATULATIONS!!!! YOU ARE VICTORIOUS!"
	MinesHeader     = "MINES IN THIS GAME:"
	GameOver        = "SORRY GAME OVER :("
)

// ErrInputClosed is returned when input ends before the game does.
var ErrInputClosed = errors.New("input closed before the game ended")

type Loop struct {
	board  *mines.Board
	in     *bufio.Scanner
	out    io.Writer
	logger logrus.FieldLogger
}

func New(
	board *mines.Board, in io.Reader, out io.Writer, logger logrus.FieldLogger,
) *Loop {
	return &Loop{
		board:  board,
		in:     bufio.NewScanner(in),
		out:    out,
		logger: logger,
	}
}

// readLines feeds scanned lines to the returned channel until input ends
// or ctx is done. The channel is closed afterwards; *scanErr then holds the
// read error, if any.
func (l *Loop) readLines(ctx context.Context, scanErr *error) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		for l.in.Scan() {
			select {
			case lines <- l.in.Text():
			case <-ctx.Done():
				return
			}
		}
		*scanErr = l.in.Err()
	}()
	return lines
}

// Run prompts for locations until the board is won or a mine goes off,
// then prints the final board. Canceling ctx interrupts a pending prompt.
// Run must be called at most once.
func (l *Loop) Run(ctx context.Context) (mines.Status, error) {
	l.println(Welcome)

	if err := ctx.Err(); err != nil {
		return l.board.Status(), err
	}

	readCtx, stop := context.WithCancel(ctx)
	defer stop()
	var scanErr error
	lines := l.readLines(readCtx, &scanErr)

	for l.board.Status() == mines.InProgress {
		l.println(render.Render(l.board.Snapshot()))
		fmt.Fprint(l.out, Prompt)

		var line string
		select {
		case <-ctx.Done():
			return l.board.Status(), ctx.Err()
		case s, ok := <-lines:
			if !ok {
				if scanErr != nil {
					return l.board.Status(), fmt.Errorf("unable to read input: %w", scanErr)
				}
				return l.board.Status(), ErrInputClosed
			}
			line = s
		}
		if err := ctx.Err(); err != nil {
			return l.board.Status(), err
		}

		row, col, err := ParseLocation(line)
		if err != nil || !l.board.Params().InBounds(row, col) {
			l.logger.WithField("input", line).Debug("rejected location")
			l.println(InvalidLocation)
			continue
		}

		res, err := l.board.Reveal(row, col)
		if err != nil {
			return l.board.Status(), err
		}
		l.logger.WithFields(logrus.Fields{
			"row":      row,
			"col":      col,
			"result":   res,
			"revealed": l.board.RevealedCount(),
		}).Debug("dug")

		if res == mines.Exploded {
			break
		}
	}

	status := l.board.Status()
	switch status {
	case mines.Won:
		l.println(render.Render(l.board.Snapshot()))
		l.println(Victory)
	case mines.Lost:
		l.println(MinesHeader)
		l.println(render.Render(l.board.Snapshot().RevealAll()))
		l.println(GameOver)
	}

	l.logger.WithFields(logrus.Fields{
		"status":   status,
		"revealed": l.board.RevealedCount(),
	}).Info("game finished")

	return status, nil
}

func (l *Loop) println(s string) {
	fmt.Fprintln(l.out, s)
}
