package sokoban

import (
	"errors"
	"fmt"
	"strings"

	"github.com/plus3/boxpush/ecs"
)

var (
	// ErrUnknownToken is wrapped by every TokenError.
	ErrUnknownToken = errors.New("unrecognized map token")
	// ErrEmptyLevel is returned for level text without any rows.
	ErrEmptyLevel = errors.New("level has no rows")
)

// Token is one cell of the level text.
type Token uint8

const (
	TokenFloor Token = iota
	TokenWall
	TokenPlayer
	TokenVoid
	TokenRedBox
	TokenBlueBox
	TokenRedSpot
	TokenBlueSpot
)

var tokenText = [...]string{
	TokenFloor:    ".",
	TokenWall:     "W",
	TokenPlayer:   "P",
	TokenVoid:     "N",
	TokenRedBox:   "RB",
	TokenBlueBox:  "BB",
	TokenRedSpot:  "RS",
	TokenBlueSpot: "BS",
}

func (t Token) String() string {
	if int(t) < len(tokenText) {
		return tokenText[t]
	}
	return fmt.Sprintf("Token(%d)", uint8(t))
}

// ParseToken maps level text to a Token. Matching is case-sensitive.
func ParseToken(s string) (Token, bool) {
	for t, text := range tokenText {
		if s == text {
			return Token(t), true
		}
	}
	return 0, false
}

// TokenError reports an unrecognized token and where it was found.
type TokenError struct {
	Row, Col int
	Text     string
}

func (e *TokenError) Error() string {
	return fmt.Sprintf("%s %q at row %d, column %d", ErrUnknownToken, e.Text, e.Row, e.Col)
}

func (e *TokenError) Unwrap() error {
	return ErrUnknownToken
}

// Cell is a parsed token at its grid coordinates.
type Cell struct {
	X, Y  int
	Token Token
}

// Level is fully parsed level text. Nothing touches a Storage until Spawn.
type Level struct {
	Width  int
	Height int
	Cells  []Cell
}

// ParseLevel parses newline-separated rows of whitespace-separated tokens.
// Each row is trimmed; blank lines before the first and after the last row
// are ignored. Row index is y, column index is x.
func ParseLevel(text string) (*Level, error) {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) == 1 && strings.TrimSpace(lines[0]) == "" {
		return nil, ErrEmptyLevel
	}

	level := &Level{Height: len(lines)}
	for y, line := range lines {
		fields := strings.Fields(line)
		level.Width = max(level.Width, len(fields))
		for x, field := range fields {
			token, ok := ParseToken(field)
			if !ok {
				return nil, &TokenError{Row: y, Col: x, Text: field}
			}
			level.Cells = append(level.Cells, Cell{X: x, Y: y, Token: token})
		}
	}
	return level, nil
}

// Grid returns the level bounds.
func (l *Level) Grid() Grid {
	return Grid{Width: l.Width, Height: l.Height}
}

// Count returns how many cells hold token t.
func (l *Level) Count(t Token) int {
	n := 0
	for _, c := range l.Cells {
		if c.Token == t {
			n++
		}
	}
	return n
}

// String renders the level back to its text form, one row per line.
func (l *Level) String() string {
	rows := make([][]string, l.Height)
	for _, c := range l.Cells {
		rows[c.Y] = append(rows[c.Y], c.Token.String())
	}

	var b strings.Builder
	for y, row := range rows {
		if y > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strings.Join(row, " "))
	}
	return b.String()
}

// Spawn inserts the level's entities into storage and stores the Grid
// resource. Every non-void cell gets a floor entity plus at most one feature.
func (l *Level) Spawn(storage *ecs.Storage) {
	for _, c := range l.Cells {
		if c.Token == TokenVoid {
			continue
		}

		spawnFloor(storage, c.X, c.Y)

		switch c.Token {
		case TokenFloor:
		case TokenWall:
			spawnWall(storage, c.X, c.Y)
		case TokenPlayer:
			spawnPlayer(storage, c.X, c.Y)
		case TokenRedBox:
			spawnBox(storage, c.X, c.Y, Red)
		case TokenBlueBox:
			spawnBox(storage, c.X, c.Y, Blue)
		case TokenRedSpot:
			spawnBoxSpot(storage, c.X, c.Y, Red)
		case TokenBlueSpot:
			spawnBoxSpot(storage, c.X, c.Y, Blue)
		default:
			panic("unhandled token " + c.Token.String())
		}
	}

	storage.AddSingleton(l.Grid())
}

// LoadLevel parses text and spawns it. On a parse error the storage is left untouched.
func LoadLevel(storage *ecs.Storage, text string) (*Level, error) {
	level, err := ParseLevel(text)
	if err != nil {
		return nil, err
	}
	level.Spawn(storage)
	return level, nil
}
