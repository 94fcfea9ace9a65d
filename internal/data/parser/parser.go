package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/penwyp/go-allan-plot/internal/core/model"
	"github.com/penwyp/go-allan-plot/internal/util"
)

// CommentPrefix marks a line that is skipped entirely. Only the very first
// character of a line is considered.
const CommentPrefix = "#"

const maxLineSize = 10 * 1024 * 1024

// Parser reads two-column (tau, deviation) data files.
type Parser struct {
	policy LinePolicy
}

// Stats counts what happened to each line of the last parse.
type Stats struct {
	Lines     int
	Comments  int
	Skipped   int
	DataLines int
}

// NewParser creates a Parser with the given malformed-line policy.
func NewParser(policy LinePolicy) *Parser {
	return &Parser{policy: policy}
}

// Policy returns the malformed-line policy in use.
func (p *Parser) Policy() LinePolicy {
	return p.policy
}

// ParseFile opens path and parses it with ParseReader.
func (p *Parser) ParseFile(path string) (model.Series, error) {
	util.LogDebug("Start parsing file", util.F("path", path), util.F("policy", p.policy.String()))

	file, err := os.Open(path)
	if err != nil {
		return model.Series{}, fmt.Errorf("failed to open input: %w", err)
	}
	defer file.Close()

	series, stats, err := p.ParseReader(file)
	if err != nil {
		return model.Series{}, fmt.Errorf("%s: %w", path, err)
	}

	util.LogDebug("Finished parsing file",
		util.F("path", path),
		util.F("lines", stats.Lines),
		util.F("comments", stats.Comments),
		util.F("skipped", stats.Skipped),
		util.F("points", stats.DataLines))
	if stats.Skipped > 0 {
		util.LogInfof("Skipped %d malformed line(s) in %s", stats.Skipped, path)
	}

	return series, nil
}

// ParseReader parses lines from r in order. Lines starting with '#' are
// comments. Lines with exactly two fields become points; other lines are
// handled by the parser's LinePolicy. A two-field line that is not numeric
// stops parsing with a *ParseError.
func (p *Parser) ParseReader(r io.Reader) (model.Series, Stats, error) {
	var (
		series model.Series
		stats  Stats
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		stats.Lines++
		line := scanner.Text()

		if strings.HasPrefix(line, CommentPrefix) {
			stats.Comments++
			continue
		}

		fields := strings.Fields(line)
		ok, err := p.policy.Check(stats.Lines, line, fields)
		if err != nil {
			return model.Series{}, stats, err
		}
		if !ok {
			stats.Skipped++
			util.LogDebugf("Skip malformed line %d (%d fields)", stats.Lines, len(fields))
			continue
		}

		x, err := parseValue(fields[0])
		if err != nil {
			return model.Series{}, stats, &ParseError{Line: stats.Lines, Text: line, Err: err}
		}
		y, err := parseValue(fields[1])
		if err != nil {
			return model.Series{}, stats, &ParseError{Line: stats.Lines, Text: line, Err: err}
		}

		series.Append(x, y)
		stats.DataLines++
	}

	if err := scanner.Err(); err != nil {
		return model.Series{}, stats, fmt.Errorf("error scanning input: %w", err)
	}

	return series, stats, nil
}

// parseValue reads one field. Out-of-range values keep the ±Inf or 0 that
// ParseFloat returns for them.
func parseValue(field string) (float64, error) {
	v, err := strconv.ParseFloat(field, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, err
	}
	return v, nil
}
