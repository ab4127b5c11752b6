package collapsed

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ParseFile reads a collapsed-stacks file and parses its contents.
func ParseFile(filePath string) (*Profile, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open collapsed stacks file: %w", err)
	}
	defer f.Close()

	profile, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filePath, err)
	}
	return profile, nil
}

// Parse reads collapsed-stack lines of the form
//
//	frame1;frame2;...;frameN count
//
// The count is the token after the last whitespace run on the line, so frame
// names may themselves contain spaces. Blank lines, comment lines starting
// with '#', and lines whose trailing token is not an integer are skipped;
// producers are allowed to interleave annotations with samples.
func Parse(r io.Reader) (*Profile, error) {
	profile := &Profile{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		stackStr, countStr, ok := splitLastField(line)
		if !ok {
			continue
		}
		count, err := strconv.Atoi(countStr)
		if err != nil {
			continue
		}

		// Empty frame names are preserved; they are whatever the
		// producer wrote between consecutive semicolons.
		profile.Stacks = append(profile.Stacks, Stack{
			Frames: strings.Split(stackStr, ";"),
			Count:  count,
		})
		profile.TotalSamples += count
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading collapsed stacks: %w", err)
	}

	return profile, nil
}

// splitLastField splits a line at its last run of whitespace. ok is false
// when the line contains no whitespace at all.
func splitLastField(line string) (head, tail string, ok bool) {
	cut := strings.LastIndexAny(line, " \t")
	if cut < 0 {
		return "", "", false
	}
	tail = line[cut+1:]
	head = strings.TrimRight(line[:cut], " \t")
	return head, tail, true
}
