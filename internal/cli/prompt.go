package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// lineSource yields one input line per call, returning io.EOF with the
// final partial line.
type lineSource func() (string, error)

// readerLines reads lines from a buffered reader.
func readerLines(reader *bufio.Reader) lineSource {
	return func() (string, error) {
		return readLine(reader)
	}
}

// channelLines reads lines delivered by a background reader.
func channelLines(lines <-chan string) lineSource {
	return func() (string, error) {
		line, ok := <-lines
		if !ok {
			return "", io.EOF
		}
		return line, nil
	}
}

// readLine reads a line from the reader, trimming line endings.
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			return strings.TrimRight(line, "\r\n"), io.EOF
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// promptString asks for a string value with an optional default.
func promptString(next lineSource, out io.Writer, label, defaultValue string) (string, error) {
	for {
		if defaultValue != "" {
			fmt.Fprintf(out, "%s [%s]: ", label, defaultValue)
		} else {
			fmt.Fprintf(out, "%s: ", label)
		}
		line, err := next()
		if err != nil && err != io.EOF {
			return "", err
		}
		line = strings.TrimSpace(line)
		if line == "" && defaultValue != "" {
			return defaultValue, nil
		}
		if line != "" {
			return line, nil
		}
		if err == io.EOF {
			return "", fmt.Errorf("missing input for %s", label)
		}
	}
}

// promptInt asks for a non-negative integer with a default.
func promptInt(next lineSource, out io.Writer, label string, defaultValue int) (int, error) {
	for {
		raw, err := promptString(next, out, label, strconv.Itoa(defaultValue))
		if err != nil {
			return 0, err
		}
		value, convErr := strconv.Atoi(raw)
		if convErr == nil && value >= 0 {
			return value, nil
		}
		fmt.Fprintln(out, "Please enter a whole number of 0 or more.")
	}
}

// promptYesNo prompts for a yes/no response with a default.
func promptYesNo(next lineSource, out io.Writer, label string, defaultYes bool) (bool, error) {
	suffix := "y/N"
	if defaultYes {
		suffix = "Y/n"
	}
	for {
		fmt.Fprintf(out, "%s [%s]: ", label, suffix)
		line, err := next()
		if err != nil && err != io.EOF {
			return false, err
		}
		line = strings.TrimSpace(strings.ToLower(line))
		if line == "" {
			return defaultYes, nil
		}
		switch line {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		default:
			if err == io.EOF {
				return false, fmt.Errorf("invalid response %q", line)
			}
			fmt.Fprintln(out, "Please answer yes or no.")
		}
	}
}
