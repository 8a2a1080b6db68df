package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ReadPrivateKeys loads wallet keys from a file: one 0x-prefixed hex key
// per line, anything else ignored.
func ReadPrivateKeys(path string) ([]string, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, fmt.Errorf("read private keys: %w", err)
	}
	var keys []string
	for _, line := range lines {
		if strings.HasPrefix(line, "0x") {
			keys = append(keys, line)
		}
	}
	return keys, nil
}

// ReadProxies loads proxy URIs from a file, one per line. A missing file is
// not an error: the run simply continues without proxies.
func ReadProxies(path string) ([]string, error) {
	lines, err := readLines(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read proxies: %w", err)
	}
	return lines, nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}
