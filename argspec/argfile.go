package argspec

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExpandArgumentFiles performs @file expansion as a pre-pass over the raw
// argument vector: every token starting with the configured argument-file
// prefix is replaced by the tokens read from that file, recursively up to
// MaxArgumentFileDepth. The parse engine itself only ever consumes the
// already-expanded token list this function returns.
//
// Files hold one token per line. Blank lines and lines starting with the
// comment character are skipped; leading and trailing whitespace is
// trimmed. Allow/deny glob lists are matched against the cleaned path,
// deny winning over allow.
func ExpandArgumentFiles(cfg *Config, args []string) ([]string, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return expandArgs(cfg, args, cfg.MaxArgumentFileDepth)
}

func expandArgs(cfg *Config, args []string, depth int) ([]string, error) {
	expanded := make([]string, 0, len(args))
	for _, arg := range args {
		if !strings.HasPrefix(arg, cfg.ArgumentFilePrefix) {
			expanded = append(expanded, arg)
			continue
		}
		if depth == 0 {
			return nil, NewParseError(ErrorTypeArgumentFile,
				fmt.Sprintf("argument file %q exceeds the maximum expansion depth of %d",
					arg, cfg.MaxArgumentFileDepth)).withName(arg)
		}
		path := arg[len(cfg.ArgumentFilePrefix):]
		tokens, err := readArgumentFile(cfg, path)
		if err != nil {
			return nil, err
		}
		nested, err := expandArgs(cfg, tokens, depth-1)
		if err != nil {
			return nil, err
		}
		expanded = append(expanded, nested...)
	}
	return expanded, nil
}

func readArgumentFile(cfg *Config, path string) ([]string, error) {
	clean := filepath.Clean(path)
	if err := checkArgumentFilePath(cfg, clean); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(clean)
	if err != nil {
		return nil, NewParseError(ErrorTypeArgumentFile,
			fmt.Sprintf("cannot read argument file %q: %v", path, err)).withName(path)
	}

	var tokens []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if cfg.ArgumentFileComment != "" && strings.HasPrefix(line, cfg.ArgumentFileComment) {
			continue
		}
		tokens = append(tokens, line)
	}
	return tokens, nil
}

func checkArgumentFilePath(cfg *Config, path string) error {
	for _, pattern := range cfg.ArgumentFileDenyPaths {
		if ok, _ := filepath.Match(pattern, path); ok {
			return NewParseError(ErrorTypeArgumentFile,
				fmt.Sprintf("argument file %q is denied by pattern %q", path, pattern)).
				withName(path)
		}
	}
	if len(cfg.ArgumentFileAllowPaths) == 0 {
		return nil
	}
	for _, pattern := range cfg.ArgumentFileAllowPaths {
		if ok, _ := filepath.Match(pattern, path); ok {
			return nil
		}
	}
	return NewParseError(ErrorTypeArgumentFile,
		fmt.Sprintf("argument file %q matches no allow pattern", path)).withName(path)
}
