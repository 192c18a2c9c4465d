package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ironsheep/imgcdn-mcp/internal/cdnurl"
)

// optionFlags collects the transformation flags shared by url, transform and
// preview.
type optionFlags struct {
	options []string
	chain   []string
	json    string
}

func (f *optionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&f.options, "option", "o", nil,
		"option as key=value, repeatable (effect=a,b makes a list; transformation=a.b names transformations)")
	cmd.Flags().StringArrayVarP(&f.chain, "transform", "t", nil,
		"chained transformation as key=value,key=value, repeatable")
	cmd.Flags().StringVar(&f.json, "options-json", "", "options as a JSON object, merged before -o")
}

// build turns the flags into one option map. JSON comes first, then -o
// flags, then -t flags become the transformation chain.
func (f *optionFlags) build() (cdnurl.Options, error) {
	opts := cdnurl.Options{}

	if f.json != "" {
		dec := json.NewDecoder(bytes.NewReader([]byte(f.json)))
		dec.UseNumber()
		if err := dec.Decode(&opts); err != nil {
			return nil, fmt.Errorf("--options-json: %w", err)
		}
	}

	for _, kv := range f.options {
		key, value, err := splitOption(kv)
		if err != nil {
			return nil, fmt.Errorf("-o %s: %w", kv, err)
		}
		opts[key] = optionValue(key, value)
	}

	if len(f.chain) > 0 {
		if _, ok := opts["transformation"]; ok {
			return nil, errors.New("-t cannot be combined with a transformation option")
		}
		chain := make(cdnurl.Chain, 0, len(f.chain))
		for _, arg := range f.chain {
			step, err := parseChainStep(arg)
			if err != nil {
				return nil, fmt.Errorf("-t %s: %w", arg, err)
			}
			chain = append(chain, step)
		}
		opts["transformation"] = chain
	}

	return opts, nil
}

func splitOption(kv string) (string, string, error) {
	key, value, ok := strings.Cut(kv, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", "", errors.New("want key=value")
	}
	return key, value, nil
}

// optionValue interprets the text of one -o flag.
func optionValue(key, value string) any {
	switch key {
	case "effect":
		if strings.Contains(value, ",") {
			return strings.Split(value, ",")
		}
	case "transformation":
		return cdnurl.Named(strings.Split(value, "."))
	}
	return value
}

// parseChainStep parses "width=100,crop=fill". Values cannot contain commas.
func parseChainStep(arg string) (cdnurl.Options, error) {
	step := cdnurl.Options{}
	for _, kv := range strings.Split(arg, ",") {
		if strings.TrimSpace(kv) == "" {
			continue
		}
		key, value, err := splitOption(kv)
		if err != nil {
			return nil, err
		}
		step[key] = value
	}
	return step, nil
}
