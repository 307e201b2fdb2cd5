package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a yaml config file and exports every scalar leaf into the
// process environment as PREFIX_SECTION_KEY=value (upper-cased, underscored),
// so modules keep reading namespaced env via Conf. Existing env vars win,
// letting the environment override the file.
//
//	reddit:
//	  subreddit: hockey        -> REDDIT_SUBREDDIT=hockey
//	bot:
//	  poll_interval: 5s        -> BOT_POLL_INTERVAL=5s
func LoadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	flatten("", doc)
	return nil
}

// flatten walks nested maps and sets env for scalar leaves
func flatten(prefix string, node map[string]any) {
	for k, v := range node {
		key := envKey(prefix, k)
		switch vv := v.(type) {
		case map[string]any:
			flatten(key, vv)
		case nil:
			// empty leaf, skip
		case []any:
			parts := make([]string, 0, len(vv))
			for _, it := range vv {
				parts = append(parts, fmt.Sprintf("%v", it))
			}
			setIfUnset(key, strings.Join(parts, ","))
		default:
			setIfUnset(key, fmt.Sprintf("%v", vv))
		}
	}
}

func envKey(prefix, k string) string {
	k = strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(k), "-", "_"))
	if prefix == "" {
		return k
	}
	return prefix + "_" + k
}

// setIfUnset exports key=value unless the environment already has it
func setIfUnset(key, value string) {
	if _, ok := os.LookupEnv(key); ok {
		return
	}
	_ = os.Setenv(key, value)
}
