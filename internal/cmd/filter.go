package cmd

import (
	"fmt"

	"github.com/ezerfernandes/mdextract/internal/mdcode"
	"github.com/gobwas/glob"
)

// filter builds a block filter from language tag and metadata glob patterns.
// Untagged blocks are governed by untagged alone; tagged blocks must match
// one of langs. Every metadata pattern must match the block's value for that
// key, a missing key counting as the empty string.
func filter(langs []string, untagged bool, meta map[string]string) (mdcode.Filter, error) {
	langGlobs := make([]glob.Glob, 0, len(langs))

	for _, pattern := range langs {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid language pattern %q: %w", pattern, err)
		}

		langGlobs = append(langGlobs, g)
	}

	metaGlobs := make(map[string]glob.Glob, len(meta))

	for key, pattern := range meta {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q for metadata %s: %w", pattern, key, err)
		}

		metaGlobs[key] = g
	}

	return func(lang string, m mdcode.Meta) bool {
		if len(lang) == 0 {
			if !untagged {
				return false
			}
		} else if !matchAny(langGlobs, lang) {
			return false
		}

		for key, g := range metaGlobs {
			if !g.Match(m.Get(key)) {
				return false
			}
		}

		return true
	}, nil
}

func matchAny(globs []glob.Glob, value string) bool {
	for _, g := range globs {
		if g.Match(value) {
			return true
		}
	}

	return false
}
